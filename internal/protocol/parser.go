// Package protocol reads and writes the line protocol spoken with the game
// engine.
//
// Input lines are one of:
//
//	settings <key> <value>
//	update game next_candles <record>;<record>;...
//	update game stacks <symbol>:<value>,<symbol>:<value>,...
//	action order <ms>
//
// Every "action" line must be answered with exactly one output line, see
// Emitter.
package protocol

import (
	"strings"

	"github.com/rxtech-lab/candle-bot/internal/game"
	"github.com/rxtech-lab/candle-bot/internal/types"
	"github.com/rxtech-lab/candle-bot/pkg/errors"
)

// CommandKind classifies an input line.
type CommandKind int

const (
	// CommandIgnored is a blank line, an unknown command or an update the
	// bot does not track. Unknown commands also come with an
	// ErrCodeUnknownCommand error.
	CommandIgnored CommandKind = iota
	CommandSettings
	CommandCandles
	CommandStacks
	CommandAction
)

func (k CommandKind) String() string {
	switch k {
	case CommandSettings:
		return "settings"
	case CommandCandles:
		return "next_candles"
	case CommandStacks:
		return "stacks"
	case CommandAction:
		return "action"
	default:
		return "ignored"
	}
}

// Command is one classified input line.
type Command struct {
	Kind CommandKind
	// Key is the setting name of a CommandSettings
	Key types.SettingKey
	// Payload is the setting value, the candle records or the stacks
	Payload string
	// Args holds the tokens following "action"
	Args []string
}

// Parse classifies a single input line without touching any state.
func Parse(line string) (Command, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return Command{Kind: CommandIgnored}, nil
	}

	switch fields[0] {
	case "settings":
		if len(fields) < 3 {
			return Command{}, errors.Newf(errors.ErrCodeMalformedLine, "settings line %q needs a key and a value", line)
		}

		return Command{
			Kind:    CommandSettings,
			Key:     types.SettingKey(fields[1]),
			Payload: strings.Join(fields[2:], " "),
		}, nil
	case "update":
		return parseUpdate(line, fields)
	case "action":
		return Command{Kind: CommandAction, Args: fields[1:]}, nil
	default:
		return Command{Kind: CommandIgnored}, errors.Newf(errors.ErrCodeUnknownCommand, "unknown command %q", fields[0])
	}
}

func parseUpdate(line string, fields []string) (Command, error) {
	if len(fields) < 3 {
		return Command{}, errors.Newf(errors.ErrCodeMalformedLine, "update line %q is too short", line)
	}

	if fields[1] != "game" {
		return Command{Kind: CommandIgnored}, nil
	}

	var kind CommandKind

	switch fields[2] {
	case "next_candles":
		kind = CommandCandles
	case "stacks":
		kind = CommandStacks
	default:
		return Command{Kind: CommandIgnored}, nil
	}

	if len(fields) < 4 {
		return Command{}, errors.Newf(errors.ErrCodeMalformedLine, "update game %s line has no payload", fields[2])
	}

	return Command{Kind: kind, Payload: strings.Join(fields[3:], "")}, nil
}

// Apply mutates state according to cmd. Action and ignored commands leave
// the state untouched.
func Apply(state *game.State, cmd Command) error {
	switch cmd.Kind {
	case CommandSettings:
		_, err := state.Settings.Apply(cmd.Key, cmd.Payload)

		return err
	case CommandCandles:
		return applyCandles(state, cmd.Payload)
	case CommandStacks:
		stacks, err := game.ParseStacks(cmd.Payload)
		if err != nil {
			return err
		}

		state.ReplaceStacks(stacks)

		return nil
	default:
		return nil
	}
}

// applyCandles appends every well formed record and reports the first
// failure. The turn date is taken from the first accepted record.
func applyCandles(state *game.State, payload string) error {
	if !state.Settings.HasCandleFormat() {
		return errors.New(errors.ErrCodeCandleFormatMissing, "received candles before candle_format was set")
	}

	var (
		firstErr error
		dated    bool
	)

	for _, record := range strings.Split(payload, ";") {
		record = strings.TrimSpace(record)
		if record == "" {
			continue
		}

		candle, err := types.ParseCandle(state.Settings.CandleFormat, record)
		if err == nil {
			err = state.AddCandle(candle)
		}

		if err != nil {
			if firstErr == nil {
				firstErr = err
			}

			continue
		}

		if !dated {
			state.Date = candle.Date
			dated = true
		}
	}

	return firstErr
}
