// Package engine runs the turn loop: read a protocol line, update the game
// state and, when asked for an action, decide and reply.
package engine

import (
	"bufio"
	"context"
	"io"
	"time"

	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/candle-bot/internal/game"
	"github.com/rxtech-lab/candle-bot/internal/journal"
	"github.com/rxtech-lab/candle-bot/internal/logger"
	"github.com/rxtech-lab/candle-bot/internal/protocol"
	"github.com/rxtech-lab/candle-bot/internal/strategy"
	"github.com/rxtech-lab/candle-bot/internal/types"
	"github.com/rxtech-lab/candle-bot/pkg/errors"
	"go.uber.org/zap"
)

// maxLineSize bounds a single input line. A next_candles line for many
// pairs easily exceeds bufio's default.
const maxLineSize = 1024 * 1024

// Engine owns the game state of one match.
type Engine struct {
	state   *game.State
	policy  strategy.Policy
	emitter *protocol.Emitter
	journal journal.Journal
	log     *logger.Logger
}

// New creates an engine that answers on out. A nil journal records nothing
// and a nil logger logs nothing.
func New(policy strategy.Policy, out io.Writer, log *logger.Logger, j journal.Journal) *Engine {
	if log == nil {
		log = logger.NewNopLogger()
	}

	if j == nil {
		j = journal.Nop{}
	}

	return &Engine{
		state:   game.NewState(),
		policy:  policy,
		emitter: protocol.NewEmitter(out),
		journal: j,
		log:     log,
	}
}

// State returns the game state. Callers must not modify it.
func (e *Engine) State() *game.State {
	return e.state
}

// Run processes lines from in until EOF or until ctx is cancelled. Protocol
// errors are logged and skipped; only failures to read input or write a
// reply stop the loop.
func (e *Engine) Run(ctx context.Context, in io.Reader) error {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}

		if _, err := e.Step(scanner.Text()); err != nil && errors.HasCode(err, errors.ErrCodeEmitFailed) {
			return err
		}
	}

	if err := scanner.Err(); err != nil {
		return errors.Wrap(errors.ErrCodeInputFailed, "failed to read input", err)
	}

	return nil
}

// Step applies one input line. For an action line it returns the decision
// that was emitted.
func (e *Engine) Step(line string) (optional.Option[types.Decision], error) {
	e.log.Debug("Received line", zap.String("line", line))

	cmd, err := protocol.Parse(line)
	if errors.HasCode(err, errors.ErrCodeUnknownCommand) {
		e.log.Debug("Ignoring unknown command", zap.String("line", line))

		return optional.None[types.Decision](), nil
	}

	if err != nil {
		e.reject("Skipping malformed line", line, err)

		return optional.None[types.Decision](), err
	}

	if cmd.Kind != protocol.CommandAction {
		if err := protocol.Apply(e.state, cmd); err != nil {
			e.reject("Failed to apply "+cmd.Kind.String()+" line", line, err)

			return optional.None[types.Decision](), err
		}

		return optional.None[types.Decision](), nil
	}

	decision := e.decide()

	if err := e.emitter.Emit(decision); err != nil {
		e.log.Error("Failed to emit decision", zap.Error(err))

		return optional.Some(decision), err
	}

	e.record(decision)

	return optional.Some(decision), nil
}

// reject logs a line that could not be used. Protocol errors only cost the
// line and are warnings; anything else is logged as an error.
func (e *Engine) reject(msg, line string, err error) {
	fields := []zap.Field{zap.String("line", line), zap.Error(err)}

	if errors.IsProtocolError(err) {
		e.log.Warn(msg, fields...)

		return
	}

	e.log.Error(msg, fields...)
}

func (e *Engine) decide() types.Decision {
	if !e.state.Settings.HasCandleFormat() {
		return types.Hold("candle_format not set")
	}

	decision := e.policy.Decide(e.state)

	if decision.IsHold() {
		e.log.Debug("Holding", zap.String("policy", e.policy.Name()), zap.String("reason", decision.Reason))
	} else {
		e.log.Info("Decision",
			zap.String("policy", e.policy.Name()),
			zap.String("action", string(decision.Action)),
			zap.String("pair", decision.Pair),
			zap.Float64("quantity", decision.Quantity),
			zap.Float64("price", decision.Price),
			zap.String("reason", decision.Reason),
		)
	}

	return decision
}

func (e *Engine) record(decision types.Decision) {
	entry := journal.Entry{
		TurnDate: time.Unix(e.state.Date, 0),
		Decision: decision,
	}

	if err := e.journal.Record(entry); err != nil {
		e.log.Warn("Failed to record decision", zap.Error(err))
	}
}
