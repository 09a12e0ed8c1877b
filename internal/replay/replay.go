package replay

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"slices"
	"sort"
	"strconv"
	"strings"

	"github.com/rxtech-lab/candle-bot/internal/engine"
	"github.com/rxtech-lab/candle-bot/internal/game"
	"github.com/rxtech-lab/candle-bot/internal/journal"
	"github.com/rxtech-lab/candle-bot/internal/logger"
	"github.com/rxtech-lab/candle-bot/internal/strategy"
	"github.com/rxtech-lab/candle-bot/internal/types"
	"github.com/rxtech-lab/candle-bot/pkg/errors"
	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"
)

// candleFormat is the record layout replay sends; it matches the column
// order of the data files.
const candleFormat = "pair,date,high,low,open,close,volume"

// Options configures a replay.
type Options struct {
	// DataPath is the CSV or parquet file of candles
	DataPath string
	Policy   strategy.Policy
	// Pair is the pair the policy trades; it decides which currencies the
	// initial stack is paid in and how the result is valued
	Pair string
	// InitialStack is the starting balance of the quote currency
	InitialStack float64
	// FeePercent is charged on every fill
	FeePercent float64
	// Given is the number of dates sent as history before the first action
	Given int
	// Output receives the bot's reply lines; nil discards them
	Output io.Writer
	// Progress shows a progress bar on stderr
	Progress bool
	Journal  journal.Journal
	Logger   *logger.Logger
}

// Summary is the outcome of a replay.
type Summary struct {
	Turns        int
	Buys         int
	Sells        int
	Rejected     int
	InitialValue float64
	FinalValue   float64
	FinalStacks  game.Stacks
	LastPrice    float64
}

// Profit returns the final value relative to the initial value.
func (s Summary) Profit() float64 {
	if s.InitialValue == 0 {
		return 0
	}

	return s.FinalValue/s.InitialValue - 1
}

// Run replays the data file through a fresh engine.
func Run(ctx context.Context, opts Options) (Summary, error) {
	log := opts.Logger
	if log == nil {
		log = logger.NewNopLogger()
	}

	output := opts.Output
	if output == nil {
		output = io.Discard
	}

	quote, base, err := game.SplitPair(opts.Pair)
	if err != nil {
		return Summary{}, err
	}

	source, err := OpenSource(opts.DataPath)
	if err != nil {
		return Summary{}, err
	}
	defer source.Close()

	count, err := source.Count()
	if err != nil {
		return Summary{}, err
	}

	if count == 0 {
		return Summary{}, errors.Newf(errors.ErrCodeReplayNoData, "no candles in %s", opts.DataPath)
	}

	pairs, err := source.Pairs()
	if err != nil {
		return Summary{}, err
	}

	if !slices.Contains(pairs, opts.Pair) {
		return Summary{}, errors.Newf(errors.ErrCodeReplayNoData, "no %s candles in %s (found %s)",
			opts.Pair, opts.DataPath, strings.Join(pairs, ", "))
	}

	exchange := NewExchange(game.Stacks{quote: opts.InitialStack, base: 0}, opts.FeePercent)
	bot := engine.New(opts.Policy, output, log, opts.Journal)
	summary := Summary{InitialValue: opts.InitialStack}

	for _, line := range settingsLines(opts, count) {
		if _, err := bot.Step(line); err != nil {
			return Summary{}, err
		}
	}

	var bar *progressbar.ProgressBar
	if opts.Progress {
		bar = progressbar.Default(int64(count))
		bar.Describe(fmt.Sprintf("Replaying %s with %s", filepath.Base(opts.DataPath), opts.Policy.Name()))
	}

	turn := 0

	for batch, err := range source.Batches() {
		if err != nil {
			return Summary{}, err
		}

		if err := ctx.Err(); err != nil {
			return Summary{}, err
		}

		turn++

		if bar != nil {
			_ = bar.Add(1)
		}

		for _, c := range batch.Candles {
			if c.Pair == opts.Pair {
				summary.LastPrice = c.Close
			}
		}

		// a bad record is logged by the engine and must not end the replay
		_, _ = bot.Step(candleLine(batch))

		if turn < opts.Given {
			continue
		}

		if _, err := bot.Step(exchange.StacksLine()); err != nil {
			return Summary{}, err
		}

		decision, err := bot.Step("action order 10000")
		if err != nil {
			return Summary{}, err
		}

		summary.Turns++

		d := decision.Unwrap()
		if d.IsHold() {
			continue
		}

		if err := exchange.Fill(d, d.Price); err != nil {
			summary.Rejected++

			log.Warn("Fill rejected", zap.String("decision", d.String()), zap.Error(err))

			continue
		}

		switch d.Action {
		case types.ActionBuy:
			summary.Buys++
		case types.ActionSell:
			summary.Sells++
		}
	}

	summary.FinalStacks = exchange.Stacks()
	summary.FinalValue = exchange.Value(quote, base, summary.LastPrice)

	return summary, nil
}

func settingsLines(opts Options, count int) []string {
	return []string{
		"settings timebank 10000",
		"settings time_per_move 100",
		"settings candle_format " + candleFormat,
		"settings candles_total " + strconv.Itoa(count),
		"settings candles_given " + strconv.Itoa(opts.Given),
		"settings initial_stack " + strconv.Itoa(int(opts.InitialStack)),
		"settings transaction_fee_percent " + strconv.FormatFloat(opts.FeePercent, 'f', -1, 64),
	}
}

func candleLine(batch Batch) string {
	records := make([]string, len(batch.Candles))
	for i, c := range batch.Candles {
		records[i] = strings.Join([]string{
			c.Pair,
			strconv.FormatInt(c.Date, 10),
			formatFloat(c.High),
			formatFloat(c.Low),
			formatFloat(c.Open),
			formatFloat(c.Close),
			formatFloat(c.Volume),
		}, ",")
	}

	return "update game next_candles " + strings.Join(records, ";")
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func sortedSymbols[V any](m map[string]V) []string {
	symbols := make([]string, 0, len(m))
	for symbol := range m {
		symbols = append(symbols, symbol)
	}

	sort.Strings(symbols)

	return symbols
}
