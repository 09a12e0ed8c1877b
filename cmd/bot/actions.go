package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/rxtech-lab/candle-bot/internal/config"
	"github.com/rxtech-lab/candle-bot/internal/engine"
	"github.com/rxtech-lab/candle-bot/internal/journal"
	"github.com/rxtech-lab/candle-bot/internal/logger"
	"github.com/rxtech-lab/candle-bot/internal/replay"
	"github.com/rxtech-lab/candle-bot/internal/strategy"
	pkgstrategy "github.com/rxtech-lab/candle-bot/pkg/strategy"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
)

// stdin is read by runAction; tests replace it.
var stdin io.Reader = os.Stdin

// loadConfig reads the config file, if any, and applies flag overrides.
func loadConfig(cmd *cli.Command) (config.Config, error) {
	cfg := config.Default()

	if path := cmd.String("config"); path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return config.Config{}, err
		}

		cfg = loaded
	}

	if cmd.IsSet("policy") {
		cfg.Policy = cmd.String("policy")
	}

	if cmd.IsSet("pair") {
		cfg.Pair = cmd.String("pair")
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}

	return cfg, nil
}

func newLogger(cmd *cli.Command) (*logger.Logger, error) {
	log, err := logger.NewLoggerWithLevel(cmd.String("log-level"))
	if err != nil {
		return nil, fmt.Errorf("invalid --log-level: %w", err)
	}

	return log.WithSession(), nil
}

func openJournal(cmd *cli.Command) (journal.Journal, error) {
	path := cmd.String("journal")
	if path == "" {
		return journal.Nop{}, nil
	}

	return journal.NewParquetJournal(path)
}

// setup builds everything both run and replay need.
func setup(cmd *cli.Command) (*logger.Logger, strategy.Policy, config.Config, journal.Journal, error) {
	log, err := newLogger(cmd)
	if err != nil {
		return nil, nil, config.Config{}, nil, err
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, config.Config{}, nil, err
	}

	policy, err := cfg.NewPolicy(strategy.DefaultRegistry())
	if err != nil {
		return nil, nil, config.Config{}, nil, err
	}

	j, err := openJournal(cmd)
	if err != nil {
		return nil, nil, config.Config{}, nil, err
	}

	return log, policy, cfg, j, nil
}

func closeJournal(log *logger.Logger, j journal.Journal) {
	if err := j.Close(); err != nil {
		log.Error("Failed to close journal", zap.Error(err))

		return
	}

	if pj, ok := j.(*journal.ParquetJournal); ok {
		log.Info("Decision journal written", zap.String("path", pj.OutputPath()))
	}
}

func runAction(ctx context.Context, cmd *cli.Command) error {
	log, policy, cfg, j, err := setup(cmd)
	if err != nil {
		return err
	}

	defer log.Sync() //nolint:errcheck
	defer closeJournal(log, j)

	log.Info("Starting bot",
		zap.String("policy", policy.Name()),
		zap.String("pair", cfg.Pair),
		zap.Float64("fraction", cfg.Fraction),
	)

	return engine.New(policy, cmd.Root().Writer, log, j).Run(ctx, stdin)
}

func replayAction(ctx context.Context, cmd *cli.Command) error {
	log, policy, cfg, j, err := setup(cmd)
	if err != nil {
		return err
	}

	defer log.Sync() //nolint:errcheck
	defer closeJournal(log, j)

	summary, err := replay.Run(ctx, replay.Options{
		DataPath:     cmd.String("data"),
		Policy:       policy,
		Pair:         cfg.Pair,
		InitialStack: cmd.Float("initial-stack"),
		FeePercent:   cmd.Float("fee"),
		Given:        int(cmd.Int("given")),
		Progress:     cmd.Bool("progress"),
		Journal:      j,
		Logger:       log,
	})
	if err != nil {
		return err
	}

	return printSummary(cmd.Root().Writer, policy.Name(), summary)
}

func printSummary(w io.Writer, policy string, summary replay.Summary) error {
	symbols := make([]string, 0, len(summary.FinalStacks))
	for symbol := range summary.FinalStacks {
		symbols = append(symbols, symbol)
	}

	sort.Strings(symbols)

	_, err := fmt.Fprintf(w, "policy:      %s\nturns:       %d\nbuys:        %d\nsells:       %d\nrejected:    %d\nlast price:  %.8f\n",
		policy, summary.Turns, summary.Buys, summary.Sells, summary.Rejected, summary.LastPrice)
	if err != nil {
		return err
	}

	for _, symbol := range symbols {
		if _, err := fmt.Fprintf(w, "stack %-5s %.8f\n", symbol, summary.FinalStacks[symbol]); err != nil {
			return err
		}
	}

	_, err = fmt.Fprintf(w, "value:       %.8f (%+.2f%%)\n", summary.FinalValue, summary.Profit()*100)

	return err
}

func schemaAction(_ context.Context, cmd *cli.Command) error {
	name := cmd.String("policy")
	if name == "" {
		name = config.Default().Policy
	}

	schema, err := pkgstrategy.ParamsSchema(name)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(cmd.Root().Writer, schema)

	return err
}
