package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rxtech-lab/candle-bot/internal/version"
	"github.com/urfave/cli/v3"
)

func newApp() *cli.Command {
	return &cli.Command{
		Name:    "bot",
		Usage:   "Turn based candle trading bot speaking the game line protocol on stdin/stdout",
		Version: version.GetVersion(),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to the YAML config `FILE`",
				Sources: cli.EnvVars("BOT_CONFIG"),
			},
			&cli.StringFlag{
				Name:    "policy",
				Aliases: []string{"p"},
				Usage:   "Decision policy, overrides the config file",
			},
			&cli.StringFlag{
				Name:  "pair",
				Usage: "Traded pair as QUOTE_BASE, overrides the config file",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "Log level (debug, info, warn, error); logs go to stderr",
				Value: "info",
			},
			&cli.StringFlag{
				Name:  "journal",
				Usage: "Record every decision to this parquet `FILE`",
			},
		},
		Action: runAction,
		Commands: []*cli.Command{
			{
				Name:   "run",
				Usage:  "Play a match, reading the game on stdin and answering on stdout (default)",
				Action: runAction,
			},
			{
				Name:  "replay",
				Usage: "Replay a candle file against a simulated counterparty",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "data",
						Aliases:  []string{"d"},
						Usage:    "CSV or parquet `FILE` with columns pair,date,high,low,open,close,volume",
						Required: true,
					},
					&cli.FloatFlag{
						Name:  "initial-stack",
						Usage: "Starting balance of the quote currency",
						Value: 1000,
					},
					&cli.FloatFlag{
						Name:  "fee",
						Usage: "Transaction fee in percent",
						Value: 0.2,
					},
					&cli.IntFlag{
						Name:  "given",
						Usage: "Number of dates sent as history before the first action",
						Value: 336,
					},
					&cli.BoolFlag{
						Name:  "progress",
						Usage: "Show a progress bar on stderr",
						Value: true,
					},
				},
				Action: replayAction,
			},
			{
				Name:   "schema",
				Usage:  "Print the JSON schema of the policy params (--policy)",
				Action: schemaAction,
			},
			{
				Name:  "version",
				Usage: "Print the version",
				Action: func(_ context.Context, cmd *cli.Command) error {
					_, err := fmt.Fprintln(cmd.Root().Writer, version.GetVersion())

					return err
				},
			},
		},
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newApp().Run(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
