package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rxtech-lab/candle-bot/internal/types"
	"github.com/rxtech-lab/candle-bot/mocks"
	"github.com/stretchr/testify/suite"
	"github.com/urfave/cli/v3"
)

type BotCommandTestSuite struct {
	suite.Suite
	dir string
	out *bytes.Buffer
}

func TestBotCommandSuite(t *testing.T) {
	suite.Run(t, new(BotCommandTestSuite))
}

func (suite *BotCommandTestSuite) SetupTest() {
	suite.dir = suite.T().TempDir()
	suite.out = &bytes.Buffer{}
}

func (suite *BotCommandTestSuite) TearDownTest() {
	stdin = os.Stdin
}

func (suite *BotCommandTestSuite) run(args ...string) error {
	app := newApp()
	app.Writer = suite.out
	app.ErrWriter = &bytes.Buffer{}

	return app.Run(context.Background(), append([]string{"bot"}, args...))
}

func (suite *BotCommandTestSuite) writeFile(name, content string) string {
	path := filepath.Join(suite.dir, name)
	suite.Require().NoError(os.WriteFile(path, []byte(content), 0600))

	return path
}

func (suite *BotCommandTestSuite) TestVersion() {
	suite.Require().NoError(suite.run("version"))
	suite.Contains(suite.out.String(), "v")
}

func (suite *BotCommandTestSuite) TestSchema() {
	suite.Require().NoError(suite.run("--policy", "sma_cross", "schema"))
	suite.Contains(suite.out.String(), "\"short\"")
}

func (suite *BotCommandTestSuite) TestSchemaUnknownPolicy() {
	suite.Error(suite.run("--policy", "martingale", "schema"))
}

func (suite *BotCommandTestSuite) TestRunAnswersEveryAction() {
	format, err := types.ParseCandleFormat("pair,date,high,low,open,close,volume")
	suite.Require().NoError(err)

	candles := mocks.Closes("USDT_BTC", 1000, 1800, 100, 101, 102)

	var in strings.Builder

	in.WriteString("settings player_names player0,player1\n")
	in.WriteString("settings candle_format pair,date,high,low,open,close,volume\n")

	for _, c := range candles {
		in.WriteString(mocks.CandleLine(format, c) + "\n")
		in.WriteString("update game stacks USDT:1000.00,BTC:0.00\n")
		in.WriteString("action order 10000\n")
	}

	stdin = strings.NewReader(in.String())

	suite.Require().NoError(suite.run("--log-level", "error", "run"))
	suite.Equal(strings.Repeat("no_moves\n", len(candles)), suite.out.String())
}

func (suite *BotCommandTestSuite) TestInvalidLogLevel() {
	stdin = strings.NewReader("")
	suite.Error(suite.run("--log-level", "loud", "run"))
}

func (suite *BotCommandTestSuite) TestConfigOverrides() {
	path := suite.writeFile("bot.yaml", "version: main\npolicy: macd\npair: USDT_ETH\nfraction: 0.5\n")

	app := newApp()
	app.Writer = suite.out
	app.Action = func(_ context.Context, cmd *cli.Command) error {
		cfg, err := loadConfig(cmd)
		suite.Require().NoError(err)
		suite.Equal("gain_loss", cfg.Policy)
		suite.Equal("USDT_ETH", cfg.Pair)
		suite.Equal(0.5, cfg.Fraction)

		return nil
	}

	suite.Require().NoError(app.Run(context.Background(), []string{"bot", "--config", path, "--policy", "gain_loss"}))
}

func (suite *BotCommandTestSuite) TestReplay() {
	closes := append(mocks.Linear(200, -1, 60), mocks.Linear(141, 1, 60)...)
	candles := mocks.Closes("USDT_BTC", 1000, 1800, closes...)

	var b strings.Builder

	b.WriteString("pair,date,high,low,open,close,volume\n")

	format, err := types.ParseCandleFormat("pair,date,high,low,open,close,volume")
	suite.Require().NoError(err)

	for _, c := range candles {
		b.WriteString(mocks.FormatRecord(format, c) + "\n")
	}

	data := suite.writeFile("candles.csv", b.String())

	err = suite.run("--log-level", "error", "--policy", "sma_cross",
		"replay", "--data", data, "--given", "10", "--progress=false")
	suite.Require().NoError(err)

	out := suite.out.String()
	suite.Contains(out, "policy:      sma_cross")
	suite.Contains(out, "turns:       111")
	suite.Contains(out, "buys:        1\n")
	suite.Contains(out, "stack USDT")
}

func (suite *BotCommandTestSuite) TestReplayRequiresData() {
	suite.Error(suite.run("replay"))
}
