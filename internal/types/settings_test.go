package types

import (
	"testing"

	"github.com/rxtech-lab/candle-bot/pkg/errors"
	"github.com/stretchr/testify/suite"
)

type SettingsTestSuite struct {
	suite.Suite
}

func TestSettingsSuite(t *testing.T) {
	suite.Run(t, new(SettingsTestSuite))
}

func (suite *SettingsTestSuite) TestDefaults() {
	settings := DefaultSettings()
	suite.Equal(1, settings.TimePerMove)
	suite.Equal(1, settings.CandleInterval)
	suite.Equal(0.1, settings.TransactionFeePercent)
	suite.False(settings.HasCandleFormat())
}

func (suite *SettingsTestSuite) TestApply() {
	settings := DefaultSettings()

	lines := []struct {
		key   SettingKey
		value string
	}{
		{SettingTimebank, "10000"},
		{SettingTimePerMove, "100"},
		{SettingCandleInterval, "1800"},
		{SettingCandleFormat, "pair,date,high,low,open,close,volume"},
		{SettingCandlesTotal, "720"},
		{SettingCandlesGiven, "336"},
		{SettingInitialStack, "1000"},
		{SettingTransactionFeePercent, "0.2"},
	}

	for _, line := range lines {
		known, err := settings.Apply(line.key, line.value)
		suite.True(known, line.key)
		suite.NoError(err, line.key)
	}

	suite.Equal(10000, settings.Timebank)
	suite.Equal(10000, settings.MaxTimebank)
	suite.Equal(100, settings.TimePerMove)
	suite.Equal(1800, settings.CandleInterval)
	suite.Equal(720, settings.CandlesTotal)
	suite.Equal(336, settings.CandlesGiven)
	suite.Equal(1000, settings.InitialStack)
	suite.Equal(0.2, settings.TransactionFeePercent)
	suite.True(settings.HasCandleFormat())
	suite.Equal(7, len(settings.CandleFormat))
}

func (suite *SettingsTestSuite) TestApplyUnknownKey() {
	settings := DefaultSettings()

	known, err := settings.Apply("player_names", "player0")
	suite.False(known)
	suite.NoError(err)
	suite.Equal(DefaultSettings(), settings)
}

func (suite *SettingsTestSuite) TestApplyInvalidValueKeepsPrevious() {
	settings := DefaultSettings()

	_, err := settings.Apply(SettingCandleInterval, "half")
	suite.Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidNumber))
	suite.Equal(1, settings.CandleInterval)

	_, err = settings.Apply(SettingTransactionFeePercent, "1e")
	suite.Error(err)
	suite.Equal(0.1, settings.TransactionFeePercent)

	_, err = settings.Apply(SettingCandleFormat, "pair,date")
	suite.Require().NoError(err)
	_, err = settings.Apply(SettingCandleFormat, "pair,date,bogus")
	suite.Error(err)
	suite.Equal(CandleFormat{CandleFieldPair, CandleFieldDate}, settings.CandleFormat)
}
