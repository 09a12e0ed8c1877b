package types

import (
	"testing"

	"github.com/stretchr/testify/suite"
)

type SignalTestSuite struct {
	suite.Suite
}

func TestSignalSuite(t *testing.T) {
	suite.Run(t, new(SignalTestSuite))
}

func (suite *SignalTestSuite) TestNoSignal() {
	signal := NoSignal("not enough history")

	suite.Equal(ActionHold, signal.Action)
	suite.Equal("not enough history", signal.Reason)
	suite.Empty(signal.Indicator)
	suite.Nil(signal.RawValue)
}

func (suite *SignalTestSuite) TestSignalStruct() {
	signal := Signal{
		Action:    ActionSell,
		Reason:    "close above upper band",
		Indicator: IndicatorTypeBollingerBands,
		RawValue:  map[string]float64{"upper": 121.5, "close": 122},
	}

	suite.Equal(ActionSell, signal.Action)
	suite.Equal(IndicatorTypeBollingerBands, signal.Indicator)
	suite.Equal(122.0, signal.RawValue["close"])
}
