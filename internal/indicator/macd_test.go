package indicator

import (
	"testing"

	"github.com/stretchr/testify/suite"
)

type MACDTestSuite struct {
	suite.Suite
}

func TestMACDSuite(t *testing.T) {
	suite.Run(t, new(MACDTestSuite))
}

func (suite *MACDTestSuite) TestMACDAlignment() {
	data := wave(40)

	result := MACD(data, 3, 6, 4)

	// slow EMA has 35 values, the signal EMA over them 32
	suite.Equal(32, result.Len())
	suite.Len(result.Line, 32)
	suite.Len(result.Signal, 32)
	suite.Len(result.Histogram, 32)
}

func (suite *MACDTestSuite) TestMACDHistogramIsLineMinusSignal() {
	data := wave(120)

	result := MACD(data, 12, 26, 9)
	suite.Require().Positive(result.Len())

	for i := range result.Histogram {
		suite.InDelta(result.Line[i]-result.Signal[i], result.Histogram[i], 1e-12)
	}
}

func (suite *MACDTestSuite) TestMACDLineKeepsMostRecentValues() {
	data := wave(60)

	result := MACD(data, 12, 26, 9)
	fast := EMA(data, 12)
	slow := EMA(data, 26)

	lastFast, _ := Last(fast)
	lastSlow, _ := Last(slow)
	lastLine, _ := Last(result.Line)
	suite.InDelta(lastFast-lastSlow, lastLine, 1e-12)
}

func (suite *MACDTestSuite) TestMACDInsufficientData() {
	suite.Equal(0, MACD(wave(20), 12, 26, 9).Len())
	// enough for the line but not for the signal
	suite.Equal(0, MACD(wave(30), 12, 26, 9).Len())
	suite.Equal(0, MACD(nil, 12, 26, 9).Len())
}

func (suite *MACDTestSuite) TestMACDRisingSeriesIsPositive() {
	data := make([]float64, 60)
	for i := range data {
		data[i] = 100 + float64(i)*float64(i)/10
	}

	result := MACD(data, 12, 26, 9)
	last, ok := Last(result.Line)
	suite.True(ok)
	suite.Positive(last)
}
