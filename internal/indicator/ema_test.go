package indicator

import (
	"math"
	"testing"

	"github.com/stretchr/testify/suite"
)

type EMATestSuite struct {
	suite.Suite
}

func TestEMASuite(t *testing.T) {
	suite.Run(t, new(EMATestSuite))
}

func (suite *EMATestSuite) TestEMAKnownValues() {
	data := []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}

	// seed = mean(1,2,3) = 2, k = 0.5, so every step closes half the gap
	suite.Equal([]float64{2, 3, 4, 5, 6, 7, 8, 9}, EMA(data, 3))
}

func (suite *EMATestSuite) TestEMALengthAndSeed() {
	data := wave(64)

	for _, period := range []int{1, 2, 5, 12, 26, 64} {
		ema := EMA(data, period)
		suite.Len(ema, len(data)-period+1, "period %d", period)
		suite.InDelta(SMA(data[:period], period), ema[0], 1e-9, "period %d", period)
	}
}

func (suite *EMATestSuite) TestEMARecurrence() {
	data := wave(40)
	period := 9
	k := 2.0 / float64(period+1)

	ema := EMA(data, period)
	for i := 1; i < len(ema); i++ {
		expected := ema[i-1] + k*(data[period-1+i]-ema[i-1])
		suite.InDelta(expected, ema[i], 1e-9)
	}
}

func (suite *EMATestSuite) TestEMAInsufficientData() {
	suite.Nil(EMA([]float64{1, 2}, 3))
	suite.Nil(EMA(nil, 1))
	suite.Nil(EMA([]float64{1, 2, 3}, 0))
}

func (suite *EMATestSuite) TestEMAConstantSeries() {
	data := []float64{5, 5, 5, 5, 5, 5}
	for _, v := range EMA(data, 4) {
		suite.InDelta(5.0, v, 1e-12)
	}
}

// wave returns a deterministic oscillating series around 100.
func wave(n int) []float64 {
	data := make([]float64, n)
	for i := range data {
		data[i] = 100 + 10*math.Sin(float64(i)/3) + float64(i%7)
	}

	return data
}
