package indicator

import (
	"testing"

	"github.com/stretchr/testify/suite"
)

type MATestSuite struct {
	suite.Suite
}

func TestMASuite(t *testing.T) {
	suite.Run(t, new(MATestSuite))
}

func (suite *MATestSuite) TestSMA() {
	data := []float64{10, 20, 30, 40, 50}

	suite.InDelta(40.0, SMA(data, 3), 1e-9)
	suite.InDelta(30.0, SMA(data, 5), 1e-9)
	suite.InDelta(50.0, SMA(data, 1), 1e-9)
}

func (suite *MATestSuite) TestSMAInsufficientData() {
	suite.Equal(0.0, SMA([]float64{1, 2}, 3))
	suite.Equal(0.0, SMA(nil, 3))
	suite.Equal(0.0, SMA([]float64{1, 2, 3}, 0))
	suite.Equal(0.0, SMA([]float64{1, 2, 3}, -2))
}

func (suite *MATestSuite) TestStdDev() {
	// Population standard deviation of the textbook sample is exactly 2.
	suite.InDelta(2.0, StdDev([]float64{2, 4, 4, 4, 5, 5, 7, 9}), 1e-9)
	suite.Equal(0.0, StdDev([]float64{3, 3, 3}))
	suite.Equal(0.0, StdDev(nil))
}

func (suite *MATestSuite) TestTailAndLast() {
	data := []float64{1, 2, 3, 4}

	suite.Equal([]float64{3, 4}, Tail(data, 2))
	suite.Equal(data, Tail(data, 10))
	suite.Empty(Tail(data, 0))

	last, ok := Last(data)
	suite.True(ok)
	suite.Equal(4.0, last)

	_, ok = Last(nil)
	suite.False(ok)
}
