package indicator

import (
	"testing"

	"github.com/stretchr/testify/suite"
)

type CrossoverTestSuite struct {
	suite.Suite
}

func TestCrossoverSuite(t *testing.T) {
	suite.Run(t, new(CrossoverTestSuite))
}

func (suite *CrossoverTestSuite) TestCrossedAbove() {
	suite.True(CrossedAbove([]float64{1, 3}, []float64{2, 2}))
	suite.True(CrossedAbove([]float64{2, 3}, []float64{2, 2}))
	suite.False(CrossedAbove([]float64{3, 4}, []float64{2, 2}))
	suite.False(CrossedAbove([]float64{3, 1}, []float64{2, 2}))
}

func (suite *CrossoverTestSuite) TestCrossedBelow() {
	suite.True(CrossedBelow([]float64{3, 1}, []float64{2, 2}))
	suite.True(CrossedBelow([]float64{2, 1}, []float64{2, 2}))
	suite.False(CrossedBelow([]float64{1, 0}, []float64{2, 2}))
}

func (suite *CrossoverTestSuite) TestAlignsOnMostRecentValue() {
	// the longer series is cut to the shorter one from the front
	suite.True(CrossedAbove([]float64{9, 9, 9, 1, 3}, []float64{2, 2}))
}

func (suite *CrossoverTestSuite) TestTooShort() {
	suite.False(CrossedAbove([]float64{3}, []float64{2}))
	suite.False(CrossedBelow(nil, []float64{1, 2}))
}
