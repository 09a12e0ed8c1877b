package strategy

import (
	"fmt"

	"github.com/rxtech-lab/candle-bot/internal/game"
	"github.com/rxtech-lab/candle-bot/internal/indicator"
	"github.com/rxtech-lab/candle-bot/internal/types"
)

// EMABollingerParams configures the ema_bollinger policy.
type EMABollingerParams struct {
	Fast       int     `yaml:"fast" json:"fast" validate:"min=1" jsonschema:"title=Fast Period,description=Period of the fast EMA,minimum=1,default=10"`
	Slow       int     `yaml:"slow" json:"slow" validate:"gtfield=Fast" jsonschema:"title=Slow Period,description=Period of the slow EMA,minimum=2,default=30"`
	BandPeriod int     `yaml:"band_period" json:"band_period" validate:"min=2" jsonschema:"title=Band Period,description=Number of trailing closes the bands are computed over,minimum=2,default=20"`
	Multiplier float64 `yaml:"multiplier" json:"multiplier" validate:"gt=0" jsonschema:"title=Multiplier,description=Band width in standard deviations,default=2"`
}

// DefaultEMABollingerParams returns EMA(10)/EMA(30) with 20-period bands.
func DefaultEMABollingerParams() EMABollingerParams {
	return EMABollingerParams{Fast: 10, Slow: 30, BandPeriod: 20, Multiplier: 2}
}

// EMABollinger trades EMA crossovers and, between crossovers, breaches of
// the trailing Bollinger bands.
type EMABollinger struct {
	params EMABollingerParams
}

// NewEMABollinger returns the ema_bollinger signaler.
func NewEMABollinger(params EMABollingerParams) *EMABollinger {
	return &EMABollinger{params: params}
}

// Name returns the registry key of the policy.
func (e *EMABollinger) Name() string {
	return "ema_bollinger"
}

// MinHistory returns the closes needed for a slow EMA crossing and the bands.
func (e *EMABollinger) MinHistory() int {
	return max(e.params.Slow+1, e.params.BandPeriod)
}

// Signal checks for an EMA crossing first and falls back to the bands.
func (e *EMABollinger) Signal(chart *game.Chart) types.Signal {
	closes := chart.Closes()
	fast := indicator.EMA(closes, e.params.Fast)
	slow := indicator.EMA(closes, e.params.Slow)

	if indicator.CrossedAbove(fast, slow) {
		return types.Signal{
			Action:    types.ActionBuy,
			Reason:    fmt.Sprintf("EMA(%d) crossed above EMA(%d)", e.params.Fast, e.params.Slow),
			Indicator: types.IndicatorTypeEMA,
		}
	}

	if indicator.CrossedBelow(fast, slow) {
		return types.Signal{
			Action:    types.ActionSell,
			Reason:    fmt.Sprintf("EMA(%d) crossed below EMA(%d)", e.params.Fast, e.params.Slow),
			Indicator: types.IndicatorTypeEMA,
		}
	}

	bands := indicator.BollingerBands(closes, e.params.BandPeriod, e.params.Multiplier)
	if !bands.Ready {
		return types.NoSignal("bands not ready")
	}

	return bandSignal(closes[len(closes)-1], bands)
}
