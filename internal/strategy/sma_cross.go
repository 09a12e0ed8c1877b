package strategy

import (
	"fmt"

	"github.com/rxtech-lab/candle-bot/internal/game"
	"github.com/rxtech-lab/candle-bot/internal/indicator"
	"github.com/rxtech-lab/candle-bot/internal/types"
)

// SMACrossParams configures the sma_cross policy.
type SMACrossParams struct {
	Short int `yaml:"short" json:"short" validate:"min=1" jsonschema:"title=Short Period,description=Period of the fast moving average,minimum=1,default=20"`
	Long  int `yaml:"long" json:"long" validate:"gtfield=Short" jsonschema:"title=Long Period,description=Period of the slow moving average,minimum=2,default=40"`
}

// DefaultSMACrossParams returns 20 and 40 period averages.
func DefaultSMACrossParams() SMACrossParams {
	return SMACrossParams{Short: 20, Long: 40}
}

// SMACross buys while the short average is above the long one and sells
// while it is below. Debouncing turns this into one trade per regime.
type SMACross struct {
	params SMACrossParams
}

// NewSMACross returns the sma_cross signaler.
func NewSMACross(params SMACrossParams) *SMACross {
	return &SMACross{params: params}
}

// Name returns the registry key of the policy.
func (s *SMACross) Name() string {
	return "sma_cross"
}

// MinHistory returns the long period.
func (s *SMACross) MinHistory() int {
	return s.params.Long
}

// Signal compares the two averages.
func (s *SMACross) Signal(chart *game.Chart) types.Signal {
	closes := chart.Closes()
	short := indicator.SMA(closes, s.params.Short)
	long := indicator.SMA(closes, s.params.Long)
	raw := map[string]float64{"short": short, "long": long}

	switch {
	case short > long:
		return types.Signal{
			Action:    types.ActionBuy,
			Reason:    fmt.Sprintf("SMA(%d) %.8g above SMA(%d) %.8g", s.params.Short, short, s.params.Long, long),
			Indicator: types.IndicatorTypeSMA,
			RawValue:  raw,
		}
	case short < long:
		return types.Signal{
			Action:    types.ActionSell,
			Reason:    fmt.Sprintf("SMA(%d) %.8g below SMA(%d) %.8g", s.params.Short, short, s.params.Long, long),
			Indicator: types.IndicatorTypeSMA,
			RawValue:  raw,
		}
	default:
		return types.NoSignal("averages equal")
	}
}
