package strategy

import (
	"github.com/rxtech-lab/candle-bot/internal/game"
	"github.com/rxtech-lab/candle-bot/internal/indicator"
	"github.com/rxtech-lab/candle-bot/internal/types"
)

// GainLossParams configures the gain_loss policy.
type GainLossParams struct {
	Period int `yaml:"period" json:"period" validate:"min=1" jsonschema:"title=Period,description=Smoothing period of the average gain and loss,minimum=1,default=5"`
}

// DefaultGainLossParams returns a 5-period oscillator.
func DefaultGainLossParams() GainLossParams {
	return GainLossParams{Period: 5}
}

// GainLoss trades flips of the gain/loss oscillator against the trend: a
// flip to bearish buys the dip and a flip to bullish sells the bounce.
type GainLoss struct {
	params GainLossParams
}

// NewGainLoss returns the gain_loss signaler.
func NewGainLoss(params GainLossParams) *GainLoss {
	return &GainLoss{params: params}
}

// Name returns the registry key of the policy.
func (g *GainLoss) Name() string {
	return "gain_loss"
}

// MinHistory covers the oscillator of the previous turn as well.
func (g *GainLoss) MinHistory() int {
	return g.params.Period + 2
}

// Signal compares the oscillator of this turn with the previous one.
func (g *GainLoss) Signal(chart *game.Chart) types.Signal {
	closes := chart.Closes()

	previous := indicator.GainLossOscillator(closes[:len(closes)-1], g.params.Period)
	current := indicator.GainLossOscillator(closes, g.params.Period)

	if !previous.Ready || !current.Ready {
		return types.NoSignal("oscillator not ready")
	}

	raw := map[string]float64{"avg_gain": current.AvgGain, "avg_loss": current.AvgLoss}

	switch {
	case previous.Bullish && !current.Bullish:
		return types.Signal{
			Action:    types.ActionBuy,
			Reason:    "gain/loss oscillator turned bearish",
			Indicator: types.IndicatorTypeGainLoss,
			RawValue:  raw,
		}
	case !previous.Bullish && current.Bullish:
		return types.Signal{
			Action:    types.ActionSell,
			Reason:    "gain/loss oscillator turned bullish",
			Indicator: types.IndicatorTypeGainLoss,
			RawValue:  raw,
		}
	default:
		return types.NoSignal("gain/loss oscillator unchanged")
	}
}
