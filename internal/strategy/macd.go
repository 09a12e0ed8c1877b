package strategy

import (
	"fmt"

	"github.com/rxtech-lab/candle-bot/internal/game"
	"github.com/rxtech-lab/candle-bot/internal/indicator"
	"github.com/rxtech-lab/candle-bot/internal/types"
)

// MACDParams configures the macd policy.
type MACDParams struct {
	Fast   int `yaml:"fast" json:"fast" validate:"min=1" jsonschema:"title=Fast Period,description=Period of the fast EMA,minimum=1,default=12"`
	Slow   int `yaml:"slow" json:"slow" validate:"gtfield=Fast" jsonschema:"title=Slow Period,description=Period of the slow EMA,minimum=2,default=26"`
	Signal int `yaml:"signal" json:"signal" validate:"min=1" jsonschema:"title=Signal Period,description=Period of the signal line EMA,minimum=1,default=9"`
}

// DefaultMACDParams returns the classic 12/26/9 setup.
func DefaultMACDParams() MACDParams {
	return MACDParams{Fast: 12, Slow: 26, Signal: 9}
}

// minHistory is the number of closes needed for two histogram values.
func (p MACDParams) minHistory() int {
	return p.Slow + p.Signal
}

// MACD buys when the histogram turns positive and sells when it turns
// negative.
type MACD struct {
	params MACDParams
}

// NewMACD returns the macd signaler.
func NewMACD(params MACDParams) *MACD {
	return &MACD{params: params}
}

// Name returns the registry key of the policy.
func (m *MACD) Name() string {
	return "macd"
}

// MinHistory returns the closes needed for two histogram values.
func (m *MACD) MinHistory() int {
	return m.params.minHistory()
}

// Signal reports a histogram zero crossing on the latest close.
func (m *MACD) Signal(chart *game.Chart) types.Signal {
	result := indicator.MACD(chart.Closes(), m.params.Fast, m.params.Slow, m.params.Signal)

	return histogramSignal(result)
}

// histogramSignal reports a zero crossing of the MACD histogram, which is
// the MACD line crossing its signal line.
func histogramSignal(result indicator.MACDResult) types.Signal {
	if result.Len() < 2 {
		return types.NoSignal("histogram not ready")
	}

	histogram, _ := indicator.Last(result.Histogram)
	raw := map[string]float64{"histogram": histogram}

	switch {
	case indicator.CrossedAbove(result.Line, result.Signal):
		return types.Signal{
			Action:    types.ActionBuy,
			Reason:    fmt.Sprintf("MACD histogram turned positive (%.8g)", histogram),
			Indicator: types.IndicatorTypeMACD,
			RawValue:  raw,
		}
	case indicator.CrossedBelow(result.Line, result.Signal):
		return types.Signal{
			Action:    types.ActionSell,
			Reason:    fmt.Sprintf("MACD histogram turned negative (%.8g)", histogram),
			Indicator: types.IndicatorTypeMACD,
			RawValue:  raw,
		}
	default:
		return types.NoSignal("no histogram crossing")
	}
}
