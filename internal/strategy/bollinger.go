package strategy

import (
	"fmt"

	"github.com/rxtech-lab/candle-bot/internal/game"
	"github.com/rxtech-lab/candle-bot/internal/indicator"
	"github.com/rxtech-lab/candle-bot/internal/types"
)

// BandWindow selects which closes Bollinger bands are computed over.
type BandWindow string

const (
	// WindowLeading anchors the bands at the first period closes of the
	// chart, so they stay fixed for the whole match.
	WindowLeading BandWindow = "leading"
	// WindowTrailing recomputes the bands over the latest period closes.
	WindowTrailing BandWindow = "trailing"
)

// bands computes Bollinger bands over closes using window.
func (w BandWindow) bands(closes []float64, period int, multiplier float64) indicator.Bands {
	if w == WindowLeading && len(closes) > period {
		closes = closes[:period]
	}

	return indicator.BollingerBands(closes, period, multiplier)
}

// BollingerParams configures the bollinger policy.
type BollingerParams struct {
	Period     int        `yaml:"period" json:"period" validate:"min=2" jsonschema:"title=Period,description=Number of closes the bands are computed over,minimum=2,default=20"`
	Multiplier float64    `yaml:"multiplier" json:"multiplier" validate:"gt=0" jsonschema:"title=Multiplier,description=Band width in standard deviations,default=2"`
	Window     BandWindow `yaml:"window" json:"window" validate:"oneof=leading trailing" jsonschema:"title=Window,description=Which closes the bands are anchored at,enum=leading,enum=trailing,default=leading"`
}

// DefaultBollingerParams returns the reference configuration.
func DefaultBollingerParams() BollingerParams {
	return BollingerParams{Period: 20, Multiplier: 2, Window: WindowLeading}
}

// Bollinger buys when the close drops below the lower band and sells when it
// rises above the upper band.
type Bollinger struct {
	params BollingerParams
}

// NewBollinger returns the bollinger signaler.
func NewBollinger(params BollingerParams) *Bollinger {
	return &Bollinger{params: params}
}

// Name returns the registry key of the policy.
func (b *Bollinger) Name() string {
	return "bollinger"
}

// MinHistory returns one close more than the band period.
func (b *Bollinger) MinHistory() int {
	return b.params.Period + 1
}

// Signal compares the latest close with the bands.
func (b *Bollinger) Signal(chart *game.Chart) types.Signal {
	closes := chart.Closes()
	price := closes[len(closes)-1]

	bands := b.params.Window.bands(closes, b.params.Period, b.params.Multiplier)
	if !bands.Ready {
		return types.NoSignal("bands not ready")
	}

	return bandSignal(price, bands)
}

// bandSignal reports a breach of bands by price.
func bandSignal(price float64, bands indicator.Bands) types.Signal {
	raw := map[string]float64{
		"price":  price,
		"upper":  bands.Upper,
		"middle": bands.Middle,
		"lower":  bands.Lower,
	}

	switch {
	case price < bands.Lower:
		return types.Signal{
			Action:    types.ActionBuy,
			Reason:    fmt.Sprintf("close %.8g below lower band %.8g", price, bands.Lower),
			Indicator: types.IndicatorTypeBollingerBands,
			RawValue:  raw,
		}
	case price > bands.Upper:
		return types.Signal{
			Action:    types.ActionSell,
			Reason:    fmt.Sprintf("close %.8g above upper band %.8g", price, bands.Upper),
			Indicator: types.IndicatorTypeBollingerBands,
			RawValue:  raw,
		}
	default:
		return types.NoSignal("close inside bands")
	}
}
