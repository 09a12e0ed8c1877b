package strategy

import (
	"github.com/rxtech-lab/candle-bot/internal/game"
	"github.com/rxtech-lab/candle-bot/internal/indicator"
	"github.com/rxtech-lab/candle-bot/internal/types"
)

// BollingerMACDParams configures the bollinger_macd policy.
type BollingerMACDParams struct {
	MACDParams `yaml:",inline"`
	BandPeriod int        `yaml:"band_period" json:"band_period" validate:"min=2" jsonschema:"title=Band Period,description=Number of closes the bands are computed over,minimum=2,default=30"`
	Multiplier float64    `yaml:"multiplier" json:"multiplier" validate:"gt=0" jsonschema:"title=Multiplier,description=Band width in standard deviations,default=2"`
	Window     BandWindow `yaml:"window" json:"window" validate:"oneof=leading trailing" jsonschema:"title=Window,description=Which closes the bands are anchored at,enum=leading,enum=trailing,default=leading"`
}

// DefaultBollingerMACDParams returns MACD(12,26,9) with leading 30-period bands.
func DefaultBollingerMACDParams() BollingerMACDParams {
	return BollingerMACDParams{
		MACDParams: DefaultMACDParams(),
		BandPeriod: 30,
		Multiplier: 2,
		Window:     WindowLeading,
	}
}

// BollingerMACD requires a MACD histogram crossing confirmed by a band
// breach in the same direction.
type BollingerMACD struct {
	params BollingerMACDParams
}

// NewBollingerMACD returns the bollinger_macd signaler.
func NewBollingerMACD(params BollingerMACDParams) *BollingerMACD {
	return &BollingerMACD{params: params}
}

// Name returns the registry key of the policy.
func (b *BollingerMACD) Name() string {
	return "bollinger_macd"
}

// MinHistory returns the longer of the MACD and band requirements.
func (b *BollingerMACD) MinHistory() int {
	return max(b.params.minHistory(), b.params.BandPeriod+1)
}

// Signal returns a trade only when the histogram crossing and the band
// breach agree.
func (b *BollingerMACD) Signal(chart *game.Chart) types.Signal {
	closes := chart.Closes()

	crossing := histogramSignal(indicator.MACD(closes, b.params.Fast, b.params.Slow, b.params.Signal))
	if crossing.Action == types.ActionHold {
		return crossing
	}

	bands := b.params.Window.bands(closes, b.params.BandPeriod, b.params.Multiplier)
	if !bands.Ready {
		return types.NoSignal("bands not ready")
	}

	breach := bandSignal(closes[len(closes)-1], bands)
	if breach.Action != crossing.Action {
		return types.NoSignal("histogram crossing not confirmed by bands")
	}

	breach.Reason = crossing.Reason + " and " + breach.Reason
	breach.RawValue["histogram"] = crossing.RawValue["histogram"]

	return breach
}
