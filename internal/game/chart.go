// Package game holds the state of a running match: the announced settings,
// the current balances and one price chart per traded pair.
package game

import (
	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/candle-bot/internal/types"
	"github.com/rxtech-lab/candle-bot/pkg/errors"
)

// Chart is the append-only candle history of one pair, kept as parallel
// series so indicators can run over them without copying.
type Chart struct {
	pair    string
	dates   []int64
	opens   []float64
	highs   []float64
	lows    []float64
	closes  []float64
	volumes []float64
}

// NewChart creates an empty chart for pair.
func NewChart(pair string) *Chart {
	return &Chart{pair: pair}
}

// Pair returns the instrument the chart belongs to.
func (c *Chart) Pair() string {
	return c.pair
}

// Add appends a candle. Candles must belong to the chart's pair and be
// strictly newer than the last one.
func (c *Chart) Add(candle types.Candle) error {
	if candle.Pair != c.pair {
		return errors.Newf(errors.ErrCodeMalformedLine, "candle for %s added to chart %s", candle.Pair, c.pair)
	}

	if n := len(c.dates); n > 0 && candle.Date <= c.dates[n-1] {
		return errors.Newf(errors.ErrCodeOutOfOrderCandle,
			"candle date %d for %s is not after the last date %d", candle.Date, c.pair, c.dates[n-1])
	}

	c.dates = append(c.dates, candle.Date)
	c.opens = append(c.opens, candle.Open)
	c.highs = append(c.highs, candle.High)
	c.lows = append(c.lows, candle.Low)
	c.closes = append(c.closes, candle.Close)
	c.volumes = append(c.volumes, candle.Volume)

	return nil
}

// Len returns the number of candles in the chart.
func (c *Chart) Len() int {
	return len(c.dates)
}

// Last returns the most recent candle, if any.
func (c *Chart) Last() optional.Option[types.Candle] {
	i := len(c.dates) - 1
	if i < 0 {
		return optional.None[types.Candle]()
	}

	return optional.Some(c.At(i))
}

// At returns the i-th candle. It panics if i is out of range.
func (c *Chart) At(i int) types.Candle {
	return types.Candle{
		Pair:   c.pair,
		Date:   c.dates[i],
		Open:   c.opens[i],
		High:   c.highs[i],
		Low:    c.lows[i],
		Close:  c.closes[i],
		Volume: c.volumes[i],
	}
}

// The series accessors return the chart's backing slices. Callers must not
// modify them.

func (c *Chart) Dates() []int64     { return c.dates }
func (c *Chart) Opens() []float64   { return c.opens }
func (c *Chart) Highs() []float64   { return c.highs }
func (c *Chart) Lows() []float64    { return c.lows }
func (c *Chart) Closes() []float64  { return c.closes }
func (c *Chart) Volumes() []float64 { return c.volumes }
