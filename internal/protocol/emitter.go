package protocol

import (
	"bufio"
	"io"
	"math"
	"strings"

	"github.com/rxtech-lab/candle-bot/internal/types"
	"github.com/rxtech-lab/candle-bot/pkg/errors"
	"github.com/shopspring/decimal"
)

// NoMoves is the reply for a turn without a trade.
const NoMoves = "no_moves"

// quantityPlaces is the number of decimals written for a trade quantity.
const quantityPlaces = 8

// Emitter writes one reply line per decision.
type Emitter struct {
	w *bufio.Writer
}

// NewEmitter returns an emitter writing to w.
func NewEmitter(w io.Writer) *Emitter {
	return &Emitter{w: bufio.NewWriter(w)}
}

// Emit writes the reply for d and flushes it so the game engine sees it
// immediately.
func (e *Emitter) Emit(d types.Decision) error {
	if _, err := e.w.WriteString(FormatDecision(d) + "\n"); err != nil {
		return errors.Wrap(errors.ErrCodeEmitFailed, "failed to write decision", err)
	}

	if err := e.w.Flush(); err != nil {
		return errors.Wrap(errors.ErrCodeEmitFailed, "failed to flush decision", err)
	}

	return nil
}

// FormatDecision renders d as a protocol line without the newline. A trade
// without a pair, with a non-finite quantity or with a quantity that rounds to
// zero is sent as no_moves.
func FormatDecision(d types.Decision) string {
	if d.IsHold() || d.Pair == "" || math.IsNaN(d.Quantity) || math.IsInf(d.Quantity, 0) {
		return NoMoves
	}

	quantity := decimal.NewFromFloat(d.Quantity).Truncate(quantityPlaces)
	if !quantity.IsPositive() {
		return NoMoves
	}

	return strings.Join([]string{string(d.Action), d.Pair, quantity.StringFixed(quantityPlaces)}, " ")
}
