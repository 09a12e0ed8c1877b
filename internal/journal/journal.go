// Package journal records every decision the bot takes so a match can be
// analysed afterwards.
package journal

import (
	"time"

	"github.com/rxtech-lab/candle-bot/internal/types"
)

// Entry is one recorded decision.
type Entry struct {
	// TurnDate is the date of the candle batch the decision answered
	TurnDate time.Time
	Decision types.Decision
}

// Journal records decisions.
type Journal interface {
	Record(entry Entry) error
	// Flush persists everything recorded so far.
	Flush() error
	Close() error
}

// Nop discards every entry.
type Nop struct{}

func (Nop) Record(Entry) error { return nil }
func (Nop) Flush() error       { return nil }
func (Nop) Close() error       { return nil }
