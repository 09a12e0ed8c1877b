package game

import (
	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/candle-bot/internal/types"
)

// State is everything the bot knows about the running match. It is only
// mutated by the protocol parser and read by the policies.
type State struct {
	// Date is the date of the most recent candle batch, unix seconds
	Date     int64
	Settings types.Settings
	Stacks   Stacks
	Charts   map[string]*Chart
}

// NewState returns the state of a match before any input has been read.
func NewState() *State {
	return &State{
		Settings: types.DefaultSettings(),
		Stacks:   make(Stacks),
		Charts:   make(map[string]*Chart),
	}
}

// Chart returns the chart of pair, if any candle for it has been seen.
func (s *State) Chart(pair string) optional.Option[*Chart] {
	chart, ok := s.Charts[pair]
	if !ok {
		return optional.None[*Chart]()
	}

	return optional.Some(chart)
}

// AddCandle appends candle to its pair's chart, creating the chart on first
// sight.
func (s *State) AddCandle(candle types.Candle) error {
	chart, ok := s.Charts[candle.Pair]
	if !ok {
		chart = NewChart(candle.Pair)
		s.Charts[candle.Pair] = chart
	}

	return chart.Add(candle)
}

// ReplaceStacks swaps in a complete set of balances. Symbols missing from
// stacks are dropped.
func (s *State) ReplaceStacks(stacks Stacks) {
	s.Stacks = stacks
}
