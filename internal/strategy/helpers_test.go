package strategy

import (
	"github.com/rxtech-lab/candle-bot/internal/game"
	"github.com/rxtech-lab/candle-bot/internal/types"
	"github.com/rxtech-lab/candle-bot/mocks"
)

const testPair = "USDT_BTC"

// newState returns a state holding a chart of closes for testPair.
func newState(stacks game.Stacks, closes ...float64) *game.State {
	state := game.NewState()
	state.ReplaceStacks(stacks)

	for _, c := range mocks.Closes(testPair, 1516147200, 1800, closes...) {
		if err := state.AddCandle(c); err != nil {
			panic(err)
		}
	}

	return state
}

// replay feeds candles one by one and collects a decision after each.
func replay(policy Policy, stacks game.Stacks, candles []types.Candle) []types.Decision {
	state := game.NewState()
	state.ReplaceStacks(stacks)

	decisions := make([]types.Decision, 0, len(candles))

	for _, c := range candles {
		if err := state.AddCandle(c); err != nil {
			panic(err)
		}

		state.Date = c.Date
		decisions = append(decisions, policy.Decide(state))
	}

	return decisions
}

// trades returns the non-hold decisions.
func trades(decisions []types.Decision) []types.Decision {
	var out []types.Decision

	for _, d := range decisions {
		if !d.IsHold() {
			out = append(out, d)
		}
	}

	return out
}

// scriptedSignaler returns the actions of its script in order, one per call.
type scriptedSignaler struct {
	script     []types.Action
	minHistory int
	calls      int
}

func (s *scriptedSignaler) Name() string {
	return "scripted"
}

func (s *scriptedSignaler) MinHistory() int {
	return s.minHistory
}

func (s *scriptedSignaler) Signal(*game.Chart) types.Signal {
	action := s.script[s.calls%len(s.script)]
	s.calls++

	return types.Signal{Action: action, Reason: "scripted " + string(action)}
}
