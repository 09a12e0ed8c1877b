package strategy

import (
	"math"
	"testing"

	"github.com/rxtech-lab/candle-bot/internal/game"
	"github.com/rxtech-lab/candle-bot/internal/types"
	"github.com/rxtech-lab/candle-bot/pkg/errors"
	"github.com/stretchr/testify/suite"
)

type DebouncedTestSuite struct {
	suite.Suite
}

func TestDebouncedSuite(t *testing.T) {
	suite.Run(t, new(DebouncedTestSuite))
}

func (suite *DebouncedTestSuite) newPolicy(script ...types.Action) *Debounced {
	policy, err := NewDebounced(&scriptedSignaler{script: script, minHistory: 1}, DefaultOptions())
	suite.Require().NoError(err)

	return policy
}

func (suite *DebouncedTestSuite) TestRepeatedBuyIsSuppressed() {
	policy := suite.newPolicy(types.ActionBuy)
	state := newState(game.Stacks{"USDT": 1000, "BTC": 0}, 100)

	first := policy.Decide(state)
	suite.Equal(types.ActionBuy, first.Action)
	suite.Equal(testPair, first.Pair)
	suite.InDelta(2.0, first.Quantity, 1e-12)
	suite.Equal(100.0, first.Price)
	suite.Equal("scripted", first.Policy)

	second := policy.Decide(state)
	suite.True(second.IsHold())
	suite.Equal(types.ActionBuy, policy.LastAction())
}

func (suite *DebouncedTestSuite) TestAlternatingActionsPassThrough() {
	policy := suite.newPolicy(types.ActionBuy, types.ActionSell, types.ActionBuy)
	state := newState(game.Stacks{"USDT": 1000, "BTC": 5}, 100)

	suite.Equal(types.ActionBuy, policy.Decide(state).Action)
	suite.Equal(types.ActionSell, policy.Decide(state).Action)
	suite.Equal(types.ActionBuy, policy.Decide(state).Action)
}

func (suite *DebouncedTestSuite) TestHoldDoesNotResetDebounce() {
	policy := suite.newPolicy(types.ActionBuy, types.ActionHold, types.ActionBuy)
	state := newState(game.Stacks{"USDT": 1000}, 100)

	suite.Equal(types.ActionBuy, policy.Decide(state).Action)
	suite.True(policy.Decide(state).IsHold())
	suite.True(policy.Decide(state).IsHold())
}

func (suite *DebouncedTestSuite) TestSellIsCappedAtBaseBalance() {
	policy := suite.newPolicy(types.ActionSell)

	capped := policy.Decide(newState(game.Stacks{"USDT": 1000, "BTC": 0.5}, 100))
	suite.Equal(types.ActionSell, capped.Action)
	suite.InDelta(0.5, capped.Quantity, 1e-12)

	policy = suite.newPolicy(types.ActionSell)
	uncapped := policy.Decide(newState(game.Stacks{"USDT": 1000, "BTC": 10}, 100))
	suite.InDelta(2.0, uncapped.Quantity, 1e-12)
}

func (suite *DebouncedTestSuite) TestNonFiniteSizingHolds() {
	tests := []struct {
		name   string
		stacks game.Stacks
		close  float64
	}{
		{name: "infinite quote balance", stacks: game.Stacks{"USDT": math.Inf(1)}, close: 100},
		{name: "nan quote balance", stacks: game.Stacks{"USDT": math.NaN()}, close: 100},
		{name: "denormal price", stacks: game.Stacks{"USDT": 1000}, close: 5e-324},
		{name: "nan price", stacks: game.Stacks{"USDT": 1000}, close: math.NaN()},
	}

	for _, tc := range tests {
		suite.Run(tc.name, func() {
			policy := suite.newPolicy(types.ActionBuy)

			decision := policy.Decide(newState(tc.stacks, tc.close))
			suite.True(decision.IsHold(), "got %v", decision)
			suite.Equal(types.ActionHold, policy.LastAction())
		})
	}
}

func (suite *DebouncedTestSuite) TestGates() {
	tests := []struct {
		name    string
		state   *game.State
		options Options
		action  types.Action
		history int
	}{
		{
			name:   "missing chart",
			state:  game.NewState(),
			action: types.ActionBuy,
		},
		{
			name:   "zero price",
			state:  newState(game.Stacks{"USDT": 1000}, 0),
			action: types.ActionBuy,
		},
		{
			name:    "quote below minimum",
			state:   newState(game.Stacks{"USDT": 50}, 100),
			options: Options{Pair: testPair, Fraction: 0.2, MinQuoteBalance: 100},
			action:  types.ActionBuy,
		},
		{
			name:    "insufficient history",
			state:   newState(game.Stacks{"USDT": 1000}, 100, 101),
			action:  types.ActionBuy,
			history: 3,
		},
		{
			name:   "nothing to buy with",
			state:  newState(game.Stacks{"BTC": 1}, 100),
			action: types.ActionBuy,
		},
		{
			name:   "nothing to sell",
			state:  newState(game.Stacks{"USDT": 1000}, 100),
			action: types.ActionSell,
		},
		{
			name:   "sell without quote has zero size",
			state:  newState(game.Stacks{"BTC": 1}, 100),
			action: types.ActionSell,
		},
	}

	for _, tc := range tests {
		suite.Run(tc.name, func() {
			options := tc.options
			if options.Pair == "" {
				options = DefaultOptions()
			}

			history := tc.history
			if history == 0 {
				history = 1
			}

			policy, err := NewDebounced(&scriptedSignaler{script: []types.Action{tc.action}, minHistory: history}, options)
			suite.Require().NoError(err)

			decision := policy.Decide(tc.state)
			suite.True(decision.IsHold(), decision.String())
			suite.NotEmpty(decision.Reason)
			suite.Equal(types.ActionHold, policy.LastAction())
		})
	}
}

func (suite *DebouncedTestSuite) TestInvalidOptions() {
	signaler := &scriptedSignaler{script: []types.Action{types.ActionBuy}}

	for _, options := range []Options{
		{Pair: testPair, Fraction: 0},
		{Pair: testPair, Fraction: 1.5},
		{Pair: testPair, Fraction: 0.2, MinQuoteBalance: -1},
		{Pair: "", Fraction: 0.2},
		{Pair: "USDTBTC", Fraction: 0.2},
	} {
		_, err := NewDebounced(signaler, options)
		suite.Error(err, "%+v", options)
	}

	_, err := NewDebounced(signaler, Options{Pair: testPair, Fraction: 0})
	suite.True(errors.HasCode(err, errors.ErrCodeStrategyConfigError))
}
