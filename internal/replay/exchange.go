// Package replay plays a historical candle file through the engine against
// a simulated counterparty, the way the game server would.
package replay

import (
	"strings"

	"github.com/rxtech-lab/candle-bot/internal/game"
	"github.com/rxtech-lab/candle-bot/internal/types"
	"github.com/rxtech-lab/candle-bot/pkg/errors"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Exchange settles decisions against a set of balances. Amounts are kept as
// decimals so long replays do not accumulate rounding drift.
type Exchange struct {
	balances map[string]decimal.Decimal
	keep     decimal.Decimal
}

// NewExchange creates an exchange holding stacks and charging feePercent of
// every trade.
func NewExchange(stacks game.Stacks, feePercent float64) *Exchange {
	balances := make(map[string]decimal.Decimal, len(stacks))
	for symbol, value := range stacks {
		balances[symbol] = decimal.NewFromFloat(value)
	}

	return &Exchange{
		balances: balances,
		keep:     decimal.NewFromInt(1).Sub(decimal.NewFromFloat(feePercent).Div(hundred)),
	}
}

// Fill settles d at price. A buy spends quantity*price of the quote currency
// and receives the quantity less the fee. A sell gives the proceeds less the
// fee. Fills exceeding a balance are rejected and leave balances untouched.
func (x *Exchange) Fill(d types.Decision, price float64) error {
	if d.IsHold() {
		return nil
	}

	quote, base, err := game.SplitPair(d.Pair)
	if err != nil {
		return err
	}

	quantity := decimal.NewFromFloat(d.Quantity).Truncate(8)
	p := decimal.NewFromFloat(price)

	if !quantity.IsPositive() || !p.IsPositive() {
		return errors.Newf(errors.ErrCodeFillRejected, "cannot fill %s", d)
	}

	switch d.Action {
	case types.ActionBuy:
		cost := quantity.Mul(p)
		if cost.GreaterThan(x.balances[quote]) {
			return errors.Newf(errors.ErrCodeFillRejected, "buy costs %s %s, balance is %s", cost, quote, x.balances[quote])
		}

		x.balances[quote] = x.balances[quote].Sub(cost)
		x.balances[base] = x.balances[base].Add(quantity.Mul(x.keep))
	case types.ActionSell:
		if quantity.GreaterThan(x.balances[base]) {
			return errors.Newf(errors.ErrCodeFillRejected, "sell of %s %s exceeds balance %s", quantity, base, x.balances[base])
		}

		x.balances[base] = x.balances[base].Sub(quantity)
		x.balances[quote] = x.balances[quote].Add(quantity.Mul(p).Mul(x.keep))
	default:
		return errors.Newf(errors.ErrCodeFillRejected, "unknown action %q", d.Action)
	}

	return nil
}

// Stacks returns the current balances.
func (x *Exchange) Stacks() game.Stacks {
	stacks := make(game.Stacks, len(x.balances))
	for symbol, value := range x.balances {
		stacks[symbol] = value.InexactFloat64()
	}

	return stacks
}

// Value returns the balance of quote plus base valued at price.
func (x *Exchange) Value(quote, base string, price float64) float64 {
	return x.balances[quote].Add(x.balances[base].Mul(decimal.NewFromFloat(price))).InexactFloat64()
}

// StacksLine renders the balances as an "update game stacks" line.
func (x *Exchange) StacksLine() string {
	stacks := make([]string, 0, len(x.balances))
	for _, symbol := range sortedSymbols(x.balances) {
		stacks = append(stacks, symbol+":"+x.balances[symbol].StringFixed(8))
	}

	return "update game stacks " + strings.Join(stacks, ",")
}
