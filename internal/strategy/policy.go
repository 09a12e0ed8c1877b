// Package strategy contains the decision policies. A policy looks at the
// game state once per turn and answers with a Decision.
//
// Every policy shipped here is a Signaler wrapped in Debounced: the Signaler
// only computes a raw trigger from the pair's chart, while Debounced applies
// the shared rules (history gate, balance gate, debounce, sizing).
package strategy

import (
	"fmt"
	"math"

	"github.com/go-playground/validator/v10"
	"github.com/rxtech-lab/candle-bot/internal/game"
	"github.com/rxtech-lab/candle-bot/internal/types"
	"github.com/rxtech-lab/candle-bot/pkg/errors"
)

// Policy decides what to do in one turn.
type Policy interface {
	// Name returns the registry name of the policy.
	Name() string
	// Decide returns the decision for the current state. It never fails:
	// anything that prevents a trade results in a hold.
	Decide(state *game.State) types.Decision
}

// Signaler computes the raw trigger of a policy from a chart.
type Signaler interface {
	Name() string
	// MinHistory is the number of candles Signal needs.
	MinHistory() int
	// Signal evaluates the trigger. It is only called with charts holding
	// at least MinHistory candles.
	Signal(chart *game.Chart) types.Signal
}

// Options are the trading settings shared by every policy.
type Options struct {
	// Pair is the traded instrument, QUOTE_BASE
	Pair string `yaml:"pair" json:"pair" validate:"required"`
	// Fraction of the quote balance committed per trade
	Fraction float64 `yaml:"fraction" json:"fraction" validate:"gt=0,lte=1"`
	// MinQuoteBalance below which no trade is attempted
	MinQuoteBalance float64 `yaml:"min_quote_balance" json:"min_quote_balance" validate:"gte=0"`
}

// DefaultOptions returns the options used when nothing is configured.
func DefaultOptions() Options {
	return Options{
		Pair:            "USDT_BTC",
		Fraction:        0.2,
		MinQuoteBalance: 0,
	}
}

// Validate checks the options.
func (o Options) Validate() error {
	validate := validator.New()
	if err := validate.Struct(o); err != nil {
		return errors.Wrap(errors.ErrCodeStrategyConfigError, "invalid policy options", err)
	}

	if _, _, err := game.SplitPair(o.Pair); err != nil {
		return err
	}

	return nil
}

// Debounced turns a Signaler into a Policy. It remembers the last action it
// emitted and suppresses a repeat of it.
type Debounced struct {
	signaler Signaler
	options  Options
	quote    string
	base     string
	last     types.Action
}

// NewDebounced wraps signaler with the shared decision rules.
func NewDebounced(signaler Signaler, options Options) (*Debounced, error) {
	if err := options.Validate(); err != nil {
		return nil, err
	}

	quote, base, _ := game.SplitPair(options.Pair)

	return &Debounced{
		signaler: signaler,
		options:  options,
		quote:    quote,
		base:     base,
		last:     types.ActionHold,
	}, nil
}

// Name returns the name of the wrapped signaler.
func (d *Debounced) Name() string {
	return d.signaler.Name()
}

// LastAction returns the last emitted action, ActionHold before the first
// trade.
func (d *Debounced) LastAction() types.Action {
	return d.last
}

// Decide implements Policy.
func (d *Debounced) Decide(state *game.State) types.Decision {
	chart, ok := state.Charts[d.options.Pair]
	if !ok || chart.Len() == 0 {
		return d.hold(errors.Newf(errors.ErrCodeChartNotFound, "no chart for %s", d.options.Pair).Error())
	}

	price := chart.Last().Unwrap().Close
	if !finite(price) || price <= 0 {
		return d.hold(fmt.Sprintf("non-positive price %v", price))
	}

	quoteBalance := state.Stacks.Balance(d.quote)
	if quoteBalance < d.options.MinQuoteBalance {
		return d.hold(fmt.Sprintf("%s balance %v below %v", d.quote, quoteBalance, d.options.MinQuoteBalance))
	}

	if required := d.signaler.MinHistory(); chart.Len() < required {
		return d.hold(errors.NewInsufficientDataErrorf(required, chart.Len(), d.options.Pair,
			"waiting for history: %s has %d of %d candles", d.options.Pair, chart.Len(), required).Error())
	}

	signal := d.signaler.Signal(chart)
	if signal.Action == types.ActionHold || signal.Action == "" {
		return d.hold(signal.Reason)
	}

	if signal.Action == d.last {
		return d.hold(fmt.Sprintf("repeated %s suppressed", signal.Action))
	}

	affordable := quoteBalance / price
	quantity := d.options.Fraction * affordable

	switch signal.Action {
	case types.ActionBuy:
		if affordable <= 0 {
			return d.hold(fmt.Sprintf("no %s to buy with", d.quote))
		}
	case types.ActionSell:
		baseBalance := state.Stacks.Balance(d.base)
		if baseBalance <= 0 {
			return d.hold(fmt.Sprintf("no %s to sell", d.base))
		}

		quantity = min(quantity, baseBalance)
	default:
		return d.hold(fmt.Sprintf("unknown action %q", signal.Action))
	}

	if !finite(quantity) {
		return d.hold(fmt.Sprintf("quantity %v at price %v is not finite", quantity, price))
	}

	if quantity <= 0 {
		return d.hold("nothing to trade")
	}

	d.last = signal.Action

	return types.Decision{
		Action:   signal.Action,
		Pair:     d.options.Pair,
		Quantity: quantity,
		Price:    price,
		Reason:   signal.Reason,
		Policy:   d.Name(),
	}
}

func (d *Debounced) hold(reason string) types.Decision {
	decision := types.Hold(reason)
	decision.Policy = d.Name()

	return decision
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
