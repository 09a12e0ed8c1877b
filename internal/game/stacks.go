package game

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/candle-bot/pkg/errors"
)

// Stacks maps a currency symbol to the balance held in it.
type Stacks map[string]float64

// ParseStacks parses a "symbol:value,symbol:value" payload. Balances must be
// finite non-negative numbers.
func ParseStacks(payload string) (Stacks, error) {
	payload = strings.TrimSpace(payload)
	stacks := make(Stacks)

	if payload == "" {
		return stacks, nil
	}

	for _, entry := range strings.Split(payload, ",") {
		symbol, raw, ok := strings.Cut(strings.TrimSpace(entry), ":")
		symbol = strings.TrimSpace(symbol)

		if !ok || symbol == "" {
			return nil, errors.Newf(errors.ErrCodeMalformedStack, "malformed stack entry %q", entry)
		}

		value, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			return nil, errors.Wrapf(errors.ErrCodeInvalidNumber, err, "invalid balance %q for %s", raw, symbol)
		}

		if math.IsNaN(value) || math.IsInf(value, 0) {
			return nil, errors.Newf(errors.ErrCodeInvalidNumber, "balance %q for %s is not a finite number", raw, symbol)
		}

		if value < 0 {
			return nil, errors.Newf(errors.ErrCodeNegativeBalance, "negative balance %v for %s", value, symbol)
		}

		stacks[symbol] = value
	}

	return stacks, nil
}

// Get returns the balance of symbol, if it is known.
func (s Stacks) Get(symbol string) optional.Option[float64] {
	value, ok := s[symbol]
	if !ok {
		return optional.None[float64]()
	}

	return optional.Some(value)
}

// Balance returns the balance of symbol, zero if it is unknown.
func (s Stacks) Balance(symbol string) float64 {
	return s.Get(symbol).TakeOr(0)
}

func (s Stacks) String() string {
	symbols := make([]string, 0, len(s))
	for symbol := range s {
		symbols = append(symbols, symbol)
	}

	sort.Strings(symbols)

	parts := make([]string, len(symbols))
	for i, symbol := range symbols {
		parts[i] = symbol + ":" + strconv.FormatFloat(s[symbol], 'f', -1, 64)
	}

	return strings.Join(parts, ",")
}

// SplitPair splits a "QUOTE_BASE" pair such as USDT_BTC into its two
// currency symbols.
func SplitPair(pair string) (quote string, base string, err error) {
	quote, base, ok := strings.Cut(pair, "_")
	if !ok || quote == "" || base == "" || strings.Contains(base, "_") {
		return "", "", errors.Newf(errors.ErrCodeInvalidParameter, "pair %q must have the form QUOTE_BASE", pair)
	}

	return quote, base, nil
}
