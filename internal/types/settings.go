package types

import (
	"strconv"
	"strings"

	"github.com/rxtech-lab/candle-bot/pkg/errors"
)

// SettingKey is the name of a "settings <key> <value>" protocol option.
type SettingKey string

const (
	SettingTimebank              SettingKey = "timebank"
	SettingTimePerMove           SettingKey = "time_per_move"
	SettingCandleInterval        SettingKey = "candle_interval"
	SettingCandleFormat          SettingKey = "candle_format"
	SettingCandlesTotal          SettingKey = "candles_total"
	SettingCandlesGiven          SettingKey = "candles_given"
	SettingInitialStack          SettingKey = "initial_stack"
	SettingTransactionFeePercent SettingKey = "transaction_fee_percent"
)

// Settings holds the game options announced at the start of a match.
type Settings struct {
	// Timebank is the remaining time bank in milliseconds
	Timebank int
	// MaxTimebank is the time bank the match started with
	MaxTimebank int
	// TimePerMove is the time added to the bank each move, in milliseconds
	TimePerMove int
	// CandleInterval is the number of seconds between two candles
	CandleInterval int
	// CandleFormat is the field order of candle records
	CandleFormat CandleFormat
	// CandlesTotal is the number of candles in the match
	CandlesTotal int
	// CandlesGiven is the number of candles sent before the first action
	CandlesGiven int
	// InitialStack is the starting balance of the quote currency
	InitialStack int
	// TransactionFeePercent is the fee charged on every trade
	TransactionFeePercent float64
}

// DefaultSettings returns the settings in effect before any "settings" line.
func DefaultSettings() Settings {
	return Settings{
		TimePerMove:           1,
		CandleInterval:        1,
		TransactionFeePercent: 0.1,
	}
}

// HasCandleFormat reports whether candle records can be parsed yet.
func (s *Settings) HasCandleFormat() bool {
	return len(s.CandleFormat) > 0
}

// Apply sets the option named key. It reports false for keys it does not
// know, which callers ignore. A malformed value leaves the settings unchanged.
func (s *Settings) Apply(key SettingKey, value string) (bool, error) {
	value = strings.TrimSpace(value)

	switch key {
	case SettingTimebank:
		n, err := parseSettingInt(key, value)
		if err != nil {
			return true, err
		}

		s.Timebank = n
		s.MaxTimebank = n
	case SettingTimePerMove:
		return true, setInt(&s.TimePerMove, key, value)
	case SettingCandleInterval:
		return true, setInt(&s.CandleInterval, key, value)
	case SettingCandlesTotal:
		return true, setInt(&s.CandlesTotal, key, value)
	case SettingCandlesGiven:
		return true, setInt(&s.CandlesGiven, key, value)
	case SettingInitialStack:
		return true, setInt(&s.InitialStack, key, value)
	case SettingTransactionFeePercent:
		fee, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return true, errors.Wrapf(errors.ErrCodeInvalidNumber, err, "invalid value %q for %s", value, key)
		}

		s.TransactionFeePercent = fee
	case SettingCandleFormat:
		format, err := ParseCandleFormat(value)
		if err != nil {
			return true, err
		}

		s.CandleFormat = format
	default:
		return false, nil
	}

	return true, nil
}

func setInt(dst *int, key SettingKey, value string) error {
	n, err := parseSettingInt(key, value)
	if err != nil {
		return err
	}

	*dst = n

	return nil
}

func parseSettingInt(key SettingKey, value string) (int, error) {
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, errors.Wrapf(errors.ErrCodeInvalidNumber, err, "invalid value %q for %s", value, key)
	}

	return n, nil
}
