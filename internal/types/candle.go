package types

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/rxtech-lab/candle-bot/pkg/errors"
)

// CandleField is the name of one positional field of a candle record.
type CandleField string

const (
	CandleFieldPair   CandleField = "pair"
	CandleFieldDate   CandleField = "date"
	CandleFieldHigh   CandleField = "high"
	CandleFieldLow    CandleField = "low"
	CandleFieldOpen   CandleField = "open"
	CandleFieldClose  CandleField = "close"
	CandleFieldVolume CandleField = "volume"
)

var knownCandleFields = map[CandleField]struct{}{
	CandleFieldPair:   {},
	CandleFieldDate:   {},
	CandleFieldHigh:   {},
	CandleFieldLow:    {},
	CandleFieldOpen:   {},
	CandleFieldClose:  {},
	CandleFieldVolume: {},
}

// CandleFormat is the declared field order of candle records.
type CandleFormat []CandleField

// ParseCandleFormat parses a comma separated list of field names such as
// "pair,date,high,low,open,close,volume". Every field must be known, appear
// once, and the format must name both the pair and the date.
func ParseCandleFormat(value string) (CandleFormat, error) {
	parts := strings.Split(strings.TrimSpace(value), ",")
	format := make(CandleFormat, 0, len(parts))
	seen := make(map[CandleField]struct{}, len(parts))

	for _, part := range parts {
		field := CandleField(strings.TrimSpace(part))
		if _, ok := knownCandleFields[field]; !ok {
			return nil, errors.Newf(errors.ErrCodeUnknownCandleField, "unknown candle field %q", field)
		}

		if _, dup := seen[field]; dup {
			return nil, errors.Newf(errors.ErrCodeUnknownCandleField, "candle field %q declared twice", field)
		}

		seen[field] = struct{}{}
		format = append(format, field)
	}

	if format.Index(CandleFieldPair) < 0 || format.Index(CandleFieldDate) < 0 {
		return nil, errors.Newf(errors.ErrCodeUnknownCandleField, "candle format %q must contain pair and date", value)
	}

	return format, nil
}

// Index returns the position of field in the format, or -1.
func (f CandleFormat) Index(field CandleField) int {
	for i, name := range f {
		if name == field {
			return i
		}
	}

	return -1
}

func (f CandleFormat) String() string {
	names := make([]string, len(f))
	for i, name := range f {
		names[i] = string(name)
	}

	return strings.Join(names, ",")
}

// Candle is one OHLCV observation of an instrument.
type Candle struct {
	Pair   string
	Date   int64 // unix seconds
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
}

// Time returns the candle date as a UTC time.
func (c Candle) Time() time.Time {
	return time.Unix(c.Date, 0).UTC()
}

// ParseCandle builds a candle from one comma separated record whose fields
// are ordered by format.
func ParseCandle(format CandleFormat, record string) (Candle, error) {
	if len(format) == 0 {
		return Candle{}, errors.New(errors.ErrCodeCandleFormatMissing, "candle_format must be set before candles are parsed")
	}

	values := strings.Split(strings.TrimSpace(record), ",")
	if len(values) < len(format) {
		return Candle{}, errors.Newf(errors.ErrCodeShortCandleRecord, "candle record %q has %d fields, format declares %d", record, len(values), len(format))
	}

	var candle Candle

	for i, field := range format {
		value := strings.TrimSpace(values[i])

		switch field {
		case CandleFieldPair:
			if value == "" {
				return Candle{}, errors.Newf(errors.ErrCodeShortCandleRecord, "candle record %q has an empty pair", record)
			}

			candle.Pair = value
		case CandleFieldDate:
			date, err := strconv.ParseInt(value, 10, 64)
			if err != nil {
				return Candle{}, errors.Wrapf(errors.ErrCodeInvalidNumber, err, "failed to parse candle date %q", value)
			}

			candle.Date = date
		default:
			number, err := strconv.ParseFloat(value, 64)
			if err != nil {
				return Candle{}, errors.Wrapf(errors.ErrCodeInvalidNumber, err, "failed to parse candle %s %q", field, value)
			}

			if math.IsNaN(number) || math.IsInf(number, 0) {
				return Candle{}, errors.Newf(errors.ErrCodeInvalidNumber, "candle %s %q is not a finite number", field, value)
			}

			switch field {
			case CandleFieldHigh:
				candle.High = number
			case CandleFieldLow:
				candle.Low = number
			case CandleFieldOpen:
				candle.Open = number
			case CandleFieldClose:
				candle.Close = number
			case CandleFieldVolume:
				candle.Volume = number
			}
		}
	}

	return candle, nil
}
