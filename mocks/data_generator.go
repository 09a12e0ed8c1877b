package mocks

import (
	"fmt"
	"math"
	"math/rand"
	"strconv"
	"strings"
	"time"

	"github.com/rxtech-lab/candle-bot/internal/types"
)

// DataGenerator generates candle series for tests and benchmarks.
type DataGenerator struct {
	rng *rand.Rand
}

// NewDataGenerator creates a new DataGenerator with the given seed.
// Use a fixed seed for reproducible results in tests.
func NewDataGenerator(seed int64) *DataGenerator {
	return &DataGenerator{
		rng: rand.New(rand.NewSource(seed)),
	}
}

// GeneratorConfig configures how candles are generated.
type GeneratorConfig struct {
	// Pair is the instrument, e.g. "USDT_BTC"
	Pair string
	// StartTime is the date of the first candle
	StartTime time.Time
	// Interval is the duration between two candles
	Interval time.Duration
	// Count is the number of candles to generate
	Count int
	// InitialPrice is the first open
	InitialPrice float64
	// Volatility controls price movement (0.01 = 1% per candle)
	Volatility float64
	// Trend is the total drift over the series (-0.5 to 0.5 for bearish to bullish)
	Trend float64
	// VolumeBase is the average volume per candle
	VolumeBase float64
	// VolumeVariance is the variance in volume (0.0 to 1.0)
	VolumeVariance float64
}

// DefaultConfig returns a sensible default configuration.
func DefaultConfig() GeneratorConfig {
	return GeneratorConfig{
		Pair:           "USDT_BTC",
		StartTime:      time.Date(2018, 1, 17, 0, 0, 0, 0, time.UTC),
		Interval:       30 * time.Minute,
		Count:          720,
		InitialPrice:   11000.0,
		Volatility:     0.01,
		Trend:          0.0,
		VolumeBase:     500,
		VolumeVariance: 0.3,
	}
}

// Generate creates candles following a geometric Brownian motion.
func (g *DataGenerator) Generate(config GeneratorConfig) []types.Candle {
	candles := make([]types.Candle, config.Count)
	price := config.InitialPrice
	date := config.StartTime

	for i := range candles {
		open := price

		// Box-Muller transform for a normally distributed step
		u1 := g.rng.Float64()
		u2 := g.rng.Float64()
		z := math.Sqrt(-2*math.Log(u1)) * math.Cos(2*math.Pi*u2)

		drift := config.Trend / float64(config.Count)

		closePrice := open * (1 + config.Volatility*z + drift)
		if closePrice <= 0 {
			closePrice = open * 0.99
		}

		high := math.Max(open, closePrice) + math.Abs(g.rng.Float64()*config.Volatility*open*0.5)

		low := math.Min(open, closePrice) - math.Abs(g.rng.Float64()*config.Volatility*open*0.5)
		if low <= 0 {
			low = math.Min(open, closePrice) * 0.99
		}

		volume := config.VolumeBase * (1.0 + (g.rng.Float64()*2-1)*config.VolumeVariance)
		if volume < 0 {
			volume = config.VolumeBase * 0.1
		}

		candles[i] = types.Candle{
			Pair:   config.Pair,
			Date:   date.Unix(),
			Open:   roundToDecimals(open, 8),
			High:   roundToDecimals(high, 8),
			Low:    roundToDecimals(low, 8),
			Close:  roundToDecimals(closePrice, 8),
			Volume: roundToDecimals(volume, 8),
		}

		price = closePrice
		date = date.Add(config.Interval)
	}

	return candles
}

// GenerateMultiPair generates one series per pair, all sharing the same
// dates.
func (g *DataGenerator) GenerateMultiPair(pairs []string, baseConfig GeneratorConfig) map[string][]types.Candle {
	all := make(map[string][]types.Candle, len(pairs))

	for _, pair := range pairs {
		config := baseConfig
		config.Pair = pair
		config.InitialPrice = baseConfig.InitialPrice * (0.8 + g.rng.Float64()*0.4)
		config.Volatility = baseConfig.Volatility * (0.8 + g.rng.Float64()*0.4)

		all[pair] = g.Generate(config)
	}

	return all
}

// Closes builds candles for pair from a list of closes, one interval apart.
func Closes(pair string, start int64, interval int64, closes ...float64) []types.Candle {
	candles := make([]types.Candle, len(closes))
	for i, c := range closes {
		candles[i] = types.Candle{
			Pair:   pair,
			Date:   start + int64(i)*interval,
			Open:   c,
			High:   c,
			Low:    c,
			Close:  c,
			Volume: 1,
		}
	}

	return candles
}

// Linear returns count closes starting at from and moving by step.
func Linear(from, step float64, count int) []float64 {
	closes := make([]float64, count)
	for i := range closes {
		closes[i] = from + float64(i)*step
	}

	return closes
}

// FormatRecord renders candle as a record for the given candle format.
func FormatRecord(format types.CandleFormat, candle types.Candle) string {
	values := make([]string, len(format))

	for i, field := range format {
		switch field {
		case types.CandleFieldPair:
			values[i] = candle.Pair
		case types.CandleFieldDate:
			values[i] = strconv.FormatInt(candle.Date, 10)
		case types.CandleFieldOpen:
			values[i] = formatFloat(candle.Open)
		case types.CandleFieldHigh:
			values[i] = formatFloat(candle.High)
		case types.CandleFieldLow:
			values[i] = formatFloat(candle.Low)
		case types.CandleFieldClose:
			values[i] = formatFloat(candle.Close)
		case types.CandleFieldVolume:
			values[i] = formatFloat(candle.Volume)
		}
	}

	return strings.Join(values, ",")
}

// CandleLine renders a "update game next_candles" line for candles.
func CandleLine(format types.CandleFormat, candles ...types.Candle) string {
	records := make([]string, len(candles))
	for i, candle := range candles {
		records[i] = FormatRecord(format, candle)
	}

	return fmt.Sprintf("update game next_candles %s", strings.Join(records, ";"))
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// roundToDecimals rounds a float64 to the specified number of decimal places.
func roundToDecimals(val float64, decimals int) float64 {
	pow := math.Pow(10, float64(decimals))

	return math.Round(val*pow) / pow
}
