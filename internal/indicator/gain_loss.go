package indicator

// Oscillator is the result of GainLossOscillator.
type Oscillator struct {
	AvgGain float64
	AvgLoss float64
	// Bullish is true when the smoothed average gain exceeds the average loss.
	Bullish bool
	// Ready is false when x held fewer than period+1 values.
	Ready bool
}

// GainLossOscillator compares Wilder-smoothed average gains and losses of x.
//
// Per-step gains are positive deltas and losses the absolute value of
// negative deltas. Both averages are seeded with the mean of the first period
// steps and then smoothed as avg = (avg*(period-1) + step) / period.
//
// The signal is the boolean AvgGain > AvgLoss, not the 0-100 RSI index.
func GainLossOscillator(x []float64, period int) Oscillator {
	if period <= 0 || len(x) < period+1 {
		return Oscillator{}
	}

	gains := make([]float64, len(x)-1)
	losses := make([]float64, len(x)-1)

	for i := 1; i < len(x); i++ {
		change := x[i] - x[i-1]
		if change > 0 {
			gains[i-1] = change
		} else {
			losses[i-1] = -change
		}
	}

	avgGain := mean(gains[:period])
	avgLoss := mean(losses[:period])

	p := float64(period)
	for i := period; i < len(gains); i++ {
		avgGain = (avgGain*(p-1) + gains[i]) / p
		avgLoss = (avgLoss*(p-1) + losses[i]) / p
	}

	return Oscillator{
		AvgGain: avgGain,
		AvgLoss: avgLoss,
		Bullish: avgGain > avgLoss,
		Ready:   true,
	}
}
