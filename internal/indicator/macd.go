package indicator

// MACDResult holds the three MACD series. All three have the same length and
// are aligned on their most recent value.
type MACDResult struct {
	Line      []float64
	Signal    []float64
	Histogram []float64
}

// Len returns the number of aligned samples.
func (m MACDResult) Len() int {
	return len(m.Histogram)
}

// MACD computes the moving average convergence divergence of x.
//
// The line is EMA(fast) - EMA(slow) after both series are cut to their
// common trailing length. The signal is EMA(line, signal), and the line is
// cut again to the signal's length before the histogram is taken.
func MACD(x []float64, fastPeriod, slowPeriod, signalPeriod int) MACDResult {
	fast := EMA(x, fastPeriod)
	slow := EMA(x, slowPeriod)

	n := min(len(fast), len(slow))
	if n == 0 {
		return MACDResult{}
	}

	fast = Tail(fast, n)
	slow = Tail(slow, n)

	line := make([]float64, n)
	for i := range line {
		line[i] = fast[i] - slow[i]
	}

	signal := EMA(line, signalPeriod)
	if len(signal) == 0 {
		return MACDResult{}
	}

	line = Tail(line, len(signal))

	histogram := make([]float64, len(signal))
	for i := range histogram {
		histogram[i] = line[i] - signal[i]
	}

	return MACDResult{
		Line:      line,
		Signal:    signal,
		Histogram: histogram,
	}
}
