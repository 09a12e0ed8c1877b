package indicator

// EMA returns the exponential moving average series of x.
//
// The first value is the simple average of the first period values; every
// later value is prev + k*(x[i]-prev) with k = 2/(period+1). The result holds
// len(x)-period+1 values and is nil when x holds fewer than period values.
func EMA(x []float64, period int) []float64 {
	if period <= 0 || len(x) < period {
		return nil
	}

	result := make([]float64, 0, len(x)-period+1)

	ema := mean(x[:period])
	result = append(result, ema)

	alpha := 2.0 / float64(period+1)
	for _, v := range x[period:] {
		ema += alpha * (v - ema)
		result = append(result, ema)
	}

	return result
}
