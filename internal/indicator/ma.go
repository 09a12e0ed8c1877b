package indicator

// SMA returns the simple moving average of the last period values of x.
// It returns 0 when x holds fewer than period values.
func SMA(x []float64, period int) float64 {
	if period <= 0 || len(x) < period {
		return 0
	}

	return mean(x[len(x)-period:])
}
