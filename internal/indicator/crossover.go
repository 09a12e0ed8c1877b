package indicator

// CrossedAbove reports whether a moved from at-or-below b to above b across
// the last two samples. The series are aligned on their most recent value.
func CrossedAbove(a, b []float64) bool {
	prev, cur, ok := lastTwoSpreads(a, b)

	return ok && prev <= 0 && cur > 0
}

// CrossedBelow reports whether a moved from at-or-above b to below b across
// the last two samples.
func CrossedBelow(a, b []float64) bool {
	prev, cur, ok := lastTwoSpreads(a, b)

	return ok && prev >= 0 && cur < 0
}

func lastTwoSpreads(a, b []float64) (prev, cur float64, ok bool) {
	n := min(len(a), len(b))
	if n < 2 {
		return 0, 0, false
	}

	a = Tail(a, n)
	b = Tail(b, n)

	return a[n-2] - b[n-2], a[n-1] - b[n-1], true
}
