// Package indicator implements the technical indicators used by the
// decision policies. Every function is pure: it reads an ordered series,
// oldest value first, and never retains state between calls.
//
// Functions never fail on short input. When a series holds fewer values than
// the requested period they return a neutral value (zero, an empty slice, or
// a result whose Ready flag is false) so a decision cycle can always resolve
// to a hold.
package indicator

import "math"

// Tail returns the last n values of x. It returns x when n >= len(x) and an
// empty slice when n <= 0.
func Tail(x []float64, n int) []float64 {
	if n <= 0 {
		return x[:0]
	}

	if n >= len(x) {
		return x
	}

	return x[len(x)-n:]
}

// Last returns the most recent value of x.
func Last(x []float64) (float64, bool) {
	if len(x) == 0 {
		return 0, false
	}

	return x[len(x)-1], true
}

func mean(x []float64) float64 {
	if len(x) == 0 {
		return 0
	}

	sum := 0.0
	for _, v := range x {
		sum += v
	}

	return sum / float64(len(x))
}

// StdDev returns the population standard deviation of x.
func StdDev(x []float64) float64 {
	if len(x) == 0 {
		return 0
	}

	m := mean(x)

	var squaredDiffSum float64

	for _, v := range x {
		diff := v - m
		squaredDiffSum += diff * diff
	}

	return math.Sqrt(squaredDiffSum / float64(len(x)))
}
