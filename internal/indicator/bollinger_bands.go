package indicator

// Bands holds one Bollinger Bands observation.
type Bands struct {
	Upper  float64
	Middle float64
	Lower  float64
	StdDev float64
	// Ready is false when the series was shorter than the period.
	Ready bool
}

// BollingerBands computes the bands over the last period values of x:
// middle = SMA, upper/lower = middle ± multiplier * population std.
func BollingerBands(x []float64, period int, multiplier float64) Bands {
	if period <= 0 || len(x) < period {
		return Bands{}
	}

	window := x[len(x)-period:]
	middle := mean(window)
	stdDev := StdDev(window)

	return Bands{
		Upper:  middle + (multiplier * stdDev),
		Middle: middle,
		Lower:  middle - (multiplier * stdDev),
		StdDev: stdDev,
		Ready:  true,
	}
}

// Width returns upper - lower.
func (b Bands) Width() float64 {
	return b.Upper - b.Lower
}
