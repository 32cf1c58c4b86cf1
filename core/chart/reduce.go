package chart

// Sum totals a time series; an empty series sums to 0.
func Sum(series []Point) float64 {
	var total float64
	for _, pt := range series {
		total += pt.Value
	}
	return total
}

// MaxValue returns the series maximum, never less than floor (default 1) so
// the result is always a safe division denominator.
func MaxValue(series []Point, floor ...float64) float64 {
	max := 1.0
	if len(floor) > 0 {
		max = floor[0]
	}
	for _, pt := range series {
		if pt.Value > max {
			max = pt.Value
		}
	}
	return max
}

// BarWidthPercent scales value against the series maximum into [0, 100] for
// proportional bar widths.
func BarWidthPercent(value float64, series []Point) float64 {
	return value / MaxValue(series) * 100
}

// Total sums a distribution's magnitudes; used for donut shares and headline
// totals.
func Total(dist []Category) float64 {
	var total float64
	for _, c := range dist {
		total += c.Value
	}
	return total
}
