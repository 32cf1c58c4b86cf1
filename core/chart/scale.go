package chart

// ScaleValue linearly maps value from [0, domainMax] onto [rangeMin, rangeMax].
// rangeMin defaults to 0. domainMax is floored to 1 before dividing so that an
// all-zero series scales to a flat baseline instead of NaN; this is contract,
// not an incidental guard. Out-of-range values extrapolate, unclamped.
func ScaleValue(value, domainMax, rangeMax float64, rangeMin ...float64) float64 {
	var min float64
	if len(rangeMin) > 0 {
		min = rangeMin[0]
	}
	if domainMax < 1 {
		domainMax = 1
	}
	return min + value/domainMax*(rangeMax-min)
}
