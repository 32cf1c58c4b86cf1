package chart

import "strings"

// Vertical margin reserved on line charts so peak/trough markers are never
// clipped: 10px above and below, i.e. values scale onto height-20.
const lineMargin = 10

// linePoint computes the canvas coordinate of series[i]. X spacing is
// index-based; max is the series maximum (already floored to 1).
func linePoint(i, n int, value, max, width, height float64) XY {
	var x float64
	if n > 1 {
		x = float64(i) / float64(n-1) * width
	}
	y := height - ScaleValue(value, max, height-2*lineMargin) - lineMargin
	return XY{X: x, Y: y}
}

// LinePath emits a "M x,y L x,y …" path for a time series on a width×height
// canvas. An empty series yields "", a single point a degenerate move-only
// path.
func LinePath(series []Point, width, height float64) string {
	if len(series) == 0 {
		return ""
	}

	max := MaxValue(series)
	var b strings.Builder
	for i, pt := range series {
		xy := linePoint(i, len(series), pt.Value, max, width, height)
		if i == 0 {
			b.WriteString("M ")
		} else {
			b.WriteString(" L ")
		}
		b.WriteString(ftoa(xy.X))
		b.WriteByte(',')
		b.WriteString(ftoa(xy.Y))
	}
	return b.String()
}

// AreaPath emits the fillable region under the line: the exact line path of
// LinePath closed down to (width,height) and (0,height). Both builders share
// linePoint so stroke and fill can never drift apart.
func AreaPath(series []Point, width, height float64) string {
	line := LinePath(series, width, height)
	if line == "" {
		return ""
	}

	var b strings.Builder
	b.WriteString(line)
	b.WriteString(" L ")
	b.WriteString(ftoa(width))
	b.WriteByte(',')
	b.WriteString(ftoa(height))
	b.WriteString(" L 0,")
	b.WriteString(ftoa(height))
	b.WriteString(" Z")
	return b.String()
}

// MarkerPoints returns canvas coordinates for up to target sampled points of
// the series, using the same coordinate math as LinePath so markers always
// sit on the stroked line.
func MarkerPoints(series []Point, width, height float64, target int) []XY {
	if len(series) == 0 {
		return nil
	}

	max := MaxValue(series)
	indices := SampleIndices(len(series), target)
	points := make([]XY, 0, len(indices))
	for _, i := range indices {
		points = append(points, linePoint(i, len(series), series[i].Value, max, width, height))
	}
	return points
}
