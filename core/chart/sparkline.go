package chart

import "strings"

// Sparkline default canvas, sized for compact "trend at a glance" widgets.
const (
	SparklineWidth  = 200
	SparklineHeight = 50
)

// SparklinePath emits the same index-spaced line path as LinePath but on a
// small fixed canvas with a proportional 10% top margin instead of the fixed
// pixel margins. size overrides width then height; both default to the
// sparkline canvas. Empty series yields "".
func SparklinePath(series []Point, size ...float64) string {
	width, height := float64(SparklineWidth), float64(SparklineHeight)
	if len(size) > 0 {
		width = size[0]
	}
	if len(size) > 1 {
		height = size[1]
	}

	if len(series) == 0 {
		return ""
	}

	max := MaxValue(series)
	var b strings.Builder
	for i, pt := range series {
		var x float64
		if len(series) > 1 {
			x = float64(i) / float64(len(series)-1) * width
		}
		y := height - pt.Value/max*0.9*height

		if i == 0 {
			b.WriteString("M ")
		} else {
			b.WriteString(" L ")
		}
		b.WriteString(ftoa(x))
		b.WriteByte(',')
		b.WriteString(ftoa(y))
	}
	return b.String()
}
