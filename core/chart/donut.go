package chart

import "math"

// Fixed label→color table for ring charts. Unknown labels fall back to the
// neutral default; callers sort the distribution beforehand if they want a
// sorted ring.
var (
	segmentColors = map[string]string{
		"free":      "#94a3b8",
		"standard":  "#38bdf8",
		"premium":   "#6366f1",
		"sponsored": "#f59e0b",
		"active":    "#10b981",
		"inactive":  "#f43f5e",
	}
	defaultSegmentColor = "#cbd5e1"
)

// DonutSegments encodes a categorical distribution as arc segments tiling a
// ring of the given radius. Each segment draws value/total of the
// circumference and is rotated past the previous ones via a negative dash
// offset. A zero-total distribution yields one zero-length segment per
// category, never a division by zero. Input order is preserved.
func DonutSegments(dist []Category, radius float64) []ArcSegment {
	if len(dist) == 0 {
		return nil
	}

	total := Total(dist)
	circumference := 2 * math.Pi * radius

	segments := make([]ArcSegment, 0, len(dist))
	var drawn float64
	for _, c := range dist {
		var length float64
		if total > 0 {
			length = c.Value / total * circumference
		}
		seg := ArcSegment{
			Label:      c.Label,
			Color:      segmentColor(c.Label),
			DashLength: length,
			DashGap:    circumference - length,
		}
		if drawn > 0 {
			seg.DashOffset = -drawn
		}
		segments = append(segments, seg)
		drawn += length
	}
	return segments
}

func segmentColor(label string) string {
	if color, ok := segmentColors[label]; ok {
		return color
	}
	return defaultSegmentColor
}
