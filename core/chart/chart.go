// Package chart converts raw numeric and categorical series into renderable
// vector geometry: line/area path strings, donut arc dash encodings, heatmap
// intensity bands, marker points and summary reducers.
//
// Every function is pure, synchronous and total: empty or all-zero input
// yields a defined fallback (empty path, zero-length dash, band 0) rather
// than an error. Caller-invalid data (negative distribution values,
// non-finite numbers) is not validated; output for such input is undefined.
// Rendering the produced geometry to pixels is the caller's concern.
package chart

import "strconv"

// Point is a single sample of a time series. Series order is chronological;
// the engine spaces points evenly by index, not by timestamp, since upstream
// series are resampled to a uniform cadence before they reach us.
type Point struct {
	Timestamp string  `json:"timestamp"`
	Value     float64 `json:"value"`
}

// Category is a labeled magnitude of a distribution. Order is legend/draw
// order; the engine never sorts.
type Category struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// XY is a coordinate in pixel space.
type XY struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// ArcSegment describes one wedge of a ring chart via dash-pattern encoding:
// a draw length, a gap covering the rest of the circumference and a negative
// rotational offset so consecutive segments tile without overlap. The fixed
// rotation anchor is applied once by the renderer, not here.
type ArcSegment struct {
	Label      string  `json:"label"`
	Color      string  `json:"color"`
	DashLength float64 `json:"dash_length"`
	DashGap    float64 `json:"dash_gap"`
	DashOffset float64 `json:"dash_offset"`
}

// ftoa renders a coordinate with the shortest exact decimal form so that
// integral values carry no trailing zeros and the path grammar stays stable.
func ftoa(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
