package chart

import (
	"strings"
	"testing"
)

func series(values ...float64) []Point {
	pts := make([]Point, 0, len(values))
	for i, v := range values {
		pts = append(pts, Point{Timestamp: "2023-09-0" + string(rune('1'+i%9)), Value: v})
	}
	return pts
}

func TestLinePath(t *testing.T) {
	tests := []struct {
		name   string
		series []Point
		width  float64
		height float64
		want   string
	}{
		{name: "empty series", series: nil, width: 800, height: 200, want: ""},
		{name: "single point", series: series(5), width: 800, height: 200, want: "M 0,10"},
		{name: "all-zero series is a flat baseline", series: series(0, 0), width: 800, height: 200, want: "M 0,190 L 800,190"},
		{name: "two points span the canvas", series: series(0, 10), width: 800, height: 200, want: "M 0,190 L 800,10"},
		{name: "even horizontal spacing", series: series(0, 5, 10), width: 800, height: 200, want: "M 0,190 L 400,100 L 800,10"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := LinePath(tt.series, tt.width, tt.height); got != tt.want {
				t.Errorf("LinePath() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLinePathSegmentCount(t *testing.T) {
	for n := 2; n <= 50; n++ {
		values := make([]float64, n)
		for i := range values {
			values[i] = float64(i * 3)
		}
		path := LinePath(series(values...), 800, 200)
		if got := strings.Count(path, "L"); got != n-1 {
			t.Errorf("LinePath() with %d points has %d L segments, want %d", n, got, n-1)
		}
		if !strings.HasPrefix(path, "M ") {
			t.Errorf("LinePath() = %q, want single leading M", path)
		}
	}
}

func TestAreaPath(t *testing.T) {
	tests := []struct {
		name   string
		series []Point
		want   string
	}{
		{name: "empty series", series: nil, want: ""},
		{name: "closes to the baseline", series: series(0, 10), want: "M 0,190 L 800,10 L 800,200 L 0,200 Z"},
		{name: "single point still closes", series: series(5), want: "M 0,10 L 800,200 L 0,200 Z"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AreaPath(tt.series, 800, 200); got != tt.want {
				t.Errorf("AreaPath() = %q, want %q", got, tt.want)
			}
		})
	}
}

// The area fill must trace the exact stroked line or the two drift apart
// visually.
func TestAreaPathSharesLineComputation(t *testing.T) {
	s := series(3, 1, 4, 1, 5, 9, 2, 6)
	line := LinePath(s, 640, 180)
	area := AreaPath(s, 640, 180)
	if !strings.HasPrefix(area, line) {
		t.Errorf("AreaPath() = %q does not start with LinePath() = %q", area, line)
	}
	if !strings.HasSuffix(area, " L 640,180 L 0,180 Z") {
		t.Errorf("AreaPath() = %q does not close via (w,h) and (0,h)", area)
	}
}

func TestMarkerPoints(t *testing.T) {
	if got := MarkerPoints(nil, 800, 200, 10); got != nil {
		t.Errorf("MarkerPoints() = %v, want nil", got)
	}

	s := series(0, 5, 10)
	markers := MarkerPoints(s, 800, 200, 3)
	want := []XY{{X: 0, Y: 190}, {X: 400, Y: 100}, {X: 800, Y: 10}}
	if len(markers) != len(want) {
		t.Fatalf("MarkerPoints() returned %d points, want %d", len(markers), len(want))
	}
	for i, m := range markers {
		if m != want[i] {
			t.Errorf("MarkerPoints()[%d] = %v, want %v", i, m, want[i])
		}
	}
}

// Markers must land on the stroked line for any sampling density.
func TestMarkerPointsSitOnLine(t *testing.T) {
	values := make([]float64, 90)
	for i := range values {
		values[i] = float64((i * 7) % 23)
	}
	s := series(values...)
	path := LinePath(s, 800, 200)

	for _, m := range MarkerPoints(s, 800, 200, 10) {
		pair := ftoa(m.X) + "," + ftoa(m.Y)
		if !strings.Contains(path, pair) {
			t.Errorf("marker %q not found on line path", pair)
		}
	}
}
