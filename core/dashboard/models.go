package dashboard

import (
	"github.com/Fukuzeya/zim-student-companion-sub000/core/chart"
)

// weekdayOrder fixes the heatmap row order; repositories may return rows in
// any order and may omit empty days.
var weekdayOrder = []string{"mon", "tue", "wed", "thu", "fri", "sat", "sun"}

// heatPalette maps intensity bands 0..4 to cell colors, lightest first.
var heatPalette = []string{"#f1f5f9", "#bae6fd", "#7dd3fc", "#38bdf8", "#0284c7"}

type (
	// StatCard is a headline figure with a compact trend.
	StatCard struct {
		Label         string `json:"label"`
		Value         int    `json:"value"`
		SparklinePath string `json:"sparkline_path"`
	}

	// TrendChart is a line+area rendering of a time series.
	TrendChart struct {
		Width    float64    `json:"width"`
		Height   float64    `json:"height"`
		LinePath string     `json:"line_path"`
		AreaPath string     `json:"area_path"`
		Markers  []chart.XY `json:"markers"`
		Total    float64    `json:"total"`
	}

	// DonutChart is a dash-pattern encoded distribution.
	DonutChart struct {
		Radius   float64            `json:"radius"`
		Segments []chart.ArcSegment `json:"segments"`
		Total    float64            `json:"total"`
	}

	// HeatmapRow is one weekday of banded hourly activity.
	HeatmapRow struct {
		Day   string `json:"day"`
		Bands []int  `json:"bands"`
	}

	// HeatmapChart is the weekly activity grid with its color table.
	HeatmapChart struct {
		Rows    []HeatmapRow `json:"rows"`
		Palette []string     `json:"palette"`
	}

	// SubjectBar is a horizontal engagement bar sized as a percentage of the
	// busiest subject.
	SubjectBar struct {
		Label        string  `json:"label"`
		Value        float64 `json:"value"`
		WidthPercent float64 `json:"width_percent"`
	}

	// Overview is the admin dashboard payload.
	Overview struct {
		Totals     []StatCard   `json:"totals"`
		Enrollment TrendChart   `json:"enrollment"`
		Tiers      DonutChart   `json:"tiers"`
		Activity   HeatmapChart `json:"activity"`
		Subjects   []SubjectBar `json:"subjects"`
	}

	// Counts are the raw headline totals from storage.
	Counts struct {
		Students  int
		Teachers  int
		Subjects  int
		Documents int
	}
)
