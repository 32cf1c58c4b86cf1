package dashboard

import (
	"github.com/pkg/errors"

	"github.com/Fukuzeya/zim-student-companion-sub000/core/chart"
)

// Canvas defaults for the admin console widgets.
const (
	trendDays    = 30
	trendWidth   = 800
	trendHeight  = 200
	markerTarget = 10
	donutRadius  = 70
	hoursPerDay  = 24
)

type (
	// Repository provides the raw figures the dashboard is built from.
	Repository interface {
		TotalCounts() (Counts, error)
		EnrollmentSeries(days int) ([]chart.Point, error)
		TierDistribution() ([]chart.Category, error)
		ActivityGrid() (map[string][]int, error)
		SubjectEngagement() ([]chart.Category, error)
	}

	Service interface {
		Overview() (Overview, error)
	}

	service struct {
		repo Repository
	}
)

var _ Service = (*service)(nil)

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// Overview assembles the full dashboard payload. All geometry is computed
// here so API consumers only ever see renderable values.
func (svc *service) Overview() (Overview, error) {
	counts, err := svc.repo.TotalCounts()
	if err != nil {
		return Overview{}, errors.Wrap(err, "querying totals")
	}
	enrollment, err := svc.repo.EnrollmentSeries(trendDays)
	if err != nil {
		return Overview{}, errors.Wrap(err, "querying enrollment series")
	}
	tiers, err := svc.repo.TierDistribution()
	if err != nil {
		return Overview{}, errors.Wrap(err, "querying tier distribution")
	}
	grid, err := svc.repo.ActivityGrid()
	if err != nil {
		return Overview{}, errors.Wrap(err, "querying activity grid")
	}
	engagement, err := svc.repo.SubjectEngagement()
	if err != nil {
		return Overview{}, errors.Wrap(err, "querying subject engagement")
	}

	return Overview{
		Totals: []StatCard{
			{Label: "Students", Value: counts.Students, SparklinePath: chart.SparklinePath(enrollment)},
			{Label: "Teachers", Value: counts.Teachers},
			{Label: "Subjects", Value: counts.Subjects},
			{Label: "Documents", Value: counts.Documents},
		},
		Enrollment: trendChart(enrollment),
		Tiers: DonutChart{
			Radius:   donutRadius,
			Segments: chart.DonutSegments(tiers, donutRadius),
			Total:    chart.Total(tiers),
		},
		Activity: heatmapChart(grid),
		Subjects: subjectBars(engagement),
	}, nil
}

func trendChart(series []chart.Point) TrendChart {
	return TrendChart{
		Width:    trendWidth,
		Height:   trendHeight,
		LinePath: chart.LinePath(series, trendWidth, trendHeight),
		AreaPath: chart.AreaPath(series, trendWidth, trendHeight),
		Markers:  chart.MarkerPoints(series, trendWidth, trendHeight, markerTarget),
		Total:    chart.Sum(series),
	}
}

// heatmapChart normalizes the grid to the full week before banding so a day
// with no recorded activity still renders as an all-zero row.
func heatmapChart(grid map[string][]int) HeatmapChart {
	full := make(map[string][]int, len(weekdayOrder))
	for _, day := range weekdayOrder {
		row := grid[day]
		if len(row) < hoursPerDay {
			padded := make([]int, hoursPerDay)
			copy(padded, row)
			row = padded
		}
		full[day] = row
	}
	bands := chart.HeatmapBands(full)

	rows := make([]HeatmapRow, 0, len(weekdayOrder))
	for _, day := range weekdayOrder {
		rows = append(rows, HeatmapRow{Day: day, Bands: bands[day]})
	}
	return HeatmapChart{Rows: rows, Palette: heatPalette}
}

func subjectBars(engagement []chart.Category) []SubjectBar {
	var max float64
	for _, cat := range engagement {
		if cat.Value > max {
			max = cat.Value
		}
	}
	bars := make([]SubjectBar, 0, len(engagement))
	for _, cat := range engagement {
		bars = append(bars, SubjectBar{
			Label:        cat.Label,
			Value:        cat.Value,
			WidthPercent: chart.ScaleValue(cat.Value, max, 100),
		})
	}
	return bars
}
