package dashboard

import (
	"strings"
	"testing"

	"github.com/Fukuzeya/zim-student-companion-sub000/core/chart"
)

type repoStub struct {
	counts     Counts
	enrollment []chart.Point
	tiers      []chart.Category
	grid       map[string][]int
	engagement []chart.Category
}

func (r *repoStub) TotalCounts() (Counts, error)                 { return r.counts, nil }
func (r *repoStub) EnrollmentSeries(int) ([]chart.Point, error)  { return r.enrollment, nil }
func (r *repoStub) TierDistribution() ([]chart.Category, error)  { return r.tiers, nil }
func (r *repoStub) ActivityGrid() (map[string][]int, error)      { return r.grid, nil }
func (r *repoStub) SubjectEngagement() ([]chart.Category, error) { return r.engagement, nil }

func TestOverview(t *testing.T) {
	monday := make([]int, 24)
	monday[0] = 10

	repo := &repoStub{
		counts: Counts{Students: 120, Teachers: 8, Subjects: 5, Documents: 42},
		enrollment: []chart.Point{
			{Timestamp: "2023-09-01", Value: 0},
			{Timestamp: "2023-09-02", Value: 5},
			{Timestamp: "2023-09-03", Value: 10},
			{Timestamp: "2023-09-04", Value: 20},
		},
		tiers: []chart.Category{
			{Label: "free", Value: 3},
			{Label: "premium", Value: 1},
		},
		grid: map[string][]int{"mon": monday},
		engagement: []chart.Category{
			{Label: "Mathematics", Value: 40},
			{Label: "Science", Value: 20},
			{Label: "Arts", Value: 0},
		},
	}
	svc := NewService(repo)

	ov, err := svc.Overview()
	if err != nil {
		t.Fatalf("Overview() failed: %v", err)
	}

	if len(ov.Totals) != 4 {
		t.Fatalf("expected 4 stat cards; got %d", len(ov.Totals))
	}
	students := ov.Totals[0]
	if students.Label != "Students" || students.Value != 120 {
		t.Errorf("unexpected students card: %+v", students)
	}
	if !strings.HasPrefix(students.SparklinePath, "M 0,50") {
		t.Errorf("sparkline should start at the baseline; got %q", students.SparklinePath)
	}
	if ov.Totals[1].SparklinePath != "" {
		t.Errorf("only the students card carries a sparkline; got %q", ov.Totals[1].SparklinePath)
	}

	if ov.Enrollment.Width != 800 || ov.Enrollment.Height != 200 {
		t.Errorf("unexpected canvas: %vx%v", ov.Enrollment.Width, ov.Enrollment.Height)
	}
	if got := strings.Count(ov.Enrollment.LinePath, "L"); got != 3 {
		t.Errorf("expected 3 line segments; got %d (%q)", got, ov.Enrollment.LinePath)
	}
	if !strings.HasSuffix(ov.Enrollment.AreaPath, "Z") {
		t.Errorf("area path must close; got %q", ov.Enrollment.AreaPath)
	}
	if ov.Enrollment.Total != 35 {
		t.Errorf("expected enrollment total 35; got %v", ov.Enrollment.Total)
	}
	if len(ov.Enrollment.Markers) != 4 {
		t.Errorf("short series keeps every marker; got %d", len(ov.Enrollment.Markers))
	}

	if ov.Tiers.Radius != 70 || len(ov.Tiers.Segments) != 2 || ov.Tiers.Total != 4 {
		t.Errorf("unexpected donut: %+v", ov.Tiers)
	}

	wantDays := []string{"mon", "tue", "wed", "thu", "fri", "sat", "sun"}
	if len(ov.Activity.Rows) != len(wantDays) {
		t.Fatalf("expected %d heatmap rows; got %d", len(wantDays), len(ov.Activity.Rows))
	}
	for i, row := range ov.Activity.Rows {
		if row.Day != wantDays[i] {
			t.Errorf("row %d: expected day %q; got %q", i, wantDays[i], row.Day)
		}
		if len(row.Bands) != 24 {
			t.Errorf("row %q: expected 24 cells; got %d", row.Day, len(row.Bands))
		}
	}
	if got := ov.Activity.Rows[0].Bands[0]; got != 4 {
		t.Errorf("grid max cell should band 4; got %d", got)
	}
	for _, band := range ov.Activity.Rows[1].Bands {
		if band != 0 {
			t.Fatalf("missing day must render all-zero; got bands %v", ov.Activity.Rows[1].Bands)
		}
	}
	if len(ov.Activity.Palette) != chart.HeatmapBandCount {
		t.Errorf("palette must cover every band; got %d colors", len(ov.Activity.Palette))
	}

	wantWidths := []float64{100, 50, 0}
	if len(ov.Subjects) != len(wantWidths) {
		t.Fatalf("expected %d subject bars; got %d", len(wantWidths), len(ov.Subjects))
	}
	for i, bar := range ov.Subjects {
		if bar.WidthPercent != wantWidths[i] {
			t.Errorf("bar %q: expected width %v%%; got %v%%", bar.Label, wantWidths[i], bar.WidthPercent)
		}
	}
}

func TestOverviewEmptyData(t *testing.T) {
	svc := NewService(&repoStub{grid: map[string][]int{}})

	ov, err := svc.Overview()
	if err != nil {
		t.Fatalf("Overview() failed: %v", err)
	}
	if ov.Enrollment.LinePath != "" || ov.Enrollment.AreaPath != "" {
		t.Errorf("empty series must yield empty paths; got %q / %q", ov.Enrollment.LinePath, ov.Enrollment.AreaPath)
	}
	if len(ov.Enrollment.Markers) != 0 {
		t.Errorf("empty series must yield no markers; got %v", ov.Enrollment.Markers)
	}
	if len(ov.Activity.Rows) != 7 {
		t.Errorf("empty grid still renders the full week; got %d rows", len(ov.Activity.Rows))
	}
	if len(ov.Subjects) != 0 {
		t.Errorf("expected no subject bars; got %v", ov.Subjects)
	}
}
