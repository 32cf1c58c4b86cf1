package inmemdb

import (
	"sort"

	"github.com/Fukuzeya/zim-student-companion-sub000/core/chart"
	"github.com/Fukuzeya/zim-student-companion-sub000/core/dashboard"
	"github.com/Fukuzeya/zim-student-companion-sub000/core/user"
)

type statsRepository struct {
	db *DB
}

func NewStatsRepository(db *DB) dashboard.Repository {
	return &statsRepository{db: db}
}

// SeedStats loads canned series for debug runs and tests.
func (db *DB) SeedStats(enrollment []chart.Point, activity map[string][]int, views map[string]float64) {
	db.stats.mutex.Lock()
	defer db.stats.mutex.Unlock()

	db.stats.enrollment = enrollment
	if activity != nil {
		db.stats.activity = activity
	}
	if views != nil {
		db.stats.views = views
	}
}

// RecordEnrollment appends a day to the enrollment series.
func (db *DB) RecordEnrollment(day string, count float64) {
	db.stats.mutex.Lock()
	defer db.stats.mutex.Unlock()
	db.stats.enrollment = append(db.stats.enrollment, chart.Point{Timestamp: day, Value: count})
}

// RecordSubjectView bumps a subject's view counter.
func (db *DB) RecordSubjectView(subjectID string) {
	db.stats.mutex.Lock()
	defer db.stats.mutex.Unlock()
	db.stats.views[subjectID]++
}

func (repo *statsRepository) TotalCounts() (dashboard.Counts, error) {
	repo.db.user.mutex.RLock()
	defer repo.db.user.mutex.RUnlock()
	repo.db.subject.mutex.RLock()
	defer repo.db.subject.mutex.RUnlock()
	repo.db.document.mutex.RLock()
	defer repo.db.document.mutex.RUnlock()

	var counts dashboard.Counts
	for _, usr := range repo.db.user.table {
		if usr.IsStudent() {
			counts.Students++
		}
		if usr.IsTeacher() {
			counts.Teachers++
		}
	}
	for _, sub := range repo.db.subject.table {
		if !sub.IsArchived {
			counts.Subjects++
		}
	}
	counts.Documents = len(repo.db.document.table)
	return counts, nil
}

func (repo *statsRepository) EnrollmentSeries(days int) ([]chart.Point, error) {
	repo.db.stats.mutex.RLock()
	defer repo.db.stats.mutex.RUnlock()

	series := repo.db.stats.enrollment
	if len(series) > days {
		series = series[len(series)-days:]
	}
	out := make([]chart.Point, len(series))
	copy(out, series)
	return out, nil
}

func (repo *statsRepository) TierDistribution() ([]chart.Category, error) {
	repo.db.user.mutex.RLock()
	defer repo.db.user.mutex.RUnlock()

	byTier := make(map[string]float64)
	for _, usr := range repo.db.user.table {
		byTier[usr.Tier]++
	}
	dist := make([]chart.Category, 0, len(user.AllTiers))
	for _, tier := range user.AllTiers {
		dist = append(dist, chart.Category{Label: tier, Value: byTier[tier]})
	}
	return dist, nil
}

func (repo *statsRepository) ActivityGrid() (map[string][]int, error) {
	repo.db.stats.mutex.RLock()
	defer repo.db.stats.mutex.RUnlock()

	grid := make(map[string][]int, len(repo.db.stats.activity))
	for day, row := range repo.db.stats.activity {
		cp := make([]int, len(row))
		copy(cp, row)
		grid[day] = cp
	}
	return grid, nil
}

func (repo *statsRepository) SubjectEngagement() ([]chart.Category, error) {
	repo.db.subject.mutex.RLock()
	defer repo.db.subject.mutex.RUnlock()
	repo.db.stats.mutex.RLock()
	defer repo.db.stats.mutex.RUnlock()

	var engagement []chart.Category
	for id, sub := range repo.db.subject.table {
		if sub.IsArchived {
			continue
		}
		engagement = append(engagement, chart.Category{Label: sub.Name, Value: repo.db.stats.views[id]})
	}
	sort.Slice(engagement, func(i, j int) bool {
		if engagement[i].Value != engagement[j].Value {
			return engagement[i].Value > engagement[j].Value
		}
		return engagement[i].Label < engagement[j].Label
	})
	return engagement, nil
}
