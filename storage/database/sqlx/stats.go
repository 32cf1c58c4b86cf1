package sqlxrepos

import (
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/Fukuzeya/zim-student-companion-sub000/core/chart"
	"github.com/Fukuzeya/zim-student-companion-sub000/core/dashboard"
	"github.com/Fukuzeya/zim-student-companion-sub000/core/user"
)

type statsRepository struct {
	db *sqlx.DB
}

func NewStatsRepository(db *sql.DB) dashboard.Repository {
	return &statsRepository{db: sqlx.NewDb(db, "postgres")}
}

func (repo *statsRepository) countUsersByRole(rolePrefix string) (int, error) {
	const q = `SELECT count(*) FROM "user" WHERE EXISTS (SELECT 1 FROM unnest(roles) AS r WHERE r LIKE $1)`
	var count int
	err := repo.db.Get(&count, q, rolePrefix+"%")
	return count, err
}

func (repo *statsRepository) TotalCounts() (dashboard.Counts, error) {
	var (
		counts dashboard.Counts
		err    error
	)
	if counts.Students, err = repo.countUsersByRole(user.RoleStudent); err != nil {
		return dashboard.Counts{}, errors.Wrap(err, "counting students")
	}
	if counts.Teachers, err = repo.countUsersByRole(user.RoleTeacher); err != nil {
		return dashboard.Counts{}, errors.Wrap(err, "counting teachers")
	}
	if err = repo.db.Get(&counts.Subjects, `SELECT count(*) FROM subject WHERE NOT is_archived`); err != nil {
		return dashboard.Counts{}, errors.Wrap(err, "counting subjects")
	}
	if err = repo.db.Get(&counts.Documents, `SELECT count(*) FROM document`); err != nil {
		return dashboard.Counts{}, errors.Wrap(err, "counting documents")
	}
	return counts, nil
}

func (repo *statsRepository) EnrollmentSeries(days int) ([]chart.Point, error) {
	const q = `
		SELECT to_char(day, 'YYYY-MM-DD') AS timestamp, count AS value
		FROM enrollment_stat
		WHERE day > current_date - $1
		ORDER BY day`
	rows, err := repo.db.Queryx(q, days)
	if err != nil {
		return nil, errors.Wrap(err, "querying enrollment series")
	}
	defer func() { _ = rows.Close() }()

	var series []chart.Point
	for rows.Next() {
		var pt chart.Point
		if err = rows.Scan(&pt.Timestamp, &pt.Value); err != nil {
			return nil, errors.Wrap(err, "scanning enrollment series")
		}
		series = append(series, pt)
	}
	return series, rows.Err()
}

// TierDistribution returns counts in the fixed tier order so the donut legend
// is stable across refreshes.
func (repo *statsRepository) TierDistribution() ([]chart.Category, error) {
	rows, err := repo.db.Queryx(`SELECT tier, count(*) FROM "user" GROUP BY tier`)
	if err != nil {
		return nil, errors.Wrap(err, "querying tier distribution")
	}
	defer func() { _ = rows.Close() }()

	byTier := make(map[string]float64)
	for rows.Next() {
		var (
			tier  string
			count float64
		)
		if err = rows.Scan(&tier, &count); err != nil {
			return nil, errors.Wrap(err, "scanning tier distribution")
		}
		byTier[tier] = count
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	dist := make([]chart.Category, 0, len(user.AllTiers))
	for _, tier := range user.AllTiers {
		dist = append(dist, chart.Category{Label: tier, Value: byTier[tier]})
	}
	return dist, nil
}

func (repo *statsRepository) ActivityGrid() (map[string][]int, error) {
	rows, err := repo.db.Queryx(`SELECT weekday, hour, count FROM activity_stat`)
	if err != nil {
		return nil, errors.Wrap(err, "querying activity grid")
	}
	defer func() { _ = rows.Close() }()

	grid := make(map[string][]int)
	for rows.Next() {
		var (
			weekday     string
			hour, count int
		)
		if err = rows.Scan(&weekday, &hour, &count); err != nil {
			return nil, errors.Wrap(err, "scanning activity grid")
		}
		row, ok := grid[weekday]
		if !ok {
			row = make([]int, 24)
			grid[weekday] = row
		}
		if hour >= 0 && hour < len(row) {
			row[hour] = count
		}
	}
	return grid, rows.Err()
}

func (repo *statsRepository) SubjectEngagement() ([]chart.Category, error) {
	const q = `
		SELECT s.name, coalesce(st.views, 0) AS views
		FROM subject s
		LEFT JOIN subject_stat st ON st.subject_id = s.id
		WHERE NOT s.is_archived
		ORDER BY views DESC, s.name`
	rows, err := repo.db.Queryx(q)
	if err != nil {
		return nil, errors.Wrap(err, "querying subject engagement")
	}
	defer func() { _ = rows.Close() }()

	var engagement []chart.Category
	for rows.Next() {
		var cat chart.Category
		if err = rows.Scan(&cat.Label, &cat.Value); err != nil {
			return nil, errors.Wrap(err, "scanning subject engagement")
		}
		engagement = append(engagement, cat)
	}
	return engagement, rows.Err()
}
