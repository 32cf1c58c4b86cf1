package sqlxrepos

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/Fukuzeya/zim-student-companion-sub000/core"
	"github.com/Fukuzeya/zim-student-companion-sub000/core/subject"
)

var subjectOrderFields = map[string]bool{
	"name":       true,
	"code":       true,
	"created_at": true,
	"updated_at": true,
}

type subjectRow struct {
	ID          string      `db:"id"`
	Name        string      `db:"name"`
	Code        string      `db:"code"`
	Description null.String `db:"description"`
	IsArchived  bool        `db:"is_archived"`
	CreatedAt   time.Time   `db:"created_at"`
	UpdatedAt   time.Time   `db:"updated_at"`
}

func (r subjectRow) subject() subject.Subject {
	return subject.Subject(r)
}

type documentRow struct {
	ID          string    `db:"id"`
	SubjectID   string    `db:"subject_id"`
	Title       string    `db:"title"`
	FileName    string    `db:"file_name"`
	ContentType string    `db:"content_type"`
	SizeBytes   int64     `db:"size_bytes"`
	UploadedBy  string    `db:"uploaded_by"`
	CreatedAt   time.Time `db:"created_at"`
}

func (r documentRow) document() subject.Document {
	return subject.Document(r)
}

type subjectRepository struct {
	db *sqlx.DB
}

func NewSubjectRepository(db *sql.DB) subject.Repository {
	return &subjectRepository{db: sqlx.NewDb(db, "postgres")}
}

func (repo *subjectRepository) CheckCodeUniqueness(code string, exclSubjects ...subject.Subject) error {
	q := `SELECT count(*) FROM subject WHERE code = ?`
	args := []interface{}{code}
	if len(exclSubjects) > 0 {
		ids := make([]string, 0, len(exclSubjects))
		for _, sub := range exclSubjects {
			ids = append(ids, sub.ID)
		}
		q += " AND id NOT IN (?)"
		var err error
		if q, args, err = sqlx.In(q, code, ids); err != nil {
			return errors.Wrap(err, "building uniqueness query")
		}
	}

	var count int
	if err := repo.db.Get(&count, repo.db.Rebind(q), args...); err != nil {
		return errors.Wrap(err, "checking code uniqueness")
	}
	if count > 0 {
		return subject.ErrCodeExists
	}
	return nil
}

func (repo *subjectRepository) CreateSubject(sub subject.Subject) (subject.Subject, error) {
	const q = `
		INSERT INTO subject (id, name, code, description, is_archived, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := repo.db.Exec(q, sub.ID, sub.Name, sub.Code, sub.Description, sub.IsArchived, sub.CreatedAt, sub.UpdatedAt)
	if err != nil {
		return subject.Subject{}, errors.Wrap(err, "inserting subject")
	}
	return sub, nil
}

func (repo *subjectRepository) QueryAllSubjects() ([]subject.Subject, error) {
	var rows []subjectRow
	if err := repo.db.Select(&rows, `SELECT * FROM subject ORDER BY name`); err != nil {
		return nil, errors.Wrap(err, "querying subjects")
	}
	subjects := make([]subject.Subject, 0, len(rows))
	for _, r := range rows {
		subjects = append(subjects, r.subject())
	}
	return subjects, nil
}

func (repo *subjectRepository) getSubject(q string, args ...interface{}) (subject.Subject, error) {
	var row subjectRow
	if err := repo.db.Get(&row, q, args...); err != nil {
		if err == sql.ErrNoRows {
			return subject.Subject{}, subject.ErrNotFound
		}
		return subject.Subject{}, errors.Wrap(err, "getting subject")
	}
	return row.subject(), nil
}

func (repo *subjectRepository) GetSubjectByID(id string) (subject.Subject, error) {
	return repo.getSubject(`SELECT * FROM subject WHERE id = $1`, id)
}

func (repo *subjectRepository) GetSubjectByCode(code string) (subject.Subject, error) {
	return repo.getSubject(`SELECT * FROM subject WHERE code = $1`, code)
}

func (repo *subjectRepository) FilterSubjects(filter subject.QueryFilter, orderings []core.DBOrdering) ([]subject.Subject, error) {
	q := `SELECT * FROM subject`
	var (
		clauses []string
		args    []interface{}
	)
	if filter.Search != "" {
		args = append(args, core.SearchPattern(filter.Search))
		p := fmt.Sprintf("$%d", len(args))
		clauses = append(clauses, fmt.Sprintf("(name ILIKE %s OR code ILIKE %s)", p, p))
	}
	if filter.IsArchived != nil {
		args = append(args, *filter.IsArchived)
		clauses = append(clauses, fmt.Sprintf("is_archived = $%d", len(args)))
	}
	if len(clauses) > 0 {
		q += " WHERE " + strings.Join(clauses, " AND ")
	}
	q += orderByClause(orderings, subjectOrderFields, "name")

	var rows []subjectRow
	if err := repo.db.Select(&rows, q, args...); err != nil {
		return nil, errors.Wrap(err, "filtering subjects")
	}
	subjects := make([]subject.Subject, 0, len(rows))
	for _, r := range rows {
		subjects = append(subjects, r.subject())
	}
	return subjects, nil
}

// UpdateSubject only saves set fields.
func (repo *subjectRepository) UpdateSubject(sub subject.Subject, isArchived *bool) (subject.Subject, error) {
	var (
		sets []string
		args []interface{}
	)
	set := func(col string, v interface{}) {
		args = append(args, v)
		sets = append(sets, fmt.Sprintf("%s = $%d", col, len(args)))
	}

	if sub.Name != "" {
		set("name", sub.Name)
	}
	if sub.Code != "" {
		set("code", sub.Code)
	}
	if sub.Description.Valid {
		set("description", sub.Description)
	}
	if isArchived != nil {
		set("is_archived", *isArchived)
	}
	if !sub.UpdatedAt.IsZero() {
		set("updated_at", sub.UpdatedAt)
	}
	if len(sets) == 0 {
		return repo.GetSubjectByID(sub.ID)
	}

	args = append(args, sub.ID)
	q := fmt.Sprintf(`UPDATE subject SET %s WHERE id = $%d`, strings.Join(sets, ", "), len(args))
	res, err := repo.db.Exec(q, args...)
	if err != nil {
		return subject.Subject{}, errors.Wrap(err, "updating subject")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return subject.Subject{}, subject.ErrNotFound
	}
	return repo.GetSubjectByID(sub.ID)
}

func (repo *subjectRepository) DeleteSubjectsByID(ids ...string) error {
	if len(ids) == 0 {
		return nil
	}
	q, args, err := sqlx.In(`DELETE FROM subject WHERE id IN (?)`, ids)
	if err != nil {
		return errors.Wrap(err, "building delete query")
	}
	if _, err = repo.db.Exec(repo.db.Rebind(q), args...); err != nil {
		return errors.Wrap(err, "deleting subjects")
	}
	return nil
}

func (repo *subjectRepository) CreateDocument(doc subject.Document) (subject.Document, error) {
	const q = `
		INSERT INTO document (id, subject_id, title, file_name, content_type, size_bytes, uploaded_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := repo.db.Exec(q, doc.ID, doc.SubjectID, doc.Title, doc.FileName, doc.ContentType, doc.SizeBytes, doc.UploadedBy, doc.CreatedAt)
	if err != nil {
		return subject.Document{}, errors.Wrap(err, "inserting document")
	}
	return doc, nil
}

func (repo *subjectRepository) GetDocumentByID(id string) (subject.Document, error) {
	var row documentRow
	if err := repo.db.Get(&row, `SELECT * FROM document WHERE id = $1`, id); err != nil {
		if err == sql.ErrNoRows {
			return subject.Document{}, subject.ErrDocumentNotFound
		}
		return subject.Document{}, errors.Wrap(err, "getting document")
	}
	return row.document(), nil
}

func (repo *subjectRepository) QueryDocumentsBySubjectID(subID string) ([]subject.Document, error) {
	var rows []documentRow
	if err := repo.db.Select(&rows, `SELECT * FROM document WHERE subject_id = $1 ORDER BY created_at`, subID); err != nil {
		return nil, errors.Wrap(err, "querying documents")
	}
	docs := make([]subject.Document, 0, len(rows))
	for _, r := range rows {
		docs = append(docs, r.document())
	}
	return docs, nil
}

func (repo *subjectRepository) DeleteDocumentsByID(ids ...string) error {
	if len(ids) == 0 {
		return nil
	}
	q, args, err := sqlx.In(`DELETE FROM document WHERE id IN (?)`, ids)
	if err != nil {
		return errors.Wrap(err, "building delete query")
	}
	if _, err = repo.db.Exec(repo.db.Rebind(q), args...); err != nil {
		return errors.Wrap(err, "deleting documents")
	}
	return nil
}
