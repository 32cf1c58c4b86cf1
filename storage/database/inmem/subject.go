package inmemdb

import (
	"sort"
	"strings"

	"github.com/Fukuzeya/zim-student-companion-sub000/core"
	"github.com/Fukuzeya/zim-student-companion-sub000/core/subject"
)

type subjectRepository struct {
	subjects  *subjectTable
	documents *documentTable
}

func NewSubjectRepository(db *DB) subject.Repository {
	return &subjectRepository{subjects: db.subject, documents: db.document}
}

func (repo *subjectRepository) query() []subject.Subject {
	subjects := make([]subject.Subject, 0, len(repo.subjects.table))
	for _, s := range repo.subjects.table {
		subjects = append(subjects, *s)
	}
	sort.Slice(subjects, func(i, j int) bool { return subjects[i].Name < subjects[j].Name })
	return subjects
}

func (repo *subjectRepository) CheckCodeUniqueness(code string, exclSubjects ...subject.Subject) error {
	repo.subjects.mutex.RLock()
	defer repo.subjects.mutex.RUnlock()

	excluded := make(map[string]bool, len(exclSubjects))
	for _, sub := range exclSubjects {
		excluded[sub.ID] = true
	}

	for _, sub := range repo.query() {
		if sub.Code == code && !excluded[sub.ID] {
			return subject.ErrCodeExists
		}
	}
	return nil
}

func (repo *subjectRepository) CreateSubject(sub subject.Subject) (subject.Subject, error) {
	repo.subjects.mutex.Lock()
	defer repo.subjects.mutex.Unlock()

	repo.subjects.table[sub.ID] = &sub
	return sub, nil
}

func (repo *subjectRepository) QueryAllSubjects() ([]subject.Subject, error) {
	repo.subjects.mutex.RLock()
	defer repo.subjects.mutex.RUnlock()
	return repo.query(), nil
}

func (repo *subjectRepository) GetSubjectByID(id string) (subject.Subject, error) {
	repo.subjects.mutex.RLock()
	defer repo.subjects.mutex.RUnlock()

	if sub, ok := repo.subjects.table[id]; ok {
		return *sub, nil
	}
	return subject.Subject{}, subject.ErrNotFound
}

func (repo *subjectRepository) GetSubjectByCode(code string) (subject.Subject, error) {
	repo.subjects.mutex.RLock()
	defer repo.subjects.mutex.RUnlock()

	for _, sub := range repo.query() {
		if sub.Code == code {
			return sub, nil
		}
	}
	return subject.Subject{}, subject.ErrNotFound
}

func (repo *subjectRepository) FilterSubjects(filter subject.QueryFilter, orderings []core.DBOrdering) ([]subject.Subject, error) {
	repo.subjects.mutex.RLock()
	defer repo.subjects.mutex.RUnlock()

	subjects := repo.query()

	if filter.Search != "" {
		var filtered []subject.Subject
		search := strings.ToLower(filter.Search)
		for _, s := range subjects {
			if strings.Contains(strings.ToLower(s.Name), search) ||
				strings.Contains(strings.ToLower(s.Code), search) {
				filtered = append(filtered, s)
			}
		}
		subjects = filtered
	}
	if subjects != nil && filter.IsArchived != nil {
		var filtered []subject.Subject
		for _, s := range subjects {
			if s.IsArchived == *filter.IsArchived {
				filtered = append(filtered, s)
			}
		}
		subjects = filtered
	}

	sortSubjects(subjects, orderings)
	return subjects, nil
}

// UpdateSubject only saves set fields.
func (repo *subjectRepository) UpdateSubject(sub subject.Subject, isArchived *bool) (subject.Subject, error) {
	repo.subjects.mutex.Lock()
	defer repo.subjects.mutex.Unlock()

	origSub, ok := repo.subjects.table[sub.ID]
	if !ok {
		return subject.Subject{}, subject.ErrNotFound
	}
	if sub.Name != "" {
		origSub.Name = sub.Name
	}
	if sub.Code != "" {
		origSub.Code = sub.Code
	}
	if sub.Description.Valid {
		origSub.Description = sub.Description
	}
	if isArchived != nil {
		origSub.IsArchived = *isArchived
	}
	if !sub.UpdatedAt.IsZero() {
		origSub.UpdatedAt = sub.UpdatedAt
	}

	repo.subjects.table[sub.ID] = origSub
	return *origSub, nil
}

func (repo *subjectRepository) DeleteSubjectsByID(ids ...string) error {
	repo.subjects.mutex.Lock()
	defer repo.subjects.mutex.Unlock()
	repo.documents.mutex.Lock()
	defer repo.documents.mutex.Unlock()

	for _, id := range ids {
		delete(repo.subjects.table, id)
		for docID, doc := range repo.documents.table {
			if doc.SubjectID == id {
				delete(repo.documents.table, docID)
			}
		}
	}
	return nil
}

func (repo *subjectRepository) CreateDocument(doc subject.Document) (subject.Document, error) {
	repo.documents.mutex.Lock()
	defer repo.documents.mutex.Unlock()

	repo.documents.table[doc.ID] = &doc
	return doc, nil
}

func (repo *subjectRepository) GetDocumentByID(id string) (subject.Document, error) {
	repo.documents.mutex.RLock()
	defer repo.documents.mutex.RUnlock()

	if doc, ok := repo.documents.table[id]; ok {
		return *doc, nil
	}
	return subject.Document{}, subject.ErrDocumentNotFound
}

func (repo *subjectRepository) QueryDocumentsBySubjectID(subID string) ([]subject.Document, error) {
	repo.documents.mutex.RLock()
	defer repo.documents.mutex.RUnlock()

	var docs []subject.Document
	for _, doc := range repo.documents.table {
		if doc.SubjectID == subID {
			docs = append(docs, *doc)
		}
	}
	sort.Slice(docs, func(i, j int) bool { return docs[i].CreatedAt.Before(docs[j].CreatedAt) })
	return docs, nil
}

func (repo *subjectRepository) DeleteDocumentsByID(ids ...string) error {
	repo.documents.mutex.Lock()
	defer repo.documents.mutex.Unlock()
	for _, id := range ids {
		delete(repo.documents.table, id)
	}
	return nil
}

func sortSubjects(subjects []subject.Subject, orderings []core.DBOrdering) {
	for i := len(orderings) - 1; i >= 0; i-- {
		ord := orderings[i]
		less := func(a, b subject.Subject) bool { return a.Name < b.Name }
		switch ord.Field {
		case "code":
			less = func(a, b subject.Subject) bool { return a.Code < b.Code }
		case "created_at":
			less = func(a, b subject.Subject) bool { return a.CreatedAt.Before(b.CreatedAt) }
		case "updated_at":
			less = func(a, b subject.Subject) bool { return a.UpdatedAt.Before(b.UpdatedAt) }
		}
		sort.SliceStable(subjects, func(a, b int) bool {
			if ord.Ascending {
				return less(subjects[a], subjects[b])
			}
			return less(subjects[b], subjects[a])
		})
	}
}
