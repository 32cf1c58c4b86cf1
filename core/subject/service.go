package subject

import (
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/Fukuzeya/zim-student-companion-sub000/core"
)

var (
	// ErrNotFound is returned when a requested subject does not exist.
	ErrNotFound = errors.New("subject not found")
	// ErrCodeExists is returned on subject code duplication.
	ErrCodeExists = errors.New("a subject with this code already exists")
	// ErrDocumentNotFound is returned when a requested document does not exist.
	ErrDocumentNotFound = errors.New("document not found")
)

type (
	Repository interface {
		CheckCodeUniqueness(code string, exclSubjects ...Subject) error
		CreateSubject(sub Subject) (Subject, error)
		QueryAllSubjects() ([]Subject, error)
		GetSubjectByID(id string) (Subject, error)
		GetSubjectByCode(code string) (Subject, error)
		FilterSubjects(filter QueryFilter, orderings []core.DBOrdering) ([]Subject, error)
		UpdateSubject(sub Subject, isArchived *bool) (Subject, error)
		DeleteSubjectsByID(ids ...string) error

		CreateDocument(doc Document) (Document, error)
		GetDocumentByID(id string) (Document, error)
		QueryDocumentsBySubjectID(subID string) ([]Document, error)
		DeleteDocumentsByID(ids ...string) error
	}

	Service interface {
		CheckUniqueness(code string, exclSubjects ...Subject) error
		Create(ns NewSubject) (Subject, error)
		Query(filter *QueryFilter, orderings []core.DBOrdering) ([]Subject, error)
		GetByID(id string) (Subject, error)
		GetByCode(code string) (Subject, error)
		Update(id string, us UpdateSubject) (Subject, error)
		Delete(ids ...string) error

		AddDocument(nd NewDocument) (Document, error)
		GetDocument(id string) (Document, error)
		Documents(subID string) ([]Document, error)
		DeleteDocuments(ids ...string) error
	}

	service struct {
		repo Repository
	}
)

var _ Service = (*service)(nil)

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (svc *service) CheckUniqueness(code string, exclSubjects ...Subject) error {
	if err := svc.repo.CheckCodeUniqueness(code, exclSubjects...); err != nil {
		if errors.Cause(err) == ErrCodeExists {
			return core.NewValidationError(err, core.FieldError{Field: "code", Error: err.Error()})
		}
		return err
	}
	return nil
}

func (svc *service) Create(ns NewSubject) (Subject, error) {
	now := time.Now().UTC()
	sub := Subject{
		ID:          uuid.New().String(),
		Name:        ns.Name,
		Code:        ns.Code,
		Description: ns.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	return svc.repo.CreateSubject(sub)
}

func (svc *service) Query(filter *QueryFilter, orderings []core.DBOrdering) ([]Subject, error) {
	if filter == nil || filter.IsEmpty() {
		if len(orderings) == 0 {
			return svc.repo.QueryAllSubjects()
		}
		filter = new(QueryFilter)
	}
	return svc.repo.FilterSubjects(*filter, orderings)
}

func (svc *service) GetByID(id string) (Subject, error) {
	return svc.repo.GetSubjectByID(id)
}

func (svc *service) GetByCode(code string) (Subject, error) {
	return svc.repo.GetSubjectByCode(core.CleanString(code, true /* lower */))
}

func (svc *service) Update(id string, us UpdateSubject) (Subject, error) {
	sub := Subject{
		ID:          id,
		Name:        us.Name,
		Code:        us.Code,
		Description: us.Description,
		UpdatedAt:   time.Now().UTC(),
	}
	return svc.repo.UpdateSubject(sub, us.IsArchived)
}

func (svc *service) Delete(ids ...string) error {
	return svc.repo.DeleteSubjectsByID(ids...)
}

func (svc *service) AddDocument(nd NewDocument) (Document, error) {
	if _, err := svc.repo.GetSubjectByID(nd.SubjectID); err != nil {
		return Document{}, err
	}
	doc := Document{
		ID:          uuid.New().String(),
		SubjectID:   nd.SubjectID,
		Title:       nd.Title,
		FileName:    nd.FileName,
		ContentType: nd.ContentType,
		SizeBytes:   nd.SizeBytes,
		UploadedBy:  nd.UploadedBy,
		CreatedAt:   time.Now().UTC(),
	}
	return svc.repo.CreateDocument(doc)
}

func (svc *service) GetDocument(id string) (Document, error) {
	return svc.repo.GetDocumentByID(id)
}

func (svc *service) Documents(subID string) ([]Document, error) {
	return svc.repo.QueryDocumentsBySubjectID(subID)
}

func (svc *service) DeleteDocuments(ids ...string) error {
	return svc.repo.DeleteDocumentsByID(ids...)
}
