package subject

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/volatiletech/null/v8"

	"github.com/Fukuzeya/zim-student-companion-sub000/core"
)

type (
	// Subject is a curriculum subject offered on the platform.
	Subject struct {
		ID          string      `json:"id"`
		Name        string      `json:"name"`
		Code        string      `json:"code"`
		Description null.String `json:"description"`
		IsArchived  bool        `json:"is_archived"`
		CreatedAt   time.Time   `json:"created_at,omitempty"`
		UpdatedAt   time.Time   `json:"updated_at,omitempty"`
	}

	// Document is a study resource attached to a Subject.
	Document struct {
		ID          string    `json:"id"`
		SubjectID   string    `json:"subject_id"`
		Title       string    `json:"title"`
		FileName    string    `json:"file_name"`
		ContentType string    `json:"content_type"`
		SizeBytes   int64     `json:"size_bytes"`
		UploadedBy  string    `json:"uploaded_by"`
		CreatedAt   time.Time `json:"created_at,omitempty"`
	}
)

type NewSubject struct {
	Name        string      `json:"name" validate:"required"`
	Code        string      `json:"code" validate:"required,alphanum_"`
	Description null.String `json:"description"`
}

func (ns *NewSubject) Validate(validate *validator.Validate, svc Service) error {
	ns.Name = core.CleanString(ns.Name)
	ns.Code = core.CleanString(ns.Code, true /* lower */)
	if err := validate.Struct(ns); err != nil {
		return err
	}
	return svc.CheckUniqueness(ns.Code)
}

type UpdateSubject struct {
	Name        string      `json:"name" validate:"omitempty"`
	Code        string      `json:"code" validate:"omitempty,alphanum_"`
	Description null.String `json:"description"`
	IsArchived  *bool       `json:"is_archived"`
}

func (us *UpdateSubject) Validate(validate *validator.Validate, svc Service, sub Subject) error {
	us.Name = core.CleanString(us.Name)
	us.Code = core.CleanString(us.Code, true /* lower */)
	if err := validate.Struct(us); err != nil {
		return err
	}
	if us.Code != "" {
		return svc.CheckUniqueness(us.Code, sub)
	}
	return nil
}

type NewDocument struct {
	SubjectID   string `json:"subject_id" validate:"required"`
	Title       string `json:"title" validate:"required"`
	FileName    string `json:"file_name" validate:"required"`
	ContentType string `json:"content_type" validate:"required"`
	SizeBytes   int64  `json:"size_bytes" validate:"required,min=1"`
	UploadedBy  string `json:"uploaded_by"`
}

func (nd *NewDocument) Validate(validate *validator.Validate) error {
	nd.Title = core.CleanString(nd.Title)
	nd.FileName = core.CleanString(nd.FileName)
	return validate.Struct(nd)
}

// QueryFilter for searching subjects.
type QueryFilter struct {
	Search     string `query:"search"` // matches name or code
	IsArchived *bool  `query:"is_archived"`
}

func (f *QueryFilter) IsEmpty() bool {
	return f.Search == "" &&
		f.IsArchived == nil
}

func (f *QueryFilter) Clean() {
	f.Search = core.CleanString(f.Search, true /* lower */)
}
