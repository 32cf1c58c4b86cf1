package echoapi

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/Fukuzeya/zim-student-companion-sub000/core/subject"
	"github.com/Fukuzeya/zim-student-companion-sub000/core/user"
)

func Test_subjectApi_create(t *testing.T) {
	srv, deps := newTestServer(t)

	admin := createUser(t, deps.userRepo, "Admin", "admin", "admin@test.zw", "", user.TierFree, []string{user.RoleAdmin}, true)
	student := createUser(t, deps.userRepo, "Hero", "hero", "hero@test.zw", "", user.TierFree, []string{user.RoleStudent}, true)
	createSubject(t, deps.subjectSvc, "Combined Science", "csci")

	adminToken := getToken(t, admin)

	tests := []httpTest{
		{
			name: "admin required", token: getToken(t, student),
			body:     marchallObj(t, subject.NewSubject{Name: "Geography", Code: "geo"}),
			wantCode: http.StatusForbidden, wantData: marchallObj(t, httpErr{Error: "permission denied"}),
		},
		{
			name: "missing fields", token: adminToken, body: []byte("{}"),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"name": "this field is required", "code": "this field is required"}),
		},
		{
			name: "duplicate code", token: adminToken,
			body:     marchallObj(t, subject.NewSubject{Name: "Science", Code: "CSCI"}),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"code": "a subject with this code already exists"}),
		},
		{
			name: "created", token: adminToken,
			body:     marchallObj(t, subject.NewSubject{Name: "Geography", Code: "GEO"}),
			wantCode: http.StatusCreated,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(http.MethodPost, "/v1/subjects", tt.token, tt.body)
			srv.ServeHTTP(rec, req)

			if tt.wantData == nil {
				if rec.Code != tt.wantCode {
					t.Fatalf("create code = %v; wantCode %v; body %s", rec.Code, tt.wantCode, rec.Body.String())
				}
				var sub subject.Subject
				if err := json.Unmarshal(rec.Body.Bytes(), &sub); err != nil {
					t.Fatalf("unmarshalling subject: %v", err)
				}
				// codes are normalized to lower case
				if sub.Code != "geo" || sub.ID == "" {
					t.Errorf("unexpected subject: %+v", sub)
				}
				return
			}
			checkCodeAndData(t, tt, rec)
		})
	}
}

func Test_subjectApi_query(t *testing.T) {
	srv, deps := newTestServer(t)

	admin := createUser(t, deps.userRepo, "Admin", "admin", "admin@test.zw", "", user.TierFree, []string{user.RoleAdmin}, true)
	math := createSubject(t, deps.subjectSvc, "Mathematics", "math")
	sci := createSubject(t, deps.subjectSvc, "Combined Science", "csci")
	token := getToken(t, admin)

	marchallSubjects := func(subjects ...subject.Subject) []byte { return marchallObj(t, subjects) }

	tests := []httpTest{
		{name: "get all", path: "/v1/subjects", wantData: marchallSubjects(sci, math)},
		{name: "search=math", path: "/v1/subjects?search=math", wantData: marchallSubjects(math)},
		{name: "search (unknown)", path: "/v1/subjects?search=lol", wantData: marchallSubjects()},
		{name: "ordering=-name", path: "/v1/subjects?ordering=-name", wantData: marchallSubjects(math, sci)},
	}
	for _, tt := range tests {
		tt.wantCode = http.StatusOK
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(http.MethodGet, tt.path, token)
			srv.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}

func Test_subjectApi_update(t *testing.T) {
	srv, deps := newTestServer(t)

	admin := createUser(t, deps.userRepo, "Admin", "admin", "admin@test.zw", "", user.TierFree, []string{user.RoleAdmin}, true)
	sub := createSubject(t, deps.subjectSvc, "Mathematics", "math")

	archived := true
	body := marchallObj(t, subject.UpdateSubject{Name: "Pure Mathematics", IsArchived: &archived})
	req, rec := newAuthRequest(http.MethodPut, "/v1/subjects/"+sub.ID, getToken(t, admin), body)
	srv.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("update code = %v; body %s", rec.Code, rec.Body.String())
	}

	sub, err := deps.subjectSvc.GetByID(sub.ID)
	if err != nil {
		t.Fatalf("reloading subject failed: %v", err)
	}
	if sub.Name != "Pure Mathematics" || !sub.IsArchived || sub.Code != "math" {
		t.Errorf("unexpected subject after update: %+v", sub)
	}
}

func Test_subjectApi_documents(t *testing.T) {
	srv, deps := newTestServer(t)

	teacher := createUser(t, deps.userRepo, "Teacher", "teacher", "teacher@test.zw", "", user.TierFree, []string{user.RoleTeacher}, true)
	student := createUser(t, deps.userRepo, "Hero", "hero", "hero@test.zw", "", user.TierFree, []string{user.RoleStudent}, true)
	sub := createSubject(t, deps.subjectSvc, "Mathematics", "math")

	teacherToken := getToken(t, teacher)
	newDoc := marchallObj(t, subject.NewDocument{
		Title:       "Algebra Notes",
		FileName:    "algebra.pdf",
		ContentType: "application/pdf",
		SizeBytes:   2048,
	})

	// students cannot upload
	req, rec := newAuthRequest(http.MethodPost, "/v1/subjects/"+sub.ID+"/documents", getToken(t, student), newDoc)
	srv.ServeHTTP(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Errorf("student upload code = %v; wantCode %v", rec.Code, http.StatusForbidden)
	}

	req, rec = newAuthRequest(http.MethodPost, "/v1/subjects/"+sub.ID+"/documents", teacherToken, newDoc)
	srv.ServeHTTP(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("upload code = %v; body %s", rec.Code, rec.Body.String())
	}
	var doc subject.Document
	if err := json.Unmarshal(rec.Body.Bytes(), &doc); err != nil {
		t.Fatalf("unmarshalling document: %v", err)
	}
	if doc.SubjectID != sub.ID || doc.UploadedBy != teacher.ID {
		t.Errorf("unexpected document: %+v", doc)
	}

	// anyone authed can list
	req, rec = newAuthRequest(http.MethodGet, "/v1/subjects/"+sub.ID+"/documents", getToken(t, student))
	srv.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("list code = %v; body %s", rec.Code, rec.Body.String())
	}
	var docs []subject.Document
	if err := json.Unmarshal(rec.Body.Bytes(), &docs); err != nil || len(docs) != 1 {
		t.Fatalf("expected 1 document; body %s", rec.Body.String())
	}

	req, rec = newAuthRequest(http.MethodDelete, "/v1/subjects/documents/"+doc.ID, teacherToken)
	srv.ServeHTTP(rec, req)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("delete code = %v; body %s", rec.Code, rec.Body.String())
	}
	if _, err := deps.subjectSvc.GetDocument(doc.ID); err != subject.ErrDocumentNotFound {
		t.Errorf("expected document to be gone; err %v", err)
	}
}
