package echoapi

import (
	"bytes"
	"encoding/json"
	"log"
	"net/http"
	"net/http/httptest"
	"net/mail"
	"os"
	"reflect"
	"testing"
	"time"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"

	"github.com/Fukuzeya/zim-student-companion-sub000/core"
	"github.com/Fukuzeya/zim-student-companion-sub000/core/dashboard"
	"github.com/Fukuzeya/zim-student-companion-sub000/core/subject"
	"github.com/Fukuzeya/zim-student-companion-sub000/core/user"
	emailsvc "github.com/Fukuzeya/zim-student-companion-sub000/services/email"
	logsvc "github.com/Fukuzeya/zim-student-companion-sub000/services/logger"
	inmemdb "github.com/Fukuzeya/zim-student-companion-sub000/storage/database/inmem"
)

var errMissingToken = httpErr{Error: "missing or malformed jwt"}

type httpErr struct {
	Error string `json:"error"`
}

type httpTest struct {
	name     string
	method   string
	path     string
	body     []byte
	token    string
	wantCode int
	wantData []byte
	extra    interface{}
}

type testDeps struct {
	conf       *core.Config
	db         *inmemdb.DB
	userRepo   user.Repository
	userSvc    user.Service
	subjectSvc subject.Service
	validate   *validator.Validate
	translator ut.Translator
}

func newTestConfig() *core.Config {
	return &core.Config{
		TestMode:         true,
		AppName:          "Student Companion",
		SecretKey:        "secret",
		FrontendBaseURL:  "http://localhost:8080",
		DefaultFromEmail: mail.Address{Name: "Student Companion", Address: "noreply@localhost"},
		Server: core.ServerConfig{
			JWTExpirationDelta:        10 * time.Minute,
			JWTRefreshExpirationDelta: 4 * time.Hour,
		},
		PasswordResetTimeoutDelta: 3 * 24 * time.Hour,
	}
}

func newTestServer(t *testing.T) (Server, *testDeps) {
	conf := newTestConfig()

	db, err := inmemdb.Open()
	if err != nil {
		t.Fatalf("newTestServer() failed: %v", err)
	}

	validate := validator.New()
	translator := core.NewTranslator()
	core.InitValidators(validate, translator)
	user.InitValidators(validate, translator)

	emailsvc.ClearSentMessages()
	mailSvc := emailsvc.NewConsoleService(conf)

	userRepo := inmemdb.NewUserRepository(db)
	deps := &testDeps{
		conf:       conf,
		db:         db,
		userRepo:   userRepo,
		userSvc:    user.NewService(userRepo, mailSvc, conf),
		subjectSvc: subject.NewService(inmemdb.NewSubjectRepository(db)),
		validate:   validate,
		translator: translator,
	}

	srv := NewServer(ServerDeps{
		Conf:           conf,
		Logger:         logsvc.NewStdLogger(log.New(os.Stdout, "TEST : ", log.LstdFlags)),
		UserSvc:        deps.userSvc,
		SubjectSvc:     deps.subjectSvc,
		DashboardSvc:   dashboard.NewService(inmemdb.NewStatsRepository(db)),
		Validate:       validate,
		Translator:     translator,
		DisableReqLogs: true,
	})
	return srv, deps
}

func newAuthRequest(method, path, token string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	var body bytes.Buffer
	if len(data) > 0 {
		body.Write(data[0])
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	return req, rec
}

func newRequest(method, path string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	return newAuthRequest(method, path, "", data...)
}

func createUser(
	t *testing.T,
	repo user.Repository,
	name, uname, email, pwd, tier string,
	roles []string,
	isActive bool,
) user.User {
	now := time.Now().UTC()
	usr := user.User{
		ID:        uname + "-id",
		Name:      name,
		Username:  uname,
		Email:     email,
		Tier:      tier,
		IsActive:  &isActive,
		Roles:     roles,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if pwd != "" {
		if err := usr.SetPassword(pwd); err != nil {
			t.Fatalf("createUser() failed: %v", err)
		}
	}
	usr, err := repo.CreateUser(usr)
	if err != nil {
		t.Fatalf("createUser() failed: %v", err)
	}
	return usr
}

func createSubject(t *testing.T, svc subject.Service, name, code string) subject.Subject {
	sub, err := svc.Create(subject.NewSubject{Name: name, Code: code})
	if err != nil {
		t.Fatalf("createSubject() failed: %v", err)
	}
	return sub
}

func getToken(t *testing.T, usr user.User) string {
	claims := GetUserClaims(usr)
	token, err := GenerateToken(claims)
	if err != nil {
		t.Fatalf("getToken() failed: %v", err)
	}
	return token
}

func marchallObj(t *testing.T, obj interface{}) []byte {
	data, err := json.Marshal(obj)
	if err != nil {
		t.Fatalf("marchallObj() failed: %v", err)
	}
	return data
}

func jsonBytesEqual(t *testing.T, b1, b2 []byte) (bool, error) {
	var j1, j2 interface{}
	if err := json.Unmarshal(b1, &j1); err != nil {
		return false, err
	}
	if err := json.Unmarshal(b2, &j2); err != nil {
		return false, err
	}
	if reflect.DeepEqual(j1, j2) {
		return true, nil
	}
	return assert.ElementsMatch(t, j1, j2), nil
}

func checkCodeAndData(t *testing.T, tt httpTest, rec *httptest.ResponseRecorder) {
	if rec.Code != tt.wantCode {
		t.Errorf("failed! code = %v; wantCode %v", rec.Code, tt.wantCode)
	}
	ok, err := jsonBytesEqual(t, rec.Body.Bytes(), tt.wantData)
	if err != nil {
		t.Errorf("jsonBytesEqual() failed to compare; err %v", err)
	}
	if !ok {
		t.Errorf("failed! data = %v; wantData %v", rec.Body.String(), string(tt.wantData))
	}
}
