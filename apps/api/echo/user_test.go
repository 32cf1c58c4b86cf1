package echoapi

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/Fukuzeya/zim-student-companion-sub000/core/user"
	emailsvc "github.com/Fukuzeya/zim-student-companion-sub000/services/email"
)

func Test_userApi_login(t *testing.T) {
	srv, deps := newTestServer(t)

	createUser(t, deps.userRepo, "Tari", "tari", "tari@test.zw", "LeTari#1998", user.TierFree, []string{user.RoleStudent}, true)
	createUser(t, deps.userRepo, "Gone", "gone", "gone@test.zw", "LeGone#1998", user.TierFree, nil, false)

	marshallErr := func(errs map[string]string) []byte { return marchallObj(t, errs) }

	tests := []httpTest{
		{
			name: "empty body", body: []byte("{}"), wantCode: http.StatusBadRequest,
			wantData: marshallErr(map[string]string{"username": "this field is required", "password": "this field is required"}),
		},
		{
			name: "unknown user", body: marchallObj(t, LoginRequest{Username: "who", Password: "dis"}),
			wantCode: http.StatusBadRequest, wantData: marchallObj(t, httpErr{Error: "authentication failed"}),
		},
		{
			name: "wrong password", body: marchallObj(t, LoginRequest{Username: "tari", Password: "nope"}),
			wantCode: http.StatusBadRequest, wantData: marchallObj(t, httpErr{Error: "authentication failed"}),
		},
		{
			name: "deactivated account", body: marchallObj(t, LoginRequest{Username: "gone", Password: "LeGone#1998"}),
			wantCode: http.StatusForbidden, wantData: marchallObj(t, httpErr{Error: "account deactivated"}),
		},
		{
			name: "login by username", body: marchallObj(t, LoginRequest{Username: "tari", Password: "LeTari#1998"}),
			wantCode: http.StatusOK,
		},
		{
			name: "login by email", body: marchallObj(t, LoginRequest{Username: "tari@test.zw", Password: "LeTari#1998"}),
			wantCode: http.StatusOK,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newRequest(http.MethodPost, "/v1/users/login", tt.body)
			srv.ServeHTTP(rec, req)

			if tt.wantData == nil {
				if rec.Code != tt.wantCode {
					t.Fatalf("login code = %v; wantCode %v; body %s", rec.Code, tt.wantCode, rec.Body.String())
				}
				var res LoginResponse
				if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil || res.Token == "" {
					t.Errorf("login did not return a token; body %s", rec.Body.String())
				}
				return
			}
			checkCodeAndData(t, tt, rec)
		})
	}
}

func Test_userApi_query(t *testing.T) {
	srv, deps := newTestServer(t)

	admin := createUser(t, deps.userRepo, "Admin", "admin", "admin@test.zw", "", user.TierFree, []string{user.RoleAdmin}, true)
	teacher := createUser(t, deps.userRepo, "Teacher", "teacher", "teacher@test.zw", "", user.TierStandard, []string{user.RoleTeacher}, true)
	student := createUser(t, deps.userRepo, "Hero", "hero", "hero@test.zw", "", user.TierPremium, []string{user.RoleStudent}, true)
	naughty := createUser(t, deps.userRepo, "N Dog", "ndog", "ndog@test.zw", "", user.TierFree, []string{user.RoleStudent}, false)

	adminToken := getToken(t, admin)
	studentToken := getToken(t, student)

	path := func(params url.Values) string { return "/v1/users?" + params.Encode() }
	marchallUsers := func(users ...user.User) []byte { return marchallObj(t, users) }
	empty := marchallUsers()

	tests := []httpTest{
		{name: "auth required", token: "", wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken)},
		{name: "admin required", token: studentToken, wantCode: http.StatusForbidden, wantData: marchallObj(t, httpErr{Error: "permission denied"})},
		{name: "get all", token: adminToken, wantCode: http.StatusOK, wantData: marchallUsers(admin, teacher, student, naughty)},
		{
			name: "search (unknown)", token: adminToken, path: path(url.Values{"search": {"lol"}}),
			wantCode: http.StatusOK, wantData: empty,
		},
		{
			name: "search=her", token: adminToken, path: path(url.Values{"search": {"her"}}),
			wantCode: http.StatusOK, wantData: marchallUsers(student),
		},
		{
			name: "role=student:", token: adminToken, path: path(url.Values{"role": {user.RoleStudent}}),
			wantCode: http.StatusOK, wantData: marchallUsers(student, naughty),
		},
		{
			name: "tier=standard", token: adminToken, path: path(url.Values{"tier": {user.TierStandard}}),
			wantCode: http.StatusOK, wantData: marchallUsers(teacher),
		},
		{
			name: "is_active=false", token: adminToken, path: path(url.Values{"is_active": {"false"}}),
			wantCode: http.StatusOK, wantData: marchallUsers(naughty),
		},
		{
			name: "combo (found)", token: adminToken, path: path(url.Values{"role": {user.RoleStudent}, "is_active": {"true"}}),
			wantCode: http.StatusOK, wantData: marchallUsers(student),
		},
	}
	for _, tt := range tests {
		if tt.path == "" {
			tt.path = "/v1/users"
		}
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(http.MethodGet, tt.path, tt.token)
			srv.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}

func Test_userApi_retrieve(t *testing.T) {
	srv, deps := newTestServer(t)

	admin := createUser(t, deps.userRepo, "Admin", "admin", "admin@test.zw", "", user.TierFree, []string{user.RoleAdmin}, true)
	student := createUser(t, deps.userRepo, "Hero", "hero", "hero@test.zw", "", user.TierPremium, []string{user.RoleStudent}, true)

	tests := []httpTest{
		{
			name: "own profile", path: "/v1/users/" + student.ID, token: getToken(t, student),
			wantCode: http.StatusOK, wantData: marchallObj(t, student),
		},
		{
			name: "admin reads any", path: "/v1/users/" + student.ID, token: getToken(t, admin),
			wantCode: http.StatusOK, wantData: marchallObj(t, student),
		},
		{
			name: "student cannot read others", path: "/v1/users/" + admin.ID, token: getToken(t, student),
			wantCode: http.StatusNotFound, wantData: marchallObj(t, httpErr{Error: "not found"}),
		},
		{
			name: "unknown id", path: "/v1/users/nope", token: getToken(t, admin),
			wantCode: http.StatusNotFound, wantData: marchallObj(t, httpErr{Error: "not found"}),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(http.MethodGet, tt.path, tt.token)
			srv.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}

func Test_userApi_destroy(t *testing.T) {
	srv, deps := newTestServer(t)

	admin := createUser(t, deps.userRepo, "Admin", "admin", "admin@test.zw", "", user.TierFree, []string{user.RoleAdmin}, true)
	student := createUser(t, deps.userRepo, "Hero", "hero", "hero@test.zw", "", user.TierFree, []string{user.RoleStudent}, true)
	adminToken := getToken(t, admin)

	// no suicide
	req, rec := newAuthRequest(http.MethodDelete, "/v1/users/"+admin.ID, adminToken)
	srv.ServeHTTP(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Errorf("self destroy code = %v; wantCode %v", rec.Code, http.StatusForbidden)
	}

	req, rec = newAuthRequest(http.MethodDelete, "/v1/users/"+student.ID, adminToken)
	srv.ServeHTTP(rec, req)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("destroy code = %v; wantCode %v; body %s", rec.Code, http.StatusNoContent, rec.Body.String())
	}
	if _, err := deps.userSvc.GetByID(student.ID); err != user.ErrNotFound {
		t.Errorf("expected user to be gone; err %v", err)
	}
}

func Test_userApi_passwordReset(t *testing.T) {
	srv, deps := newTestServer(t)

	usr := createUser(t, deps.userRepo, "Tari", "tari", "tari@test.zw", "LeTari#1998", user.TierFree, []string{user.RoleStudent}, true)

	req, rec := newRequest(http.MethodPost, "/v1/users/password-reset", marchallObj(t, PasswordResetRequest{Email: "tari@test.zw"}))
	srv.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("password-reset code = %v; body %s", rec.Code, rec.Body.String())
	}
	if len(emailsvc.SentMessages) != 1 {
		t.Fatalf("expected 1 reset email; got %d", len(emailsvc.SentMessages))
	}
	if body := emailsvc.SentMessages[0].Body; !strings.Contains(body, "password-reset?uid=") {
		t.Errorf("reset email has no reset link; body %q", body)
	}

	// unknown email gets the same neutral answer and no mail
	req, rec = newRequest(http.MethodPost, "/v1/users/password-reset", marchallObj(t, PasswordResetRequest{Email: "who@test.zw"}))
	srv.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("password-reset (unknown) code = %v", rec.Code)
	}
	if len(emailsvc.SentMessages) != 1 {
		t.Errorf("no email should go out for unknown addresses; got %d", len(emailsvc.SentMessages))
	}

	// confirm with a valid token
	body := marchallObj(t, user.ResetUserPassword{
		UID:             user.EncodeUID(usr),
		Token:           user.MakeToken(usr),
		Password:        "NewSecret#42",
		PasswordConfirm: "NewSecret#42",
	})
	req, rec = newRequest(http.MethodPost, "/v1/users/password-reset-confirm", body)
	srv.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("password-reset-confirm code = %v; body %s", rec.Code, rec.Body.String())
	}

	usr, err := deps.userSvc.GetByID(usr.ID)
	if err != nil {
		t.Fatalf("reloading user failed: %v", err)
	}
	if err = usr.CheckPassword("NewSecret#42"); err != nil {
		t.Errorf("new password not set: %v", err)
	}
}
