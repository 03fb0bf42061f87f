package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"

	"github.com/iliyamo/gate-pass-service/internal/config"
	"github.com/iliyamo/gate-pass-service/internal/middleware"
	"github.com/iliyamo/gate-pass-service/internal/model"
	"github.com/iliyamo/gate-pass-service/internal/utils"
)

func testConfig() config.Config {
	return config.Config{JWTSecret: "test-secret", TokenTTLHours: 24, BcryptCost: bcrypt.MinCost}
}

// jsonCtx builds an echo context carrying a JSON body and optionally an
// authenticated actor (account id 1 with the given role).
func jsonCtx(t *testing.T, method, target, body, actorRole string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if actorRole != "" {
		c.Set(middleware.CtxAccountID, uint64(1))
		c.Set(middleware.CtxRole, actorRole)
	}
	return c, rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var m map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &m); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
	return m
}

func seedAccount(t *testing.T, f *fakeAccounts, mobile, password, role string) {
	t.Helper()
	hash, err := utils.HashPassword(password, bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if _, err := f.Create(nil, model.Account{
		Name: "Test User", Mobile: mobile, PasswordHash: hash, Role: role,
		Designation: "Tester", Address: "Somewhere",
	}); err != nil {
		t.Fatalf("seed account: %v", err)
	}
}

func TestLoginSuccess(t *testing.T) {
	accounts := &fakeAccounts{}
	seedAccount(t, accounts, "9900112233", "pw123", "admin")
	h := NewAuthHandler(testConfig(), accounts)

	c, rec := jsonCtx(t, http.MethodPost, "/v1/auth/login",
		`{"mobile":"9900112233","password":"pw123","role":"admin"}`, "")
	if err := h.Login(c); err != nil {
		t.Fatalf("Login: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body %s", rec.Code, rec.Body.String())
	}
	body := decodeBody(t, rec)
	token, _ := body["token"].(string)
	if token == "" {
		t.Fatal("expected a token in the response")
	}
	claims, err := utils.ParseAccessToken("test-secret", token)
	if err != nil {
		t.Fatalf("issued token does not verify: %v", err)
	}
	if claims.Role != "admin" {
		t.Errorf("token role = %q, want admin", claims.Role)
	}
	if user, ok := body["user"].(map[string]any); !ok || user["mobile"] != "9900112233" {
		t.Errorf("unexpected user summary: %v", body["user"])
	}
	if strings.Contains(rec.Body.String(), "password") {
		t.Error("response must not leak password material")
	}
}

// A wrong password and a role mismatch must be indistinguishable to the
// caller: same status, same error kind.
func TestLoginFailuresAreUniform(t *testing.T) {
	accounts := &fakeAccounts{}
	seedAccount(t, accounts, "9900112233", "pw123", "guard")
	h := NewAuthHandler(testConfig(), accounts)

	bodies := map[string]string{
		"unknown mobile": `{"mobile":"0000000000","password":"pw123","role":"guard"}`,
		"wrong password": `{"mobile":"9900112233","password":"nope","role":"guard"}`,
		"role mismatch":  `{"mobile":"9900112233","password":"pw123","role":"admin"}`,
		"unknown role":   `{"mobile":"9900112233","password":"pw123","role":"owner"}`,
	}
	for name, body := range bodies {
		c, rec := jsonCtx(t, http.MethodPost, "/v1/auth/login", body, "")
		if err := h.Login(c); err != nil {
			t.Fatalf("%s: Login returned error: %v", name, err)
		}
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("%s: status = %d, want 401", name, rec.Code)
		}
		if got := decodeBody(t, rec)["error"]; got != "INVALID_CREDENTIALS" {
			t.Errorf("%s: error kind = %v, want INVALID_CREDENTIALS", name, got)
		}
	}
}

func TestLoginMissingFields(t *testing.T) {
	h := NewAuthHandler(testConfig(), &fakeAccounts{})
	c, rec := jsonCtx(t, http.MethodPost, "/v1/auth/login", `{"mobile":"9900112233"}`, "")
	if err := h.Login(c); err != nil {
		t.Fatalf("Login: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestRegisterAdminActorForcedToGuard(t *testing.T) {
	accounts := &fakeAccounts{}
	h := NewAuthHandler(testConfig(), accounts)

	c, rec := jsonCtx(t, http.MethodPost, "/v1/auth/register",
		`{"name":"New Guy","mobile":"7700112233","password":"pw","role":"admin","address":"Flat 1","designation":"Gate"}`,
		"admin")
	if err := h.Register(c); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201, body %s", rec.Code, rec.Body.String())
	}
	if got := decodeBody(t, rec)["role"]; got != "guard" {
		t.Errorf("role = %v, want guard (admins may not mint admins)", got)
	}
}

func TestRegisterSuperadminActorRoleHonored(t *testing.T) {
	accounts := &fakeAccounts{}
	h := NewAuthHandler(testConfig(), accounts)

	c, rec := jsonCtx(t, http.MethodPost, "/v1/auth/register",
		`{"name":"New Admin","mobile":"7700112234","password":"pw","role":"admin","address":"Flat 2","designation":"Office"}`,
		"superadmin")
	if err := h.Register(c); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201, body %s", rec.Code, rec.Body.String())
	}
	if got := decodeBody(t, rec)["role"]; got != "admin" {
		t.Errorf("role = %v, want admin", got)
	}
}

func TestRegisterSuperadminRoleRejected(t *testing.T) {
	h := NewAuthHandler(testConfig(), &fakeAccounts{})

	c, rec := jsonCtx(t, http.MethodPost, "/v1/auth/register",
		`{"name":"Evil","mobile":"7700112235","password":"pw","role":"superadmin","address":"X","designation":"Y"}`,
		"superadmin")
	if err := h.Register(c); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if got := decodeBody(t, rec)["error"]; got != "INVALID_ROLE" {
		t.Errorf("error kind = %v, want INVALID_ROLE", got)
	}
}

func TestRegisterMissingFieldsListed(t *testing.T) {
	h := NewAuthHandler(testConfig(), &fakeAccounts{})

	c, rec := jsonCtx(t, http.MethodPost, "/v1/auth/register",
		`{"name":"Only Name"}`, "superadmin")
	if err := h.Register(c); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	body := decodeBody(t, rec)
	if body["error"] != "MISSING_FIELD" {
		t.Fatalf("error kind = %v, want MISSING_FIELD", body["error"])
	}
	fields, _ := body["fields"].([]any)
	want := map[string]bool{"mobile": true, "password": true, "address": true, "designation": true}
	if len(fields) != len(want) {
		t.Fatalf("fields = %v, want %v", fields, want)
	}
	for _, f := range fields {
		if !want[f.(string)] {
			t.Errorf("unexpected missing field %v", f)
		}
	}
}

func TestRegisterDuplicateMobile(t *testing.T) {
	accounts := &fakeAccounts{}
	seedAccount(t, accounts, "7700112236", "pw", "guard")
	h := NewAuthHandler(testConfig(), accounts)

	c, rec := jsonCtx(t, http.MethodPost, "/v1/auth/register",
		`{"name":"Dup","mobile":"7700112236","password":"pw","address":"X","designation":"Y"}`,
		"superadmin")
	if err := h.Register(c); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if rec.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409", rec.Code)
	}
	if got := decodeBody(t, rec)["error"]; got != "DUPLICATE_MOBILE" {
		t.Errorf("error kind = %v, want DUPLICATE_MOBILE", got)
	}
}

func TestRegisterNeverStoresPlaintext(t *testing.T) {
	accounts := &fakeAccounts{}
	h := NewAuthHandler(testConfig(), accounts)

	c, _ := jsonCtx(t, http.MethodPost, "/v1/auth/register",
		`{"name":"G","mobile":"7700112237","password":"plaintext-pw","address":"X","designation":"Y"}`,
		"admin")
	if err := h.Register(c); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if len(accounts.accounts) != 1 {
		t.Fatalf("expected one stored account, got %d", len(accounts.accounts))
	}
	stored := accounts.accounts[0]
	if stored.PasswordHash == "plaintext-pw" || stored.PasswordHash == "" {
		t.Error("password must be stored hashed")
	}
	if !utils.VerifyPassword(stored.PasswordHash, "plaintext-pw") {
		t.Error("stored hash must verify against the original password")
	}
}
