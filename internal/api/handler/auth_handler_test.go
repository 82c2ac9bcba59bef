package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/talenthq/succession-portal/internal/core/domain"
)

type stubAuthService struct {
	signupFn func(ctx context.Context, username, password string) (*domain.User, error)
	loginFn  func(ctx context.Context, username, password string) (string, *domain.User, error)
}

func (s *stubAuthService) Signup(ctx context.Context, username, password string) (*domain.User, error) {
	return s.signupFn(ctx, username, password)
}

func (s *stubAuthService) Login(ctx context.Context, username, password string) (string, *domain.User, error) {
	return s.loginFn(ctx, username, password)
}

func employeeHandler(svc *stubAuthService, secure bool) *AuthHandler {
	return NewAuthHandler(domain.EmployeeRole("secret"), svc, 24*time.Hour, secure)
}

func postJSON(e *echo.Echo, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func sessionCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == "jwt" {
			return ck
		}
	}
	t.Fatalf("jwt cookie not set")
	return nil
}

func TestAuthHandler_Signup_Success(t *testing.T) {
	e := echo.New()
	stub := &stubAuthService{
		signupFn: func(ctx context.Context, username, password string) (*domain.User, error) {
			if username != "alice" || password != "secret1" {
				t.Fatalf("unexpected args: %s %s", username, password)
			}
			return &domain.User{ID: "id_1", Username: username}, nil
		},
	}
	h := employeeHandler(stub, false)

	c, rec := postJSON(e, "/api/employee/signup", `{"username":"alice","password":"secret1"}`)
	if err := h.Signup(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["message"] != "User created successfully" {
		t.Fatalf("unexpected message: %q", resp["message"])
	}
}

func TestAuthHandler_Signup_ValidationErrors(t *testing.T) {
	e := echo.New()
	stub := &stubAuthService{
		signupFn: func(ctx context.Context, username, password string) (*domain.User, error) {
			return nil, &domain.ValidationError{Violations: []string{
				"Username must be at least 3 chars long",
				"Password must be at least 6 chars long",
			}}
		},
	}
	h := employeeHandler(stub, false)

	c, rec := postJSON(e, "/api/employee/signup", `{"username":"al","password":"short"}`)
	_ = h.Signup(c)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	var resp struct {
		Errors []string `json:"errors"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(resp.Errors) != 2 {
		t.Fatalf("expected both violations reported, got %v", resp.Errors)
	}
}

func TestAuthHandler_Signup_Duplicate(t *testing.T) {
	e := echo.New()
	stub := &stubAuthService{
		signupFn: func(ctx context.Context, username, password string) (*domain.User, error) {
			return nil, domain.ErrUserExists
		},
	}
	h := employeeHandler(stub, false)

	c, rec := postJSON(e, "/api/employee/signup", `{"username":"alice","password":"anything6"}`)
	_ = h.Signup(c)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["message"] != "User already exists" {
		t.Fatalf("unexpected message: %q", resp["message"])
	}
}

func TestAuthHandler_Signup_AdminLabel(t *testing.T) {
	e := echo.New()
	stub := &stubAuthService{
		signupFn: func(ctx context.Context, username, password string) (*domain.User, error) {
			return &domain.User{ID: "id_1", Username: username}, nil
		},
	}
	h := NewAuthHandler(domain.AdminRole("secret"), stub, 24*time.Hour, false)

	c, rec := postJSON(e, "/api/admin/signup", `{"username":"hr","password":"secret1"}`)
	if err := h.Signup(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp map[string]string
	_ = json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp["message"] != "Admin created successfully" {
		t.Fatalf("unexpected message: %q", resp["message"])
	}
}

func TestAuthHandler_Login_SetsSessionCookie(t *testing.T) {
	e := echo.New()
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, username, password string) (string, *domain.User, error) {
			return "token123", &domain.User{ID: "id_1", Username: "alice"}, nil
		},
	}
	h := employeeHandler(stub, false)

	c, rec := postJSON(e, "/api/employee/login", `{"username":"alice","password":"secret1"}`)
	if err := h.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["message"] != "Login successful" || resp["token"] != "token123" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
	user, ok := resp["user"].(map[string]any)
	if !ok || user["username"] != "alice" {
		t.Fatalf("unexpected user payload: %+v", resp["user"])
	}
	if _, leaked := user["password_hash"]; leaked {
		t.Fatalf("password hash leaked in response")
	}

	ck := sessionCookie(t, rec)
	if ck.Value != "token123" {
		t.Fatalf("unexpected cookie value: %q", ck.Value)
	}
	if !ck.HttpOnly {
		t.Fatalf("cookie not http-only")
	}
	if ck.SameSite != http.SameSiteStrictMode {
		t.Fatalf("cookie not same-site strict")
	}
	if ck.Secure {
		t.Fatalf("secure attribute set outside production")
	}
	ttl := time.Until(ck.Expires)
	if ttl < 23*time.Hour || ttl > 25*time.Hour {
		t.Fatalf("unexpected cookie expiry: %v", ck.Expires)
	}
}

func TestAuthHandler_Login_SecureCookieInProduction(t *testing.T) {
	e := echo.New()
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, username, password string) (string, *domain.User, error) {
			return "token123", &domain.User{ID: "id_1", Username: "alice"}, nil
		},
	}
	h := employeeHandler(stub, true)

	c, rec := postJSON(e, "/api/employee/login", `{"username":"alice","password":"secret1"}`)
	if err := h.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if ck := sessionCookie(t, rec); !ck.Secure {
		t.Fatalf("secure attribute missing in production")
	}
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	e := echo.New()
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, username, password string) (string, *domain.User, error) {
			return "", nil, domain.ErrInvalidCredentials
		},
	}
	h := employeeHandler(stub, false)

	c, rec := postJSON(e, "/api/employee/login", `{"username":"alice","password":"badpass"}`)
	_ = h.Login(c)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["error"] != "Invalid username or password" {
		t.Fatalf("unexpected error message: %q", resp["error"])
	}
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == "jwt" {
			t.Fatalf("cookie set on failed login")
		}
	}
}

func TestAuthHandler_Logout_NoSession(t *testing.T) {
	e := echo.New()
	h := employeeHandler(&stubAuthService{}, false)

	req := httptest.NewRequest(http.MethodGet, "/api/employee/logout", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Logout(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	var resp map[string]string
	_ = json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp["message"] != "You are not logged in" {
		t.Fatalf("unexpected message: %q", resp["message"])
	}
}

func TestAuthHandler_Logout_ClearsCookie(t *testing.T) {
	e := echo.New()
	h := employeeHandler(&stubAuthService{}, false)

	req := httptest.NewRequest(http.MethodGet, "/api/employee/logout", nil)
	req.AddCookie(&http.Cookie{Name: "jwt", Value: "token123"})
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Logout(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	ck := sessionCookie(t, rec)
	if ck.Value != "" || ck.MaxAge >= 0 {
		t.Fatalf("cookie not cleared: value=%q maxage=%d", ck.Value, ck.MaxAge)
	}
}
