package user

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/fertilia/clinic/internal/platform/auth"
)

func TestLoginHandler(t *testing.T) {
	svc := NewService(newMockRepo(), testJWTConfig())
	h := NewHandler(svc)
	e := echo.New()

	if _, err := svc.Register(context.Background(), validRegister()); err != nil {
		t.Fatalf("Register() error: %v", err)
	}

	body := `{"username":"nurse.mai","password":"correct-horse"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Login(c); err != nil {
		t.Fatalf("Login handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"token"`) {
		t.Errorf("response missing token: %s", rec.Body.String())
	}
	if strings.Contains(rec.Body.String(), "password_hash") {
		t.Error("response leaks password hash")
	}
}

func TestLoginHandlerBadCredentials(t *testing.T) {
	svc := NewService(newMockRepo(), testJWTConfig())
	h := NewHandler(svc)
	e := echo.New()

	body := `{"username":"ghost","password":"whatever-pass"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := h.Login(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %v", err)
	}
}

func TestMeHandler(t *testing.T) {
	svc := NewService(newMockRepo(), testJWTConfig())
	h := NewHandler(svc)
	e := echo.New()

	u, err := svc.Register(context.Background(), validRegister())
	if err != nil {
		t.Fatalf("Register() error: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/users/me", nil)
	ctx := context.WithValue(req.Context(), auth.UserIDKey, u.ID.String())
	req = req.WithContext(ctx)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Me(c); err != nil {
		t.Fatalf("Me handler error: %v", err)
	}
	if !strings.Contains(rec.Body.String(), "nurse.mai") {
		t.Errorf("response missing username: %s", rec.Body.String())
	}
}
