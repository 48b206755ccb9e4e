package doctor

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/fertilia/clinic/internal/platform/auth"
)

func adminContext(e *echo.Echo, req *http.Request, rec *httptest.ResponseRecorder) echo.Context {
	ctx := context.WithValue(req.Context(), auth.UserRolesKey, []string{auth.RoleAdmin})
	req = req.WithContext(ctx)
	return e.NewContext(req, rec)
}

func TestCreateDoctorHandler(t *testing.T) {
	svc := NewService(newMockRepo())
	h := NewHandler(svc)
	e := echo.New()

	body := `{"full_name":"Dr. Minh Pham","phone_number":"+84 90 123 4567","specialization":"Reproductive Endocrinology"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/doctors", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := adminContext(e, req, rec)

	if err := h.Create(c); err != nil {
		t.Fatalf("Create handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Errorf("status = %d, want 201", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Minh Pham") {
		t.Errorf("response missing doctor name: %s", rec.Body.String())
	}
}

func TestCreateDoctorHandlerRejectsInvalid(t *testing.T) {
	svc := NewService(newMockRepo())
	h := NewHandler(svc)
	e := echo.New()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/doctors", strings.NewReader(`{"full_name":"Dr. X"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := adminContext(e, req, rec)

	err := h.Create(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %v", err)
	}
}

func TestGetDoctorHandlerNotFound(t *testing.T) {
	svc := NewService(newMockRepo())
	h := NewHandler(svc)
	e := echo.New()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := adminContext(e, req, rec)
	c.SetParamNames("id")
	c.SetParamValues(uuid.NewString())

	err := h.Get(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %v", err)
	}
}
