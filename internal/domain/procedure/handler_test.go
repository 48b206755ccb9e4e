package procedure

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/fertilia/clinic/internal/platform/auth"
)

func doctorContext(e *echo.Echo, req *http.Request, rec *httptest.ResponseRecorder) echo.Context {
	ctx := context.WithValue(req.Context(), auth.UserRolesKey, []string{auth.RoleDoctor})
	req = req.WithContext(ctx)
	return e.NewContext(req, rec)
}

func TestCreateProcedureHandler(t *testing.T) {
	svc := NewService(newMockRepo())
	h := NewHandler(svc)
	e := echo.New()

	body := fmt.Sprintf(`{"treatment_stage_id":%q,"procedure_name":"Egg retrieval",
		"scheduled_date":"2026-05-20T00:00:00Z","cost":1200}`, uuid.NewString())
	req := httptest.NewRequest(http.MethodPost, "/api/v1/procedures", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := doctorContext(e, req, rec)

	if err := h.Create(c); err != nil {
		t.Fatalf("Create handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Errorf("status = %d, want 201", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"status":"scheduled"`) {
		t.Errorf("expected default scheduled status, got %s", rec.Body.String())
	}
}

func TestCompleteProcedureHandler(t *testing.T) {
	svc := NewService(newMockRepo())
	h := NewHandler(svc)
	e := echo.New()

	p := validProcedure()
	if err := svc.Create(context.Background(), p); err != nil {
		t.Fatalf("Create() error: %v", err)
	}

	body := `{"actual_date":"2026-05-21T00:00:00Z","results":"12 oocytes retrieved"}`
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := doctorContext(e, req, rec)
	c.SetParamNames("id")
	c.SetParamValues(p.ID.String())

	if err := h.Complete(c); err != nil {
		t.Fatalf("Complete handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"status":"completed"`) {
		t.Errorf("expected completed status, got %s", rec.Body.String())
	}
}

func TestCompleteProcedureHandlerConflict(t *testing.T) {
	svc := NewService(newMockRepo())
	h := NewHandler(svc)
	e := echo.New()

	p := validProcedure()
	if err := svc.Create(context.Background(), p); err != nil {
		t.Fatalf("Create() error: %v", err)
	}
	if _, err := svc.Cancel(context.Background(), p.ID); err != nil {
		t.Fatalf("Cancel() error: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := doctorContext(e, req, rec)
	c.SetParamNames("id")
	c.SetParamValues(p.ID.String())

	err := h.Complete(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %v", err)
	}
}

func TestGetProcedureHandlerNotFound(t *testing.T) {
	svc := NewService(newMockRepo())
	h := NewHandler(svc)
	e := echo.New()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := doctorContext(e, req, rec)
	c.SetParamNames("id")
	c.SetParamValues(uuid.NewString())

	err := h.Get(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %v", err)
	}
}

func TestListProceduresByStageHandler(t *testing.T) {
	svc := NewService(newMockRepo())
	h := NewHandler(svc)
	e := echo.New()

	p := validProcedure()
	if err := svc.Create(context.Background(), p); err != nil {
		t.Fatalf("Create() error: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := doctorContext(e, req, rec)
	c.SetParamNames("id")
	c.SetParamValues(p.TreatmentStageID.String())

	if err := h.ListByStage(c); err != nil {
		t.Fatalf("ListByStage handler error: %v", err)
	}
	if !strings.Contains(rec.Body.String(), `"procedure_name":"Egg retrieval"`) {
		t.Errorf("expected stage procedure in response, got %s", rec.Body.String())
	}
}
