package appointment

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/fertilia/clinic/internal/platform/auth"
)

func staffContext(e *echo.Echo, req *http.Request, rec *httptest.ResponseRecorder, roles ...string) echo.Context {
	if len(roles) == 0 {
		roles = []string{auth.RoleDoctor}
	}
	ctx := context.WithValue(req.Context(), auth.UserRolesKey, roles)
	req = req.WithContext(ctx)
	return e.NewContext(req, rec)
}

func TestCreateAppointmentHandler(t *testing.T) {
	svc := NewService(newMockRepo())
	h := NewHandler(svc)
	e := echo.New()

	date := time.Now().AddDate(0, 0, 2).Format(time.RFC3339)
	body := fmt.Sprintf(`{"patient_id":%q,"doctor_id":%q,"appointment_date":%q,
		"appointment_time":"09:30","duration":30,"appointment_type":"Consultation"}`,
		uuid.NewString(), uuid.NewString(), date)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/appointments", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := staffContext(e, req, rec)

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

func TestRescheduleHandler(t *testing.T) {
	svc := NewService(newMockRepo())
	h := NewHandler(svc)
	e := echo.New()

	a := validAppointment()
	if err := svc.Create(context.Background(), a); err != nil {
		t.Fatalf("Create() error: %v", err)
	}

	date := time.Now().AddDate(0, 0, 9).Format(time.RFC3339)
	body := fmt.Sprintf(`{"appointment_date":%q,"appointment_time":"15:45"}`, date)
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := staffContext(e, req, rec)
	c.SetParamNames("id")
	c.SetParamValues(a.ID.String())

	if err := h.Reschedule(c); err != nil {
		t.Fatalf("Reschedule handler error: %v", err)
	}
	if !strings.Contains(rec.Body.String(), `"status":"rescheduled"`) {
		t.Errorf("response missing rescheduled status: %s", rec.Body.String())
	}
}

func TestListAppointmentsHandlerBadDate(t *testing.T) {
	svc := NewService(newMockRepo())
	h := NewHandler(svc)
	e := echo.New()

	req := httptest.NewRequest(http.MethodGet, "/?date=tomorrow", nil)
	rec := httptest.NewRecorder()
	c := staffContext(e, req, rec)

	err := h.List(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %v", err)
	}
}
