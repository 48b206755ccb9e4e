package dashboard

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/fertilia/clinic/internal/platform/auth"
)

func TestStatsHandler(t *testing.T) {
	repo := &mockRepo{stats: sampleStats()}
	svc := NewService(repo, nil, 0)
	h := NewHandler(svc)
	e := echo.New()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/dashboard/stats", nil)
	ctx := context.WithValue(req.Context(), auth.UserRolesKey, []string{auth.RoleStaff})
	req = req.WithContext(ctx)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Stats(c); err != nil {
		t.Fatalf("Stats handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, `"total_patients":42`) {
		t.Errorf("response missing totals: %s", body)
	}
	if !strings.Contains(body, `"success_rate":40`) {
		t.Errorf("response missing success rate: %s", body)
	}
}
