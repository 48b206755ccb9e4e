package diagnosis

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/fertilia/clinic/internal/platform/auth"
	"github.com/fertilia/clinic/pkg/pagination"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	// Any clinic role can run the questionnaire and read results.
	grp := api.Group("", auth.RequireRole(auth.RoleAdmin, auth.RoleDoctor, auth.RoleStaff))
	grp.GET("/diagnosis/questions", h.Questions)
	grp.POST("/diagnosis", h.Submit)
	grp.GET("/diagnosis/results/:id", h.Result)
	grp.GET("/diagnosis/patients/:patientId/results", h.PatientHistory)
}

func (h *Handler) Questions(c echo.Context) error {
	gender := Gender(c.QueryParam("gender"))
	questions, err := h.svc.ApplicableQuestions(c.Request().Context(), gender)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, questions)
}

func (h *Handler) Submit(c echo.Context) error {
	var req SubmitRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	result, err := h.svc.ProcessDiagnosis(c.Request().Context(), &req)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, result)
}

// httpError distinguishes bad submissions from catalog/storage failures.
func httpError(err error) error {
	if errors.Is(err, ErrInvalidInput) {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
}

func (h *Handler) Result(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	result, err := h.svc.Result(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "diagnosis result not found")
	}
	return c.JSON(http.StatusOK, result)
}

func (h *Handler) PatientHistory(c echo.Context) error {
	patientID, err := uuid.Parse(c.Param("patientId"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid patient id")
	}
	pg := pagination.FromContext(c)
	items, total, err := h.svc.PatientHistory(c.Request().Context(), patientID, pg.Limit, pg.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg))
}
