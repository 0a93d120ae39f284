package assessment

import (
	"bytes"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/clinic/clinic/internal/platform/aireport"
	"github.com/clinic/clinic/internal/platform/auth"
	"github.com/clinic/clinic/internal/scoring"
	"github.com/clinic/clinic/pkg/pagination"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	g := api.Group("", auth.RequireRole(auth.RolePsychologist, auth.RoleAssistant))
	g.GET("/instruments", h.ListInstruments)
	g.GET("/instruments/:code", h.GetInstrument)
	g.POST("/assessments", h.Assign)
	g.GET("/assessments/:id", h.GetAssignment)
	g.GET("/assessments/export.csv", h.ExportCSV)
	g.GET("/clients/:clientId/assessments", h.ListAssignments)
	g.GET("/results/:id", h.GetResult)
	g.GET("/clients/:clientId/results", h.ListResults)
	g.POST("/results/:id/ai-analysis", h.GenerateAIAnalysis)

	// Clients submit their own answers through the same endpoint.
	api.POST("/assessments/:id/submit", h.Submit,
		auth.RequireRole(auth.RolePsychologist, auth.RoleAssistant, auth.RoleClient))
}

func (h *Handler) ListInstruments(c echo.Context) error {
	type summary struct {
		Code        scoring.InstrumentCode `json:"code"`
		Name        string                 `json:"name"`
		ShortCode   string                 `json:"short_code"`
		Description string                 `json:"description"`
		Questions   int                    `json:"question_count"`
	}
	defs := h.svc.Instruments()
	out := make([]summary, 0, len(defs))
	for _, def := range defs {
		out = append(out, summary{
			Code:        def.Code,
			Name:        def.Name,
			ShortCode:   def.ShortCode,
			Description: def.Description,
			Questions:   len(def.Questions),
		})
	}
	return c.JSON(http.StatusOK, out)
}

func (h *Handler) GetInstrument(c echo.Context) error {
	def, err := h.svc.Instrument(scoring.InstrumentCode(c.Param("code")))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	}
	return c.JSON(http.StatusOK, def)
}

func (h *Handler) Assign(c echo.Context) error {
	var body struct {
		ClientID   uuid.UUID  `json:"client_id"`
		Instrument string     `json:"instrument"`
		DueAt      *time.Time `json:"due_at,omitempty"`
	}
	if err := c.Bind(&body); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	assignedBy, _ := uuid.Parse(auth.UserIDFromContext(c.Request().Context()))
	a, err := h.svc.Assign(c.Request().Context(), body.ClientID, assignedBy, scoring.InstrumentCode(body.Instrument), body.DueAt)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, a)
}

func (h *Handler) GetAssignment(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	a, err := h.svc.GetAssignment(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "assignment not found")
	}
	return c.JSON(http.StatusOK, a)
}

func (h *Handler) ListAssignments(c echo.Context) error {
	clientID, err := uuid.Parse(c.Param("clientId"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid client id")
	}
	pg := pagination.FromContext(c)
	assigns, total, err := h.svc.ListAssignments(c.Request().Context(), clientID, pg.Limit, pg.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(assigns, total, pg.Limit, pg.Offset))
}

func (h *Handler) Submit(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var sub Submission
	if err := c.Bind(&sub); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	res, err := h.svc.Submit(c.Request().Context(), id, &sub)
	if err != nil {
		if errors.Is(err, ErrNotPending) {
			return echo.NewHTTPError(http.StatusConflict, err.Error())
		}
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, res)
}

func (h *Handler) GetResult(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	res, err := h.svc.GetResult(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "result not found")
	}
	return c.JSON(http.StatusOK, res)
}

func (h *Handler) ListResults(c echo.Context) error {
	clientID, err := uuid.Parse(c.Param("clientId"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid client id")
	}
	pg := pagination.FromContext(c)
	results, total, err := h.svc.ListResults(c.Request().Context(), clientID, pg.Limit, pg.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(results, total, pg.Limit, pg.Offset))
}

func (h *Handler) ExportCSV(c echo.Context) error {
	var buf bytes.Buffer
	if err := h.svc.ExportCSV(c.Request().Context(), &buf); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="assessment-results.csv"`)
	return c.Blob(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

func (h *Handler) GenerateAIAnalysis(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var body struct {
		Notes string `json:"notes,omitempty"`
	}
	if err := c.Bind(&body); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	res, err := h.svc.GenerateAIAnalysis(c.Request().Context(), id, body.Notes)
	if err != nil {
		if errors.Is(err, aireport.ErrDisabled) {
			return echo.NewHTTPError(http.StatusServiceUnavailable, err.Error())
		}
		return echo.NewHTTPError(http.StatusBadGateway, err.Error())
	}
	return c.JSON(http.StatusOK, res)
}
