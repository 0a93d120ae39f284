package webhook

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/clinic/clinic/pkg/pagination"
)

// Handler exposes endpoint administration over HTTP. Routes are expected
// to be mounted behind admin-only middleware.
type Handler struct {
	mgr *Manager
}

// NewHandler creates a Handler for the given Manager.
func NewHandler(mgr *Manager) *Handler {
	return &Handler{mgr: mgr}
}

// RegisterRoutes mounts the webhook admin API on the given group.
func (h *Handler) RegisterRoutes(g *echo.Group) {
	wh := g.Group("/webhooks")
	wh.POST("", h.Register)
	wh.GET("", h.ListEndpoints)
	wh.GET("/:id", h.GetEndpoint)
	wh.DELETE("/:id", h.DeleteEndpoint)
	wh.POST("/:id/test", h.TestEndpoint)
	wh.POST("/:id/pause", h.PauseEndpoint)
	wh.POST("/:id/resume", h.ResumeEndpoint)
	wh.GET("/:id/deliveries", h.ListDeliveries)
	wh.POST("/deliveries/:id/retry", h.RetryDelivery)
}

type registerRequest struct {
	URL    string   `json:"url"`
	Secret string   `json:"secret"`
	Label  string   `json:"label"`
	Events []string `json:"events"`
}

func (h *Handler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	ep, err := h.mgr.Register(c.Request().Context(), req.URL, req.Secret, req.Label, req.Events)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, ep)
}

func (h *Handler) ListEndpoints(c echo.Context) error {
	p := pagination.FromContext(c)
	endpoints, total, err := h.mgr.ListEndpoints(c.Request().Context(), p.Limit, p.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if endpoints == nil {
		endpoints = []*Endpoint{}
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(endpoints, total, p.Limit, p.Offset))
}

func (h *Handler) GetEndpoint(c echo.Context) error {
	ep, err := h.mgr.GetEndpoint(c.Request().Context(), c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "endpoint not found")
	}
	return c.JSON(http.StatusOK, ep)
}

func (h *Handler) DeleteEndpoint(c echo.Context) error {
	if err := h.mgr.DeleteEndpoint(c.Request().Context(), c.Param("id")); err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "endpoint not found")
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) TestEndpoint(c echo.Context) error {
	rec, err := h.mgr.TestEndpoint(c.Request().Context(), c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "endpoint not found")
	}
	return c.JSON(http.StatusOK, rec)
}

func (h *Handler) PauseEndpoint(c echo.Context) error {
	if err := h.mgr.PauseEndpoint(c.Request().Context(), c.Param("id")); err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "endpoint not found")
	}
	return c.JSON(http.StatusOK, map[string]string{"status": StatusPaused})
}

func (h *Handler) ResumeEndpoint(c echo.Context) error {
	if err := h.mgr.ResumeEndpoint(c.Request().Context(), c.Param("id")); err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "endpoint not found")
	}
	return c.JSON(http.StatusOK, map[string]string{"status": StatusActive})
}

func (h *Handler) ListDeliveries(c echo.Context) error {
	if _, err := h.mgr.GetEndpoint(c.Request().Context(), c.Param("id")); err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "endpoint not found")
	}
	p := pagination.FromContext(c)
	logs, total, err := h.mgr.GetDeliveryLogs(c.Request().Context(), c.Param("id"), p.Limit, p.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if logs == nil {
		logs = []*Delivery{}
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(logs, total, p.Limit, p.Offset))
}

func (h *Handler) RetryDelivery(c echo.Context) error {
	rec, err := h.mgr.RetryDelivery(c.Request().Context(), c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	}
	return c.JSON(http.StatusOK, rec)
}
