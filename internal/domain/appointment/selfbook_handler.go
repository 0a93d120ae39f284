package appointment

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/clinic/clinic/internal/platform/auth"
	"github.com/clinic/clinic/pkg/pagination"
)

// SelfBookHandler exposes the client-facing booking endpoints. The acting
// client is always taken from the token subject.
type SelfBookHandler struct {
	booking *SelfBooking
}

func NewSelfBookHandler(booking *SelfBooking) *SelfBookHandler {
	return &SelfBookHandler{booking: booking}
}

func (h *SelfBookHandler) RegisterRoutes(api *echo.Group) {
	g := api.Group("/self", auth.RequireRole(auth.RoleClient))
	g.GET("/slots", h.FindSlots)
	g.POST("/appointments", h.Book)
	g.GET("/appointments", h.ListAppointments)
	g.GET("/appointments/:id", h.GetAppointment)
	g.POST("/appointments/:id/cancel", h.CancelAppointment)
}

func (h *SelfBookHandler) FindSlots(c echo.Context) error {
	personnelID, err := uuid.Parse(c.QueryParam("personnel_id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "personnel_id is required")
	}
	from, err := time.Parse("2006-01-02", c.QueryParam("start"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "start must be YYYY-MM-DD")
	}
	to, err := time.Parse("2006-01-02", c.QueryParam("end"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "end must be YYYY-MM-DD")
	}
	// The end date is inclusive on the wire.
	to = to.AddDate(0, 0, 1)

	slots, err := h.booking.FindSlots(c.Request().Context(), personnelID, from, to)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if slots == nil {
		slots = []Slot{}
	}
	return c.JSON(http.StatusOK, slots)
}

func (h *SelfBookHandler) Book(c echo.Context) error {
	clientID, err := h.clientID(c)
	if err != nil {
		return err
	}
	var req SelfBookingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	apt, err := h.booking.Book(c.Request().Context(), clientID, &req)
	if err != nil {
		var conflict *ConflictError
		if errors.As(err, &conflict) {
			return echo.NewHTTPError(http.StatusConflict, conflict.Error())
		}
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, apt)
}

func (h *SelfBookHandler) ListAppointments(c echo.Context) error {
	clientID, err := h.clientID(c)
	if err != nil {
		return err
	}
	pg := pagination.FromContext(c)
	apts, total, err := h.booking.List(c.Request().Context(), clientID, pg.Limit, pg.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(apts, total, pg.Limit, pg.Offset))
}

func (h *SelfBookHandler) GetAppointment(c echo.Context) error {
	clientID, err := h.clientID(c)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	apt, err := h.booking.Get(c.Request().Context(), clientID, id)
	if err != nil {
		if errors.Is(err, ErrNotOwnAppointment) {
			return echo.NewHTTPError(http.StatusForbidden, err.Error())
		}
		return echo.NewHTTPError(http.StatusNotFound, "appointment not found")
	}
	return c.JSON(http.StatusOK, apt)
}

func (h *SelfBookHandler) CancelAppointment(c echo.Context) error {
	clientID, err := h.clientID(c)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	apt, err := h.booking.Cancel(c.Request().Context(), clientID, id)
	if err != nil {
		if errors.Is(err, ErrNotOwnAppointment) {
			return echo.NewHTTPError(http.StatusForbidden, err.Error())
		}
		return echo.NewHTTPError(http.StatusNotFound, "appointment not found")
	}
	return c.JSON(http.StatusOK, apt)
}

func (h *SelfBookHandler) clientID(c echo.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(auth.UserIDFromContext(c.Request().Context()))
	if err != nil {
		return uuid.Nil, echo.NewHTTPError(http.StatusUnauthorized, "client identity missing from token")
	}
	return id, nil
}
