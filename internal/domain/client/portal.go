package client

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/clinic/clinic/internal/platform/auth"
)

// PortalHandler exposes the client-facing login endpoint. Clients only need a
// token to submit tests assigned to them; everything else stays staff only.
type PortalHandler struct {
	svc    *Service
	issuer *auth.TokenIssuer
}

func NewPortalHandler(svc *Service, issuer *auth.TokenIssuer) *PortalHandler {
	return &PortalHandler{svc: svc, issuer: issuer}
}

// RegisterAuthRoutes mounts the public client login endpoint.
func (h *PortalHandler) RegisterAuthRoutes(g *echo.Group) {
	g.POST("/client-login", h.Login)
}

func (h *PortalHandler) Login(c echo.Context) error {
	var body struct {
		NationalID string `json:"national_id"`
		BirthDate  string `json:"birth_date"`
	}
	if err := c.Bind(&body); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	birthDate, err := time.Parse("2006-01-02", body.BirthDate)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "birth_date must be YYYY-MM-DD")
	}

	cl, err := h.svc.PortalLogin(c.Request().Context(), body.NationalID, birthDate)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "login failed")
	}

	token, err := h.issuer.Issue(cl.ID.String(), auth.RoleClient, cl.FullName())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "issuing token failed")
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"token":  token,
		"client": cl,
	})
}
