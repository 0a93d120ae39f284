package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func TestAuthSkipper_PublicPaths(t *testing.T) {
	public := []string{"/health", "/health/db", "/api/auth/login", "/api/auth/client-login"}
	for _, path := range public {
		e := echo.New()
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.SetPath(path)

		if !AuthSkipper(c) {
			t.Errorf("expected %s to skip auth", path)
		}
	}
}

func TestAuthSkipper_ProtectedPaths(t *testing.T) {
	protected := []string{"/api/clients", "/api/appointments", "/api/assessments", "/"}
	for _, path := range protected {
		e := echo.New()
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.SetPath(path)

		if AuthSkipper(c) {
			t.Errorf("expected %s to require auth", path)
		}
	}
}

func TestIsPublicPath(t *testing.T) {
	if !IsPublicPath("/health") {
		t.Error("expected /health to be public")
	}
	if IsPublicPath("/api/clients") {
		t.Error("expected /api/clients to be protected")
	}
}
