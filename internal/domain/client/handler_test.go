package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/clinic/clinic/internal/platform/auth"
)

func newHandlerTest() (*Handler, *Service) {
	svc, _ := newTestService()
	return NewHandler(svc), svc
}

func TestHandler_CreateClient(t *testing.T) {
	h, _ := newHandlerTest()
	e := echo.New()

	body := `{"first_name":"Mehmet","last_name":"Demir","phone":"+905551112233"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/clients", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.CreateClient(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var created Client
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if created.ID == uuid.Nil {
		t.Error("expected id to be set")
	}
	if created.Status != StatusActive {
		t.Errorf("expected status 'active', got %s", created.Status)
	}
}

func TestHandler_CreateClient_ValidationError(t *testing.T) {
	h, _ := newHandlerTest()
	e := echo.New()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/clients", strings.NewReader(`{"last_name":"Demir"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := h.CreateClient(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok {
		t.Fatalf("expected echo.HTTPError, got %T", err)
	}
	if httpErr.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", httpErr.Code)
	}
}

func TestHandler_GetClient(t *testing.T) {
	h, svc := newHandlerTest()
	e := echo.New()

	cl := &Client{FirstName: "Elif", LastName: "Kaya"}
	if err := svc.CreateClient(context.Background(), cl); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	r := httptest.NewRequest(http.MethodGet, "/api/v1/clients/"+cl.ID.String(), nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(r, rec)
	c.SetParamNames("id")
	c.SetParamValues(cl.ID.String())

	if err := h.GetClient(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var got Client
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if got.ID != cl.ID {
		t.Errorf("expected client %s, got %s", cl.ID, got.ID)
	}
}

func TestHandler_GetClient_NotFound(t *testing.T) {
	h, _ := newHandlerTest()
	e := echo.New()

	r := httptest.NewRequest(http.MethodGet, "/api/v1/clients/"+uuid.NewString(), nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(r, rec)
	c.SetParamNames("id")
	c.SetParamValues(uuid.NewString())

	err := h.GetClient(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok {
		t.Fatalf("expected echo.HTTPError, got %T", err)
	}
	if httpErr.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", httpErr.Code)
	}
}

func TestHandler_GetClient_InvalidID(t *testing.T) {
	h, _ := newHandlerTest()
	e := echo.New()

	r := httptest.NewRequest(http.MethodGet, "/api/v1/clients/not-a-uuid", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(r, rec)
	c.SetParamNames("id")
	c.SetParamValues("not-a-uuid")

	err := h.GetClient(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok {
		t.Fatalf("expected echo.HTTPError, got %T", err)
	}
	if httpErr.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", httpErr.Code)
	}
}

func newPortalEcho(svc *Service) *echo.Echo {
	e := echo.New()
	issuer := auth.NewTokenIssuer([]byte("test-secret"), time.Hour)
	NewPortalHandler(svc, issuer).RegisterAuthRoutes(e.Group("/api/auth"))
	return e
}

func TestPortalHandler_Login(t *testing.T) {
	svc, _ := newTestService()
	birth := time.Date(1990, 4, 12, 0, 0, 0, 0, time.UTC)
	cl := &Client{
		FirstName:  "Mehmet",
		LastName:   "Demir",
		NationalID: strPtr("12345678901"),
		BirthDate:  &birth,
	}
	if err := svc.CreateClient(context.Background(), cl); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	e := newPortalEcho(svc)

	body := `{"national_id":"12345678901","birth_date":"1990-04-12"}`
	r := httptest.NewRequest(http.MethodPost, "/api/auth/client-login", strings.NewReader(body))
	r.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, r)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d; body: %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		Token  string `json:"token"`
		Client Client `json:"client"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if resp.Token == "" {
		t.Error("expected a token in the response")
	}
	if resp.Client.ID != cl.ID {
		t.Errorf("expected client %s, got %s", cl.ID, resp.Client.ID)
	}
}

func TestPortalHandler_Login_WrongCredentials(t *testing.T) {
	svc, _ := newTestService()
	e := newPortalEcho(svc)

	body := `{"national_id":"99999999999","birth_date":"1990-04-12"}`
	r := httptest.NewRequest(http.MethodPost, "/api/auth/client-login", strings.NewReader(body))
	r.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, r)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
}

func TestPortalHandler_Login_BadDateFormat(t *testing.T) {
	svc, _ := newTestService()
	e := newPortalEcho(svc)

	body := `{"national_id":"12345678901","birth_date":"12.04.1990"}`
	r := httptest.NewRequest(http.MethodPost, "/api/auth/client-login", strings.NewReader(body))
	r.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, r)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}
