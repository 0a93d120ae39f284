package appointment

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/clinic/clinic/internal/platform/auth"
)

func newSelfBooking() (*SelfBooking, *Service, *mockRepo, *mockPublisher) {
	svc, repo, pub := newTestService()
	sb := NewSelfBooking(svc, SelfBookConfig{})
	sb.now = func() time.Time { return at(0, 0) }
	return sb, svc, repo, pub
}

func day() time.Time {
	return time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC)
}

func TestFindSlots_GridMinusBusyAndBlocked(t *testing.T) {
	sb, svc, _, _ := newSelfBooking()
	personnelID := uuid.New()

	apt := newApt(uuid.New(), personnelID, at(10, 0), at(11, 0))
	if err := svc.CreateAppointment(context.Background(), apt); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	block := &BlockedTime{PersonnelID: personnelID, StartsAt: at(13, 0), EndsAt: at(14, 0)}
	if err := svc.CreateBlockedTime(context.Background(), block); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	slots, err := sb.FindSlots(context.Background(), personnelID, day(), day().AddDate(0, 0, 1))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Grid 09:00-18:00 in 50 minute steps yields 10 slots; two overlap the
	// appointment and two overlap the blocked window.
	if len(slots) != 6 {
		t.Fatalf("expected 6 free slots, got %d: %+v", len(slots), slots)
	}
	if !slots[0].StartsAt.Equal(at(9, 0)) {
		t.Errorf("expected first slot at 09:00, got %s", slots[0].StartsAt)
	}
	for _, s := range slots {
		if apt.Overlaps(s.StartsAt, s.EndsAt) {
			t.Errorf("slot %s overlaps an existing appointment", s.StartsAt)
		}
		if block.Overlaps(s.StartsAt, s.EndsAt) {
			t.Errorf("slot %s overlaps a blocked window", s.StartsAt)
		}
	}
}

func TestFindSlots_SkipsPastAndCancelled(t *testing.T) {
	sb, svc, _, _ := newSelfBooking()
	personnelID := uuid.New()
	sb.now = func() time.Time { return at(16, 0) }

	cancelled := newApt(uuid.New(), personnelID, at(16, 30), at(17, 20))
	if err := svc.CreateAppointment(context.Background(), cancelled); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := svc.UpdateStatus(context.Background(), cancelled.ID, StatusCancelled); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	slots, err := sb.FindSlots(context.Background(), personnelID, day(), day().AddDate(0, 0, 1))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Only the 16:30 grid slot starts after 16:00, and the cancelled
	// appointment does not occupy it.
	for _, s := range slots {
		if !s.StartsAt.After(at(16, 0)) {
			t.Errorf("slot %s is in the past", s.StartsAt)
		}
	}
	found := false
	for _, s := range slots {
		if s.StartsAt.Equal(at(16, 30)) {
			found = true
		}
	}
	if !found {
		t.Error("expected the cancelled appointment's slot to be offered again")
	}
}

func TestFindSlots_Validation(t *testing.T) {
	sb, _, _, _ := newSelfBooking()

	if _, err := sb.FindSlots(context.Background(), uuid.Nil, day(), day().AddDate(0, 0, 1)); err == nil {
		t.Error("expected error for missing personnel id")
	}
	if _, err := sb.FindSlots(context.Background(), uuid.New(), day(), day()); err == nil {
		t.Error("expected error for empty range")
	}
}

func TestSelfBook_PersistsThroughService(t *testing.T) {
	sb, _, repo, pub := newSelfBooking()
	clientID := uuid.New()

	apt, err := sb.Book(context.Background(), clientID, &SelfBookingRequest{
		PersonnelID: uuid.New(),
		StartsAt:    at(10, 0),
	})
	if err != nil {
		t.Fatalf("book failed: %v", err)
	}

	stored, ok := repo.appointments[apt.ID]
	if !ok {
		t.Fatal("booking did not reach the repository")
	}
	if stored.ClientID != clientID || stored.Status != StatusScheduled {
		t.Errorf("unexpected stored appointment: %+v", stored)
	}
	if stored.ServiceName != "bireysel" {
		t.Errorf("expected default service 'bireysel', got %s", stored.ServiceName)
	}
	if !stored.EndsAt.Equal(at(10, 50)) {
		t.Errorf("expected 50 minute session ending 10:50, got %s", stored.EndsAt)
	}

	if len(pub.events) != 1 || pub.events[0].Type != "appointment.created" {
		t.Errorf("expected a calendar broadcast, got %+v", pub.events)
	}
}

func TestSelfBook_ConflictRejected(t *testing.T) {
	sb, svc, _, _ := newSelfBooking()
	personnelID := uuid.New()

	existing := newApt(uuid.New(), personnelID, at(10, 0), at(11, 0))
	if err := svc.CreateAppointment(context.Background(), existing); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err := sb.Book(context.Background(), uuid.New(), &SelfBookingRequest{
		PersonnelID: personnelID,
		StartsAt:    at(10, 30),
	})
	var conflict *ConflictError
	if !errors.As(err, &conflict) {
		t.Errorf("expected ConflictError, got %v", err)
	}
}

func TestSelfBookCancel_OwnershipEnforced(t *testing.T) {
	sb, _, repo, _ := newSelfBooking()
	clientID := uuid.New()

	apt, err := sb.Book(context.Background(), clientID, &SelfBookingRequest{
		PersonnelID: uuid.New(),
		StartsAt:    at(10, 0),
	})
	if err != nil {
		t.Fatalf("book failed: %v", err)
	}

	if _, err := sb.Cancel(context.Background(), uuid.New(), apt.ID); !errors.Is(err, ErrNotOwnAppointment) {
		t.Errorf("expected ErrNotOwnAppointment for another client, got %v", err)
	}

	cancelled, err := sb.Cancel(context.Background(), clientID, apt.ID)
	if err != nil {
		t.Fatalf("cancel failed: %v", err)
	}
	if cancelled.Status != StatusCancelled {
		t.Errorf("expected status 'cancelled', got %s", cancelled.Status)
	}
	if repo.appointments[apt.ID].Status != StatusCancelled {
		t.Error("cancellation did not reach the repository")
	}
}

func TestSelfBookGet_OwnershipEnforced(t *testing.T) {
	sb, _, _, _ := newSelfBooking()
	clientID := uuid.New()

	apt, err := sb.Book(context.Background(), clientID, &SelfBookingRequest{
		PersonnelID: uuid.New(),
		StartsAt:    at(10, 0),
	})
	if err != nil {
		t.Fatalf("book failed: %v", err)
	}

	if _, err := sb.Get(context.Background(), uuid.New(), apt.ID); !errors.Is(err, ErrNotOwnAppointment) {
		t.Errorf("expected ErrNotOwnAppointment, got %v", err)
	}
	got, err := sb.Get(context.Background(), clientID, apt.ID)
	if err != nil || got.ID != apt.ID {
		t.Errorf("expected own appointment back, got %v (err %v)", got, err)
	}
}

// -- Handler --

func selfBookContext(e *echo.Echo, req *http.Request, rec *httptest.ResponseRecorder, clientID uuid.UUID) echo.Context {
	ctx := context.WithValue(req.Context(), auth.UserIDKey, clientID.String())
	ctx = context.WithValue(ctx, auth.UserRoleKey, auth.RoleClient)
	return e.NewContext(req.WithContext(ctx), rec)
}

func TestSelfBookHandler_Book(t *testing.T) {
	sb, _, _, _ := newSelfBooking()
	h := NewSelfBookHandler(sb)
	e := echo.New()
	clientID := uuid.New()

	body := `{"personnel_id":"` + uuid.NewString() + `","starts_at":"2026-09-14T10:00:00Z"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/self/appointments", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := selfBookContext(e, req, rec, clientID)

	if err := h.Book(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	var apt Appointment
	if err := json.Unmarshal(rec.Body.Bytes(), &apt); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if apt.ClientID != clientID {
		t.Errorf("expected the token subject as client, got %s", apt.ClientID)
	}
}

func TestSelfBookHandler_Book_Conflict(t *testing.T) {
	sb, svc, _, _ := newSelfBooking()
	h := NewSelfBookHandler(sb)
	e := echo.New()
	personnelID := uuid.New()

	existing := newApt(uuid.New(), personnelID, at(10, 0), at(11, 0))
	if err := svc.CreateAppointment(context.Background(), existing); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	body := `{"personnel_id":"` + personnelID.String() + `","starts_at":"2026-09-14T10:30:00Z"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/self/appointments", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := selfBookContext(e, req, rec, uuid.New())

	err := h.Book(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok {
		t.Fatalf("expected echo.HTTPError, got %T", err)
	}
	if httpErr.Code != http.StatusConflict {
		t.Errorf("expected 409, got %d", httpErr.Code)
	}
}

func TestSelfBookHandler_MissingIdentity(t *testing.T) {
	sb, _, _, _ := newSelfBooking()
	h := NewSelfBookHandler(sb)
	e := echo.New()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/self/appointments", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := h.ListAppointments(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok {
		t.Fatalf("expected echo.HTTPError, got %T", err)
	}
	if httpErr.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", httpErr.Code)
	}
}
