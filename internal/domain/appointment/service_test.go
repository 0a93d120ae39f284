package appointment

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/clinic/clinic/internal/platform/notification"
	"github.com/clinic/clinic/internal/platform/websocket"
)

// -- Mock Repository --

type mockRepo struct {
	appointments map[uuid.UUID]*Appointment
	blocked      map[uuid.UUID]*BlockedTime
}

func newMockRepo() *mockRepo {
	return &mockRepo{
		appointments: make(map[uuid.UUID]*Appointment),
		blocked:      make(map[uuid.UUID]*BlockedTime),
	}
}

func (m *mockRepo) Create(_ context.Context, apt *Appointment) error {
	apt.ID = uuid.New()
	apt.CreatedAt = time.Now()
	apt.UpdatedAt = time.Now()
	m.appointments[apt.ID] = apt
	return nil
}

func (m *mockRepo) GetByID(_ context.Context, id uuid.UUID) (*Appointment, error) {
	apt, ok := m.appointments[id]
	if !ok {
		return nil, fmt.Errorf("not found")
	}
	return apt, nil
}

func (m *mockRepo) Update(_ context.Context, apt *Appointment) error {
	m.appointments[apt.ID] = apt
	return nil
}

func (m *mockRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(m.appointments, id)
	return nil
}

func (m *mockRepo) ListByRange(_ context.Context, from, to time.Time) ([]*Appointment, error) {
	var result []*Appointment
	for _, apt := range m.appointments {
		if apt.Overlaps(from, to) {
			result = append(result, apt)
		}
	}
	return result, nil
}

func (m *mockRepo) ListByClient(_ context.Context, clientID uuid.UUID, limit, offset int) ([]*Appointment, int, error) {
	var result []*Appointment
	for _, apt := range m.appointments {
		if apt.ClientID == clientID {
			result = append(result, apt)
		}
	}
	return result, len(result), nil
}

func (m *mockRepo) ListOverlapping(_ context.Context, personnelID uuid.UUID, start, end time.Time, excludeID *uuid.UUID) ([]*Appointment, error) {
	var result []*Appointment
	for _, apt := range m.appointments {
		if apt.PersonnelID != personnelID {
			continue
		}
		if apt.Status == StatusCancelled || apt.Status == StatusNoShow {
			continue
		}
		if excludeID != nil && apt.ID == *excludeID {
			continue
		}
		if apt.Overlaps(start, end) {
			result = append(result, apt)
		}
	}
	return result, nil
}

func (m *mockRepo) CreateBlockedTime(_ context.Context, bt *BlockedTime) error {
	bt.ID = uuid.New()
	bt.CreatedAt = time.Now()
	m.blocked[bt.ID] = bt
	return nil
}

func (m *mockRepo) DeleteBlockedTime(_ context.Context, id uuid.UUID) error {
	delete(m.blocked, id)
	return nil
}

func (m *mockRepo) ListBlockedTimes(_ context.Context, personnelID uuid.UUID) ([]*BlockedTime, error) {
	var result []*BlockedTime
	for _, bt := range m.blocked {
		if bt.PersonnelID == personnelID {
			result = append(result, bt)
		}
	}
	return result, nil
}

// -- Mock Publisher --

type mockPublisher struct {
	events []websocket.Event
}

func (m *mockPublisher) Publish(_ context.Context, event websocket.Event) error {
	m.events = append(m.events, event)
	return nil
}

// -- Tests --

func newTestService() (*Service, *mockRepo, *mockPublisher) {
	repo := newMockRepo()
	pub := &mockPublisher{}
	svc := NewService(repo)
	svc.SetPublisher(pub)
	return svc, repo, pub
}

func at(hour, min int) time.Time {
	return time.Date(2026, 9, 14, hour, min, 0, 0, time.UTC)
}

func newApt(clientID, personnelID uuid.UUID, start, end time.Time) *Appointment {
	return &Appointment{
		ClientID:    clientID,
		PersonnelID: personnelID,
		ServiceName: "bireysel",
		StartsAt:    start,
		EndsAt:      end,
	}
}

func TestCreateAppointment(t *testing.T) {
	svc, _, pub := newTestService()

	apt := newApt(uuid.New(), uuid.New(), at(10, 0), at(11, 0))
	if err := svc.CreateAppointment(context.Background(), apt); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if apt.ID == uuid.Nil {
		t.Error("expected ID to be set")
	}
	if apt.Status != StatusScheduled {
		t.Errorf("expected default status 'scheduled', got %s", apt.Status)
	}
	if apt.PaymentStatus != PaymentPending {
		t.Errorf("expected default payment status 'pending', got %s", apt.PaymentStatus)
	}

	if len(pub.events) != 1 {
		t.Fatalf("expected 1 broadcast event, got %d", len(pub.events))
	}
	if pub.events[0].Type != "appointment.created" {
		t.Errorf("unexpected event type: %s", pub.events[0].Type)
	}
	if pub.events[0].Topic != websocket.TopicAppointments {
		t.Errorf("unexpected topic: %s", pub.events[0].Topic)
	}
}

func TestCreateAppointment_Validation(t *testing.T) {
	svc, _, _ := newTestService()

	tests := []struct {
		name string
		apt  *Appointment
	}{
		{"missing client", newApt(uuid.Nil, uuid.New(), at(10, 0), at(11, 0))},
		{"missing personnel", newApt(uuid.New(), uuid.Nil, at(10, 0), at(11, 0))},
		{"zero times", &Appointment{ClientID: uuid.New(), PersonnelID: uuid.New()}},
		{"inverted window", newApt(uuid.New(), uuid.New(), at(11, 0), at(10, 0))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := svc.CreateAppointment(context.Background(), tt.apt); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestCreateAppointment_Conflict(t *testing.T) {
	svc, _, _ := newTestService()
	personnelID := uuid.New()

	first := newApt(uuid.New(), personnelID, at(10, 0), at(11, 0))
	if err := svc.CreateAppointment(context.Background(), first); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	second := newApt(uuid.New(), personnelID, at(10, 30), at(11, 30))
	err := svc.CreateAppointment(context.Background(), second)
	var conflict *ConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("expected ConflictError, got %v", err)
	}
}

func TestCreateAppointment_BackToBackAllowed(t *testing.T) {
	svc, _, _ := newTestService()
	personnelID := uuid.New()

	first := newApt(uuid.New(), personnelID, at(10, 0), at(11, 0))
	if err := svc.CreateAppointment(context.Background(), first); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	second := newApt(uuid.New(), personnelID, at(11, 0), at(12, 0))
	if err := svc.CreateAppointment(context.Background(), second); err != nil {
		t.Errorf("back-to-back appointment should not conflict: %v", err)
	}
}

func TestCreateAppointment_OtherPersonnelNoConflict(t *testing.T) {
	svc, _, _ := newTestService()

	first := newApt(uuid.New(), uuid.New(), at(10, 0), at(11, 0))
	if err := svc.CreateAppointment(context.Background(), first); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	second := newApt(uuid.New(), uuid.New(), at(10, 0), at(11, 0))
	if err := svc.CreateAppointment(context.Background(), second); err != nil {
		t.Errorf("same slot with different personnel should not conflict: %v", err)
	}
}

func TestCreateAppointment_CancelledDoesNotBlock(t *testing.T) {
	svc, _, _ := newTestService()
	personnelID := uuid.New()

	first := newApt(uuid.New(), personnelID, at(10, 0), at(11, 0))
	if err := svc.CreateAppointment(context.Background(), first); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := svc.UpdateStatus(context.Background(), first.ID, StatusCancelled); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	second := newApt(uuid.New(), personnelID, at(10, 0), at(11, 0))
	if err := svc.CreateAppointment(context.Background(), second); err != nil {
		t.Errorf("cancelled appointment should not block the slot: %v", err)
	}
}

func TestCreateAppointment_BlockedTimeConflict(t *testing.T) {
	svc, _, _ := newTestService()
	personnelID := uuid.New()

	bt := &BlockedTime{
		PersonnelID: personnelID,
		StartsAt:    at(12, 0),
		EndsAt:      at(13, 0),
		Reason:      strPtr("öğle arası"),
	}
	if err := svc.CreateBlockedTime(context.Background(), bt); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	apt := newApt(uuid.New(), personnelID, at(12, 30), at(13, 30))
	err := svc.CreateAppointment(context.Background(), apt)
	var conflict *ConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("expected ConflictError for blocked window, got %v", err)
	}
}

func TestCreateAppointment_RecurringBlockConflict(t *testing.T) {
	svc, _, _ := newTestService()
	personnelID := uuid.New()

	// Recurring lunch block defined on an arbitrary past date.
	bt := &BlockedTime{
		PersonnelID: personnelID,
		StartsAt:    time.Date(2026, 1, 5, 12, 0, 0, 0, time.UTC),
		EndsAt:      time.Date(2026, 1, 5, 13, 0, 0, 0, time.UTC),
		Recurring:   true,
	}
	if err := svc.CreateBlockedTime(context.Background(), bt); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	apt := newApt(uuid.New(), personnelID, at(12, 15), at(12, 45))
	err := svc.CreateAppointment(context.Background(), apt)
	var conflict *ConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("expected ConflictError for recurring block, got %v", err)
	}

	morning := newApt(uuid.New(), personnelID, at(9, 0), at(10, 0))
	if err := svc.CreateAppointment(context.Background(), morning); err != nil {
		t.Errorf("morning slot should not hit the lunch block: %v", err)
	}
}

func TestUpdateAppointment_ExcludesSelfFromConflict(t *testing.T) {
	svc, _, _ := newTestService()
	personnelID := uuid.New()

	apt := newApt(uuid.New(), personnelID, at(10, 0), at(11, 0))
	if err := svc.CreateAppointment(context.Background(), apt); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Shift by 15 minutes; still overlaps its own old slot.
	apt.StartsAt = at(10, 15)
	apt.EndsAt = at(11, 15)
	if err := svc.UpdateAppointment(context.Background(), apt); err != nil {
		t.Errorf("rescheduling over own slot should not conflict: %v", err)
	}
}

func TestUpdateStatus_Invalid(t *testing.T) {
	svc, _, _ := newTestService()

	if _, err := svc.UpdateStatus(context.Background(), uuid.New(), "postponed"); err == nil {
		t.Error("expected error for invalid status")
	}
}

func TestDeleteAppointment_Broadcasts(t *testing.T) {
	svc, _, pub := newTestService()

	apt := newApt(uuid.New(), uuid.New(), at(10, 0), at(11, 0))
	if err := svc.CreateAppointment(context.Background(), apt); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := svc.DeleteAppointment(context.Background(), apt.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	last := pub.events[len(pub.events)-1]
	if last.Type != "appointment.deleted" {
		t.Errorf("expected appointment.deleted event, got %s", last.Type)
	}
	if last.ResID != apt.ID.String() {
		t.Errorf("expected ResID %s, got %s", apt.ID, last.ResID)
	}
}

func TestListCalendar_InvalidRange(t *testing.T) {
	svc, _, _ := newTestService()

	if _, err := svc.ListCalendar(context.Background(), at(11, 0), at(10, 0)); err == nil {
		t.Error("expected error for inverted range")
	}
}

func TestDueReminders(t *testing.T) {
	svc, _, _ := newTestService()

	day := time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC)

	scheduled := newApt(uuid.New(), uuid.New(), at(10, 0), at(11, 0))
	svc.CreateAppointment(context.Background(), scheduled)

	cancelled := newApt(uuid.New(), uuid.New(), at(14, 0), at(15, 0))
	svc.CreateAppointment(context.Background(), cancelled)
	svc.UpdateStatus(context.Background(), cancelled.ID, StatusCancelled)

	otherDay := newApt(uuid.New(), uuid.New(),
		time.Date(2026, 9, 15, 10, 0, 0, 0, time.UTC),
		time.Date(2026, 9, 15, 11, 0, 0, 0, time.UTC))
	svc.CreateAppointment(context.Background(), otherDay)

	due, err := svc.DueReminders(context.Background(), day)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(due) != 1 {
		t.Fatalf("expected 1 due reminder, got %d", len(due))
	}
	if due[0].ID != scheduled.ID {
		t.Error("expected the scheduled appointment to be due")
	}
}

// -- Reminder fan-out --

type mockContacts struct {
	clients   map[uuid.UUID][2]string // name, phone
	personnel map[uuid.UUID]string
}

func (m *mockContacts) ClientContact(_ context.Context, id uuid.UUID) (string, string, error) {
	c, ok := m.clients[id]
	if !ok {
		return "", "", fmt.Errorf("not found")
	}
	return c[0], c[1], nil
}

func (m *mockContacts) PersonnelName(_ context.Context, id uuid.UUID) (string, error) {
	name, ok := m.personnel[id]
	if !ok {
		return "", fmt.Errorf("not found")
	}
	return name, nil
}

func TestReminder_SendDue(t *testing.T) {
	svc, _, _ := newTestService()

	clientID := uuid.New()
	personnelID := uuid.New()
	apt := newApt(clientID, personnelID, at(10, 0), at(11, 0))
	if err := svc.CreateAppointment(context.Background(), apt); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	noPhone := uuid.New()
	apt2 := newApt(noPhone, personnelID, at(14, 0), at(15, 0))
	if err := svc.CreateAppointment(context.Background(), apt2); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	contacts := &mockContacts{
		clients: map[uuid.UUID][2]string{
			clientID: {"Mehmet Demir", "+905551112233"},
		},
		personnel: map[uuid.UUID]string{
			personnelID: "Uzm. Psk. Ayşe Yılmaz",
		},
	}

	whatsapp := &notification.MockWhatsAppSender{}
	manager := notification.NewNotificationManager(&notification.MockSMSSender{}, whatsapp, notification.NewTemplateEngine())
	reminder := NewReminder(svc, contacts, manager, zerolog.Nop())

	sent, err := reminder.SendDue(context.Background(), time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sent != 1 {
		t.Fatalf("expected 1 reminder sent, got %d", sent)
	}
	calls := whatsapp.Calls()
	if len(calls) != 1 {
		t.Fatalf("expected 1 whatsapp call, got %d", len(calls))
	}
	if calls[0].To != "+905551112233" {
		t.Errorf("unexpected recipient: %s", calls[0].To)
	}
	for _, want := range []string{"Mehmet Demir", "14.09.2026", "10:00", "Uzm. Psk. Ayşe Yılmaz"} {
		if !strings.Contains(calls[0].Body, want) {
			t.Errorf("expected body to contain %q, got %q", want, calls[0].Body)
		}
	}
}

func strPtr(s string) *string { return &s }
