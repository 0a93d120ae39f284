package appointment

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/clinic/clinic/internal/platform/websocket"
)

var validStatuses = map[string]bool{
	StatusScheduled: true,
	StatusConfirmed: true,
	StatusCompleted: true,
	StatusCancelled: true,
	StatusNoShow:    true,
}

var validPaymentStatuses = map[string]bool{
	PaymentPending: true,
	PaymentPaid:    true,
	PaymentWaived:  true,
}

// ConflictError is returned when an appointment would overlap an existing
// appointment or a blocked window of the same personnel.
type ConflictError struct {
	Reason string
}

func (e *ConflictError) Error() string {
	return "appointment conflict: " + e.Reason
}

type Service struct {
	repo      Repository
	publisher websocket.EventPublisher
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// SetPublisher attaches an optional event publisher; calendar mutations are
// broadcast to it.
func (s *Service) SetPublisher(p websocket.EventPublisher) {
	s.publisher = p
}

func (s *Service) CreateAppointment(ctx context.Context, apt *Appointment) error {
	if err := s.validate(apt); err != nil {
		return err
	}
	if apt.Status == "" {
		apt.Status = StatusScheduled
	}
	if apt.PaymentStatus == "" {
		apt.PaymentStatus = PaymentPending
	}
	if !validStatuses[apt.Status] {
		return fmt.Errorf("invalid status: %s", apt.Status)
	}
	if !validPaymentStatuses[apt.PaymentStatus] {
		return fmt.Errorf("invalid payment_status: %s", apt.PaymentStatus)
	}
	if err := s.checkConflicts(ctx, apt.PersonnelID, apt.StartsAt, apt.EndsAt, nil); err != nil {
		return err
	}
	if err := s.repo.Create(ctx, apt); err != nil {
		return err
	}
	s.broadcast("appointment.created", apt)
	return nil
}

func (s *Service) GetAppointment(ctx context.Context, id uuid.UUID) (*Appointment, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) UpdateAppointment(ctx context.Context, apt *Appointment) error {
	if err := s.validate(apt); err != nil {
		return err
	}
	if apt.Status != "" && !validStatuses[apt.Status] {
		return fmt.Errorf("invalid status: %s", apt.Status)
	}
	if apt.Status != StatusCancelled && apt.Status != StatusNoShow {
		if err := s.checkConflicts(ctx, apt.PersonnelID, apt.StartsAt, apt.EndsAt, &apt.ID); err != nil {
			return err
		}
	}
	if err := s.repo.Update(ctx, apt); err != nil {
		return err
	}
	s.broadcast("appointment.updated", apt)
	return nil
}

func (s *Service) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*Appointment, error) {
	if !validStatuses[status] {
		return nil, fmt.Errorf("invalid status: %s", status)
	}
	apt, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("appointment not found: %w", err)
	}
	apt.Status = status
	if err := s.repo.Update(ctx, apt); err != nil {
		return nil, err
	}
	s.broadcast("appointment.updated", apt)
	return apt, nil
}

func (s *Service) DeleteAppointment(ctx context.Context, id uuid.UUID) error {
	apt, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("appointment not found: %w", err)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.broadcast("appointment.deleted", apt)
	return nil
}

// ListCalendar returns the appointments intersecting [from, to) for the
// calendar view.
func (s *Service) ListCalendar(ctx context.Context, from, to time.Time) ([]*Appointment, error) {
	if !from.Before(to) {
		return nil, fmt.Errorf("from must precede to")
	}
	return s.repo.ListByRange(ctx, from, to)
}

func (s *Service) ListByClient(ctx context.Context, clientID uuid.UUID, limit, offset int) ([]*Appointment, int, error) {
	return s.repo.ListByClient(ctx, clientID, limit, offset)
}

// DueReminders returns scheduled or confirmed appointments starting on the
// given day, the input of the reminder fan-out.
func (s *Service) DueReminders(ctx context.Context, day time.Time) ([]*Appointment, error) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	apts, err := s.repo.ListByRange(ctx, start, start.AddDate(0, 0, 1))
	if err != nil {
		return nil, err
	}
	var due []*Appointment
	for _, a := range apts {
		if a.Status == StatusScheduled || a.Status == StatusConfirmed {
			due = append(due, a)
		}
	}
	return due, nil
}

// Blocked times

func (s *Service) CreateBlockedTime(ctx context.Context, bt *BlockedTime) error {
	if bt.PersonnelID == uuid.Nil {
		return fmt.Errorf("personnel_id is required")
	}
	if bt.StartsAt.IsZero() || bt.EndsAt.IsZero() {
		return fmt.Errorf("starts_at and ends_at are required")
	}
	if !bt.StartsAt.Before(bt.EndsAt) {
		return fmt.Errorf("starts_at must precede ends_at")
	}
	return s.repo.CreateBlockedTime(ctx, bt)
}

func (s *Service) DeleteBlockedTime(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteBlockedTime(ctx, id)
}

func (s *Service) ListBlockedTimes(ctx context.Context, personnelID uuid.UUID) ([]*BlockedTime, error) {
	return s.repo.ListBlockedTimes(ctx, personnelID)
}

func (s *Service) validate(apt *Appointment) error {
	if apt.ClientID == uuid.Nil {
		return fmt.Errorf("client_id is required")
	}
	if apt.PersonnelID == uuid.Nil {
		return fmt.Errorf("personnel_id is required")
	}
	if apt.StartsAt.IsZero() || apt.EndsAt.IsZero() {
		return fmt.Errorf("starts_at and ends_at are required")
	}
	if !apt.StartsAt.Before(apt.EndsAt) {
		return fmt.Errorf("starts_at must precede ends_at")
	}
	return nil
}

func (s *Service) checkConflicts(ctx context.Context, personnelID uuid.UUID, start, end time.Time, excludeID *uuid.UUID) error {
	overlapping, err := s.repo.ListOverlapping(ctx, personnelID, start, end, excludeID)
	if err != nil {
		return err
	}
	if len(overlapping) > 0 {
		return &ConflictError{Reason: fmt.Sprintf("overlaps existing appointment at %s",
			overlapping[0].StartsAt.Format(time.RFC3339))}
	}

	blocks, err := s.repo.ListBlockedTimes(ctx, personnelID)
	if err != nil {
		return err
	}
	for _, b := range blocks {
		if b.Overlaps(start, end) {
			return &ConflictError{Reason: "overlaps a blocked time window"}
		}
	}
	return nil
}

func (s *Service) broadcast(eventType string, apt *Appointment) {
	if s.publisher == nil {
		return
	}
	data, err := json.Marshal(apt)
	if err != nil {
		return
	}
	event := websocket.NewEvent(eventType, websocket.TopicAppointments, "appointment", apt.ID.String(), data)
	_ = s.publisher.Publish(context.Background(), event)
}
