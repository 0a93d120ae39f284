package appointment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ErrNotOwnAppointment is returned when a client touches an appointment
// booked for someone else.
var ErrNotOwnAppointment = errors.New("appointment does not belong to this client")

// SelfBookConfig bounds the slot grid offered to clients.
type SelfBookConfig struct {
	DayStartHour int
	DayEndHour   int
	SlotMinutes  int
}

// DefaultSelfBookConfig returns the clinic's standard working-day grid.
func DefaultSelfBookConfig() SelfBookConfig {
	return SelfBookConfig{
		DayStartHour: 9,
		DayEndHour:   18,
		SlotMinutes:  50,
	}
}

// Slot is a bookable window of one personnel member.
type Slot struct {
	PersonnelID uuid.UUID `json:"personnel_id"`
	StartsAt    time.Time `json:"starts_at"`
	EndsAt      time.Time `json:"ends_at"`
}

// SelfBookingRequest is the client's booking payload. The client id comes
// from the portal token, never from the body.
type SelfBookingRequest struct {
	PersonnelID uuid.UUID `json:"personnel_id"`
	StartsAt    time.Time `json:"starts_at"`
	ServiceName string    `json:"service_name"`
	Notes       *string   `json:"notes,omitempty"`
}

// SelfBooking derives free slots from the appointment book and blocked
// windows and books through the regular service, so the conflict check and
// calendar broadcast apply to client bookings too.
type SelfBooking struct {
	svc *Service
	cfg SelfBookConfig
	now func() time.Time
}

func NewSelfBooking(svc *Service, cfg SelfBookConfig) *SelfBooking {
	def := DefaultSelfBookConfig()
	if cfg.DayStartHour <= 0 {
		cfg.DayStartHour = def.DayStartHour
	}
	if cfg.DayEndHour <= cfg.DayStartHour {
		cfg.DayEndHour = def.DayEndHour
	}
	if cfg.SlotMinutes <= 0 {
		cfg.SlotMinutes = def.SlotMinutes
	}
	return &SelfBooking{svc: svc, cfg: cfg, now: time.Now}
}

// FindSlots returns the free slots of one personnel member in [from, to).
// Slots overlapping a scheduled or confirmed appointment, a blocked window,
// or the past are dropped.
func (b *SelfBooking) FindSlots(ctx context.Context, personnelID uuid.UUID, from, to time.Time) ([]Slot, error) {
	if personnelID == uuid.Nil {
		return nil, fmt.Errorf("personnel_id is required")
	}
	if !from.Before(to) {
		return nil, fmt.Errorf("from must precede to")
	}

	apts, err := b.svc.ListCalendar(ctx, from, to)
	if err != nil {
		return nil, err
	}
	var busy []*Appointment
	for _, a := range apts {
		if a.PersonnelID != personnelID {
			continue
		}
		if a.Status == StatusCancelled || a.Status == StatusNoShow {
			continue
		}
		busy = append(busy, a)
	}

	blocks, err := b.svc.ListBlockedTimes(ctx, personnelID)
	if err != nil {
		return nil, err
	}

	now := b.now()
	var slots []Slot
	for day := startOfDay(from); day.Before(to); day = day.AddDate(0, 0, 1) {
		dayEnd := time.Date(day.Year(), day.Month(), day.Day(), b.cfg.DayEndHour, 0, 0, 0, day.Location())
		start := time.Date(day.Year(), day.Month(), day.Day(), b.cfg.DayStartHour, 0, 0, 0, day.Location())
		for ; !start.Add(slotLen(b.cfg)).After(dayEnd); start = start.Add(slotLen(b.cfg)) {
			end := start.Add(slotLen(b.cfg))
			if start.Before(from) || end.After(to) {
				continue
			}
			if !start.After(now) {
				continue
			}
			if slotTaken(busy, blocks, start, end) {
				continue
			}
			slots = append(slots, Slot{PersonnelID: personnelID, StartsAt: start, EndsAt: end})
		}
	}
	return slots, nil
}

// Book creates a scheduled appointment for the client. Conflicts surface as
// *ConflictError from the service.
func (b *SelfBooking) Book(ctx context.Context, clientID uuid.UUID, req *SelfBookingRequest) (*Appointment, error) {
	if clientID == uuid.Nil {
		return nil, fmt.Errorf("client_id is required")
	}
	service := req.ServiceName
	if service == "" {
		service = "bireysel"
	}
	apt := &Appointment{
		ClientID:    clientID,
		PersonnelID: req.PersonnelID,
		ServiceName: service,
		StartsAt:    req.StartsAt,
		EndsAt:      req.StartsAt.Add(slotLen(b.cfg)),
		Status:      StatusScheduled,
		Notes:       req.Notes,
	}
	if err := b.svc.CreateAppointment(ctx, apt); err != nil {
		return nil, err
	}
	return apt, nil
}

// Cancel marks the client's own appointment cancelled.
func (b *SelfBooking) Cancel(ctx context.Context, clientID, appointmentID uuid.UUID) (*Appointment, error) {
	apt, err := b.svc.GetAppointment(ctx, appointmentID)
	if err != nil {
		return nil, err
	}
	if apt.ClientID != clientID {
		return nil, ErrNotOwnAppointment
	}
	return b.svc.UpdateStatus(ctx, appointmentID, StatusCancelled)
}

// Get returns the client's own appointment.
func (b *SelfBooking) Get(ctx context.Context, clientID, appointmentID uuid.UUID) (*Appointment, error) {
	apt, err := b.svc.GetAppointment(ctx, appointmentID)
	if err != nil {
		return nil, err
	}
	if apt.ClientID != clientID {
		return nil, ErrNotOwnAppointment
	}
	return apt, nil
}

// List returns the client's appointments.
func (b *SelfBooking) List(ctx context.Context, clientID uuid.UUID, limit, offset int) ([]*Appointment, int, error) {
	return b.svc.ListByClient(ctx, clientID, limit, offset)
}

func slotLen(cfg SelfBookConfig) time.Duration {
	return time.Duration(cfg.SlotMinutes) * time.Minute
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func slotTaken(busy []*Appointment, blocks []*BlockedTime, start, end time.Time) bool {
	for _, a := range busy {
		if a.Overlaps(start, end) {
			return true
		}
	}
	for _, bl := range blocks {
		if bl.Overlaps(start, end) {
			return true
		}
	}
	return false
}
