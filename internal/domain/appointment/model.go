package appointment

import (
	"time"

	"github.com/google/uuid"
)

// Valid appointment statuses.
const (
	StatusScheduled = "scheduled"
	StatusConfirmed = "confirmed"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
	StatusNoShow    = "no-show"
)

// Valid payment statuses.
const (
	PaymentPending = "pending"
	PaymentPaid    = "paid"
	PaymentWaived  = "waived"
)

// Appointment maps to the appointment table.
type Appointment struct {
	ID            uuid.UUID `db:"id" json:"id"`
	ClientID      uuid.UUID `db:"client_id" json:"client_id"`
	PersonnelID   uuid.UUID `db:"personnel_id" json:"personnel_id"`
	ServiceName   string    `db:"service_name" json:"service_name"`
	StartsAt      time.Time `db:"starts_at" json:"starts_at"`
	EndsAt        time.Time `db:"ends_at" json:"ends_at"`
	Status        string    `db:"status" json:"status"`
	Fee           *float64  `db:"fee" json:"fee,omitempty"`
	PaymentStatus string    `db:"payment_status" json:"payment_status"`
	Notes         *string   `db:"notes" json:"notes,omitempty"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time `db:"updated_at" json:"updated_at"`
}

// Overlaps reports whether the appointment intersects the [start, end)
// window. Back-to-back appointments do not overlap.
func (a *Appointment) Overlaps(start, end time.Time) bool {
	return a.StartsAt.Before(end) && start.Before(a.EndsAt)
}

// BlockedTime maps to the blocked_time table. It marks a window in which a
// personnel member takes no appointments (leave, supervision, lunch).
type BlockedTime struct {
	ID          uuid.UUID `db:"id" json:"id"`
	PersonnelID uuid.UUID `db:"personnel_id" json:"personnel_id"`
	StartsAt    time.Time `db:"starts_at" json:"starts_at"`
	EndsAt      time.Time `db:"ends_at" json:"ends_at"`
	Reason      *string   `db:"reason" json:"reason,omitempty"`
	Recurring   bool      `db:"recurring" json:"recurring"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

// Overlaps reports whether the blocked window intersects [start, end). A
// recurring block matches on time of day regardless of date.
func (b *BlockedTime) Overlaps(start, end time.Time) bool {
	if !b.Recurring {
		return b.StartsAt.Before(end) && start.Before(b.EndsAt)
	}
	bs := minutesOfDay(b.StartsAt)
	be := minutesOfDay(b.EndsAt)
	ss := minutesOfDay(start)
	se := minutesOfDay(end)
	return bs < se && ss < be
}

func minutesOfDay(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}
