package appointment

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, apt *Appointment) error
	GetByID(ctx context.Context, id uuid.UUID) (*Appointment, error)
	Update(ctx context.Context, apt *Appointment) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListByRange(ctx context.Context, from, to time.Time) ([]*Appointment, error)
	ListByClient(ctx context.Context, clientID uuid.UUID, limit, offset int) ([]*Appointment, int, error)
	// ListOverlapping returns non-cancelled appointments of the personnel
	// intersecting [start, end), excluding excludeID if non-nil.
	ListOverlapping(ctx context.Context, personnelID uuid.UUID, start, end time.Time, excludeID *uuid.UUID) ([]*Appointment, error)

	// Blocked times
	CreateBlockedTime(ctx context.Context, bt *BlockedTime) error
	DeleteBlockedTime(ctx context.Context, id uuid.UUID) error
	ListBlockedTimes(ctx context.Context, personnelID uuid.UUID) ([]*BlockedTime, error)
}
