package notice

import (
	"time"

	"github.com/google/uuid"
)

// Valid notice types.
const (
	TypeInfo        = "info"
	TypeAppointment = "appointment"
	TypeAssessment  = "assessment"
	TypeSystem      = "system"
)

// Notice is an in-app notification for one staff member.
type Notice struct {
	ID          uuid.UUID `db:"id" json:"id"`
	PersonnelID uuid.UUID `db:"personnel_id" json:"personnel_id"`
	Type        string    `db:"type" json:"type"`
	Title       string    `db:"title" json:"title"`
	Body        string    `db:"body" json:"body"`
	Read        bool      `db:"read" json:"read"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}
