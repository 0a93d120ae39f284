package catalog

import (
	"time"

	"github.com/google/uuid"
)

// Service maps to the clinic_service table. It is the catalog entry an
// appointment's service_name refers to: session type, duration, and fee.
type Service struct {
	ID          uuid.UUID `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	Description *string   `db:"description" json:"description,omitempty"`
	DurationMin int       `db:"duration_min" json:"duration_min"`
	Price       float64   `db:"price" json:"price"`
	ServiceType string    `db:"service_type" json:"service_type"`
	Active      bool      `db:"active" json:"active"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}
