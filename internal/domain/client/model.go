package client

import (
	"time"

	"github.com/google/uuid"
)

// Valid client record statuses.
const (
	StatusActive   = "active"
	StatusArchived = "archived"
)

// Client maps to the client table. A client is a person receiving care at
// the clinic (danışan), not an OAuth consumer.
type Client struct {
	ID             uuid.UUID  `db:"id" json:"id"`
	FirstName      string     `db:"first_name" json:"first_name"`
	LastName       string     `db:"last_name" json:"last_name"`
	NationalID     *string    `db:"national_id" json:"national_id,omitempty"`
	Email          *string    `db:"email" json:"email,omitempty"`
	Phone          *string    `db:"phone" json:"phone,omitempty"`
	BirthDate      *time.Time `db:"birth_date" json:"birth_date,omitempty"`
	Gender         *string    `db:"gender" json:"gender,omitempty"`
	ReferralSource *string    `db:"referral_source" json:"referral_source,omitempty"`
	Status         string     `db:"status" json:"status"`
	Notes          *string    `db:"notes" json:"notes,omitempty"`
	CreatedAt      time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time  `db:"updated_at" json:"updated_at"`
}

// FullName returns the display name used in reminders and reports.
func (c *Client) FullName() string {
	return c.FirstName + " " + c.LastName
}
