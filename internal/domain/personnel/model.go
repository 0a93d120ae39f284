package personnel

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Person is a clinic staff member. PasswordHash never leaves the API.
type Person struct {
	ID           uuid.UUID `db:"id" json:"id"`
	FirstName    string    `db:"first_name" json:"first_name"`
	LastName     string    `db:"last_name" json:"last_name"`
	Title        string    `db:"title" json:"title"`
	Email        string    `db:"email" json:"email"`
	Phone        *string   `db:"phone" json:"phone,omitempty"`
	Role         string    `db:"role" json:"role"`
	PasswordHash string    `db:"password_hash" json:"-"`
	Active       bool      `db:"active" json:"active"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// FullName returns the display name, prefixed with the professional title
// when one is set.
func (p *Person) FullName() string {
	name := strings.TrimSpace(p.FirstName + " " + p.LastName)
	if p.Title != "" {
		return p.Title + " " + name
	}
	return name
}
