package sessionnote

import (
	"time"

	"github.com/google/uuid"
)

// Note is a clinician's record of one session. Private notes are visible
// only to their author and admins.
type Note struct {
	ID        uuid.UUID `db:"id" json:"id"`
	ClientID  uuid.UUID `db:"client_id" json:"client_id"`
	AuthorID  uuid.UUID `db:"author_id" json:"author_id"`
	SessionAt time.Time `db:"session_at" json:"session_at"`
	Body      string    `db:"body" json:"body"`
	Private   bool      `db:"private" json:"private"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// VisibleTo reports whether the note may be shown to the given reader.
func (n *Note) VisibleTo(readerID uuid.UUID, isAdmin bool) bool {
	if !n.Private || isAdmin {
		return true
	}
	return n.AuthorID == readerID
}
