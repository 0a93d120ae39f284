package anamnesis

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusDraft     = "draft"
	StatusCompleted = "completed"
)

// Form is a client's anamnesis record. The five sections are free text;
// a form counts as complete once every section is filled in.
type Form struct {
	ID            uuid.UUID `db:"id" json:"id"`
	ClientID      uuid.UUID `db:"client_id" json:"client_id"`
	FilledBy      uuid.UUID `db:"filled_by" json:"filled_by"`
	Complaint     string    `db:"complaint" json:"complaint"`
	History       string    `db:"history" json:"history"`
	Family        string    `db:"family" json:"family"`
	Medical       string    `db:"medical" json:"medical"`
	EducationWork string    `db:"education_work" json:"education_work"`
	Status        string    `db:"status" json:"status"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time `db:"updated_at" json:"updated_at"`
}

// MissingSections lists the sections still empty, in form order.
func (f *Form) MissingSections() []string {
	var missing []string
	for _, s := range []struct {
		name  string
		value string
	}{
		{"complaint", f.Complaint},
		{"history", f.History},
		{"family", f.Family},
		{"medical", f.Medical},
		{"education_work", f.EducationWork},
	} {
		if s.value == "" {
			missing = append(missing, s.name)
		}
	}
	return missing
}
