package assessment

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/clinic/clinic/internal/scoring"
)

// Valid assignment statuses.
const (
	StatusPending   = "pending"
	StatusCompleted = "completed"
	StatusExpired   = "expired"
)

// Assignment maps to the assessment_assignment table. It records that a
// client was given an instrument to fill in.
type Assignment struct {
	ID          uuid.UUID              `db:"id" json:"id"`
	ClientID    uuid.UUID              `db:"client_id" json:"client_id"`
	AssignedBy  uuid.UUID              `db:"assigned_by" json:"assigned_by"`
	Instrument  scoring.InstrumentCode `db:"instrument" json:"instrument"`
	Status      string                 `db:"status" json:"status"`
	DueAt       *time.Time             `db:"due_at" json:"due_at,omitempty"`
	AssignedAt  time.Time              `db:"assigned_at" json:"assigned_at"`
	CompletedAt *time.Time             `db:"completed_at" json:"completed_at,omitempty"`
}

// Result maps to the assessment_result table. The scale breakdown, global
// indices and raw responses are stored as JSON.
type Result struct {
	ID             uuid.UUID              `db:"id" json:"id"`
	AssignmentID   uuid.UUID              `db:"assignment_id" json:"assignment_id"`
	ClientID       uuid.UUID              `db:"client_id" json:"client_id"`
	Instrument     scoring.InstrumentCode `db:"instrument" json:"instrument"`
	TotalScore     *int                   `db:"total_score" json:"total_score,omitempty"`
	Severity       string                 `db:"severity" json:"severity"`
	Interpretation string                 `db:"interpretation" json:"interpretation,omitempty"`
	Scales         json.RawMessage        `db:"scales" json:"scales,omitempty"`
	GlobalIndices  json.RawMessage        `db:"global_indices" json:"global_indices,omitempty"`
	RawResponses   json.RawMessage        `db:"raw_responses" json:"raw_responses"`
	Gender         string                 `db:"gender" json:"gender,omitempty"`
	AIAnalysis     *string                `db:"ai_analysis" json:"ai_analysis,omitempty"`
	ScoredAt       time.Time              `db:"scored_at" json:"scored_at"`
}

// Submission is the inbound answer payload. Beck instruments submit the
// positional array; every other instrument submits the keyed map. Exactly
// one of the two must be set.
type Submission struct {
	Positional []int       `json:"positional,omitempty"`
	Keyed      map[int]int `json:"keyed,omitempty"`
	Gender     string      `json:"gender,omitempty"`
}

// ResponseSet converts the submission to the engine's input variant.
func (s *Submission) ResponseSet() scoring.ResponseSet {
	if s.Positional != nil {
		return scoring.PositionalResponses(s.Positional)
	}
	return scoring.KeyedResponses(s.Keyed)
}
