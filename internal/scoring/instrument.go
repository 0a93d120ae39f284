// Package scoring implements the psychometric scoring engine: deterministic,
// side-effect-free transformation of raw questionnaire answers into total
// scores, per-scale aggregates and clinical severity labels.
package scoring

import "fmt"

// InstrumentCode identifies a psychometric questionnaire.
type InstrumentCode string

const (
	BeckDepression     InstrumentCode = "BECK_DEPRESSION"
	BeckAnxiety        InstrumentCode = "BECK_ANXIETY"
	SCL90              InstrumentCode = "SCL_90"
	MMPI               InstrumentCode = "MMPI"
	OtomatikDusunceler InstrumentCode = "OTOMATIK_DUSUNCELER"
)

// QuestionOption is a single selectable answer. Value is the score
// contribution of that answer.
type QuestionOption struct {
	Value int    `json:"value"`
	Label string `json:"label"`
}

// Question is one item of an instrument. IDs are 1-based and contiguous
// within an instrument.
type Question struct {
	ID      int              `json:"id"`
	Text    string           `json:"text"`
	Options []QuestionOption `json:"options"`
}

// Scale is a named subset of an instrument's questions measuring one symptom
// dimension. Only multi-scale instruments define scales.
type Scale struct {
	Key         string `json:"key"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	QuestionIDs []int  `json:"question_ids"`
}

// Cutoff maps scores up to Upper to Label. Whether the bound is inclusive is
// decided by the lookup (Beck and automatic-thoughts tables are inclusive,
// SCL-90 averages use strict bounds).
type Cutoff struct {
	Upper float64 `json:"upper"`
	Label string  `json:"label"`
}

// InstrumentDefinition is the immutable description of one questionnaire.
// Definitions are built once at startup and shared read-only between
// concurrent scoring calls.
type InstrumentDefinition struct {
	Code         InstrumentCode   `json:"code"`
	Name         string           `json:"name"`
	ShortCode    string           `json:"short_code"`
	Description  string           `json:"description"`
	Instructions string           `json:"instructions,omitempty"`
	TimeFrame    string           `json:"time_frame,omitempty"`
	Questions    []Question       `json:"questions"`
	Scales       map[string]Scale `json:"scales,omitempty"`
	Cutoffs      []Cutoff         `json:"cutoffs,omitempty"`
}

// QuestionByID returns the question with the given id, or nil.
func (d *InstrumentDefinition) QuestionByID(id int) *Question {
	if id < 1 || id > len(d.Questions) {
		return nil
	}
	// Question ids are 1-based and contiguous.
	if q := &d.Questions[id-1]; q.ID == id {
		return q
	}
	for i := range d.Questions {
		if d.Questions[i].ID == id {
			return &d.Questions[i]
		}
	}
	return nil
}

// OptionRange returns the minimum and maximum option values of the question.
func (q *Question) OptionRange() (min, max int) {
	if len(q.Options) == 0 {
		return 0, 0
	}
	min, max = q.Options[0].Value, q.Options[0].Value
	for _, o := range q.Options[1:] {
		if o.Value < min {
			min = o.Value
		}
		if o.Value > max {
			max = o.Value
		}
	}
	return min, max
}

// Validate checks structural invariants of the definition: contiguous
// 1-based question ids and scale membership referencing existing questions.
func (d *InstrumentDefinition) Validate() error {
	seen := make(map[int]bool, len(d.Questions))
	for i, q := range d.Questions {
		if q.ID != i+1 {
			return fmt.Errorf("instrument %s: question at index %d has id %d, want %d", d.Code, i, q.ID, i+1)
		}
		if seen[q.ID] {
			return fmt.Errorf("instrument %s: duplicate question id %d", d.Code, q.ID)
		}
		seen[q.ID] = true
	}
	for key, sc := range d.Scales {
		if len(sc.QuestionIDs) == 0 {
			return fmt.Errorf("instrument %s: scale %s has no questions", d.Code, key)
		}
		for _, id := range sc.QuestionIDs {
			if !seen[id] {
				return fmt.Errorf("instrument %s: scale %s references unknown question %d", d.Code, key, id)
			}
		}
	}
	return nil
}

// Registry holds all instrument definitions, indexed by code. It is built
// once at process start and never mutated afterwards.
type Registry struct {
	instruments map[InstrumentCode]*InstrumentDefinition
}

// NewRegistry builds a registry from the given definitions. Definitions with
// broken invariants are rejected.
func NewRegistry(defs ...*InstrumentDefinition) (*Registry, error) {
	r := &Registry{instruments: make(map[InstrumentCode]*InstrumentDefinition, len(defs))}
	for _, d := range defs {
		if err := d.Validate(); err != nil {
			return nil, err
		}
		if _, ok := r.instruments[d.Code]; ok {
			return nil, fmt.Errorf("duplicate instrument code %s", d.Code)
		}
		r.instruments[d.Code] = d
	}
	return r, nil
}

// DefaultRegistry returns a registry with the five built-in instruments.
func DefaultRegistry() *Registry {
	r, err := NewRegistry(
		BeckDepressionDefinition(),
		BeckAnxietyDefinition(),
		SCL90Definition(),
		MMPIDefinition(),
		OtomatikDusuncelerDefinition(),
	)
	if err != nil {
		// Built-in definitions are covered by tests; a failure here is a
		// programming error.
		panic(err)
	}
	return r
}

// Get returns the definition for the given code.
func (r *Registry) Get(code InstrumentCode) (*InstrumentDefinition, error) {
	d, ok := r.instruments[code]
	if !ok {
		return nil, &UnknownInstrumentError{Code: code}
	}
	return d, nil
}

// Codes lists all registered instrument codes.
func (r *Registry) Codes() []InstrumentCode {
	codes := make([]InstrumentCode, 0, len(r.instruments))
	for c := range r.instruments {
		codes = append(codes, c)
	}
	return codes
}
