package assessment

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/clinic/clinic/internal/platform/aireport"
	"github.com/clinic/clinic/internal/platform/websocket"
	"github.com/clinic/clinic/internal/scoring"
)

// ErrNotPending is returned when answers are submitted against an
// assignment that was already completed or has expired.
var ErrNotPending = errors.New("assignment is not pending")

// NameLookup resolves the client name the AI report is drafted for.
type NameLookup interface {
	ClientName(ctx context.Context, id uuid.UUID) (string, error)
}

// ReportGenerator drafts analysis text from a scored result.
type ReportGenerator interface {
	Enabled() bool
	Generate(ctx context.Context, req aireport.ReportRequest) (string, error)
}

type Service struct {
	repo      Repository
	registry  *scoring.Registry
	engine    *scoring.Engine
	ai        ReportGenerator
	names     NameLookup
	publisher websocket.EventPublisher
}

func NewService(repo Repository, registry *scoring.Registry, engine *scoring.Engine, ai ReportGenerator, names NameLookup) *Service {
	return &Service{repo: repo, registry: registry, engine: engine, ai: ai, names: names}
}

// SetPublisher wires the websocket hub in. Optional; without it completed
// assessments are simply not broadcast.
func (s *Service) SetPublisher(p websocket.EventPublisher) {
	s.publisher = p
}

// Instruments returns every registered instrument definition, ordered by
// code.
func (s *Service) Instruments() []*scoring.InstrumentDefinition {
	codes := s.registry.Codes()
	defs := make([]*scoring.InstrumentDefinition, 0, len(codes))
	for _, code := range codes {
		def, err := s.registry.Get(code)
		if err != nil {
			continue
		}
		defs = append(defs, def)
	}
	return defs
}

// Instrument returns one instrument definition including its questions.
func (s *Service) Instrument(code scoring.InstrumentCode) (*scoring.InstrumentDefinition, error) {
	return s.registry.Get(code)
}

// Assign gives a client an instrument to fill in.
func (s *Service) Assign(ctx context.Context, clientID, assignedBy uuid.UUID, instrument scoring.InstrumentCode, dueAt *time.Time) (*Assignment, error) {
	if clientID == uuid.Nil {
		return nil, fmt.Errorf("client_id is required")
	}
	if _, err := s.registry.Get(instrument); err != nil {
		return nil, err
	}
	if dueAt != nil && dueAt.Before(time.Now()) {
		return nil, fmt.Errorf("due_at must be in the future")
	}

	a := &Assignment{
		ClientID:   clientID,
		AssignedBy: assignedBy,
		Instrument: instrument,
		Status:     StatusPending,
		DueAt:      dueAt,
	}
	if err := s.repo.CreateAssignment(ctx, a); err != nil {
		return nil, fmt.Errorf("creating assignment: %w", err)
	}
	return a, nil
}

func (s *Service) GetAssignment(ctx context.Context, id uuid.UUID) (*Assignment, error) {
	return s.repo.GetAssignment(ctx, id)
}

func (s *Service) ListAssignments(ctx context.Context, clientID uuid.UUID, limit, offset int) ([]*Assignment, int, error) {
	return s.repo.ListAssignmentsByClient(ctx, clientID, limit, offset)
}

// Submit scores the submitted answers and persists the result. The
// assignment must still be pending; scoring errors from the engine are
// returned unwrapped so callers can map them to validation failures.
func (s *Service) Submit(ctx context.Context, assignmentID uuid.UUID, sub *Submission) (*Result, error) {
	a, err := s.repo.GetAssignment(ctx, assignmentID)
	if err != nil {
		return nil, err
	}
	if a.Status != StatusPending {
		return nil, ErrNotPending
	}
	if sub.Positional != nil && sub.Keyed != nil {
		return nil, fmt.Errorf("submission must carry either positional or keyed answers, not both")
	}

	score, err := s.engine.ScoreWithGender(a.Instrument, sub.ResponseSet(), sub.Gender)
	if err != nil {
		return nil, err
	}

	res := &Result{
		AssignmentID:   a.ID,
		ClientID:       a.ClientID,
		Instrument:     a.Instrument,
		TotalScore:     score.TotalScore,
		Severity:       score.Severity,
		Interpretation: score.Interpretation,
		Gender:         score.Gender,
	}
	if len(score.Scales) > 0 {
		if res.Scales, err = json.Marshal(score.Scales); err != nil {
			return nil, fmt.Errorf("encoding scales: %w", err)
		}
	}
	if len(score.GlobalIndices) > 0 {
		if res.GlobalIndices, err = json.Marshal(score.GlobalIndices); err != nil {
			return nil, fmt.Errorf("encoding global indices: %w", err)
		}
	}
	if res.RawResponses, err = json.Marshal(sub); err != nil {
		return nil, fmt.Errorf("encoding responses: %w", err)
	}

	if err := s.repo.CreateResult(ctx, res); err != nil {
		return nil, fmt.Errorf("storing result: %w", err)
	}

	now := time.Now()
	a.Status = StatusCompleted
	a.CompletedAt = &now
	if err := s.repo.UpdateAssignment(ctx, a); err != nil {
		return nil, fmt.Errorf("completing assignment: %w", err)
	}

	s.broadcast(ctx, "assessment.completed", res)
	return res, nil
}

func (s *Service) GetResult(ctx context.Context, id uuid.UUID) (*Result, error) {
	return s.repo.GetResult(ctx, id)
}

func (s *Service) ListResults(ctx context.Context, clientID uuid.UUID, limit, offset int) ([]*Result, int, error) {
	return s.repo.ListResultsByClient(ctx, clientID, limit, offset)
}

// ExportCSV writes every stored result to w, one row per result, oldest
// first.
func (s *Service) ExportCSV(ctx context.Context, w io.Writer) error {
	results, err := s.repo.ListAllResults(ctx)
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	header := []string{"scored_at", "client_id", "instrument", "total_score", "severity", "interpretation", "global_indices"}
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, res := range results {
		total := ""
		if res.TotalScore != nil {
			total = strconv.Itoa(*res.TotalScore)
		}
		row := []string{
			res.ScoredAt.Format("2006-01-02 15:04"),
			res.ClientID.String(),
			string(res.Instrument),
			total,
			res.Severity,
			res.Interpretation,
			formatIndices(res.GlobalIndices),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// GenerateAIAnalysis drafts an analysis for a stored result and saves the
// text on it. The optional notes are passed through to the model verbatim.
func (s *Service) GenerateAIAnalysis(ctx context.Context, resultID uuid.UUID, notes string) (*Result, error) {
	if s.ai == nil || !s.ai.Enabled() {
		return nil, aireport.ErrDisabled
	}

	res, err := s.repo.GetResult(ctx, resultID)
	if err != nil {
		return nil, err
	}

	clientName := ""
	if s.names != nil {
		if name, err := s.names.ClientName(ctx, res.ClientID); err == nil {
			clientName = name
		}
	}
	testName := string(res.Instrument)
	if def, err := s.registry.Get(res.Instrument); err == nil {
		testName = def.Name
	}

	text, err := s.ai.Generate(ctx, aireport.ReportRequest{
		ClientName: clientName,
		TestName:   testName,
		Findings:   findings(res),
		Notes:      notes,
	})
	if err != nil {
		return nil, err
	}

	res.AIAnalysis = &text
	if err := s.repo.UpdateResult(ctx, res); err != nil {
		return nil, fmt.Errorf("storing analysis: %w", err)
	}
	return res, nil
}

// findings renders the stored result as the Turkish bullet text the AI
// prompt is built from.
func findings(res *Result) string {
	var b strings.Builder
	if res.TotalScore != nil {
		fmt.Fprintf(&b, "Toplam puan: %d\n", *res.TotalScore)
	}
	if res.Severity != "" {
		fmt.Fprintf(&b, "Şiddet düzeyi: %s\n", res.Severity)
	}
	if res.Interpretation != "" {
		fmt.Fprintf(&b, "Yorum: %s\n", res.Interpretation)
	}

	if len(res.Scales) > 0 {
		var scales map[string]scoring.ScaleResult
		if err := json.Unmarshal(res.Scales, &scales); err == nil && len(scales) > 0 {
			b.WriteString("Alt ölçekler:\n")
			keys := make([]string, 0, len(scales))
			for k := range scales {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			for _, k := range keys {
				sc := scales[k]
				fmt.Fprintf(&b, "- %s: %d puan, ortalama %s", sc.Name, sc.Score, scoring.FormatAverage(sc.Average))
				if sc.Severity != "" {
					fmt.Fprintf(&b, " (%s)", sc.Severity)
				}
				b.WriteString("\n")
			}
		}
	}

	if len(res.GlobalIndices) > 0 {
		var indices map[string]float64
		if err := json.Unmarshal(res.GlobalIndices, &indices); err == nil && len(indices) > 0 {
			b.WriteString("Genel indeksler:\n")
			keys := make([]string, 0, len(indices))
			for k := range indices {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			for _, k := range keys {
				fmt.Fprintf(&b, "- %s: %s\n", k, scoring.FormatAverage(indices[k]))
			}
		}
	}
	return b.String()
}

func formatIndices(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var indices map[string]float64
	if err := json.Unmarshal(raw, &indices); err != nil {
		return ""
	}
	keys := make([]string, 0, len(indices))
	for k := range indices {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+"="+scoring.FormatAverage(indices[k]))
	}
	return strings.Join(parts, " ")
}

func (s *Service) broadcast(ctx context.Context, eventType string, res *Result) {
	if s.publisher == nil {
		return
	}
	data, err := json.Marshal(res)
	if err != nil {
		return
	}
	_ = s.publisher.Publish(ctx, websocket.NewEvent(eventType, websocket.TopicAssessments, "assessment_result", res.ID.String(), data))
}
