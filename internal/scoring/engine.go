package scoring

import (
	"math"
	"strconv"
)

// ResponseSet is the raw input of one test submission. Beck inventories use
// PositionalResponses; every other instrument uses KeyedResponses.
type ResponseSet interface {
	isResponseSet()
}

// PositionalResponses holds answers aligned positionally to the instrument's
// question order (index 0 answers question 1).
type PositionalResponses []int

func (PositionalResponses) isResponseSet() {}

// KeyedResponses maps question id to the selected option value.
type KeyedResponses map[int]int

func (KeyedResponses) isResponseSet() {}

// ScaleResult is the outcome for one sub-scale.
type ScaleResult struct {
	Key         string  `json:"key"`
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Score       int     `json:"score"`
	Average     float64 `json:"average"`
	Severity    string  `json:"severity,omitempty"`
}

// ScoreResult is the engine's output. It is created fresh per invocation and
// never mutated after return.
type ScoreResult struct {
	Instrument     InstrumentCode         `json:"instrument"`
	TotalScore     *int                   `json:"total_score,omitempty"`
	Severity       string                 `json:"severity,omitempty"`
	Interpretation string                 `json:"interpretation,omitempty"`
	Scales         map[string]ScaleResult `json:"scales,omitempty"`
	GlobalIndices  map[string]float64     `json:"global_indices,omitempty"`

	// MMPI placeholder payload.
	Message   string         `json:"message,omitempty"`
	Note      string         `json:"note,omitempty"`
	Gender    string         `json:"gender,omitempty"`
	Responses KeyedResponses `json:"responses,omitempty"`
}

// MMPI scoring is deliberately not implemented; the fixed placeholder below
// is surfaced instead of invented norm tables.
const (
	MMPISeverity = "Profesyonel Değerlendirme Gerekli"
	mmpiMessage  = "MMPI puanlaması profesyonel değerlendirme gerektirir"
	mmpiNote     = "Detaylı analiz için uzman psikoloğa danışınız"
)

const (
	atqClinicalInterpretation = "Yüksek puanlar klinik düzeyde depresif düşünceler gösterir"
	atqNormalInterpretation   = "Olumsuz otomatik düşünceler normal sınırlar içinde"
)

var scl90ScaleCutoffs = []Cutoff{
	{Upper: 1, Label: "Normal"},
	{Upper: 2, Label: "Hafif Düzeyde"},
	{Upper: 3, Label: "Orta Düzeyde"},
	{Upper: math.Inf(1), Label: "Şiddetli Düzeyde"},
}

var scl90GlobalCutoffs = []Cutoff{
	{Upper: 1, Label: "Normal"},
	{Upper: 2, Label: "Hafif"},
	{Upper: 3, Label: "Orta"},
	{Upper: math.Inf(1), Label: "Şiddetli"},
}

var atqCutoffs = []Cutoff{
	{Upper: 50, Label: "Düşük"},
	{Upper: 70, Label: "Orta"},
	{Upper: math.Inf(1), Label: "Klinik Düzeyde"},
}

// Engine scores response sets against the instrument registry it was built
// with. It holds no mutable state; concurrent Score calls are independent.
type Engine struct {
	registry *Registry
}

func NewEngine(registry *Registry) *Engine {
	return &Engine{registry: registry}
}

// Score computes the ScoreResult for one submission. The gender-less variant
// of ScoreWithGender; gender only matters to the MMPI placeholder.
func (e *Engine) Score(code InstrumentCode, rs ResponseSet) (*ScoreResult, error) {
	return e.ScoreWithGender(code, rs, "")
}

// ScoreWithGender validates the submission against the instrument definition
// and dispatches to the instrument's scorer. It is a pure function of its
// arguments: inputs and definitions are never mutated.
func (e *Engine) ScoreWithGender(code InstrumentCode, rs ResponseSet, gender string) (*ScoreResult, error) {
	def, err := e.registry.Get(code)
	if err != nil {
		return nil, err
	}

	switch code {
	case BeckDepression, BeckAnxiety:
		pos, ok := rs.(PositionalResponses)
		if !ok {
			return nil, &WrongResponseShapeError{Code: code, Want: "positional"}
		}
		return scoreLinearSum(def, pos)
	case SCL90:
		keyed, ok := rs.(KeyedResponses)
		if !ok {
			return nil, &WrongResponseShapeError{Code: code, Want: "keyed"}
		}
		return scoreSCL90(def, keyed)
	case OtomatikDusunceler:
		keyed, ok := rs.(KeyedResponses)
		if !ok {
			return nil, &WrongResponseShapeError{Code: code, Want: "keyed"}
		}
		return scoreOtomatikDusunceler(def, keyed)
	case MMPI:
		keyed, ok := rs.(KeyedResponses)
		if !ok {
			return nil, &WrongResponseShapeError{Code: code, Want: "keyed"}
		}
		return scoreMMPIPlaceholder(def, keyed, gender), nil
	default:
		return nil, &UnknownInstrumentError{Code: code}
	}
}

// scoreLinearSum implements the Beck inventories: plain sum of all answers,
// severity from the instrument's inclusive cutoff table. Beck submissions
// must be complete and in range.
func scoreLinearSum(def *InstrumentDefinition, responses PositionalResponses) (*ScoreResult, error) {
	if len(responses) != len(def.Questions) {
		return nil, &IncompleteResponsesError{Code: def.Code, Want: len(def.Questions), Got: len(responses)}
	}
	total := 0
	for i, v := range responses {
		q := &def.Questions[i]
		min, max := q.OptionRange()
		if v < min || v > max {
			return nil, &OutOfRangeError{Code: def.Code, QuestionID: q.ID, Value: v, Min: min, Max: max}
		}
		total += v
	}
	t := total
	return &ScoreResult{
		Instrument: def.Code,
		TotalScore: &t,
		Severity:   severityAtMost(float64(total), def.Cutoffs),
	}, nil
}

// scoreSCL90 implements the multi-scale averaging scorer. Missing answers
// are tolerated: a scale averages over present answers only and an entirely
// unanswered scale scores 0/"Normal". Global indices run over every provided
// answer, scale member or not.
func scoreSCL90(def *InstrumentDefinition, responses KeyedResponses) (*ScoreResult, error) {
	if err := validateKeyedRange(def, responses); err != nil {
		return nil, err
	}

	scales := make(map[string]ScaleResult, len(def.Scales))
	for key, sc := range def.Scales {
		sum, count := 0, 0
		for _, id := range sc.QuestionIDs {
			if v, ok := responses[id]; ok {
				sum += v
				count++
			}
		}
		avg := 0.0
		if count > 0 {
			avg = float64(sum) / float64(count)
		}
		scales[key] = ScaleResult{
			Key:      key,
			Name:     sc.Name,
			Score:    sum,
			Average:  avg,
			Severity: severityBelow(avg, scl90ScaleCutoffs),
		}
	}

	sum, positive := 0, 0
	for _, v := range responses {
		sum += v
		if v > 0 {
			positive++
		}
	}
	gsi := 0.0
	if len(responses) > 0 {
		gsi = float64(sum) / float64(len(responses))
	}
	psdi := 0.0
	if positive > 0 {
		psdi = float64(sum) / float64(positive)
	}

	// Display-scaled integer kept for compatibility with stored results.
	total := int(math.Round(gsi * 100))
	return &ScoreResult{
		Instrument: def.Code,
		TotalScore: &total,
		Severity:   severityBelow(gsi, scl90GlobalCutoffs),
		Scales:     scales,
		GlobalIndices: map[string]float64{
			"GSI":  gsi,
			"PST":  float64(positive),
			"PSDI": psdi,
		},
	}, nil
}

// scoreOtomatikDusunceler implements the multi-scale sum scorer: the total is
// the sum over every provided answer, sub-scales report sum and mean, and
// severity comes from the 50/70 inclusive cutoffs (70 is "Orta", 71 is
// "Klinik Düzeyde").
func scoreOtomatikDusunceler(def *InstrumentDefinition, responses KeyedResponses) (*ScoreResult, error) {
	if err := validateKeyedRange(def, responses); err != nil {
		return nil, err
	}

	total := 0
	for _, v := range responses {
		total += v
	}

	scales := make(map[string]ScaleResult, len(def.Scales))
	for key, sc := range def.Scales {
		sum, count := 0, 0
		for _, id := range sc.QuestionIDs {
			if v, ok := responses[id]; ok {
				sum += v
				count++
			}
		}
		avg := 0.0
		if count > 0 {
			avg = float64(sum) / float64(count)
		}
		scales[key] = ScaleResult{
			Key:         key,
			Name:        sc.Name,
			Description: sc.Description,
			Score:       sum,
			Average:     avg,
		}
	}

	severity := severityAtMost(float64(total), atqCutoffs)
	interpretation := atqNormalInterpretation
	if total > 70 {
		interpretation = atqClinicalInterpretation
	}

	t := total
	return &ScoreResult{
		Instrument:     def.Code,
		TotalScore:     &t,
		Severity:       severity,
		Interpretation: interpretation,
		Scales:         scales,
	}, nil
}

// scoreMMPIPlaceholder echoes the submission back with the fixed
// professional-evaluation payload. It never computes a numeric total.
func scoreMMPIPlaceholder(def *InstrumentDefinition, responses KeyedResponses, gender string) *ScoreResult {
	echo := make(KeyedResponses, len(responses))
	for id, v := range responses {
		echo[id] = v
	}
	return &ScoreResult{
		Instrument: def.Code,
		Severity:   MMPISeverity,
		Message:    mmpiMessage,
		Note:       mmpiNote,
		Gender:     gender,
		Responses:  echo,
	}
}

// validateKeyedRange rejects answers outside the option range of their
// question. Ids the instrument does not define are ignored, as are missing
// answers; keyed instruments tolerate incompleteness.
func validateKeyedRange(def *InstrumentDefinition, responses KeyedResponses) error {
	for id, v := range responses {
		q := def.QuestionByID(id)
		if q == nil {
			continue
		}
		min, max := q.OptionRange()
		if v < min || v > max {
			return &OutOfRangeError{Code: def.Code, QuestionID: id, Value: v, Min: min, Max: max}
		}
	}
	return nil
}

// FormatAverage renders an average or index with the two-decimal formatting
// stored results and reports use.
func FormatAverage(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
