package scoring

import "fmt"

// UnknownInstrumentError is returned when no definition exists for the
// requested instrument code.
type UnknownInstrumentError struct {
	Code InstrumentCode
}

func (e *UnknownInstrumentError) Error() string {
	return fmt.Sprintf("unknown instrument code %q", e.Code)
}

// IncompleteResponsesError is returned when a submission does not answer
// every question of an instrument that requires complete answers.
type IncompleteResponsesError struct {
	Code    InstrumentCode
	Want    int
	Got     int
	Missing []int
}

func (e *IncompleteResponsesError) Error() string {
	if len(e.Missing) > 0 {
		return fmt.Sprintf("instrument %s: incomplete responses, missing questions %v", e.Code, e.Missing)
	}
	return fmt.Sprintf("instrument %s: incomplete responses, got %d of %d", e.Code, e.Got, e.Want)
}

// OutOfRangeError is returned when an answer value is not one the question's
// options allow.
type OutOfRangeError struct {
	Code       InstrumentCode
	QuestionID int
	Value      int
	Min, Max   int
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("instrument %s: question %d value %d out of range [%d,%d]",
		e.Code, e.QuestionID, e.Value, e.Min, e.Max)
}

// WrongResponseShapeError is returned when the response variant does not
// match the instrument (e.g. keyed answers for a Beck inventory).
type WrongResponseShapeError struct {
	Code InstrumentCode
	Want string
}

func (e *WrongResponseShapeError) Error() string {
	return fmt.Sprintf("instrument %s expects %s responses", e.Code, e.Want)
}
