package loading

import "fmt"

// ErrorKind classifies content loading failures.
type ErrorKind string

const (
	// KindExhausted means the iteration cap was hit while the page kept growing
	KindExhausted ErrorKind = "Exhausted"
	// KindEvaluationFailed means the page could not be measured or scrolled
	KindEvaluationFailed ErrorKind = "EvaluationFailed"
)

// ContentLoadError is returned when the listing cannot be fully loaded.
type ContentLoadError struct {
	Kind    ErrorKind
	Message string
	Cause   error
}

func (e *ContentLoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("content load error: %s: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("content load error: %s: %s", e.Kind, e.Message)
}

func (e *ContentLoadError) Unwrap() error {
	return e.Cause
}
