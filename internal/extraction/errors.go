package extraction

import (
	"errors"
	"fmt"
)

// ErrorKind classifies extraction failures.
type ErrorKind string

const (
	// KindMalformedItem means one listing item could not be turned into a record
	KindMalformedItem ErrorKind = "MalformedItem"
	// KindDocumentUnavailable means the loaded document could not be read or parsed
	KindDocumentUnavailable ErrorKind = "DocumentUnavailable"
)

// ErrLengthMismatch is returned by Pair when the two sequences differ in length.
var ErrLengthMismatch = errors.New("sequence lengths differ")

// ExtractionError reports a failure for one item (Index >= 0) or the whole document (Index < 0).
type ExtractionError struct {
	Kind    ErrorKind
	Index   int
	Message string
	Cause   error
}

func (e *ExtractionError) Error() string {
	where := "document"
	if e.Index >= 0 {
		where = fmt.Sprintf("item %d", e.Index)
	}
	if e.Cause != nil {
		return fmt.Sprintf("extraction error: %s at %s: %s: %v", e.Kind, where, e.Message, e.Cause)
	}
	return fmt.Sprintf("extraction error: %s at %s: %s", e.Kind, where, e.Message)
}

func (e *ExtractionError) Unwrap() error {
	return e.Cause
}

func malformed(index int, message string, cause error) *ExtractionError {
	return &ExtractionError{Kind: KindMalformedItem, Index: index, Message: message, Cause: cause}
}
