package output

import "fmt"

// PersistenceError is returned when solutions cannot be written to disk.
type PersistenceError struct {
	Path    string
	Message string
	Cause   error
}

func (e *PersistenceError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("persistence error for %s: %s: %v", e.Path, e.Message, e.Cause)
	}
	return fmt.Sprintf("persistence error for %s: %s", e.Path, e.Message)
}

func (e *PersistenceError) Unwrap() error {
	return e.Cause
}
