package rendering

import "fmt"

// SourceError represents a failure to read the CV source file
type SourceError struct {
	Message string
	Cause   error
}

func (e *SourceError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("source error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("source error: %s", e.Message)
}

func (e *SourceError) Unwrap() error {
	return e.Cause
}
