package typeset

import "fmt"

// ToolMissingError means the typesetting engine could not be located
type ToolMissingError struct {
	Engine string
	Cause  error
}

func (e *ToolMissingError) Error() string {
	msg := fmt.Sprintf("%s not found. Please install a LaTeX distribution (e.g., TeX Live, MiKTeX)", e.Engine)
	if e.Cause != nil {
		return fmt.Sprintf("typeset error: %s: %v", msg, e.Cause)
	}
	return fmt.Sprintf("typeset error: %s", msg)
}

func (e *ToolMissingError) Unwrap() error {
	return e.Cause
}

// CompilationError represents a failed or timed-out engine pass
type CompilationError struct {
	Pass      int
	Message   string
	LogOutput string
	TimedOut  bool
	// MissingPackages is set when the first pass output hints at packages the
	// distribution still has to install.
	MissingPackages bool
	Cause           error
}

func (e *CompilationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("LaTeX compilation error (pass %d): %s: %v", e.Pass, e.Message, e.Cause)
	}
	return fmt.Sprintf("LaTeX compilation error (pass %d): %s", e.Pass, e.Message)
}

func (e *CompilationError) Unwrap() error {
	return e.Cause
}

// PageCountError represents a failure to count the pages of a PDF
type PageCountError struct {
	Message string
	Cause   error
}

func (e *PageCountError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("page count error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("page count error: %s", e.Message)
}

func (e *PageCountError) Unwrap() error {
	return e.Cause
}
