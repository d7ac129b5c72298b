// Package artifact copies build outputs to their published locations.
package artifact

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Placement records what happened for one target.
type Placement struct {
	Target string
	// Skipped is set when the target already is the source file, for example
	// "CV.pdf" next to "cv.pdf" on a case-insensitive filesystem.
	Skipped bool
}

// CopyError represents a failure to place an artifact at a target
type CopyError struct {
	Target string
	Cause  error
}

func (e *CopyError) Error() string {
	return fmt.Sprintf("failed to copy artifact to %s: %v", e.Target, e.Cause)
}

func (e *CopyError) Unwrap() error {
	return e.Cause
}

// Place copies src to every target, creating parent directories as needed.
// All targets are attempted; failures are joined into the returned error.
func Place(src string, targets ...string) ([]Placement, error) {
	srcInfo, err := os.Stat(src)
	if err != nil {
		return nil, fmt.Errorf("artifact not found: %w", err)
	}

	placements := make([]Placement, 0, len(targets))
	var errs []error
	for _, target := range targets {
		if isSameFile(srcInfo, target) {
			placements = append(placements, Placement{Target: target, Skipped: true})
			continue
		}
		if err := copyFile(src, target); err != nil {
			errs = append(errs, &CopyError{Target: target, Cause: err})
			continue
		}
		placements = append(placements, Placement{Target: target})
	}
	return placements, errors.Join(errs...)
}

func isSameFile(srcInfo os.FileInfo, target string) bool {
	targetInfo, err := os.Stat(target)
	if err != nil {
		return false
	}
	return os.SameFile(srcInfo, targetInfo)
}

func copyFile(src, dst string) error {
	if dir := filepath.Dir(dst); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}

	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}
