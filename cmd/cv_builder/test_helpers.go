package main

import (
	"os"
	"path/filepath"
	"testing"
)

// getBinaryPath returns the path to the cv_builder binary for testing
func getBinaryPath(t *testing.T) string {
	binaryName := "cv_builder"
	if testing.Short() {
		t.Skip("Skipping CLI tests in short mode")
	}

	binaryPath, err := filepath.Abs(filepath.Join("..", "..", "bin", binaryName))
	if err != nil {
		t.Fatalf("failed to resolve binary path: %v", err)
	}
	if _, err := os.Stat(binaryPath); os.IsNotExist(err) {
		t.Skipf("Binary not found at %s, build it first with 'mage build'", binaryPath)
	}

	return binaryPath
}

// writeCV writes a CV text file into a fresh temp dir and returns its path.
func writeCV(t *testing.T, content string) string {
	path := filepath.Join(t.TempDir(), "CV_DATA.txt")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write CV: %v", err)
	}
	return path
}
