package main

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildCommand_MissingInput(t *testing.T) {
	binaryPath := getBinaryPath(t)
	dir := t.TempDir()

	cmd := exec.Command(binaryPath, "build", "--work-dir", dir, "--no-open")
	cmd.Dir = dir
	output, err := cmd.CombinedOutput()

	assert.Error(t, err)
	assert.Contains(t, string(output), "input file not found")
}

func TestBuildCommand_EngineMissingWritesTex(t *testing.T) {
	binaryPath := getBinaryPath(t)
	input := writeCV(t, sampleCV)
	dir := filepath.Dir(input)

	cmd := exec.Command(binaryPath, "build", "--work-dir", dir, "--engine", "no-such-latex-engine", "--no-open")
	cmd.Dir = dir
	output, err := cmd.CombinedOutput()

	assert.Error(t, err)
	assert.Contains(t, string(output), "LaTeX file generated")
	assert.Contains(t, string(output), "You can compile it manually with: no-such-latex-engine")
	assert.FileExists(t, filepath.Join(dir, "cv.tex"))
	assert.NoFileExists(t, filepath.Join(dir, "public", "CV.pdf"))
}

func TestBuildCommand_ConfigFile(t *testing.T) {
	binaryPath := getBinaryPath(t)
	input := writeCV(t, sampleCV)
	dir := filepath.Dir(input)
	cfgPath := filepath.Join(dir, "cv_builder.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("tex_output: build/resume.tex\nengine: no-such-latex-engine\nopen_viewer: false\n"), 0644))

	cmd := exec.Command(binaryPath, "build", "--config", cfgPath, "--work-dir", dir)
	cmd.Dir = dir
	output, err := cmd.CombinedOutput()

	assert.Error(t, err)
	assert.Contains(t, string(output), "no-such-latex-engine")
	assert.FileExists(t, filepath.Join(dir, "build", "resume.tex"))
}

func TestBuildCommand_RejectsArgs(t *testing.T) {
	binaryPath := getBinaryPath(t)

	cmd := exec.Command(binaryPath, "build", "extra")
	output, err := cmd.CombinedOutput()

	assert.Error(t, err)
	assert.Contains(t, string(output), "unknown command")
}
