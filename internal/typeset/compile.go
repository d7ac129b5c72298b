// Package typeset runs the LaTeX engine over rendered documents.
package typeset

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"time"
)

const (
	// DefaultEngine is the engine binary looked up on PATH
	DefaultEngine = "pdflatex"
	// DefaultFirstPassTimeout leaves room for on-the-fly package installation
	DefaultFirstPassTimeout = 120 * time.Second
	// DefaultSecondPassTimeout bounds the reference-resolution pass
	DefaultSecondPassTimeout = 60 * time.Second
)

// auxExtensions are removed from the work directory after compilation.
var auxExtensions = []string{".aux", ".log", ".out"}

// Runner abstracts process execution for testing.
type Runner interface {
	LookPath(file string) (string, error)
	// Run executes name in dir and returns stdout followed by stderr.
	Run(ctx context.Context, dir, name string, args ...string) (string, error)
}

// ExecRunner is the production Runner backed by os/exec.
type ExecRunner struct{}

// LookPath implements Runner.
func (ExecRunner) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

// Run implements Runner.
func (ExecRunner) Run(ctx context.Context, dir, name string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir

	var stdout, stderr strings.Builder
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	return stdout.String() + stderr.String(), err
}

// Result describes a successful compilation.
type Result struct {
	EnginePath string
	PDFPath    string
	// Log is the combined output of the second pass.
	Log string
}

// Compiler runs a LaTeX engine twice: once to resolve packages, once to
// resolve references.
type Compiler struct {
	Engine            string
	FirstPassTimeout  time.Duration
	SecondPassTimeout time.Duration

	runner        Runner
	fallbackPaths func() []string
}

// NewCompiler returns a Compiler for engine with the given pass timeouts.
// Zero values fall back to the defaults.
func NewCompiler(engine string, firstPass, secondPass time.Duration) *Compiler {
	if engine == "" {
		engine = DefaultEngine
	}
	if firstPass <= 0 {
		firstPass = DefaultFirstPassTimeout
	}
	if secondPass <= 0 {
		secondPass = DefaultSecondPassTimeout
	}
	return &Compiler{
		Engine:            engine,
		FirstPassTimeout:  firstPass,
		SecondPassTimeout: secondPass,
		runner:            ExecRunner{},
		fallbackPaths:     installPaths,
	}
}

// WithRunner swaps the process runner.
func (c *Compiler) WithRunner(r Runner) *Compiler {
	c.runner = r
	return c
}

// Locate returns the path of the engine executable: PATH first, then the
// usual install locations of the platform's TeX distribution.
func (c *Compiler) Locate() (string, error) {
	path, err := c.runner.LookPath(c.Engine)
	if err == nil {
		return path, nil
	}

	if c.fallbackPaths != nil {
		for _, candidate := range c.fallbackPaths() {
			if _, statErr := os.Stat(candidate); statErr == nil {
				return candidate, nil
			}
		}
	}
	return "", &ToolMissingError{Engine: c.Engine, Cause: err}
}

// installPaths lists MiKTeX install locations on Windows.
func installPaths() []string {
	if runtime.GOOS != "windows" {
		return nil
	}
	var paths []string
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, `AppData\Local\Programs\MiKTeX\miktex\bin\x64\pdflatex.exe`))
	}
	return append(paths,
		`C:\Program Files\MiKTeX\miktex\bin\x64\pdflatex.exe`,
		`C:\Program Files (x86)\MiKTeX\miktex\bin\x64\pdflatex.exe`,
	)
}

// Compile typesets texPath into workDir (the .tex file's directory when empty)
// and returns the produced PDF.
func (c *Compiler) Compile(ctx context.Context, texPath, workDir string) (*Result, error) {
	enginePath, err := c.Locate()
	if err != nil {
		return nil, err
	}
	log.Printf("[typeset] Using %s at %s", c.Engine, enginePath)

	if workDir == "" {
		workDir = filepath.Dir(texPath)
	}
	// The engine runs inside workDir, so relative paths would resolve twice.
	if abs, err := filepath.Abs(workDir); err == nil {
		workDir = abs
	}
	if abs, err := filepath.Abs(texPath); err == nil {
		texPath = abs
	}
	if err := os.MkdirAll(workDir, 0755); err != nil {
		return nil, &CompilationError{
			Message: fmt.Sprintf("failed to create working directory: %s", workDir),
			Cause:   err,
		}
	}
	defer CleanupAuxFiles(texPath, workDir)

	log.Printf("[typeset] Compiling LaTeX (first pass - may install packages)...")
	if _, err := c.pass(ctx, 1, c.FirstPassTimeout, enginePath, texPath, workDir); err != nil {
		return nil, err
	}

	log.Printf("[typeset] Compiling LaTeX (second pass - resolving references)...")
	out, err := c.pass(ctx, 2, c.SecondPassTimeout, enginePath, texPath, workDir)
	if err != nil {
		return nil, err
	}

	pdfPath := filepath.Join(workDir, strings.TrimSuffix(filepath.Base(texPath), filepath.Ext(texPath))+".pdf")
	if _, err := os.Stat(pdfPath); err != nil {
		return nil, &CompilationError{
			Pass:      2,
			Message:   "PDF was not generated",
			LogOutput: out,
			Cause:     err,
		}
	}

	return &Result{EnginePath: enginePath, PDFPath: pdfPath, Log: out}, nil
}

func (c *Compiler) pass(ctx context.Context, n int, timeout time.Duration, enginePath, texPath, workDir string) (string, error) {
	passCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	out, err := c.runner.Run(passCtx, workDir, enginePath,
		"-interaction=nonstopmode", "-output-directory", workDir, texPath)

	if errors.Is(passCtx.Err(), context.DeadlineExceeded) {
		return out, &CompilationError{
			Pass:      n,
			Message:   fmt.Sprintf("timed out after %s", timeout),
			LogOutput: out,
			TimedOut:  true,
			Cause:     passCtx.Err(),
		}
	}
	if err != nil {
		return out, &CompilationError{
			Pass:            n,
			Message:         "engine exited with errors",
			LogOutput:       out,
			MissingPackages: n == 1 && mentionsMissingPackages(out),
			Cause:           err,
		}
	}
	return out, nil
}

func mentionsMissingPackages(output string) bool {
	lower := strings.ToLower(output)
	return strings.Contains(lower, "package") ||
		strings.Contains(lower, "not found") ||
		strings.Contains(lower, "missing")
}

// CleanupAuxFiles removes the auxiliary files the engine leaves next to the PDF.
func CleanupAuxFiles(texPath, workDir string) {
	base := strings.TrimSuffix(filepath.Base(texPath), filepath.Ext(texPath))
	for _, ext := range auxExtensions {
		_ = os.Remove(filepath.Join(workDir, base+ext)) // Ignore errors for missing files
	}
}
