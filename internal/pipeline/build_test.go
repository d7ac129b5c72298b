package pipeline

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jonathan/cv-builder/internal/config"
	"github.com/jonathan/cv-builder/internal/typeset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sourceCV = `Jane Doe
jane@example.com | +1 555 0100
https://github.com/jane
Engineer who builds tools.

EXPERIENCE
Senior Engineer
Acme Corp
2020 - Present
• Shipped the build system
`

// fakeCompiler writes a PDF named after the .tex file into workDir.
type fakeCompiler struct {
	err   error
	calls int
}

func (f *fakeCompiler) Compile(_ context.Context, texPath, workDir string) (*typeset.Result, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	pdf := filepath.Join(workDir, strings.TrimSuffix(filepath.Base(texPath), ".tex")+".pdf")
	if err := os.WriteFile(pdf, []byte("%PDF-1.5"), 0644); err != nil {
		return nil, err
	}
	return &typeset.Result{EnginePath: "/usr/bin/pdflatex", PDFPath: pdf}, nil
}

type fakeOpener struct {
	err    error
	opened []string
}

func (f *fakeOpener) Open(path string) error {
	f.opened = append(f.opened, path)
	return f.err
}

func pages(n int, err error) PageCounter {
	return func(context.Context, string) (int, error) { return n, err }
}

func testConfig(t *testing.T) *config.Config {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "CV_DATA.txt"), []byte(sourceCV), 0644))

	cfg := config.Defaults()
	cfg.WorkDir = dir
	cfg.TexOutput = "draft.tex"
	return &cfg
}

func TestBuild_FullRun(t *testing.T) {
	cfg := testConfig(t)
	compiler := &fakeCompiler{}
	opener := &fakeOpener{}
	var out bytes.Buffer

	report, err := Build(context.Background(), BuildOptions{
		Config:     cfg,
		Compiler:   compiler,
		Opener:     opener,
		CountPages: pages(1, nil),
		Out:        &out,
	})
	require.NoError(t, err)
	require.NotNil(t, report)

	tex, err := os.ReadFile(cfg.TexPath())
	require.NoError(t, err)
	assert.Contains(t, string(tex), `\textbf{Senior Engineer, Acme Corp}`)
	assert.True(t, strings.HasSuffix(string(tex), "\\end{document}\n"))

	assert.True(t, report.Compiled)
	assert.Equal(t, 1, report.Pages)
	assert.Equal(t, cfg.PDFPath(), report.PDFPath)
	assert.Equal(t, []string{cfg.PDFPath(), filepath.Join(cfg.WorkDir, "public", "CV.pdf")}, report.Copied)
	assert.FileExists(t, filepath.Join(cfg.WorkDir, "public", "CV.pdf"))
	assert.Equal(t, []string{cfg.PDFPath()}, opener.opened)
	assert.True(t, report.Viewed)
	assert.NotEmpty(t, report.BuildID)
	assert.Empty(t, report.Warnings)

	assert.Contains(t, out.String(), "Step 1/6")
	assert.Contains(t, out.String(), "Step 6/6")
	assert.Contains(t, out.String(), "PDF generated successfully")
}

func TestBuild_SelfCopySkipped(t *testing.T) {
	cfg := testConfig(t)
	cfg.TexOutput = "cv.tex"
	cfg.PDFOutput = "cv.pdf"
	cfg.CopyTo = nil

	report, err := Build(context.Background(), BuildOptions{
		Config:     cfg,
		Compiler:   &fakeCompiler{},
		Opener:     &fakeOpener{},
		CountPages: pages(1, nil),
		Out:        &bytes.Buffer{},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{cfg.PDFPath()}, report.Skipped)
	assert.Empty(t, report.Copied)
	assert.Equal(t, cfg.PDFPath(), report.PDFPath)
}

func TestBuild_EngineMissingKeepsTex(t *testing.T) {
	cfg := testConfig(t)
	opener := &fakeOpener{}
	var out bytes.Buffer

	report, err := Build(context.Background(), BuildOptions{
		Config:   cfg,
		Compiler: &fakeCompiler{err: &typeset.ToolMissingError{Engine: "pdflatex"}},
		Opener:   opener,
		Out:      &out,
	})
	require.Error(t, err)

	var missing *typeset.ToolMissingError
	assert.True(t, errors.As(err, &missing))
	require.NotNil(t, report)
	assert.False(t, report.Compiled)
	assert.FileExists(t, cfg.TexPath())
	assert.NoFileExists(t, filepath.Join(cfg.WorkDir, "public", "CV.pdf"))
	assert.Empty(t, opener.opened)
	assert.Contains(t, out.String(), "You can compile it manually with: pdflatex")
}

func TestBuild_CompilationFailureShowsLog(t *testing.T) {
	cfg := testConfig(t)
	var out bytes.Buffer

	_, err := Build(context.Background(), BuildOptions{
		Config: cfg,
		Compiler: &fakeCompiler{err: &typeset.CompilationError{
			Pass:            1,
			Message:         "engine exited with errors",
			LogOutput:       "! LaTeX Error: File `titlesec.sty' not found.",
			MissingPackages: true,
		}},
		Opener: &fakeOpener{},
		Out:    &out,
	})
	require.Error(t, err)

	assert.Contains(t, out.String(), "titlesec.sty")
	assert.Contains(t, out.String(), "Missing packages detected")
}

func TestBuild_PageLimitWarning(t *testing.T) {
	cfg := testConfig(t)
	cfg.MaxPages = 1
	var out bytes.Buffer

	report, err := Build(context.Background(), BuildOptions{
		Config:     cfg,
		Compiler:   &fakeCompiler{},
		Opener:     &fakeOpener{},
		CountPages: pages(3, nil),
		Out:        &out,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"document has 3 pages, limit is 1"}, report.Warnings)
	assert.Contains(t, out.String(), "Warning: document has 3 pages")
}

func TestBuild_PageCountFailure(t *testing.T) {
	countErr := &typeset.PageCountError{Message: "neither pdfinfo nor ghostscript available"}

	t.Run("no limit", func(t *testing.T) {
		report, err := Build(context.Background(), BuildOptions{
			Config:     testConfig(t),
			Compiler:   &fakeCompiler{},
			Opener:     &fakeOpener{},
			CountPages: pages(0, countErr),
			Out:        &bytes.Buffer{},
		})
		require.NoError(t, err)
		assert.Empty(t, report.Warnings)
		assert.Zero(t, report.Pages)
	})

	t.Run("with limit", func(t *testing.T) {
		cfg := testConfig(t)
		cfg.MaxPages = 2
		report, err := Build(context.Background(), BuildOptions{
			Config:     cfg,
			Compiler:   &fakeCompiler{},
			Opener:     &fakeOpener{},
			CountPages: pages(0, countErr),
			Out:        &bytes.Buffer{},
		})
		require.NoError(t, err)
		require.Len(t, report.Warnings, 1)
		assert.Contains(t, report.Warnings[0], "could not check page limit")
	})
}

func TestBuild_ViewerFailureIsNotFatal(t *testing.T) {
	var out bytes.Buffer

	report, err := Build(context.Background(), BuildOptions{
		Config:     testConfig(t),
		Compiler:   &fakeCompiler{},
		Opener:     &fakeOpener{err: errors.New("no display")},
		CountPages: pages(1, nil),
		Out:        &out,
	})
	require.NoError(t, err)
	assert.False(t, report.Viewed)
	assert.Contains(t, out.String(), "Could not open PDF: no display")
}

func TestBuild_ViewerDisabled(t *testing.T) {
	cfg := testConfig(t)
	cfg.OpenViewer = false
	opener := &fakeOpener{}

	_, err := Build(context.Background(), BuildOptions{
		Config:     cfg,
		Compiler:   &fakeCompiler{},
		Opener:     opener,
		CountPages: pages(1, nil),
		Out:        &bytes.Buffer{},
	})
	require.NoError(t, err)
	assert.Empty(t, opener.opened)
}

func TestBuild_CopyFailureReported(t *testing.T) {
	cfg := testConfig(t)
	blocker := filepath.Join(cfg.WorkDir, "blocker")
	require.NoError(t, os.WriteFile(blocker, nil, 0644))
	cfg.CopyTo = []string{filepath.Join("blocker", "CV.pdf")}
	opener := &fakeOpener{}

	report, err := Build(context.Background(), BuildOptions{
		Config:     cfg,
		Compiler:   &fakeCompiler{},
		Opener:     opener,
		CountPages: pages(1, nil),
		Out:        &bytes.Buffer{},
	})
	require.Error(t, err)
	assert.Equal(t, []string{cfg.PDFPath()}, report.Copied)
	assert.Empty(t, opener.opened)
}

func TestBuild_MissingInput(t *testing.T) {
	cfg := config.Defaults()
	cfg.WorkDir = t.TempDir()
	compiler := &fakeCompiler{}

	report, err := Build(context.Background(), BuildOptions{
		Config:   &cfg,
		Compiler: compiler,
		Opener:   &fakeOpener{},
		Out:      &bytes.Buffer{},
	})
	require.Error(t, err)
	assert.Nil(t, report)
	assert.True(t, errors.Is(err, os.ErrNotExist))
	assert.Zero(t, compiler.calls)
}

func TestBuild_ProgressEvents(t *testing.T) {
	var events []ProgressEvent

	report, err := Build(context.Background(), BuildOptions{
		Config:     testConfig(t),
		Compiler:   &fakeCompiler{},
		Opener:     &fakeOpener{},
		CountPages: pages(1, nil),
		Out:        &bytes.Buffer{},
		OnProgress: func(e ProgressEvent) { events = append(events, e) },
	})
	require.NoError(t, err)

	steps := make([]string, 0, len(events))
	for _, e := range events {
		steps = append(steps, e.Step)
		assert.Equal(t, report.BuildID, e.BuildID)
	}
	assert.Equal(t, []string{"parse", "render", "compile", "pages", "place", "open"}, steps)
}

func TestBuild_VerboseSummaries(t *testing.T) {
	cfg := testConfig(t)
	cfg.Verbose = true
	var out bytes.Buffer

	_, err := Build(context.Background(), BuildOptions{
		Config:     cfg,
		Compiler:   &fakeCompiler{},
		Opener:     &fakeOpener{},
		CountPages: pages(1, nil),
		Out:        &out,
	})
	require.NoError(t, err)
	assert.Contains(t, out.String(), "PARSED CV")
	assert.Contains(t, out.String(), "BUILD RESULT")
	assert.Contains(t, out.String(), "NO WARNINGS")
}
