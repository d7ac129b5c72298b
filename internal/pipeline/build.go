// Package pipeline provides the high-level orchestration for turning a CV text
// file into a typeset PDF.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/cv-builder/internal/artifact"
	"github.com/jonathan/cv-builder/internal/config"
	"github.com/jonathan/cv-builder/internal/observability"
	"github.com/jonathan/cv-builder/internal/parsing"
	"github.com/jonathan/cv-builder/internal/rendering"
	"github.com/jonathan/cv-builder/internal/typeset"
	"github.com/jonathan/cv-builder/internal/types"
	"github.com/jonathan/cv-builder/internal/viewer"
)

// totalSteps is the number of numbered progress lines a full build prints.
const totalSteps = 6

// ProgressEvent represents a progress update during a build
type ProgressEvent struct {
	Step    string `json:"step"`
	Message string `json:"message"`
	BuildID string `json:"build_id,omitempty"`
}

// ProgressCallback is called when build progress occurs
type ProgressCallback func(event ProgressEvent)

// Compiler turns a .tex file into a PDF.
type Compiler interface {
	Compile(ctx context.Context, texPath, workDir string) (*typeset.Result, error)
}

// Opener shows a file to the user.
type Opener interface {
	Open(path string) error
}

// PageCounter reports the number of pages in a PDF.
type PageCounter func(ctx context.Context, pdfPath string) (int, error)

// BuildOptions holds configuration for running a build
type BuildOptions struct {
	Config *config.Config

	// Optional collaborators; nil selects the real implementation.
	Compiler   Compiler
	Opener     Opener
	CountPages PageCounter

	Out        io.Writer // step output, os.Stdout when nil
	OnProgress ProgressCallback
}

// Build parses the configured input, writes the LaTeX source, compiles it,
// copies the PDF to its destinations and opens it. The returned report is
// non-nil whenever the .tex file was written, even if a later step failed.
func Build(ctx context.Context, opts BuildOptions) (*types.BuildReport, error) {
	cfg := opts.Config
	if cfg == nil {
		d := config.Defaults()
		cfg = &d
	}
	b := newBuilder(cfg, opts)

	report, err := b.run(ctx)
	if report != nil {
		report.Duration = time.Since(b.started)
	}
	return report, err
}

type builder struct {
	cfg     *config.Config
	opts    BuildOptions
	out     io.Writer
	printer *observability.Printer
	id      string
	started time.Time
}

func newBuilder(cfg *config.Config, opts BuildOptions) *builder {
	out := opts.Out
	if out == nil {
		out = os.Stdout
	}
	if opts.Compiler == nil {
		opts.Compiler = typeset.NewCompiler(cfg.Engine, cfg.FirstPassTimeout, cfg.SecondPassTimeout)
	}
	if opts.Opener == nil {
		opts.Opener = viewer.New()
	}
	if opts.CountPages == nil {
		opts.CountPages = func(ctx context.Context, pdfPath string) (int, error) {
			return typeset.CountPages(ctx, typeset.ExecRunner{}, pdfPath)
		}
	}
	return &builder{
		cfg:     cfg,
		opts:    opts,
		out:     out,
		printer: observability.NewPrinter(out),
		id:      uuid.New().String(),
		started: time.Now(),
	}
}

// step prints a numbered progress line and emits the matching event.
//
//nolint:errcheck // writing progress output; errors are not recoverable
func (b *builder) step(n int, name, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintf(b.out, "Step %d/%d: %s\n", n, totalSteps, msg)
	if b.opts.OnProgress != nil {
		b.opts.OnProgress(ProgressEvent{Step: name, Message: msg, BuildID: b.id})
	}
}

//nolint:errcheck // writing progress output; errors are not recoverable
func (b *builder) printf(format string, args ...any) {
	fmt.Fprintf(b.out, format, args...)
}

func (b *builder) run(ctx context.Context) (*types.BuildReport, error) {
	cfg := b.cfg
	report := &types.BuildReport{
		BuildID:   b.id,
		InputPath: cfg.InputPath(),
		TexPath:   cfg.TexPath(),
	}

	b.step(1, "parse", "Parsing %s...", report.InputPath)
	data, err := os.ReadFile(report.InputPath)
	if err != nil {
		return nil, &rendering.SourceError{Message: fmt.Sprintf("failed to read %s", report.InputPath), Cause: err}
	}
	header, sections := parsing.ParseRecord(string(data))
	if cfg.Verbose {
		doc := parsing.BuildDocument(header, sections)
		b.printer.PrintDocument(&doc)
	}

	b.step(2, "render", "Rendering LaTeX to %s...", report.TexPath)
	latex := rendering.RenderDocument(header, sections)
	if err := writeFile(report.TexPath, latex); err != nil {
		return nil, fmt.Errorf("failed to write LaTeX file: %w", err)
	}
	b.printf("LaTeX file generated: %s\n", report.TexPath)

	b.step(3, "compile", "Compiling with %s...", cfg.Engine)
	result, err := b.opts.Compiler.Compile(ctx, report.TexPath, cfg.WorkDir)
	if err != nil {
		b.explainCompileFailure(err)
		return report, err
	}
	report.Compiled = true
	report.EnginePath = result.EnginePath

	b.step(4, "pages", "Counting pages...")
	b.checkPages(ctx, report, result.PDFPath)

	b.step(5, "place", "Copying %s...", filepath.Base(result.PDFPath))
	targets := append([]string{cfg.PDFPath()}, cfg.CopyTargets()...)
	placements, placeErr := artifact.Place(result.PDFPath, targets...)
	for _, p := range placements {
		if p.Skipped {
			report.Skipped = append(report.Skipped, p.Target)
		} else {
			report.Copied = append(report.Copied, p.Target)
			b.printf("Copied to %s\n", p.Target)
		}
	}
	report.PDFPath = result.PDFPath
	if placed(placements, cfg.PDFPath()) {
		report.PDFPath = cfg.PDFPath()
	}
	if placeErr != nil {
		return report, placeErr
	}
	b.printf("PDF generated successfully: %s\n", report.PDFPath)

	if cfg.OpenViewer {
		b.step(6, "open", "Opening %s...", report.PDFPath)
		if err := b.opts.Opener.Open(report.PDFPath); err != nil {
			b.printf("Could not open PDF: %v\n", err)
		} else {
			report.Viewed = true
		}
	} else {
		b.step(6, "open", "Viewer disabled, skipping")
	}

	if cfg.Verbose {
		report.Duration = time.Since(b.started)
		b.printer.PrintBuildReport(report)
		b.printer.PrintWarnings(report.Warnings)
	}
	return report, nil
}

// checkPages records the page count and warns when it exceeds max_pages.
// Counting is advisory, so tool failures only become warnings when a limit
// is configured.
func (b *builder) checkPages(ctx context.Context, report *types.BuildReport, pdfPath string) {
	pages, err := b.opts.CountPages(ctx, pdfPath)
	if err != nil {
		if b.cfg.MaxPages > 0 {
			report.Warnings = append(report.Warnings, fmt.Sprintf("could not check page limit: %v", err))
		}
		return
	}
	report.Pages = pages
	if b.cfg.MaxPages > 0 && pages > b.cfg.MaxPages {
		w := fmt.Sprintf("document has %d pages, limit is %d", pages, b.cfg.MaxPages)
		report.Warnings = append(report.Warnings, w)
		b.printf("⚠️ Warning: %s\n", w)
	}
}

//nolint:errcheck // writing progress output; errors are not recoverable
func (b *builder) explainCompileFailure(err error) {
	var missing *typeset.ToolMissingError
	var failed *typeset.CompilationError

	switch {
	case errors.As(err, &missing):
		fmt.Fprintf(b.out, "\nNote: %s is not installed. The LaTeX file (%s) has been generated.\n", missing.Engine, b.cfg.TexPath())
		fmt.Fprintf(b.out, "You can compile it manually with: %s %s\n", missing.Engine, b.cfg.TexPath())
		fmt.Fprintf(b.out, "  Windows: https://miktex.org/download\n")
		fmt.Fprintf(b.out, "  macOS:   https://www.tug.org/mactex/\n")
		fmt.Fprintf(b.out, "  Linux:   sudo apt-get install texlive-full\n")

	case errors.As(err, &failed):
		if failed.LogOutput != "" {
			fmt.Fprintf(b.out, "\nFull LaTeX output:\n%s\n%s\n%s\n", rule, failed.LogOutput, rule)
		}
		if failed.MissingPackages {
			fmt.Fprintf(b.out, "\n⚠️ Missing packages detected!\n")
			fmt.Fprintf(b.out, "Run the engine once interactively so it can install them:\n")
			fmt.Fprintf(b.out, "  %s %s\n", b.cfg.Engine, b.cfg.TexPath())
		}
	}
}

const rule = "============================================================"

func placed(placements []artifact.Placement, target string) bool {
	for _, p := range placements {
		if p.Target == target {
			return true
		}
	}
	return false
}

func writeFile(path, content string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, []byte(content), 0644)
}
