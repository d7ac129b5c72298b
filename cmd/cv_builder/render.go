package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/cv-builder/internal/rendering"
)

var renderCmd = &cobra.Command{
	Use:   "render [CV text file]...",
	Short: "Render CV text files to LaTeX without compiling",
	Long: `Renders each CV text file to a .tex file next to it (or into --out-dir).
Several files are rendered concurrently. Without arguments the configured input
is rendered to the configured LaTeX output.`,
	RunE: runRender,
}

var (
	renderOutDir string
	renderJobs   int
	renderStdout bool
)

func init() {
	renderCmd.Flags().StringVarP(&renderOutDir, "out-dir", "d", "", "Directory for generated .tex files (default: next to each input)")
	renderCmd.Flags().IntVarP(&renderJobs, "jobs", "j", runtime.NumCPU(), "Maximum number of files rendered at once")
	renderCmd.Flags().BoolVar(&renderStdout, "stdout", false, "Write LaTeX to stdout instead of a file (single input only)")

	rootCmd.AddCommand(renderCmd)
}

// renderJob pairs an input file with its LaTeX destination.
type renderJob struct {
	input  string
	output string
}

func runRender(cmd *cobra.Command, args []string) error {
	jobs, err := renderJobsFor(cmd, args)
	if err != nil {
		return err
	}

	if renderStdout {
		if len(jobs) != 1 {
			return fmt.Errorf("--stdout requires exactly one input file")
		}
		latex, err := rendering.RenderFile(jobs[0].input)
		if err != nil {
			return err
		}
		_, _ = fmt.Fprint(os.Stdout, latex)
		return nil
	}

	if err := renderAll(cmd.Context(), jobs, renderJobs); err != nil {
		return err
	}
	for _, j := range jobs {
		_, _ = fmt.Fprintf(os.Stdout, "LaTeX file generated: %s\n", j.output)
	}
	return nil
}

func renderJobsFor(cmd *cobra.Command, args []string) ([]renderJob, error) {
	if len(args) == 0 {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return nil, err
		}
		return []renderJob{{input: cfg.InputPath(), output: cfg.TexPath()}}, nil
	}

	jobs := make([]renderJob, 0, len(args))
	seen := make(map[string]string, len(args))
	for _, input := range args {
		output := texPathFor(input, renderOutDir)
		if prev, ok := seen[output]; ok {
			return nil, fmt.Errorf("%s and %s would both be written to %s", prev, input, output)
		}
		seen[output] = input
		jobs = append(jobs, renderJob{input: input, output: output})
	}
	return jobs, nil
}

// texPathFor swaps the input's extension for .tex, optionally moving it into dir.
func texPathFor(input, dir string) string {
	base := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input)) + ".tex"
	if dir == "" {
		return filepath.Join(filepath.Dir(input), base)
	}
	return filepath.Join(dir, base)
}

// renderAll renders every job with at most limit running at once. The first
// failure cancels the jobs that have not started yet.
func renderAll(ctx context.Context, jobs []renderJob, limit int) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if limit < 1 {
		limit = 1
	}

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for _, j := range jobs {
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			latex, err := rendering.RenderFile(j.input)
			if err != nil {
				return err
			}
			if dir := filepath.Dir(j.output); dir != "." {
				if err := os.MkdirAll(dir, 0755); err != nil {
					return fmt.Errorf("failed to create output directory: %w", err)
				}
			}
			if err := os.WriteFile(j.output, []byte(latex), 0644); err != nil {
				return fmt.Errorf("failed to write %s: %w", j.output, err)
			}
			return nil
		})
	}
	return g.Wait()
}
