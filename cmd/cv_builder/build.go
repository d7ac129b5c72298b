package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/jonathan/cv-builder/internal/pipeline"
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Render, compile, copy and open the CV",
	Long: `Parses the CV text file, writes the LaTeX source, compiles it twice with the
configured engine, copies the PDF to its destinations and opens it in a browser.

When the engine is not installed the LaTeX source is still written and the
command explains how to compile it by hand.`,
	Args: cobra.NoArgs,
	RunE: runBuild,
}

var (
	buildInput    string
	buildTex      string
	buildPDF      string
	buildCopyTo   []string
	buildWorkDir  string
	buildEngine   string
	buildNoOpen   bool
	buildMaxPages int
)

func init() {
	buildCmd.Flags().StringVarP(&buildInput, "input", "i", "", "CV text file (default CV_DATA.txt)")
	buildCmd.Flags().StringVar(&buildTex, "tex", "", "LaTeX output file (default cv.tex)")
	buildCmd.Flags().StringVarP(&buildPDF, "out", "o", "", "Final PDF name (default CV.pdf)")
	buildCmd.Flags().StringSliceVar(&buildCopyTo, "copy-to", nil, "Additional PDF destinations (default public/CV.pdf)")
	buildCmd.Flags().StringVarP(&buildWorkDir, "work-dir", "w", "", "Directory paths are resolved against (default .)")
	buildCmd.Flags().StringVar(&buildEngine, "engine", "", "LaTeX engine (default pdflatex)")
	buildCmd.Flags().BoolVar(&buildNoOpen, "no-open", false, "Do not open the PDF afterwards")
	buildCmd.Flags().IntVar(&buildMaxPages, "max-pages", 0, "Warn when the PDF exceeds this many pages (0 disables)")

	rootCmd.AddCommand(buildCmd)
}

func runBuild(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	// Command-line flags override config values
	if cmd.Flags().Changed("input") {
		cfg.Input = buildInput
	}
	if cmd.Flags().Changed("tex") {
		cfg.TexOutput = buildTex
	}
	if cmd.Flags().Changed("out") {
		cfg.PDFOutput = buildPDF
	}
	if cmd.Flags().Changed("copy-to") {
		cfg.CopyTo = buildCopyTo
	}
	if cmd.Flags().Changed("work-dir") {
		cfg.WorkDir = buildWorkDir
	}
	if cmd.Flags().Changed("engine") {
		cfg.Engine = buildEngine
	}
	if cmd.Flags().Changed("no-open") {
		cfg.OpenViewer = !buildNoOpen
	}
	if cmd.Flags().Changed("max-pages") {
		cfg.MaxPages = buildMaxPages
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	report, err := pipeline.Build(ctx, pipeline.BuildOptions{
		Config: cfg,
		Out:    os.Stdout,
	})
	if err != nil {
		return err
	}

	if len(report.Warnings) > 0 && !cfg.Verbose {
		_, _ = fmt.Fprintf(os.Stdout, "Finished with %d warning(s)\n", len(report.Warnings))
	}
	return nil
}
