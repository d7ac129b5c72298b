// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/jonathan/cv-builder/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// truncate shortens s to at most n runes, marking the cut with "...".
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n-3]) + "..."
}

// PrintDocument outputs a human-readable summary of a parsed CV.
func (p *Printer) PrintDocument(doc *types.Document) {
	if doc == nil {
		return
	}

	var sb strings.Builder

	name := doc.Header.Name
	if name == "" {
		name = "(none)"
	}
	sb.WriteString(fmt.Sprintf("Name:     %s\n", name))
	if doc.Header.ContactLine != "" {
		sb.WriteString(fmt.Sprintf("Contact:  %s\n", doc.Header.ContactLine))
	}
	if len(doc.Header.Links) > 0 {
		labels := make([]string, 0, len(doc.Header.Links))
		for _, l := range doc.Header.Links {
			labels = append(labels, l.Label)
		}
		sb.WriteString(fmt.Sprintf("Links:    %s\n", strings.Join(labels, ", ")))
	}
	sb.WriteString("\n")

	if len(doc.Sections) > 0 {
		sb.WriteString("Sections:\n")
		for _, s := range doc.Sections {
			sb.WriteString(fmt.Sprintf("  • %s (%d lines)\n", s.Name, countLines(s.Body)))
		}
		sb.WriteString("\n")
	}

	if len(doc.Experience) > 0 {
		sb.WriteString("Experience:\n")
		count := min(len(doc.Experience), maxItemsToShow)
		for i := 0; i < count; i++ {
			e := doc.Experience[i]
			sb.WriteString(fmt.Sprintf("  • %s", e.Position))
			if e.Company != "" {
				sb.WriteString(fmt.Sprintf(" @ %s", e.Company))
			}
			sb.WriteString(fmt.Sprintf(" [%d bullets]\n", len(e.Bullets)))
		}
		if len(doc.Experience) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(doc.Experience)-maxItemsToShow))
		}
		sb.WriteString("\n")
	}

	if len(doc.Skills) > 0 {
		categories := make([]string, 0, len(doc.Skills))
		for _, s := range doc.Skills {
			categories = append(categories, s.Category)
		}
		sb.WriteString(fmt.Sprintf("Skills:   %s\n", strings.Join(categories, ", ")))
	}

	if len(doc.Projects) > 0 {
		sb.WriteString(fmt.Sprintf("Projects: %d\n", len(doc.Projects)))
	}

	p.printBox("PARSED CV", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintBuildReport outputs where the build put its artifacts.
func (p *Printer) PrintBuildReport(report *types.BuildReport) {
	if report == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Build:    %s\n", report.BuildID))
	sb.WriteString(fmt.Sprintf("Input:    %s\n", report.InputPath))
	sb.WriteString(fmt.Sprintf("LaTeX:    %s\n", report.TexPath))
	if report.Compiled {
		sb.WriteString(fmt.Sprintf("PDF:      %s\n", report.PDFPath))
		sb.WriteString(fmt.Sprintf("Engine:   %s\n", report.EnginePath))
		if report.Pages > 0 {
			sb.WriteString(fmt.Sprintf("Pages:    %d\n", report.Pages))
		}
	} else {
		sb.WriteString("PDF:      not compiled\n")
	}
	for _, c := range report.Copied {
		sb.WriteString(fmt.Sprintf("  → %s\n", c))
	}
	for _, s := range report.Skipped {
		sb.WriteString(fmt.Sprintf("  = %s (same file)\n", s))
	}
	sb.WriteString(fmt.Sprintf("Took:     %s", report.Duration.Round(time.Millisecond)))

	p.printBox("BUILD RESULT", sb.String())
}

// PrintWarnings outputs any warnings raised during a build.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintWarnings(warnings []string) {
	if len(warnings) == 0 {
		fmt.Fprintf(p.out, "┌%s┐\n", strings.Repeat("─", boxWidth-2))
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, "✅ NO WARNINGS")
		fmt.Fprintf(p.out, "└%s┘\n", strings.Repeat("─", boxWidth-2))
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Found %d warnings:\n\n", len(warnings)))
	for i, w := range warnings {
		sb.WriteString(fmt.Sprintf("⚠ %s", w))
		if i < len(warnings)-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox("WARNINGS", sb.String())
}

func countLines(body string) int {
	if body == "" {
		return 0
	}
	return strings.Count(body, "\n") + 1
}
