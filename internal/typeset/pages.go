package typeset

import (
	"context"
	"fmt"
	"strconv"
	"strings"
)

// CountPages counts the pages of a PDF. It tries pdfinfo first, then falls
// back to ghostscript.
func CountPages(ctx context.Context, r Runner, pdfPath string) (int, error) {
	if r == nil {
		r = ExecRunner{}
	}

	if out, err := r.Run(ctx, "", "pdfinfo", pdfPath); err == nil {
		if count, err := parsePdfinfoPages(out); err == nil {
			return count, nil
		}
	}

	script := fmt.Sprintf("(%s) (r) file runpdfbegin pdfpagecount = quit", pdfPath)
	if out, err := r.Run(ctx, "", "gs", "-q", "-dNODISPLAY", "-dNOSAFER", "-c", script); err == nil {
		if count, err := parseGhostscriptPages(out); err == nil {
			return count, nil
		}
	}

	return 0, &PageCountError{
		Message: "neither pdfinfo nor ghostscript available. Please install poppler-utils (pdfinfo) or ghostscript",
	}
}

// parsePdfinfoPages reads the "Pages: N" line of pdfinfo output.
func parsePdfinfoPages(output string) (int, error) {
	for _, line := range strings.Split(output, "\n") {
		if !strings.HasPrefix(line, "Pages:") {
			continue
		}
		parts := strings.Fields(line)
		if len(parts) >= 2 {
			if count, err := strconv.Atoi(parts[1]); err == nil {
				return count, nil
			}
		}
	}
	return 0, fmt.Errorf("could not parse page count from pdfinfo output")
}

// parseGhostscriptPages reads the bare number ghostscript prints.
func parseGhostscriptPages(output string) (int, error) {
	s := strings.TrimSpace(output)
	count, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("could not parse page count from ghostscript output: %s", s)
	}
	return count, nil
}
