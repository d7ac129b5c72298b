package rendering

import (
	"fmt"
	"os"
	"strings"

	"github.com/jonathan/cv-builder/internal/parsing"
	"github.com/jonathan/cv-builder/internal/types"
)

const preamble = `\documentclass[10.5pt]{article}
\usepackage[margin=0.45in, top=0.4in, bottom=0.4in]{geometry}
\usepackage{enumitem}
\usepackage{hyperref}
\usepackage{url}
\usepackage{tabularx}

% Balanced spacing
\setlength{\parskip}{3pt}
\setlength{\parindent}{0pt}

% List spacing with proper gaps between items
\setlist{leftmargin=1.5em, topsep=3pt, itemsep=3pt, parsep=1pt}

% Section heading with a rule underneath
\newcommand{\cvsection}[1]{
    \vspace{0.1in}
    \noindent{\large \textbf{#1}}
    \vspace{0.03in}
    \hrule
    \vspace{0.06in}
}

% Hyperlink setup
\hypersetup{
    colorlinks=true,
    linkcolor=black,
    urlcolor=blue,
    citecolor=black
}

\begin{document}

`

const closer = "\\end{document}\n"

// linkSeparator sits between adjacent links on one line.
const linkSeparator = " $|$ "

// RenderDocument renders a parsed CV into a complete LaTeX document. Blocks
// without data are left out; the preamble and closer are always present.
func RenderDocument(header types.HeaderRecord, sections *types.SectionMap) string {
	var b strings.Builder
	b.WriteString(preamble)

	writeHeader(&b, header)
	writeSummary(&b, header.BioLines)

	if body, ok := sections.Get(types.SectionExperience); ok {
		writeExperience(&b, parsing.ExperienceEntries(body))
	}
	if body, ok := sections.Get(types.SectionEducation); ok {
		writeEducation(&b, parsing.Education(body))
	}
	if body, ok := sections.Get(types.SectionSkills); ok {
		writeSkills(&b, parsing.SkillCategories(body))
	}
	if body, ok := sections.Get(types.SectionProjects); ok {
		writeProjects(&b, parsing.ProjectEntries(body))
	}

	b.WriteString(closer)
	return b.String()
}

// Render parses a CV source and renders it.
func Render(source string) string {
	header, sections := parsing.ParseRecord(source)
	return RenderDocument(header, sections)
}

// RenderFile reads the CV source at path and renders it.
func RenderFile(path string) (string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", &SourceError{
				Message: fmt.Sprintf("CV source not found: %s", path),
				Cause:   err,
			}
		}
		return "", &SourceError{
			Message: fmt.Sprintf("failed to read CV source: %s", path),
			Cause:   err,
		}
	}
	return Render(string(content)), nil
}

func writeHeader(b *strings.Builder, h types.HeaderRecord) {
	if h.Name == "" && h.ContactLine == "" && len(h.Links) == 0 {
		return
	}

	b.WriteString("\\begin{center}\n")
	if h.Name != "" {
		fmt.Fprintf(b, "    {\\huge \\textbf{%s}}\\\\\n", Escape(h.Name))
		b.WriteString("    \\vspace{0.08in}\n")
	}
	if h.ContactLine != "" {
		fmt.Fprintf(b, "    %s\\\\\n", Escape(h.ContactLine))
	}
	if len(h.Links) > 0 {
		b.WriteString("    \\vspace{0.03in}\n")
		b.WriteString("    " + joinLinks(h.Links) + "\n")
	}
	b.WriteString("    \\vspace{0.05in}\n")
	b.WriteString("\\end{center}\n\n")
}

func writeSummary(b *strings.Builder, bio []string) {
	if len(bio) == 0 {
		return
	}

	escaped := make([]string, len(bio))
	for i, line := range bio {
		escaped[i] = Escape(line)
	}

	b.WriteString("\\vspace{0.08in}\n")
	b.WriteString("\\noindent{\\large \\textbf{Summary}}\n")
	b.WriteString("\\vspace{0.06in}\n\n")
	fmt.Fprintf(b, "\\noindent %s\n\n", strings.Join(escaped, " "))
}

func href(l types.Link) string {
	return fmt.Sprintf("\\href{%s}{%s}", l.URL, Escape(l.Label))
}

func joinLinks(links []types.Link) string {
	parts := make([]string, len(links))
	for i, l := range links {
		parts[i] = href(l)
	}
	return strings.Join(parts, linkSeparator)
}
