package rendering

import (
	"fmt"
	"strings"

	"github.com/jonathan/cv-builder/internal/types"
)

func writeItemize(b *strings.Builder, items []string) {
	b.WriteString("\n\\begin{itemize}\n")
	for _, item := range items {
		fmt.Fprintf(b, "    \\item %s\n", Escape(item))
	}
	b.WriteString("\\end{itemize}\n")
}

func writeExperience(b *strings.Builder, entries []types.ExperienceEntry) {
	if len(entries) == 0 {
		return
	}
	b.WriteString("\\cvsection{Professional Experience}\n")

	for _, e := range entries {
		role := Escape(e.Position)
		if e.Company != "" {
			role += ", " + Escape(e.Company)
		}
		fmt.Fprintf(b, "\\noindent\\textbf{%s} \\hfill %s\\\\\n", role, Escape(e.Dates))

		if e.Intro != "" {
			b.WriteString(Escape(e.Intro) + "\n")
		}
		if len(e.Bullets) > 0 {
			writeItemize(b, e.Bullets)
		}
		b.WriteString("\n")
	}
}

func writeEducation(b *strings.Builder, e *types.EducationEntry) {
	if e == nil {
		return
	}
	b.WriteString("\\cvsection{Education}\n")
	fmt.Fprintf(b, "\\noindent\\textbf{%s} \\hfill %s\\\\\n", Escape(e.Degree), Escape(e.Dates))

	place := Escape(e.Institution)
	if e.Location != "" {
		place += ", " + Escape(e.Location)
	}
	b.WriteString(place + "\n\n")
}

func writeSkills(b *strings.Builder, categories []types.SkillCategory) {
	if len(categories) == 0 {
		return
	}
	b.WriteString("\\cvsection{Technical Skills}\n")
	b.WriteString("\\begin{itemize}\n")
	for _, c := range categories {
		items := make([]string, len(c.Items))
		for i, item := range c.Items {
			items[i] = Escape(item)
		}
		fmt.Fprintf(b, "    \\item \\textbf{%s:} %s\n", Escape(c.Category), strings.Join(items, ", "))
	}
	b.WriteString("\\end{itemize}\n\n")
}

func writeProjects(b *strings.Builder, entries []types.ProjectEntry) {
	if len(entries) == 0 {
		return
	}
	b.WriteString("\\cvsection{Projects}\n")

	for _, p := range entries {
		fmt.Fprintf(b, "\\noindent\\textbf{%s}", Escape(p.Title))
		if p.Technologies != "" {
			fmt.Fprintf(b, " (%s)", Escape(p.Technologies))
		}

		var trail []string
		for _, l := range p.Links {
			trail = append(trail, href(l))
		}
		if p.Status != "" {
			trail = append(trail, Escape(p.Status))
		}
		if len(trail) > 0 {
			b.WriteString(" -- " + strings.Join(trail, linkSeparator))
		}
		b.WriteString("\\\\\n")

		if p.Description != "" {
			b.WriteString(Escape(p.Description) + "\n")
		}
		if len(p.Details) > 0 {
			writeItemize(b, p.Details)
		}
		b.WriteString("\n")
	}
}
