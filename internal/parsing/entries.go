package parsing

import (
	"strings"

	"github.com/jonathan/cv-builder/internal/types"
)

// Education reads an EDUCATION body: institution, degree and location are the
// first three non-blank lines; dates are taken from the first line anywhere in
// the body that starts with a year or year range. Returns nil for an empty body.
func Education(body string) *types.EducationEntry {
	lines := nonBlankLines(body)
	if len(lines) == 0 {
		return nil
	}

	e := &types.EducationEntry{Institution: lines[0]}
	if len(lines) > 1 {
		e.Degree = lines[1]
	}
	if len(lines) > 2 {
		e.Location = lines[2]
	}
	for _, line := range lines {
		if MatchesYearLine(line) {
			e.Dates = line
			break
		}
	}
	return e
}

// SkillCategories reads a SKILLS body, one category per line holding a colon.
func SkillCategories(body string) []types.SkillCategory {
	var out []types.SkillCategory
	for _, line := range nonBlankLines(body) {
		category, rest, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		items := []string{}
		for _, item := range strings.Split(rest, ",") {
			if item = strings.TrimSpace(item); item != "" {
				items = append(items, item)
			}
		}
		out = append(out, types.SkillCategory{
			Category: strings.TrimSpace(category),
			Items:    items,
		})
	}
	return out
}

// Field prefixes recognised inside a project entry.
const (
	prefixTechnologies = "Technologies:"
	prefixGitHub       = "GitHub:"
	prefixLive         = "Live:"
	prefixStatus       = "Status:"
)

// ProjectEntries walks a PROJECTS body. Each entry is a title, an optional
// one-line description and then any mix of bullets and Technologies/GitHub/
// Live/Status lines; the first other line starts the next project.
func ProjectEntries(body string) []types.ProjectEntry {
	lines := strings.Split(body, "\n")

	var entries []types.ProjectEntry
	for i := 0; i < len(lines); {
		line := strings.TrimSpace(lines[i])
		if line == "" || IsBullet(line) {
			i++
			continue
		}

		p := types.ProjectEntry{Title: line}
		i++

		if i < len(lines) {
			next := strings.TrimSpace(lines[i])
			if next != "" && !IsBullet(next) && !isProjectField(next) {
				p.Description = next
				i++
			}
		}

	fields:
		for i < len(lines) {
			line := strings.TrimSpace(lines[i])
			switch {
			case line == "":
			case IsBullet(line):
				p.Details = append(p.Details, StripBullet(line))
			case strings.HasPrefix(line, prefixTechnologies):
				p.Technologies = strings.TrimSpace(strings.TrimPrefix(line, prefixTechnologies))
			case strings.HasPrefix(line, prefixGitHub):
				if u, ok := FindURL(line); ok {
					p.Links = append(p.Links, types.Link{Label: types.LinkGitHub, URL: u})
				}
			case strings.HasPrefix(line, prefixLive):
				if u, ok := FindURL(line); ok {
					p.Links = append(p.Links, types.Link{Label: types.LinkLive, URL: u})
				}
			case strings.HasPrefix(line, prefixStatus):
				p.Status = strings.TrimSpace(strings.TrimPrefix(line, prefixStatus))
			default:
				break fields
			}
			i++
		}

		entries = append(entries, p)
	}
	return entries
}

func isProjectField(line string) bool {
	for _, prefix := range []string{"Technologies", "GitHub", "Live", "Status"} {
		if strings.HasPrefix(line, prefix) {
			return true
		}
	}
	return false
}

func nonBlankLines(body string) []string {
	var out []string
	for _, l := range strings.Split(body, "\n") {
		if l = strings.TrimSpace(l); l != "" {
			out = append(out, l)
		}
	}
	return out
}

// BuildDocument derives every known section's entries from a parsed record.
func BuildDocument(header types.HeaderRecord, sections *types.SectionMap) types.Document {
	doc := types.Document{
		Header:   header,
		Sections: sections.Sections(),
	}
	if body, ok := sections.Get(types.SectionExperience); ok {
		doc.Experience = ExperienceEntries(body)
	}
	if body, ok := sections.Get(types.SectionEducation); ok {
		doc.Education = Education(body)
	}
	if body, ok := sections.Get(types.SectionSkills); ok {
		doc.Skills = SkillCategories(body)
	}
	if body, ok := sections.Get(types.SectionProjects); ok {
		doc.Projects = ProjectEntries(body)
	}
	return doc
}
