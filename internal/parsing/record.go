package parsing

import (
	"strings"

	"github.com/emirpasic/gods/maps/linkedhashmap"

	"github.com/jonathan/cv-builder/internal/types"
)

// ParseRecord splits a CV source into its header record and raw sections.
func ParseRecord(text string) (types.HeaderRecord, *types.SectionMap) {
	lines := splitLines(text)

	i := 0
	var header []string
	for ; i < len(lines); i++ {
		if endsHeader(lines[i]) {
			break
		}
		if strings.TrimSpace(lines[i]) != "" {
			header = append(header, lines[i])
		}
	}

	sections := types.NewSectionMap()
	current := ""
	open := false
	var body []string

	for ; i < len(lines); i++ {
		line := lines[i]
		switch {
		case IsSectionHeading(line):
			if open {
				sections.Set(current, strings.Join(body, "\n"))
			}
			current = strings.TrimSpace(line)
			open = true
			body = nil
		case IsSeparator(line):
			// rules never belong to a section body
		default:
			if open {
				body = append(body, line)
			}
		}
	}
	if open {
		sections.Set(current, strings.Join(body, "\n"))
	}

	return ClassifyHeader(header), sections
}

// ClassifyHeader turns the non-blank header lines into a HeaderRecord. The
// first line is the name; each later line becomes a link, the contact line,
// a bio line, or is dropped.
func ClassifyHeader(lines []string) types.HeaderRecord {
	var h types.HeaderRecord
	if len(lines) == 0 {
		return h
	}
	h.Name = strings.TrimSpace(lines[0])

	links := linkedhashmap.New()
	for _, raw := range lines[1:] {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		lower := strings.ToLower(line)

		switch {
		case strings.HasPrefix(line, "http"):
			if label := linkLabel(lower); label != "" {
				links.Put(label, line)
			}
		case strings.Contains(lower, "interactive cv"):
			if u, ok := FindURL(line); ok {
				links.Put(types.LinkPortfolio, u)
			}
		case IsContactLine(line):
			h.ContactLine = line
		default:
			h.BioLines = append(h.BioLines, line)
		}
	}

	it := links.Iterator()
	for it.Next() {
		h.Links = append(h.Links, types.Link{Label: it.Key().(string), URL: it.Value().(string)})
	}
	return h
}

// linkLabel picks the label for a URL line, or "" when the URL is not one we show.
func linkLabel(lower string) string {
	switch {
	case strings.Contains(lower, "cv-website"), strings.Contains(lower, "interactive cv"):
		return types.LinkPortfolio
	case strings.Contains(lower, "linkedin"):
		return types.LinkLinkedIn
	case strings.Contains(lower, "github"):
		return types.LinkGitHub
	}
	return ""
}

func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimRight(l, "\r")
	}
	return lines
}
