// Package types provides type definitions for structured data used throughout the cv-builder system.
package types

// Link labels recognised in the header block.
const (
	LinkPortfolio = "Portfolio"
	LinkLinkedIn  = "LinkedIn"
	LinkGitHub    = "GitHub"
	LinkLive      = "Live"
)

// Link is a labelled URL, rendered as a hyperlink.
type Link struct {
	Label string `json:"label" yaml:"label"`
	URL   string `json:"url" yaml:"url"`
}

// HeaderRecord holds everything found above the first section heading.
type HeaderRecord struct {
	Name        string   `json:"name" yaml:"name"`
	ContactLine string   `json:"contact_line,omitempty" yaml:"contact_line,omitempty"`
	Links       []Link   `json:"links,omitempty" yaml:"links,omitempty"`
	BioLines    []string `json:"bio_lines,omitempty" yaml:"bio_lines,omitempty"`
}

// IsEmpty reports whether the header carried no lines at all.
func (h HeaderRecord) IsEmpty() bool {
	return h.Name == "" && h.ContactLine == "" && len(h.Links) == 0 && len(h.BioLines) == 0
}

// ExperienceEntry is one job in the EXPERIENCE section.
type ExperienceEntry struct {
	Position string   `json:"position" yaml:"position"`
	Company  string   `json:"company,omitempty" yaml:"company,omitempty"`
	Dates    string   `json:"dates,omitempty" yaml:"dates,omitempty"`
	Intro    string   `json:"intro,omitempty" yaml:"intro,omitempty"`
	Bullets  []string `json:"bullets,omitempty" yaml:"bullets,omitempty"`
}

// EducationEntry is the EDUCATION section reduced to its positional fields.
type EducationEntry struct {
	Institution string `json:"institution" yaml:"institution"`
	Degree      string `json:"degree,omitempty" yaml:"degree,omitempty"`
	Location    string `json:"location,omitempty" yaml:"location,omitempty"`
	Dates       string `json:"dates,omitempty" yaml:"dates,omitempty"`
}

// SkillCategory is one "Category: a, b, c" line of the SKILLS section.
type SkillCategory struct {
	Category string   `json:"category" yaml:"category"`
	Items    []string `json:"items" yaml:"items"`
}

// ProjectEntry is one project in the PROJECTS section.
type ProjectEntry struct {
	Title        string   `json:"title" yaml:"title"`
	Description  string   `json:"description,omitempty" yaml:"description,omitempty"`
	Details      []string `json:"details,omitempty" yaml:"details,omitempty"`
	Technologies string   `json:"technologies,omitempty" yaml:"technologies,omitempty"`
	Links        []Link   `json:"links,omitempty" yaml:"links,omitempty"`
	Status       string   `json:"status,omitempty" yaml:"status,omitempty"`
}

// Section is a named raw section body, used for export.
type Section struct {
	Name string `json:"name" yaml:"name"`
	Body string `json:"body" yaml:"body"`
}

// Document is the fully derived view of a CV source file.
type Document struct {
	Header     HeaderRecord      `json:"header" yaml:"header"`
	Sections   []Section         `json:"sections" yaml:"sections"`
	Experience []ExperienceEntry `json:"experience,omitempty" yaml:"experience,omitempty"`
	Education  *EducationEntry   `json:"education,omitempty" yaml:"education,omitempty"`
	Skills     []SkillCategory   `json:"skills,omitempty" yaml:"skills,omitempty"`
	Projects   []ProjectEntry    `json:"projects,omitempty" yaml:"projects,omitempty"`
}
