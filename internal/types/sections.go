package types

import (
	"github.com/emirpasic/gods/maps/linkedhashmap"
)

// Known section names consumed by the renderer.
const (
	SectionExperience = "EXPERIENCE"
	SectionEducation  = "EDUCATION"
	SectionSkills     = "SKILLS"
	SectionProjects   = "PROJECTS"
)

// SectionMap maps section names to their raw bodies in the order the headings
// first appeared. Setting an existing name replaces its body but keeps its position.
// The zero value is not usable; use NewSectionMap.
type SectionMap struct {
	m *linkedhashmap.Map
}

// NewSectionMap creates an empty SectionMap.
func NewSectionMap() *SectionMap {
	return &SectionMap{m: linkedhashmap.New()}
}

// Set stores body under name.
func (s *SectionMap) Set(name, body string) {
	s.m.Put(name, body)
}

// Get returns the body stored under name.
func (s *SectionMap) Get(name string) (string, bool) {
	if s == nil {
		return "", false
	}
	v, ok := s.m.Get(name)
	if !ok {
		return "", false
	}
	return v.(string), true
}

// Has reports whether a section called name was present.
func (s *SectionMap) Has(name string) bool {
	_, ok := s.Get(name)
	return ok
}

// Len returns the number of sections.
func (s *SectionMap) Len() int {
	if s == nil {
		return 0
	}
	return s.m.Size()
}

// Names returns the section names in insertion order.
func (s *SectionMap) Names() []string {
	if s == nil {
		return nil
	}
	keys := s.m.Keys()
	names := make([]string, 0, len(keys))
	for _, k := range keys {
		names = append(names, k.(string))
	}
	return names
}

// Sections returns the sections as an ordered slice.
func (s *SectionMap) Sections() []Section {
	names := s.Names()
	out := make([]Section, 0, len(names))
	for _, name := range names {
		body, _ := s.Get(name)
		out = append(out, Section{Name: name, Body: body})
	}
	return out
}
