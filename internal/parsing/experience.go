package parsing

import (
	"strings"

	"github.com/jonathan/cv-builder/internal/types"
)

type experienceState int

const (
	expectPosition experienceState = iota
	expectCompany
	expectDates
	collectBody
)

// ExperienceEntries walks an EXPERIENCE body and returns one entry per job.
//
// A job is a position line, a company line, an optional dates line and then a
// run of intro text and bullets. The run ends at an upper-case line or at a
// "Skills:" line; "Skills:" lines are per-job tags and are skipped, never read
// as a position.
func ExperienceEntries(body string) []types.ExperienceEntry {
	lines := strings.Split(body, "\n")

	var entries []types.ExperienceEntry
	var cur types.ExperienceEntry
	state := expectPosition

	for i := 0; i < len(lines); {
		line := strings.TrimSpace(lines[i])

		switch state {
		case expectPosition:
			if line == "" || isSkillsLine(line) {
				i++
				continue
			}
			cur = types.ExperienceEntry{Position: line}
			state = expectCompany
			i++

		case expectCompany:
			cur.Company = line
			state = expectDates
			i++

		case expectDates:
			if MatchesDates(line) {
				cur.Dates = line
				i++
			}
			state = collectBody

		case collectBody:
			if line == "" {
				i++
				continue
			}
			if IsBullet(line) {
				cur.Bullets = append(cur.Bullets, StripBullet(line))
				i++
				continue
			}
			if IsUpperLine(line) || isSkillsLine(line) {
				entries = append(entries, cur)
				state = expectPosition
				continue
			}
			if len(cur.Bullets) == 0 && cur.Intro == "" {
				cur.Intro = line
			}
			i++
		}
	}

	if state != expectPosition {
		entries = append(entries, cur)
	}
	return entries
}
