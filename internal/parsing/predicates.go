// Package parsing converts plain-text CV sources into structured records.
//
// Everything here is heuristic and total: malformed input yields partial or
// empty results, never an error.
package parsing

import (
	"regexp"
	"strings"
	"unicode"
)

// BulletMarker is the glyph that introduces a list item.
const BulletMarker = "•"

const separatorPrefix = "---"

var (
	datesPattern    = regexp.MustCompile(`\d{4}|\d+\s*mos|Present`)
	yearLinePattern = regexp.MustCompile(`^\d{4}\s*-\s*\d{4}|^\d{4}$`)
	urlPattern      = regexp.MustCompile(`https?://\S+`)
)

// IsUpperLine reports whether s contains at least one upper-case letter and
// no lower-case or title-case letters. Digits and punctuation are ignored, so
// "---" or "2020" are not upper-case lines.
func IsUpperLine(s string) bool {
	hasUpper := false
	for _, r := range s {
		switch {
		case unicode.IsLower(r), unicode.IsTitle(r):
			return false
		case unicode.IsUpper(r):
			hasUpper = true
		}
	}
	return hasUpper
}

// IsSeparator reports whether the trimmed line is a "---" rule.
func IsSeparator(line string) bool {
	return strings.HasPrefix(strings.TrimSpace(line), separatorPrefix)
}

// IsBullet reports whether the trimmed line starts with the bullet marker.
func IsBullet(line string) bool {
	return strings.HasPrefix(strings.TrimSpace(line), BulletMarker)
}

// StripBullet removes the leading bullet marker and surrounding whitespace.
func StripBullet(line string) string {
	return strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), BulletMarker))
}

// endsHeader reports whether line closes the header block.
func endsHeader(line string) bool {
	t := strings.TrimSpace(line)
	return t != "" && IsUpperLine(t) && !strings.HasPrefix(t, separatorPrefix)
}

// IsSectionHeading reports whether line opens a new section.
func IsSectionHeading(line string) bool {
	return endsHeader(line) && !IsBullet(line)
}

// IsContactLine reports whether a header line holds contact details: an
// e-mail address or something starting with a digit, such as a phone number.
func IsContactLine(line string) bool {
	t := strings.TrimSpace(line)
	if t == "" {
		return false
	}
	return strings.Contains(t, "@") || unicode.IsDigit([]rune(t)[0])
}

// MatchesDates reports whether line looks like an employment period:
// a year, a duration in months, or "Present".
func MatchesDates(line string) bool {
	return datesPattern.MatchString(line)
}

// MatchesYearLine reports whether line starts with "YYYY - YYYY" or is a bare year.
func MatchesYearLine(line string) bool {
	return yearLinePattern.MatchString(line)
}

// FindURL returns the first http(s) URL in line.
func FindURL(line string) (string, bool) {
	u := urlPattern.FindString(line)
	return u, u != ""
}

func isSkillsLine(line string) bool {
	return strings.HasPrefix(line, "Skills:")
}
