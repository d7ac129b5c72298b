// Package rendering turns parsed CV records into LaTeX documents.
package rendering

import "strings"

// passthroughMarkers are escapes an author may already have typed by hand.
// Text holding a backslash and one of these is treated as partly written in LaTeX.
var passthroughMarkers = []string{`\href`, `\&`, `\%`, `\$`, `\#`}

// verbatimFirstArg lists commands whose first argument is a link target.
var verbatimFirstArg = map[string]bool{
	"href": true,
	"url":  true,
}

// Escape escapes text for a LaTeX body, choosing between EscapePlain and
// EscapePassthrough.
func Escape(text string) string {
	if isPassthrough(text) {
		return EscapePassthrough(text)
	}
	return EscapePlain(text)
}

func isPassthrough(text string) bool {
	if !strings.Contains(text, `\`) {
		return false
	}
	for _, m := range passthroughMarkers {
		if strings.Contains(text, m) {
			return true
		}
	}
	return false
}

// EscapePlain escapes every reserved character: & % $ # ^ _ { } ~
// Backslashes are not touched, so "\&" becomes "\\&".
func EscapePlain(text string) string {
	if text == "" {
		return ""
	}

	var result strings.Builder
	result.Grow(len(text) * 2) // Pre-allocate space for potential escaping

	for _, r := range text {
		writeEscaped(&result, r)
	}
	return result.String()
}

// EscapePassthrough escapes reserved characters that are not already preceded
// by a backslash. Commands such as \href{url}{text} are copied with their brace
// arguments; the link target is kept verbatim and the other arguments are
// escaped the same way.
func EscapePassthrough(text string) string {
	var result strings.Builder
	result.Grow(len(text) * 2)
	escapePassthrough(&result, []rune(text))
	return result.String()
}

func escapePassthrough(b *strings.Builder, rs []rune) {
	for i := 0; i < len(rs); {
		if rs[i] != '\\' {
			writeEscaped(b, rs[i])
			i++
			continue
		}

		if i+1 == len(rs) {
			b.WriteRune('\\')
			i++
			continue
		}

		// control symbol: \& \% \\ ...
		if !isASCIILetter(rs[i+1]) {
			b.WriteRune('\\')
			b.WriteRune(rs[i+1])
			i += 2
			continue
		}

		j := i + 1
		for j < len(rs) && isASCIILetter(rs[j]) {
			j++
		}
		name := string(rs[i+1 : j])
		b.WriteRune('\\')
		b.WriteString(name)
		i = j

		for arg := 0; i < len(rs) && rs[i] == '{'; arg++ {
			end := matchingBrace(rs, i)
			if end < 0 {
				break
			}
			b.WriteRune('{')
			if arg == 0 && verbatimFirstArg[name] {
				b.WriteString(string(rs[i+1 : end]))
			} else {
				escapePassthrough(b, rs[i+1:end])
			}
			b.WriteRune('}')
			i = end + 1
		}
	}
}

// matchingBrace returns the index of the brace closing the one at open, or -1.
func matchingBrace(rs []rune, open int) int {
	depth := 0
	for i := open; i < len(rs); i++ {
		switch rs[i] {
		case '\\':
			i++
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

func writeEscaped(b *strings.Builder, r rune) {
	switch r {
	case '{':
		b.WriteString(`\{`)
	case '}':
		b.WriteString(`\}`)
	case '$':
		b.WriteString(`\$`)
	case '&':
		b.WriteString(`\&`)
	case '%':
		b.WriteString(`\%`)
	case '#':
		b.WriteString(`\#`)
	case '^':
		b.WriteString(`\textasciicircum{}`)
	case '_':
		b.WriteString(`\_`)
	case '~':
		b.WriteString(`\textasciitilde{}`)
	default:
		b.WriteRune(r)
	}
}

func isASCIILetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}
