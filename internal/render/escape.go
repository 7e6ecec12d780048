package render

import "strings"

// EscapeLaTeX escapes the characters LaTeX treats as special so arbitrary
// resume text is safe to interpolate into a document body.
func EscapeLaTeX(text string) string {
	var sb strings.Builder
	sb.Grow(len(text) * 2)

	for _, r := range text {
		switch r {
		case '\\':
			sb.WriteString("\\textbackslash{}")
		case '{':
			sb.WriteString("\\{")
		case '}':
			sb.WriteString("\\}")
		case '$':
			sb.WriteString("\\$")
		case '&':
			sb.WriteString("\\&")
		case '%':
			sb.WriteString("\\%")
		case '#':
			sb.WriteString("\\#")
		case '_':
			sb.WriteString("\\_")
		case '^':
			sb.WriteString("\\textasciicircum{}")
		case '~':
			sb.WriteString("\\textasciitilde{}")
		default:
			sb.WriteRune(r)
		}
	}

	return sb.String()
}
