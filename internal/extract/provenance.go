package extract

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/udit/resume-optimizer/internal/types"
)

// Locate finds a fragment inside source text and returns its span.
// Matching is tolerant of case and whitespace differences and of dropped
// trailing punctuation, since models reformat even when told to copy
// verbatim. The returned span addresses the ORIGINAL source bytes.
func Locate(source, fragment string) (types.SourceSpan, bool) {
	fragment = strings.TrimSpace(fragment)
	if fragment == "" || source == "" {
		return types.SourceSpan{}, false
	}

	// Fast path: exact occurrence.
	if idx := strings.Index(source, fragment); idx >= 0 {
		return types.SourceSpan{Start: idx, End: idx + len(fragment)}, true
	}

	normSource := normalizeForSearch(source)
	if span, ok := normSource.find(fragment); ok {
		return span, true
	}
	// Models drop trailing punctuation; retry without it.
	trimmed := strings.TrimRight(fragment, ".;,:!")
	if trimmed != fragment {
		return normSource.find(trimmed)
	}
	return types.SourceSpan{}, false
}

// normText is source text lowered and whitespace-collapsed, with a map
// from every normalized rune back to its byte range in the original.
type normText struct {
	text     string
	starts   []int // byte offset of normalized rune i in the original
	ends     []int // byte offset just past normalized rune i in the original
	original string
}

func normalizeForSearch(source string) *normText {
	var b strings.Builder
	starts := make([]int, 0, len(source))
	ends := make([]int, 0, len(source))

	byteOff := 0
	lastWasSpace := true
	for _, r := range source {
		size := utf8.RuneLen(r)
		if unicode.IsSpace(r) {
			if !lastWasSpace {
				b.WriteRune(' ')
				starts = append(starts, byteOff)
				ends = append(ends, byteOff+size)
			}
			lastWasSpace = true
		} else {
			b.WriteRune(unicode.ToLower(r))
			starts = append(starts, byteOff)
			ends = append(ends, byteOff+size)
			lastWasSpace = false
		}
		byteOff += size
	}

	return &normText{text: b.String(), starts: starts, ends: ends, original: source}
}

func (n *normText) find(fragment string) (types.SourceSpan, bool) {
	needle := collapse(fragment)
	if needle == "" {
		return types.SourceSpan{}, false
	}

	idx := strings.Index(n.text, needle)
	if idx < 0 {
		return types.SourceSpan{}, false
	}

	startRune := utf8.RuneCountInString(n.text[:idx])
	endRune := startRune + utf8.RuneCountInString(needle) - 1
	if endRune >= len(n.ends) {
		return types.SourceSpan{}, false
	}

	return types.SourceSpan{Start: n.starts[startRune], End: n.ends[endRune]}, true
}

// collapse lowercases and squeezes runs of whitespace to single spaces.
func collapse(s string) string {
	var b strings.Builder
	lastWasSpace := true
	for _, r := range s {
		if unicode.IsSpace(r) {
			if !lastWasSpace {
				b.WriteRune(' ')
			}
			lastWasSpace = true
		} else {
			b.WriteRune(unicode.ToLower(r))
			lastWasSpace = false
		}
	}
	return strings.TrimRight(b.String(), " ")
}
