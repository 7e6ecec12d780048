// Package match computes compatibility between a parsed resume and a set
// of job requirements. Matching is a pure computation: no model call
// anywhere in the scoring path, so identical inputs always produce
// identical scores.
package match

import (
	"strings"
	"unicode"
)

// stopWords filters common English words that add noise to overlap scoring.
var stopWords = map[string]bool{
	"and": true, "the": true, "for": true, "with": true, "you": true,
	"are": true, "have": true, "will": true, "this": true, "that": true,
	"from": true, "our": true, "your": true, "their": true, "they": true,
	"work": true, "team": true, "role": true, "job": true, "join": true,
	"about": true, "which": true, "what": true, "who": true, "how": true,
	"can": true, "not": true, "but": true, "all": true, "also": true,
	"more": true, "than": true, "into": true, "has": true, "its": true,
	"was": true, "were": true, "been": true, "each": true, "new": true,
	"use": true, "using": true, "used": true, "well": true, "such": true,
	"etc": true, "per": true, "within": true, "across": true,
}

// Tokenize splits text into a lowercase keyword set, dropping stop words
// and tokens shorter than 3 runes. + # . count as word characters, and
// symbol-bearing tokens skip the length floor, so "c++", "c#" and
// "node.js" all survive; trailing dots are trimmed.
func Tokenize(text string) map[string]bool {
	tokens := make(map[string]bool)
	var word strings.Builder

	flush := func() {
		w := strings.TrimRight(word.String(), ".")
		word.Reset()
		if w == "" || stopWords[w] {
			return
		}
		if len([]rune(w)) >= 3 || strings.ContainsAny(w, "+#") {
			tokens[w] = true
		}
	}

	for _, r := range strings.ToLower(text) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '+' || r == '#' || r == '.' {
			word.WriteRune(r)
		} else {
			flush()
		}
	}
	flush()

	return tokens
}

// overlapScore reports what fraction of want's tokens appear in have.
func overlapScore(want, have map[string]bool) float64 {
	if len(want) == 0 {
		return 0
	}
	hits := 0
	for token := range want {
		if have[token] {
			hits++
		}
	}
	return float64(hits) / float64(len(want))
}
