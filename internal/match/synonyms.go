package match

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/udit/resume-optimizer/internal/types"
)

//go:embed synonyms.json
var defaultSynonymsJSON []byte

// Synonyms resolves skill names to a canonical form so "JS" and
// "JavaScript" compare equal. Lookup never fails closed: a term with no
// table entry resolves to itself, falling through to literal comparison.
type Synonyms struct {
	canonical map[string]string
}

// DefaultSynonyms parses the embedded synonym table. The table is
// configuration, not logic; deployments can replace it wholesale with
// LoadSynonyms.
func DefaultSynonyms() *Synonyms {
	syn, err := parseSynonyms(defaultSynonymsJSON)
	if err != nil {
		// The embedded table is validated by tests; an unparsable one is
		// a packaging bug.
		panic(fmt.Sprintf("embedded synonym table: %v", err))
	}
	return syn
}

// LoadSynonyms reads a synonym table from a JSON file mapping each
// canonical skill name to its aliases.
func LoadSynonyms(path string) (*Synonyms, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read synonyms file %s: %w", path, err)
	}
	syn, err := parseSynonyms(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse synonyms file %s: %w", path, err)
	}
	return syn, nil
}

func parseSynonyms(data []byte) (*Synonyms, error) {
	var table map[string][]string
	if err := json.Unmarshal(data, &table); err != nil {
		return nil, err
	}

	canonical := make(map[string]string, len(table)*2)
	for canon, aliases := range table {
		canonKey := types.NormalizeSkill(canon)
		if canonKey == "" {
			continue
		}
		canonical[canonKey] = canonKey
		for _, alias := range aliases {
			if key := types.NormalizeSkill(alias); key != "" {
				canonical[key] = canonKey
			}
		}
	}
	return &Synonyms{canonical: canonical}, nil
}

// Canonical returns the canonical form of a skill name, or the
// normalized input itself when the table has no entry.
func (s *Synonyms) Canonical(skill string) string {
	key := types.NormalizeSkill(skill)
	if s == nil {
		return key
	}
	if canon, ok := s.canonical[key]; ok {
		return canon
	}
	return key
}

// Same reports whether two skill names refer to the same skill.
func (s *Synonyms) Same(a, b string) bool {
	return s.Canonical(a) == s.Canonical(b)
}

// Known reports whether the table has an entry for the term, under any
// of its names.
func (s *Synonyms) Known(term string) bool {
	if s == nil {
		return false
	}
	_, ok := s.canonical[types.NormalizeSkill(term)]
	return ok
}

// Aliases returns every name the table knows for a skill, canonical
// form first and the rest sorted. A term with no entry has itself as
// its only name.
func (s *Synonyms) Aliases(skill string) []string {
	canon := s.Canonical(skill)
	names := []string{canon}
	if s == nil {
		return names
	}
	for alias, c := range s.canonical {
		if c == canon && alias != canon {
			names = append(names, alias)
		}
	}
	sort.Strings(names[1:])
	return names
}
