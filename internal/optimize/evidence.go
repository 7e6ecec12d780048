package optimize

import (
	"strings"

	"github.com/udit/resume-optimizer/internal/match"
	"github.com/udit/resume-optimizer/internal/types"
)

// candidate is a missing job skill the resume can honestly surface,
// paired with the bullet whose source span evidences it.
type candidate struct {
	skill  string // the job's name for the skill
	canon  string // canonical form used for comparisons
	exp    int
	bullet int
}

// findCandidates walks the match report's missing skills, required
// before preferred, and keeps those evidenced somewhere in the resume's
// provenance text. Duplicate skills across the two lists collapse to
// one candidate.
func findCandidates(syn *match.Synonyms, resume *types.ParsedResume, prior *types.MatchResult) []candidate {
	seen := make(map[string]bool)
	var out []candidate

	missing := make([]string, 0, len(prior.MissingRequired)+len(prior.MissingPreferred))
	missing = append(missing, prior.MissingRequired...)
	missing = append(missing, prior.MissingPreferred...)

	for _, skill := range missing {
		canon := syn.Canonical(skill)
		if canon == "" || seen[canon] {
			continue
		}
		seen[canon] = true

		if exp, bullet, ok := findEvidence(syn, resume, canon); ok {
			out = append(out, candidate{skill: skill, canon: canon, exp: exp, bullet: bullet})
		}
	}
	return out
}

// findEvidence locates the first bullet whose span text mentions the
// skill under any of its names. Bullets without a valid span cannot
// serve as evidence.
func findEvidence(syn *match.Synonyms, resume *types.ParsedResume, canon string) (int, int, bool) {
	names := syn.Aliases(canon)
	for i := range resume.Experience {
		for j := range resume.Experience[i].Bullets {
			span := resume.Experience[i].Bullets[j].Span
			if !span.Valid() {
				continue
			}
			text := resume.SpanText(span)
			if mentionsSkill(names, text) {
				return i, j, true
			}
		}
	}
	return 0, 0, false
}

// mentionsSkill reports whether text contains the skill under any of
// its names. Single-token names match tokenized text; names the
// tokenizer would split (phrases, slashed or hyphenated terms) match as
// substrings of the collapsed text.
func mentionsSkill(names []string, text string) bool {
	tokens := match.Tokenize(text)
	collapsed := strings.ToLower(text)
	for _, name := range names {
		if tokens[name] {
			return true
		}
		if strings.ContainsAny(name, " /-") && strings.Contains(collapsed, name) {
			return true
		}
	}
	return false
}

// allowedTerms is the canonical vocabulary a rewrite may draw
// skill-bearing words from: the bullet being rewritten, its source
// span, and the skill being surfaced.
func allowedTerms(syn *match.Synonyms, bulletText, spanText, skill string) map[string]bool {
	allowed := make(map[string]bool)
	for token := range match.Tokenize(bulletText) {
		allowed[syn.Canonical(token)] = true
	}
	for token := range match.Tokenize(spanText) {
		allowed[syn.Canonical(token)] = true
	}
	allowed[syn.Canonical(skill)] = true
	return allowed
}

// grounded verifies a rewrite's provenance: any term that names a skill
// the job wants, or that the synonym table knows, must already be in
// the allowed vocabulary. General rephrasing passes; smuggled-in skill
// claims do not.
func grounded(syn *match.Synonyms, revised string, allowed, jobSkills map[string]bool) bool {
	for token := range match.Tokenize(revised) {
		canon := syn.Canonical(token)
		if allowed[canon] {
			continue
		}
		if jobSkills[canon] || syn.Known(token) {
			return false
		}
	}
	return true
}

// jobSkillSet collects the canonical forms of everything the job asks
// for.
func jobSkillSet(syn *match.Synonyms, job *types.JobRequirements) map[string]bool {
	set := make(map[string]bool, len(job.RequiredSkills)+len(job.PreferredSkills))
	for _, s := range job.RequiredSkills {
		set[syn.Canonical(s)] = true
	}
	for _, s := range job.PreferredSkills {
		set[syn.Canonical(s)] = true
	}
	return set
}
