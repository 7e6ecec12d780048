package match

import (
	"sort"

	"github.com/udit/resume-optimizer/internal/types"
)

// Default component weights: required-skill coverage dominates, preferred
// coverage and experience relevance split the rest.
const (
	defaultRequiredWeight   = 0.6
	defaultPreferredWeight  = 0.2
	defaultExperienceWeight = 0.2

	// recencyDecay is applied per role going back in time: the most
	// recent role weighs 1.0, the one before 0.8, then 0.64, ...
	recencyDecay = 0.8
)

// Weights configures the matcher's component mix. Values need not sum to
// 1; the final score normalizes by the total.
type Weights struct {
	Required   float64
	Preferred  float64
	Experience float64
}

// DefaultWeights returns the standard 0.6 / 0.2 / 0.2 mix.
func DefaultWeights() Weights {
	return Weights{
		Required:   defaultRequiredWeight,
		Preferred:  defaultPreferredWeight,
		Experience: defaultExperienceWeight,
	}
}

// Matcher scores resumes against job requirements. It holds only
// configuration, never per-run state, so one Matcher serves concurrent
// runs.
type Matcher struct {
	weights  Weights
	synonyms *Synonyms
}

// New creates a Matcher. A nil synonym table uses the embedded default.
func New(weights Weights, synonyms *Synonyms) *Matcher {
	if weights.Required <= 0 && weights.Preferred <= 0 && weights.Experience <= 0 {
		weights = DefaultWeights()
	}
	if synonyms == nil {
		synonyms = DefaultSynonyms()
	}
	return &Matcher{weights: weights, synonyms: synonyms}
}

// Synonyms exposes the table so the optimizer can reuse it for evidence
// lookups.
func (m *Matcher) Synonyms() *Synonyms {
	return m.synonyms
}

// Match computes the compatibility score and gap report for a
// (resume, job) pair.
func (m *Matcher) Match(resume *types.ParsedResume, job *types.JobRequirements) *types.MatchResult {
	resumeSkills := m.canonicalSet(resume.Skills)

	requiredScore, matchedReq, missingReq := m.coverage(job.RequiredSkills, resumeSkills)
	preferredScore, matchedPref, missingPref := m.coverage(job.PreferredSkills, resumeSkills)

	experienceScore, perExperience := m.experienceRelevance(resume, job)

	matched := append(matchedReq, matchedPref...)
	sort.Strings(matched)
	sort.Strings(missingReq)
	sort.Strings(missingPref)

	total := m.weights.Required + m.weights.Preferred + m.weights.Experience
	score := (m.weights.Required*requiredScore +
		m.weights.Preferred*preferredScore +
		m.weights.Experience*experienceScore) / total

	return &types.MatchResult{
		Score:            clamp01(score),
		MatchedSkills:    matched,
		MissingRequired:  missingReq,
		MissingPreferred: missingPref,
		Experience:       perExperience,
	}
}

// canonicalSet builds a canonical-form lookup of the resume's skills.
func (m *Matcher) canonicalSet(skills []string) map[string]bool {
	set := make(map[string]bool, len(skills))
	for _, s := range skills {
		set[m.synonyms.Canonical(s)] = true
	}
	return set
}

// coverage scores how much of a job skill set the resume covers. An
// empty set is vacuously satisfied and scores 1.0. Matched and missing
// report the job's own names for the skills, normalized.
func (m *Matcher) coverage(jobSkills []string, resumeSkills map[string]bool) (float64, []string, []string) {
	if len(jobSkills) == 0 {
		return 1.0, nil, nil
	}

	var matched, missing []string
	for _, skill := range jobSkills {
		name := types.NormalizeSkill(skill)
		if resumeSkills[m.synonyms.Canonical(skill)] {
			matched = append(matched, name)
		} else {
			missing = append(missing, name)
		}
	}

	score := float64(len(matched)) / float64(len(jobSkills))
	return score, matched, missing
}

// experienceRelevance scores each role's bullet text against the job's
// responsibilities and aggregates with geometric recency weighting, most
// recent role first.
func (m *Matcher) experienceRelevance(resume *types.ParsedResume, job *types.JobRequirements) (float64, []types.ExperienceRelevance) {
	respTokens := Tokenize(job.Responsibilities)

	perExperience := make([]types.ExperienceRelevance, len(resume.Experience))
	for i, exp := range resume.Experience {
		score := 0.0
		if len(respTokens) > 0 {
			score = clamp01(overlapScore(respTokens, experienceTokens(&resume.Experience[i])))
		}
		perExperience[i] = types.ExperienceRelevance{
			Title:    exp.Title,
			Employer: exp.Employer,
			Score:    score,
		}
	}

	// Nothing to overlap against: the component is neutral rather than a
	// penalty on every resume.
	if len(respTokens) == 0 {
		return 1.0, perExperience
	}
	if len(resume.Experience) == 0 {
		return 0.0, nil
	}

	order := recencyOrder(resume.Experience)
	weight := 1.0
	weightedSum := 0.0
	totalWeight := 0.0
	for _, idx := range order {
		weightedSum += weight * perExperience[idx].Score
		totalWeight += weight
		weight *= recencyDecay
	}

	return clamp01(weightedSum / totalWeight), perExperience
}

// experienceTokens tokenizes all bullet text of a role.
func experienceTokens(exp *types.WorkExperience) map[string]bool {
	tokens := make(map[string]bool)
	for _, b := range exp.Bullets {
		for token := range Tokenize(b.Text) {
			tokens[token] = true
		}
	}
	return tokens
}

// recencyOrder returns experience indices sorted most recent first.
// Current roles sort before ended ones; ended roles compare by end date
// (lexical on YYYY-MM); resume order breaks ties, since resumes are
// conventionally reverse-chronological already.
func recencyOrder(experience []types.WorkExperience) []int {
	order := make([]int, len(experience))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		ea, eb := &experience[order[a]], &experience[order[b]]
		if ea.IsCurrent() != eb.IsCurrent() {
			return ea.IsCurrent()
		}
		if ea.IsCurrent() {
			return false // both current: keep resume order
		}
		return ea.End > eb.End
	})
	return order
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
