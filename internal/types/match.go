// Package types provides type definitions for structured data used throughout the resume-optimizer system.
package types

// ExperienceRelevance carries the matcher's per-role relevance score.
type ExperienceRelevance struct {
	Title    string  `json:"title"`
	Employer string  `json:"employer,omitempty"`
	Score    float64 `json:"score"`
}

// MatchResult is the matcher's verdict on a (resume, job) pair. Score is
// in [0,1] and is a deterministic function of its inputs. The skill lists
// form the gap report: matched is the intersection, missing the set
// differences, all in normalized form and sorted for stable output.
type MatchResult struct {
	Score            float64               `json:"score"`
	MatchedSkills    []string              `json:"matched_skills"`
	MissingRequired  []string              `json:"missing_required"`
	MissingPreferred []string              `json:"missing_preferred"`
	Experience       []ExperienceRelevance `json:"experience_relevance,omitempty"`
}
