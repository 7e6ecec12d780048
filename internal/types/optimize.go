// Package types provides type definitions for structured data used throughout the resume-optimizer system.
package types

// Outcome classifies an optimization run.
type Outcome string

// Optimization outcomes. NoImprovement is a valid terminal outcome, not a
// failure: the original resume already scored as well as any safe revision.
const (
	OutcomeImproved      Outcome = "improved"
	OutcomeNoImprovement Outcome = "no_improvement"
)

// Change records one edit the optimizer made, with the rationale that
// justifies it against the source text.
type Change struct {
	Field     string `json:"field"`
	Original  string `json:"original"`
	Revised   string `json:"revised"`
	Rationale string `json:"rationale"`
}

// OptimizationResult is the optimizer's output. When Outcome is improved,
// AfterScore >= BeforeScore holds; when it is no_improvement, Revised is
// the original resume and the scores are equal.
type OptimizationResult struct {
	Revised     *ParsedResume `json:"revised"`
	BeforeScore float64       `json:"before_score"`
	AfterScore  float64       `json:"after_score"`
	Outcome     Outcome       `json:"outcome"`
	Changes     []Change      `json:"changes,omitempty"`
}
