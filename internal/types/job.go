// Package types provides type definitions for structured data used throughout the resume-optimizer system.
package types

import "strings"

// SeniorityLevel classifies the level a job posting targets.
type SeniorityLevel string

// Seniority levels recognized in job postings. Anything else coerces to
// SeniorityUnspecified rather than failing extraction.
const (
	SeniorityJunior      SeniorityLevel = "junior"
	SeniorityMid         SeniorityLevel = "mid"
	SenioritySenior      SeniorityLevel = "senior"
	SeniorityStaff       SeniorityLevel = "staff"
	SeniorityUnspecified SeniorityLevel = "unspecified"
)

// ParseSeniority maps free-form level text onto a SeniorityLevel.
func ParseSeniority(s string) SeniorityLevel {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "junior", "entry", "entry-level", "associate":
		return SeniorityJunior
	case "mid", "mid-level", "intermediate":
		return SeniorityMid
	case "senior", "sr", "sr.":
		return SenioritySenior
	case "staff", "principal", "lead":
		return SeniorityStaff
	default:
		return SeniorityUnspecified
	}
}

// JobRequirements is the structured form of a job posting. Skill sets are
// normalized like resume skills; Responsibilities stays free text for the
// matcher's lexical overlap. The record is immutable once produced for an
// analysis run.
type JobRequirements struct {
	Title            string         `json:"title"`
	RequiredSkills   []string       `json:"required_skills"`
	PreferredSkills  []string       `json:"preferred_skills,omitempty"`
	Seniority        SeniorityLevel `json:"seniority"`
	Responsibilities string         `json:"responsibilities,omitempty"`
}

// Normalize rewrites both skill sets into normalized form and coerces the
// seniority level.
func (j *JobRequirements) Normalize() {
	j.RequiredSkills = NormalizeSkills(j.RequiredSkills)
	j.PreferredSkills = NormalizeSkills(j.PreferredSkills)
	j.Seniority = ParseSeniority(string(j.Seniority))
}

// Clone returns a deep copy.
func (j *JobRequirements) Clone() *JobRequirements {
	if j == nil {
		return nil
	}
	out := *j
	out.RequiredSkills = append([]string(nil), j.RequiredSkills...)
	out.PreferredSkills = append([]string(nil), j.PreferredSkills...)
	return &out
}
