// Package types provides type definitions for structured data used throughout the resume-optimizer system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ContactInfo represents the contact block of a resume.
// A contact block must carry at least a name or an email address.
type ContactInfo struct {
	Name     string   `json:"name" validate:"required_without=Email"`
	Email    string   `json:"email" validate:"required_without=Name,omitempty,email"`
	Phone    string   `json:"phone,omitempty"`
	Location string   `json:"location,omitempty"`
	Links    []string `json:"links,omitempty"`
}

// SourceSpan locates a half-open [Start, End) byte range inside the raw
// source text a record was extracted from.
type SourceSpan struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Valid reports whether the span addresses a non-empty range.
func (s SourceSpan) Valid() bool {
	return s.Start >= 0 && s.End > s.Start
}

// Bullet represents a single resume bullet point with its provenance span.
// Every bullet traces back to the source text it was extracted from; a
// bullet with no valid span must never leave the extraction boundary.
type Bullet struct {
	Text string     `json:"text"`
	Span SourceSpan `json:"span"`
}

// WorkExperience represents one role on a resume. Dates use YYYY-MM (or
// YYYY) form; End may be "present" (or empty) for a current role.
type WorkExperience struct {
	Title    string   `json:"title"`
	Employer string   `json:"employer"`
	Start    string   `json:"start"`
	End      string   `json:"end"`
	Bullets  []Bullet `json:"bullets"`
}

// IsCurrent reports whether the role is ongoing.
func (w *WorkExperience) IsCurrent() bool {
	end := strings.ToLower(strings.TrimSpace(w.End))
	return end == "" || end == "present" || end == "current"
}

// Education represents one education entry on a resume.
type Education struct {
	Institution string `json:"institution"`
	Degree      string `json:"degree,omitempty"`
	Field       string `json:"field,omitempty"`
	Start       string `json:"start,omitempty"`
	End         string `json:"end,omitempty"`
}

// ParsedResume is the structured form of a resume. Experience and
// Education keep resume order (most recent first by convention); Skills
// is a deduplicated, lowercase-trimmed set. SourceText is the raw text
// the record was extracted from and is the anchor for every bullet span.
type ParsedResume struct {
	Contact    ContactInfo      `json:"contact"`
	Summary    string           `json:"summary,omitempty"`
	Experience []WorkExperience `json:"experience"`
	Education  []Education      `json:"education,omitempty"`
	Skills     []string         `json:"skills"`
	SourceText string           `json:"source_text,omitempty"`
}

// NormalizeSkill lowercases and trims a skill name. All skill sets in the
// system store normalized form so comparisons are case-insensitive.
func NormalizeSkill(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// NormalizeSkills normalizes and deduplicates a skill list, preserving
// first-seen order.
func NormalizeSkills(skills []string) []string {
	seen := make(map[string]bool, len(skills))
	out := make([]string, 0, len(skills))
	for _, s := range skills {
		n := NormalizeSkill(s)
		if n == "" || seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, n)
	}
	return out
}

// Normalize rewrites the resume's skill set into normalized form.
func (r *ParsedResume) Normalize() {
	r.Skills = NormalizeSkills(r.Skills)
}

// SpanText returns the source text addressed by a span, or "" when the
// span falls outside the source.
func (r *ParsedResume) SpanText(s SourceSpan) string {
	if !s.Valid() || s.End > len(r.SourceText) {
		return ""
	}
	return r.SourceText[s.Start:s.End]
}

// Validate checks the resume's structural invariants: a usable contact
// block and ordered dates on every role.
func (r *ParsedResume) Validate() error {
	validate := validator.New()
	if err := validate.Struct(&r.Contact); err != nil {
		return fmt.Errorf("contact: %w", err)
	}
	for i := range r.Experience {
		if err := r.Experience[i].Validate(); err != nil {
			return fmt.Errorf("experience[%d]: %w", i, err)
		}
	}
	return nil
}

// Validate checks that the role's dates are ordered. Dates compare
// lexically, which is correct for zero-padded YYYY-MM form.
func (w *WorkExperience) Validate() error {
	if strings.TrimSpace(w.Title) == "" {
		return fmt.Errorf("missing title")
	}
	if w.IsCurrent() || w.Start == "" {
		return nil
	}
	if w.Start > w.End {
		return fmt.Errorf("start %q after end %q", w.Start, w.End)
	}
	return nil
}

// Clone returns a deep copy. Pipeline runs operate on cloned records so
// concurrent runs never share mutable state.
func (r *ParsedResume) Clone() *ParsedResume {
	if r == nil {
		return nil
	}
	out := *r
	out.Contact.Links = append([]string(nil), r.Contact.Links...)
	out.Skills = append([]string(nil), r.Skills...)
	out.Education = append([]Education(nil), r.Education...)
	out.Experience = make([]WorkExperience, len(r.Experience))
	for i, exp := range r.Experience {
		cp := exp
		cp.Bullets = append([]Bullet(nil), exp.Bullets...)
		out.Experience[i] = cp
	}
	return &out
}
