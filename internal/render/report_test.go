package render

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/udit/resume-optimizer/internal/types"
)

func TestPrintResume(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintResume(sampleResume())
	output := buf.String()

	assert.Contains(t, output, "PARSED RESUME")
	assert.Contains(t, output, "Jane Doe")
	assert.Contains(t, output, "jane@example.com")
	assert.Contains(t, output, "Experience (2 roles)")
	assert.Contains(t, output, "Senior Engineer, Acme (2 bullets)")
	assert.Contains(t, output, "python, go, kubernetes")
}

func TestPrintResume_Nil(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintResume(nil)

	assert.Empty(t, buf.String())
}

func TestPrintJob(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	job := &types.JobRequirements{
		Title:           "Senior Backend Engineer",
		RequiredSkills:  []string{"python", "kubernetes"},
		PreferredSkills: []string{"sql"},
		Seniority:       types.SenioritySenior,
	}

	p.PrintJob(job)
	output := buf.String()

	assert.Contains(t, output, "PARSED JOB REQUIREMENTS")
	assert.Contains(t, output, "Senior Backend Engineer")
	assert.Contains(t, output, "senior")
	assert.Contains(t, output, "Required:")
	assert.Contains(t, output, "• python")
	assert.Contains(t, output, "Preferred:")
	assert.Contains(t, output, "• sql")
}

func TestPrintMatch(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	match := &types.MatchResult{
		Score:           0.78,
		MatchedSkills:   []string{"python", "sql"},
		MissingRequired: []string{"kubernetes"},
		Experience: []types.ExperienceRelevance{
			{Title: "Senior Engineer", Employer: "Acme", Score: 0.82},
		},
	}

	p.PrintMatch(match)
	output := buf.String()

	assert.Contains(t, output, "MATCH REPORT")
	assert.Contains(t, output, "Score: 0.78")
	assert.Contains(t, output, "Matched:")
	assert.Contains(t, output, "• python")
	assert.Contains(t, output, "Missing (required):")
	assert.Contains(t, output, "• kubernetes")
	assert.Contains(t, output, "0.82  Senior Engineer")
}

func TestPrintMatch_NoGaps(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintMatch(&types.MatchResult{Score: 1.0, MatchedSkills: []string{"python"}})

	assert.Contains(t, buf.String(), "No skill gaps found.")
}

func TestPrintMatch_TruncatesLongLists(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	match := &types.MatchResult{Score: 0.2}
	for i := 0; i < 8; i++ {
		match.MissingRequired = append(match.MissingRequired, fmt.Sprintf("skill-%d", i))
	}

	p.PrintMatch(match)
	output := buf.String()

	assert.Contains(t, output, "• skill-0")
	assert.Contains(t, output, "• skill-4")
	assert.NotContains(t, output, "• skill-5")
	assert.Contains(t, output, "... and 3 more")
}

func TestPrintOptimization_Improved(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	result := &types.OptimizationResult{
		Outcome:     types.OutcomeImproved,
		BeforeScore: 0.70,
		AfterScore:  0.85,
		Changes: []types.Change{
			{
				Field:   "experience[0].bullets[1]",
				Revised: "Led migration of services onto Kubernetes clusters",
			},
			{Field: "skills", Revised: "kubernetes"},
		},
	}

	p.PrintOptimization(result)
	output := buf.String()

	assert.Contains(t, output, "OPTIMIZATION RESULT")
	assert.Contains(t, output, "0.70 → 0.85")
	assert.Contains(t, output, "Changes (2)")
	assert.Contains(t, output, "experience[0].bullets[1]")
	assert.Contains(t, output, "Led migration of services onto Kubernetes")
}

func TestPrintOptimization_NoImprovement(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	result := &types.OptimizationResult{
		Outcome:     types.OutcomeNoImprovement,
		BeforeScore: 0.78,
		AfterScore:  0.78,
	}

	p.PrintOptimization(result)
	output := buf.String()

	assert.Contains(t, output, "No safe improvement found")
	assert.Contains(t, output, "Score: 0.78")
}

func TestPrintOptimization_Nil(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintOptimization(nil)

	assert.Empty(t, buf.String())
}

func TestPrintBox_TruncatesLongLines(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	long := "This line is much longer than the box is wide and has to be cut down to fit inside it"
	p.printBox("TEST", long)
	output := buf.String()

	assert.Contains(t, output, "...")
	assert.NotContains(t, output, "inside it")
}
