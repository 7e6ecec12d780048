package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/udit/resume-optimizer/internal/logger"
	"github.com/udit/resume-optimizer/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer writes formatted report boxes for verbose CLI output.
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer.
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// writeList writes a capped bullet list under a heading, with a trailing
// "and N more" line when items were cut.
func writeList(sb *strings.Builder, heading string, items []string, limit int) {
	if len(items) == 0 {
		return
	}
	sb.WriteString(heading + ":\n")
	count := min(len(items), limit)
	for i := 0; i < count; i++ {
		sb.WriteString(fmt.Sprintf("  • %s\n", items[i]))
	}
	if len(items) > limit {
		sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(items)-limit))
	}
}

// PrintResume outputs a human-readable summary of a parsed resume.
func (p *Printer) PrintResume(resume *types.ParsedResume) {
	if resume == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Name:   %s\n", resume.Contact.Name))
	if resume.Contact.Email != "" {
		sb.WriteString(fmt.Sprintf("Email:  %s\n", resume.Contact.Email))
	}
	sb.WriteString("\n")

	if len(resume.Experience) > 0 {
		sb.WriteString(fmt.Sprintf("Experience (%d roles):\n", len(resume.Experience)))
		count := min(len(resume.Experience), maxItemsToShow)
		for i := 0; i < count; i++ {
			exp := resume.Experience[i]
			line := exp.Title
			if exp.Employer != "" {
				line += ", " + exp.Employer
			}
			sb.WriteString(fmt.Sprintf("  • %s (%d bullets)\n", logger.Truncate(line, 40), len(exp.Bullets)))
		}
		if len(resume.Experience) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(resume.Experience)-maxItemsToShow))
		}
		sb.WriteString("\n")
	}

	if len(resume.Skills) > 0 {
		sb.WriteString(fmt.Sprintf("Skills: %s\n", logger.Truncate(strings.Join(resume.Skills, ", "), 45)))
	}

	p.printBox("PARSED RESUME", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintJob outputs a human-readable summary of parsed job requirements.
func (p *Printer) PrintJob(job *types.JobRequirements) {
	if job == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Title:      %s\n", job.Title))
	sb.WriteString(fmt.Sprintf("Seniority:  %s\n", job.Seniority))
	sb.WriteString("\n")

	writeList(&sb, "Required", job.RequiredSkills, maxItemsToShow)
	writeList(&sb, "Preferred", job.PreferredSkills, 3)

	p.printBox("PARSED JOB REQUIREMENTS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintMatch outputs the compatibility verdict with its gap report.
func (p *Printer) PrintMatch(match *types.MatchResult) {
	if match == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Score: %.2f\n\n", match.Score))

	writeList(&sb, "Matched", match.MatchedSkills, maxItemsToShow)
	writeList(&sb, "Missing (required)", match.MissingRequired, maxItemsToShow)
	writeList(&sb, "Missing (preferred)", match.MissingPreferred, 3)
	if len(match.MissingRequired) == 0 && len(match.MissingPreferred) == 0 {
		sb.WriteString("No skill gaps found.\n")
	}

	if len(match.Experience) > 0 {
		sb.WriteString("\nExperience relevance:\n")
		count := min(len(match.Experience), maxItemsToShow)
		for i := 0; i < count; i++ {
			exp := match.Experience[i]
			sb.WriteString(fmt.Sprintf("  %.2f  %s\n", exp.Score, logger.Truncate(exp.Title, 40)))
		}
	}

	p.printBox("MATCH REPORT", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintOptimization outputs the optimizer's verdict and its change log.
func (p *Printer) PrintOptimization(result *types.OptimizationResult) {
	if result == nil {
		return
	}

	var sb strings.Builder
	if result.Outcome == types.OutcomeNoImprovement {
		sb.WriteString("No safe improvement found; resume unchanged.\n")
		sb.WriteString(fmt.Sprintf("Score: %.2f", result.BeforeScore))
		p.printBox("OPTIMIZATION RESULT", sb.String())
		return
	}

	sb.WriteString(fmt.Sprintf("Score: %.2f → %.2f\n\n", result.BeforeScore, result.AfterScore))
	sb.WriteString(fmt.Sprintf("Changes (%d):\n", len(result.Changes)))

	count := min(len(result.Changes), maxItemsToShow)
	for i := 0; i < count; i++ {
		change := result.Changes[i]
		sb.WriteString(fmt.Sprintf("  • %s\n", change.Field))
		sb.WriteString(fmt.Sprintf("    %s\n", logger.Truncate(change.Revised, 45)))
	}
	if len(result.Changes) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(result.Changes)-maxItemsToShow))
	}

	p.printBox("OPTIMIZATION RESULT", strings.TrimSuffix(sb.String(), "\n"))
}
