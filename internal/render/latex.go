package render

import (
	"bytes"
	_ "embed"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/udit/resume-optimizer/internal/types"
)

//go:embed resume.tmpl
var defaultTemplate string

// TemplateData is the root value a resume template executes against. All
// string fields arrive pre-escaped for LaTeX; custom templates that add
// raw text of their own can use the registered escape function.
type TemplateData struct {
	Name        string
	ContactLine string
	Summary     string
	Roles       []RoleSection
	Education   []EducationSection
	Skills      string
}

// RoleSection is one work experience entry, bullets in final order.
type RoleSection struct {
	Title    string
	Employer string
	Dates    string
	Bullets  []string
}

// EducationSection is one education entry.
type EducationSection struct {
	Institution string
	Credential  string
	Dates       string
}

// RenderLaTeX renders a resume into a LaTeX document. An empty
// templatePath selects the embedded default template; otherwise the file
// at templatePath is parsed as a text/template over TemplateData.
func RenderLaTeX(resume *types.ParsedResume, templatePath string) (string, error) {
	if resume == nil {
		return "", &RenderError{Message: "no resume to render"}
	}

	tmpl, err := loadTemplate(templatePath)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, buildTemplateData(resume)); err != nil {
		return "", &RenderError{Message: "template execution failed", Cause: err}
	}
	return buf.String(), nil
}

func loadTemplate(path string) (*template.Template, error) {
	if path == "" {
		return parseTemplate("resume", defaultTemplate)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &TemplateError{Message: "template file not found: " + path}
		}
		return nil, &TemplateError{Message: "template file not readable", Cause: err}
	}
	return parseTemplate(filepath.Base(path), string(raw))
}

func parseTemplate(name, text string) (*template.Template, error) {
	tmpl, err := template.New(name).Funcs(template.FuncMap{
		"escape": EscapeLaTeX,
	}).Parse(text)
	if err != nil {
		return nil, &TemplateError{Message: "template did not parse", Cause: err}
	}
	return tmpl, nil
}

func buildTemplateData(resume *types.ParsedResume) *TemplateData {
	data := &TemplateData{
		Name:        EscapeLaTeX(resume.Contact.Name),
		ContactLine: buildContactLine(resume.Contact),
		Summary:     EscapeLaTeX(resume.Summary),
		Skills:      joinEscaped(resume.Skills, ", "),
	}
	if data.Name == "" {
		data.Name = EscapeLaTeX(resume.Contact.Email)
	}

	for _, exp := range resume.Experience {
		role := RoleSection{
			Title:    EscapeLaTeX(exp.Title),
			Employer: EscapeLaTeX(exp.Employer),
			Dates:    formatDates(exp.Start, exp.End, exp.IsCurrent()),
		}
		for _, b := range exp.Bullets {
			role.Bullets = append(role.Bullets, EscapeLaTeX(b.Text))
		}
		data.Roles = append(data.Roles, role)
	}

	for _, edu := range resume.Education {
		data.Education = append(data.Education, EducationSection{
			Institution: EscapeLaTeX(edu.Institution),
			Credential:  EscapeLaTeX(credential(edu)),
			Dates:       formatDates(edu.Start, edu.End, false),
		})
	}

	return data
}

func buildContactLine(c types.ContactInfo) string {
	var parts []string
	// When there is no name the email serves as the headline instead.
	if c.Name != "" && c.Email != "" {
		parts = append(parts, c.Email)
	}
	if c.Phone != "" {
		parts = append(parts, c.Phone)
	}
	if c.Location != "" {
		parts = append(parts, c.Location)
	}
	parts = append(parts, c.Links...)
	return joinEscaped(parts, ` \textbar{} `)
}

func credential(edu types.Education) string {
	switch {
	case edu.Degree != "" && edu.Field != "":
		return edu.Degree + " in " + edu.Field
	case edu.Degree != "":
		return edu.Degree
	default:
		return edu.Field
	}
}

// formatDates renders a date range with a LaTeX en-dash. Current roles end
// in "Present" regardless of how the source text spelled it.
func formatDates(start, end string, current bool) string {
	start = strings.TrimSpace(start)
	end = strings.TrimSpace(end)
	if current {
		end = "Present"
	}
	switch {
	case start == "" && end == "":
		return ""
	case start == "":
		return end
	case end == "":
		return start
	default:
		return start + " -- " + end
	}
}

func joinEscaped(items []string, sep string) string {
	escaped := make([]string, 0, len(items))
	for _, item := range items {
		if item == "" {
			continue
		}
		escaped = append(escaped, EscapeLaTeX(item))
	}
	return strings.Join(escaped, sep)
}
