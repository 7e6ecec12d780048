package render

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udit/resume-optimizer/internal/types"
)

func sampleResume() *types.ParsedResume {
	return &types.ParsedResume{
		Contact: types.ContactInfo{
			Name:     "Jane Doe",
			Email:    "jane@example.com",
			Phone:    "555-0100",
			Location: "Portland, OR",
			Links:    []string{"github.com/janedoe"},
		},
		Summary: "Backend engineer focused on data infrastructure.",
		Experience: []types.WorkExperience{
			{
				Title:    "Senior Engineer",
				Employer: "Acme",
				Start:    "2021-03",
				End:      "present",
				Bullets: []types.Bullet{
					{Text: "Built data pipelines in Python", Span: types.SourceSpan{Start: 0, End: 10}},
					{Text: "Led migration to Kubernetes", Span: types.SourceSpan{Start: 11, End: 20}},
				},
			},
			{
				Title:    "Engineer",
				Employer: "Initech",
				Start:    "2018-06",
				End:      "2021-02",
			},
		},
		Education: []types.Education{
			{Institution: "State University", Degree: "B.S.", Field: "Computer Science", End: "2018"},
		},
		Skills: []string{"python", "go", "kubernetes"},
	}
}

func TestRenderLaTeX_DefaultTemplate(t *testing.T) {
	latex, err := RenderLaTeX(sampleResume(), "")
	require.NoError(t, err)

	assert.Contains(t, latex, `\documentclass`)
	assert.Contains(t, latex, "Jane Doe")
	assert.Contains(t, latex, `jane@example.com \textbar{} 555-0100`)
	assert.Contains(t, latex, `\textbf{Senior Engineer}, Acme`)
	assert.Contains(t, latex, "2021-03 -- Present")
	assert.Contains(t, latex, `\item Built data pipelines in Python`)
	assert.Contains(t, latex, `\textbf{State University}, B.S. in Computer Science`)
	assert.Contains(t, latex, "python, go, kubernetes")
	assert.Contains(t, latex, `\end{document}`)
}

func TestRenderLaTeX_EscapesResumeText(t *testing.T) {
	resume := sampleResume()
	resume.Contact.Name = "Jane & Joe"
	resume.Experience[0].Bullets[0].Text = "Cut costs by 30% migrating to C#"

	latex, err := RenderLaTeX(resume, "")
	require.NoError(t, err)

	assert.Contains(t, latex, `Jane \& Joe`)
	assert.NotContains(t, latex, "Jane & Joe")
	assert.Contains(t, latex, `30\% migrating to C\#`)
}

func TestRenderLaTeX_OmitsEmptySections(t *testing.T) {
	resume := &types.ParsedResume{
		Contact: types.ContactInfo{Name: "Jane Doe"},
	}

	latex, err := RenderLaTeX(resume, "")
	require.NoError(t, err)

	assert.Contains(t, latex, "Jane Doe")
	assert.NotContains(t, latex, `\section*{Summary}`)
	assert.NotContains(t, latex, `\section*{Experience}`)
	assert.NotContains(t, latex, `\section*{Education}`)
	assert.NotContains(t, latex, `\section*{Skills}`)
}

func TestRenderLaTeX_NameFallsBackToEmail(t *testing.T) {
	resume := &types.ParsedResume{
		Contact: types.ContactInfo{Email: "jane@example.com"},
	}

	latex, err := RenderLaTeX(resume, "")
	require.NoError(t, err)
	assert.Contains(t, latex, "jane@example.com")
}

func TestRenderLaTeX_CustomTemplate(t *testing.T) {
	templatePath := filepath.Join(t.TempDir(), "plain.tmpl")
	content := "Candidate: {{.Name}}\nSkills: {{.Skills}}\n"
	require.NoError(t, os.WriteFile(templatePath, []byte(content), 0644))

	latex, err := RenderLaTeX(sampleResume(), templatePath)
	require.NoError(t, err)
	assert.Equal(t, "Candidate: Jane Doe\nSkills: python, go, kubernetes\n", latex)
}

func TestRenderLaTeX_CustomTemplateEscapeFunc(t *testing.T) {
	templatePath := filepath.Join(t.TempDir(), "func.tmpl")
	content := `{{escape "A & B"}}`
	require.NoError(t, os.WriteFile(templatePath, []byte(content), 0644))

	latex, err := RenderLaTeX(sampleResume(), templatePath)
	require.NoError(t, err)
	assert.Equal(t, `A \& B`, latex)
}

func TestRenderLaTeX_MissingTemplate(t *testing.T) {
	_, err := RenderLaTeX(sampleResume(), "/nonexistent/template.tmpl")
	require.Error(t, err)

	var templateErr *TemplateError
	assert.ErrorAs(t, err, &templateErr)
	assert.Contains(t, err.Error(), "template file not found")
}

func TestRenderLaTeX_InvalidTemplateSyntax(t *testing.T) {
	templatePath := filepath.Join(t.TempDir(), "broken.tmpl")
	require.NoError(t, os.WriteFile(templatePath, []byte("{{.Name{{"), 0644))

	_, err := RenderLaTeX(sampleResume(), templatePath)
	require.Error(t, err)

	var templateErr *TemplateError
	assert.ErrorAs(t, err, &templateErr)
}

func TestRenderLaTeX_ExecutionErrorIsRenderError(t *testing.T) {
	templatePath := filepath.Join(t.TempDir(), "wrongfield.tmpl")
	require.NoError(t, os.WriteFile(templatePath, []byte("{{.NoSuchField}}"), 0644))

	_, err := RenderLaTeX(sampleResume(), templatePath)
	require.Error(t, err)

	var renderErr *RenderError
	assert.ErrorAs(t, err, &renderErr)
}

func TestRenderLaTeX_NilResume(t *testing.T) {
	_, err := RenderLaTeX(nil, "")
	require.Error(t, err)

	var renderErr *RenderError
	assert.ErrorAs(t, err, &renderErr)
}

func TestFormatDates(t *testing.T) {
	tests := []struct {
		name     string
		start    string
		end      string
		current  bool
		expected string
	}{
		{"range", "2018-06", "2021-02", false, "2018-06 -- 2021-02"},
		{"current role", "2021-03", "present", true, "2021-03 -- Present"},
		{"current with empty end", "2021-03", "", true, "2021-03 -- Present"},
		{"end only", "", "2018", false, "2018"},
		{"start only", "2019", "", false, "2019"},
		{"empty", "", "", false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, formatDates(tt.start, tt.end, tt.current))
		})
	}
}

func TestBuildTemplateData_ContactLine(t *testing.T) {
	data := buildTemplateData(sampleResume())
	assert.Equal(t, `jane@example.com \textbar{} 555-0100 \textbar{} Portland, OR \textbar{} github.com/janedoe`, data.ContactLine)
}

func TestCredential(t *testing.T) {
	assert.Equal(t, "B.S. in Computer Science", credential(types.Education{Degree: "B.S.", Field: "Computer Science"}))
	assert.Equal(t, "B.S.", credential(types.Education{Degree: "B.S."}))
	assert.Equal(t, "Computer Science", credential(types.Education{Field: "Computer Science"}))
	assert.Equal(t, "", credential(types.Education{}))
}
