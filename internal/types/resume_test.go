package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeSkills_DedupesCaseInsensitive(t *testing.T) {
	got := NormalizeSkills([]string{"Python", "  SQL ", "python", "", "Go"})
	assert.Equal(t, []string{"python", "sql", "go"}, got)
}

func TestParsedResume_Validate_EmptyContactRejected(t *testing.T) {
	r := &ParsedResume{
		Experience: []WorkExperience{{Title: "Engineer", Start: "2020-01", End: "2022-06"}},
	}
	err := r.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "contact")
}

func TestParsedResume_Validate_NameOnlyContact(t *testing.T) {
	r := &ParsedResume{Contact: ContactInfo{Name: "Ada Lovelace"}}
	assert.NoError(t, r.Validate())
}

func TestParsedResume_Validate_EmailOnlyContact(t *testing.T) {
	r := &ParsedResume{Contact: ContactInfo{Email: "ada@example.com"}}
	assert.NoError(t, r.Validate())
}

func TestParsedResume_Validate_BadEmailRejected(t *testing.T) {
	r := &ParsedResume{Contact: ContactInfo{Email: "not-an-email"}}
	assert.Error(t, r.Validate())
}

func TestWorkExperience_Validate_DateOrder(t *testing.T) {
	exp := WorkExperience{Title: "Engineer", Start: "2022-06", End: "2020-01"}
	err := exp.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "after end")

	exp = WorkExperience{Title: "Engineer", Start: "2020-01", End: "2022-06"}
	assert.NoError(t, exp.Validate())
}

func TestWorkExperience_Validate_PresentEnd(t *testing.T) {
	exp := WorkExperience{Title: "Engineer", Start: "2020-01", End: "present"}
	assert.NoError(t, exp.Validate())
	assert.True(t, exp.IsCurrent())

	exp.End = ""
	assert.True(t, exp.IsCurrent())

	exp.End = "2021-03"
	assert.False(t, exp.IsCurrent())
}

func TestParsedResume_SpanText(t *testing.T) {
	r := &ParsedResume{SourceText: "Built a data pipeline in Python."}

	assert.Equal(t, "data pipeline", r.SpanText(SourceSpan{Start: 8, End: 21}))
	assert.Equal(t, "", r.SpanText(SourceSpan{Start: 10, End: 999}))
	assert.Equal(t, "", r.SpanText(SourceSpan{Start: -1, End: 5}))
	assert.Equal(t, "", r.SpanText(SourceSpan{Start: 5, End: 5}))
}

func TestParsedResume_Clone_Isolated(t *testing.T) {
	orig := &ParsedResume{
		Contact: ContactInfo{Name: "Ada Lovelace", Links: []string{"https://example.com"}},
		Skills:  []string{"python", "sql"},
		Experience: []WorkExperience{
			{
				Title:   "Engineer",
				Start:   "2020-01",
				End:     "present",
				Bullets: []Bullet{{Text: "Built pipelines", Span: SourceSpan{Start: 0, End: 15}}},
			},
		},
		SourceText: "Built pipelines",
	}

	clone := orig.Clone()
	require.NotNil(t, clone)

	clone.Skills[0] = "rust"
	clone.Experience[0].Bullets[0].Text = "changed"
	clone.Contact.Links[0] = "changed"

	assert.Equal(t, "python", orig.Skills[0])
	assert.Equal(t, "Built pipelines", orig.Experience[0].Bullets[0].Text)
	assert.Equal(t, "https://example.com", orig.Contact.Links[0])
}

func TestParsedResume_Clone_Nil(t *testing.T) {
	var r *ParsedResume
	assert.Nil(t, r.Clone())
}
