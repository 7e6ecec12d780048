package server

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/udit/resume-optimizer/internal/extract"
	"github.com/udit/resume-optimizer/internal/ingest"
	"github.com/udit/resume-optimizer/internal/llm"
	"github.com/udit/resume-optimizer/internal/optimize"
	"github.com/udit/resume-optimizer/internal/pipeline"
	"github.com/udit/resume-optimizer/internal/render"
	"github.com/udit/resume-optimizer/internal/store"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{
			name:     "stored resume not found",
			err:      &store.NotFoundError{UserID: "u1"},
			expected: http.StatusNotFound,
		},
		{
			name:     "model unavailable",
			err:      &llm.ModelUnavailableError{Message: "quota exhausted"},
			expected: http.StatusServiceUnavailable,
		},
		{
			name:     "schema violation",
			err:      &llm.SchemaViolationError{Schema: "parsed_resume.json"},
			expected: http.StatusUnprocessableEntity,
		},
		{
			name:     "extraction failed",
			err:      &extract.ExtractionError{Message: "resume text could not be parsed", Attempts: 3},
			expected: http.StatusUnprocessableEntity,
		},
		{
			name: "extraction wrapping an outage is an outage",
			err: &extract.ExtractionError{
				Message:  "resume text could not be parsed",
				Attempts: 3,
				Cause:    &llm.ModelUnavailableError{Message: "timeout"},
			},
			expected: http.StatusServiceUnavailable,
		},
		{
			name:     "optimization failed",
			err:      &optimize.OptimizationError{Message: "no candidate rewrite survived"},
			expected: http.StatusUnprocessableEntity,
		},
		{
			name:     "fetch failed",
			err:      &ingest.FetchError{URL: "https://example.com/job", Message: "HTTP status 500"},
			expected: http.StatusBadGateway,
		},
		{
			name:     "template error",
			err:      &render.TemplateError{Message: "template file not found"},
			expected: http.StatusBadRequest,
		},
		{
			name: "stage error unwraps to its cause",
			err: &pipeline.StageError{
				Stage: pipeline.StageExtracting,
				Err:   &extract.ExtractionError{Message: "empty resume text"},
			},
			expected: http.StatusUnprocessableEntity,
		},
		{
			name:     "unknown error",
			err:      errors.New("boom"),
			expected: http.StatusInternalServerError,
		},
		{
			name:     "nil error",
			err:      nil,
			expected: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, HTTPStatus(tt.err))
		})
	}
}
