package server

import (
	"errors"
	"net/http"

	"github.com/udit/resume-optimizer/internal/extract"
	"github.com/udit/resume-optimizer/internal/ingest"
	"github.com/udit/resume-optimizer/internal/llm"
	"github.com/udit/resume-optimizer/internal/optimize"
	"github.com/udit/resume-optimizer/internal/render"
	"github.com/udit/resume-optimizer/internal/store"
)

// HTTPStatus maps a pipeline error chain onto an HTTP status code.
// Model availability is checked before the extraction errors that wrap
// it: an upstream outage is a 503 no matter which stage saw it.
func HTTPStatus(err error) int {
	var (
		notFound    *store.NotFoundError
		modelErr    *llm.ModelUnavailableError
		schemaErr   *llm.SchemaViolationError
		extractErr  *extract.ExtractionError
		optimizeErr *optimize.OptimizationError
		fetchErr    *ingest.FetchError
		templateErr *render.TemplateError
	)

	switch {
	case errors.As(err, &notFound):
		return http.StatusNotFound
	case errors.As(err, &modelErr):
		return http.StatusServiceUnavailable
	case errors.As(err, &fetchErr):
		return http.StatusBadGateway
	case errors.As(err, &schemaErr), errors.As(err, &extractErr), errors.As(err, &optimizeErr):
		return http.StatusUnprocessableEntity
	case errors.As(err, &templateErr):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
