package extract

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/udit/resume-optimizer/internal/llm"
	"github.com/udit/resume-optimizer/internal/logger"
	"github.com/udit/resume-optimizer/internal/prompts"
	"github.com/udit/resume-optimizer/internal/schemas"
	"github.com/udit/resume-optimizer/internal/types"
)

// DefaultMaxRetries bounds how often malformed model output is re-prompted
// before the extraction fails.
const DefaultMaxRetries = 2

// Service is the extraction contract the pipeline consumes. CachedExtractor
// decorates it transparently.
type Service interface {
	ExtractResume(ctx context.Context, rawText string) (*types.ParsedResume, error)
	ExtractJob(ctx context.Context, rawText string) (*types.JobRequirements, error)
}

// Extractor implements Service on the model capability.
type Extractor struct {
	client     llm.Client
	maxRetries int
}

// New creates an Extractor. maxRetries < 0 selects the default budget.
func New(client llm.Client, maxRetries int) *Extractor {
	if maxRetries < 0 {
		maxRetries = DefaultMaxRetries
	}
	return &Extractor{client: client, maxRetries: maxRetries}
}

// wire forms of the model's JSON output. Spans are not model-supplied;
// they are anchored here, after parsing.
type wireResume struct {
	Contact    types.ContactInfo `json:"contact"`
	Summary    string            `json:"summary"`
	Experience []wireExperience  `json:"experience"`
	Education  []types.Education `json:"education"`
	Skills     []string          `json:"skills"`
}

type wireExperience struct {
	Title    string       `json:"title"`
	Employer string       `json:"employer"`
	Start    string       `json:"start"`
	End      string       `json:"end"`
	Bullets  []wireBullet `json:"bullets"`
}

type wireBullet struct {
	Text string `json:"text"`
}

// ExtractResume turns raw resume text into a ParsedResume. Malformed or
// unanchorable model output is re-prompted up to the retry budget, then
// the extraction fails with *ExtractionError; no partially-populated
// record is ever returned.
func (e *Extractor) ExtractResume(ctx context.Context, rawText string) (*types.ParsedResume, error) {
	if strings.TrimSpace(rawText) == "" {
		return nil, &ExtractionError{Message: "empty resume text"}
	}

	prompt, err := e.buildPrompt(prompts.KeyResume, schemas.ParsedResume, rawText)
	if err != nil {
		return nil, err
	}

	var lastErr error
	attempts := 0
	for attempt := 0; attempt <= e.maxRetries; attempt++ {
		if err := ctx.Err(); err != nil {
			lastErr = err
			break
		}
		attempts++

		out, err := e.client.Complete(ctx, llm.Request{
			Prompt: prompt,
			Schema: schemas.ParsedResume,
			Tier:   llm.TierStandard,
		})
		if err != nil {
			lastErr = err
			continue
		}

		resume, err := buildResume(out, rawText)
		if err != nil {
			lastErr = err
			continue
		}
		return resume, nil
	}

	return nil, &ExtractionError{Message: "resume text could not be parsed", Attempts: attempts, Cause: lastErr}
}

// ExtractJob turns raw job-posting text into JobRequirements under the
// same retry discipline as ExtractResume.
func (e *Extractor) ExtractJob(ctx context.Context, rawText string) (*types.JobRequirements, error) {
	if strings.TrimSpace(rawText) == "" {
		return nil, &ExtractionError{Message: "empty job posting text"}
	}

	prompt, err := e.buildPrompt(prompts.KeyJob, schemas.JobRequirements, rawText)
	if err != nil {
		return nil, err
	}

	var lastErr error
	attempts := 0
	for attempt := 0; attempt <= e.maxRetries; attempt++ {
		if err := ctx.Err(); err != nil {
			lastErr = err
			break
		}
		attempts++

		out, err := e.client.Complete(ctx, llm.Request{
			Prompt: prompt,
			Schema: schemas.JobRequirements,
			Tier:   llm.TierStandard,
		})
		if err != nil {
			lastErr = err
			continue
		}

		var job types.JobRequirements
		if err := json.Unmarshal([]byte(out), &job); err != nil {
			lastErr = &llm.SchemaViolationError{Schema: schemas.JobRequirements, Cause: err}
			continue
		}
		job.Normalize()
		return &job, nil
	}

	return nil, &ExtractionError{Message: "job posting text could not be parsed", Attempts: attempts, Cause: lastErr}
}

func (e *Extractor) buildPrompt(key, schemaName, text string) (string, error) {
	tpl, err := prompts.Get(prompts.ExtractionFile, key)
	if err != nil {
		return "", &ExtractionError{Message: "prompt template unavailable", Cause: err}
	}
	schema, err := schemas.Get(schemaName)
	if err != nil {
		return "", &ExtractionError{Message: "response schema unavailable", Cause: err}
	}
	return prompts.Format(tpl, map[string]string{"Schema": schema, "Text": text}), nil
}

// buildResume parses validated model output and anchors every bullet to
// its provenance span in the raw text. A bullet the model did not copy
// faithfully enough to locate counts as a schema violation so the caller
// re-prompts.
func buildResume(out, rawText string) (*types.ParsedResume, error) {
	var wire wireResume
	if err := json.Unmarshal([]byte(out), &wire); err != nil {
		return nil, &llm.SchemaViolationError{Schema: schemas.ParsedResume, Cause: err}
	}

	resume := &types.ParsedResume{
		Contact:    wire.Contact,
		Summary:    strings.TrimSpace(wire.Summary),
		Education:  wire.Education,
		Skills:     wire.Skills,
		SourceText: rawText,
	}

	for _, exp := range wire.Experience {
		experience := types.WorkExperience{
			Title:    strings.TrimSpace(exp.Title),
			Employer: strings.TrimSpace(exp.Employer),
			Start:    strings.TrimSpace(exp.Start),
			End:      strings.TrimSpace(exp.End),
		}
		for _, b := range exp.Bullets {
			span, ok := Locate(rawText, b.Text)
			if !ok {
				return nil, &llm.SchemaViolationError{
					Schema: schemas.ParsedResume,
					Cause:  fmt.Errorf("bullet %q not found in source text", logger.Truncate(b.Text, 80)),
				}
			}
			experience.Bullets = append(experience.Bullets, types.Bullet{
				Text: strings.TrimSpace(b.Text),
				Span: span,
			})
		}
		resume.Experience = append(resume.Experience, experience)
	}

	resume.Normalize()
	if err := resume.Validate(); err != nil {
		return nil, &llm.SchemaViolationError{Schema: schemas.ParsedResume, Cause: err}
	}
	return resume, nil
}
