package llm

import (
	"context"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/udit/resume-optimizer/internal/schemas"
)

// Request is one structured-output model call. Schema names an embedded
// JSON Schema the response must satisfy; an empty Schema skips
// validation and returns the raw text.
type Request struct {
	Prompt string
	Schema string
	Tier   ModelTier
}

// Client is the model capability. Complete returns schema-validated JSON
// or fails with *ModelUnavailableError / *SchemaViolationError.
type Client interface {
	Complete(ctx context.Context, req Request) (string, error)
	Close() error
}

// GeminiClient implements Client on the Google Gemini API.
type GeminiClient struct {
	client *genai.Client
	config *Config
}

// NewGeminiClient creates a Gemini-backed client.
func NewGeminiClient(ctx context.Context, config *Config, apiKey string) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, &ModelUnavailableError{Message: "API key is required"}
	}
	if config == nil {
		config = DefaultConfig()
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, &ModelUnavailableError{Message: "failed to create Gemini client", Cause: err}
	}

	return &GeminiClient{client: client, config: config}, nil
}

// Complete runs one generation call. Temperature is pinned low so
// extraction is repeatable for identical input; the response MIME type
// forces JSON. The call is bounded by the configured timeout unless the
// caller's context already has a deadline, and is cancellable through
// that context.
func (c *GeminiClient) Complete(ctx context.Context, req Request) (string, error) {
	modelName := c.config.GetModel(req.Tier)
	if modelName == "" {
		return "", &ModelUnavailableError{Message: "no model configured for tier " + string(req.Tier)}
	}

	if _, ok := ctx.Deadline(); !ok {
		timeout := c.config.Timeout
		if timeout <= 0 {
			timeout = DefaultTimeout
		}
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	model := c.client.GenerativeModel(modelName)
	model.SetTemperature(0.1)
	model.ResponseMIMEType = "application/json"

	resp, err := model.GenerateContent(ctx, genai.Text(req.Prompt))
	if err != nil {
		return "", &ModelUnavailableError{Message: "generate content failed", Cause: err}
	}

	text, err := extractTextFromResponse(resp)
	if err != nil {
		return "", err
	}

	return ValidateOutput(req.Schema, CleanJSONBlock(text))
}

// Close releases resources held by the client.
func (c *GeminiClient) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}

// ValidateOutput checks candidate output against a named schema and
// types the failure as a schema violation. Shared by every Client
// implementation so fakes reject malformed output the way the real
// client does.
func ValidateOutput(schema, text string) (string, error) {
	if schema == "" {
		return text, nil
	}
	if err := schemas.Validate(schema, text); err != nil {
		return "", &SchemaViolationError{Schema: schema, Cause: err}
	}
	return text, nil
}

// extractTextFromResponse pulls the text parts out of a Gemini response.
func extractTextFromResponse(resp *genai.GenerateContentResponse) (string, error) {
	if len(resp.Candidates) == 0 {
		return "", &ModelUnavailableError{Message: "no candidates in response"}
	}

	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", &ModelUnavailableError{Message: "no content in response"}
	}

	var parts []string
	for _, part := range candidate.Content.Parts {
		if text, ok := part.(genai.Text); ok {
			parts = append(parts, string(text))
		}
	}
	if len(parts) == 0 {
		return "", &ModelUnavailableError{Message: "no text parts in response"}
	}

	return strings.Join(parts, ""), nil
}
