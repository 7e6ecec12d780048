package llm

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udit/resume-optimizer/internal/schemas"
)

func TestFake_ScriptedResponses(t *testing.T) {
	fake := NewFake().
		Respond(`{"text": "first"}`).
		Respond(`{"text": "second"}`)

	got, err := fake.Complete(context.Background(), Request{Prompt: "p", Schema: schemas.Rewrite})
	require.NoError(t, err)
	assert.JSONEq(t, `{"text": "first"}`, got)

	got, err = fake.Complete(context.Background(), Request{Prompt: "p", Schema: schemas.Rewrite})
	require.NoError(t, err)
	assert.JSONEq(t, `{"text": "second"}`, got)

	// Last response repeats once the script is exhausted.
	got, err = fake.Complete(context.Background(), Request{Prompt: "p", Schema: schemas.Rewrite})
	require.NoError(t, err)
	assert.JSONEq(t, `{"text": "second"}`, got)

	assert.Equal(t, 3, fake.CallCount())
}

func TestFake_ValidatesAgainstSchema(t *testing.T) {
	fake := NewFake().Respond(`{"wrong_field": true}`)

	_, err := fake.Complete(context.Background(), Request{Prompt: "p", Schema: schemas.Rewrite})
	require.Error(t, err)

	var violation *SchemaViolationError
	assert.ErrorAs(t, err, &violation)
}

func TestFake_StripsFencesLikeRealClient(t *testing.T) {
	fake := NewFake().Respond("```json\n{\"text\": \"fenced\"}\n```")

	got, err := fake.Complete(context.Background(), Request{Prompt: "p", Schema: schemas.Rewrite})
	require.NoError(t, err)
	assert.JSONEq(t, `{"text": "fenced"}`, got)
}

func TestFake_ScriptedError(t *testing.T) {
	wantErr := &ModelUnavailableError{Message: "down"}
	fake := NewFake().Fail(wantErr)

	_, err := fake.Complete(context.Background(), Request{Prompt: "p"})
	var unavailable *ModelUnavailableError
	require.ErrorAs(t, err, &unavailable)
	assert.Equal(t, "down", unavailable.Message)
}

func TestFake_CancelledContext(t *testing.T) {
	fake := NewFake().Respond(`{}`)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := fake.Complete(ctx, Request{Prompt: "p"})
	var unavailable *ModelUnavailableError
	assert.ErrorAs(t, err, &unavailable)
	assert.Equal(t, 0, fake.CallCount())
}

func TestValidateOutput_EmptySchemaSkipsValidation(t *testing.T) {
	got, err := ValidateOutput("", "anything goes")
	require.NoError(t, err)
	assert.Equal(t, "anything goes", got)
}

func TestNewGeminiClient_RequiresKey(t *testing.T) {
	_, err := NewGeminiClient(context.Background(), DefaultConfig(), "")
	var unavailable *ModelUnavailableError
	assert.ErrorAs(t, err, &unavailable)
}
