package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenize_TechTokensSurvive(t *testing.T) {
	tokens := Tokenize("Experience with C++, C# and Node.js services")

	assert.True(t, tokens["c++"])
	assert.True(t, tokens["c#"])
	assert.True(t, tokens["node.js"])
	assert.True(t, tokens["services"])
}

func TestTokenize_DropsStopWordsAndShortTokens(t *testing.T) {
	tokens := Tokenize("You will work with the team on Go")

	assert.False(t, tokens["you"])
	assert.False(t, tokens["the"])
	assert.False(t, tokens["will"])
	assert.False(t, tokens["on"])
	// "go" is two runes and falls under the length floor; skill matching
	// covers it separately via the skill sets.
	assert.False(t, tokens["go"])
}

func TestTokenize_TrailingDotTrimmed(t *testing.T) {
	tokens := Tokenize("Shipped the billing service.")

	assert.True(t, tokens["billing"])
	assert.True(t, tokens["service"])
	assert.False(t, tokens["service."])
}

func TestTokenize_Lowercases(t *testing.T) {
	tokens := Tokenize("PostgreSQL and Kafka")

	assert.True(t, tokens["postgresql"])
	assert.True(t, tokens["kafka"])
}

func TestOverlapScore(t *testing.T) {
	want := map[string]bool{"alpha": true, "beta": true, "gamma": true, "delta": true}
	have := map[string]bool{"alpha": true, "beta": true, "other": true}

	assert.InDelta(t, 0.5, overlapScore(want, have), 1e-9)
	assert.Equal(t, 0.0, overlapScore(map[string]bool{}, have))
	assert.Equal(t, 0.0, overlapScore(want, map[string]bool{}))
}

