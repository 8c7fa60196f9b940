package prompts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet_ValidPrompt(t *testing.T) {
	ClearCache()

	prompt, err := Get("matching.json", "analyze-job")
	require.NoError(t, err)
	assert.NotEmpty(t, prompt)
	assert.Contains(t, prompt, "jobTitle")
}

func TestGet_InvalidFile(t *testing.T) {
	ClearCache()

	_, err := Get("nonexistent.json", "some-key")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read prompt file")
}

func TestGet_InvalidKey(t *testing.T) {
	ClearCache()

	_, err := Get("matching.json", "nonexistent-key")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestMustGet_Panics(t *testing.T) {
	ClearCache()

	assert.Panics(t, func() {
		MustGet("nonexistent.json", "some-key")
	})
}

func TestMustGet_AllPipelinePrompts(t *testing.T) {
	ClearCache()

	for _, key := range []string{"analyze-job", "evaluate-candidate", "recommend-best-match"} {
		assert.NotPanics(t, func() {
			prompt := MustGet("matching.json", key)
			assert.NotEmpty(t, prompt)
		})
	}
}

func TestList(t *testing.T) {
	ClearCache()

	keys, err := List("matching.json")
	require.NoError(t, err)
	assert.Contains(t, keys, "analyze-job")
	assert.Contains(t, keys, "evaluate-candidate")
}

func TestCaching(t *testing.T) {
	ClearCache()

	prompt1, err := Get("matching.json", "analyze-job")
	require.NoError(t, err)

	prompt2, err := Get("matching.json", "analyze-job")
	require.NoError(t, err)

	assert.Equal(t, prompt1, prompt2)
}
