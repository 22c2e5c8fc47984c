package rewriting

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-pagefit/internal/llm"
	"github.com/jonathan/resume-pagefit/internal/types"
)

// MockLLMClient implements llm.Client for testing
type MockLLMClient struct {
	GenerateJSONFunc func(ctx context.Context, prompt string, tier llm.ModelTier) (string, error)
	calls            int
	lastPrompt       string
	lastTier         llm.ModelTier
}

func (m *MockLLMClient) GenerateContent(_ context.Context, _ string, _ llm.ModelTier) (string, error) {
	return "", nil
}

func (m *MockLLMClient) GenerateJSON(ctx context.Context, prompt string, tier llm.ModelTier) (string, error) {
	m.calls++
	m.lastPrompt = prompt
	m.lastTier = tier
	if m.GenerateJSONFunc != nil {
		return m.GenerateJSONFunc(ctx, prompt, tier)
	}
	return `{"bullets": []}`, nil
}

func (m *MockLLMClient) Close() error {
	return nil
}

func TestGeminiGenerator_Generate(t *testing.T) {
	client := &MockLLMClient{
		GenerateJSONFunc: func(_ context.Context, _ string, _ llm.ModelTier) (string, error) {
			return `{"bullets": ["1. Built a Go service", "Led Kafka migration"]}`, nil
		},
	}
	gen := NewGeminiGenerator(client, nil)

	bullets, err := gen.Generate(context.Background(), Request{
		Mode:      ModeGenerate,
		Section:   types.SectionJob,
		Keywords:  []string{"Go", "Kafka"},
		Context:   "Backend engineer at a fintech",
		WordLimit: 18,
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"Built a Go service", "Led Kafka migration"}, bullets)
	assert.Equal(t, 1, client.calls)
	assert.Equal(t, llm.TierAdvanced, client.lastTier)
	assert.Contains(t, client.lastPrompt, "Go, Kafka")
	assert.Contains(t, client.lastPrompt, "at most 18 words")
	assert.Contains(t, client.lastPrompt, "professional work experience")
}

func TestGeminiGenerator_TransportFailure(t *testing.T) {
	client := &MockLLMClient{
		GenerateJSONFunc: func(_ context.Context, _ string, _ llm.ModelTier) (string, error) {
			return "", errors.New("connection reset")
		},
	}
	gen := NewGeminiGenerator(client, nil)

	_, err := gen.Generate(context.Background(), Request{Mode: ModeGenerate, Section: types.SectionProject})

	var apiErr *APICallError
	require.True(t, errors.As(err, &apiErr))
	assert.Contains(t, err.Error(), "connection reset")
}

func TestGeminiGenerator_EmptyResultIsNotAnError(t *testing.T) {
	client := &MockLLMClient{
		GenerateJSONFunc: func(_ context.Context, _ string, _ llm.ModelTier) (string, error) {
			return "I could not come up with anything.", nil
		},
	}
	gen := NewGeminiGenerator(client, nil)

	bullets, err := gen.Generate(context.Background(), Request{Mode: ModeGenerate, Section: types.SectionEducation})

	require.NoError(t, err)
	assert.Equal(t, []string{"I could not come up with anything."}, bullets)
}

func TestGeminiGenerator_TailorRequiresExisting(t *testing.T) {
	client := &MockLLMClient{}
	gen := NewGeminiGenerator(client, nil)

	_, err := gen.Generate(context.Background(), Request{Mode: ModeTailor, Section: types.SectionJob})

	var reqErr *RequestError
	require.True(t, errors.As(err, &reqErr))
	assert.Equal(t, 0, client.calls)
}

func TestBuildPrompt(t *testing.T) {
	t.Run("tailor lists existing bullets", func(t *testing.T) {
		prompt, err := BuildPrompt(Request{
			Mode:     ModeTailor,
			Section:  types.SectionJob,
			Existing: []string{"Built X", "Led Y"},
		})
		require.NoError(t, err)
		assert.Contains(t, prompt, "- Built X\n- Led Y")
		assert.Contains(t, prompt, "(none)")
	})

	t.Run("default word limit", func(t *testing.T) {
		prompt, err := BuildPrompt(Request{Mode: ModeGenerate, Section: types.SectionProject})
		require.NoError(t, err)
		assert.Contains(t, prompt, "at most 22 words")
	})

	t.Run("unknown mode", func(t *testing.T) {
		_, err := BuildPrompt(Request{Mode: "rewrite", Section: types.SectionJob})
		assert.Error(t, err)
	})
}
