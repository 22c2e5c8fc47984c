package skills

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-pagefit/internal/llm"
)

// MockLLMClient implements llm.Client for testing
type MockLLMClient struct {
	response string
	err      error
	tier     llm.ModelTier
	prompt   string
}

func (m *MockLLMClient) GenerateContent(_ context.Context, _ string, _ llm.ModelTier) (string, error) {
	return "", nil
}

func (m *MockLLMClient) GenerateJSON(_ context.Context, prompt string, tier llm.ModelTier) (string, error) {
	m.prompt = prompt
	m.tier = tier
	return m.response, m.err
}

func (m *MockLLMClient) Close() error {
	return nil
}

func TestGeminiCategorizer_Categorize(t *testing.T) {
	client := &MockLLMClient{
		response: "```json\n{\"Languages\": [\"Go\"], \"Databases\": [\"Redis\"]}\n```",
	}
	c := NewGeminiCategorizer(client, nil)

	cats, err := c.Categorize(context.Background(), []string{"Go", "Redis", "Terraform"})
	require.NoError(t, err)

	assert.Equal(t, llm.TierLite, client.tier)
	assert.Contains(t, client.prompt, "Cloud & Infrastructure")
	assert.Contains(t, client.prompt, "Go, Redis, Terraform")
	assert.Equal(t, Categories{
		{Label: LabelLanguages, Keywords: []string{"Go"}},
		{Label: LabelDatabases, Keywords: []string{"Redis"}},
		{Label: LabelTools, Keywords: []string{"Terraform"}},
	}, cats)
}

func TestGeminiCategorizer_Errors(t *testing.T) {
	tests := []struct {
		name   string
		client *MockLLMClient
	}{
		{"transport failure", &MockLLMClient{err: errors.New("timeout")}},
		{"schema mismatch", &MockLLMClient{response: `{"Languages": "Go"}`}},
		{"not JSON", &MockLLMClient{response: "Languages: Go"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewGeminiCategorizer(tt.client, nil).Categorize(context.Background(), []string{"Go"})
			var skillsErr *Error
			assert.True(t, errors.As(err, &skillsErr))
		})
	}
}

func TestGeminiCategorizer_NoKeywords(t *testing.T) {
	client := &MockLLMClient{}
	cats, err := NewGeminiCategorizer(client, nil).Categorize(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, cats)
	assert.Empty(t, client.prompt)
}
