package skills

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/jonathan/resume-pagefit/internal/llm"
	"github.com/jonathan/resume-pagefit/internal/prompts"
	"github.com/jonathan/resume-pagefit/internal/schemas"
)

// GeminiCategorizer asks the lite model tier to group keywords
type GeminiCategorizer struct {
	client llm.Client
	logger *zap.Logger
}

// NewGeminiCategorizer creates a categorizer backed by an llm.Client
func NewGeminiCategorizer(client llm.Client, logger *zap.Logger) *GeminiCategorizer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GeminiCategorizer{client: client, logger: logger}
}

// Categorize groups keywords into the fixed labels
func (c *GeminiCategorizer) Categorize(ctx context.Context, keywords []string) (Categories, error) {
	if len(keywords) == 0 {
		return Categories{}, nil
	}

	prompt, err := prompts.Render("skills.json", "categorize", map[string]string{
		"Labels":   strings.Join(Labels, ", "),
		"Keywords": strings.Join(keywords, ", "),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build categorize prompt: %w", err)
	}

	response, err := c.client.GenerateJSON(ctx, prompt, llm.TierLite)
	if err != nil {
		return nil, &Error{Message: "categorize call failed", Cause: err}
	}

	cleaned := llm.CleanJSONBlock(response)
	if err := schemas.ValidateString(schemas.SkillCategories, cleaned); err != nil {
		return nil, &Error{Message: "categorize response failed validation", Cause: err}
	}

	var byLabel map[string][]string
	if err := json.Unmarshal([]byte(cleaned), &byLabel); err != nil {
		return nil, &Error{Message: "failed to decode categorize response", Cause: err}
	}

	cats := NewCategories(byLabel, keywords)
	c.logger.Debug("categorized keywords",
		zap.Int("keywords", len(keywords)),
		zap.Int("categories", len(cats)))
	return cats, nil
}
