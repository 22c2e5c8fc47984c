// Package rewriting generates and tailors resume achievement bullets with an LLM.
package rewriting

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/jonathan/resume-pagefit/internal/llm"
	"github.com/jonathan/resume-pagefit/internal/prompts"
	"github.com/jonathan/resume-pagefit/internal/types"
)

// Mode selects between fresh generation and tailoring of existing bullets
type Mode string

const (
	// ModeGenerate asks for fresh bullets for a section type
	ModeGenerate Mode = "generate"
	// ModeTailor rewrites a section's existing bullets against the keywords
	ModeTailor Mode = "tailor"
)

// DefaultWordLimit is used when a request carries no positive word limit
const DefaultWordLimit = 22

const promptFile = "bullets.json"

// Request describes one call to the text generator
type Request struct {
	Mode      Mode
	Section   types.SectionType
	Existing  []string // tailor mode only
	Keywords  []string
	Context   string
	WordLimit int
}

// Generator produces candidate bullets. Implementations return an empty
// slice when the model yields nothing usable; only transport failures are errors.
type Generator interface {
	Generate(ctx context.Context, req Request) ([]string, error)
}

var sectionDescriptions = map[types.SectionType]string{
	types.SectionJob:       "professional work experience",
	types.SectionProject:   "personal or professional projects",
	types.SectionEducation: "academic work, coursework and research",
}

// GeminiGenerator implements Generator on top of an llm.Client
type GeminiGenerator struct {
	client llm.Client
	tier   llm.ModelTier
	logger *zap.Logger
}

// NewGeminiGenerator creates a generator using the advanced model tier
func NewGeminiGenerator(client llm.Client, logger *zap.Logger) *GeminiGenerator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GeminiGenerator{client: client, tier: llm.TierAdvanced, logger: logger}
}

// Generate sends one generation or tailoring prompt and returns the cleaned bullets
func (g *GeminiGenerator) Generate(ctx context.Context, req Request) ([]string, error) {
	prompt, err := BuildPrompt(req)
	if err != nil {
		return nil, err
	}

	response, err := g.client.GenerateJSON(ctx, prompt, g.tier)
	if err != nil {
		return nil, &APICallError{
			Message: fmt.Sprintf("failed to %s bullets for %s", req.Mode, req.Section),
			Cause:   err,
		}
	}

	bullets := ParseBullets(response)
	g.logger.Debug("generated bullets",
		zap.String("mode", string(req.Mode)),
		zap.String("section", req.Section.String()),
		zap.Int("count", len(bullets)))
	return bullets, nil
}

// BuildPrompt renders the prompt template for a request
func BuildPrompt(req Request) (string, error) {
	var key string
	switch req.Mode {
	case ModeGenerate:
		key = "generate"
	case ModeTailor:
		if len(req.Existing) == 0 {
			return "", &RequestError{Message: "tailor mode requires existing bullets"}
		}
		key = "tailor"
	default:
		return "", &RequestError{Message: fmt.Sprintf("unknown mode %q", req.Mode)}
	}

	wordLimit := req.WordLimit
	if wordLimit <= 0 {
		wordLimit = DefaultWordLimit
	}

	description, ok := sectionDescriptions[req.Section]
	if !ok {
		description = req.Section.String()
	}

	var existing strings.Builder
	for _, b := range req.Existing {
		existing.WriteString("- ")
		existing.WriteString(b)
		existing.WriteString("\n")
	}

	keywords := "(none)"
	if len(req.Keywords) > 0 {
		keywords = strings.Join(req.Keywords, ", ")
	}

	return prompts.Render(promptFile, key, map[string]string{
		"Section":            req.Section.String(),
		"SectionDescription": description,
		"Keywords":           keywords,
		"Context":            strings.TrimSpace(req.Context),
		"WordLimit":          strconv.Itoa(wordLimit),
		"Existing":           strings.TrimSuffix(existing.String(), "\n"),
	})
}
