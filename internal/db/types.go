package db

import (
	"time"

	"github.com/google/uuid"
)

// Run represents a tailoring run record
type Run struct {
	ID          uuid.UUID  `json:"id"`
	Source      string     `json:"source"`
	Keywords    []string   `json:"keywords"`
	Context     string     `json:"context"`
	FullTailor  bool       `json:"full_tailor"`
	Status      string     `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// RunInput holds the fields recorded when a run starts
type RunInput struct {
	Source     string
	Keywords   []string
	Context    string
	FullTailor bool
}

// Artifact represents an artifact record
type Artifact struct {
	ID          uuid.UUID `json:"id"`
	RunID       uuid.UUID `json:"run_id"`
	Step        string    `json:"step"`
	Category    string    `json:"category"`
	Content     []byte    `json:"content,omitempty"`
	TextContent string    `json:"text_content,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// Run status values
const (
	RunStatusRunning   = "running"
	RunStatusCompleted = "completed"
	RunStatusFailed    = "failed"
)

// ArtifactStep constants for known artifact types
const (
	StepInputMarkup     = "input_markup"
	StepKeywords        = "keywords"
	StepAnchors         = "anchors"
	StepSkillCategories = "skill_categories"
	StepBulletPool      = "bullet_pool"
	StepFitReport       = "fit_report"
	StepOutputMarkup    = "output_markup"
)

// Artifact categories
const (
	CategoryInput      = "input"
	CategoryGeneration = "generation"
	CategoryFit        = "fit"
	CategoryOutput     = "output"
)
