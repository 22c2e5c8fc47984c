// Package pipeline wires section location, bullet generation and the page-fit
// loop into a single tailoring run.
package pipeline

import (
	"context"
	"fmt"
	"math/rand/v2"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jonathan/resume-pagefit/internal/allocation"
	"github.com/jonathan/resume-pagefit/internal/db"
	"github.com/jonathan/resume-pagefit/internal/document"
	"github.com/jonathan/resume-pagefit/internal/fitloop"
	"github.com/jonathan/resume-pagefit/internal/pool"
	"github.com/jonathan/resume-pagefit/internal/rewriting"
	"github.com/jonathan/resume-pagefit/internal/sections"
	"github.com/jonathan/resume-pagefit/internal/skills"
	"github.com/jonathan/resume-pagefit/internal/types"
	"github.com/jonathan/resume-pagefit/internal/validation"
)

// ProgressEvent represents a progress update during a run
type ProgressEvent struct {
	Step     string `json:"step"`
	Category string `json:"category"`
	Message  string `json:"message"`
	RunID    string `json:"run_id,omitempty"`
	Content  any    `json:"content,omitempty"`
}

// ProgressCallback is called when run progress occurs
type ProgressCallback func(event ProgressEvent)

// RunStore persists runs and their artifacts. *db.DB implements it.
type RunStore interface {
	CreateRun(ctx context.Context, runID uuid.UUID, input db.RunInput) error
	SaveArtifact(ctx context.Context, runID uuid.UUID, step, category string, content any) error
	SaveTextArtifact(ctx context.Context, runID uuid.UUID, step, category, text string) error
	CompleteRun(ctx context.Context, runID uuid.UUID, status string) error
}

// Options holds everything one tailoring run needs
type Options struct {
	Markup     string   `validate:"required"`
	Keywords   []string `validate:"required"`
	Context    string
	WordLimit  int `validate:"gte=0,lte=200"`
	FullTailor bool
	// Source labels the input in persisted runs (usually the file path)
	Source string

	Generator   rewriting.Generator     `validate:"required"`
	Measurer    validation.PageMeasurer `validate:"required"`
	Categorizer skills.Categorizer      `validate:"-"` // nil leaves the skills section untouched
	Cache       *pool.Cache             `validate:"-"` // nil gives the run a private cache
	Store       RunStore                `validate:"-"`
	Rand        *rand.Rand              `validate:"-"`
	Logger      *zap.Logger             `validate:"-"`
	OnProgress  ProgressCallback        `validate:"-"`
}

// Result is the outcome of a tailoring run
type Result struct {
	RunID      uuid.UUID         `json:"run_id"`
	Markup     string            `json:"-"`
	Report     *types.FitReport  `json:"report"`
	Categories skills.Categories `json:"categories,omitempty"`
}

var validate = validator.New()

type run struct {
	opts   *Options
	id     uuid.UUID
	logger *zap.Logger
	store  RunStore
}

// Tailor fills the resume's sections with keyword-targeted bullets and
// shrinks them until the document fits one page. Generation and
// categorization failures degrade the result; invalid options and
// measurement failures are errors. Persistence failures are logged and ignored.
func Tailor(ctx context.Context, opts Options) (*Result, error) {
	if err := validate.Struct(opts); err != nil {
		return nil, &InputError{Message: "options failed validation", Cause: err}
	}

	doc, err := document.Parse(opts.Markup)
	if err != nil {
		return nil, &InputError{Message: "resume markup could not be parsed", Cause: err}
	}

	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	r := &run{opts: &opts, id: uuid.New(), store: opts.Store}
	r.logger = logger.With(zap.String("run_id", r.id.String()))
	r.start(ctx)

	anchors := sections.NewLocator(nil, r.logger).Locate(doc)
	r.emit(db.StepAnchors, db.CategoryInput,
		fmt.Sprintf("Resolved %d of %d sections", len(anchors), len(types.AllSectionTypes)), anchors)
	r.save(ctx, db.StepAnchors, db.CategoryInput, anchors)

	categories := r.writeSkills(ctx, doc, anchors)

	bulletPool := pool.New(opts.Generator, opts.Cache, r.logger)
	entry, err := bulletPool.GenerateAll(ctx, opts.Keywords, opts.Context, opts.WordLimit)
	if err != nil {
		r.finish(ctx, db.RunStatusFailed)
		return nil, &InputError{Message: "bullet generation rejected input", Cause: err}
	}
	poolSizes := make(map[types.SectionType]int, len(types.StructuralTypes))
	for _, t := range types.StructuralTypes {
		poolSizes[t] = entry.Len(t)
	}
	r.emit(db.StepBulletPool, db.CategoryGeneration, "Generated candidate bullets", poolSizes)
	r.save(ctx, db.StepBulletPool, db.CategoryGeneration, poolSizes)

	loop := fitloop.New(fitloop.Config{
		Pool:      bulletPool,
		Generator: opts.Generator,
		Measurer:  opts.Measurer,
		Registry:  allocation.NewUsageRegistry(),
		Verbs:     allocation.NewVerbTracker(opts.Rand),
		Logger:    r.logger,
	}, fitloop.Options{
		FullTailor: opts.FullTailor,
		Keywords:   opts.Keywords,
		Context:    opts.Context,
		WordLimit:  opts.WordLimit,
		OnMeasure: func(attempt, overall int, fit *validation.PageFit) {
			r.emit(db.StepFitReport, db.CategoryFit,
				fmt.Sprintf("Measured %d page(s) at target %d (shrink %d)", fit.Pages, overall, attempt), fit)
		},
	})

	report, err := loop.Run(ctx, doc, anchors)
	if err != nil {
		r.finish(ctx, db.RunStatusFailed)
		return nil, fmt.Errorf("fit loop failed: %w", err)
	}
	r.save(ctx, db.StepFitReport, db.CategoryFit, report)

	markup, err := doc.HTML()
	if err != nil {
		r.finish(ctx, db.RunStatusFailed)
		return nil, fmt.Errorf("failed to serialize document: %w", err)
	}
	if r.store != nil {
		if err := r.store.SaveTextArtifact(ctx, r.id, db.StepOutputMarkup, db.CategoryOutput, markup); err != nil {
			r.logger.Warn("failed to save output markup", zap.Error(err))
		}
	}
	r.emit(db.StepOutputMarkup, db.CategoryOutput, "Rendered final resume", nil)
	r.finish(ctx, db.RunStatusCompleted)

	return &Result{RunID: r.id, Markup: markup, Report: report, Categories: categories}, nil
}

func (r *run) writeSkills(ctx context.Context, doc *document.Document, anchors sections.Anchors) skills.Categories {
	anchor, ok := anchors.Get(types.SectionSkills)
	if !ok || r.opts.Categorizer == nil || len(r.opts.Keywords) == 0 {
		return nil
	}

	categories, err := r.opts.Categorizer.Categorize(ctx, r.opts.Keywords)
	if err != nil {
		r.logger.Warn("keyword categorization failed, leaving skills section unchanged", zap.Error(err))
		return nil
	}
	if err := skills.WriteCategories(doc, anchor, categories); err != nil {
		r.logger.Warn("failed to write skills section", zap.Error(err))
		return nil
	}

	r.emit(db.StepSkillCategories, db.CategoryGeneration,
		fmt.Sprintf("Grouped %d keywords into %d categories", len(r.opts.Keywords), len(categories)), categories)
	r.save(ctx, db.StepSkillCategories, db.CategoryGeneration, categories)
	return categories
}

// start records the run and its inputs. A store that cannot create the run is dropped.
func (r *run) start(ctx context.Context) {
	if r.store == nil {
		return
	}
	err := r.store.CreateRun(ctx, r.id, db.RunInput{
		Source:     r.opts.Source,
		Keywords:   r.opts.Keywords,
		Context:    r.opts.Context,
		FullTailor: r.opts.FullTailor,
	})
	if err != nil {
		r.logger.Warn("failed to create run record, continuing without persistence", zap.Error(err))
		r.store = nil
		return
	}
	if err := r.store.SaveTextArtifact(ctx, r.id, db.StepInputMarkup, db.CategoryInput, r.opts.Markup); err != nil {
		r.logger.Warn("failed to save input markup", zap.Error(err))
	}
	r.save(ctx, db.StepKeywords, db.CategoryInput, r.opts.Keywords)
}

func (r *run) save(ctx context.Context, step, category string, content any) {
	if r.store == nil {
		return
	}
	if err := r.store.SaveArtifact(ctx, r.id, step, category, content); err != nil {
		r.logger.Warn("failed to save artifact", zap.String("step", step), zap.Error(err))
	}
}

func (r *run) finish(ctx context.Context, status string) {
	if r.store == nil {
		return
	}
	if err := r.store.CompleteRun(ctx, r.id, status); err != nil {
		r.logger.Warn("failed to complete run record", zap.Error(err))
	}
}

// emit calls the progress callback if configured
func (r *run) emit(step, category, message string, content any) {
	if r.opts.OnProgress != nil {
		r.opts.OnProgress(ProgressEvent{
			Step:     step,
			Category: category,
			Message:  message,
			RunID:    r.id.String(),
			Content:  content,
		})
	}
}
