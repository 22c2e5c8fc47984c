package fitloop

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/jonathan/resume-pagefit/internal/allocation"
	"github.com/jonathan/resume-pagefit/internal/document"
	"github.com/jonathan/resume-pagefit/internal/pool"
	"github.com/jonathan/resume-pagefit/internal/rewriting"
	"github.com/jonathan/resume-pagefit/internal/sections"
	"github.com/jonathan/resume-pagefit/internal/types"
	"github.com/jonathan/resume-pagefit/internal/validation"
)

// MeasureFunc is called after every page measurement with the shrink
// attempts made so far and the overall target that was measured
type MeasureFunc func(attempt, overall int, fit *validation.PageFit)

// Options control one fit run
type Options struct {
	// FullTailor rewrites each section's existing bullets before filling
	FullTailor bool
	Keywords   []string
	Context    string
	WordLimit  int
	// Weights override DefaultWeights; types without a weight use 1.0
	Weights   map[types.SectionType]float64
	OnMeasure MeasureFunc
}

// Config holds the loop's collaborators. Pool and Measurer are required,
// Generator only with FullTailor; a nil Registry, Verbs or Logger gets a fresh default.
type Config struct {
	Pool      *pool.Pool
	Generator rewriting.Generator
	Measurer  validation.PageMeasurer
	Registry  *allocation.UsageRegistry
	Verbs     *allocation.VerbTracker
	Logger    *zap.Logger
}

// Section is the loop's working state for one resolved structural section
type Section struct {
	Type     types.SectionType
	Anchor   document.Anchor
	Original []string
	Current  []string
	Target   int
	Tailored bool
	Fallback bool
	Recycled int
}

// Loop runs INITIAL_FILL → PAGE_CHECK ⇄ SHRINK → DONE over one document.
// A Loop is single-use and not safe for concurrent use.
type Loop struct {
	cfg    Config
	opts   Options
	logger *zap.Logger
	state  State
}

// New creates a loop
func New(cfg Config, opts Options) *Loop {
	if cfg.Registry == nil {
		cfg.Registry = allocation.NewUsageRegistry()
	}
	if cfg.Verbs == nil {
		cfg.Verbs = allocation.NewVerbTracker(nil)
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if opts.Weights == nil {
		opts.Weights = DefaultWeights
	}
	return &Loop{cfg: cfg, opts: opts, logger: cfg.Logger, state: InitialFill}
}

// State returns the phase the loop is in
func (l *Loop) State() State {
	return l.state
}

// Run fills every resolved structural section, then measures and shrinks
// until the document fits one page or the shrink bound is exhausted. An
// exhausted bound is reported as a warning, not an error; measurement
// failures are fatal.
func (l *Loop) Run(ctx context.Context, doc *document.Document, anchors sections.Anchors) (*types.FitReport, error) {
	if l.cfg.Pool == nil || l.cfg.Measurer == nil {
		return nil, &Error{State: l.state, Message: "pool and measurer are required"}
	}
	if l.opts.FullTailor && l.cfg.Generator == nil {
		return nil, &Error{State: l.state, Message: "generator is required for full tailoring"}
	}

	report := &types.FitReport{MissingSections: anchors.Missing()}

	l.state = InitialFill
	secs, err := l.initialFill(ctx, doc, anchors)
	if err != nil {
		return nil, err
	}

	overall := InitialTarget
	report.Targets = []int{overall}
	attempts := 0

	for {
		l.state = PageCheck
		fit, err := l.measure(ctx, doc)
		if err != nil {
			return nil, err
		}
		report.Pages = fit.Pages
		if l.opts.OnMeasure != nil {
			l.opts.OnMeasure(attempts, overall, fit)
		}

		if !fit.ExceedsOnePage {
			report.Fits = true
			l.logger.Debug("document fits one page",
				zap.Int("shrink_attempts", attempts),
				zap.Int("overall_target", overall))
			break
		}

		if attempts >= MaxShrinkAttempts || overall <= MinTarget {
			report.Warning = fmt.Sprintf("document still spans %d pages after %d shrink attempts", fit.Pages, attempts)
			l.logger.Warn("page fit not reached",
				zap.Int("pages", fit.Pages),
				zap.Int("shrink_attempts", attempts),
				zap.Int("overall_target", overall))
			break
		}

		l.state = Shrink
		overall--
		attempts++
		report.Targets = append(report.Targets, overall)
		for _, sec := range secs {
			if err := l.shrink(doc, sec, overall); err != nil {
				return nil, err
			}
		}
		l.logger.Debug("shrunk sections",
			zap.Int("attempt", attempts),
			zap.Int("overall_target", overall))
	}

	l.state = Done
	report.ShrinkAttempts = attempts
	for _, sec := range secs {
		report.Sections = append(report.Sections, types.SectionFit{
			Type:     sec.Type,
			Target:   sec.Target,
			Bullets:  append([]string(nil), sec.Current...),
			Tailored: sec.Tailored,
			Fallback: sec.Fallback,
			Recycled: sec.Recycled,
		})
	}
	return report, nil
}

func (l *Loop) measure(ctx context.Context, doc *document.Document) (*validation.PageFit, error) {
	markup, err := doc.HTML()
	if err != nil {
		return nil, &Error{State: PageCheck, Message: "failed to serialize document", Cause: err}
	}
	fit, err := l.cfg.Measurer.Measure(ctx, markup)
	if err != nil {
		return nil, &Error{State: PageCheck, Message: "page measurement failed", Cause: err}
	}
	if fit == nil {
		return nil, &Error{State: PageCheck, Message: "measurer returned no result"}
	}
	return fit, nil
}

func (l *Loop) initialFill(ctx context.Context, doc *document.Document, anchors sections.Anchors) ([]*Section, error) {
	var secs []*Section
	for _, t := range types.StructuralTypes {
		anchor, ok := anchors.Get(t)
		if !ok {
			continue
		}

		original, err := doc.Bullets(anchor)
		if err != nil {
			return nil, &Error{State: InitialFill, Message: "failed to read " + t.String() + " bullets", Cause: err}
		}
		sec := &Section{Type: t, Anchor: anchor, Original: original, Target: InitialTarget}

		var candidates []string
		if l.opts.FullTailor && len(original) > 0 {
			candidates = l.tailor(ctx, sec)
		}
		candidates = append(candidates, l.cfg.Pool.ForSection(t, -1)...)

		chosen := l.pick(candidates, t, sec.Target, nil)
		if len(chosen) < sec.Target {
			recycled := l.pick(original, t, sec.Target-len(chosen), chosen)
			sec.Recycled = len(recycled)
			chosen = append(chosen, recycled...)
		}

		if len(chosen) == 0 {
			l.logger.Warn("no bullets available for section", zap.String("section", t.String()))
			secs = append(secs, sec)
			continue
		}

		arrangement := l.cfg.Verbs.Arrange(chosen, t)
		if arrangement.Fallback {
			l.logger.Debug("verb constraints not satisfied, using fallback order",
				zap.String("section", t.String()),
				zap.Int("attempts", arrangement.Attempts))
		}
		for _, b := range arrangement.Bullets {
			l.cfg.Registry.Assign(b, t)
		}
		sec.Current = arrangement.Bullets
		sec.Fallback = arrangement.Fallback

		if err := doc.SetBullets(anchor, sec.Current); err != nil {
			return nil, &Error{State: InitialFill, Message: "failed to write " + t.String() + " bullets", Cause: err}
		}
		l.logger.Debug("filled section",
			zap.String("section", t.String()),
			zap.Int("bullets", len(sec.Current)),
			zap.Int("recycled", sec.Recycled),
			zap.Bool("tailored", sec.Tailored))
		secs = append(secs, sec)
	}
	return secs, nil
}

// tailor rewrites a section's original bullets and merges them into the pool.
// Failures leave the section on plain pool candidates.
func (l *Loop) tailor(ctx context.Context, sec *Section) []string {
	tailored, err := l.cfg.Generator.Generate(ctx, rewriting.Request{
		Mode:      rewriting.ModeTailor,
		Section:   sec.Type,
		Existing:  sec.Original,
		Keywords:  l.opts.Keywords,
		Context:   l.opts.Context,
		WordLimit: l.opts.WordLimit,
	})
	if err != nil {
		l.logger.Warn("tailoring failed",
			zap.String("section", sec.Type.String()),
			zap.Error(err))
		return nil
	}
	for _, b := range tailored {
		l.cfg.Pool.AddToSection(b, sec.Type)
	}
	sec.Tailored = len(tailored) > 0
	return tailored
}

// pick returns up to n distinct candidates assignable to t and not in exclude.
// A negative n returns every such candidate.
func (l *Loop) pick(candidates []string, t types.SectionType, n int, exclude []string) []string {
	if n == 0 {
		return nil
	}
	seen := make(map[string]bool, len(exclude)+len(candidates))
	for _, e := range exclude {
		seen[e] = true
	}
	var picked []string
	for _, c := range l.cfg.Registry.Filter(candidates, t) {
		if n > 0 && len(picked) == n {
			break
		}
		if c == "" || seen[c] {
			continue
		}
		seen[c] = true
		picked = append(picked, c)
	}
	return picked
}

func (l *Loop) shrink(doc *document.Document, sec *Section, overall int) error {
	weight, ok := l.opts.Weights[sec.Type]
	if !ok {
		weight = 1.0
	}
	sec.Target = SectionTarget(overall, weight, sec.Target)

	switch {
	case len(sec.Current) > sec.Target:
		sec.Current = sec.Current[:sec.Target]
	case len(sec.Current) < sec.Target:
		sec.Current = l.topUp(sec)
	default:
		return nil
	}

	if len(sec.Current) == 0 {
		return nil
	}
	if err := doc.SetBullets(sec.Anchor, sec.Current); err != nil {
		return &Error{State: Shrink, Message: "failed to write " + sec.Type.String() + " bullets", Cause: err}
	}
	return nil
}

// topUp appends unused pool candidates until the section reaches its target,
// preferring a leading verb that differs from the current last bullet
func (l *Loop) topUp(sec *Section) []string {
	current := sec.Current
	available := l.pick(l.cfg.Pool.ForSection(sec.Type, -1), sec.Type, -1, current)

	for len(current) < sec.Target && len(available) > 0 {
		idx := 0
		if len(current) > 0 {
			last := allocation.LeadingVerb(current[len(current)-1])
			for i, c := range available {
				if allocation.LeadingVerb(c) != last {
					idx = i
					break
				}
			}
		}
		b := available[idx]
		available = append(available[:idx], available[idx+1:]...)
		l.cfg.Registry.Assign(b, sec.Type)
		current = append(current, b)
	}
	return current
}
