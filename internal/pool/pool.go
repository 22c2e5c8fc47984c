// Package pool generates, caches and serves candidate bullets per section type.
package pool

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/resume-pagefit/internal/rewriting"
	"github.com/jonathan/resume-pagefit/internal/types"
)

// ErrNilKeywords is returned by GenerateAll when no keyword list is supplied
var ErrNilKeywords = errors.New("keyword list is required")

// Pool is a run's view of the candidate bullets: the cached entry for the
// run's key plus tailored bullets merged in during the run.
type Pool struct {
	gen    rewriting.Generator
	cache  *Cache
	logger *zap.Logger

	entry   *Entry
	overlay map[types.SectionType]*OrderedSet
}

// New creates a run-scoped pool. A nil cache gets a private one.
func New(gen rewriting.Generator, cache *Cache, logger *zap.Logger) *Pool {
	if cache == nil {
		cache = NewCache()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Pool{
		gen:     gen,
		cache:   cache,
		logger:  logger,
		overlay: make(map[types.SectionType]*OrderedSet),
	}
}

// GenerateAll fills the pool with fresh bullets for every structural section
// type, one concurrent generator call per type. Results are memoized in the
// cache; a repeated key returns the cached entry without calling the generator.
// A type whose call fails ends up with no candidates.
//
// Concurrent callers with the same key share one set of calls. Those calls run
// detached from the caller's cancellation, so one caller giving up does not
// hand the others an empty entry; context values still pass through.
func (p *Pool) GenerateAll(ctx context.Context, keywords []string, roleContext string, wordLimit int) (*Entry, error) {
	if keywords == nil {
		return nil, ErrNilKeywords
	}

	key := NewKey(keywords, roleContext)
	flightCtx := context.WithoutCancel(ctx)
	entry, cached := p.cache.load(key, func() (*Entry, bool) {
		return p.generate(flightCtx, keywords, roleContext, wordLimit)
	})
	if cached {
		p.logger.Debug("bullet pool cache hit", zap.String("keywords", key.Keywords))
	}

	p.entry = entry
	return entry, nil
}

// generate runs the per-type calls. The entry is cacheable unless every call failed.
func (p *Pool) generate(ctx context.Context, keywords []string, roleContext string, wordLimit int) (*Entry, bool) {
	sectionTypes := types.StructuralTypes
	results := make([][]string, len(sectionTypes))
	failed := make([]bool, len(sectionTypes))

	var g errgroup.Group
	for i, t := range sectionTypes {
		g.Go(func() error {
			bullets, err := p.gen.Generate(ctx, rewriting.Request{
				Mode:      rewriting.ModeGenerate,
				Section:   t,
				Keywords:  keywords,
				Context:   roleContext,
				WordLimit: wordLimit,
			})
			if err != nil {
				p.logger.Warn("bullet generation failed",
					zap.String("section", t.String()),
					zap.Error(err))
				failed[i] = true
				return nil
			}
			results[i] = bullets
			return nil
		})
	}
	_ = g.Wait()

	bullets := make(map[types.SectionType][]string, len(sectionTypes))
	cacheable := false
	for i, t := range sectionTypes {
		bullets[t] = results[i]
		if !failed[i] {
			cacheable = true
		}
	}

	entry := NewEntry(bullets)
	for _, t := range sectionTypes {
		p.logger.Debug("bullet pool filled",
			zap.String("section", t.String()),
			zap.Int("candidates", entry.Len(t)))
	}
	return entry, cacheable
}

// ForSection returns up to n candidates for a section type in insertion order:
// cached bullets first, then bullets added during the run. A negative n returns all.
func (p *Pool) ForSection(t types.SectionType, n int) []string {
	candidates := p.entry.Bullets(t)
	if extra, ok := p.overlay[t]; ok {
		for _, b := range extra.Items() {
			if !p.entry.contains(t, b) {
				candidates = append(candidates, b)
			}
		}
	}
	if n >= 0 && len(candidates) > n {
		candidates = candidates[:n]
	}
	return candidates
}

// AddToSection merges a tailored bullet into the run's view of a section type.
// The cached entry is left unchanged.
func (p *Pool) AddToSection(bullet string, t types.SectionType) {
	if bullet == "" {
		return
	}
	set, ok := p.overlay[t]
	if !ok {
		set = &OrderedSet{}
		p.overlay[t] = set
	}
	set.Add(bullet)
}

// Entry returns the cached entry the pool was last filled from
func (p *Pool) Entry() *Entry {
	return p.entry
}
