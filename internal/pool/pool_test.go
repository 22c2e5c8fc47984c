package pool

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/jonathan/resume-pagefit/internal/rewriting"
	"github.com/jonathan/resume-pagefit/internal/types"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m, goleak.IgnoreTopFunction("go.opencensus.io/stats/view.(*worker).start"))
}

// stubGenerator implements rewriting.Generator and counts calls per section type
type stubGenerator struct {
	mu      sync.Mutex
	calls   map[types.SectionType]int
	total   atomic.Int32
	bullets map[types.SectionType][]string
	fail    map[types.SectionType]bool
	// honorCtx fails calls whose context is already done
	honorCtx bool
}

func newStubGenerator() *stubGenerator {
	return &stubGenerator{
		calls: make(map[types.SectionType]int),
		bullets: map[types.SectionType][]string{
			types.SectionJob:       {"Built a payments API", "Led a migration", "Built a payments API"},
			types.SectionProject:   {"Designed a CLI"},
			types.SectionEducation: {"Researched compilers"},
		},
		fail: make(map[types.SectionType]bool),
	}
}

func (s *stubGenerator) Generate(ctx context.Context, req rewriting.Request) ([]string, error) {
	s.total.Add(1)
	if s.honorCtx && ctx.Err() != nil {
		return nil, ctx.Err()
	}
	s.mu.Lock()
	s.calls[req.Section]++
	s.mu.Unlock()
	if s.fail[req.Section] {
		return nil, errors.New("upstream unavailable")
	}
	return s.bullets[req.Section], nil
}

func TestGenerateAll_DedupesInInsertionOrder(t *testing.T) {
	gen := newStubGenerator()
	p := New(gen, nil, nil)

	entry, err := p.GenerateAll(context.Background(), []string{"Go"}, "backend", 20)
	require.NoError(t, err)

	assert.Equal(t, []string{"Built a payments API", "Led a migration"}, entry.Bullets(types.SectionJob))
	assert.Equal(t, []string{"Designed a CLI"}, entry.Bullets(types.SectionProject))
	assert.Equal(t, []string{"Researched compilers"}, entry.Bullets(types.SectionEducation))
	assert.Empty(t, entry.Bullets(types.SectionSkills))
	for _, st := range types.StructuralTypes {
		assert.Equal(t, 1, gen.calls[st], st.String())
	}
}

func TestGenerateAll_IdenticalKeyIsMemoized(t *testing.T) {
	gen := newStubGenerator()
	cache := NewCache()

	first, err := New(gen, cache, nil).GenerateAll(context.Background(), []string{"Go", "kafka"}, "ctx", 20)
	require.NoError(t, err)

	// Same keywords in another order and case map to the same key
	second, err := New(gen, cache, nil).GenerateAll(context.Background(), []string{" KAFKA", "go"}, "ctx", 20)
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, int32(3), gen.total.Load())
	for _, st := range types.StructuralTypes {
		assert.Equal(t, 1, gen.calls[st], st.String())
		assert.Equal(t, first.Bullets(st), second.Bullets(st))
	}
	assert.Equal(t, 1, cache.Len())
}

func TestGenerateAll_ConcurrentIdenticalRequests(t *testing.T) {
	gen := newStubGenerator()
	cache := NewCache()

	var wg sync.WaitGroup
	entries := make([]*Entry, 8)
	for i := range entries {
		wg.Add(1)
		go func() {
			defer wg.Done()
			e, err := New(gen, cache, nil).GenerateAll(context.Background(), []string{"go"}, "", 0)
			assert.NoError(t, err)
			entries[i] = e
		}()
	}
	wg.Wait()

	for _, e := range entries[1:] {
		assert.Equal(t, entries[0].Bullets(types.SectionJob), e.Bullets(types.SectionJob))
	}
	assert.Equal(t, 1, cache.Len())
}

func TestGenerateAll_PerTypeFailureIsTolerated(t *testing.T) {
	gen := newStubGenerator()
	gen.fail[types.SectionProject] = true
	cache := NewCache()

	entry, err := New(gen, cache, nil).GenerateAll(context.Background(), []string{"go"}, "", 0)
	require.NoError(t, err)

	assert.Empty(t, entry.Bullets(types.SectionProject))
	assert.Len(t, entry.Bullets(types.SectionJob), 2)
	assert.Equal(t, 1, cache.Len())
}

func TestGenerateAll_TotalFailureIsNotCached(t *testing.T) {
	gen := newStubGenerator()
	for _, st := range types.StructuralTypes {
		gen.fail[st] = true
	}
	cache := NewCache()

	entry, err := New(gen, cache, nil).GenerateAll(context.Background(), []string{"go"}, "", 0)
	require.NoError(t, err)
	assert.Zero(t, entry.Len(types.SectionJob))
	assert.Zero(t, cache.Len())
}

func TestGenerateAll_CallerCancellationDoesNotEmptySharedEntry(t *testing.T) {
	gen := newStubGenerator()
	gen.honorCtx = true
	cache := NewCache()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	entry, err := New(gen, cache, nil).GenerateAll(ctx, []string{"Go"}, "", 20)
	require.NoError(t, err)
	assert.Equal(t, []string{"Designed a CLI"}, entry.Bullets(types.SectionProject))
	assert.Equal(t, 1, cache.Len())

	again, err := New(gen, cache, nil).GenerateAll(context.Background(), []string{"Go"}, "", 20)
	require.NoError(t, err)
	assert.Same(t, entry, again)
	assert.Equal(t, int32(3), gen.total.Load())
}

func TestGenerateAll_NilKeywords(t *testing.T) {
	gen := newStubGenerator()
	_, err := New(gen, nil, nil).GenerateAll(context.Background(), nil, "", 0)
	assert.ErrorIs(t, err, ErrNilKeywords)
	assert.Zero(t, gen.total.Load())

	// An empty, non-nil list is valid input
	_, err = New(gen, nil, nil).GenerateAll(context.Background(), []string{}, "", 0)
	assert.NoError(t, err)
}

func TestForSection(t *testing.T) {
	gen := newStubGenerator()
	gen.bullets[types.SectionJob] = []string{"A one", "B two", "C three"}
	p := New(gen, nil, nil)
	_, err := p.GenerateAll(context.Background(), []string{"go"}, "", 0)
	require.NoError(t, err)

	assert.Equal(t, []string{"A one", "B two"}, p.ForSection(types.SectionJob, 2))
	assert.Equal(t, []string{"A one", "B two", "C three"}, p.ForSection(types.SectionJob, -1))
	assert.Empty(t, p.ForSection(types.SectionJob, 0))

	p.AddToSection("D tailored", types.SectionJob)
	p.AddToSection("A one", types.SectionJob)
	p.AddToSection("", types.SectionJob)
	assert.Equal(t, []string{"A one", "B two", "C three", "D tailored"}, p.ForSection(types.SectionJob, 10))
}

func TestAddToSectionLeavesCacheUnchanged(t *testing.T) {
	gen := newStubGenerator()
	cache := NewCache()
	p := New(gen, cache, nil)
	entry, err := p.GenerateAll(context.Background(), []string{"go"}, "", 0)
	require.NoError(t, err)

	p.AddToSection("Tailored bullet", types.SectionEducation)

	assert.Equal(t, []string{"Researched compilers"}, entry.Bullets(types.SectionEducation))
	other := New(gen, cache, nil)
	_, err = other.GenerateAll(context.Background(), []string{"go"}, "", 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"Researched compilers"}, other.ForSection(types.SectionEducation, -1))
}

func TestForSectionBeforeGenerate(t *testing.T) {
	p := New(newStubGenerator(), nil, nil)
	assert.Empty(t, p.ForSection(types.SectionJob, 5))
	p.AddToSection("Only tailored", types.SectionJob)
	assert.Equal(t, []string{"Only tailored"}, p.ForSection(types.SectionJob, 5))
}
