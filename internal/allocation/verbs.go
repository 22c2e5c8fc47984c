package allocation

import (
	"math/rand/v2"
	"sort"
	"strings"
	"time"

	"github.com/jonathan/resume-pagefit/internal/types"
)

// MaxArrangeAttempts bounds the random reorderings tried by Arrange
const MaxArrangeAttempts = 12

const verbTrimChars = "\"'()[]{}•·*-–—:;,.!?"

// LeadingVerb returns the case-folded first token of a bullet
func LeadingVerb(bullet string) string {
	fields := strings.Fields(bullet)
	for _, f := range fields {
		if verb := strings.ToLower(strings.Trim(f, verbTrimChars)); verb != "" {
			return verb
		}
	}
	return ""
}

// Arrangement is the ordering chosen for one section
type Arrangement struct {
	Bullets  []string
	Attempts int  // random orderings tried
	Fallback bool // true when no random ordering met both constraints
}

// VerbTracker arranges section bullets so adjacent bullets start with
// different verbs and no two sections open with the same verb.
// A tracker belongs to a single run.
type VerbTracker struct {
	rng        *rand.Rand
	firstVerbs map[string]bool
	byType     map[types.SectionType][]string
}

// NewVerbTracker creates a tracker. A nil rng is seeded from the clock.
func NewVerbTracker(rng *rand.Rand) *VerbTracker {
	if rng == nil {
		seed := uint64(time.Now().UnixNano())
		rng = rand.New(rand.NewPCG(seed, seed>>1))
	}
	return &VerbTracker{
		rng:        rng,
		firstVerbs: make(map[string]bool),
		byType:     make(map[types.SectionType][]string),
	}
}

// Arrange returns a permutation of bullets for sectionType and registers the
// verb of its first bullet for the rest of the run. The input slice is not modified.
func (t *VerbTracker) Arrange(bullets []string, sectionType types.SectionType) Arrangement {
	if len(bullets) == 0 {
		return Arrangement{}
	}

	candidate := make([]string, len(bullets))
	copy(candidate, bullets)

	for attempt := 1; attempt <= MaxArrangeAttempts; attempt++ {
		t.rng.Shuffle(len(candidate), func(i, j int) {
			candidate[i], candidate[j] = candidate[j], candidate[i]
		})
		if t.acceptable(candidate) {
			t.register(LeadingVerb(candidate[0]), sectionType)
			return Arrangement{Bullets: candidate, Attempts: attempt}
		}
	}

	ordered := t.fallbackOrder(bullets)
	t.register(LeadingVerb(ordered[0]), sectionType)
	return Arrangement{Bullets: ordered, Attempts: MaxArrangeAttempts, Fallback: true}
}

// UsedFirstVerb reports whether verb already opens some section in this run
func (t *VerbTracker) UsedFirstVerb(verb string) bool {
	return t.firstVerbs[strings.ToLower(verb)]
}

// FirstVerbs returns the opening verbs registered for sectionType, oldest first
func (t *VerbTracker) FirstVerbs(sectionType types.SectionType) []string {
	verbs := t.byType[sectionType]
	out := make([]string, len(verbs))
	copy(out, verbs)
	return out
}

func (t *VerbTracker) acceptable(bullets []string) bool {
	if t.firstVerbs[LeadingVerb(bullets[0])] {
		return false
	}
	return !HasAdjacentRepeat(bullets)
}

// fallbackOrder moves bullets whose verb has not opened a section to the
// front, keeping the original relative order otherwise.
func (t *VerbTracker) fallbackOrder(bullets []string) []string {
	ordered := make([]string, len(bullets))
	copy(ordered, bullets)
	sort.SliceStable(ordered, func(i, j int) bool {
		return !t.firstVerbs[LeadingVerb(ordered[i])] && t.firstVerbs[LeadingVerb(ordered[j])]
	})
	return ordered
}

func (t *VerbTracker) register(verb string, sectionType types.SectionType) {
	t.firstVerbs[verb] = true
	t.byType[sectionType] = append(t.byType[sectionType], verb)
}

// HasAdjacentRepeat reports whether two neighbouring bullets share a leading verb
func HasAdjacentRepeat(bullets []string) bool {
	for i := 1; i < len(bullets); i++ {
		prev, cur := LeadingVerb(bullets[i-1]), LeadingVerb(bullets[i])
		if prev != "" && prev == cur {
			return true
		}
	}
	return false
}
