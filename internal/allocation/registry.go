// Package allocation enforces the run-scoped constraints on where bullets may
// be placed: single-section ownership and leading-verb diversity.
package allocation

import "github.com/jonathan/resume-pagefit/internal/types"

// UsageRegistry records which section type first claimed each bullet text.
// A registry belongs to a single run and is never cleared mid-run.
type UsageRegistry struct {
	owners map[string]types.SectionType
}

// NewUsageRegistry creates an empty registry
func NewUsageRegistry() *UsageRegistry {
	return &UsageRegistry{owners: make(map[string]types.SectionType)}
}

// CanAssign reports whether text is unassigned or already owned by sectionType
func (r *UsageRegistry) CanAssign(text string, sectionType types.SectionType) bool {
	owner, ok := r.owners[text]
	return !ok || owner == sectionType
}

// Assign records sectionType as the owner of text. Later assignments never
// change the first owner.
func (r *UsageRegistry) Assign(text string, sectionType types.SectionType) {
	if _, ok := r.owners[text]; ok {
		return
	}
	r.owners[text] = sectionType
}

// AssignedTo returns the owning section type of text
func (r *UsageRegistry) AssignedTo(text string) (types.SectionType, bool) {
	owner, ok := r.owners[text]
	return owner, ok
}

// Len returns the number of assigned texts
func (r *UsageRegistry) Len() int {
	return len(r.owners)
}

// Filter returns the bullets that may be assigned to sectionType, preserving order
func (r *UsageRegistry) Filter(bullets []string, sectionType types.SectionType) []string {
	out := make([]string, 0, len(bullets))
	for _, b := range bullets {
		if r.CanAssign(b, sectionType) {
			out = append(out, b)
		}
	}
	return out
}
