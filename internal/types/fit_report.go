// Package types provides type definitions for structured data used throughout the resume-pagefit system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// SectionFit summarizes the final state of one section after the fit loop
type SectionFit struct {
	Type     SectionType `json:"type"`
	Target   int         `json:"target"`
	Bullets  []string    `json:"bullets"`
	Tailored bool        `json:"tailored,omitempty"`
	Fallback bool        `json:"verb_fallback,omitempty"`
	Recycled int         `json:"recycled,omitempty"` // original bullets reused due to under-supply
}

// FitReport is the outcome of a page-fit run
type FitReport struct {
	Fits            bool          `json:"fits"`
	Pages           int           `json:"pages"`
	ShrinkAttempts  int           `json:"shrink_attempts"`
	Targets         []int         `json:"targets"` // overall target per iteration, starting with the initial fill
	Sections        []SectionFit  `json:"sections"`
	MissingSections []SectionType `json:"missing_sections,omitempty"`
	Warning         string        `json:"warning,omitempty"`
}

// Section returns the fit summary for a section type, or nil if it was not filled
func (r *FitReport) Section(t SectionType) *SectionFit {
	if r == nil {
		return nil
	}
	for i := range r.Sections {
		if r.Sections[i].Type == t {
			return &r.Sections[i]
		}
	}
	return nil
}
