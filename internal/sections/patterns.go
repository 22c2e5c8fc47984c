// Package sections discovers resume sections by classifying headings and
// resolving a stable mutation anchor for each section type.
package sections

import (
	"regexp"
	"strings"

	"github.com/jonathan/resume-pagefit/internal/types"
)

// Pattern maps a heading-text regexp to a section type
type Pattern struct {
	Type   types.SectionType
	Regexp *regexp.Regexp
}

// DefaultPatterns returns the heading patterns in the order they are tested
func DefaultPatterns() []Pattern {
	return []Pattern{
		{Type: types.SectionJob, Regexp: regexp.MustCompile(`(?i)\b(experience|employment|work)\b`)},
		{Type: types.SectionProject, Regexp: regexp.MustCompile(`(?i)\bprojects?\b`)},
		{Type: types.SectionEducation, Regexp: regexp.MustCompile(`(?i)\b(education|academic)\b`)},
		{Type: types.SectionSkills, Regexp: regexp.MustCompile(`(?i)\b(skills|technologies|competencies)\b`)},
	}
}

// Classify returns the type of the first pattern matching the heading text
func Classify(heading string, patterns []Pattern) (types.SectionType, bool) {
	text := strings.TrimSpace(heading)
	if text == "" {
		return "", false
	}
	for _, p := range patterns {
		if p.Regexp.MatchString(text) {
			return p.Type, true
		}
	}
	return "", false
}
