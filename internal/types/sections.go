// Package types provides type definitions for structured data used throughout the resume-pagefit system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// SectionType is the structural category of a block of resume content
type SectionType string

const (
	// SectionJob covers work experience / employment history
	SectionJob SectionType = "job"
	// SectionProject covers personal or professional projects
	SectionProject SectionType = "project"
	// SectionEducation covers degrees, coursework and academic work
	SectionEducation SectionType = "education"
	// SectionSkills covers categorized skill lists
	SectionSkills SectionType = "skills"
)

// StructuralTypes are the section types that carry achievement bullets, in fill order.
var StructuralTypes = []SectionType{SectionJob, SectionProject, SectionEducation}

// AllSectionTypes lists every section type in heading-classification order.
var AllSectionTypes = []SectionType{SectionJob, SectionProject, SectionEducation, SectionSkills}

// IsStructural reports whether the section carries achievement bullets
func (t SectionType) IsStructural() bool {
	return t == SectionJob || t == SectionProject || t == SectionEducation
}

func (t SectionType) String() string {
	return string(t)
}
