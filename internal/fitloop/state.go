// Package fitloop fills resume sections with bullets and shrinks them until
// the rendered document fits on one printed page.
package fitloop

import (
	"fmt"
	"math"

	"github.com/jonathan/resume-pagefit/internal/types"
)

// State is a phase of the fit loop
type State int

const (
	InitialFill State = iota
	PageCheck
	Shrink
	Done
)

func (s State) String() string {
	switch s {
	case InitialFill:
		return "initial_fill"
	case PageCheck:
		return "page_check"
	case Shrink:
		return "shrink"
	case Done:
		return "done"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

const (
	// InitialTarget is the bullet count every section starts with
	InitialTarget = 6
	// MinTarget is the floor no section target goes below
	MinTarget = 3
	// MaxShrinkAttempts bounds the number of measure-and-shrink rounds
	MaxShrinkAttempts = 3
)

// DefaultWeights scale the overall target per section type when shrinking
var DefaultWeights = map[types.SectionType]float64{
	types.SectionJob:       1.0,
	types.SectionProject:   0.8,
	types.SectionEducation: 0.6,
}

// SectionTarget returns max(MinTarget, floor(overall × weight)), never above previous
func SectionTarget(overall int, weight float64, previous int) int {
	target := int(math.Floor(float64(overall)*weight + 1e-9))
	if target < MinTarget {
		target = MinTarget
	}
	if previous > 0 && target > previous {
		target = previous
	}
	return target
}
