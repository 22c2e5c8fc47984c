// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/resume-pagefit/internal/sections"
	"github.com/jonathan/resume-pagefit/internal/skills"
	"github.com/jonathan/resume-pagefit/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(strings.TrimRight(content, "\n"), "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintAnchors outputs which sections were found in the resume
func (p *Printer) PrintAnchors(anchors sections.Anchors) {
	var sb strings.Builder
	for _, t := range types.AllSectionTypes {
		status := "missing"
		if anchors.Has(t) {
			status = "found"
		}
		sb.WriteString(fmt.Sprintf("%-10s %s\n", t, status))
	}
	p.printBox("SECTIONS", sb.String())
}

// PrintCategories outputs the keyword groups written into the skills section
func (p *Printer) PrintCategories(cats skills.Categories) {
	if len(cats) == 0 {
		return
	}

	var sb strings.Builder
	for _, cat := range cats {
		sb.WriteString(fmt.Sprintf("%s: %s\n", cat.Label, strings.Join(cat.Keywords, ", ")))
	}
	p.printBox("SKILL CATEGORIES", sb.String())
}

// PrintFitReport outputs a human-readable summary of a page-fit run
func (p *Printer) PrintFitReport(report *types.FitReport) {
	if report == nil {
		return
	}

	var sb strings.Builder

	status := "fits on one page"
	if !report.Fits {
		status = fmt.Sprintf("does not fit (%d pages)", report.Pages)
	}
	sb.WriteString(fmt.Sprintf("Result:   %s\n", status))
	sb.WriteString(fmt.Sprintf("Shrinks:  %d\n", report.ShrinkAttempts))
	targets := make([]string, len(report.Targets))
	for i, t := range report.Targets {
		targets[i] = fmt.Sprintf("%d", t)
	}
	sb.WriteString(fmt.Sprintf("Targets:  %s\n", strings.Join(targets, " → ")))
	sb.WriteString("\n")

	for _, sec := range report.Sections {
		line := fmt.Sprintf("%s: %d bullets (target %d)", sec.Type, len(sec.Bullets), sec.Target)
		var flags []string
		if sec.Tailored {
			flags = append(flags, "tailored")
		}
		if sec.Recycled > 0 {
			flags = append(flags, fmt.Sprintf("%d recycled", sec.Recycled))
		}
		if sec.Fallback {
			flags = append(flags, "verb fallback")
		}
		if len(flags) > 0 {
			line += " [" + strings.Join(flags, ", ") + "]"
		}
		sb.WriteString(line + "\n")

		count := min(len(sec.Bullets), maxItemsToShow)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  • %s\n", sec.Bullets[i]))
		}
		if len(sec.Bullets) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(sec.Bullets)-maxItemsToShow))
		}
	}

	if len(report.MissingSections) > 0 {
		missing := make([]string, len(report.MissingSections))
		for i, t := range report.MissingSections {
			missing[i] = t.String()
		}
		sb.WriteString(fmt.Sprintf("\nMissing:  %s\n", strings.Join(missing, ", ")))
	}
	if report.Warning != "" {
		sb.WriteString(fmt.Sprintf("\n⚠ %s\n", report.Warning))
	}

	p.printBox("PAGE FIT REPORT", sb.String())
}
