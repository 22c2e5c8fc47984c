package sections

import (
	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"
	"golang.org/x/net/html"

	"github.com/jonathan/resume-pagefit/internal/document"
	"github.com/jonathan/resume-pagefit/internal/types"
)

const (
	headingSelector    = "h1, h2, h3, h4, h5, h6"
	listSelector       = "ul, ol"
	blockSelector      = "section, div, article"
	proseBlockSelector = "p, section, div"
)

// Anchors maps each resolved section type to its anchor. Absent types were not found.
type Anchors map[types.SectionType]document.Anchor

// Get returns the anchor for a section type
func (a Anchors) Get(t types.SectionType) (document.Anchor, bool) {
	anchor, ok := a[t]
	return anchor, ok
}

// Has reports whether a section type was resolved
func (a Anchors) Has(t types.SectionType) bool {
	_, ok := a[t]
	return ok
}

// Missing returns the section types (in classification order) with no anchor
func (a Anchors) Missing() []types.SectionType {
	var missing []types.SectionType
	for _, t := range types.AllSectionTypes {
		if _, ok := a[t]; !ok {
			missing = append(missing, t)
		}
	}
	return missing
}

// Locator resolves section anchors from heading text
type Locator struct {
	patterns []Pattern
	logger   *zap.Logger
}

// NewLocator creates a locator. Nil patterns fall back to DefaultPatterns.
func NewLocator(patterns []Pattern, logger *zap.Logger) *Locator {
	if patterns == nil {
		patterns = DefaultPatterns()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Locator{patterns: patterns, logger: logger}
}

// Locate classifies every heading and resolves an anchor per section type.
// The first heading of a type wins. Markup is not modified; only anchor
// handles are registered on the document, so repeated calls agree.
func (l *Locator) Locate(doc *document.Document) Anchors {
	anchors := make(Anchors)
	claimed := make(map[*html.Node]bool)

	doc.Find(headingSelector).Each(func(_ int, heading *goquery.Selection) {
		sectionType, ok := Classify(heading.Text(), l.patterns)
		if !ok {
			return
		}
		if _, resolved := anchors[sectionType]; resolved {
			return
		}

		container, list := resolve(heading, sectionType, claimed)
		if container == nil {
			l.logger.Debug("heading matched but no container found",
				zap.String("section", sectionType.String()),
				zap.String("heading", heading.Text()))
			return
		}
		if list != nil {
			claimed[list.Get(0)] = true
		}

		anchor := doc.Register(container, list)
		if err := doc.SetHeading(anchor, heading); err != nil {
			return
		}
		anchors[sectionType] = anchor
		l.logger.Debug("resolved section anchor",
			zap.String("section", sectionType.String()),
			zap.String("container", doc.Tag(anchor)))
	})

	for _, t := range anchors.Missing() {
		l.logger.Warn("section not found, skipping", zap.String("section", t.String()))
	}

	return anchors
}

// Locate resolves anchors with the given patterns and no logging
func Locate(doc *document.Document, patterns []Pattern) Anchors {
	return NewLocator(patterns, nil).Locate(doc)
}

// resolve runs the anchor fallback chain for one heading
func resolve(heading *goquery.Selection, sectionType types.SectionType, claimed map[*html.Node]bool) (container, list *goquery.Selection) {
	if l := findList(heading, claimed); l != nil {
		return blockAncestor(l), l
	}

	if sectionType != types.SectionSkills {
		return nil, nil
	}

	// Skill sets are often prose rather than lists. The prose block itself is
	// the anchor; its ancestor may be a wrapper shared with other sections.
	if block := heading.NextUntil(headingSelector).Filter(proseBlockSelector).First(); block.Length() > 0 {
		return block, nil
	}
	if parent := heading.Parent(); parent.Length() > 0 && !parent.Is("body, html") {
		return parent, nil
	}
	return nil, nil
}

// findList tries, in order: the immediately following list, a list nested in
// the next sibling block, and a list anywhere in the heading's parent.
func findList(heading *goquery.Selection, claimed map[*html.Node]bool) *goquery.Selection {
	next := heading.Next()
	if next.Length() > 0 {
		if next.Is(listSelector) && !claimed[next.Get(0)] {
			return next
		}
		if nested := unclaimed(next.Find(listSelector), claimed); nested != nil {
			return nested
		}
	}
	return unclaimed(heading.Parent().Find(listSelector), claimed)
}

func unclaimed(lists *goquery.Selection, claimed map[*html.Node]bool) *goquery.Selection {
	for i := range lists.Nodes {
		if !claimed[lists.Nodes[i]] {
			return lists.Eq(i)
		}
	}
	return nil
}

// blockAncestor walks up to the nearest block-level ancestor below body,
// falling back to the element itself.
func blockAncestor(s *goquery.Selection) *goquery.Selection {
	if ancestor := s.ParentsUntil("body").Filter(blockSelector).First(); ancestor.Length() > 0 {
		return ancestor
	}
	return s
}
