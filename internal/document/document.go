// Package document provides a mutable resume document: an HTML tree plus a table
// of stable anchor handles that the rest of the engine mutates through.
package document

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Anchor is a stable handle to a section container registered in a Document.
// Handles stay valid across mutations of the bullets they own.
type Anchor int

// NoAnchor is the zero handle for an unresolved section
const NoAnchor Anchor = -1

type anchorEntry struct {
	container *html.Node // block-level mutation anchor
	list      *html.Node // list holding the section bullets, nil until created
	heading   *html.Node // heading the section was found under, if recorded
}

// Document wraps a parsed markup tree and owns all anchors into it.
type Document struct {
	doc     *goquery.Document
	entries []anchorEntry
	byNode  map[*html.Node]Anchor
}

// Parse parses resume markup into a mutable document
func Parse(markup string) (*Document, error) {
	if strings.TrimSpace(markup) == "" {
		return nil, &ParseError{Message: "markup is empty"}
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return nil, &ParseError{Message: "failed to parse HTML", Cause: err}
	}

	return &Document{
		doc:    doc,
		byNode: make(map[*html.Node]Anchor),
	}, nil
}

// Find runs a CSS selector against the whole document
func (d *Document) Find(selector string) *goquery.Selection {
	return d.doc.Find(selector)
}

// HTML serializes the current tree back to markup
func (d *Document) HTML() (string, error) {
	return d.doc.Html()
}

// Register records container as a section anchor whose bullets live in list.
// list may be empty, in which case a list is created on the first SetBullets.
// Anchors are keyed by their list (or by the container when there is none),
// so two sections sharing a wrapper block still get distinct handles, while
// registering the same list twice returns the same handle.
func (d *Document) Register(container, list *goquery.Selection) Anchor {
	if container == nil || container.Length() == 0 {
		return NoAnchor
	}

	entry := anchorEntry{container: container.Get(0)}
	key := entry.container
	if list != nil && list.Length() > 0 {
		entry.list = list.Get(0)
		key = entry.list
	}
	if a, ok := d.byNode[key]; ok {
		return a
	}

	a := Anchor(len(d.entries))
	d.entries = append(d.entries, entry)
	d.byNode[key] = a
	return a
}

// SetHeading records the heading a section was found under
func (d *Document) SetHeading(a Anchor, heading *goquery.Selection) error {
	if _, err := d.entry(a); err != nil {
		return err
	}
	if heading == nil || heading.Length() == 0 {
		return nil
	}
	d.entries[a].heading = heading.Get(0)
	return nil
}

// Heading returns the anchor's recorded heading, empty when none was recorded
func (d *Document) Heading(a Anchor) (*goquery.Selection, error) {
	entry, err := d.entry(a)
	if err != nil {
		return nil, err
	}
	if entry.heading == nil {
		return d.doc.FindNodes(), nil
	}
	return d.doc.FindNodes(entry.heading), nil
}

// Anchors returns the number of registered anchors
func (d *Document) Anchors() int {
	return len(d.entries)
}

// Container returns the selection for an anchor's block container
func (d *Document) Container(a Anchor) (*goquery.Selection, error) {
	entry, err := d.entry(a)
	if err != nil {
		return nil, err
	}
	return d.doc.FindNodes(entry.container), nil
}

// Tag returns the element name of an anchor's container ("" for unknown anchors)
func (d *Document) Tag(a Anchor) string {
	entry, err := d.entry(a)
	if err != nil {
		return ""
	}
	return entry.container.Data
}

// HasList reports whether the anchor currently owns a bullet list
func (d *Document) HasList(a Anchor) bool {
	entry, err := d.entry(a)
	return err == nil && entry.list != nil
}

// List returns the selection for the anchor's bullet list, empty when it has none
func (d *Document) List(a Anchor) (*goquery.Selection, error) {
	entry, err := d.entry(a)
	if err != nil {
		return nil, err
	}
	if entry.list == nil {
		return d.doc.FindNodes(), nil
	}
	return d.doc.FindNodes(entry.list), nil
}

// Bullets returns the trimmed text of each list item owned by the anchor
func (d *Document) Bullets(a Anchor) ([]string, error) {
	entry, err := d.entry(a)
	if err != nil {
		return nil, err
	}
	if entry.list == nil {
		return nil, nil
	}

	var bullets []string
	d.doc.FindNodes(entry.list).ChildrenFiltered("li").Each(func(_ int, li *goquery.Selection) {
		text := strings.Join(strings.Fields(li.Text()), " ")
		if text != "" {
			bullets = append(bullets, text)
		}
	})
	return bullets, nil
}

// SetBullets replaces the anchor's list items with bullets, in order.
// Non-item children of the list are left alone.
func (d *Document) SetBullets(a Anchor, bullets []string) error {
	entry, err := d.entry(a)
	if err != nil {
		return err
	}

	if entry.list == nil {
		ul := &html.Node{Type: html.ElementNode, Data: "ul", DataAtom: atom.Ul}
		entry.container.AppendChild(ul)
		entry.list = ul
		d.entries[a] = *entry
	}

	list := d.doc.FindNodes(entry.list)
	list.ChildrenFiltered("li").Remove()

	items := make([]*html.Node, 0, len(bullets))
	for _, text := range bullets {
		li := &html.Node{Type: html.ElementNode, Data: "li", DataAtom: atom.Li}
		li.AppendChild(&html.Node{Type: html.TextNode, Data: text})
		items = append(items, li)
	}
	list.AppendNodes(items...)
	return nil
}

func (d *Document) entry(a Anchor) (*anchorEntry, error) {
	if a < 0 || int(a) >= len(d.entries) {
		return nil, &AnchorError{Anchor: a}
	}
	entry := d.entries[a]
	return &entry, nil
}
