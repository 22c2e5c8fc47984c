package skills

import (
	"html"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/jonathan/resume-pagefit/internal/document"
)

// CategoryClass marks paragraphs written by WriteCategories
const CategoryClass = "skill-category"

const headingSelector = "h1, h2, h3, h4, h5, h6"

// WriteCategories renders categories into the skills anchor. A list anchor
// gets one item per category. A paragraph anchor gets one line per category.
// Any other block has its prose replaced by one paragraph per category; when
// the block also holds the section heading, only the paragraphs between that
// heading and the next one are replaced.
func WriteCategories(doc *document.Document, anchor document.Anchor, cats Categories) error {
	if len(cats) == 0 {
		return nil
	}

	container, err := doc.Container(anchor)
	if err != nil {
		return &Error{Message: "skills anchor not found", Cause: err}
	}

	if doc.HasList(anchor) {
		list, err := doc.List(anchor)
		if err != nil {
			return &Error{Message: "skills list not found", Cause: err}
		}
		list.ChildrenFiltered("li").Remove()
		for _, cat := range cats {
			list.AppendHtml("<li>" + renderLine(cat) + "</li>")
		}
		return nil
	}

	if goquery.NodeName(container) == "p" {
		lines := make([]string, 0, len(cats))
		for _, cat := range cats {
			lines = append(lines, renderLine(cat))
		}
		container.SetHtml(strings.Join(lines, "<br>"))
		return nil
	}

	heading, err := doc.Heading(anchor)
	if err != nil {
		return &Error{Message: "skills heading not found", Cause: err}
	}
	paragraphs := make([]string, 0, len(cats))
	for _, cat := range cats {
		paragraphs = append(paragraphs, `<p class="`+CategoryClass+`">`+renderLine(cat)+"</p>")
	}

	// A block holding the heading may be shared with other sections: only
	// the paragraphs between the heading and the next heading are skills prose.
	if heading.Length() > 0 && container.Contains(heading.Get(0)) {
		heading.NextUntil(headingSelector).Filter("p").Remove()
		heading.AfterHtml(strings.Join(paragraphs, ""))
		return nil
	}

	container.Empty()
	container.AppendHtml(strings.Join(paragraphs, ""))
	return nil
}

func renderLine(cat Category) string {
	return "<strong>" + html.EscapeString(cat.Label) + ":</strong> " +
		html.EscapeString(strings.Join(cat.Keywords, ", "))
}
