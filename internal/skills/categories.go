// Package skills groups target keywords into fixed categories and writes them
// into a resume's skills section.
package skills

import (
	"context"
	"strings"
)

// Category labels, in display order
const (
	LabelLanguages  = "Languages"
	LabelFrameworks = "Frameworks"
	LabelCloud      = "Cloud & Infrastructure"
	LabelDatabases  = "Databases"
	LabelTools      = "Tools"
)

// Labels lists every category label in display order
var Labels = []string{LabelLanguages, LabelFrameworks, LabelCloud, LabelDatabases, LabelTools}

// Category is one labeled group of keywords
type Category struct {
	Label    string   `json:"label"`
	Keywords []string `json:"keywords"`
}

// Categories is an ordered list of non-empty categories
type Categories []Category

// Get returns the keywords under a label
func (c Categories) Get(label string) []string {
	for _, cat := range c {
		if cat.Label == label {
			return cat.Keywords
		}
	}
	return nil
}

// Categorizer groups keywords into the fixed labels
type Categorizer interface {
	Categorize(ctx context.Context, keywords []string) (Categories, error)
}

// NewCategories builds ordered categories from a label → keywords mapping.
// Unknown labels and keywords absent from the input are dropped, each input
// keyword is placed once (first label wins) and uncategorized input keywords
// are appended to Tools.
func NewCategories(byLabel map[string][]string, keywords []string) Categories {
	inputs := make(map[string]string, len(keywords))
	for _, k := range keywords {
		if k = strings.TrimSpace(k); k != "" {
			if _, ok := inputs[strings.ToLower(k)]; !ok {
				inputs[strings.ToLower(k)] = k
			}
		}
	}

	placed := make(map[string]bool, len(inputs))
	grouped := make(map[string][]string, len(Labels))
	for _, label := range Labels {
		for _, k := range byLabel[label] {
			lower := strings.ToLower(strings.TrimSpace(k))
			original, ok := inputs[lower]
			if !ok || placed[lower] {
				continue
			}
			placed[lower] = true
			grouped[label] = append(grouped[label], original)
		}
	}

	for _, k := range keywords {
		lower := strings.ToLower(strings.TrimSpace(k))
		if lower == "" || placed[lower] {
			continue
		}
		placed[lower] = true
		grouped[LabelTools] = append(grouped[LabelTools], inputs[lower])
	}

	cats := make(Categories, 0, len(Labels))
	for _, label := range Labels {
		if len(grouped[label]) > 0 {
			cats = append(cats, Category{Label: label, Keywords: grouped[label]})
		}
	}
	return cats
}
