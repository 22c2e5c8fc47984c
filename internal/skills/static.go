package skills

import (
	"context"
	"strings"
)

// knownSkills maps lower-cased keywords to a category label
var knownSkills = map[string]string{
	"go":         LabelLanguages,
	"python":     LabelLanguages,
	"java":       LabelLanguages,
	"javascript": LabelLanguages,
	"typescript": LabelLanguages,
	"rust":       LabelLanguages,
	"c++":        LabelLanguages,
	"c#":         LabelLanguages,
	"ruby":       LabelLanguages,
	"kotlin":     LabelLanguages,
	"sql":        LabelLanguages,
	"react":      LabelFrameworks,
	"vue":        LabelFrameworks,
	"angular":    LabelFrameworks,
	"django":     LabelFrameworks,
	"flask":      LabelFrameworks,
	"spring":     LabelFrameworks,
	"node.js":    LabelFrameworks,
	"grpc":       LabelFrameworks,
	"graphql":    LabelFrameworks,
	"aws":        LabelCloud,
	"gcp":        LabelCloud,
	"azure":      LabelCloud,
	"kubernetes": LabelCloud,
	"docker":     LabelCloud,
	"terraform":  LabelCloud,
	"postgresql": LabelDatabases,
	"mysql":      LabelDatabases,
	"mongodb":    LabelDatabases,
	"redis":      LabelDatabases,
	"cassandra":  LabelDatabases,
	"dynamodb":   LabelDatabases,
	"kafka":      LabelTools,
	"git":        LabelTools,
}

// StaticCategorizer groups keywords with a built-in table. Unknown keywords go to Tools.
type StaticCategorizer struct{}

// Categorize never fails
func (StaticCategorizer) Categorize(_ context.Context, keywords []string) (Categories, error) {
	byLabel := make(map[string][]string)
	for _, k := range keywords {
		if label, ok := knownSkills[strings.ToLower(strings.TrimSpace(k))]; ok {
			byLabel[label] = append(byLabel[label], k)
		}
	}
	return NewCategories(byLabel, keywords), nil
}
