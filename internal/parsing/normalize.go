// Package parsing turns raw keyword input into canonical skill names.
package parsing

import "strings"

// maxAcronymLength is the longest all-caps token kept verbatim (AWS, SQL, GCP)
const maxAcronymLength = 4

// skillNormalizations maps common skill name variants to canonical names
var skillNormalizations = map[string]string{
	"golang":     "Go",
	"golanglang": "Go",
	"go lang":    "Go",
	"javascript": "JavaScript",
	"js":         "JavaScript",
	"typescript": "TypeScript",
	"ts":         "TypeScript",
	"k8s":        "Kubernetes",
	"kubernetes": "Kubernetes",
	"react.js":   "React",
	"reactjs":    "React",
	"vue.js":     "Vue",
	"vuejs":      "Vue",
	"node.js":    "Node.js",
	"nodejs":     "Node.js",
	"postgres":   "PostgreSQL",
	"postgresql": "PostgreSQL",
	"mongodb":    "MongoDB",
	"mongo":      "MongoDB",
	"graphql":    "GraphQL",
}

// NormalizeSkillName normalizes a skill name to its canonical form
func NormalizeSkillName(skillName string) string {
	normalized := strings.TrimSpace(skillName)
	if normalized == "" {
		return ""
	}

	// Check for exact match in normalization map (case-insensitive)
	lower := strings.ToLower(normalized)
	if canonical, ok := skillNormalizations[lower]; ok {
		return canonical
	}

	upper := strings.ToUpper(normalized)
	singleWord := !strings.Contains(normalized, " ")

	// All-caps: short tokens are acronyms, longer single words get capitalized
	if normalized == upper && normalized != lower {
		if len(normalized) <= maxAcronymLength || !singleWord {
			return normalized
		}
		return upper[:1] + lower[1:]
	}

	// Already has mixed case, return as-is
	if normalized != lower {
		return normalized
	}

	// If all lowercase and single word, capitalize first letter
	if singleWord {
		return strings.ToUpper(normalized[:1]) + normalized[1:]
	}

	return normalized
}
