package parsing

import (
	"os"
	"strings"
)

// ParseKeywords splits comma, semicolon or newline separated keywords,
// normalizes each and drops duplicates, keeping first-seen order.
func ParseKeywords(text string) []string {
	fields := strings.FieldsFunc(text, func(r rune) bool {
		return r == ',' || r == ';' || r == '\n' || r == '\r'
	})

	keywords := make([]string, 0, len(fields))
	seen := make(map[string]bool, len(fields))
	for _, f := range fields {
		k := NormalizeSkillName(f)
		if k == "" {
			continue
		}
		lower := strings.ToLower(k)
		if seen[lower] {
			continue
		}
		seen[lower] = true
		keywords = append(keywords, k)
	}
	return keywords
}

// ReadKeywordsFile reads and parses a keyword file
func ReadKeywordsFile(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &FileReadError{Path: path, Cause: err}
	}
	return ParseKeywords(string(data)), nil
}

// MergeKeywords concatenates keyword lists, dropping case-insensitive duplicates
func MergeKeywords(lists ...[]string) []string {
	var merged []string
	seen := make(map[string]bool)
	for _, list := range lists {
		for _, k := range list {
			lower := strings.ToLower(k)
			if k == "" || seen[lower] {
				continue
			}
			seen[lower] = true
			merged = append(merged, k)
		}
	}
	return merged
}
