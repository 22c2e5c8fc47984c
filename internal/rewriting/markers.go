package rewriting

import (
	"encoding/json"
	"regexp"
	"strings"
	"unicode"

	"github.com/jonathan/resume-pagefit/internal/llm"
	"github.com/jonathan/resume-pagefit/internal/schemas"
)

var (
	bulletTagPattern   = regexp.MustCompile(`(?i)</?bullets?>`)
	listMarkerPattern  = regexp.MustCompile(`^(?:[-*•·–]|\d{1,2}[.)])\s+`)
	labelMarkerPattern = regexp.MustCompile(`(?i)^bullet\s*\d*\s*:\s*`)
	protocolTagPattern = regexp.MustCompile(`(?i)\[/?(?:bullets?|end|start)\]`)
	jsonKeyPattern     = regexp.MustCompile(`(?i)^"?bullets"?\s*:\s*\[?$`)
)

// ParseBullets extracts bullets from a model response. JSON responses matching
// the bullets schema are preferred; anything else is read one bullet per line.
// Generation-protocol markers are stripped and exact duplicates dropped.
func ParseBullets(response string) []string {
	cleaned := llm.CleanJSONBlock(response)

	var raw []string
	if err := schemas.ValidateString(schemas.Bullets, cleaned); err == nil {
		var payload struct {
			Bullets []string `json:"bullets"`
		}
		if err := json.Unmarshal([]byte(cleaned), &payload); err == nil {
			raw = payload.Bullets
		}
	} else if err := json.Unmarshal([]byte(cleaned), &raw); err != nil {
		raw = strings.Split(cleaned, "\n")
	}

	seen := make(map[string]bool, len(raw))
	bullets := make([]string, 0, len(raw))
	for _, r := range raw {
		b := StripMarkers(r)
		if b == "" || seen[b] {
			continue
		}
		seen[b] = true
		bullets = append(bullets, b)
	}
	return bullets
}

// StripMarkers removes list glyphs, numbering, bullet tags and leftover JSON
// punctuation from a single bullet. Text with no letters becomes "".
func StripMarkers(text string) string {
	text = bulletTagPattern.ReplaceAllString(text, "")
	text = protocolTagPattern.ReplaceAllString(text, "")
	text = strings.TrimSpace(text)
	text = strings.TrimSuffix(text, ",")
	text = strings.TrimSpace(text)
	if len(text) >= 2 && strings.HasPrefix(text, `"`) && strings.HasSuffix(text, `"`) {
		text = text[1 : len(text)-1]
	}

	for {
		stripped := labelMarkerPattern.ReplaceAllString(listMarkerPattern.ReplaceAllString(text, ""), "")
		if stripped == text {
			break
		}
		text = stripped
	}

	text = strings.Join(strings.Fields(text), " ")
	if jsonKeyPattern.MatchString(text) || !strings.ContainsFunc(text, unicode.IsLetter) {
		return ""
	}
	return text
}
