package sentence

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ParseSentenceArray extracts a JSON array of strings from a raw model
// response. Markdown code fences and surrounding prose are tolerated; the
// first '[' to last ']' span is taken as the array.
func ParseSentenceArray(content string) ([]string, error) {
	content = strings.TrimSpace(content)

	// Strip markdown code fences
	if strings.HasPrefix(content, "```") {
		lines := strings.Split(content, "\n")
		if len(lines) >= 2 {
			content = strings.Join(lines[1:len(lines)-1], "\n")
		}
	}

	start := strings.Index(content, "[")
	end := strings.LastIndex(content, "]")
	if start == -1 || end == -1 || end < start {
		return nil, fmt.Errorf("response contains no JSON array")
	}
	content = content[start : end+1]

	var sentences []string
	if err := json.Unmarshal([]byte(content), &sentences); err != nil {
		return nil, fmt.Errorf("failed to parse response as JSON array: %w", err)
	}

	return sentences, nil
}
