package markdown

import (
	"regexp"
	"strings"
)

var excessNewlines = regexp.MustCompile(`\n{3,}`)

// cleanMarkdown normalizes converter output. Runs of three or more newlines
// collapse to a single blank line, and a non-blank line whose trimmed
// content repeats the previously kept line's trimmed content is dropped.
// The pass is idempotent.
func cleanMarkdown(s string) string {
	s = excessNewlines.ReplaceAllString(s, "\n\n")

	lines := strings.Split(s, "\n")
	out := make([]string, 0, len(lines))
	prev := ""
	for _, line := range lines {
		t := strings.TrimSpace(line)
		if t != "" && t == prev {
			continue
		}
		out = append(out, line)
		prev = t
	}
	return strings.Join(out, "\n")
}
