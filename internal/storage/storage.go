// Package storage persists crawl output: the transient link list and the
// converted Markdown chapters, under names derived from sequence order and
// sanitized titles.
package storage

import (
	"fmt"
	"os"
	"strings"
)

// SanitizeFilename maps s to a string safe for file and directory names.
// ASCII letters, digits, space, underscore and hyphen survive; every other
// rune becomes an underscore. The mapping is deterministic and idempotent.
func SanitizeFilename(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == ' ', r == '_', r == '-':
			return r
		}
		return '_'
	}, s)
}

// ChapterFileName renders the output file name for a chapter: a 3-digit
// zero-padded 1-based index followed by the sanitized title.
func ChapterFileName(index int, title string) string {
	return fmt.Sprintf("%03d_%s.md", index, SanitizeFilename(title))
}

// EnsureDir creates the directory (and any parents) if it does not exist and
// returns its path.
func EnsureDir(path string) (string, error) {
	if err := os.MkdirAll(path, 0o755); err != nil {
		return "", fmt.Errorf("creating directory %s: %w", path, err)
	}
	return path, nil
}

// WriteLines writes one entry per line to the file at path, with a trailing
// newline after the last entry.
func WriteLines(path string, lines []string) error {
	var b strings.Builder
	for _, line := range lines {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// WriteFile writes text to the file at path, replacing any previous content.
func WriteFile(path, text string) error {
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// Remove deletes the file at path. Removing a file that is already gone is
// not an error.
func Remove(path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing %s: %w", path, err)
	}
	return nil
}
