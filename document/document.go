// Package document turns source files into the flat paragraph list the
// reading queue consumes.
package document

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Load reads the file at path and extracts its spoken segments. Markdown
// files go through the structural extractor; everything else is treated
// as plain text split on blank lines.
func Load(path string) ([]string, error) {
	contents, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading document %s: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".md", ".markdown", ".mkd":
		return ExtractMarkdown(string(contents)), nil
	default:
		return ExtractParagraphs(string(contents)), nil
	}
}

// ExtractParagraphs splits plain text into paragraphs on blank lines.
// Lines inside a paragraph are joined with a single space, surrounding
// whitespace is trimmed, and empty paragraphs are dropped.
func ExtractParagraphs(text string) []string {
	normalized := strings.ReplaceAll(text, "\r\n", "\n")

	var paragraphs []string
	var lines []string

	flush := func() {
		if len(lines) == 0 {
			return
		}
		paragraph := strings.TrimSpace(strings.Join(lines, " "))
		if paragraph != "" {
			paragraphs = append(paragraphs, paragraph)
		}
		lines = lines[:0]
	}

	for _, line := range strings.Split(normalized, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			flush()
			continue
		}
		lines = append(lines, trimmed)
	}
	flush()
	return paragraphs
}
