package retrieval

import (
	"fmt"
	"strings"
)

// FormatResults renders ranked results as human-readable text, used by the
// MCP search tool and the CLI.
func FormatResults(results []RankedResult) string {
	if len(results) == 0 {
		return "No results found."
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Found %d result(s):\n\n", len(results)))

	for i, r := range results {
		sb.WriteString(fmt.Sprintf("--- Result %d (score: %.4f) ---\n", i+1, r.Score))

		if r.Metadata.SourceFile != "" {
			location := r.Metadata.SourceFile
			if r.Metadata.Page > 0 {
				location += fmt.Sprintf(", page %d", r.Metadata.Page)
			}
			sb.WriteString(fmt.Sprintf("Source: %s\n", location))
		}
		if r.Metadata.Chapter != "" {
			sb.WriteString(fmt.Sprintf("Chapter: %s\n", r.Metadata.Chapter))
		}
		if r.Metadata.Section != "" {
			sb.WriteString(fmt.Sprintf("Section: %s\n", r.Metadata.Section))
		}

		sb.WriteString("\n")
		sb.WriteString(r.Text)
		sb.WriteString("\n\n")
	}

	return sb.String()
}
