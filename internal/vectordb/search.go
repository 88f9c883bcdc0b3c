package vectordb

import (
	"fmt"
	"strings"
)

// FormatResults renders search results as plain text for the CLI and MCP
// tools.
func FormatResults(results []SearchResult) string {
	if len(results) == 0 {
		return "No matching posts."
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Found %d post(s):\n\n", len(results))

	for i, r := range results {
		md := r.Document.Metadata
		fmt.Fprintf(&sb, "%d. %s (%s, similarity %.3f)\n", i+1, md.Title, r.Document.ID, r.Similarity)
		if !md.Date.IsZero() {
			fmt.Fprintf(&sb, "   Date: %s\n", md.Date.Format("2006-01-02"))
		}
		if len(md.Tags) > 0 {
			fmt.Fprintf(&sb, "   Tags: %s\n", strings.Join(md.Tags, ", "))
		}
		if md.Summary != "" {
			fmt.Fprintf(&sb, "   %s\n", md.Summary)
		}
		sb.WriteString("\n")
	}

	return strings.TrimRight(sb.String(), "\n") + "\n"
}
