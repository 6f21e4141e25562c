package output

import (
	"fmt"
	"strings"
)

// MarkdownFormatter renders documents as a markdown table.
type MarkdownFormatter struct{}

// FormatDocument renders a document as Markdown.
func (f *MarkdownFormatter) FormatDocument(doc *Document) (string, error) {
	if doc == nil {
		return "", nil
	}

	var sb strings.Builder
	if doc.Title != "" {
		sb.WriteString(fmt.Sprintf("## %s\n\n", escapeMarkdownCell(doc.Title)))
	}

	if len(doc.Header) > 0 {
		writeMarkdownRow(&sb, doc.Header)
		separators := make([]string, len(doc.Header))
		for i := range separators {
			separators[i] = "---"
		}
		writeMarkdownRow(&sb, separators)
	}

	for _, row := range doc.Rows {
		writeMarkdownRow(&sb, row)
	}

	if len(doc.Footer) > 0 {
		sb.WriteString(fmt.Sprintf("\n**%s**\n", escapeMarkdownCell(strings.Join(doc.Footer, " "))))
	}

	return sb.String(), nil
}

func writeMarkdownRow(sb *strings.Builder, cells []string) {
	escaped := make([]string, len(cells))
	for i, cell := range cells {
		escaped[i] = escapeMarkdownCell(cell)
	}
	sb.WriteString("| " + strings.Join(escaped, " | ") + " |\n")
}

func escapeMarkdownCell(value string) string {
	return strings.ReplaceAll(value, "|", "\\|")
}
