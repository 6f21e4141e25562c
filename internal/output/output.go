// Package output renders API entities for the CLI in table, JSON, and
// markdown form.
package output

import (
	"fmt"
	"strings"
)

// Format represents an output format.
type Format string

const (
	FormatTable    Format = "table"
	FormatJSON     Format = "json"
	FormatMarkdown Format = "markdown"
)

// Document is a renderable view of one or more API entities. Raw holds the
// original values for JSON output; Header and Rows drive the tabular
// formats.
type Document struct {
	Title  string
	Header []string
	Rows   [][]string
	Footer []string
	Raw    any
}

// Formatter renders a document.
type Formatter interface {
	FormatDocument(doc *Document) (string, error)
}

// ParseFormat validates and normalizes a format string.
func ParseFormat(value string) (Format, error) {
	normalized := strings.ToLower(strings.TrimSpace(value))
	switch normalized {
	case "", string(FormatTable):
		return FormatTable, nil
	case string(FormatJSON):
		return FormatJSON, nil
	case string(FormatMarkdown):
		return FormatMarkdown, nil
	default:
		return "", fmt.Errorf("unsupported output format: %s", value)
	}
}

// NewFormatter returns a formatter for the requested format.
func NewFormatter(format Format) Formatter {
	switch format {
	case FormatJSON:
		return &JSONFormatter{Indent: true}
	case FormatMarkdown:
		return &MarkdownFormatter{}
	default:
		return &TableFormatter{}
	}
}

// Render is the one-call path used by the CLI commands.
func Render(format Format, doc *Document) (string, error) {
	return NewFormatter(format).FormatDocument(doc)
}
