package output

import (
	"github.com/jedib0t/go-pretty/v6/table"
)

// TableFormatter renders documents as an ASCII table.
type TableFormatter struct{}

// FormatDocument renders a document as a table.
func (f *TableFormatter) FormatDocument(doc *Document) (string, error) {
	if doc == nil {
		return "", nil
	}

	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	if doc.Title != "" {
		t.SetTitle(doc.Title)
	}
	if len(doc.Header) > 0 {
		t.AppendHeader(toRow(doc.Header))
	}

	for _, row := range doc.Rows {
		t.AppendRow(toRow(row))
	}

	if len(doc.Footer) > 0 {
		t.AppendFooter(toRow(doc.Footer))
	}

	return t.Render(), nil
}

func toRow(cells []string) table.Row {
	row := make(table.Row, len(cells))
	for i, cell := range cells {
		row[i] = cell
	}
	return row
}
