package output

import "encoding/json"

// JSONFormatter renders documents as JSON.
type JSONFormatter struct {
	Indent bool
}

// FormatDocument renders the document's raw value as JSON.
func (f *JSONFormatter) FormatDocument(doc *Document) (string, error) {
	if doc == nil || doc.Raw == nil {
		return "", nil
	}

	var (
		data []byte
		err  error
	)

	if f.Indent {
		data, err = json.MarshalIndent(doc.Raw, "", "  ")
	} else {
		data, err = json.Marshal(doc.Raw)
	}
	if err != nil {
		return "", err
	}

	return string(data), nil
}
