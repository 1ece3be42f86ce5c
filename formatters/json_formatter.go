package formatters

import (
	"encoding/json"

	"github.com/faturalab/fatura/api"
)

// JSONFormatter handles the structured-data export. It is the only lossless
// format: the payload unmarshals back into an identical Invoice.
type JSONFormatter struct {
	Indent string
}

// NewJSONFormatter creates a new JSON formatter.
func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{
		Indent: "  ",
	}
}

// Format serializes the full nested invoice.
func (f *JSONFormatter) Format(inv api.Invoice) ([]byte, error) {
	return json.MarshalIndent(inv, "", f.Indent)
}

// FormatCompact serializes without indentation, for embedding in other
// payloads.
func (f *JSONFormatter) FormatCompact(inv api.Invoice) ([]byte, error) {
	return json.Marshal(inv)
}
