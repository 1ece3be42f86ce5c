package formatters

import (
	"bytes"
	"strings"

	"github.com/faturalab/fatura/api"
)

// CSVFormatter handles the tabular-flat export: a fixed header row and one
// value row covering the flat key set (see flatten). Every value is quoted,
// and embedded quote characters are escaped by doubling (RFC 4180); the
// header keys contain no quotable characters and are written bare.
type CSVFormatter struct {
	Separator string
}

// NewCSVFormatter creates a new CSV formatter.
func NewCSVFormatter() *CSVFormatter {
	return &CSVFormatter{
		Separator: ",",
	}
}

// Format flattens the invoice into a single header/row pair.
func (f *CSVFormatter) Format(inv api.Invoice) ([]byte, error) {
	pairs := flatten(inv)

	var buf bytes.Buffer
	buf.WriteString(strings.Join(flatKeys(pairs), f.Separator))
	buf.WriteString("\n")

	quoted := make([]string, 0, len(pairs))
	for _, v := range flatValues(pairs) {
		quoted = append(quoted, `"`+strings.ReplaceAll(v, `"`, `""`)+`"`)
	}
	buf.WriteString(strings.Join(quoted, f.Separator))
	buf.WriteString("\n")

	return buf.Bytes(), nil
}
