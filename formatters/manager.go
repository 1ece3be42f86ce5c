// Package formatters is the invoice export pipeline: one formatter per
// output format plus a manager that dispatches on a format name and wraps
// the result in a download-ready payload.
package formatters

import (
	"errors"
	"fmt"

	"github.com/faturalab/fatura/api"
)

// Format names accepted by Manager.Export.
const (
	FormatJSON   = "json"
	FormatYAML   = "yaml"
	FormatCSV    = "csv"
	FormatXML    = "xml"
	FormatXLSX   = "xlsx"
	FormatPDF    = "pdf"
	FormatPretty = "pretty"
)

// ErrUnsupportedFormat is returned for export targets outside the supported
// set. The call fails as a whole; no partial payload is ever produced.
var ErrUnsupportedFormat = errors.New("unsupported format")

// Payload is a fully rendered export: the bytes to send plus the
// content-type and suggested filename for the download.
type Payload struct {
	Data        []byte
	ContentType string
	Filename    string
}

// Manager holds one instance of every formatter.
type Manager struct {
	jsonFormatter   *JSONFormatter
	yamlFormatter   *YAMLFormatter
	csvFormatter    *CSVFormatter
	xmlFormatter    *XMLFormatter
	xlsxFormatter   *XLSXFormatter
	pdfFormatter    *PDFFormatter
	prettyFormatter *PrettyFormatter
}

// NewManager creates a manager with all formatters initialized.
func NewManager() *Manager {
	return &Manager{
		jsonFormatter:   NewJSONFormatter(),
		yamlFormatter:   NewYAMLFormatter(),
		csvFormatter:    NewCSVFormatter(),
		xmlFormatter:    NewXMLFormatter(),
		xlsxFormatter:   NewXLSXFormatter(),
		pdfFormatter:    NewPDFFormatter(),
		prettyFormatter: NewPrettyFormatter(),
	}
}

// Export renders the invoice in the requested format. The invoice is taken
// as-is; callers that need trustworthy derived totals run totals.Apply
// before exporting. Output is deterministic for a given invoice and format.
func (m *Manager) Export(inv api.Invoice, format string) (Payload, error) {
	switch format {
	case FormatJSON:
		data, err := m.jsonFormatter.Format(inv)
		if err != nil {
			return Payload{}, fmt.Errorf("json export failed: %w", err)
		}
		return Payload{Data: data, ContentType: "application/json", Filename: "invoice.json"}, nil
	case FormatYAML, "yml":
		data, err := m.yamlFormatter.Format(inv)
		if err != nil {
			return Payload{}, fmt.Errorf("yaml export failed: %w", err)
		}
		return Payload{Data: data, ContentType: "application/yaml", Filename: "invoice.yaml"}, nil
	case FormatCSV:
		data, err := m.csvFormatter.Format(inv)
		if err != nil {
			return Payload{}, fmt.Errorf("csv export failed: %w", err)
		}
		return Payload{Data: data, ContentType: "text/csv", Filename: "invoice.csv"}, nil
	case FormatXML:
		data, err := m.xmlFormatter.Format(inv)
		if err != nil {
			return Payload{}, fmt.Errorf("xml export failed: %w", err)
		}
		return Payload{Data: data, ContentType: "application/xml", Filename: "invoice.xml"}, nil
	case FormatXLSX:
		data, err := m.xlsxFormatter.Format(inv)
		if err != nil {
			return Payload{}, fmt.Errorf("xlsx export failed: %w", err)
		}
		return Payload{
			Data:        data,
			ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
			Filename:    "invoice.xlsx",
		}, nil
	case FormatPDF:
		return m.ExportPDF(inv)
	case FormatPretty:
		data, err := m.prettyFormatter.Format(inv)
		if err != nil {
			return Payload{}, fmt.Errorf("pretty export failed: %w", err)
		}
		return Payload{Data: []byte(data), ContentType: "text/plain; charset=utf-8", Filename: "invoice.txt"}, nil
	default:
		return Payload{}, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
}

// ExportPDF renders the paginated document. The filename carries the
// invoice number so downloads stay distinguishable in a folder of exports.
func (m *Manager) ExportPDF(inv api.Invoice) (Payload, error) {
	data, err := m.pdfFormatter.Format(inv)
	if err != nil {
		return Payload{}, fmt.Errorf("pdf export failed: %w", err)
	}
	filename := "invoice.pdf"
	if inv.Details.Number != "" {
		filename = fmt.Sprintf("invoice-%s.pdf", inv.Details.Number)
	}
	return Payload{Data: data, ContentType: "application/pdf", Filename: filename}, nil
}

// Default is the shared manager used by the package-level helpers in the
// root package.
var Default = NewManager()
