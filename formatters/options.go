package formatters

import (
	"fmt"

	"github.com/spf13/pflag"
)

// FormatOptions contains options for export operations.
type FormatOptions struct {
	Format  string
	Output  string
	NoColor bool

	// Format-specific boolean flags (mutually exclusive)
	JSON   bool
	YAML   bool
	CSV    bool
	XML    bool
	XLSX   bool
	PDF    bool
	Pretty bool
}

// BindPFlags adds export flags to the provided pflag set (for cobra).
func BindPFlags(flags *pflag.FlagSet, options *FormatOptions) {
	flags.StringVar(&options.Format, "format", FormatPretty, "Output format: pretty, json, yaml, csv, xml, xlsx, pdf")
	flags.StringVarP(&options.Output, "output", "o", "", "Output file (optional, uses stdout if not specified)")
	flags.BoolVar(&options.NoColor, "no-color", false, "Disable colored output")

	// Format-specific flags (mutually exclusive)
	flags.BoolVar(&options.JSON, "json", false, "Export as JSON")
	flags.BoolVar(&options.YAML, "yaml", false, "Export as YAML")
	flags.BoolVar(&options.CSV, "csv", false, "Export as CSV")
	flags.BoolVar(&options.XML, "xml", false, "Export as XML")
	flags.BoolVar(&options.XLSX, "xlsx", false, "Export as XLSX")
	flags.BoolVar(&options.PDF, "pdf", false, "Export as PDF")
	flags.BoolVar(&options.Pretty, "pretty", false, "Render a terminal preview (default)")
}

// ResolveFormat resolves the output format from the format-specific flags.
func (options *FormatOptions) ResolveFormat() error {
	formatCount := 0
	selectedFormat := ""

	for _, candidate := range []struct {
		set  bool
		name string
	}{
		{options.JSON, FormatJSON},
		{options.YAML, FormatYAML},
		{options.CSV, FormatCSV},
		{options.XML, FormatXML},
		{options.XLSX, FormatXLSX},
		{options.PDF, FormatPDF},
		{options.Pretty, FormatPretty},
	} {
		if candidate.set {
			formatCount++
			selectedFormat = candidate.name
		}
	}

	if formatCount > 1 {
		return fmt.Errorf("multiple format flags specified; please use only one format flag")
	}
	if formatCount == 1 {
		options.Format = selectedFormat
	}
	return nil
}
