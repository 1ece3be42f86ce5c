// Package fatura computes invoice totals and exports invoice documents to
// multiple formats. The package-level helpers cover the common case; the
// api, totals and formatters packages expose the full surface.
package fatura

import (
	"github.com/faturalab/fatura/api"
	"github.com/faturalab/fatura/formatters"
	"github.com/faturalab/fatura/totals"
)

// Type aliases for the most commonly used domain types.
type (
	Invoice    = api.Invoice
	LineItem   = api.LineItem
	Adjustment = api.Adjustment
	Party      = api.Party
	Status     = api.Status
	Breakdown  = totals.Breakdown
	Payload    = formatters.Payload
)

// Compute returns the full totals breakdown for an invoice.
func Compute(inv Invoice) Breakdown {
	return totals.Compute(inv)
}

// Apply recomputes the derived subtotal/total fields in place.
func Apply(inv *Invoice) {
	totals.Apply(inv)
}

// Export renders the invoice in the requested format using the shared
// format manager.
func Export(inv Invoice, format string) (Payload, error) {
	return formatters.Default.Export(inv, format)
}

// RenderPDF renders the invoice as a single paginated document.
func RenderPDF(inv Invoice) (Payload, error) {
	return formatters.Default.ExportPDF(inv)
}
