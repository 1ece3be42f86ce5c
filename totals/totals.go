// Package totals computes the derived numeric fields of an invoice.
//
// All arithmetic happens on raw float64 values; rounding to two decimals is
// a presentation concern handled by FormatAmount and never applied while
// accumulating. Discount, tax and shipping are each computed against the
// same base subtotal, not chained.
package totals

import (
	"fmt"
	"math"

	"github.com/faturalab/fatura/api"
)

// Coerce guards the numeric boundary: NaN and infinities become 0 so a
// single malformed field cannot poison every downstream total.
func Coerce(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// LineTotal returns quantity * rate for one line item. Negative quantities
// and rates are valid signed arithmetic (credit lines).
func LineTotal(item api.LineItem) float64 {
	return Coerce(item.Quantity) * Coerce(item.Rate)
}

// Subtotal sums the line totals in slice order. Addition is commutative but
// the stable order keeps floating-point results reproducible across runs.
func Subtotal(items []api.LineItem) float64 {
	var sum float64
	for _, item := range items {
		sum += LineTotal(item)
	}
	return sum
}

// AdjustmentAmount resolves one adjustment against the given subtotal.
// Disabled or zero-amount adjustments contribute 0 regardless of mode.
func AdjustmentAmount(adj api.Adjustment, subtotal float64) float64 {
	amount := Coerce(adj.Amount)
	if !adj.Enabled || amount == 0 {
		return 0
	}
	if adj.Mode == api.ModePercentage {
		return subtotal * amount / 100
	}
	return amount
}

// Breakdown is the full derived-total picture of one invoice.
type Breakdown struct {
	Subtotal float64 `json:"subtotal"`
	Discount float64 `json:"discount"`
	Tax      float64 `json:"tax"`
	Shipping float64 `json:"shipping"`
	Total    float64 `json:"total"`
}

// Compute derives the breakdown in one pass:
//
//	total = subtotal - discount + tax + shipping
//
// The sign convention and the fact that each adjustment is resolved against
// the same base subtotal are load-bearing; do not chain them.
func Compute(inv api.Invoice) Breakdown {
	sub := Subtotal(inv.Items())
	b := Breakdown{
		Subtotal: sub,
		Discount: AdjustmentAmount(inv.Summary.Discount, sub),
		Tax:      AdjustmentAmount(inv.Summary.Tax, sub),
		Shipping: AdjustmentAmount(inv.Summary.Shipping, sub),
	}
	b.Total = b.Subtotal - b.Discount + b.Tax + b.Shipping
	return b
}

// Total is a convenience for callers that only want the grand total.
func Total(inv api.Invoice) float64 {
	return Compute(inv).Total
}

// Apply recomputes the derived fields and stamps them onto the invoice.
// Stored subtotal/total values are never trusted; every read path goes
// through here before the document is handed out.
func Apply(inv *api.Invoice) {
	b := Compute(*inv)
	inv.Subtotal = b.Subtotal
	inv.Total = b.Total
}

// FormatAmount renders a monetary value for display: two decimals with the
// opaque currency code as a suffix, e.g. "59.97 USD".
func FormatAmount(v float64, currency string) string {
	if currency == "" {
		return fmt.Sprintf("%.2f", Coerce(v))
	}
	return fmt.Sprintf("%.2f %s", Coerce(v), currency)
}
