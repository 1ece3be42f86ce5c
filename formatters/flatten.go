package formatters

import (
	"strconv"

	"github.com/samber/lo"

	"github.com/faturalab/fatura/api"
)

// flatPair is one column of the tabular exports.
type flatPair struct {
	Key   string
	Value string
}

// flatten reduces an invoice to the fixed, documented key set shared by the
// csv and xlsx exports: party address fields, invoice metadata, payment
// info, adjustment settings, notes and status. Line items are not part of
// the flat form; that loss is a documented property of these formats, not
// an oversight to fix silently.
func flatten(inv api.Invoice) []flatPair {
	pairs := []flatPair{
		{"from_name", inv.BillFrom.Name},
		{"from_address", inv.BillFrom.Address},
		{"from_zip", inv.BillFrom.Zip},
		{"from_city", inv.BillFrom.City},
		{"from_country", inv.BillFrom.Country},
		{"from_email", inv.BillFrom.Email},
		{"from_phone", inv.BillFrom.Phone},

		{"to_name", inv.BillTo.Name},
		{"to_address", inv.BillTo.Address},
		{"to_zip", inv.BillTo.Zip},
		{"to_city", inv.BillTo.City},
		{"to_country", inv.BillTo.Country},
		{"to_email", inv.BillTo.Email},
		{"to_phone", inv.BillTo.Phone},

		{"invoice_number", inv.Details.Number},
		{"issue_date", inv.Details.IssueDate},
		{"due_date", inv.Details.DueDate},
		{"currency", inv.Details.Currency},

		{"bank_name", inv.Payment.BankName},
		{"account_name", inv.Payment.AccountName},
		{"account_number", inv.Payment.AccountNumber},
	}

	for _, kind := range api.Kinds {
		adj := inv.Summary.Adjustment(kind)
		pairs = append(pairs,
			flatPair{string(kind) + "_enabled", strconv.FormatBool(adj.Enabled)},
			flatPair{string(kind) + "_amount", formatNumber(adj.Amount)},
			flatPair{string(kind) + "_mode", string(adj.Mode)},
		)
	}

	pairs = append(pairs,
		flatPair{"additional_notes", inv.Summary.Notes},
		flatPair{"payment_terms", inv.Summary.Terms},
		flatPair{"status", string(inv.Summary.Status)},
	)

	return pairs
}

func flatKeys(pairs []flatPair) []string {
	return lo.Map(pairs, func(p flatPair, _ int) string { return p.Key })
}

func flatValues(pairs []flatPair) []string {
	return lo.Map(pairs, func(p flatPair, _ int) string { return p.Value })
}

// formatNumber prints an amount the way it was entered, without forcing a
// decimal representation onto whole numbers.
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
