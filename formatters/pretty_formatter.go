package formatters

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/faturalab/fatura/api"
	"github.com/faturalab/fatura/totals"
)

// PrettyFormatter renders a terminal preview of an invoice: header, party
// block, item lines and the totals breakdown. Intended for the CLI, not for
// download.
type PrettyFormatter struct {
	NoColor bool

	title  lipgloss.Style
	label  lipgloss.Style
	muted  lipgloss.Style
	status map[api.Status]lipgloss.Style
}

// NewPrettyFormatter creates a new pretty formatter.
func NewPrettyFormatter() *PrettyFormatter {
	return &PrettyFormatter{
		title: lipgloss.NewStyle().Bold(true),
		label: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6")),
		muted: lipgloss.NewStyle().Faint(true),
		status: map[api.Status]lipgloss.Style{
			api.StatusPending:   lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
			api.StatusPaid:      lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
			api.StatusCancelled: lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
		},
	}
}

// Format renders the invoice as styled terminal text.
func (f *PrettyFormatter) Format(inv api.Invoice) (string, error) {
	var sb strings.Builder
	currency := inv.Details.Currency
	breakdown := totals.Compute(inv)

	sb.WriteString(f.render(f.title, fmt.Sprintf("Invoice #%s", numberOrNA(inv.Details.Number))))
	sb.WriteString("  ")
	sb.WriteString(f.renderStatus(inv.Summary.Status))
	sb.WriteString("\n\n")

	f.writeParty(&sb, "From", inv.BillFrom)
	f.writeParty(&sb, "To", inv.BillTo)

	if inv.Details.IssueDate != "" {
		sb.WriteString(fmt.Sprintf("%s %s", f.render(f.label, "Issued:"), formatDate(inv.Details.IssueDate)))
		sb.WriteString("\n")
	}
	if inv.Details.DueDate != "" {
		sb.WriteString(fmt.Sprintf("%s %s", f.render(f.label, "Due:"), formatDate(inv.Details.DueDate)))
		sb.WriteString("\n")
	}
	sb.WriteString("\n")

	for _, item := range inv.Items() {
		line := fmt.Sprintf("  %s  %s x %s = %s",
			item.Name,
			formatNumber(item.Quantity),
			formatNumber(item.Rate),
			totals.FormatAmount(totals.LineTotal(item), currency),
		)
		sb.WriteString(line)
		if item.Description != "" {
			sb.WriteString("  " + f.render(f.muted, item.Description))
		}
		sb.WriteString("\n")
	}
	sb.WriteString("\n")

	f.writeAmount(&sb, "Subtotal", breakdown.Subtotal, currency)
	if breakdown.Discount != 0 {
		f.writeAmount(&sb, "Discount", -breakdown.Discount, currency)
	}
	if breakdown.Tax != 0 {
		f.writeAmount(&sb, "Tax", breakdown.Tax, currency)
	}
	if breakdown.Shipping != 0 {
		f.writeAmount(&sb, "Shipping", breakdown.Shipping, currency)
	}
	f.writeAmount(&sb, "Total", breakdown.Total, currency)

	return sb.String(), nil
}

func (f *PrettyFormatter) writeParty(sb *strings.Builder, heading string, p api.Party) {
	if p.Name == "" && p.Email == "" {
		return
	}
	sb.WriteString(f.render(f.label, heading+":"))
	sb.WriteString(" " + p.Name)
	if p.Email != "" {
		sb.WriteString(" " + f.render(f.muted, "<"+p.Email+">"))
	}
	sb.WriteString("\n")
}

func (f *PrettyFormatter) writeAmount(sb *strings.Builder, label string, v float64, currency string) {
	sb.WriteString(fmt.Sprintf("%-10s %s\n", label+":", totals.FormatAmount(v, currency)))
}

func (f *PrettyFormatter) renderStatus(s api.Status) string {
	if style, ok := f.status[s]; ok {
		return f.render(style, string(s))
	}
	return string(s)
}

func (f *PrettyFormatter) render(style lipgloss.Style, s string) string {
	if f.NoColor {
		return s
	}
	return style.Render(s)
}
