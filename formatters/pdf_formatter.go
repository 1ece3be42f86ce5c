package formatters

import (
	"fmt"
	"time"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/faturalab/fatura/api"
	"github.com/faturalab/fatura/totals"
)

// Vertical layout constants, in mm. The item list runs at a constant line
// pitch below the summary block.
const (
	titleRowHeight   = 14.0
	detailRowHeight  = 7.0
	sectionRowHeight = 10.0
	itemRowHeight    = 6.0
)

// PDFFormatter renders the paginated document: invoice number, customer
// name and email, formatted issue date, recomputed total with currency
// suffix, a status line and one line per item. Invoices that outgrow the
// page flow onto additional pages; the fixed pitch within a page matches
// the flat layout of the web app's download.
type PDFFormatter struct{}

// NewPDFFormatter creates a new PDF formatter.
func NewPDFFormatter() *PDFFormatter {
	return &PDFFormatter{}
}

// Format renders the invoice to PDF bytes.
func (f *PDFFormatter) Format(inv api.Invoice) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(15).
		WithRightMargin(15).
		WithTopMargin(15).
		WithBottomMargin(15).
		Build()

	m := maroto.New(cfg)

	breakdown := totals.Compute(inv)
	currency := inv.Details.Currency

	m.AddRows(
		f.textRow(fmt.Sprintf("Invoice #%s", numberOrNA(inv.Details.Number)), titleRowHeight, props.Text{
			Size:  20,
			Style: fontstyle.Bold,
		}),
		f.textRow(fmt.Sprintf("Customer: %s", inv.BillTo.Name), detailRowHeight, props.Text{Size: 12}),
		f.textRow(fmt.Sprintf("Email: %s", inv.BillTo.Email), detailRowHeight, props.Text{Size: 12}),
		f.textRow(fmt.Sprintf("Date: %s", formatDate(inv.Details.IssueDate)), detailRowHeight, props.Text{Size: 12}),
		f.textRow(fmt.Sprintf("Total: %s", totals.FormatAmount(breakdown.Total, currency)), detailRowHeight, props.Text{Size: 12}),
		f.textRow(fmt.Sprintf("Status: %s", inv.Summary.Status), detailRowHeight, props.Text{Size: 12}),
	)

	items := inv.Items()
	if len(items) > 0 {
		m.AddRows(f.textRow("Items:", sectionRowHeight, props.Text{
			Size:  14,
			Style: fontstyle.Bold,
			Top:   3,
		}))
		for _, item := range items {
			line := fmt.Sprintf("%s - %s x %s = %s",
				item.Name,
				formatNumber(item.Quantity),
				formatNumber(item.Rate),
				totals.FormatAmount(totals.LineTotal(item), currency),
			)
			m.AddRows(f.textRow(line, itemRowHeight, props.Text{Size: 10, Left: 5}))
		}
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}
	return doc.GetBytes(), nil
}

func (f *PDFFormatter) textRow(content string, height float64, textProps props.Text) core.Row {
	return row.New(height).Add(
		col.New(12).Add(text.New(content, textProps)),
	)
}

// formatDate renders an ISO issue/due date for print, passing unparseable
// input through verbatim rather than failing the whole document.
func formatDate(date string) string {
	if date == "" {
		return "N/A"
	}
	if t, err := time.Parse("2006-01-02", date); err == nil {
		return t.Format("02 Jan 2006")
	}
	if t, err := time.Parse(time.RFC3339, date); err == nil {
		return t.Format("02 Jan 2006")
	}
	return date
}

func numberOrNA(number string) string {
	if number == "" {
		return "N/A"
	}
	return number
}
