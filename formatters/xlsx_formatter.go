package formatters

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/faturalab/fatura/api"
)

// XLSXFormatter handles the spreadsheet export: a single worksheet holding
// one logical record, with the flat key set as the header row and the
// invoice values beneath it. As with csv this form drops the line items;
// the sheet represents the invoice document, not its rows.
type XLSXFormatter struct {
	SheetName string
}

// NewXLSXFormatter creates a new XLSX formatter.
func NewXLSXFormatter() *XLSXFormatter {
	return &XLSXFormatter{
		SheetName: "Invoice",
	}
}

// Format writes the workbook to memory.
func (f *XLSXFormatter) Format(inv api.Invoice) ([]byte, error) {
	pairs := flatten(inv)

	wb := excelize.NewFile()
	defer wb.Close()

	if err := wb.SetSheetName("Sheet1", f.SheetName); err != nil {
		return nil, fmt.Errorf("failed to name worksheet: %w", err)
	}

	for i, pair := range pairs {
		headerCell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		valueCell, err := excelize.CoordinatesToCellName(i+1, 2)
		if err != nil {
			return nil, err
		}
		if err := wb.SetCellValue(f.SheetName, headerCell, pair.Key); err != nil {
			return nil, err
		}
		if err := wb.SetCellValue(f.SheetName, valueCell, pair.Value); err != nil {
			return nil, err
		}
	}

	buf, err := wb.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}
