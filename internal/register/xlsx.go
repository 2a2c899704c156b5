package register

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"gstbill/internal/domain"
)

const (
	RegisterSheet = "Register"
	ItemsSheet    = "Items"
)

var itemColumns = []string{
	"Invoice Number",
	"Invoice Date",
	"Customer GSTIN",
	"Description",
	"HSN Code",
	"Quantity",
	"Unit",
	"Rate",
	"Amount",
}

// WriteXLSX writes a workbook with a register sheet and an items sheet.
// Amounts are stored as numbers so the sheet can be summed.
func WriteXLSX(w io.Writer, invoices []domain.InvoiceData) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", RegisterSheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	if _, err := f.NewSheet(ItemsSheet); err != nil {
		return fmt.Errorf("create items sheet: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("create header style: %w", err)
	}

	if err := writeRow(f, RegisterSheet, 1, toCells(columns)); err != nil {
		return err
	}
	if err := writeRow(f, ItemsSheet, 1, toCells(itemColumns)); err != nil {
		return err
	}
	for _, sheet := range []string{RegisterSheet, ItemsSheet} {
		if err := f.SetRowStyle(sheet, 1, 1, bold); err != nil {
			return fmt.Errorf("style header: %w", err)
		}
	}

	itemRow := 2
	for i := range invoices {
		inv := &invoices[i]
		if err := writeRow(f, RegisterSheet, i+2, registerCells(inv)); err != nil {
			return err
		}
		for _, it := range inv.Items {
			cells := []interface{}{
				inv.InvoiceNumber, inv.Date, inv.Customer.GSTIN,
				it.Description, it.HSNCode, it.Quantity, string(it.Unit), it.Rate, it.Amount,
			}
			if err := writeRow(f, ItemsSheet, itemRow, cells); err != nil {
				return err
			}
			itemRow++
		}
	}

	if err := f.SetColWidth(RegisterSheet, "A", "R", 16); err != nil {
		return fmt.Errorf("set column width: %w", err)
	}
	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func registerCells(inv *domain.InvoiceData) []interface{} {
	row := invoiceToRow(inv)
	cells := toCells(row)
	// numeric columns: item count and the money columns
	cells[11] = len(inv.Items)
	cells[12] = inv.TotalTaxableValue
	cells[13] = inv.CGST
	cells[14] = inv.SGST
	cells[15] = inv.IGST
	cells[16] = inv.TotalAmount
	return cells
}

func toCells(values []string) []interface{} {
	cells := make([]interface{}, len(values))
	for i, v := range values {
		cells[i] = v
	}
	return cells
}

func writeRow(f *excelize.File, sheet string, row int, cells []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, cell, &cells); err != nil {
		return fmt.Errorf("write %s row %d: %w", sheet, row, err)
	}
	return nil
}
