// Package register renders the sales register: one row per issued invoice,
// as CSV or as an XLSX workbook with a second sheet of line items.
package register

import (
	"encoding/csv"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"time"

	"gstbill/internal/domain"
)

// UTF-8 BOM bytes for Excel compatibility on Windows.
var BOM = []byte{0xEF, 0xBB, 0xBF}

// columns defines the register header row.
var columns = []string{
	"Invoice Number",
	"Invoice Date",
	"Customer Name",
	"Customer GSTIN",
	"Customer State",
	"State Code",
	"Place of Supply",
	"Supply Type",
	"Reverse Charge",
	"Bill No",
	"Truck No",
	"Item Count",
	"Taxable Value",
	"CGST",
	"SGST",
	"IGST",
	"Total",
	"Amount in Words",
}

// Columns returns a copy of the register header.
func Columns() []string {
	return append([]string(nil), columns...)
}

// Writer wraps csv.Writer for exporting invoices as CSV.
type Writer struct {
	csv *csv.Writer
}

// NewWriter creates a Writer that writes CSV to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{csv: csv.NewWriter(w)}
}

// WriteHeader writes the header row.
func (w *Writer) WriteHeader() error {
	return w.csv.Write(columns)
}

// WriteInvoices converts a batch of invoices to CSV rows and writes them.
func (w *Writer) WriteInvoices(invoices []domain.InvoiceData) error {
	for i := range invoices {
		if err := w.csv.Write(invoiceToRow(&invoices[i])); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes the underlying csv.Writer buffer.
func (w *Writer) Flush() {
	w.csv.Flush()
}

// Error returns any error from the underlying csv.Writer.
func (w *Writer) Error() error {
	return w.csv.Error()
}

func invoiceToRow(inv *domain.InvoiceData) []string {
	placeOfSupply := inv.Recipient.PlaceOfSupply
	if placeOfSupply == "" {
		placeOfSupply = inv.PlaceOfSupply
	}
	return []string{
		inv.InvoiceNumber,
		inv.Date,
		inv.Customer.Name,
		inv.Customer.GSTIN,
		inv.Customer.State,
		inv.Customer.StateCode,
		placeOfSupply,
		SupplyType(inv),
		formatBool(inv.ReverseCharge),
		inv.BillNo,
		inv.TruckNo,
		strconv.Itoa(len(inv.Items)),
		formatMoney(inv.TotalTaxableValue),
		formatMoney(inv.CGST),
		formatMoney(inv.SGST),
		formatMoney(inv.IGST),
		formatMoney(inv.TotalAmount),
		inv.AmountInWords,
	}
}

// SupplyType labels an issued invoice by the tax kind it carries.
func SupplyType(inv *domain.InvoiceData) string {
	switch {
	case inv.IGST > 0:
		return "Inter-State"
	case inv.CGST > 0 || inv.SGST > 0:
		return "Intra-State"
	default:
		return ""
	}
}

func formatMoney(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func formatBool(v bool) string {
	if v {
		return "Yes"
	}
	return "No"
}

// nonAlphanumeric matches characters that are not alphanumeric, hyphen, or underscore.
var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

// multiUnderscore matches consecutive underscores.
var multiUnderscore = regexp.MustCompile(`_{2,}`)

// SanitizeFilename replaces characters unsafe in Content-Disposition with _,
// collapses runs of underscores, and truncates to 100 chars.
func SanitizeFilename(name string) string {
	s := nonAlphanumeric.ReplaceAllString(name, "_")
	s = multiUnderscore.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	if len(s) > 100 {
		s = s[:100]
	}
	return s
}

// BuildFilename returns {sanitized_name}_{YYYY-MM-DD}.{ext}.
func BuildFilename(name, ext string, now time.Time) string {
	sanitized := SanitizeFilename(name)
	if sanitized == "" {
		sanitized = "register"
	}
	return fmt.Sprintf("%s_%s.%s", sanitized, now.Format("2006-01-02"), ext)
}
