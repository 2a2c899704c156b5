package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"gstbill/internal/domain"
	"gstbill/internal/port"
)

const dateLayout = "2006-01-02"

const invoiceColumns = `id, invoice_number, invoice_date, bill_no, truck_no, place_of_supply,
	reverse_charge, customer, items, cgst, sgst, igst, total_taxable_value, total_amount,
	amount_in_words, supplier, recipient, dispatch_from, ship_to`

// invoiceRow is the table shape of an invoice; nested blocks live in JSONB columns.
type invoiceRow struct {
	ID                string    `db:"id"`
	InvoiceNumber     string    `db:"invoice_number"`
	InvoiceDate       time.Time `db:"invoice_date"`
	BillNo            string    `db:"bill_no"`
	TruckNo           string    `db:"truck_no"`
	PlaceOfSupply     string    `db:"place_of_supply"`
	ReverseCharge     bool      `db:"reverse_charge"`
	Customer          []byte    `db:"customer"`
	Items             []byte    `db:"items"`
	CGST              float64   `db:"cgst"`
	SGST              float64   `db:"sgst"`
	IGST              float64   `db:"igst"`
	TotalTaxableValue float64   `db:"total_taxable_value"`
	TotalAmount       float64   `db:"total_amount"`
	AmountInWords     string    `db:"amount_in_words"`
	Supplier          []byte    `db:"supplier"`
	Recipient         []byte    `db:"recipient"`
	DispatchFrom      []byte    `db:"dispatch_from"`
	ShipTo            []byte    `db:"ship_to"`
}

func (row *invoiceRow) toDomain() (*domain.InvoiceData, error) {
	inv := &domain.InvoiceData{
		ID:                row.ID,
		InvoiceNumber:     row.InvoiceNumber,
		Date:              row.InvoiceDate.Format(dateLayout),
		BillNo:            row.BillNo,
		TruckNo:           row.TruckNo,
		PlaceOfSupply:     row.PlaceOfSupply,
		ReverseCharge:     row.ReverseCharge,
		CGST:              row.CGST,
		SGST:              row.SGST,
		IGST:              row.IGST,
		TotalTaxableValue: row.TotalTaxableValue,
		TotalAmount:       row.TotalAmount,
		AmountInWords:     row.AmountInWords,
	}
	blocks := []struct {
		raw  []byte
		dest any
	}{
		{row.Customer, &inv.Customer},
		{row.Items, &inv.Items},
		{row.Supplier, &inv.Supplier},
		{row.Recipient, &inv.Recipient},
		{row.DispatchFrom, &inv.DispatchFrom},
		{row.ShipTo, &inv.ShipTo},
	}
	for _, b := range blocks {
		if len(b.raw) == 0 {
			continue
		}
		if err := json.Unmarshal(b.raw, b.dest); err != nil {
			return nil, fmt.Errorf("decoding invoice %s: %w", row.ID, err)
		}
	}
	if inv.Items == nil {
		inv.Items = []domain.InvoiceItem{}
	}
	return inv, nil
}

type invoiceRepo struct {
	db sqlx.ExtContext
}

// NewInvoiceRepo creates a new PostgreSQL-backed InvoiceRepository. db may
// be a pool or a transaction.
func NewInvoiceRepo(db sqlx.ExtContext) port.InvoiceRepository {
	return &invoiceRepo{db: db}
}

func (r *invoiceRepo) GetAll(ctx context.Context) ([]domain.InvoiceData, error) {
	var rows []invoiceRow
	err := sqlx.SelectContext(ctx, r.db, &rows,
		`SELECT `+invoiceColumns+` FROM invoices ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("invoiceRepo.GetAll: %w", err)
	}
	invoices := make([]domain.InvoiceData, 0, len(rows))
	for i := range rows {
		inv, err := rows[i].toDomain()
		if err != nil {
			return nil, fmt.Errorf("invoiceRepo.GetAll: %w", err)
		}
		invoices = append(invoices, *inv)
	}
	return invoices, nil
}

func (r *invoiceRepo) Save(ctx context.Context, invoice *domain.InvoiceData) error {
	date, err := time.Parse(dateLayout, invoice.Date)
	if err != nil {
		return fmt.Errorf("%w: %q", domain.ErrInvalidDate, invoice.Date)
	}
	items := invoice.Items
	if items == nil {
		items = []domain.InvoiceItem{}
	}
	encoded, err := encodeAll(invoice.Customer, items, invoice.Supplier,
		invoice.Recipient, invoice.DispatchFrom, invoice.ShipTo)
	if err != nil {
		return fmt.Errorf("invoiceRepo.Save: %w", err)
	}

	query := `INSERT INTO invoices (` + invoiceColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
		ON CONFLICT (id) DO UPDATE SET
			invoice_number = EXCLUDED.invoice_number,
			invoice_date = EXCLUDED.invoice_date,
			bill_no = EXCLUDED.bill_no,
			truck_no = EXCLUDED.truck_no,
			place_of_supply = EXCLUDED.place_of_supply,
			reverse_charge = EXCLUDED.reverse_charge,
			customer = EXCLUDED.customer,
			items = EXCLUDED.items,
			cgst = EXCLUDED.cgst,
			sgst = EXCLUDED.sgst,
			igst = EXCLUDED.igst,
			total_taxable_value = EXCLUDED.total_taxable_value,
			total_amount = EXCLUDED.total_amount,
			amount_in_words = EXCLUDED.amount_in_words,
			supplier = EXCLUDED.supplier,
			recipient = EXCLUDED.recipient,
			dispatch_from = EXCLUDED.dispatch_from,
			ship_to = EXCLUDED.ship_to,
			updated_at = NOW()`

	_, err = r.db.ExecContext(ctx, query,
		invoice.ID, invoice.InvoiceNumber, date, invoice.BillNo, invoice.TruckNo,
		invoice.PlaceOfSupply, invoice.ReverseCharge, encoded[0], encoded[1],
		invoice.CGST, invoice.SGST, invoice.IGST, invoice.TotalTaxableValue,
		invoice.TotalAmount, invoice.AmountInWords,
		encoded[2], encoded[3], encoded[4], encoded[5])
	if err != nil {
		if isUniqueViolation(err, "invoice_number") {
			return domain.ErrDuplicateInvoiceNumber
		}
		return fmt.Errorf("invoiceRepo.Save: %w", err)
	}
	return nil
}

func (r *invoiceRepo) FindByKey(ctx context.Context, id string) (*domain.InvoiceData, error) {
	var row invoiceRow
	err := sqlx.GetContext(ctx, r.db, &row,
		`SELECT `+invoiceColumns+` FROM invoices WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrInvoiceNotFound
		}
		return nil, fmt.Errorf("invoiceRepo.FindByKey: %w", err)
	}
	inv, err := row.toDomain()
	if err != nil {
		return nil, fmt.Errorf("invoiceRepo.FindByKey: %w", err)
	}
	return inv, nil
}

func (r *invoiceRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM invoices WHERE id = $1", id); err != nil {
		return fmt.Errorf("invoiceRepo.Delete: %w", err)
	}
	return nil
}

func (r *invoiceRepo) ReplaceAll(ctx context.Context, invoices []domain.InvoiceData) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM invoices"); err != nil {
		return fmt.Errorf("invoiceRepo.ReplaceAll clear: %w", err)
	}
	for i := range invoices {
		if err := r.Save(ctx, &invoices[i]); err != nil {
			return err
		}
	}
	return nil
}

func (r *invoiceRepo) InvoiceNumbers(ctx context.Context) ([]string, error) {
	numbers := []string{}
	err := sqlx.SelectContext(ctx, r.db, &numbers, "SELECT invoice_number FROM invoices ORDER BY seq")
	if err != nil {
		return nil, fmt.Errorf("invoiceRepo.InvoiceNumbers: %w", err)
	}
	return numbers, nil
}

func encodeAll(values ...any) ([][]byte, error) {
	out := make([][]byte, len(values))
	for i, v := range values {
		b, err := json.Marshal(v)
		if err != nil {
			return nil, err
		}
		out[i] = b
	}
	return out, nil
}
