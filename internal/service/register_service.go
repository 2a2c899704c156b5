package service

import (
	"context"
	"io"

	"gstbill/internal/register"
)

// RegisterService renders the sales register of issued invoices.
type RegisterService interface {
	WriteCSV(ctx context.Context, w io.Writer, filter ListInvoicesInput) error
	WriteXLSX(ctx context.Context, w io.Writer, filter ListInvoicesInput) error
}

type registerService struct {
	invoices InvoiceService
}

// NewRegisterService creates a RegisterService over the invoice list.
func NewRegisterService(invoices InvoiceService) RegisterService {
	return &registerService{invoices: invoices}
}

// WriteCSV writes a BOM-prefixed CSV with a header row.
func (s *registerService) WriteCSV(ctx context.Context, w io.Writer, filter ListInvoicesInput) error {
	invoices, err := s.invoices.List(ctx, filter)
	if err != nil {
		return err
	}
	if _, err := w.Write(register.BOM); err != nil {
		return err
	}
	cw := register.NewWriter(w)
	if err := cw.WriteHeader(); err != nil {
		return err
	}
	if err := cw.WriteInvoices(invoices); err != nil {
		return err
	}
	cw.Flush()
	return cw.Error()
}

func (s *registerService) WriteXLSX(ctx context.Context, w io.Writer, filter ListInvoicesInput) error {
	invoices, err := s.invoices.List(ctx, filter)
	if err != nil {
		return err
	}
	return register.WriteXLSX(w, invoices)
}
