package memory

import (
	"context"

	"gstbill/internal/domain"
)

type invoiceRepo struct {
	s *Store
}

func (r *invoiceRepo) GetAll(_ context.Context) ([]domain.InvoiceData, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]domain.InvoiceData, len(r.s.invoices))
	for i := range r.s.invoices {
		out[i] = r.s.invoices[i].Clone()
	}
	return out, nil
}

func (r *invoiceRepo) Save(_ context.Context, invoice *domain.InvoiceData) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.saveInvoice(invoice.Clone())
}

func (r *invoiceRepo) FindByKey(_ context.Context, id string) (*domain.InvoiceData, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for i := range r.s.invoices {
		if r.s.invoices[i].ID == id {
			inv := r.s.invoices[i].Clone()
			return &inv, nil
		}
	}
	return nil, domain.ErrInvoiceNotFound
}

func (r *invoiceRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	kept := r.s.invoices[:0:0]
	for i := range r.s.invoices {
		if r.s.invoices[i].ID != id {
			kept = append(kept, r.s.invoices[i])
		}
	}
	r.s.invoices = kept
	return nil
}

func (r *invoiceRepo) ReplaceAll(_ context.Context, invoices []domain.InvoiceData) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	prev := r.s.invoices
	r.s.invoices = nil
	for i := range invoices {
		if err := r.s.saveInvoice(invoices[i].Clone()); err != nil {
			r.s.invoices = prev
			return err
		}
	}
	return nil
}

func (r *invoiceRepo) InvoiceNumbers(_ context.Context) ([]string, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	numbers := make([]string, len(r.s.invoices))
	for i := range r.s.invoices {
		numbers[i] = r.s.invoices[i].InvoiceNumber
	}
	return numbers, nil
}

// saveInvoice upserts inv by ID; the caller holds mu.
func (s *Store) saveInvoice(inv domain.InvoiceData) error {
	pos := -1
	for i := range s.invoices {
		if s.invoices[i].ID == inv.ID {
			pos = i
			continue
		}
		if s.invoices[i].InvoiceNumber == inv.InvoiceNumber {
			return domain.ErrDuplicateInvoiceNumber
		}
	}
	if pos >= 0 {
		s.invoices[pos] = inv
		return nil
	}
	s.invoices = append(s.invoices, inv)
	return nil
}
