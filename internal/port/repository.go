package port

import (
	"context"

	"gstbill/internal/domain"
)

// CustomerRepository defines the contract for customer persistence, keyed by GSTIN.
type CustomerRepository interface {
	// GetAll returns every customer in insertion order.
	GetAll(ctx context.Context) ([]domain.CustomerDetails, error)
	// Save inserts the customer or fully replaces the one with the same GSTIN.
	Save(ctx context.Context, customer *domain.CustomerDetails) error
	// FindByKey returns domain.ErrCustomerNotFound when absent.
	FindByKey(ctx context.Context, gstin string) (*domain.CustomerDetails, error)
	// Delete is a no-op when the GSTIN is absent.
	Delete(ctx context.Context, gstin string) error
	// ReplaceAll overwrites the whole collection.
	ReplaceAll(ctx context.Context, customers []domain.CustomerDetails) error
}

// InvoiceRepository defines the contract for invoice persistence, keyed by ID.
// Invoice numbers are unique; saving a different invoice under an existing
// number returns domain.ErrDuplicateInvoiceNumber.
type InvoiceRepository interface {
	GetAll(ctx context.Context) ([]domain.InvoiceData, error)
	Save(ctx context.Context, invoice *domain.InvoiceData) error
	// FindByKey returns domain.ErrInvoiceNotFound when absent.
	FindByKey(ctx context.Context, id string) (*domain.InvoiceData, error)
	Delete(ctx context.Context, id string) error
	ReplaceAll(ctx context.Context, invoices []domain.InvoiceData) error
	// InvoiceNumbers returns all invoice numbers in insertion order.
	InvoiceNumbers(ctx context.Context) ([]string, error)
}

// Store groups the repositories of one persistence backend.
type Store interface {
	Customers() CustomerRepository
	Invoices() InvoiceRepository
	// InTx runs fn with repositories that commit together or not at all.
	InTx(ctx context.Context, fn func(tx Store) error) error
	Ping(ctx context.Context) error
}

// InvoiceCounter hands out invoice counter values across processes.
type InvoiceCounter interface {
	// Reserve returns a value greater than floor and greater than every
	// value it returned before.
	Reserve(ctx context.Context, floor int) (int, error)
	// Peek returns the value Reserve would return for floor without taking it.
	Peek(ctx context.Context, floor int) (int, error)
	// Reset sets the last reserved value, so the next reservation is above value.
	Reset(ctx context.Context, value int) error
}
