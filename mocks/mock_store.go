package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"gstbill/internal/port"
)

// MockStore is a port.Store over mock repositories. InTx runs the callback
// against the same mocks and returns its error.
type MockStore struct {
	mock.Mock
	CustomerRepo *MockCustomerRepo
	InvoiceRepo  *MockInvoiceRepo
}

// NewMockStore creates a MockStore with fresh repository mocks.
func NewMockStore() *MockStore {
	return &MockStore{
		CustomerRepo: new(MockCustomerRepo),
		InvoiceRepo:  new(MockInvoiceRepo),
	}
}

func (m *MockStore) Customers() port.CustomerRepository { return m.CustomerRepo }
func (m *MockStore) Invoices() port.InvoiceRepository   { return m.InvoiceRepo }

func (m *MockStore) InTx(_ context.Context, fn func(tx port.Store) error) error {
	return fn(m)
}

func (m *MockStore) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
