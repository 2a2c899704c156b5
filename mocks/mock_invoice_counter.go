package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockInvoiceCounter is a mock implementation of port.InvoiceCounter.
type MockInvoiceCounter struct {
	mock.Mock
}

func (m *MockInvoiceCounter) Reserve(ctx context.Context, floor int) (int, error) {
	args := m.Called(ctx, floor)
	return args.Int(0), args.Error(1)
}

func (m *MockInvoiceCounter) Peek(ctx context.Context, floor int) (int, error) {
	args := m.Called(ctx, floor)
	return args.Int(0), args.Error(1)
}

func (m *MockInvoiceCounter) Reset(ctx context.Context, value int) error {
	args := m.Called(ctx, value)
	return args.Error(0)
}
