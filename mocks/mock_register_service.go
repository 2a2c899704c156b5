package mocks

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"

	"gstbill/internal/service"
)

// MockRegisterService is a mock implementation of service.RegisterService.
// Set Body to control what the write methods emit on success.
type MockRegisterService struct {
	mock.Mock
	Body []byte
}

func (m *MockRegisterService) WriteCSV(ctx context.Context, w io.Writer, filter service.ListInvoicesInput) error {
	args := m.Called(ctx, w, filter)
	if err := args.Error(0); err != nil {
		return err
	}
	_, err := w.Write(m.Body)
	return err
}

func (m *MockRegisterService) WriteXLSX(ctx context.Context, w io.Writer, filter service.ListInvoicesInput) error {
	args := m.Called(ctx, w, filter)
	if err := args.Error(0); err != nil {
		return err
	}
	_, err := w.Write(m.Body)
	return err
}
