package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"gstbill/internal/domain"
	"gstbill/internal/service"
)

// MockTransferService is a mock implementation of service.TransferService.
type MockTransferService struct {
	mock.Mock
}

func (m *MockTransferService) Export(ctx context.Context) (*domain.TransferBundle, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TransferBundle), args.Error(1)
}

func (m *MockTransferService) Import(ctx context.Context, bundle *domain.TransferBundle) (*service.ImportResult, error) {
	args := m.Called(ctx, bundle)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ImportResult), args.Error(1)
}
