package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"gstbill/internal/domain"
)

// MockCustomerService is a mock implementation of service.CustomerService.
type MockCustomerService struct {
	mock.Mock
}

func (m *MockCustomerService) List(ctx context.Context, query string) ([]domain.CustomerDetails, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CustomerDetails), args.Error(1)
}

func (m *MockCustomerService) Get(ctx context.Context, gstin string) (*domain.CustomerDetails, error) {
	args := m.Called(ctx, gstin)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CustomerDetails), args.Error(1)
}

func (m *MockCustomerService) Save(ctx context.Context, customer *domain.CustomerDetails) (*domain.CustomerDetails, error) {
	args := m.Called(ctx, customer)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CustomerDetails), args.Error(1)
}

func (m *MockCustomerService) Delete(ctx context.Context, gstin string) error {
	args := m.Called(ctx, gstin)
	return args.Error(0)
}
