package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"gstbill/internal/domain"
)

// MockCustomerRepo is a mock implementation of port.CustomerRepository.
type MockCustomerRepo struct {
	mock.Mock
}

func (m *MockCustomerRepo) GetAll(ctx context.Context) ([]domain.CustomerDetails, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CustomerDetails), args.Error(1)
}

func (m *MockCustomerRepo) Save(ctx context.Context, customer *domain.CustomerDetails) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}

func (m *MockCustomerRepo) FindByKey(ctx context.Context, gstin string) (*domain.CustomerDetails, error) {
	args := m.Called(ctx, gstin)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CustomerDetails), args.Error(1)
}

func (m *MockCustomerRepo) Delete(ctx context.Context, gstin string) error {
	args := m.Called(ctx, gstin)
	return args.Error(0)
}

func (m *MockCustomerRepo) ReplaceAll(ctx context.Context, customers []domain.CustomerDetails) error {
	args := m.Called(ctx, customers)
	return args.Error(0)
}
