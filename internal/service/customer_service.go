package service

import (
	"context"
	"fmt"
	"strings"

	"gstbill/internal/domain"
	"gstbill/internal/port"
	"gstbill/internal/validator"
)

// CustomerService defines the customer master contract.
type CustomerService interface {
	// List returns customers whose name or GSTIN contains query, case-insensitively.
	List(ctx context.Context, query string) ([]domain.CustomerDetails, error)
	Get(ctx context.Context, gstin string) (*domain.CustomerDetails, error)
	Save(ctx context.Context, customer *domain.CustomerDetails) (*domain.CustomerDetails, error)
	Delete(ctx context.Context, gstin string) error
}

type customerService struct {
	store port.Store
}

// NewCustomerService creates a new CustomerService implementation.
func NewCustomerService(store port.Store) CustomerService {
	return &customerService{store: store}
}

func (s *customerService) List(ctx context.Context, query string) ([]domain.CustomerDetails, error) {
	customers, err := s.store.Customers().GetAll(ctx)
	if err != nil {
		return nil, err
	}
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return customers, nil
	}
	matched := make([]domain.CustomerDetails, 0, len(customers))
	for i := range customers {
		if containsFold(q, customers[i].Name, customers[i].GSTIN) {
			matched = append(matched, customers[i])
		}
	}
	return matched, nil
}

func (s *customerService) Get(ctx context.Context, gstin string) (*domain.CustomerDetails, error) {
	return s.store.Customers().FindByKey(ctx, normalizeGSTIN(gstin))
}

func (s *customerService) Save(ctx context.Context, customer *domain.CustomerDetails) (*domain.CustomerDetails, error) {
	c := normalizeCustomer(*customer)
	if c.Name == "" || c.GSTIN == "" {
		return nil, domain.ErrMissingCustomer
	}
	if !validator.GSTINFormat(c.GSTIN) {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidGSTIN, c.GSTIN)
	}
	if err := s.store.Customers().Save(ctx, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *customerService) Delete(ctx context.Context, gstin string) error {
	return s.store.Customers().Delete(ctx, normalizeGSTIN(gstin))
}

func normalizeGSTIN(gstin string) string {
	return strings.ToUpper(strings.TrimSpace(gstin))
}

func normalizeCustomer(c domain.CustomerDetails) domain.CustomerDetails {
	c.GSTIN = normalizeGSTIN(c.GSTIN)
	c.Name = strings.TrimSpace(c.Name)
	c.Address = strings.TrimSpace(c.Address)
	c.State = strings.ToUpper(strings.TrimSpace(c.State))
	c.StateCode = strings.TrimSpace(c.StateCode)
	c.Phone = strings.TrimSpace(c.Phone)
	c.Email = strings.TrimSpace(c.Email)
	return c
}

// containsFold reports whether any field contains the lowercased query q.
func containsFold(q string, fields ...string) bool {
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), q) {
			return true
		}
	}
	return false
}
