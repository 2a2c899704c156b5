package memory

import (
	"context"

	"gstbill/internal/domain"
)

type customerRepo struct {
	s *Store
}

func (r *customerRepo) GetAll(_ context.Context) ([]domain.CustomerDetails, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return append([]domain.CustomerDetails{}, r.s.customers...), nil
}

func (r *customerRepo) Save(_ context.Context, customer *domain.CustomerDetails) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.saveCustomer(*customer)
	return nil
}

func (r *customerRepo) FindByKey(_ context.Context, gstin string) (*domain.CustomerDetails, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for i := range r.s.customers {
		if r.s.customers[i].GSTIN == gstin {
			c := r.s.customers[i]
			return &c, nil
		}
	}
	return nil, domain.ErrCustomerNotFound
}

func (r *customerRepo) Delete(_ context.Context, gstin string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	kept := r.s.customers[:0:0]
	for _, c := range r.s.customers {
		if c.GSTIN != gstin {
			kept = append(kept, c)
		}
	}
	r.s.customers = kept
	return nil
}

func (r *customerRepo) ReplaceAll(_ context.Context, customers []domain.CustomerDetails) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.customers = nil
	for _, c := range customers {
		r.s.saveCustomer(c)
	}
	return nil
}

// saveCustomer upserts c; the caller holds mu.
func (s *Store) saveCustomer(c domain.CustomerDetails) {
	for i := range s.customers {
		if s.customers[i].GSTIN == c.GSTIN {
			s.customers[i] = c
			return
		}
	}
	s.customers = append(s.customers, c)
}
