package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"gstbill/internal/domain"
	"gstbill/internal/port"
)

const customerColumns = `gstin, name, address, state, state_code, phone, email`

type customerRepo struct {
	db sqlx.ExtContext
}

// NewCustomerRepo creates a new PostgreSQL-backed CustomerRepository. db may
// be a pool or a transaction.
func NewCustomerRepo(db sqlx.ExtContext) port.CustomerRepository {
	return &customerRepo{db: db}
}

func (r *customerRepo) GetAll(ctx context.Context) ([]domain.CustomerDetails, error) {
	customers := []domain.CustomerDetails{}
	err := sqlx.SelectContext(ctx, r.db, &customers,
		`SELECT `+customerColumns+` FROM customers ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("customerRepo.GetAll: %w", err)
	}
	return customers, nil
}

func (r *customerRepo) Save(ctx context.Context, customer *domain.CustomerDetails) error {
	query := `INSERT INTO customers (` + customerColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (gstin) DO UPDATE SET
			name = EXCLUDED.name,
			address = EXCLUDED.address,
			state = EXCLUDED.state,
			state_code = EXCLUDED.state_code,
			phone = EXCLUDED.phone,
			email = EXCLUDED.email,
			updated_at = NOW()`

	_, err := r.db.ExecContext(ctx, query,
		customer.GSTIN, customer.Name, customer.Address, customer.State,
		customer.StateCode, customer.Phone, customer.Email)
	if err != nil {
		return fmt.Errorf("customerRepo.Save: %w", err)
	}
	return nil
}

func (r *customerRepo) FindByKey(ctx context.Context, gstin string) (*domain.CustomerDetails, error) {
	var customer domain.CustomerDetails
	err := sqlx.GetContext(ctx, r.db, &customer,
		`SELECT `+customerColumns+` FROM customers WHERE gstin = $1`, gstin)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrCustomerNotFound
		}
		return nil, fmt.Errorf("customerRepo.FindByKey: %w", err)
	}
	return &customer, nil
}

func (r *customerRepo) Delete(ctx context.Context, gstin string) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM customers WHERE gstin = $1", gstin); err != nil {
		return fmt.Errorf("customerRepo.Delete: %w", err)
	}
	return nil
}

func (r *customerRepo) ReplaceAll(ctx context.Context, customers []domain.CustomerDetails) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM customers"); err != nil {
		return fmt.Errorf("customerRepo.ReplaceAll clear: %w", err)
	}
	for i := range customers {
		if err := r.Save(ctx, &customers[i]); err != nil {
			return fmt.Errorf("customerRepo.ReplaceAll: %w", err)
		}
	}
	return nil
}
