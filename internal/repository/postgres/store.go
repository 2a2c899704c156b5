package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"gstbill/internal/port"
)

// Store is the PostgreSQL-backed port.Store.
type Store struct {
	db *sqlx.DB
}

// NewStore wraps an open connection pool.
func NewStore(db *sqlx.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Customers() port.CustomerRepository { return NewCustomerRepo(s.db) }
func (s *Store) Invoices() port.InvoiceRepository   { return NewInvoiceRepo(s.db) }

func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// InTx runs fn inside a database transaction, committing when fn returns nil.
func (s *Store) InTx(ctx context.Context, fn func(tx port.Store) error) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := fn(&txStore{tx: tx}); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

// txStore scopes repositories to one transaction. Nested InTx calls join it.
type txStore struct {
	tx *sqlx.Tx
}

func (t *txStore) Customers() port.CustomerRepository { return NewCustomerRepo(t.tx) }
func (t *txStore) Invoices() port.InvoiceRepository   { return NewInvoiceRepo(t.tx) }
func (t *txStore) Ping(_ context.Context) error       { return nil }

func (t *txStore) InTx(_ context.Context, fn func(tx port.Store) error) error {
	return fn(t)
}
