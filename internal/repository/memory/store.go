// Package memory is an in-process Store. Records are copied on the way in
// and out, so callers never share state with the store.
package memory

import (
	"context"
	"sync"

	"gstbill/internal/domain"
	"gstbill/internal/port"
)

// Store holds customers and invoices in insertion order.
type Store struct {
	mu        sync.RWMutex
	txMu      sync.Mutex
	customers []domain.CustomerDetails
	invoices  []domain.InvoiceData
}

// NewStore creates an empty in-memory Store.
func NewStore() *Store {
	return &Store{}
}

func (s *Store) Customers() port.CustomerRepository { return &customerRepo{s: s} }
func (s *Store) Invoices() port.InvoiceRepository   { return &invoiceRepo{s: s} }
func (s *Store) Ping(_ context.Context) error       { return nil }

// InTx serializes transactions and restores the previous contents when fn fails.
func (s *Store) InTx(_ context.Context, fn func(tx port.Store) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.RLock()
	snap := s.snapshot()
	s.mu.RUnlock()

	if err := fn(txStore{s}); err != nil {
		s.mu.Lock()
		s.customers, s.invoices = snap.customers, snap.invoices
		s.mu.Unlock()
		return err
	}
	return nil
}

type snapshot struct {
	customers []domain.CustomerDetails
	invoices  []domain.InvoiceData
}

func (s *Store) snapshot() snapshot {
	snap := snapshot{
		customers: append([]domain.CustomerDetails(nil), s.customers...),
		invoices:  make([]domain.InvoiceData, len(s.invoices)),
	}
	for i := range s.invoices {
		snap.invoices[i] = s.invoices[i].Clone()
	}
	return snap
}

// txStore is the view handed to InTx callbacks; nested InTx calls join the
// outer transaction.
type txStore struct{ s *Store }

func (t txStore) Customers() port.CustomerRepository { return t.s.Customers() }
func (t txStore) Invoices() port.InvoiceRepository   { return t.s.Invoices() }
func (t txStore) Ping(ctx context.Context) error     { return t.s.Ping(ctx) }

func (t txStore) InTx(_ context.Context, fn func(tx port.Store) error) error {
	return fn(t)
}
