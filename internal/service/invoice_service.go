package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"gstbill/internal/domain"
	"gstbill/internal/gst"
	"gstbill/internal/logger"
	"gstbill/internal/port"
	"gstbill/internal/sequence"
	"gstbill/internal/validator"
)

// InvoiceInput is the DTO for previewing or issuing an invoice. Item amounts
// are ignored and recomputed from quantity and rate. Blank supplier and
// recipient blocks are filled from the company and the customer.
type InvoiceInput struct {
	InvoiceNumber string                 `json:"invoiceNumber"`
	Date          string                 `json:"date"`
	BillNo        string                 `json:"billNo"`
	TruckNo       string                 `json:"truckNo"`
	PlaceOfSupply string                 `json:"placeOfSupply"`
	ReverseCharge bool                   `json:"reverseCharge"`
	Customer      domain.CustomerDetails `json:"customer"`
	Items         []domain.InvoiceItem   `json:"items"`
	Supplier      domain.SupplierBlock   `json:"supplier"`
	Recipient     domain.RecipientBlock  `json:"recipient"`
	DispatchFrom  domain.DispatchBlock   `json:"dispatchFrom"`
	ShipTo        domain.ShipToBlock     `json:"shipTo"`
}

// ListInvoicesInput filters and orders the invoice list.
type ListInvoicesInput struct {
	// Query matches invoice number, customer name or customer GSTIN.
	Query string
	// SortByDate orders newest first; otherwise insertion order is kept.
	SortByDate bool
}

// InvoicePreview is the live computation shown while an invoice is drafted.
type InvoicePreview struct {
	InvoiceNumber string               `json:"invoiceNumber"`
	Items         []domain.InvoiceItem `json:"items"`
	Totals        *gst.Totals          `json:"totals"`
	Errors        []validator.Result   `json:"errors"`
	Warnings      []validator.Result   `json:"warnings"`
}

// InvoiceService defines the invoice issuing contract.
type InvoiceService interface {
	Preview(ctx context.Context, input InvoiceInput) (*InvoicePreview, error)
	NextNumber(ctx context.Context) (string, error)
	Create(ctx context.Context, input InvoiceInput) (*domain.InvoiceData, error)
	List(ctx context.Context, input ListInvoicesInput) ([]domain.InvoiceData, error)
	Get(ctx context.Context, id string) (*domain.InvoiceData, error)
	Delete(ctx context.Context, id string) error
}

type invoiceService struct {
	store   port.Store
	engine  *gst.Engine
	seq     *sequence.Sequencer
	counter port.InvoiceCounter // optional
	company domain.CompanyDetails
	now     func() time.Time
	log     zerolog.Logger

	// mu serializes numbering and persisting within this process.
	mu sync.Mutex
}

// NewInvoiceService creates a new InvoiceService implementation. counter may
// be nil, in which case numbers are derived from stored invoices alone.
func NewInvoiceService(
	store port.Store,
	engine *gst.Engine,
	seq *sequence.Sequencer,
	counter port.InvoiceCounter,
	company domain.CompanyDetails,
) InvoiceService {
	return &invoiceService{
		store:   store,
		engine:  engine,
		seq:     seq,
		counter: counter,
		company: company,
		now:     time.Now,
		log:     logger.WithComponent("invoice_service"),
	}
}

// NewInvoiceServiceWithClock is NewInvoiceService with a fixed clock for default dates.
func NewInvoiceServiceWithClock(
	store port.Store,
	engine *gst.Engine,
	seq *sequence.Sequencer,
	counter port.InvoiceCounter,
	company domain.CompanyDetails,
	now func() time.Time,
) InvoiceService {
	svc := NewInvoiceService(store, engine, seq, counter, company).(*invoiceService)
	svc.now = now
	return svc
}

func (s *invoiceService) Preview(ctx context.Context, input InvoiceInput) (*InvoicePreview, error) {
	draft, err := s.draft(ctx, input)
	if err != nil {
		return nil, err
	}
	totals, err := s.engine.Compute(draft.Items, draft.Customer.State)
	if err != nil {
		return nil, err
	}
	totals.Apply(draft)
	report := validator.Validate(draft)

	next, err := s.NextNumber(ctx)
	if err != nil {
		return nil, err
	}
	if draft.InvoiceNumber != "" {
		next = draft.InvoiceNumber
	}
	return &InvoicePreview{
		InvoiceNumber: next,
		Items:         draft.Items,
		Totals:        totals,
		Errors:        report.Errors,
		Warnings:      report.Warnings,
	}, nil
}

// NextNumber advertises the number Create would assign now. With a counter
// it peeks, so deleted numbers are not offered again.
func (s *invoiceService) NextNumber(ctx context.Context) (string, error) {
	numbers, err := s.store.Invoices().InvoiceNumbers(ctx)
	if err != nil {
		return "", err
	}
	if s.counter == nil {
		return s.seq.Next(numbers)
	}
	last, err := s.seq.Last(numbers)
	if err != nil {
		return "", err
	}
	n, err := s.counter.Peek(ctx, last)
	if err != nil {
		return "", fmt.Errorf("peeking invoice number: %w", err)
	}
	return s.seq.Format(n), nil
}

func (s *invoiceService) Create(ctx context.Context, input InvoiceInput) (*domain.InvoiceData, error) {
	inv, err := s.draft(ctx, input)
	if err != nil {
		return nil, err
	}
	if err := validator.Validate(inv).Err(); err != nil {
		return nil, err
	}
	totals, err := s.engine.Compute(inv.Items, inv.Customer.State)
	if err != nil {
		return nil, err
	}
	totals.Apply(inv)
	if inv.InvoiceNumber != "" {
		if _, ok := s.seq.Parse(inv.InvoiceNumber); !ok {
			return nil, fmt.Errorf("%w: %q", domain.ErrInvalidInvoiceNumber, inv.InvoiceNumber)
		}
	}
	inv.ID = uuid.NewString()

	s.mu.Lock()
	defer s.mu.Unlock()

	err = s.store.InTx(ctx, func(tx port.Store) error {
		if inv.InvoiceNumber == "" {
			number, err := s.assignNumber(ctx, tx)
			if err != nil {
				return err
			}
			inv.InvoiceNumber = number
		}
		if err := tx.Invoices().Save(ctx, inv); err != nil {
			return err
		}
		customer := inv.Customer
		return tx.Customers().Save(ctx, &customer)
	})
	if err != nil {
		s.log.Warn().Err(err).Str("invoice_number", inv.InvoiceNumber).Msg("invoice not issued")
		return nil, err
	}

	s.log.Info().
		Str("invoice_id", inv.ID).
		Str("invoice_number", inv.InvoiceNumber).
		Str("customer_gstin", inv.Customer.GSTIN).
		Str("jurisdiction", string(totals.Jurisdiction)).
		Float64("total_amount", inv.TotalAmount).
		Msg("invoice issued")
	return inv, nil
}

// assignNumber picks the next number from the stored set, moved past any
// value the shared counter has already handed out.
func (s *invoiceService) assignNumber(ctx context.Context, tx port.Store) (string, error) {
	numbers, err := tx.Invoices().InvoiceNumbers(ctx)
	if err != nil {
		return "", err
	}
	last, err := s.seq.Last(numbers)
	if err != nil {
		return "", err
	}
	if s.counter == nil {
		return s.seq.Format(last + 1), nil
	}
	n, err := s.counter.Reserve(ctx, last)
	if err != nil {
		return "", fmt.Errorf("reserving invoice number: %w", err)
	}
	return s.seq.Format(n), nil
}

func (s *invoiceService) List(ctx context.Context, input ListInvoicesInput) ([]domain.InvoiceData, error) {
	invoices, err := s.store.Invoices().GetAll(ctx)
	if err != nil {
		return nil, err
	}
	q := strings.ToLower(strings.TrimSpace(input.Query))
	out := invoices
	if q != "" {
		out = make([]domain.InvoiceData, 0, len(invoices))
		for i := range invoices {
			inv := &invoices[i]
			if containsFold(q, inv.InvoiceNumber, inv.Customer.Name, inv.Customer.GSTIN) {
				out = append(out, *inv)
			}
		}
	}
	if input.SortByDate {
		// ISO dates sort lexically
		sort.SliceStable(out, func(i, j int) bool { return out[i].Date > out[j].Date })
	}
	return out, nil
}

func (s *invoiceService) Get(ctx context.Context, id string) (*domain.InvoiceData, error) {
	return s.store.Invoices().FindByKey(ctx, id)
}

func (s *invoiceService) Delete(ctx context.Context, id string) error {
	if err := s.store.Invoices().Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info().Str("invoice_id", id).Msg("invoice deleted")
	return nil
}

// draft builds an unsaved invoice from input: normalized customer, default
// date, recomputed item amounts and populated address blocks.
func (s *invoiceService) draft(ctx context.Context, input InvoiceInput) (*domain.InvoiceData, error) {
	customer, err := s.completeCustomer(ctx, normalizeCustomer(input.Customer))
	if err != nil {
		return nil, err
	}
	inv := &domain.InvoiceData{
		InvoiceNumber: strings.ToUpper(strings.TrimSpace(input.InvoiceNumber)),
		Date:          strings.TrimSpace(input.Date),
		BillNo:        strings.TrimSpace(input.BillNo),
		TruckNo:       strings.TrimSpace(input.TruckNo),
		PlaceOfSupply: strings.TrimSpace(input.PlaceOfSupply),
		ReverseCharge: input.ReverseCharge,
		Customer:      customer,
		Items:         prepareItems(input.Items),
		Supplier:      input.Supplier,
		Recipient:     input.Recipient,
		DispatchFrom:  input.DispatchFrom,
		ShipTo:        input.ShipTo,
	}
	if inv.Date == "" {
		inv.Date = s.now().Format(validator.DateLayout)
	}
	if inv.PlaceOfSupply == "" {
		inv.PlaceOfSupply = inv.Customer.State
	}
	if inv.Supplier == (domain.SupplierBlock{}) {
		inv.Supplier = s.company.SupplierBlock()
	}
	if inv.Recipient == (domain.RecipientBlock{}) {
		inv.Recipient = domain.RecipientBlock{
			GSTIN:         inv.Customer.GSTIN,
			Name:          inv.Customer.Name,
			Address:       inv.Customer.Address,
			PlaceOfSupply: inv.Customer.State,
		}
	}
	return inv, nil
}

// completeCustomer fills blank fields from the customer master when the
// GSTIN is well formed and known. The result is a copy.
func (s *invoiceService) completeCustomer(ctx context.Context, c domain.CustomerDetails) (domain.CustomerDetails, error) {
	if !validator.GSTINFormat(c.GSTIN) {
		return c, nil
	}
	known, err := s.store.Customers().FindByKey(ctx, c.GSTIN)
	if errors.Is(err, domain.ErrCustomerNotFound) {
		return c, nil
	}
	if err != nil {
		return c, err
	}
	for _, f := range []struct {
		dst *string
		src string
	}{
		{&c.Name, known.Name},
		{&c.Address, known.Address},
		{&c.State, known.State},
		{&c.StateCode, known.StateCode},
		{&c.Phone, known.Phone},
		{&c.Email, known.Email},
	} {
		if *f.dst == "" {
			*f.dst = f.src
		}
	}
	return c, nil
}

// prepareItems copies items, recomputes amounts, defaults the unit to PCS and
// numbers items that arrive without an ID.
func prepareItems(items []domain.InvoiceItem) []domain.InvoiceItem {
	out := make([]domain.InvoiceItem, len(items))
	for i, it := range items {
		it.Description = strings.TrimSpace(it.Description)
		it.HSNCode = strings.TrimSpace(it.HSNCode)
		it.Unit = domain.Unit(strings.ToUpper(strings.TrimSpace(string(it.Unit))))
		if it.Unit == "" {
			it.Unit = domain.UnitPieces
		}
		if it.ID == "" {
			it.ID = strconv.Itoa(i + 1)
		}
		it.Recalculate()
		out[i] = it
	}
	return out
}
