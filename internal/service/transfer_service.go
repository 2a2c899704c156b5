package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/rs/zerolog"

	"gstbill/internal/domain"
	"gstbill/internal/logger"
	"gstbill/internal/port"
	"gstbill/internal/sequence"
	"gstbill/internal/validator"
)

// totalsTolerance absorbs float accumulation in imported totals.
const totalsTolerance = 0.01

// ImportResult reports which collections an import replaced.
type ImportResult struct {
	CustomersReplaced bool `json:"customersReplaced"`
	InvoicesReplaced  bool `json:"invoicesReplaced"`
	Customers         int  `json:"customers"`
	Invoices          int  `json:"invoices"`
}

// TransferService defines the bulk export/import contract.
type TransferService interface {
	Export(ctx context.Context) (*domain.TransferBundle, error)
	// Import overwrites each collection present in bundle. A nil slice leaves
	// that collection untouched; an empty one clears it.
	Import(ctx context.Context, bundle *domain.TransferBundle) (*ImportResult, error)
}

type transferService struct {
	store   port.Store
	seq     *sequence.Sequencer
	counter port.InvoiceCounter // optional
	log     zerolog.Logger
}

// NewTransferService creates a new TransferService implementation. When
// counter is set, importing invoices moves it to the imported high-water mark.
func NewTransferService(store port.Store, seq *sequence.Sequencer, counter port.InvoiceCounter) TransferService {
	return &transferService{
		store:   store,
		seq:     seq,
		counter: counter,
		log:     logger.WithComponent("transfer_service"),
	}
}

func (s *transferService) Export(ctx context.Context) (*domain.TransferBundle, error) {
	customers, err := s.store.Customers().GetAll(ctx)
	if err != nil {
		return nil, err
	}
	invoices, err := s.store.Invoices().GetAll(ctx)
	if err != nil {
		return nil, err
	}
	if customers == nil {
		customers = []domain.CustomerDetails{}
	}
	if invoices == nil {
		invoices = []domain.InvoiceData{}
	}
	return &domain.TransferBundle{Customers: customers, Invoices: invoices}, nil
}

func (s *transferService) Import(ctx context.Context, bundle *domain.TransferBundle) (*ImportResult, error) {
	if bundle == nil || (bundle.Customers == nil && bundle.Invoices == nil) {
		return nil, fmt.Errorf("%w: neither customers nor invoices present", domain.ErrInvalidBundle)
	}
	customers, invoices, err := prepareBundle(bundle)
	if err != nil {
		return nil, err
	}
	last := 0
	if s.counter != nil && invoices != nil {
		numbers := make([]string, len(invoices))
		for i := range invoices {
			numbers[i] = invoices[i].InvoiceNumber
		}
		if last, err = s.seq.Last(numbers); err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrInvalidBundle, err)
		}
	}

	result := &ImportResult{}
	err = s.store.InTx(ctx, func(tx port.Store) error {
		if customers != nil {
			if err := tx.Customers().ReplaceAll(ctx, customers); err != nil {
				return err
			}
			result.CustomersReplaced = true
			result.Customers = len(customers)
		}
		if invoices != nil {
			if err := tx.Invoices().ReplaceAll(ctx, invoices); err != nil {
				return err
			}
			result.InvoicesReplaced = true
			result.Invoices = len(invoices)
			if s.counter != nil {
				if err := s.counter.Reset(ctx, last); err != nil {
					return fmt.Errorf("resetting invoice counter: %w", err)
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().
		Bool("customers_replaced", result.CustomersReplaced).
		Int("customers", result.Customers).
		Bool("invoices_replaced", result.InvoicesReplaced).
		Int("invoices", result.Invoices).
		Msg("data imported")
	return result, nil
}

// prepareBundle returns normalized copies of the bundle's collections,
// keeping nil for an absent one. It rejects records that could not be stored
// or looked up again and invoices whose totals disagree with their items.
func prepareBundle(bundle *domain.TransferBundle) ([]domain.CustomerDetails, []domain.InvoiceData, error) {
	var customers []domain.CustomerDetails
	if bundle.Customers != nil {
		customers = make([]domain.CustomerDetails, len(bundle.Customers))
		for i, c := range bundle.Customers {
			c = normalizeCustomer(c)
			if !validator.GSTINFormat(c.GSTIN) {
				return nil, nil, fmt.Errorf("%w: customers[%d] gstin %q is not 15 uppercase alphanumerics",
					domain.ErrInvalidBundle, i, c.GSTIN)
			}
			if len(c.StateCode) > 2 {
				return nil, nil, fmt.Errorf("%w: customers[%d] state code %q", domain.ErrInvalidBundle, i, c.StateCode)
			}
			customers[i] = c
		}
	}

	var invoices []domain.InvoiceData
	if bundle.Invoices != nil {
		invoices = make([]domain.InvoiceData, len(bundle.Invoices))
		ids := make(map[string]bool, len(bundle.Invoices))
		for i := range bundle.Invoices {
			inv := bundle.Invoices[i].Clone()
			if inv.ID == "" || inv.InvoiceNumber == "" {
				return nil, nil, fmt.Errorf("%w: invoices[%d] needs id and invoiceNumber", domain.ErrInvalidBundle, i)
			}
			if ids[inv.ID] {
				return nil, nil, fmt.Errorf("%w: invoices[%d] repeats id %q", domain.ErrInvalidBundle, i, inv.ID)
			}
			ids[inv.ID] = true
			if _, err := time.Parse(validator.DateLayout, inv.Date); err != nil {
				return nil, nil, fmt.Errorf("%w: invoices[%d] date %q", domain.ErrInvalidBundle, i, inv.Date)
			}
			if err := checkTotals(&inv); err != nil {
				return nil, nil, fmt.Errorf("%w: invoices[%d] %v", domain.ErrInvalidBundle, i, err)
			}
			invoices[i] = inv
		}
	}
	return customers, invoices, nil
}

// checkTotals recalculates item amounts and requires the stored totals to
// agree with them.
func checkTotals(inv *domain.InvoiceData) error {
	var taxable float64
	for j := range inv.Items {
		inv.Items[j].Recalculate()
		taxable += inv.Items[j].Amount
	}
	if math.Abs(taxable-inv.TotalTaxableValue) > totalsTolerance {
		return fmt.Errorf("totalTaxableValue %.2f does not match item sum %.2f", inv.TotalTaxableValue, taxable)
	}
	sum := inv.TotalTaxableValue + inv.CGST + inv.SGST + inv.IGST
	if math.Abs(sum-inv.TotalAmount) > totalsTolerance {
		return fmt.Errorf("totalAmount %.2f does not match taxable value plus tax %.2f", inv.TotalAmount, sum)
	}
	return nil
}
