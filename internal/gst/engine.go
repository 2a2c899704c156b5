// Package gst computes the GST split for a sales invoice: CGST+SGST for
// supplies within the issuer's home state, IGST for supplies across states.
package gst

import (
	"fmt"
	"math"
	"strings"

	"gstbill/internal/domain"
	"gstbill/internal/numwords"
)

// Rates holds tax percentages. CGST and SGST apply together on intra-state
// supplies; IGST replaces both on inter-state supplies.
type Rates struct {
	CGST float64 `json:"cgst"`
	SGST float64 `json:"sgst"`
	IGST float64 `json:"igst"`
}

// DefaultRates is the 5% slab split as 2.5% + 2.5% locally.
var DefaultRates = Rates{CGST: 2.5, SGST: 2.5, IGST: 5.0}

// Config parameterises the engine.
type Config struct {
	HomeState string
	Rates     Rates
}

// Totals is the computed tax breakdown for an invoice.
type Totals struct {
	Jurisdiction      domain.Jurisdiction `json:"jurisdiction"`
	TotalTaxableValue float64             `json:"totalTaxableValue"`
	CGST              float64             `json:"cgst"`
	SGST              float64             `json:"sgst"`
	IGST              float64             `json:"igst"`
	TotalAmount       float64             `json:"totalAmount"`
	AmountInWords     string              `json:"amountInWords"`
}

// Apply copies the computed fields onto inv.
func (t *Totals) Apply(inv *domain.InvoiceData) {
	inv.TotalTaxableValue = t.TotalTaxableValue
	inv.CGST = t.CGST
	inv.SGST = t.SGST
	inv.IGST = t.IGST
	inv.TotalAmount = t.TotalAmount
	inv.AmountInWords = t.AmountInWords
}

// Engine is stateless after construction and safe for concurrent use.
type Engine struct {
	homeState string
	rates     Rates
}

// NewEngine creates an Engine for the given home state and rates.
func NewEngine(cfg Config) *Engine {
	return &Engine{
		homeState: normalizeState(cfg.HomeState),
		rates:     cfg.Rates,
	}
}

// Rates returns the configured rates.
func (e *Engine) Rates() Rates { return e.rates }

// HomeState returns the normalized home state.
func (e *Engine) HomeState() string { return e.homeState }

// Jurisdiction classifies a supply to customerState.
func (e *Engine) Jurisdiction(customerState string) domain.Jurisdiction {
	if normalizeState(customerState) == e.homeState {
		return domain.IntraState
	}
	return domain.InterState
}

// Compute sums item amounts and applies the tax split. Item amounts are
// taken as given; callers recalculate them first. Only precondition
// violations (negative quantity or rate, totals beyond the words range)
// produce an error.
func (e *Engine) Compute(items []domain.InvoiceItem, customerState string) (*Totals, error) {
	var taxable float64
	for i := range items {
		it := &items[i]
		if it.Quantity < 0 || it.Rate < 0 || it.Amount < 0 {
			return nil, fmt.Errorf("%w: items[%d]", domain.ErrNegativeAmount, i)
		}
		taxable += it.Amount
	}

	t := &Totals{
		Jurisdiction:      e.Jurisdiction(customerState),
		TotalTaxableValue: taxable,
	}
	if t.Jurisdiction == domain.IntraState {
		t.CGST = taxable * e.rates.CGST / 100
		t.SGST = taxable * e.rates.SGST / 100
	} else {
		t.IGST = taxable * e.rates.IGST / 100
	}
	t.TotalAmount = t.TotalTaxableValue + t.CGST + t.SGST + t.IGST

	rounded := math.Round(t.TotalAmount)
	if rounded > float64(numwords.MaxAmount) {
		return nil, fmt.Errorf("%w: total %.2f", domain.ErrAmountOutOfRange, t.TotalAmount)
	}
	words, err := numwords.Convert(int64(rounded))
	if err != nil {
		return nil, err
	}
	t.AmountInWords = words
	return t, nil
}

func normalizeState(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}
