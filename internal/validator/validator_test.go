package validator_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gstbill/internal/domain"
	"gstbill/internal/validator"
)

func validInvoice() *domain.InvoiceData {
	return &domain.InvoiceData{
		Date: "2025-03-14",
		Customer: domain.CustomerDetails{
			GSTIN:     "33AEIPA9533Q1Z5",
			Name:      "Sri Murugan Traders",
			State:     "TAMIL NADU",
			StateCode: "33",
		},
		Items: []domain.InvoiceItem{
			{Description: "COIR PITH", HSNCode: "53050040", Quantity: 10, Unit: domain.UnitPieces, Rate: 100, Amount: 1000},
		},
	}
}

func findRule(results []validator.Result, key string) *validator.Result {
	for i := range results {
		if results[i].RuleKey == key {
			return &results[i]
		}
	}
	return nil
}

func TestValidate_CleanInvoice(t *testing.T) {
	report := validator.Validate(validInvoice())

	assert.True(t, report.Valid())
	assert.NoError(t, report.Err())
	assert.Empty(t, report.Warnings)
}

func TestValidate_MissingCustomer(t *testing.T) {
	inv := validInvoice()
	inv.Customer.Name = "  "
	inv.Customer.GSTIN = ""

	report := validator.Validate(inv)

	require.False(t, report.Valid())
	assert.ErrorIs(t, report.Err(), domain.ErrMissingCustomer)
	assert.Len(t, report.Errors, 2)
}

func TestValidate_ErrorCases(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*domain.InvoiceData)
		wantErr error
	}{
		{"lowercase gstin", func(d *domain.InvoiceData) { d.Customer.GSTIN = "33aeipa9533q1z5" }, domain.ErrInvalidGSTIN},
		{"short gstin", func(d *domain.InvoiceData) { d.Customer.GSTIN = "33AEIPA9533" }, domain.ErrInvalidGSTIN},
		{"bad date", func(d *domain.InvoiceData) { d.Date = "14/03/2025" }, domain.ErrInvalidDate},
		{"empty date", func(d *domain.InvoiceData) { d.Date = "" }, domain.ErrInvalidDate},
		{"bad unit", func(d *domain.InvoiceData) { d.Items[0].Unit = "BOX" }, domain.ErrInvalidItem},
		{"negative quantity", func(d *domain.InvoiceData) { d.Items[0].Quantity = -1 }, domain.ErrNegativeAmount},
		{"no items", func(d *domain.InvoiceData) { d.Items = nil }, domain.ErrNoBillableItems},
		{"only zero items", func(d *domain.InvoiceData) { d.Items[0].Amount = 0 }, domain.ErrNoBillableItems},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv := validInvoice()
			tt.mutate(inv)

			report := validator.Validate(inv)

			assert.False(t, report.Valid())
			assert.ErrorIs(t, report.Err(), tt.wantErr)
		})
	}
}

func TestValidate_ZeroAmountItemAlongsideBillableOne(t *testing.T) {
	inv := validInvoice()
	inv.Items = append(inv.Items, domain.InvoiceItem{Description: "blank row", Unit: domain.UnitPieces})

	report := validator.Validate(inv)

	assert.True(t, report.Valid())
}

func TestValidate_Warnings(t *testing.T) {
	inv := validInvoice()
	inv.Customer.GSTIN = "29AEIPA9533Q1Z5"
	inv.Customer.StateCode = "33"
	inv.Items[0].HSNCode = "53X"

	report := validator.Validate(inv)

	assert.True(t, report.Valid(), "warnings never block")
	require.Len(t, report.Warnings, 2)
	assert.NotNil(t, findRule(report.Warnings, "fmt.items.hsn"))
	mismatch := findRule(report.Warnings, "xf.customer.gstin_state")
	require.NotNil(t, mismatch)
	assert.Equal(t, validator.SeverityWarning, mismatch.Severity)
	assert.Contains(t, mismatch.Message, "29")
}

func TestValidate_NonStructuredGSTINOnlyWarns(t *testing.T) {
	inv := validInvoice()
	inv.Customer.GSTIN = "33ABCDEFGHIJKLM"

	report := validator.Validate(inv)

	assert.True(t, report.Valid())
	assert.NotNil(t, findRule(report.Warnings, "fmt.customer.gstin_structure"))
}

func TestGSTINFormat(t *testing.T) {
	assert.True(t, validator.GSTINFormat("33DNKP57481H1ZF"))
	assert.False(t, validator.GSTINFormat("33dnkp57481h1zf"))
	assert.False(t, validator.GSTINFormat(""))
}
