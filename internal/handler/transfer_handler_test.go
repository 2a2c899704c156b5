package handler_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"gstbill/internal/domain"
	"gstbill/internal/handler"
	"gstbill/internal/service"
	"gstbill/mocks"
)

func newTransferHandler() (*handler.TransferHandler, *mocks.MockTransferService) {
	mockSvc := new(mocks.MockTransferService)
	return handler.NewTransferHandler(mockSvc), mockSvc
}

func TestTransferHandler_Export_IsImportable(t *testing.T) {
	h, mockSvc := newTransferHandler()
	bundle := &domain.TransferBundle{
		Customers: []domain.CustomerDetails{{GSTIN: "33AEIPA9533Q1Z5", Name: "Sri Murugan Traders"}},
		Invoices:  []domain.InvoiceData{{ID: "1", InvoiceNumber: "INV001", Date: "2025-03-14"}},
	}
	mockSvc.On("Export", mock.Anything).Return(bundle, nil)

	c, w := newContext(http.MethodGet, "/api/v1/data/export", nil)
	h.Export(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), ".json")

	var got domain.TransferBundle
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, bundle.Customers, got.Customers)
	assert.Equal(t, "INV001", got.Invoices[0].InvoiceNumber)
}

func TestTransferHandler_Import_MissingArrayStaysNil(t *testing.T) {
	h, mockSvc := newTransferHandler()
	mockSvc.On("Import", mock.Anything, mock.MatchedBy(func(b *domain.TransferBundle) bool {
		return b.Invoices == nil && b.Customers != nil && len(b.Customers) == 0
	})).Return(&service.ImportResult{CustomersReplaced: true}, nil)

	c, w := newContext(http.MethodPost, "/api/v1/data/import", `{"customers": []}`)
	h.Import(c)

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decode[service.ImportResult](t, w)
	assert.True(t, resp.Data.CustomersReplaced)
	assert.False(t, resp.Data.InvoicesReplaced)
	mockSvc.AssertExpectations(t)
}

func TestTransferHandler_Import_Malformed(t *testing.T) {
	h, mockSvc := newTransferHandler()

	c, w := newContext(http.MethodPost, "/api/v1/data/import", `{"invoices": "nope"}`)
	h.Import(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockSvc.AssertNotCalled(t, "Import", mock.Anything, mock.Anything)
}

func TestTransferHandler_Import_InvalidBundle(t *testing.T) {
	h, mockSvc := newTransferHandler()
	mockSvc.On("Import", mock.Anything, mock.Anything).Return(nil, domain.ErrInvalidBundle)

	c, w := newContext(http.MethodPost, "/api/v1/data/import", `{}`)
	h.Import(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_BUNDLE", decode[any](t, w).Error.Code)
}
