package handler_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"gstbill/internal/domain"
	"gstbill/internal/gst"
	"gstbill/internal/handler"
	"gstbill/internal/register"
	"gstbill/internal/service"
	"gstbill/mocks"
)

func newInvoiceHandler() (*handler.InvoiceHandler, *mocks.MockInvoiceService, *mocks.MockRegisterService) {
	invSvc := new(mocks.MockInvoiceService)
	regSvc := new(mocks.MockRegisterService)
	return handler.NewInvoiceHandler(invSvc, regSvc), invSvc, regSvc
}

func draftBody() map[string]interface{} {
	return map[string]interface{}{
		"customer": map[string]string{
			"gstin": "33AEIPA9533Q1Z5",
			"name":  "Sri Murugan Traders",
			"state": "TAMIL NADU",
		},
		"items": []map[string]interface{}{
			{"description": "COIR PITH", "hsnCode": "53050040", "quantity": 10, "unit": "PCS", "rate": 100},
		},
	}
}

func TestInvoiceHandler_Create_Success(t *testing.T) {
	h, invSvc, _ := newInvoiceHandler()
	issued := &domain.InvoiceData{
		ID:            "b3a1c1c2-0000-4000-8000-000000000001",
		InvoiceNumber: "INV001",
		TotalAmount:   1050,
		CGST:          25,
		SGST:          25,
		AmountInWords: "ONE THOUSAND FIFTY ONLY",
	}
	invSvc.On("Create", mock.Anything, mock.MatchedBy(func(in service.InvoiceInput) bool {
		return in.Customer.GSTIN == "33AEIPA9533Q1Z5" && len(in.Items) == 1 && in.Items[0].Quantity == 10
	})).Return(issued, nil)

	c, w := newContext(http.MethodPost, "/api/v1/invoices", draftBody())
	h.Create(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	resp := decode[domain.InvoiceData](t, w)
	assert.True(t, resp.Success)
	assert.Equal(t, "INV001", resp.Data.InvoiceNumber)
	assert.Equal(t, "ONE THOUSAND FIFTY ONLY", resp.Data.AmountInWords)
	invSvc.AssertExpectations(t)
}

func TestInvoiceHandler_Create_MalformedJSON(t *testing.T) {
	h, invSvc, _ := newInvoiceHandler()

	c, w := newContext(http.MethodPost, "/api/v1/invoices", `{"items": [`)
	h.Create(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	invSvc.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestInvoiceHandler_Create_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"missing customer", domain.ErrMissingCustomer, http.StatusBadRequest, "MISSING_CUSTOMER"},
		{"no billable items", domain.ErrNoBillableItems, http.StatusBadRequest, "NO_BILLABLE_ITEMS"},
		{"bad date", fmt.Errorf("%w: date", domain.ErrInvalidDate), http.StatusBadRequest, "INVALID_DATE"},
		{"bad unit", fmt.Errorf("%w: items[0].unit", domain.ErrInvalidItem), http.StatusBadRequest, "INVALID_ITEM"},
		{"duplicate number", domain.ErrDuplicateInvoiceNumber, http.StatusConflict, "DUPLICATE_INVOICE_NUMBER"},
		{"out of range", domain.ErrAmountOutOfRange, http.StatusUnprocessableEntity, "AMOUNT_OUT_OF_RANGE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, invSvc, _ := newInvoiceHandler()
			invSvc.On("Create", mock.Anything, mock.Anything).Return(nil, tt.err)

			c, w := newContext(http.MethodPost, "/api/v1/invoices", draftBody())
			h.Create(c)

			assert.Equal(t, tt.wantStatus, w.Code)
			resp := decode[any](t, w)
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.wantCode, resp.Error.Code)
		})
	}
}

func TestInvoiceHandler_Create_ValidationMessageCarriesField(t *testing.T) {
	h, invSvc, _ := newInvoiceHandler()
	invSvc.On("Create", mock.Anything, mock.Anything).
		Return(nil, fmt.Errorf("%w: items[1].unit", domain.ErrInvalidItem))

	c, w := newContext(http.MethodPost, "/api/v1/invoices", draftBody())
	h.Create(c)

	assert.Contains(t, decode[any](t, w).Error.Message, "items[1].unit")
}

func TestInvoiceHandler_Preview(t *testing.T) {
	h, invSvc, _ := newInvoiceHandler()
	preview := &service.InvoicePreview{
		InvoiceNumber: "INV007",
		Totals: &gst.Totals{
			Jurisdiction:      domain.InterState,
			TotalTaxableValue: 1000,
			IGST:              50,
			TotalAmount:       1050,
			AmountInWords:     "ONE THOUSAND FIFTY ONLY",
		},
	}
	invSvc.On("Preview", mock.Anything, mock.Anything).Return(preview, nil)

	c, w := newContext(http.MethodPost, "/api/v1/invoices/preview", draftBody())
	h.Preview(c)

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decode[service.InvoicePreview](t, w)
	assert.Equal(t, "INV007", resp.Data.InvoiceNumber)
	require.NotNil(t, resp.Data.Totals)
	assert.Equal(t, 50.0, resp.Data.Totals.IGST)
}

func TestInvoiceHandler_NextNumber(t *testing.T) {
	h, invSvc, _ := newInvoiceHandler()
	invSvc.On("NextNumber", mock.Anything).Return("INV043", nil)

	c, w := newContext(http.MethodGet, "/api/v1/invoices/next-number", nil)
	h.NextNumber(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "INV043", decode[handler.NextNumberResponse](t, w).Data.InvoiceNumber)
}

func TestInvoiceHandler_List_Filters(t *testing.T) {
	h, invSvc, _ := newInvoiceHandler()
	invoices := []domain.InvoiceData{{ID: "1", InvoiceNumber: "INV002"}, {ID: "2", InvoiceNumber: "INV001"}}
	invSvc.On("List", mock.Anything, service.ListInvoicesInput{Query: "inv", SortByDate: true}).Return(invoices, nil)

	c, w := newContext(http.MethodGet, "/api/v1/invoices?q=inv&sort=DATE", nil)
	h.List(c)

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decode[[]domain.InvoiceData](t, w)
	assert.Len(t, resp.Data, 2)
	assert.Equal(t, 2, resp.Meta.Total)
	invSvc.AssertExpectations(t)
}

func TestInvoiceHandler_Get(t *testing.T) {
	h, invSvc, _ := newInvoiceHandler()
	invSvc.On("Get", mock.Anything, "abc").Return(&domain.InvoiceData{ID: "abc", InvoiceNumber: "INV009"}, nil)

	c, w := newContext(http.MethodGet, "/api/v1/invoices/abc", nil)
	c.Params = gin.Params{{Key: "id", Value: "abc"}}
	h.Get(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "INV009", decode[domain.InvoiceData](t, w).Data.InvoiceNumber)
}

func TestInvoiceHandler_Delete(t *testing.T) {
	h, invSvc, _ := newInvoiceHandler()
	invSvc.On("Delete", mock.Anything, "abc").Return(nil)

	c, w := newContext(http.MethodDelete, "/api/v1/invoices/abc", nil)
	c.Params = gin.Params{{Key: "id", Value: "abc"}}
	h.Delete(c)

	assert.Equal(t, http.StatusOK, w.Code)
	invSvc.AssertExpectations(t)
}

func TestInvoiceHandler_Get_NotFound(t *testing.T) {
	h, invSvc, _ := newInvoiceHandler()
	invSvc.On("Get", mock.Anything, "missing").Return(nil, domain.ErrInvoiceNotFound)

	c, w := newContext(http.MethodGet, "/api/v1/invoices/missing", nil)
	c.Params = gin.Params{{Key: "id", Value: "missing"}}
	h.Get(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "INVOICE_NOT_FOUND", decode[any](t, w).Error.Code)
}

func TestInvoiceHandler_ExportCSV(t *testing.T) {
	h, _, regSvc := newInvoiceHandler()
	regSvc.Body = append(append([]byte{}, register.BOM...), []byte("Invoice Number\nINV001\n")...)
	regSvc.On("WriteCSV", mock.Anything, mock.Anything, service.ListInvoicesInput{Query: "murugan"}).Return(nil)

	c, w := newContext(http.MethodGet, "/api/v1/invoices/export/csv?q=murugan", nil)
	h.ExportCSV(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/csv; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "Sales_Register_")
	assert.Contains(t, w.Header().Get("Content-Disposition"), ".csv")
	assert.Equal(t, register.BOM, w.Body.Bytes()[:3])
	regSvc.AssertExpectations(t)
}

func TestInvoiceHandler_ExportXLSX(t *testing.T) {
	h, _, regSvc := newInvoiceHandler()
	regSvc.Body = []byte("PK")
	regSvc.On("WriteXLSX", mock.Anything, mock.Anything, service.ListInvoicesInput{}).Return(nil)

	c, w := newContext(http.MethodGet, "/api/v1/invoices/export/xlsx", nil)
	h.ExportXLSX(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "spreadsheetml")
	assert.Contains(t, w.Header().Get("Content-Disposition"), ".xlsx")
	assert.Equal(t, "PK", w.Body.String())
}

func TestInvoiceHandler_Export_FailureIsJSON(t *testing.T) {
	h, _, regSvc := newInvoiceHandler()
	regSvc.On("WriteCSV", mock.Anything, mock.Anything, mock.Anything).Return(fmt.Errorf("disk full"))

	c, w := newContext(http.MethodGet, "/api/v1/invoices/export/csv", nil)
	h.ExportCSV(c)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Empty(t, w.Header().Get("Content-Disposition"))
	assert.False(t, decode[any](t, w).Success)
}
