package handler

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"gstbill/internal/domain"
	"gstbill/internal/register"
	"gstbill/internal/service"
)

const (
	contentTypeCSV  = "text/csv; charset=utf-8"
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

	registerName = "Sales Register"
)

// InvoiceHandler handles invoice issuing and register endpoints.
type InvoiceHandler struct {
	invoiceService  service.InvoiceService
	registerService service.RegisterService
	now             func() time.Time
}

// NewInvoiceHandler creates a new InvoiceHandler.
func NewInvoiceHandler(invoiceService service.InvoiceService, registerService service.RegisterService) *InvoiceHandler {
	return &InvoiceHandler{
		invoiceService:  invoiceService,
		registerService: registerService,
		now:             time.Now,
	}
}

// Create handles POST /api/v1/invoices
// @Summary Issue an invoice
// @Description Validate the draft, compute the GST split, assign the next number when none is given and persist the snapshot together with the customer.
// @Tags invoices
// @Accept json
// @Produce json
// @Param request body service.InvoiceInput true "Invoice draft"
// @Success 201 {object} Response{data=domain.InvoiceData} "Issued invoice"
// @Failure 400 {object} ErrorResponseBody "Validation error"
// @Failure 409 {object} ErrorResponseBody "Invoice number already exists"
// @Failure 422 {object} ErrorResponseBody "Total beyond the amount-in-words range"
// @Router /invoices [post]
func (h *InvoiceHandler) Create(c *gin.Context) {
	var input service.InvoiceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	inv, err := h.invoiceService.Create(c.Request.Context(), input)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondCreated(c, inv)
}

// Preview handles POST /api/v1/invoices/preview
// @Summary Preview invoice totals
// @Description Compute item amounts, tax split, amount in words and validation findings without saving anything.
// @Tags invoices
// @Accept json
// @Produce json
// @Param request body service.InvoiceInput true "Invoice draft"
// @Success 200 {object} Response{data=service.InvoicePreview} "Computed preview"
// @Failure 400 {object} ErrorResponseBody "Negative quantity or rate"
// @Router /invoices/preview [post]
func (h *InvoiceHandler) Preview(c *gin.Context) {
	var input service.InvoiceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	preview, err := h.invoiceService.Preview(c.Request.Context(), input)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, preview)
}

// NextNumber handles GET /api/v1/invoices/next-number
// @Summary Next invoice number
// @Description The number the next issued invoice would receive. Not reserved.
// @Tags invoices
// @Produce json
// @Success 200 {object} Response{data=NextNumberResponse} "Next number"
// @Router /invoices/next-number [get]
func (h *InvoiceHandler) NextNumber(c *gin.Context) {
	next, err := h.invoiceService.NextNumber(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, NextNumberResponse{InvoiceNumber: next})
}

// List handles GET /api/v1/invoices
// @Summary List invoices
// @Tags invoices
// @Produce json
// @Param q query string false "Match on invoice number, customer name or GSTIN"
// @Param sort query string false "Use 'date' for newest first"
// @Success 200 {object} Response{data=[]domain.InvoiceData,meta=ListMeta} "List of invoices"
// @Router /invoices [get]
func (h *InvoiceHandler) List(c *gin.Context) {
	invoices, err := h.invoiceService.List(c.Request.Context(), listFilter(c))
	if err != nil {
		HandleError(c, err)
		return
	}
	if invoices == nil {
		invoices = []domain.InvoiceData{}
	}
	RespondList(c, invoices, len(invoices))
}

// Get handles GET /api/v1/invoices/:id
// @Summary Get an invoice
// @Tags invoices
// @Produce json
// @Param id path string true "Invoice ID"
// @Success 200 {object} Response{data=domain.InvoiceData} "Invoice"
// @Failure 404 {object} ErrorResponseBody "Invoice not found"
// @Router /invoices/{id} [get]
func (h *InvoiceHandler) Get(c *gin.Context) {
	inv, err := h.invoiceService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, inv)
}

// Delete handles DELETE /api/v1/invoices/:id
// @Summary Delete an invoice
// @Description Remove an invoice. Deleting an unknown ID succeeds.
// @Tags invoices
// @Produce json
// @Param id path string true "Invoice ID"
// @Success 200 {object} Response "Invoice deleted"
// @Router /invoices/{id} [delete]
func (h *InvoiceHandler) Delete(c *gin.Context) {
	if err := h.invoiceService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, gin.H{"message": "invoice deleted"})
}

// ExportCSV handles GET /api/v1/invoices/export/csv
// @Summary Export the sales register as CSV
// @Description UTF-8 CSV with BOM, one row per invoice. Accepts the same filters as the list.
// @Tags invoices
// @Produce text/csv
// @Param q query string false "Match on invoice number, customer name or GSTIN"
// @Param sort query string false "Use 'date' for newest first"
// @Success 200 {file} file "CSV file"
// @Router /invoices/export/csv [get]
func (h *InvoiceHandler) ExportCSV(c *gin.Context) {
	h.export(c, "csv", contentTypeCSV, h.registerService.WriteCSV)
}

// ExportXLSX handles GET /api/v1/invoices/export/xlsx
// @Summary Export the sales register as XLSX
// @Description Workbook with a register sheet and an items sheet.
// @Tags invoices
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param q query string false "Match on invoice number, customer name or GSTIN"
// @Param sort query string false "Use 'date' for newest first"
// @Success 200 {file} file "XLSX file"
// @Router /invoices/export/xlsx [get]
func (h *InvoiceHandler) ExportXLSX(c *gin.Context) {
	h.export(c, "xlsx", contentTypeXLSX, h.registerService.WriteXLSX)
}

type registerWriter func(ctx context.Context, w io.Writer, filter service.ListInvoicesInput) error

func (h *InvoiceHandler) export(c *gin.Context, ext, contentType string, write registerWriter) {
	var buf bytes.Buffer
	if err := write(c.Request.Context(), &buf, listFilter(c)); err != nil {
		HandleError(c, err)
		return
	}

	filename := register.BuildFilename(registerName, ext, h.now())
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, contentType, buf.Bytes())
}

func listFilter(c *gin.Context) service.ListInvoicesInput {
	return service.ListInvoicesInput{
		Query:      c.Query("q"),
		SortByDate: strings.EqualFold(c.Query("sort"), "date"),
	}
}
