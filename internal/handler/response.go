package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"gstbill/internal/domain"
	"gstbill/internal/logger"
)

// APIResponse is the standard envelope for all API responses.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *APIError   `json:"error,omitempty"`
	Meta    *ListMeta   `json:"meta,omitempty"`
}

// APIError holds error details in the response.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ListMeta holds list metadata.
type ListMeta struct {
	Total int `json:"total"`
}

// RespondOK sends a 200 success response.
func RespondOK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: data})
}

// RespondCreated sends a 201 success response.
func RespondCreated(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, APIResponse{Success: true, Data: data})
}

// RespondList sends a 200 success response with the item count.
func RespondList(c *gin.Context, data interface{}, total int) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: data, Meta: &ListMeta{Total: total}})
}

// RespondError sends an error response with the given status code.
func RespondError(c *gin.Context, status int, code, msg string) {
	c.JSON(status, APIResponse{
		Success: false,
		Error:   &APIError{Code: code, Message: msg},
	})
}

// MapDomainError translates domain errors to HTTP status codes and error codes.
// Validation messages carry the wrapped detail (field path, offending value).
func MapDomainError(err error) (status int, code, msg string) {
	switch {
	case errors.Is(err, domain.ErrCustomerNotFound):
		return http.StatusNotFound, "CUSTOMER_NOT_FOUND", "customer not found"
	case errors.Is(err, domain.ErrInvoiceNotFound):
		return http.StatusNotFound, "INVOICE_NOT_FOUND", "invoice not found"
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, "NOT_FOUND", "resource not found"
	case errors.Is(err, domain.ErrDuplicateInvoiceNumber):
		return http.StatusConflict, "DUPLICATE_INVOICE_NUMBER", "invoice number already exists; retry to take the next number"
	case errors.Is(err, domain.ErrMissingCustomer):
		return http.StatusBadRequest, "MISSING_CUSTOMER", err.Error()
	case errors.Is(err, domain.ErrInvalidGSTIN):
		return http.StatusBadRequest, "INVALID_GSTIN", err.Error()
	case errors.Is(err, domain.ErrNoBillableItems):
		return http.StatusBadRequest, "NO_BILLABLE_ITEMS", err.Error()
	case errors.Is(err, domain.ErrInvalidItem):
		return http.StatusBadRequest, "INVALID_ITEM", err.Error()
	case errors.Is(err, domain.ErrInvalidDate):
		return http.StatusBadRequest, "INVALID_DATE", err.Error()
	case errors.Is(err, domain.ErrInvalidInvoiceNumber):
		return http.StatusBadRequest, "INVALID_INVOICE_NUMBER", err.Error()
	case errors.Is(err, domain.ErrNegativeAmount):
		return http.StatusBadRequest, "NEGATIVE_AMOUNT", err.Error()
	case errors.Is(err, domain.ErrAmountOutOfRange):
		return http.StatusUnprocessableEntity, "AMOUNT_OUT_OF_RANGE", err.Error()
	case errors.Is(err, domain.ErrInvalidBundle):
		return http.StatusBadRequest, "INVALID_BUNDLE", err.Error()
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR", "an internal error occurred"
	}
}

// HandleError maps a domain error and sends the appropriate error response.
func HandleError(c *gin.Context, err error) {
	status, code, msg := MapDomainError(err)
	if status >= 500 {
		log := logger.WithRequestID(c.GetString("request_id"))
		log.Error().Err(err).
			Str("path", c.Request.URL.Path).
			Msg("internal error")
	}
	RespondError(c, status, code, msg)
}
