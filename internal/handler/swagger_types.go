package handler

import "gstbill/internal/domain"

// Swagger type definitions for API documentation.
// These types are used by swag to generate OpenAPI documentation.

// --- Request Types ---

// SaveCustomerRequest represents the create/update customer request body.
type SaveCustomerRequest struct {
	Name      string `json:"name" binding:"required" example:"Sri Murugan Traders"`
	Address   string `json:"address" example:"12, Main Bazaar, Madurai"`
	State     string `json:"state" example:"TAMIL NADU"`
	StateCode string `json:"stateCode" example:"33"`
	Phone     string `json:"phone" example:"9842000000"`
	Email     string `json:"email" example:"accounts@murugan.example"`
}

func (r *SaveCustomerRequest) toDomain(gstin string) domain.CustomerDetails {
	return domain.CustomerDetails{
		GSTIN:     gstin,
		Name:      r.Name,
		Address:   r.Address,
		State:     r.State,
		StateCode: r.StateCode,
		Phone:     r.Phone,
		Email:     r.Email,
	}
}

// --- Response Types ---

// Response represents a standard success response.
type Response struct {
	Success bool        `json:"success" example:"true"`
	Data    interface{} `json:"data,omitempty"`
	Meta    *ListMeta   `json:"meta,omitempty"`
}

// ErrorResponseBody represents an error response.
type ErrorResponseBody struct {
	Success bool     `json:"success" example:"false"`
	Error   APIError `json:"error"`
}

// NextNumberResponse carries the number the next invoice would receive.
type NextNumberResponse struct {
	InvoiceNumber string `json:"invoiceNumber" example:"INV043"`
}

// WordsResponse carries a rounded amount and its spelling.
type WordsResponse struct {
	Amount int64  `json:"amount" example:"1155"`
	Words  string `json:"words" example:"ONE THOUSAND ONE HUNDRED FIFTY FIVE ONLY"`
}
