package domain

import "errors"

var (
	ErrNotFound               = errors.New("resource not found")
	ErrCustomerNotFound       = errors.New("customer not found")
	ErrInvoiceNotFound        = errors.New("invoice not found")
	ErrMissingCustomer        = errors.New("customer name and GSTIN are required")
	ErrInvalidGSTIN           = errors.New("GSTIN must be 15 uppercase alphanumeric characters")
	ErrNoBillableItems        = errors.New("at least one item with a non-zero amount is required")
	ErrInvalidItem            = errors.New("invalid invoice item")
	ErrInvalidDate            = errors.New("date must be an ISO-8601 calendar date (YYYY-MM-DD)")
	ErrInvalidInvoiceNumber   = errors.New("invalid invoice number")
	ErrDuplicateInvoiceNumber = errors.New("invoice number already exists")
	ErrNegativeAmount         = errors.New("amount must not be negative")
	ErrAmountOutOfRange       = errors.New("amount exceeds the supported range")
	ErrInvalidBundle          = errors.New("invalid transfer bundle")
)
