package fines

import "circulation/core/apperr"

var (
	ErrFineNotFound        = apperr.New(apperr.NotFound, "FINE_NOT_FOUND", "fine not found")
	ErrLoanNotFound        = apperr.New(apperr.NotFound, "LOAN_NOT_FOUND", "borrow record not found")
	ErrForbidden           = apperr.New(apperr.Forbidden, "FORBIDDEN", "fine belongs to another user")
	ErrAlreadyPaid         = apperr.New(apperr.Conflict, "ALREADY_PAID", "fine already paid")
	ErrInsufficientPayment = apperr.New(apperr.PolicyViolation, "INSUFFICIENT_PAYMENT", "tendered amount is less than the amount owed")
	ErrReceiptsDisabled    = apperr.New(apperr.NotFound, "RECEIPTS_DISABLED", "receipt archive is not enabled")
	ErrReceiptNotFound     = apperr.New(apperr.NotFound, "RECEIPT_NOT_FOUND", "receipt not found")
)
