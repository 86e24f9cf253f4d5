package loans

import "circulation/core/apperr"

var (
	ErrNotAvailable = apperr.New(apperr.Conflict, "NOT_AVAILABLE", "book is not available")
	ErrOverdueBlock = apperr.New(apperr.PolicyViolation, "OVERDUE_BLOCK", "return overdue books before borrowing")
	ErrNoActiveLoan = apperr.New(apperr.NotFound, "NO_ACTIVE_LOAN", "no active loan for this book")
)
