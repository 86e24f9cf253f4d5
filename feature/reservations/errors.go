package reservations

import "circulation/core/apperr"

var (
	ErrReservationNotFound = apperr.New(apperr.NotFound, "RESERVATION_NOT_FOUND", "reservation not found")
	ErrDuplicatePending    = apperr.New(apperr.Conflict, "DUPLICATE_PENDING", "a pending reservation for this book already exists")
	ErrNotPending          = apperr.New(apperr.Conflict, "NOT_PENDING", "reservation is no longer pending")
	ErrForbidden           = apperr.New(apperr.Forbidden, "FORBIDDEN", "reservation belongs to another user")
)
