// Package apperr defines the error taxonomy shared by every circulation feature.
//
// Each domain failure is an *Error carrying a Kind, a stable machine code and a
// human readable message. Features declare their failures as package-level
// sentinels so callers can match them with errors.Is, while HTTP handlers only
// need the Kind to pick a status code.
//
// # Kinds
//
//   - NotFound: the addressed entity does not exist.
//   - Conflict: the entity exists but is in a state that rejects the operation
//     (duplicate pending reservation, book not available, fine already paid).
//   - Forbidden: the caller does not own the entity and has no elevated role.
//   - PolicyViolation: a lending rule rejects the request (overdue block,
//     insufficient payment).
//   - Transient: storage failure or timeout. Retryable by the caller; the core
//     never retries on its own.
//   - Invalid: the typed request failed validation before any transaction began.
//
// # Usage
//
//	var ErrNotAvailable = apperr.New(apperr.Conflict, "BOOK_NOT_AVAILABLE", "book not available for borrowing")
//
//	if apperr.IsKind(err, apperr.Transient) {
//	    // surface as 503 and let the client retry
//	}
package apperr
