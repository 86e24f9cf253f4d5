// Package loans implements the loan manager: borrowing and returning copies.
//
// The manager is the only code that writes borrow records and the
// quantity/status pair of a book. Every write of that pair goes through one
// helper that stores ledger.StatusFor(quantity) next to the quantity.
//
// # Borrow
//
// In one transaction: lock the book row, refuse when no copy is on the shelf
// (Conflict) or when the caller has an overdue open loan (PolicyViolation),
// insert the borrow record due after the loan period, decrement the quantity,
// then complete the caller's pending reservation for the book if there is one.
// Hooks registered with OnBorrow run after the commit.
//
// # Return
//
// In one transaction: lock the book row, close the caller's oldest open loan
// of that book, increment the quantity and, when the loan was late, let the
// fine ledger record exactly one fine.
//
// # HTTP Endpoints
//
//   - POST /books/:id/borrow
//   - POST /books/:id/return
//   - GET  /loans?open=true
package loans
