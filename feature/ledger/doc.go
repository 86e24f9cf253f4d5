// Package ledger is the durable record of the circulation service.
//
// It owns the schema (books, borrow_records, reservations, fines and the
// read-only users table) and the Store that every manager uses to touch it.
//
// # Transactions
//
// Store.Transact runs a closure inside one GORM transaction bounded by the
// configured query timeout. Returning an error, panicking or running out of
// time rolls the whole transaction back, so no partial borrow, return or
// payment is ever visible. Errors leave the store classified:
//
//   - errors already carrying an apperr kind pass through unchanged
//   - context cancellation and deadlines become apperr.Transient
//   - unique key violations become apperr.Conflict
//   - anything else from the driver becomes apperr.Transient
//
// # Book rows
//
// LockBook takes a row lock (SELECT ... FOR UPDATE) on a book. Every decision
// that depends on a book's quantity, and the pending reservation uniqueness
// check, happens after that lock inside the same transaction.
//
// StatusFor derives books.status from books.quantity; writers store both.
package ledger
