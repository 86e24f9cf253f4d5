// Package availability derives how many copies of a book can be lent now.
//
// Available is books.quantity minus open loans, clamped at zero. CanReserve
// additionally subtracts the pending reservation queue.
//
// Calculate is a pure read. It never writes and never classifies errors; the
// caller's ledger.Store does that.
package availability
