// Package fines implements the fine ledger: pricing late returns, recording
// the fine inside the return transaction and settling payments.
//
// # Pricing
//
// A loan returned after its due date owes one charge per started day late:
//
//	days   = ceil((returned - due) / 24h), never below zero
//	amount = days * lending.fine_rate_cents
//
// The canonical rate is 100 cents per day and lives in one configuration value.
//
// # Lifecycle
//
// Assess is called by the loan manager with its open transaction and creates at
// most one unpaid fine per borrow record. Pay locks the fine row and marks it
// paid once, with the tendered amount, when that amount covers what is owed.
// There are no partial payments and no refunds.
//
// After a successful payment a JSON receipt is written to the object storage
// archive when one is configured. Archiving is best effort: a failure is
// logged and the payment stands.
//
// # HTTP Endpoints
//
//   - GET  /fines                  : unpaid fines of the caller
//   - GET  /fines/history          : paid fines of the caller
//   - GET  /fines/quote/:borrowId  : price of returning a loan now
//   - POST /fines/:id/pay          : settle a fine {amount_cents}
//   - GET  /fines/receipts         : archived receipts of the caller
//   - GET  /fines/:id/receipt      : receipt of one fine
package fines
