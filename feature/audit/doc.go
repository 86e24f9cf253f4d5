// Package audit checks the circulation ledger for drift and repairs it.
//
// Two checks are available:
//
//   - schema: every ledger model's table and columns exist in the connected
//     database (gorm models are the source of truth).
//   - circulation: books whose status disagrees with their quantity, books
//     with a negative quantity, late returns without a fine, and users
//     holding more than one pending reservation for the same book.
//
// PlanCirculation never mutates anything. Apply executes the plan's actions
// through the loan, fine and reservation managers, so repairs take the same
// locks as regular requests. Negative quantities are reported only.
//
// # HTTP Endpoints
//
// All routes require the operator API key.
//
//   - GET /audit                  : both checks
//   - GET /audit/schema           : schema check
//   - GET /audit/circulation      : circulation check; ?fix=true repairs, ?dry_run=true plans only
package audit
