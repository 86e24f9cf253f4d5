// Package validation checks typed request structs with go-playground/validator
// before they enter a transaction. Failures surface as apperr.Invalid.
package validation
