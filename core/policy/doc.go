// Package policy holds the lending rules that are configuration rather than code:
// loan period, default reservation window, the overdue fine rate and the
// recommendation limits.
//
// The fine rate exists exactly once, as FineRateCents (100 cents per started
// overdue day by default). Features receive a policy.Config at construction
// and never hard-code these values.
package policy
