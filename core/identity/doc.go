// Package identity models the authenticated caller handed to every core operation.
//
// Authentication itself belongs to an external service. That service mints
// HS256 tokens whose subject is the numeric user id and whose role claim is
// user, librarian or admin. Parse verifies such a token with the shared secret
// and yields an Identity; the core trusts it without further checks.
//
// Librarians and admins are elevated: they may list and cancel other users'
// reservations.
package identity
