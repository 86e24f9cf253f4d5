// Package middleware groups the HTTP middleware for the Fiber application.
//
// Each middleware lives in its own sub-package:
//
//   - rayid: tags every request with a unique Ray ID, stored in the context and
//     echoed in the X-Ray-ID response header for tracing.
//   - bearer: verifies the caller's bearer token and stores the resolved
//     identity.Identity for the handlers.
//   - auth: API key validation guarding the operator endpoints.
//
// Ray ID must run first so that every later log line can carry it.
package middleware
