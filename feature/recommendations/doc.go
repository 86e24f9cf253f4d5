// Package recommendations suggests books a user might borrow next.
//
// Suggestions come from the three categories the user borrowed from most
// recently, restricted to available books the user never borrowed, ordered by
// title. When that yields fewer than the configured limit the list is topped
// up with the most borrowed available books not already suggested.
//
// Results are cached per user for lending.recommendation_cache_seconds.
// Concurrent misses for one user collapse into a single query. The loan
// manager invalidates a user's entry after each borrow.
//
// # HTTP Endpoints
//
//   - GET /recommendations : suggestions for the caller
package recommendations
