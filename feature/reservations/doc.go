// Package reservations maintains the per-book reservation queues.
//
// A queue is the set of pending reservations of one book ordered by creation
// time, ties broken by id. Positions are never stored: they are ranks computed
// whenever a queue is read, so cancelling an entry cannot leave stale numbers
// behind.
//
// # State machine
//
//	pending -> cancelled   (Cancel, by the owner or an elevated caller)
//	pending -> completed   (Fulfill, when the reserving user borrows the book)
//
// Both targets are terminal and rows are never deleted.
//
// # Concurrency
//
// Create locks the book row before checking for an existing pending
// reservation of the same user, so two concurrent requests cannot both pass
// the check. Cancel locks the reservation row.
//
// # HTTP Endpoints
//
//   - GET    /books/:id/availability : {available, pending, can_reserve}
//   - GET    /books/:id/queue        : pending queue with positions
//   - POST   /reservations           : create {book_id, start_date?, end_date?}
//   - GET    /reservations           : list, optionally ?status=
//   - DELETE /reservations/:id       : cancel
package reservations
