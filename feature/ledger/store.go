package ledger

import (
	"context"
	"errors"
	"time"

	"circulation/core/apperr"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrBookNotFound is returned when an operation names an unknown book.
var ErrBookNotFound = apperr.New(apperr.NotFound, "BOOK_NOT_FOUND", "book not found")

var errDuplicate = apperr.New(apperr.Conflict, "DUPLICATE", "record already exists")

// Clock returns the current time.
type Clock func() time.Time

// Option configures a Store.
type Option func(*Store)

// WithClock replaces the wall clock, mainly for tests.
func WithClock(c Clock) Option {
	return func(s *Store) { s.clock = c }
}

// Store executes ledger reads and transactions with a bounded timeout.
type Store struct {
	db      *gorm.DB
	timeout time.Duration
	clock   Clock
}

// NewStore wraps an open database handle. The caller keeps ownership of db.
func NewStore(db *gorm.DB, timeout time.Duration, opts ...Option) *Store {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	s := &Store{
		db:      db,
		timeout: timeout,
		clock:   func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Now returns the store's notion of the current time, in UTC.
func (s *Store) Now() time.Time {
	return s.clock().UTC()
}

// Transact runs fn in one transaction. Any error returned by fn, a panic, or
// the timeout expiring rolls everything back.
func (s *Store) Transact(ctx context.Context, fn func(tx *gorm.DB) error) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	return classify(ctx, s.db.WithContext(ctx).Transaction(fn))
}

// Read runs fn outside a transaction under the same timeout.
func (s *Store) Read(ctx context.Context, fn func(db *gorm.DB) error) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	return classify(ctx, fn(s.db.WithContext(ctx)))
}

// LockBook loads a book holding its row lock until tx ends.
func LockBook(tx *gorm.DB, id uint) (*Book, error) {
	var book Book
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&book, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrBookNotFound
	}
	if err != nil {
		return nil, err
	}
	return &book, nil
}

// FindBook loads a book without locking it.
func FindBook(db *gorm.DB, id uint) (*Book, error) {
	var book Book
	err := db.First(&book, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrBookNotFound
	}
	if err != nil {
		return nil, err
	}
	return &book, nil
}

func classify(ctx context.Context, err error) error {
	if err == nil {
		return nil
	}
	var ae *apperr.Error
	if errors.As(err, &ae) {
		return err
	}
	if ctx.Err() != nil {
		return apperr.Wrap(apperr.Transient, "TIMEOUT", "operation timed out", err)
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return apperr.Wrap(errDuplicate.Kind, errDuplicate.Code, errDuplicate.Message, err)
	}
	return apperr.AsTransient(err)
}
