// Package ledgertest provides an in-memory ledger and fixtures for tests.
package ledgertest

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"circulation/core/database"
	"circulation/feature/ledger"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// Epoch is the fixed starting time of every test clock.
var Epoch = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

// Clock is a manually advanced clock safe for concurrent use.
type Clock struct {
	mu  sync.Mutex
	now time.Time
}

// NewClock returns a clock set to Epoch.
func NewClock() *Clock {
	return &Clock{now: Epoch}
}

func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance moves the clock forward by d.
func (c *Clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// Open returns a migrated in-memory SQLite ledger closed at test cleanup.
func Open(t testing.TB) *gorm.DB {
	t.Helper()

	db, err := database.Connect(database.Config{Driver: database.DriverSQLite, Name: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })

	require.NoError(t, ledger.Migrate(context.Background(), db))
	return db
}

// NewStore returns a store over db driven by clock.
func NewStore(db *gorm.DB, clock *Clock) *ledger.Store {
	return ledger.NewStore(db, 5*time.Second, ledger.WithClock(clock.Now))
}

// SeedUser inserts a user.
func SeedUser(t testing.TB, db *gorm.DB, name, role string) *ledger.User {
	t.Helper()
	u := &ledger.User{Name: name, Email: fmt.Sprintf("%s@demo.local", name), Role: role}
	require.NoError(t, db.Create(u).Error)
	return u
}

// SeedBook inserts a book with quantity on-shelf copies.
func SeedBook(t testing.TB, db *gorm.DB, title, category string, quantity int) *ledger.Book {
	t.Helper()
	b := &ledger.Book{
		Title:    title,
		Author:   "Author of " + title,
		ISBN:     fmt.Sprintf("isbn-%s-%d", title, time.Now().UnixNano()),
		Category: category,
		Quantity: quantity,
		Status:   ledger.StatusFor(quantity),
	}
	require.NoError(t, db.Create(b).Error)
	return b
}

// ReloadBook reads the current row of a book.
func ReloadBook(t testing.TB, db *gorm.DB, id uint) *ledger.Book {
	t.Helper()
	var b ledger.Book
	require.NoError(t, db.First(&b, id).Error)
	return &b
}
