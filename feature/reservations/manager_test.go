package reservations_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"circulation/core/apperr"
	"circulation/core/identity"
	"circulation/core/policy"
	"circulation/feature/ledger"
	"circulation/feature/ledger/ledgertest"
	"circulation/feature/reservations"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type fixture struct {
	db      *gorm.DB
	clock   *ledgertest.Clock
	manager *reservations.Manager
	book    *ledger.Book
	alice   identity.Identity
	bob     identity.Identity
	carol   identity.Identity
}

func newFixture(t *testing.T) *fixture {
	db := ledgertest.Open(t)
	clock := ledgertest.NewClock()

	as := func(u *ledger.User) identity.Identity { return identity.Identity{UserID: u.ID, Role: u.Role} }

	return &fixture{
		db:      db,
		clock:   clock,
		manager: reservations.NewManager(ledgertest.NewStore(db, clock), policy.Default(), zap.NewNop()),
		book:    ledgertest.SeedBook(t, db, "Clean Code", "Programming", 1),
		alice:   as(ledgertest.SeedUser(t, db, "alice", identity.RoleUser)),
		bob:     as(ledgertest.SeedUser(t, db, "bob", identity.RoleUser)),
		carol:   as(ledgertest.SeedUser(t, db, "carol", identity.RoleUser)),
	}
}

func (f *fixture) reserve(t *testing.T, who identity.Identity) *reservations.View {
	t.Helper()
	v, err := f.manager.Create(context.Background(), who, reservations.CreateRequest{BookID: f.book.ID})
	require.NoError(t, err)
	f.clock.Advance(time.Minute)
	return v
}

func TestManager_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("Default Window", func(t *testing.T) {
		f := newFixture(t)
		v, err := f.manager.Create(ctx, f.alice, reservations.CreateRequest{BookID: f.book.ID})
		require.NoError(t, err)

		assert.Equal(t, ledger.ReservationPending, v.Status)
		assert.Equal(t, f.alice.UserID, v.UserID)
		assert.True(t, v.StartDate.Equal(ledgertest.Epoch))
		assert.True(t, v.EndDate.Equal(ledgertest.Epoch.Add(7*24*time.Hour)))
		assert.Equal(t, 7, v.DurationDays)
		require.NotNil(t, v.Position)
		assert.Equal(t, 1, *v.Position)
	})

	t.Run("Supplied Window", func(t *testing.T) {
		f := newFixture(t)
		start := ledgertest.Epoch.Add(48 * time.Hour)
		end := start.Add(3 * 24 * time.Hour)

		v, err := f.manager.Create(ctx, f.alice, reservations.CreateRequest{BookID: f.book.ID, StartDate: &start, EndDate: &end})
		require.NoError(t, err)
		assert.True(t, v.EndDate.Equal(end))
		assert.Equal(t, 3, v.DurationDays)
	})

	t.Run("End Before Start", func(t *testing.T) {
		f := newFixture(t)
		start := ledgertest.Epoch
		end := start.Add(-time.Hour)

		_, err := f.manager.Create(ctx, f.alice, reservations.CreateRequest{BookID: f.book.ID, StartDate: &start, EndDate: &end})
		assert.True(t, apperr.IsKind(err, apperr.Invalid))
	})

	t.Run("Unknown Book", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.manager.Create(ctx, f.alice, reservations.CreateRequest{BookID: 999})
		assert.ErrorIs(t, err, ledger.ErrBookNotFound)
	})

	t.Run("Duplicate Pending", func(t *testing.T) {
		f := newFixture(t)
		f.reserve(t, f.alice)

		_, err := f.manager.Create(ctx, f.alice, reservations.CreateRequest{BookID: f.book.ID})
		assert.ErrorIs(t, err, reservations.ErrDuplicatePending)
		assert.True(t, apperr.IsKind(err, apperr.Conflict))
	})

	t.Run("Again After Cancel", func(t *testing.T) {
		f := newFixture(t)
		v := f.reserve(t, f.alice)
		require.NoError(t, f.manager.Cancel(ctx, f.alice, v.ID))

		_, err := f.manager.Create(ctx, f.alice, reservations.CreateRequest{BookID: f.book.ID})
		assert.NoError(t, err)
	})
}

func TestManager_Create_Concurrent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	const attempts = 8
	var wg sync.WaitGroup
	errs := make([]error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = f.manager.Create(ctx, f.alice, reservations.CreateRequest{BookID: f.book.ID})
		}(i)
	}
	wg.Wait()

	ok := 0
	for _, err := range errs {
		if err == nil {
			ok++
			continue
		}
		assert.ErrorIs(t, err, reservations.ErrDuplicatePending)
	}
	assert.Equal(t, 1, ok)

	var pending int64
	f.db.Model(&ledger.Reservation{}).Where("user_id = ? AND status = ?", f.alice.UserID, ledger.ReservationPending).Count(&pending)
	assert.Equal(t, int64(1), pending)
}

func TestManager_Queue(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	a := f.reserve(t, f.alice)
	b := f.reserve(t, f.bob)
	c := f.reserve(t, f.carol)

	queue, err := f.manager.Queue(ctx, f.book.ID)
	require.NoError(t, err)
	require.Len(t, queue, 3)
	assert.Equal(t, []uint{a.ID, b.ID, c.ID}, []uint{queue[0].ReservationID, queue[1].ReservationID, queue[2].ReservationID})
	assert.Equal(t, []int{1, 2, 3}, []int{queue[0].Position, queue[1].Position, queue[2].Position})
	assert.Equal(t, "bob", queue[1].UserName)

	t.Run("Cancel Middle Shifts Later Entries", func(t *testing.T) {
		require.NoError(t, f.manager.Cancel(ctx, f.bob, b.ID))

		queue, err := f.manager.Queue(ctx, f.book.ID)
		require.NoError(t, err)
		require.Len(t, queue, 2)
		assert.Equal(t, a.ID, queue[0].ReservationID)
		assert.Equal(t, 1, queue[0].Position)
		assert.Equal(t, c.ID, queue[1].ReservationID)
		assert.Equal(t, 2, queue[1].Position)

		var cancelled ledger.Reservation
		require.NoError(t, f.db.First(&cancelled, b.ID).Error)
		assert.Equal(t, ledger.ReservationCancelled, cancelled.Status)
	})

	t.Run("Same Timestamp Orders By Id", func(t *testing.T) {
		g := newFixture(t)
		first, err := g.manager.Create(ctx, g.alice, reservations.CreateRequest{BookID: g.book.ID})
		require.NoError(t, err)
		second, err := g.manager.Create(ctx, g.bob, reservations.CreateRequest{BookID: g.book.ID})
		require.NoError(t, err)

		queue, err := g.manager.Queue(ctx, g.book.ID)
		require.NoError(t, err)
		require.Len(t, queue, 2)
		assert.Equal(t, first.ID, queue[0].ReservationID)
		assert.Equal(t, second.ID, queue[1].ReservationID)
	})

	t.Run("Unknown Book", func(t *testing.T) {
		_, err := f.manager.Queue(ctx, 999)
		assert.ErrorIs(t, err, ledger.ErrBookNotFound)
	})
}

func TestManager_Cancel(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	librarian := identity.Identity{UserID: 50, Role: identity.RoleLibrarian}

	v := f.reserve(t, f.alice)

	assert.ErrorIs(t, f.manager.Cancel(ctx, f.alice, 999), reservations.ErrReservationNotFound)

	err := f.manager.Cancel(ctx, f.bob, v.ID)
	assert.ErrorIs(t, err, reservations.ErrForbidden)
	assert.True(t, apperr.IsKind(err, apperr.Forbidden))

	require.NoError(t, f.manager.Cancel(ctx, librarian, v.ID))

	err = f.manager.Cancel(ctx, f.alice, v.ID)
	assert.ErrorIs(t, err, reservations.ErrNotPending)
}

func TestManager_Fulfill(t *testing.T) {
	f := newFixture(t)
	v := f.reserve(t, f.alice)

	var done bool
	require.NoError(t, f.db.Transaction(func(tx *gorm.DB) error {
		var err error
		done, err = f.manager.Fulfill(tx, f.alice.UserID, f.book.ID, f.clock.Now())
		return err
	}))
	assert.True(t, done)

	var stored ledger.Reservation
	require.NoError(t, f.db.First(&stored, v.ID).Error)
	assert.Equal(t, ledger.ReservationCompleted, stored.Status)

	done, err := f.manager.Fulfill(f.db, f.bob.UserID, f.book.ID, f.clock.Now())
	require.NoError(t, err)
	assert.False(t, done)
}

func TestManager_List(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	other := ledgertest.SeedBook(t, f.db, "Refactoring", "Programming", 2)

	a := f.reserve(t, f.alice)
	f.reserve(t, f.bob)
	_, err := f.manager.Create(ctx, f.alice, reservations.CreateRequest{BookID: other.ID})
	require.NoError(t, err)
	require.NoError(t, f.manager.Cancel(ctx, f.alice, a.ID))

	t.Run("Own Only", func(t *testing.T) {
		out, err := f.manager.List(ctx, f.alice, reservations.ListFilter{})
		require.NoError(t, err)
		require.Len(t, out, 2)
		assert.Equal(t, "Refactoring", out[0].BookTitle)
		require.NotNil(t, out[0].Position)
		assert.Equal(t, 1, *out[0].Position)
		assert.Equal(t, ledger.ReservationCancelled, out[1].Status)
		assert.Nil(t, out[1].Position)
	})

	t.Run("Elevated Sees All", func(t *testing.T) {
		admin := identity.Identity{UserID: 99, Role: identity.RoleAdmin}
		out, err := f.manager.List(ctx, admin, reservations.ListFilter{Status: ledger.ReservationPending})
		require.NoError(t, err)
		require.Len(t, out, 2)
		for _, v := range out {
			require.NotNil(t, v.Position)
			assert.Equal(t, 1, *v.Position)
		}
	})

	t.Run("Bad Filter", func(t *testing.T) {
		_, err := f.manager.List(ctx, f.alice, reservations.ListFilter{Status: "lost"})
		assert.True(t, apperr.IsKind(err, apperr.Invalid))
	})
}

func TestManager_CheckAvailability(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	out, err := f.manager.CheckAvailability(ctx, f.book.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), out.Available)
	assert.True(t, out.CanReserve)

	f.reserve(t, f.bob)
	out, err = f.manager.CheckAvailability(ctx, f.book.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), out.Pending)
	assert.False(t, out.CanReserve)

	_, err = f.manager.CheckAvailability(ctx, 999)
	assert.ErrorIs(t, err, ledger.ErrBookNotFound)
}

func TestManager_CheckAvailability_OpenLoans(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	book := ledgertest.SeedBook(t, f.db, "Refactoring", "Programming", 2)
	now := ledgertest.Epoch
	require.NoError(t, f.db.Create(&ledger.BorrowRecord{UserID: f.alice.UserID, BookID: book.ID, BorrowedAt: now, DueAt: now.Add(14 * 24 * time.Hour)}).Error)

	out, err := f.manager.CheckAvailability(ctx, book.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), out.Available)
	assert.True(t, out.CanReserve)

	require.NoError(t, f.db.Create(&ledger.BorrowRecord{UserID: f.bob.UserID, BookID: book.ID, BorrowedAt: now, DueAt: now.Add(14 * 24 * time.Hour)}).Error)

	out, err = f.manager.CheckAvailability(ctx, book.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), out.Available)
	assert.False(t, out.CanReserve)
}
