package loans_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"circulation/core/apperr"
	"circulation/core/identity"
	"circulation/core/policy"
	"circulation/feature/availability"
	"circulation/feature/fines"
	"circulation/feature/ledger"
	"circulation/feature/ledger/ledgertest"
	"circulation/feature/loans"
	"circulation/feature/reservations"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

const day = 24 * time.Hour

type fixture struct {
	db           *gorm.DB
	clock        *ledgertest.Clock
	loans        *loans.Manager
	reservations *reservations.Manager
	fines        *fines.Ledger
}

func newFixture(t *testing.T) *fixture {
	db := ledgertest.Open(t)
	clock := ledgertest.NewClock()
	store := ledgertest.NewStore(db, clock)
	pol := policy.Default()
	log := zap.NewNop()

	fl := fines.NewLedger(store, pol, nil, log)
	rm := reservations.NewManager(store, pol, log)
	return &fixture{
		db:           db,
		clock:        clock,
		loans:        loans.NewManager(store, fl, rm, pol, log),
		reservations: rm,
		fines:        fl,
	}
}

func user(id uint) identity.Identity {
	return identity.Identity{UserID: id, Role: identity.RoleUser}
}

func TestManager_Borrow(t *testing.T) {
	ctx := context.Background()

	t.Run("Last Copy Marks Borrowed", func(t *testing.T) {
		f := newFixture(t)
		book := ledgertest.SeedBook(t, f.db, "Clean Code", "Programming", 1)

		res, err := f.loans.Borrow(ctx, user(1), loans.BorrowRequest{BookID: book.ID})
		require.NoError(t, err)
		assert.True(t, res.DueDate.Equal(ledgertest.Epoch.Add(14*day)))
		assert.Equal(t, 0, res.Quantity)
		assert.Equal(t, ledger.StatusBorrowed, res.BookStatus)

		stored := ledgertest.ReloadBook(t, f.db, book.ID)
		assert.Equal(t, 0, stored.Quantity)
		assert.Equal(t, ledger.StatusBorrowed, stored.Status)
	})

	t.Run("Copies Remain", func(t *testing.T) {
		f := newFixture(t)
		book := ledgertest.SeedBook(t, f.db, "1984", "Dystopia", 4)

		_, err := f.loans.Borrow(ctx, user(1), loans.BorrowRequest{BookID: book.ID})
		require.NoError(t, err)

		stored := ledgertest.ReloadBook(t, f.db, book.ID)
		assert.Equal(t, 3, stored.Quantity)
		assert.Equal(t, ledger.StatusAvailable, stored.Status)
	})

	t.Run("Not Available", func(t *testing.T) {
		f := newFixture(t)
		book := ledgertest.SeedBook(t, f.db, "Clean Code", "Programming", 1)
		_, err := f.loans.Borrow(ctx, user(1), loans.BorrowRequest{BookID: book.ID})
		require.NoError(t, err)

		_, err = f.loans.Borrow(ctx, user(2), loans.BorrowRequest{BookID: book.ID})
		assert.ErrorIs(t, err, loans.ErrNotAvailable)
		assert.True(t, apperr.IsKind(err, apperr.Conflict))

		_, err = f.loans.Borrow(ctx, user(1), loans.BorrowRequest{BookID: book.ID})
		assert.ErrorIs(t, err, loans.ErrNotAvailable)

		_, err = f.loans.Borrow(ctx, user(2), loans.BorrowRequest{BookID: 999})
		assert.ErrorIs(t, err, loans.ErrNotAvailable)
	})

	t.Run("Invalid Request", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.loans.Borrow(ctx, user(1), loans.BorrowRequest{})
		assert.True(t, apperr.IsKind(err, apperr.Invalid))
	})

	t.Run("Overdue Blocks", func(t *testing.T) {
		f := newFixture(t)
		first := ledgertest.SeedBook(t, f.db, "Dune", "SciFi", 2)
		second := ledgertest.SeedBook(t, f.db, "Emma", "Classic", 2)

		_, err := f.loans.Borrow(ctx, user(1), loans.BorrowRequest{BookID: first.ID})
		require.NoError(t, err)

		f.clock.Advance(15 * day)
		_, err = f.loans.Borrow(ctx, user(1), loans.BorrowRequest{BookID: second.ID})
		assert.ErrorIs(t, err, loans.ErrOverdueBlock)
		assert.True(t, apperr.IsKind(err, apperr.PolicyViolation))

		stored := ledgertest.ReloadBook(t, f.db, second.ID)
		assert.Equal(t, 2, stored.Quantity)

		_, err = f.loans.Borrow(ctx, user(2), loans.BorrowRequest{BookID: second.ID})
		assert.NoError(t, err)
	})

	t.Run("Completes Own Reservation", func(t *testing.T) {
		f := newFixture(t)
		book := ledgertest.SeedBook(t, f.db, "Clean Code", "Programming", 1)

		mine, err := f.reservations.Create(ctx, user(1), reservations.CreateRequest{BookID: book.ID})
		require.NoError(t, err)
		theirs, err := f.reservations.Create(ctx, user(2), reservations.CreateRequest{BookID: book.ID})
		require.NoError(t, err)

		res, err := f.loans.Borrow(ctx, user(1), loans.BorrowRequest{BookID: book.ID})
		require.NoError(t, err)
		assert.True(t, res.Fulfilled)

		var own, other ledger.Reservation
		require.NoError(t, f.db.First(&own, mine.ID).Error)
		assert.Equal(t, ledger.ReservationCompleted, own.Status)
		require.NoError(t, f.db.First(&other, theirs.ID).Error)
		assert.Equal(t, ledger.ReservationPending, other.Status)

		queue, err := f.reservations.Queue(ctx, book.ID)
		require.NoError(t, err)
		require.Len(t, queue, 1)
		assert.Equal(t, 1, queue[0].Position)
	})
}

func TestManager_OnBorrow(t *testing.T) {
	f := newFixture(t)
	book := ledgertest.SeedBook(t, f.db, "1984", "Dystopia", 1)

	var notified []uint
	f.loans.OnBorrow(func(userID uint) { notified = append(notified, userID) })

	_, err := f.loans.Borrow(context.Background(), user(7), loans.BorrowRequest{BookID: book.ID})
	require.NoError(t, err)

	_, err = f.loans.Borrow(context.Background(), user(8), loans.BorrowRequest{BookID: book.ID})
	require.ErrorIs(t, err, loans.ErrNotAvailable)

	assert.Equal(t, []uint{7}, notified)
}

func TestManager_Borrow_Concurrent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	book := ledgertest.SeedBook(t, f.db, "Clean Code", "Programming", 1)

	const borrowers = 10
	var wg sync.WaitGroup
	errs := make([]error, borrowers)
	for i := 0; i < borrowers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = f.loans.Borrow(ctx, user(uint(i+1)), loans.BorrowRequest{BookID: book.ID})
		}(i)
	}
	wg.Wait()

	ok := 0
	for _, err := range errs {
		if err == nil {
			ok++
			continue
		}
		assert.ErrorIs(t, err, loans.ErrNotAvailable)
	}
	assert.Equal(t, 1, ok)

	stored := ledgertest.ReloadBook(t, f.db, book.ID)
	assert.Equal(t, 0, stored.Quantity)
	assert.Equal(t, ledger.StatusBorrowed, stored.Status)

	snap, err := availability.Calculate(f.db, book.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), snap.Available())
	assert.Equal(t, int64(1), snap.OpenLoans)
}

func TestManager_Borrow_LowersAvailability(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	book := ledgertest.SeedBook(t, f.db, "Dune", "Science Fiction", 3)

	_, err := f.loans.Borrow(ctx, user(1), loans.BorrowRequest{BookID: book.ID})
	require.NoError(t, err)

	avail, err := f.reservations.CheckAvailability(ctx, book.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), avail.Available)
	assert.True(t, avail.CanReserve)

	_, err = f.loans.Borrow(ctx, user(2), loans.BorrowRequest{BookID: book.ID})
	require.NoError(t, err)

	avail, err = f.reservations.CheckAvailability(ctx, book.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), avail.Available)
	assert.False(t, avail.CanReserve)
}

func TestManager_Return(t *testing.T) {
	ctx := context.Background()

	t.Run("On Time", func(t *testing.T) {
		f := newFixture(t)
		book := ledgertest.SeedBook(t, f.db, "Clean Code", "Programming", 1)
		_, err := f.loans.Borrow(ctx, user(1), loans.BorrowRequest{BookID: book.ID})
		require.NoError(t, err)

		f.clock.Advance(14 * day)
		res, err := f.loans.Return(ctx, user(1), loans.ReturnRequest{BookID: book.ID})
		require.NoError(t, err)
		assert.Nil(t, res.Fine)
		require.NotNil(t, res.Record.ReturnedAt)

		stored := ledgertest.ReloadBook(t, f.db, book.ID)
		assert.Equal(t, 1, stored.Quantity)
		assert.Equal(t, ledger.StatusAvailable, stored.Status)

		var count int64
		f.db.Model(&ledger.Fine{}).Count(&count)
		assert.Zero(t, count)
	})

	t.Run("No Active Loan", func(t *testing.T) {
		f := newFixture(t)
		book := ledgertest.SeedBook(t, f.db, "Clean Code", "Programming", 1)

		_, err := f.loans.Return(ctx, user(1), loans.ReturnRequest{BookID: book.ID})
		assert.ErrorIs(t, err, loans.ErrNoActiveLoan)
		assert.True(t, apperr.IsKind(err, apperr.NotFound))

		_, err = f.loans.Borrow(ctx, user(1), loans.BorrowRequest{BookID: book.ID})
		require.NoError(t, err)
		_, err = f.loans.Return(ctx, user(2), loans.ReturnRequest{BookID: book.ID})
		assert.ErrorIs(t, err, loans.ErrNoActiveLoan)

		_, err = f.loans.Return(ctx, user(1), loans.ReturnRequest{BookID: book.ID})
		require.NoError(t, err)
		_, err = f.loans.Return(ctx, user(1), loans.ReturnRequest{BookID: book.ID})
		assert.ErrorIs(t, err, loans.ErrNoActiveLoan)
	})

	t.Run("Any Return Marks Available", func(t *testing.T) {
		f := newFixture(t)
		book := ledgertest.SeedBook(t, f.db, "Dune", "SciFi", 2)
		for _, u := range []uint{1, 2} {
			_, err := f.loans.Borrow(ctx, user(u), loans.BorrowRequest{BookID: book.ID})
			require.NoError(t, err)
		}
		assert.Equal(t, ledger.StatusBorrowed, ledgertest.ReloadBook(t, f.db, book.ID).Status)

		_, err := f.loans.Return(ctx, user(2), loans.ReturnRequest{BookID: book.ID})
		require.NoError(t, err)

		stored := ledgertest.ReloadBook(t, f.db, book.ID)
		assert.Equal(t, 1, stored.Quantity)
		assert.Equal(t, ledger.StatusAvailable, stored.Status)
	})
}

// A book with one copy: A borrows, B queues, A returns on day 20 of a 14-day loan.
func TestWorkedExample(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	a, b := user(1), user(2)
	book := ledgertest.SeedBook(t, f.db, "Clean Code", "Programming", 1)

	_, err := f.loans.Borrow(ctx, a, loans.BorrowRequest{BookID: book.ID})
	require.NoError(t, err)
	assert.Equal(t, ledger.StatusBorrowed, ledgertest.ReloadBook(t, f.db, book.ID).Status)

	avail, err := f.reservations.CheckAvailability(ctx, book.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), avail.Available)
	assert.Equal(t, int64(0), avail.Pending)
	assert.False(t, avail.CanReserve)

	res, err := f.reservations.Create(ctx, b, reservations.CreateRequest{BookID: book.ID})
	require.NoError(t, err)
	require.NotNil(t, res.Position)
	assert.Equal(t, 1, *res.Position)

	f.clock.Advance(20 * day)
	ret, err := f.loans.Return(ctx, a, loans.ReturnRequest{BookID: book.ID})
	require.NoError(t, err)
	require.NotNil(t, ret.Fine)
	assert.Equal(t, 6, ret.Fine.DaysOverdue)
	assert.Equal(t, int64(600), ret.Fine.AmountCents)
	assert.False(t, ret.Fine.Paid)

	var count int64
	f.db.Model(&ledger.Fine{}).Where("user_id = ?", a.UserID).Count(&count)
	assert.Equal(t, int64(1), count)

	owed, err := f.fines.Outstanding(ctx, a)
	require.NoError(t, err)
	require.Len(t, owed, 1)
	assert.Equal(t, "Clean Code", owed[0].BookTitle)

	stored := ledgertest.ReloadBook(t, f.db, book.ID)
	assert.Equal(t, 1, stored.Quantity)
	assert.Equal(t, ledger.StatusAvailable, stored.Status)

	queue, err := f.reservations.Queue(ctx, book.ID)
	require.NoError(t, err)
	require.Len(t, queue, 1)
	assert.Equal(t, b.UserID, queue[0].UserID)
}

func TestManager_SyncStatus(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	book := ledgertest.SeedBook(t, f.db, "Dune", "SciFi", 2)
	require.NoError(t, f.db.Model(&ledger.Book{}).Where("id = ?", book.ID).Update("status", ledger.StatusBorrowed).Error)

	changed, err := f.loans.SyncStatus(ctx, book.ID)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, ledger.StatusAvailable, ledgertest.ReloadBook(t, f.db, book.ID).Status)

	changed, err = f.loans.SyncStatus(ctx, book.ID)
	require.NoError(t, err)
	assert.False(t, changed)

	_, err = f.loans.SyncStatus(ctx, 999)
	assert.ErrorIs(t, err, ledger.ErrBookNotFound)
}

func TestManager_ListLoans(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	dune := ledgertest.SeedBook(t, f.db, "Dune", "SciFi", 2)
	emma := ledgertest.SeedBook(t, f.db, "Emma", "Classic", 2)

	_, err := f.loans.Borrow(ctx, user(1), loans.BorrowRequest{BookID: dune.ID})
	require.NoError(t, err)
	f.clock.Advance(day)
	_, err = f.loans.Borrow(ctx, user(1), loans.BorrowRequest{BookID: emma.ID})
	require.NoError(t, err)
	_, err = f.loans.Return(ctx, user(1), loans.ReturnRequest{BookID: dune.ID})
	require.NoError(t, err)

	all, err := f.loans.ListLoans(ctx, user(1), false)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Emma", all[0].BookTitle)

	open, err := f.loans.ListLoans(ctx, user(1), true)
	require.NoError(t, err)
	require.Len(t, open, 1)
	assert.Equal(t, emma.ID, open[0].BookID)
	assert.False(t, open[0].Overdue)

	f.clock.Advance(20 * day)
	open, err = f.loans.ListLoans(ctx, user(1), true)
	require.NoError(t, err)
	assert.True(t, open[0].Overdue)
}

func TestManager_Borrow_RollsBackOnStorageFailure(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()

	db, err := gorm.Open(mysql.New(mysql.Config{Conn: sqlDB, SkipInitializeWithVersion: true}), &gorm.Config{})
	require.NoError(t, err)

	store := ledger.NewStore(db, time.Second)
	pol := policy.Default()
	log := zap.NewNop()
	mgr := loans.NewManager(store, fines.NewLedger(store, pol, nil, log), reservations.NewManager(store, pol, log), pol, log)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT \\* FROM `books` WHERE `books`.`id` = .+ FOR UPDATE").
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "quantity", "status"}).AddRow(1, "Dune", 1, "available"))
	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `borrow_records`").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectExec("INSERT INTO `borrow_records`").
		WillReturnResult(sqlmock.NewResult(10, 1))
	mock.ExpectExec("UPDATE `books` SET").
		WillReturnError(errors.New("lock wait timeout exceeded"))
	mock.ExpectRollback()

	_, err = mgr.Borrow(context.Background(), user(1), loans.BorrowRequest{BookID: 1})
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.Transient))

	var ae *apperr.Error
	require.ErrorAs(t, err, &ae)
	assert.True(t, ae.Retryable())
	assert.NoError(t, mock.ExpectationsWereMet())
}
