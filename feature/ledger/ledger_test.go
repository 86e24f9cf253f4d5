package ledger_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"circulation/core/apperr"
	"circulation/feature/ledger"
	"circulation/feature/ledger/ledgertest"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func TestStatusFor(t *testing.T) {
	assert.Equal(t, ledger.StatusBorrowed, ledger.StatusFor(0))
	assert.Equal(t, ledger.StatusBorrowed, ledger.StatusFor(-1))
	assert.Equal(t, ledger.StatusAvailable, ledger.StatusFor(1))
	assert.Equal(t, ledger.StatusAvailable, ledger.StatusFor(5))
}

func TestStore_Transact(t *testing.T) {
	db := ledgertest.Open(t)
	store := ledgertest.NewStore(db, ledgertest.NewClock())
	ctx := context.Background()

	t.Run("Commits", func(t *testing.T) {
		err := store.Transact(ctx, func(tx *gorm.DB) error {
			return tx.Create(&ledger.Book{Title: "Dune", Author: "Herbert", ISBN: "commit-1", Quantity: 1, Status: ledger.StatusAvailable}).Error
		})
		require.NoError(t, err)

		var count int64
		db.Model(&ledger.Book{}).Where("isbn = ?", "commit-1").Count(&count)
		assert.Equal(t, int64(1), count)
	})

	t.Run("Rolls Back On Error", func(t *testing.T) {
		sentinel := apperr.New(apperr.Conflict, "NOPE", "nope")
		err := store.Transact(ctx, func(tx *gorm.DB) error {
			if err := tx.Create(&ledger.Book{Title: "Emma", Author: "Austen", ISBN: "rollback-1", Quantity: 1, Status: ledger.StatusAvailable}).Error; err != nil {
				return err
			}
			return sentinel
		})
		assert.ErrorIs(t, err, sentinel)

		var count int64
		db.Model(&ledger.Book{}).Where("isbn = ?", "rollback-1").Count(&count)
		assert.Zero(t, count)
	})

	t.Run("Duplicate Is Conflict", func(t *testing.T) {
		book := ledger.Book{Title: "Ulysses", Author: "Joyce", ISBN: "dup-1", Quantity: 1, Status: ledger.StatusAvailable}
		require.NoError(t, db.Create(&book).Error)

		err := store.Transact(ctx, func(tx *gorm.DB) error {
			return tx.Create(&ledger.Book{Title: "Ulysses", Author: "Joyce", ISBN: "dup-1", Quantity: 1, Status: ledger.StatusAvailable}).Error
		})
		assert.True(t, apperr.IsKind(err, apperr.Conflict))
	})

	t.Run("Cancelled Context Is Transient", func(t *testing.T) {
		cancelled, cancel := context.WithCancel(ctx)
		cancel()

		err := store.Transact(cancelled, func(tx *gorm.DB) error {
			return tx.Create(&ledger.Book{Title: "Late", Author: "Nobody", ISBN: "cancel-1", Quantity: 1, Status: ledger.StatusAvailable}).Error
		})
		require.Error(t, err)
		assert.True(t, apperr.IsKind(err, apperr.Transient))

		var count int64
		db.Model(&ledger.Book{}).Where("isbn = ?", "cancel-1").Count(&count)
		assert.Zero(t, count)
	})
}

func TestLockBook(t *testing.T) {
	db := ledgertest.Open(t)
	book := ledgertest.SeedBook(t, db, "Dune", "SciFi", 2)

	got, err := ledger.LockBook(db, book.ID)
	require.NoError(t, err)
	assert.Equal(t, "Dune", got.Title)

	_, err = ledger.LockBook(db, 999)
	assert.ErrorIs(t, err, ledger.ErrBookNotFound)
}

func TestLockBook_SQL(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()

	db, err := gorm.Open(mysql.New(mysql.Config{Conn: sqlDB, SkipInitializeWithVersion: true}), &gorm.Config{})
	require.NoError(t, err)

	// GORM First adds ORDER BY id LIMIT 1 before the locking clause
	mock.ExpectQuery("SELECT \\* FROM `books` WHERE `books`.`id` = .+ ORDER BY `books`.`id` LIMIT .+ FOR UPDATE").
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "quantity", "status"}).AddRow(7, "Dune", 1, "available"))

	book, err := ledger.LockBook(db, 7)
	require.NoError(t, err)
	assert.Equal(t, 1, book.Quantity)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_TransientStorageFailure(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()

	db, err := gorm.Open(mysql.New(mysql.Config{Conn: sqlDB, SkipInitializeWithVersion: true}), &gorm.Config{})
	require.NoError(t, err)

	store := ledger.NewStore(db, time.Second)

	mock.ExpectBegin().WillReturnError(errors.New("connection refused"))

	err = store.Transact(context.Background(), func(tx *gorm.DB) error { return nil })
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.Transient))
	assert.NoError(t, mock.ExpectationsWereMet())
}
