package audit

import (
	"context"
	"testing"

	"circulation/feature/ledger"
	"circulation/feature/ledger/ledgertest"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to open mock sql db: %v", err)
	}

	dialector := mysql.New(mysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open gorm db: %v", err)
	}

	return gormDB, mock
}

type taggedShelf struct {
	ID    uint   `gorm:"primaryKey"`
	Label string `gorm:"type:varchar(32)"`
	Floor int
}

func (taggedShelf) TableName() string { return "shelves" }

func TestCheckSchema_NilDB(t *testing.T) {
	report, err := CheckSchema(nil, ledger.Models())
	assert.Error(t, err)
	assert.Nil(t, report)
}

func TestCheckSchema_Migrated(t *testing.T) {
	db := ledgertest.Open(t)

	report, err := CheckSchema(db, ledger.Models())
	require.NoError(t, err)
	assert.True(t, report.Matched)
	assert.Equal(t, "sqlite", report.Driver)
	assert.Len(t, report.Tables, 5)
	for name, tbl := range report.Tables {
		assert.Equal(t, "ok", tbl.Status, name)
		assert.Empty(t, tbl.MissingColumns, name)
	}
}

func TestCheckSchema_MissingTable(t *testing.T) {
	db := ledgertest.Open(t)
	require.NoError(t, db.Migrator().DropTable(&ledger.Fine{}))

	report, err := CheckSchema(db, ledger.Models())
	require.NoError(t, err)
	assert.False(t, report.Matched)

	fines := report.Tables["fines"]
	assert.Equal(t, "missing", fines.Status)
	assert.Contains(t, fines.MissingColumns, "borrow_record_id")
	assert.Equal(t, "ok", report.Tables["books"].Status)
}

func TestCheckSchema_MissingColumn(t *testing.T) {
	db := ledgertest.Open(t)
	require.NoError(t, db.Migrator().DropColumn(&ledger.Reservation{}, "DurationDays"))

	report, err := CheckSchema(db, ledger.Models())
	require.NoError(t, err)
	assert.False(t, report.Matched)

	tbl := report.Tables["reservations"]
	assert.Equal(t, "error", tbl.Status)
	assert.Equal(t, []string{"duration_days"}, tbl.MissingColumns)
}

func TestCheckSchema_TypeMismatch(t *testing.T) {
	db, mock := setupMockDB(t)

	rows := sqlmock.NewRows([]string{"Field", "Type", "Null", "Key", "Default", "Extra"}).
		AddRow("id", "bigint unsigned", "NO", "PRI", nil, "auto_increment").
		AddRow("label", "TEXT", "YES", "", nil, "").
		AddRow("floor", "bigint", "YES", "", nil, "")
	mock.ExpectQuery("SHOW COLUMNS FROM `shelves`").WillReturnRows(rows)

	report, err := CheckSchema(db, []any{&taggedShelf{}})
	require.NoError(t, err)
	assert.False(t, report.Matched)

	tbl := report.Tables["shelves"]
	assert.Equal(t, "error", tbl.Status)
	assert.Empty(t, tbl.MissingColumns)
	require.Len(t, tbl.TypeMismatches, 1)
	assert.Equal(t, "label: expected varchar(32), got text", tbl.TypeMismatches[0])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCheckSchema_InspectFailure(t *testing.T) {
	db, mock := setupMockDB(t)
	mock.ExpectQuery("SHOW COLUMNS FROM `shelves`").WillReturnError(assert.AnError)

	report, err := CheckSchema(db, []any{&taggedShelf{}})
	require.NoError(t, err)
	assert.False(t, report.Matched)
	require.Len(t, report.Errors, 1)
	assert.Contains(t, report.Errors[0], "inspect table shelves")
}

func TestService_CheckSchema(t *testing.T) {
	db := ledgertest.Open(t)
	s := NewService(ledgertest.NewStore(db, ledgertest.NewClock()), nil, nil, nil, nil)

	report, err := s.CheckSchema(context.Background())
	require.NoError(t, err)
	assert.True(t, report.Matched)
}
