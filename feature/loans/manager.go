package loans

import (
	"context"
	"errors"
	"time"

	"circulation/core/identity"
	"circulation/core/policy"
	"circulation/core/validation"
	"circulation/feature/fines"
	"circulation/feature/ledger"
	"circulation/feature/reservations"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// BorrowRequest asks to take one copy of a book.
type BorrowRequest struct {
	BookID uint `json:"book_id" validate:"required,gt=0"`
}

// ReturnRequest gives back the caller's copy of a book.
type ReturnRequest struct {
	BookID uint `json:"book_id" validate:"required,gt=0"`
}

// BorrowResult is the outcome of a successful borrow.
type BorrowResult struct {
	Record     ledger.BorrowRecord `json:"record"`
	DueDate    time.Time           `json:"due_date"`
	Fulfilled  bool                `json:"reservation_fulfilled"`
	Quantity   int                 `json:"quantity"`
	BookStatus string              `json:"book_status"`
}

// ReturnResult is the outcome of a successful return.
type ReturnResult struct {
	Message string              `json:"message"`
	Record  ledger.BorrowRecord `json:"record"`
	Fine    *ledger.Fine        `json:"fine,omitempty"`
}

// Manager runs borrow and return. It is the only writer of borrow_records and
// of books.quantity and books.status.
type Manager struct {
	store        *ledger.Store
	fines        *fines.Ledger
	reservations *reservations.Manager
	policy       policy.Config
	logger       *zap.Logger
	onBorrow     []func(userID uint)
}

// NewManager creates a loan manager.
func NewManager(store *ledger.Store, f *fines.Ledger, r *reservations.Manager, pol policy.Config, logger *zap.Logger) *Manager {
	return &Manager{store: store, fines: f, reservations: r, policy: pol, logger: logger}
}

// OnBorrow registers fn to run after every committed borrow.
// Callers register hooks during startup, before serving traffic.
func (m *Manager) OnBorrow(fn func(userID uint)) {
	m.onBorrow = append(m.onBorrow, fn)
}

// Borrow lends one copy of a book to the caller.
func (m *Manager) Borrow(ctx context.Context, who identity.Identity, req BorrowRequest) (*BorrowResult, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	now := m.store.Now()
	var result BorrowResult

	err := m.store.Transact(ctx, func(tx *gorm.DB) error {
		book, err := ledger.LockBook(tx, req.BookID)
		if errors.Is(err, ledger.ErrBookNotFound) {
			return ErrNotAvailable
		}
		if err != nil {
			return err
		}
		if book.Status != ledger.StatusAvailable || book.Quantity <= 0 {
			return ErrNotAvailable
		}

		var overdue int64
		if err := tx.Model(&ledger.BorrowRecord{}).
			Where("user_id = ? AND returned_at IS NULL AND due_at < ?", who.UserID, now).
			Count(&overdue).Error; err != nil {
			return err
		}
		if overdue > 0 {
			return ErrOverdueBlock
		}

		record := ledger.BorrowRecord{
			UserID:     who.UserID,
			BookID:     book.ID,
			BorrowedAt: now,
			DueAt:      now.Add(m.policy.LoanPeriod()),
		}
		if err := tx.Create(&record).Error; err != nil {
			return err
		}

		quantity := book.Quantity - 1
		if err := writeQuantity(tx, book.ID, quantity, now); err != nil {
			return err
		}

		fulfilled, err := m.reservations.Fulfill(tx, who.UserID, book.ID, now)
		if err != nil {
			return err
		}

		result = BorrowResult{
			Record:     record,
			DueDate:    record.DueAt,
			Fulfilled:  fulfilled,
			Quantity:   quantity,
			BookStatus: ledger.StatusFor(quantity),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	m.logger.Info("Book borrowed",
		zap.Uint("borrow_record_id", result.Record.ID),
		zap.Uint("user_id", who.UserID),
		zap.Uint("book_id", req.BookID),
		zap.Time("due_at", result.DueDate),
		zap.Bool("reservation_fulfilled", result.Fulfilled),
	)
	for _, fn := range m.onBorrow {
		fn(who.UserID)
	}
	return &result, nil
}

// Return closes the caller's open loan of a book and records a fine when it
// is late. Closing the loan and creating the fine commit together.
func (m *Manager) Return(ctx context.Context, who identity.Identity, req ReturnRequest) (*ReturnResult, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	now := m.store.Now()
	var result ReturnResult

	err := m.store.Transact(ctx, func(tx *gorm.DB) error {
		book, err := ledger.LockBook(tx, req.BookID)
		if errors.Is(err, ledger.ErrBookNotFound) {
			return ErrNoActiveLoan
		}
		if err != nil {
			return err
		}

		var record ledger.BorrowRecord
		err = tx.Where("user_id = ? AND book_id = ? AND returned_at IS NULL", who.UserID, book.ID).
			Order("borrowed_at ASC, id ASC").
			First(&record).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNoActiveLoan
		}
		if err != nil {
			return err
		}

		closed := tx.Model(&ledger.BorrowRecord{}).
			Where("id = ? AND returned_at IS NULL", record.ID).
			Update("returned_at", now)
		if closed.Error != nil {
			return closed.Error
		}
		if closed.RowsAffected != 1 {
			return ErrNoActiveLoan
		}
		record.ReturnedAt = &now

		if err := writeQuantity(tx, book.ID, book.Quantity+1, now); err != nil {
			return err
		}

		fine, err := m.fines.Assess(tx, record, now)
		if err != nil {
			return err
		}

		result = ReturnResult{Message: "Book returned", Record: record, Fine: fine}
		return nil
	})
	if err != nil {
		return nil, err
	}

	fields := []zap.Field{
		zap.Uint("borrow_record_id", result.Record.ID),
		zap.Uint("user_id", who.UserID),
		zap.Uint("book_id", req.BookID),
	}
	if result.Fine != nil {
		fields = append(fields, zap.Uint("fine_id", result.Fine.ID), zap.Int64("fine_cents", result.Fine.AmountCents))
	}
	m.logger.Info("Book returned", fields...)
	return &result, nil
}

// SyncStatus rewrites a book's status from its quantity under the row lock.
// It reports whether the stored status was wrong.
func (m *Manager) SyncStatus(ctx context.Context, bookID uint) (bool, error) {
	var changed bool
	err := m.store.Transact(ctx, func(tx *gorm.DB) error {
		book, err := ledger.LockBook(tx, bookID)
		if err != nil {
			return err
		}
		if book.Status == ledger.StatusFor(book.Quantity) {
			return nil
		}
		changed = true
		return writeQuantity(tx, book.ID, book.Quantity, m.store.Now())
	})
	if err != nil {
		return false, err
	}
	if changed {
		m.logger.Warn("Book status repaired", zap.Uint("book_id", bookID))
	}
	return changed, nil
}

// writeQuantity is the single write path for books.quantity and books.status.
func writeQuantity(tx *gorm.DB, bookID uint, quantity int, now time.Time) error {
	return tx.Model(&ledger.Book{}).Where("id = ?", bookID).Updates(map[string]any{
		"quantity":   quantity,
		"status":     ledger.StatusFor(quantity),
		"updated_at": now,
	}).Error
}
