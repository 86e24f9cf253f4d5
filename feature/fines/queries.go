package fines

import (
	"context"
	"errors"
	"time"

	"circulation/core/identity"
	"circulation/feature/ledger"

	"gorm.io/gorm"
)

// View is a fine joined with the loan and book it was charged for.
type View struct {
	ID              uint       `json:"id"`
	BorrowRecordID  uint       `json:"borrow_record_id"`
	BookID          uint       `json:"book_id"`
	BookTitle       string     `json:"book_title"`
	DueAt           time.Time  `json:"due_date"`
	DaysOverdue     int        `json:"days_overdue"`
	AmountCents     int64      `json:"amount_cents"`
	Paid            bool       `json:"paid"`
	PaidAmountCents *int64     `json:"paid_amount_cents,omitempty"`
	PaidAt          *time.Time `json:"paid_at,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
}

// Quote is what a loan would cost if it were returned now.
type Quote struct {
	BorrowRecordID uint      `json:"borrow_record_id"`
	DueAt          time.Time `json:"due_date"`
	Returned       bool      `json:"returned"`
	Assessment
}

func views(db *gorm.DB) *gorm.DB {
	return db.Table("fines AS f").
		Select(`f.id, f.borrow_record_id, br.book_id, b.title AS book_title, br.due_at,
			f.days_overdue, f.amount_cents, f.paid, f.paid_amount_cents, f.paid_at, f.created_at`).
		Joins("JOIN borrow_records AS br ON br.id = f.borrow_record_id").
		Joins("JOIN books AS b ON b.id = br.book_id")
}

// Outstanding lists the caller's unpaid fines, newest first.
func (l *Ledger) Outstanding(ctx context.Context, who identity.Identity) ([]View, error) {
	out := []View{}
	err := l.store.Read(ctx, func(db *gorm.DB) error {
		return views(db).
			Where("f.user_id = ? AND f.paid = ?", who.UserID, false).
			Order("f.created_at DESC, f.id DESC").
			Scan(&out).Error
	})
	return out, err
}

// History lists the caller's paid fines, most recently paid first.
func (l *Ledger) History(ctx context.Context, who identity.Identity) ([]View, error) {
	out := []View{}
	err := l.store.Read(ctx, func(db *gorm.DB) error {
		return views(db).
			Where("f.user_id = ? AND f.paid = ?", who.UserID, true).
			Order("f.paid_at DESC, f.id DESC").
			Scan(&out).Error
	})
	return out, err
}

// Quote prices one of the caller's loans as of now, or as of its return.
func (l *Ledger) Quote(ctx context.Context, who identity.Identity, borrowRecordID uint) (*Quote, error) {
	var record ledger.BorrowRecord
	err := l.store.Read(ctx, func(db *gorm.DB) error {
		err := db.Where("id = ? AND user_id = ?", borrowRecordID, who.UserID).First(&record).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrLoanNotFound
		}
		return err
	})
	if err != nil {
		return nil, err
	}

	at := l.store.Now()
	if record.ReturnedAt != nil {
		at = *record.ReturnedAt
	}

	return &Quote{
		BorrowRecordID: record.ID,
		DueAt:          record.DueAt,
		Returned:       !record.Open(),
		Assessment:     l.Compute(record.DueAt, at),
	}, nil
}
