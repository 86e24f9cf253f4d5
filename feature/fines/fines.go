package fines

import (
	"context"
	"errors"
	"time"

	"circulation/core/identity"
	"circulation/core/policy"
	"circulation/feature/ledger"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const day = 24 * time.Hour

// Assessment is the penalty owed for a loan due at one time and closed at another.
type Assessment struct {
	DaysOverdue int   `json:"days_overdue"`
	AmountCents int64 `json:"amount_cents"`
}

// Overdue reports whether anything is owed.
func (a Assessment) Overdue() bool {
	return a.DaysOverdue > 0
}

// Compute counts started days past due and prices them at rateCents per day.
func Compute(due, now time.Time, rateCents int64) Assessment {
	late := now.Sub(due)
	if late <= 0 {
		return Assessment{}
	}
	days := int(late / day)
	if late%day != 0 {
		days++
	}
	return Assessment{DaysOverdue: days, AmountCents: int64(days) * rateCents}
}

// PayRequest is the body of a fine payment.
type PayRequest struct {
	AmountCents int64 `json:"amount_cents"`
}

// Ledger creates fines and applies payments. It is the only writer of the fines table.
type Ledger struct {
	store    *ledger.Store
	policy   policy.Config
	receipts Archive
	logger   *zap.Logger
}

// NewLedger creates a fine ledger. receipts may be nil to disable archiving.
func NewLedger(store *ledger.Store, pol policy.Config, receipts Archive, logger *zap.Logger) *Ledger {
	return &Ledger{store: store, policy: pol, receipts: receipts, logger: logger}
}

// Compute prices a loan with the configured daily rate.
func (l *Ledger) Compute(due, now time.Time) Assessment {
	return Compute(due, now, l.policy.FineRateCents)
}

// Assess records the fine for a returned loan inside the caller's transaction.
// It returns nil when the loan was on time. A record is never fined twice.
func (l *Ledger) Assess(tx *gorm.DB, record ledger.BorrowRecord, now time.Time) (*ledger.Fine, error) {
	a := l.Compute(record.DueAt, now)
	if !a.Overdue() {
		return nil, nil
	}

	var existing ledger.Fine
	err := tx.Where("borrow_record_id = ?", record.ID).First(&existing).Error
	if err == nil {
		return &existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	fine := ledger.Fine{
		UserID:         record.UserID,
		BorrowRecordID: record.ID,
		DaysOverdue:    a.DaysOverdue,
		AmountCents:    a.AmountCents,
		CreatedAt:      now,
	}
	if err := tx.Create(&fine).Error; err != nil {
		return nil, err
	}

	l.logger.Info("Fine assessed",
		zap.Uint("fine_id", fine.ID),
		zap.Uint("user_id", fine.UserID),
		zap.Uint("borrow_record_id", record.ID),
		zap.Int("days_overdue", fine.DaysOverdue),
		zap.Int64("amount_cents", fine.AmountCents),
	)
	return &fine, nil
}

// Pay settles a fine in full. Payment is final; partial payments are rejected.
func (l *Ledger) Pay(ctx context.Context, who identity.Identity, fineID uint, req PayRequest) (*ledger.Fine, error) {
	now := l.store.Now()
	var fine ledger.Fine

	err := l.store.Transact(ctx, func(tx *gorm.DB) error {
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&fine, fineID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrFineNotFound
		}
		if err != nil {
			return err
		}

		switch {
		case fine.UserID != who.UserID:
			return ErrForbidden
		case fine.Paid:
			return ErrAlreadyPaid
		case req.AmountCents < fine.AmountCents:
			return ErrInsufficientPayment
		}

		fine.Paid = true
		fine.PaidAmountCents = &req.AmountCents
		fine.PaidAt = &now
		return tx.Model(&ledger.Fine{}).Where("id = ? AND paid = ?", fine.ID, false).Updates(map[string]any{
			"paid":              true,
			"paid_amount_cents": req.AmountCents,
			"paid_at":           now,
		}).Error
	})
	if err != nil {
		return nil, err
	}

	l.logger.Info("Fine paid",
		zap.Uint("fine_id", fine.ID),
		zap.Uint("user_id", fine.UserID),
		zap.Int64("paid_amount_cents", req.AmountCents),
	)

	l.archive(ctx, fine)
	return &fine, nil
}

func (l *Ledger) archive(ctx context.Context, fine ledger.Fine) {
	if l.receipts == nil {
		return
	}
	key, err := l.receipts.Store(ctx, NewReceipt(fine))
	if err != nil {
		l.logger.Warn("Receipt archive failed", zap.Uint("fine_id", fine.ID), zap.Error(err))
		return
	}
	l.logger.Debug("Receipt archived", zap.Uint("fine_id", fine.ID), zap.String("key", key))
}
