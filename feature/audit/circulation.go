package audit

import (
	"context"
	"errors"
	"fmt"

	"circulation/core/apperr"
	"circulation/core/utils"
	"circulation/feature/ledger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// PlanCirculation scans the ledger for drift and plans the repairs.
// It does NOT execute them; use Apply for that.
func (s *Service) PlanCirculation(ctx context.Context) (*Plan, error) {
	plan := &Plan{Findings: []Finding{}, Actions: []Action{}}

	err := s.store.Read(ctx, func(db *gorm.DB) error {
		var books int64
		if err := db.Model(&ledger.Book{}).Count(&books).Error; err != nil {
			return err
		}
		plan.Summary.Books = int(books)

		if err := planStatusDrift(db, plan); err != nil {
			return fmt.Errorf("status drift: %w", err)
		}
		if err := planNegativeQuantity(db, plan); err != nil {
			return fmt.Errorf("negative quantity: %w", err)
		}
		if err := planMissingFines(db, plan); err != nil {
			return fmt.Errorf("missing fines: %w", err)
		}
		if err := planDuplicatePending(db, plan); err != nil {
			return fmt.Errorf("duplicate pending: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return plan, nil
}

func planStatusDrift(db *gorm.DB, plan *Plan) error {
	var drifted []ledger.Book
	err := db.Where("(quantity > 0 AND status <> ?) OR (quantity <= 0 AND status <> ?)",
		ledger.StatusAvailable, ledger.StatusBorrowed).
		Order("id ASC").
		Find(&drifted).Error
	if err != nil {
		return err
	}

	for _, b := range drifted {
		reason := fmt.Sprintf("quantity=%d status=%s want %s", b.Quantity, b.Status, ledger.StatusFor(b.Quantity))
		plan.Findings = append(plan.Findings, Finding{Kind: FindingStatusDrift, BookID: b.ID, Detail: reason})
		plan.Actions = append(plan.Actions, Action{Type: ActionSyncStatus, TargetID: b.ID, Reason: reason})
	}
	plan.Summary.StatusDrift = len(drifted)
	return nil
}

func planNegativeQuantity(db *gorm.DB, plan *Plan) error {
	var negative []ledger.Book
	if err := db.Where("quantity < 0").Order("id ASC").Find(&negative).Error; err != nil {
		return err
	}

	for _, b := range negative {
		plan.Findings = append(plan.Findings, Finding{
			Kind:   FindingNegativeQuantity,
			BookID: b.ID,
			Detail: fmt.Sprintf("quantity=%d", b.Quantity),
		})
	}
	plan.Summary.NegativeQuantity = len(negative)
	return nil
}

func planMissingFines(db *gorm.DB, plan *Plan) error {
	var late []ledger.BorrowRecord
	err := db.Where("returned_at IS NOT NULL AND returned_at > due_at").
		Where("NOT EXISTS (SELECT 1 FROM fines WHERE fines.borrow_record_id = borrow_records.id)").
		Order("id ASC").
		Find(&late).Error
	if err != nil {
		return err
	}

	for _, r := range late {
		reason := fmt.Sprintf("returned %s after due %s", r.ReturnedAt.UTC().Format("2006-01-02"), r.DueAt.UTC().Format("2006-01-02"))
		plan.Findings = append(plan.Findings, Finding{
			Kind:           FindingMissingFine,
			BookID:         r.BookID,
			UserID:         r.UserID,
			BorrowRecordID: r.ID,
			Detail:         reason,
		})
		plan.Actions = append(plan.Actions, Action{Type: ActionAssessFine, TargetID: r.ID, Reason: reason})
	}
	plan.Summary.MissingFines = len(late)
	return nil
}

func planDuplicatePending(db *gorm.DB, plan *Plan) error {
	var groups []map[string]any
	err := db.Model(&ledger.Reservation{}).
		Select("user_id, book_id, COUNT(*) AS pending").
		Where("status = ?", ledger.ReservationPending).
		Group("user_id, book_id").
		Having("COUNT(*) > 1").
		Order("book_id ASC, user_id ASC").
		Find(&groups).Error
	if err != nil {
		return err
	}

	for _, g := range groups {
		userID := uint(utils.ToInt64(g["user_id"]))
		bookID := uint(utils.ToInt64(g["book_id"]))

		var ids []uint
		if err := db.Model(&ledger.Reservation{}).
			Where("user_id = ? AND book_id = ? AND status = ?", userID, bookID, ledger.ReservationPending).
			Order("created_at ASC, id ASC").
			Pluck("id", &ids).Error; err != nil {
			return err
		}

		// The oldest entry keeps its place in the queue.
		for _, id := range ids[1:] {
			reason := fmt.Sprintf("user %d holds %d pending reservations of book %d", userID, utils.ToInt64(g["pending"]), bookID)
			plan.Findings = append(plan.Findings, Finding{
				Kind:          FindingDuplicatePending,
				BookID:        bookID,
				UserID:        userID,
				ReservationID: id,
				Detail:        reason,
			})
			plan.Actions = append(plan.Actions, Action{Type: ActionCancelDuplicate, TargetID: id, Reason: reason})
			plan.Summary.DuplicatePending++
		}
	}
	return nil
}

// Apply executes the actions of a plan and returns how many took effect.
// Requires opts.Confirmed=true and opts.DryRun=false to actually execute.
func (s *Service) Apply(ctx context.Context, plan *Plan, opts Options) (executed int, err error) {
	if !opts.Confirmed || opts.DryRun {
		return 0, nil
	}

	for _, action := range plan.Actions {
		applied, err := s.apply(ctx, action)
		if err != nil {
			return executed, fmt.Errorf("%s %d: %w", action.Type, action.TargetID, err)
		}
		if applied {
			executed++
			s.logger.Info("Audit repair applied",
				zap.String("type", string(action.Type)),
				zap.Uint("target_id", action.TargetID),
				zap.String("reason", action.Reason),
			)
		}
	}
	return executed, nil
}

func (s *Service) apply(ctx context.Context, action Action) (bool, error) {
	switch action.Type {
	case ActionSyncStatus:
		return s.syncer.SyncStatus(ctx, action.TargetID)

	case ActionAssessFine:
		var fine *ledger.Fine
		err := s.store.Transact(ctx, func(tx *gorm.DB) error {
			var record ledger.BorrowRecord
			err := tx.First(&record, action.TargetID).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			if err != nil {
				return err
			}
			if record.Open() {
				return nil
			}
			fine, err = s.assessor.Assess(tx, record, *record.ReturnedAt)
			return err
		})
		return fine != nil, err

	case ActionCancelDuplicate:
		err := s.canceller.Cancel(ctx, operator, action.TargetID)
		// Already cancelled or completed since the plan was built.
		if apperr.IsKind(err, apperr.Conflict) {
			return false, nil
		}
		return err == nil, err
	}

	return false, errors.New("unknown action type")
}
