package reservations

import (
	"context"
	"errors"
	"time"

	"circulation/core/identity"
	"circulation/core/policy"
	"circulation/core/validation"
	"circulation/feature/availability"
	"circulation/feature/ledger"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CreateRequest asks for a place in a book's queue. Without dates the window
// starts now; with only a start it lasts the default window.
type CreateRequest struct {
	BookID    uint       `json:"book_id" validate:"required,gt=0"`
	StartDate *time.Time `json:"start_date,omitempty" validate:"required_with=EndDate"`
	EndDate   *time.Time `json:"end_date,omitempty" validate:"omitempty,gtefield=StartDate"`
}

// ListFilter narrows a reservation listing.
type ListFilter struct {
	Status string `json:"status" validate:"omitempty,oneof=pending cancelled completed"`
}

// Availability answers whether reserving a book is meaningful.
type Availability struct {
	BookID     uint  `json:"book_id"`
	Available  int64 `json:"available"`
	Pending    int64 `json:"pending"`
	CanReserve bool  `json:"can_reserve"`
}

// Manager maintains the per-book FIFO queues. It is the only writer of the
// reservations table.
type Manager struct {
	store  *ledger.Store
	policy policy.Config
	logger *zap.Logger
}

// NewManager creates a reservation queue manager.
func NewManager(store *ledger.Store, pol policy.Config, logger *zap.Logger) *Manager {
	return &Manager{store: store, policy: pol, logger: logger}
}

// Create queues the caller for a book. There is no capacity gate: a
// reservation may be created even when every copy is out.
func (m *Manager) Create(ctx context.Context, who identity.Identity, req CreateRequest) (*View, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	now := m.store.Now()
	start, end := m.window(now, req)
	res := ledger.Reservation{
		UserID:       who.UserID,
		BookID:       req.BookID,
		Status:       ledger.ReservationPending,
		StartDate:    start,
		EndDate:      end,
		DurationDays: int(end.Sub(start).Hours() / 24),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	var position int
	err := m.store.Transact(ctx, func(tx *gorm.DB) error {
		// The book lock serialises the uniqueness check below.
		if _, err := ledger.LockBook(tx, req.BookID); err != nil {
			return err
		}

		var pending int64
		if err := tx.Model(&ledger.Reservation{}).
			Where("user_id = ? AND book_id = ? AND status = ?", who.UserID, req.BookID, ledger.ReservationPending).
			Count(&pending).Error; err != nil {
			return err
		}
		if pending > 0 {
			return ErrDuplicatePending
		}

		if err := tx.Create(&res).Error; err != nil {
			return err
		}

		var ahead int64
		if err := tx.Model(&ledger.Reservation{}).
			Where("book_id = ? AND status = ? AND id <> ?", req.BookID, ledger.ReservationPending, res.ID).
			Count(&ahead).Error; err != nil {
			return err
		}
		position = int(ahead) + 1
		return nil
	})
	if err != nil {
		return nil, err
	}

	m.logger.Info("Reservation created",
		zap.Uint("reservation_id", res.ID),
		zap.Uint("user_id", res.UserID),
		zap.Uint("book_id", res.BookID),
		zap.Int("position", position),
	)
	return &View{Reservation: res, Position: &position}, nil
}

func (m *Manager) window(now time.Time, req CreateRequest) (time.Time, time.Time) {
	if req.StartDate == nil {
		return now, now.Add(m.policy.ReservationWindow())
	}
	start := req.StartDate.UTC()
	if req.EndDate == nil {
		return start, start.Add(m.policy.ReservationWindow())
	}
	return start, req.EndDate.UTC()
}

// Cancel withdraws a pending reservation. The row is kept as history and no
// other reservation is touched.
func (m *Manager) Cancel(ctx context.Context, who identity.Identity, reservationID uint) error {
	now := m.store.Now()

	err := m.store.Transact(ctx, func(tx *gorm.DB) error {
		var res ledger.Reservation
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&res, reservationID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrReservationNotFound
		}
		if err != nil {
			return err
		}

		if !who.Owns(res.UserID) {
			return ErrForbidden
		}
		if res.Status != ledger.ReservationPending {
			return ErrNotPending
		}

		return tx.Model(&ledger.Reservation{}).Where("id = ?", res.ID).Updates(map[string]any{
			"status":     ledger.ReservationCancelled,
			"updated_at": now,
		}).Error
	})
	if err != nil {
		return err
	}

	m.logger.Info("Reservation cancelled",
		zap.Uint("reservation_id", reservationID),
		zap.Uint("by_user_id", who.UserID),
		zap.String("role", who.Role),
	)
	return nil
}

// Fulfill completes userID's pending reservation for bookID inside the
// caller's transaction. It reports whether a reservation was completed.
func (m *Manager) Fulfill(tx *gorm.DB, userID, bookID uint, now time.Time) (bool, error) {
	result := tx.Model(&ledger.Reservation{}).
		Where("user_id = ? AND book_id = ? AND status = ?", userID, bookID, ledger.ReservationPending).
		Updates(map[string]any{
			"status":     ledger.ReservationCompleted,
			"updated_at": now,
		})
	if result.Error != nil {
		return false, result.Error
	}
	if result.RowsAffected > 0 {
		m.logger.Info("Reservation fulfilled", zap.Uint("user_id", userID), zap.Uint("book_id", bookID))
	}
	return result.RowsAffected > 0, nil
}

// CheckAvailability reports free copies, queue length and whether a new
// reservation could be served.
func (m *Manager) CheckAvailability(ctx context.Context, bookID uint) (*Availability, error) {
	var snap availability.Snapshot
	err := m.store.Read(ctx, func(db *gorm.DB) error {
		var err error
		snap, err = availability.Calculate(db, bookID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &Availability{
		BookID:     bookID,
		Available:  snap.Available(),
		Pending:    snap.Pending,
		CanReserve: snap.CanReserve(),
	}, nil
}
