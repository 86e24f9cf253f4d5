package reservations

import (
	"context"
	"time"

	"circulation/core/identity"
	"circulation/core/validation"
	"circulation/feature/ledger"

	"github.com/samber/lo"
	"gorm.io/gorm"
)

// QueueEntry is one pending reservation in a book's queue.
type QueueEntry struct {
	ReservationID uint      `json:"reservation_id"`
	UserID        uint      `json:"user_id"`
	UserName      string    `json:"user_name"`
	Position      int       `json:"position"`
	CreatedAt     time.Time `json:"created_at"`
}

// View is a reservation as returned to callers. Position is set for pending
// reservations only.
type View struct {
	ledger.Reservation
	BookTitle string `json:"book_title,omitempty"`
	Position  *int   `json:"position,omitempty"`
}

// pendingIDs returns the pending reservation ids of each book in queue order.
func pendingIDs(db *gorm.DB, bookIDs []uint) (map[uint][]uint, error) {
	var rows []ledger.Reservation
	if err := db.Select("id", "book_id").
		Where("book_id IN ? AND status = ?", bookIDs, ledger.ReservationPending).
		Order("created_at ASC, id ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	queues := make(map[uint][]uint, len(bookIDs))
	for _, r := range rows {
		queues[r.BookID] = append(queues[r.BookID], r.ID)
	}
	return queues, nil
}

// Queue lists a book's pending reservations in FIFO order.
// Positions are ranks computed on read.
func (m *Manager) Queue(ctx context.Context, bookID uint) ([]QueueEntry, error) {
	out := []QueueEntry{}
	err := m.store.Read(ctx, func(db *gorm.DB) error {
		if _, err := ledger.FindBook(db, bookID); err != nil {
			return err
		}
		return db.Table("reservations AS r").
			Select("r.id AS reservation_id, r.user_id, COALESCE(u.name, '') AS user_name, r.created_at").
			Joins("LEFT JOIN users AS u ON u.id = r.user_id").
			Where("r.book_id = ? AND r.status = ?", bookID, ledger.ReservationPending).
			Order("r.created_at ASC, r.id ASC").
			Scan(&out).Error
	})
	if err != nil {
		return nil, err
	}
	for i := range out {
		out[i].Position = i + 1
	}
	return out, nil
}

// List returns reservations newest first: every user's for elevated callers,
// the caller's own otherwise.
func (m *Manager) List(ctx context.Context, who identity.Identity, filter ListFilter) ([]View, error) {
	if err := validation.Struct(filter); err != nil {
		return nil, err
	}

	var rows []ledger.Reservation
	var titles map[uint]string
	var queues map[uint][]uint

	err := m.store.Read(ctx, func(db *gorm.DB) error {
		q := db.Order("created_at DESC, id DESC")
		if !who.IsElevated() {
			q = q.Where("user_id = ?", who.UserID)
		}
		if filter.Status != "" {
			q = q.Where("status = ?", filter.Status)
		}
		if err := q.Find(&rows).Error; err != nil {
			return err
		}
		if len(rows) == 0 {
			return nil
		}

		bookIDs := lo.Uniq(lo.Map(rows, func(r ledger.Reservation, _ int) uint { return r.BookID }))

		var books []ledger.Book
		if err := db.Select("id", "title").Where("id IN ?", bookIDs).Find(&books).Error; err != nil {
			return err
		}
		titles = lo.SliceToMap(books, func(b ledger.Book) (uint, string) { return b.ID, b.Title })

		var err error
		queues, err = pendingIDs(db, bookIDs)
		return err
	})
	if err != nil {
		return nil, err
	}

	return lo.Map(rows, func(r ledger.Reservation, _ int) View {
		v := View{Reservation: r, BookTitle: titles[r.BookID]}
		if r.Status == ledger.ReservationPending {
			if idx := lo.IndexOf(queues[r.BookID], r.ID); idx >= 0 {
				pos := idx + 1
				v.Position = &pos
			}
		}
		return v
	}), nil
}
