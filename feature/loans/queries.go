package loans

import (
	"context"
	"time"

	"circulation/core/identity"

	"gorm.io/gorm"
)

// LoanView is a borrow record with its book title.
type LoanView struct {
	ID         uint       `json:"id"`
	BookID     uint       `json:"book_id"`
	BookTitle  string     `json:"book_title"`
	BorrowedAt time.Time  `json:"borrowed_at"`
	DueAt      time.Time  `json:"due_date"`
	ReturnedAt *time.Time `json:"returned_at,omitempty"`
	Overdue    bool       `json:"overdue"`
}

// ListLoans returns the caller's loans, most recent first.
func (m *Manager) ListLoans(ctx context.Context, who identity.Identity, openOnly bool) ([]LoanView, error) {
	out := []LoanView{}
	err := m.store.Read(ctx, func(db *gorm.DB) error {
		q := db.Table("borrow_records AS br").
			Select("br.id, br.book_id, b.title AS book_title, br.borrowed_at, br.due_at, br.returned_at").
			Joins("JOIN books AS b ON b.id = br.book_id").
			Where("br.user_id = ?", who.UserID)
		if openOnly {
			q = q.Where("br.returned_at IS NULL")
		}
		return q.Order("br.borrowed_at DESC, br.id DESC").Scan(&out).Error
	})
	if err != nil {
		return nil, err
	}

	now := m.store.Now()
	for i := range out {
		out[i].Overdue = out[i].ReturnedAt == nil && out[i].DueAt.Before(now)
	}
	return out, nil
}
