package availability

import (
	"circulation/feature/ledger"

	"gorm.io/gorm"
)

// Snapshot is the availability of one book at a point in time.
type Snapshot struct {
	BookID    uint
	Quantity  int
	OpenLoans int64
	Pending   int64
}

// Available is the quantity minus open loans, never negative.
func (s Snapshot) Available() int64 {
	return max(0, int64(s.Quantity)-s.OpenLoans)
}

// CanReserve reports whether a free copy remains after serving the queue.
func (s Snapshot) CanReserve() bool {
	return s.Available()-s.Pending > 0
}

// Calculate reads a snapshot through db, honouring the context already bound
// to it. Pass the transaction handle when the result feeds a decision made in
// that transaction.
func Calculate(db *gorm.DB, bookID uint) (Snapshot, error) {
	book, err := ledger.FindBook(db, bookID)
	if err != nil {
		return Snapshot{}, err
	}

	snap := Snapshot{BookID: book.ID, Quantity: book.Quantity}

	if err := db.Model(&ledger.BorrowRecord{}).
		Where("book_id = ? AND returned_at IS NULL", bookID).
		Count(&snap.OpenLoans).Error; err != nil {
		return Snapshot{}, err
	}

	if err := db.Model(&ledger.Reservation{}).
		Where("book_id = ? AND status = ?", bookID, ledger.ReservationPending).
		Count(&snap.Pending).Error; err != nil {
		return Snapshot{}, err
	}

	return snap, nil
}
