package ledger

import "time"

const (
	StatusAvailable = "available"
	StatusBorrowed  = "borrowed"
)

const (
	ReservationPending   = "pending"
	ReservationCancelled = "cancelled"
	ReservationCompleted = "completed"
)

// StatusFor derives a book's status from its on-shelf quantity.
// Every write of books.quantity writes this value alongside it.
func StatusFor(quantity int) string {
	if quantity <= 0 {
		return StatusBorrowed
	}
	return StatusAvailable
}

// Book is a catalogue entry. Quantity counts on-shelf copies.
type Book struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Title     string    `gorm:"size:255;not null" json:"title"`
	Author    string    `gorm:"size:255;not null" json:"author"`
	ISBN      string    `gorm:"column:isbn;size:32;uniqueIndex;not null" json:"isbn"`
	Category  string    `gorm:"size:100;index" json:"category"`
	Quantity  int       `gorm:"not null" json:"quantity"`
	Status    string    `gorm:"size:16;not null" json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Book) TableName() string { return "books" }

// BorrowRecord is one loan. It is open while ReturnedAt is nil.
type BorrowRecord struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	UserID     uint       `gorm:"not null;index:idx_borrow_user_book" json:"user_id"`
	BookID     uint       `gorm:"not null;index:idx_borrow_user_book;index" json:"book_id"`
	BorrowedAt time.Time  `gorm:"not null" json:"borrowed_at"`
	DueAt      time.Time  `gorm:"not null;index" json:"due_at"`
	ReturnedAt *time.Time `json:"returned_at,omitempty"`
}

func (BorrowRecord) TableName() string { return "borrow_records" }

// Open reports whether the loan has not been returned.
func (r BorrowRecord) Open() bool {
	return r.ReturnedAt == nil
}

// Reservation is a place in a book's waiting queue.
type Reservation struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	UserID       uint      `gorm:"not null;index:idx_reservation_user_book" json:"user_id"`
	BookID       uint      `gorm:"not null;index:idx_reservation_user_book;index:idx_reservation_queue,priority:1" json:"book_id"`
	Status       string    `gorm:"size:16;not null;index:idx_reservation_queue,priority:2" json:"status"`
	StartDate    time.Time `json:"start_date"`
	EndDate      time.Time `json:"end_date"`
	DurationDays int       `json:"duration_days"`
	CreatedAt    time.Time `gorm:"index:idx_reservation_queue,priority:3" json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (Reservation) TableName() string { return "reservations" }

// Fine is the penalty for one late return.
type Fine struct {
	ID              uint       `gorm:"primaryKey" json:"id"`
	UserID          uint       `gorm:"not null;index" json:"user_id"`
	BorrowRecordID  uint       `gorm:"not null;uniqueIndex" json:"borrow_record_id"`
	DaysOverdue     int        `gorm:"not null" json:"days_overdue"`
	AmountCents     int64      `gorm:"not null" json:"amount_cents"`
	Paid            bool       `gorm:"not null;default:false" json:"paid"`
	PaidAmountCents *int64     `json:"paid_amount_cents,omitempty"`
	PaidAt          *time.Time `json:"paid_at,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
}

func (Fine) TableName() string { return "fines" }

// User is the read-only view of accounts owned by the authentication service.
type User struct {
	ID    uint   `gorm:"primaryKey" json:"id"`
	Name  string `gorm:"size:255;not null" json:"name"`
	Email string `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Role  string `gorm:"size:32;not null" json:"role"`
}

func (User) TableName() string { return "users" }

// Models lists every table the circulation service migrates.
func Models() []any {
	return []any{&User{}, &Book{}, &BorrowRecord{}, &Reservation{}, &Fine{}}
}
