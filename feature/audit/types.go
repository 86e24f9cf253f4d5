package audit

// FindingKind names one class of circulation drift.
type FindingKind string

const (
	// FindingStatusDrift is a book whose status disagrees with its quantity.
	FindingStatusDrift FindingKind = "status_drift"
	// FindingNegativeQuantity is a book with fewer than zero copies on the shelf.
	FindingNegativeQuantity FindingKind = "negative_quantity"
	// FindingMissingFine is a late return that never received a fine.
	FindingMissingFine FindingKind = "missing_fine"
	// FindingDuplicatePending is a second pending reservation of one user for one book.
	FindingDuplicatePending FindingKind = "duplicate_pending"
)

// Finding is one detected inconsistency.
type Finding struct {
	Kind           FindingKind `json:"kind"`
	BookID         uint        `json:"book_id,omitempty"`
	UserID         uint        `json:"user_id,omitempty"`
	BorrowRecordID uint        `json:"borrow_record_id,omitempty"`
	ReservationID  uint        `json:"reservation_id,omitempty"`
	Detail         string      `json:"detail"`
}

// ActionType represents the type of repair action.
type ActionType string

const (
	// ActionSyncStatus rewrites a book's status from its quantity.
	ActionSyncStatus ActionType = "sync_status"
	// ActionAssessFine records the fine a late return should have produced.
	ActionAssessFine ActionType = "assess_fine"
	// ActionCancelDuplicate cancels a duplicate pending reservation.
	ActionCancelDuplicate ActionType = "cancel_duplicate"
)

// Action represents a planned repair.
type Action struct {
	Type     ActionType `json:"type"`
	TargetID uint       `json:"target_id"`
	Reason   string     `json:"reason"`
}

// Plan contains the findings of one audit run and the repairs they call for.
// Negative quantities have no automatic repair and only appear as findings.
type Plan struct {
	Findings []Finding `json:"findings"`
	Actions  []Action  `json:"actions"`
	Summary  Summary   `json:"summary"`
}

// Summary provides aggregate counts for a plan.
type Summary struct {
	Books            int `json:"books"`
	StatusDrift      int `json:"status_drift"`
	NegativeQuantity int `json:"negative_quantity"`
	MissingFines     int `json:"missing_fines"`
	DuplicatePending int `json:"duplicate_pending"`
}

// Clean reports whether the plan found nothing.
func (p *Plan) Clean() bool {
	return len(p.Findings) == 0
}

// Options controls whether Apply mutates anything.
type Options struct {
	// DryRun prevents execution of any repair if true.
	DryRun bool

	// Confirmed indicates the operator confirmed the repairs.
	// If false, nothing executes regardless of DryRun.
	Confirmed bool
}

// Report bundles the schema and circulation checks.
type Report struct {
	Schema      *SchemaReport `json:"schema,omitempty"`
	Circulation *Plan         `json:"circulation,omitempty"`
	Errors      []string      `json:"errors,omitempty"`
}
