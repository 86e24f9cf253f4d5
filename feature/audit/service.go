package audit

import (
	"context"
	"time"

	"circulation/core/identity"
	"circulation/feature/ledger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// StatusSyncer rewrites a book's status from its quantity under the book lock.
type StatusSyncer interface {
	SyncStatus(ctx context.Context, bookID uint) (bool, error)
}

// FineAssessor records the fine of a late loan inside a transaction.
type FineAssessor interface {
	Assess(tx *gorm.DB, record ledger.BorrowRecord, now time.Time) (*ledger.Fine, error)
}

// ReservationCanceller withdraws a pending reservation.
type ReservationCanceller interface {
	Cancel(ctx context.Context, who identity.Identity, reservationID uint) error
}

// operator is the identity repairs run as.
var operator = identity.Identity{Role: identity.RoleAdmin}

// Service audits the circulation ledger.
type Service struct {
	store     *ledger.Store
	syncer    StatusSyncer
	assessor  FineAssessor
	canceller ReservationCanceller
	logger    *zap.Logger
}

// NewService creates a new audit service. Repairs go through the same
// managers that serve requests.
func NewService(store *ledger.Store, syncer StatusSyncer, assessor FineAssessor, canceller ReservationCanceller, logger *zap.Logger) *Service {
	return &Service{
		store:     store,
		syncer:    syncer,
		assessor:  assessor,
		canceller: canceller,
		logger:    logger,
	}
}

// CheckSchema compares the live ledger tables with the models.
func (s *Service) CheckSchema(ctx context.Context) (*SchemaReport, error) {
	var report *SchemaReport
	err := s.store.Read(ctx, func(db *gorm.DB) error {
		var err error
		report, err = CheckSchema(db, ledger.Models())
		return err
	})
	if err != nil {
		return nil, err
	}
	return report, nil
}

// Run performs every check. A failing check is reported in Errors and does
// not stop the others.
func (s *Service) Run(ctx context.Context) *Report {
	report := &Report{}

	if schema, err := s.CheckSchema(ctx); err != nil {
		report.Errors = append(report.Errors, "schema: "+err.Error())
	} else {
		report.Schema = schema
	}

	if plan, err := s.PlanCirculation(ctx); err != nil {
		report.Errors = append(report.Errors, "circulation: "+err.Error())
	} else {
		report.Circulation = plan
	}

	return report
}
