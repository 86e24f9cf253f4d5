package cmd

import (
	"context"
	"fmt"

	"circulation/core/config"
	"circulation/core/database"
	"circulation/core/logger"
	"circulation/core/storage"
	"circulation/feature/audit"
	"circulation/feature/fines"
	"circulation/feature/ledger"
	"circulation/feature/loans"
	"circulation/feature/recommendations"
	"circulation/feature/reservations"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// services is the wired circulation core shared by every command.
type services struct {
	cfg    *config.Config
	logger *zap.Logger
	db     *gorm.DB
	store  *ledger.Store

	fines           *fines.Ledger
	reservations    *reservations.Manager
	loans           *loans.Manager
	recommendations *recommendations.Engine
	audit           *audit.Service
}

// bootstrap loads configuration from path and wires the managers over one
// database connection.
func bootstrap(ctx context.Context, path string) (*services, error) {
	cfg, err := config.LoadConfig(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	logg, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	db, err := database.Connect(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	logg = logg.With(zap.String("driver", cfg.Database.Driver))

	var archive fines.Archive
	if cfg.Storage.Receipts {
		client, err := storage.NewClient(cfg.Storage)
		if err != nil {
			_ = database.Close(db)
			return nil, fmt.Errorf("failed to create storage client: %w", err)
		}
		if err := storage.EnsureBucket(ctx, client, cfg.Storage.Bucket, cfg.Storage.Region); err != nil {
			_ = database.Close(db)
			return nil, err
		}
		archive = fines.NewBucketArchive(client, cfg.Storage.Bucket)
		logg.Info("Receipt archive enabled", zap.String("bucket", cfg.Storage.Bucket))
	}

	store := ledger.NewStore(db, cfg.Database.QueryTimeout())
	fl := fines.NewLedger(store, cfg.Lending, archive, logg)
	rm := reservations.NewManager(store, cfg.Lending, logg)
	lm := loans.NewManager(store, fl, rm, cfg.Lending, logg)
	engine := recommendations.NewEngine(store, cfg.Lending)
	lm.OnBorrow(engine.Invalidate)

	return &services{
		cfg:             cfg,
		logger:          logg,
		db:              db,
		store:           store,
		fines:           fl,
		reservations:    rm,
		loans:           lm,
		recommendations: engine,
		audit:           audit.NewService(store, lm, fl, rm, logg),
	}, nil
}

// Close releases the database connection and flushes the logger.
func (s *services) Close() {
	if err := database.Close(s.db); err != nil {
		s.logger.Warn("Failed to close database", zap.Error(err))
	}
	_ = s.logger.Sync()
}
