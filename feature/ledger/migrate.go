package ledger

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

// Migrate creates or updates every ledger table.
func Migrate(ctx context.Context, db *gorm.DB) error {
	if err := db.WithContext(ctx).AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("migrate ledger: %w", err)
	}
	return nil
}
