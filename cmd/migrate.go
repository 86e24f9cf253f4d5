package cmd

import (
	"circulation/feature/ledger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// migrateCmd creates or updates the ledger tables.
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the ledger tables",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := bootstrap(cmd.Context(), ".")
		if err != nil {
			return err
		}
		defer svc.Close()

		if err := ledger.Migrate(cmd.Context(), svc.db); err != nil {
			return err
		}
		svc.logger.Info("Ledger schema migrated", zap.Int("tables", len(ledger.Models())))
		return nil
	},
}

func init() {
	RootCmd.AddCommand(migrateCmd)
}
