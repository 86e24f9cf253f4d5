package cmd

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"circulation/feature/audit"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	fixCirculation    bool
	dryRunCirculation bool
	yesConfirm        bool
	jsonOutput        bool
)

// auditCmd is the parent command for all audit operations.
var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Audit the circulation ledger",
	Long:  `Checks the database schema and the circulation ledger for drift.`,
}

// schemaAuditCmd compares the live schema with the models.
var schemaAuditCmd = &cobra.Command{
	Use:   "schema",
	Short: "Check that every ledger table and column exists",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := bootstrap(cmd.Context(), ".")
		if err != nil {
			return err
		}
		defer svc.Close()

		report, err := svc.audit.CheckSchema(cmd.Context())
		if err != nil {
			return fmt.Errorf("schema check failed: %w", err)
		}
		if jsonOutput {
			return printJSON(report)
		}

		for name, tbl := range report.Tables {
			if tbl.Status == "ok" {
				continue
			}
			svc.logger.Warn("Table drift",
				zap.String("table", name),
				zap.String("status", tbl.Status),
				zap.Strings("missing_columns", tbl.MissingColumns),
				zap.Strings("type_mismatches", tbl.TypeMismatches),
			)
		}
		svc.logger.Info("Schema report", zap.Bool("matched", report.Matched), zap.Int("tables", len(report.Tables)))
		if !report.Matched {
			return fmt.Errorf("schema does not match the models; run migrate")
		}
		return nil
	},
}

// circulationAuditCmd plans and optionally applies circulation repairs.
var circulationAuditCmd = &cobra.Command{
	Use:   "circulation",
	Short: "Detect and optionally repair circulation drift",
	Long: `Detects books whose status disagrees with their quantity, negative
quantities, late returns without a fine and duplicate pending reservations.

Examples:
  # Report only
  audit circulation

  # Repair with interactive confirmation
  audit circulation --fix

  # Repair non-interactively
  audit circulation --fix --yes`,
	RunE: runCirculationAudit,
}

func init() {
	auditCmd.AddCommand(schemaAuditCmd)
	auditCmd.AddCommand(circulationAuditCmd)

	auditCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Print the report as JSON")
	circulationAuditCmd.Flags().BoolVar(&fixCirculation, "fix", false, "Apply the planned repairs")
	circulationAuditCmd.Flags().BoolVar(&dryRunCirculation, "dry-run", false, "Force dry-run (no mutations even with --yes)")
	circulationAuditCmd.Flags().BoolVar(&yesConfirm, "yes", false, "Auto-confirm repairs (non-interactive)")

	RootCmd.AddCommand(auditCmd)
}

func runCirculationAudit(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	svc, err := bootstrap(ctx, ".")
	if err != nil {
		return err
	}
	defer svc.Close()
	l := svc.logger

	plan, err := svc.audit.PlanCirculation(ctx)
	if err != nil {
		return fmt.Errorf("failed to plan audit: %w", err)
	}

	if jsonOutput {
		if err := printJSON(plan); err != nil {
			return err
		}
	} else {
		printAuditReport(l, plan)
	}

	if !fixCirculation {
		if len(plan.Actions) > 0 {
			l.Info("No repairs requested. Use --fix to apply the planned actions.")
		}
		return nil
	}
	if len(plan.Actions) == 0 {
		l.Info("No repairs required.")
		return nil
	}
	if dryRunCirculation {
		l.Info("Dry-run mode: No changes were made.")
		return nil
	}

	if !confirmRepair() {
		l.Warn("Operation cancelled by user. No changes were made.")
		return nil
	}

	executed, err := svc.audit.Apply(ctx, plan, audit.Options{Confirmed: true})
	if err != nil {
		return fmt.Errorf("failed to apply plan after %d repairs: %w", executed, err)
	}
	l.Info("Successfully executed repairs", zap.Int("count", executed))
	return nil
}

// printAuditReport prints a formatted audit report using logger.
func printAuditReport(l *zap.Logger, plan *audit.Plan) {
	s := plan.Summary
	l.Info("Circulation report",
		zap.Int("books", s.Books),
		zap.Int("status_drift", s.StatusDrift),
		zap.Int("negative_quantity", s.NegativeQuantity),
		zap.Int("missing_fines", s.MissingFines),
		zap.Int("duplicate_pending", s.DuplicatePending),
	)

	const maxShow = 5
	for i, f := range plan.Findings {
		if i == maxShow {
			l.Info("Additional findings not shown", zap.Int("count", len(plan.Findings)-maxShow))
			break
		}
		l.Info("Finding",
			zap.String("kind", string(f.Kind)),
			zap.Uint("book_id", f.BookID),
			zap.String("detail", f.Detail),
		)
	}
}

// confirmRepair prompts the user for confirmation or uses --yes flag.
func confirmRepair() bool {
	if yesConfirm {
		fmt.Println("\nAuto-confirmed via --yes flag")
		return true
	}

	fmt.Print("\nType 'yes' to apply the repairs: ")
	reader := bufio.NewReader(os.Stdin)
	response, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	return strings.TrimSpace(response) == "yes"
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
