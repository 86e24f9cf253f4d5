package cmd

import (
	"context"
	"errors"
	"fmt"
	"time"

	"circulation/core/identity"
	"circulation/feature/ledger"
	"circulation/feature/loans"
	"circulation/feature/reservations"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	printTokens bool
	tokenTTL    time.Duration
)

var demoUsers = []ledger.User{
	{Name: "Demo Admin", Email: "admin@demo.local", Role: identity.RoleAdmin},
	{Name: "Alice Demo", Email: "alice@demo.local", Role: identity.RoleUser},
	{Name: "Bob Demo", Email: "bob@demo.local", Role: identity.RoleUser},
	{Name: "Carol Demo", Email: "carol@demo.local", Role: identity.RoleUser},
}

var demoBooks = []ledger.Book{
	{Title: "The Great Gatsby", Author: "F. Scott Fitzgerald", ISBN: "9780743273565", Category: "Fiction", Quantity: 3},
	{Title: "1984", Author: "George Orwell", ISBN: "9780451524935", Category: "Dystopia", Quantity: 4},
	{Title: "Clean Code", Author: "Robert C. Martin", ISBN: "9780132350884", Category: "Programming", Quantity: 2},
}

// seedCmd loads the demo catalogue.
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load demo users, books, a loan and reservation queues",
	Long: `Inserts the demo users and books when missing, then lends Clean Code to
Alice and queues Bob and Carol behind her. Running it again changes nothing.

Examples:
  # Seed and print bearer tokens for the demo users
  seed --tokens`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		svc, err := bootstrap(ctx, ".")
		if err != nil {
			return err
		}
		defer svc.Close()

		if err := ledger.Migrate(ctx, svc.db); err != nil {
			return err
		}

		users := make(map[string]identity.Identity, len(demoUsers))
		for _, u := range demoUsers {
			row := u
			if err := svc.db.WithContext(ctx).Where(ledger.User{Email: u.Email}).FirstOrCreate(&row).Error; err != nil {
				return fmt.Errorf("seed user %s: %w", u.Email, err)
			}
			users[u.Email] = identity.Identity{UserID: row.ID, Role: row.Role}
		}

		books := make(map[string]uint, len(demoBooks))
		for _, b := range demoBooks {
			row := b
			row.Status = ledger.StatusFor(b.Quantity)
			if err := svc.db.WithContext(ctx).Where(ledger.Book{ISBN: b.ISBN}).FirstOrCreate(&row).Error; err != nil {
				return fmt.Errorf("seed book %s: %w", b.ISBN, err)
			}
			books[b.Title] = row.ID
		}
		svc.logger.Info("Catalogue seeded", zap.Int("users", len(users)), zap.Int("books", len(books)))

		if err := seedCirculation(ctx, svc, users, books); err != nil {
			return err
		}

		if printTokens {
			for _, u := range demoUsers {
				token, err := identity.Issue(svc.cfg.Auth, users[u.Email], tokenTTL)
				if err != nil {
					return err
				}
				fmt.Printf("%-18s %s\n", u.Email, token)
			}
		}
		return nil
	},
}

func seedCirculation(ctx context.Context, svc *services, users map[string]identity.Identity, books map[string]uint) error {
	alice := users["alice@demo.local"]
	cleanCode := books["Clean Code"]

	var open int64
	err := svc.db.WithContext(ctx).Model(&ledger.BorrowRecord{}).
		Where("user_id = ? AND book_id = ? AND returned_at IS NULL", alice.UserID, cleanCode).
		Count(&open).Error
	if err != nil {
		return err
	}
	if open == 0 {
		if _, err := svc.loans.Borrow(ctx, alice, loans.BorrowRequest{BookID: cleanCode}); err != nil {
			return fmt.Errorf("seed loan: %w", err)
		}
	}

	queue := []struct {
		email string
		title string
	}{
		{"bob@demo.local", "Clean Code"},
		{"carol@demo.local", "Clean Code"},
		{"bob@demo.local", "The Great Gatsby"},
	}
	for _, q := range queue {
		_, err := svc.reservations.Create(ctx, users[q.email], reservations.CreateRequest{BookID: books[q.title]})
		if err != nil && !errors.Is(err, reservations.ErrDuplicatePending) {
			return fmt.Errorf("seed reservation %s/%s: %w", q.email, q.title, err)
		}
	}
	return nil
}

func init() {
	seedCmd.Flags().BoolVar(&printTokens, "tokens", false, "Print a bearer token for every demo user")
	seedCmd.Flags().DurationVar(&tokenTTL, "token-ttl", 24*time.Hour, "Lifetime of the printed tokens")
	RootCmd.AddCommand(seedCmd)
}
