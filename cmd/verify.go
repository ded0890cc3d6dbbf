package cmd

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/fatih/color"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"github.com/rushmore-labs/rushseed/internal/config"
	"github.com/rushmore-labs/rushseed/internal/database"
)

// totalTolerance absorbs decimal rounding when comparing a stored order
// total against the sum of its line items.
const totalTolerance = 0.005

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Check a seeded database for consistency",
	Long: `Run read-only consistency checks over a seeded database:

- unique-constrained values (store phones, customer emails and phones,
  ingredient names) contain no duplicates
- every order item has a positive quantity
- every order's total matches the sum of its line items
- row counts per table

The command reports each check and exits non-zero if any fails.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid config: %w", err)
		}

		ctx := cmd.Context()
		db, err := database.Connect(ctx, databaseConfig(cfg))
		if err != nil {
			return err
		}
		defer db.Close()

		return runVerify(ctx, db.Pool())
	},
}

func runVerify(ctx context.Context, pool *pgxpool.Pool) error {
	qb := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	failures := 0

	uniqueColumns := []struct{ table, column string }{
		{"stores", "phone_number"},
		{"customers", "email"},
		{"customers", "phone_number"},
		{"ingredients", "name"},
	}
	for _, uc := range uniqueColumns {
		dupes, err := countDuplicates(ctx, pool, qb, uc.table, uc.column)
		if err != nil {
			return err
		}
		failures += report(fmt.Sprintf("%s.%s unique", uc.table, uc.column), dupes)
	}

	badQuantities, err := countWhere(ctx, pool, qb.Select("COUNT(*)").From("order_items").Where("quantity <= 0"))
	if err != nil {
		return err
	}
	failures += report("order_items.quantity > 0", badQuantities)

	badTotals, err := countMismatchedTotals(ctx, pool)
	if err != nil {
		return err
	}
	failures += report("orders.total_amount matches line items", badTotals)

	for _, table := range []string{"stores", "customers", "ingredients", "menu_items", "item_ingredients", "orders", "order_items"} {
		count, err := countWhere(ctx, pool, qb.Select("COUNT(*)").From(table))
		if err != nil {
			return err
		}
		color.Cyan("   %-17s %d rows", table, count)
	}

	if failures > 0 {
		return fmt.Errorf("%d consistency check(s) failed", failures)
	}
	color.Green("✅ All consistency checks passed")
	return nil
}

func report(check string, violations int64) int {
	if violations > 0 {
		color.Red("✗ %s: %d violation(s)", check, violations)
		return 1
	}
	color.Green("✓ %s", check)
	return 0
}

func countDuplicates(ctx context.Context, pool *pgxpool.Pool, qb squirrel.StatementBuilderType, table, column string) (int64, error) {
	inner, _, err := qb.Select(column).From(table).GroupBy(column).Having("COUNT(*) > 1").ToSql()
	if err != nil {
		return 0, err
	}

	var dupes int64
	query := fmt.Sprintf("SELECT COUNT(*) FROM (%s) AS dupes", inner)
	if err := pool.QueryRow(ctx, query).Scan(&dupes); err != nil {
		return 0, fmt.Errorf("duplicate check on %s.%s: %w", table, column, err)
	}
	return dupes, nil
}

func countWhere(ctx context.Context, pool *pgxpool.Pool, builder squirrel.SelectBuilder) (int64, error) {
	query, args, err := builder.ToSql()
	if err != nil {
		return 0, err
	}

	var count int64
	if err := pool.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("count query failed: %w", err)
	}
	return count, nil
}

func countMismatchedTotals(ctx context.Context, pool *pgxpool.Pool) (int64, error) {
	query := `
		SELECT COUNT(*)
		FROM orders o
		JOIN (
			SELECT order_id, SUM(quantity * price_at_time_of_order) AS line_total
			FROM order_items
			GROUP BY order_id
		) li ON li.order_id = o.order_id
		WHERE ABS(o.total_amount - li.line_total) > $1`

	var mismatched int64
	if err := pool.QueryRow(ctx, query, totalTolerance).Scan(&mismatched); err != nil {
		return 0, fmt.Errorf("order total check: %w", err)
	}
	return mismatched, nil
}

func init() {
	rootCmd.AddCommand(verifyCmd)
}
