package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/jackc/pgx/v5"
	"github.com/spf13/cobra"

	"github.com/rushmore-labs/rushseed/internal/config"
	"github.com/rushmore-labs/rushseed/internal/database"
	"github.com/rushmore-labs/rushseed/internal/seeder"
)

var (
	seedStores      int
	seedCustomers   int
	seedIngredients int
	seedMenuItems   int
	seedOrders      int
	seedSeed        int64
	seedBatch       int
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Generate and load synthetic pizzeria data",
	Long: `Generate synthetic rows for every table of the pizzeria schema and
load them in foreign-key dependency order. The whole run happens inside
a single transaction: on any failure the database is left untouched.

Record counts come from the config file and can be overridden per table
with flags. Pass --seed to make the run reproducible.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		applyVolumeFlags(cmd, cfg)
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid config: %w", err)
		}

		return runSeed(cmd.Context(), cfg)
	},
}

func applyVolumeFlags(cmd *cobra.Command, cfg *config.Config) {
	if cmd.Flags().Changed("stores") {
		cfg.Volumes.Stores = seedStores
	}
	if cmd.Flags().Changed("customers") {
		cfg.Volumes.Customers = seedCustomers
	}
	if cmd.Flags().Changed("ingredients") {
		cfg.Volumes.Ingredients = seedIngredients
	}
	if cmd.Flags().Changed("menu-items") {
		cfg.Volumes.MenuItems = seedMenuItems
	}
	if cmd.Flags().Changed("orders") {
		cfg.Volumes.Orders = seedOrders
	}
	if cmd.Flags().Changed("seed") {
		cfg.Seed = seedSeed
	}
	if cmd.Flags().Changed("batch") {
		cfg.BatchSize = seedBatch
	}
}

func runSeed(ctx context.Context, cfg *config.Config) error {
	gen := seeder.NewDataGenerator(cfg.Seed)
	pipe, err := seeder.NewPipeline(gen, seeder.Volumes{
		Stores:        cfg.Volumes.Stores,
		Customers:     cfg.Volumes.Customers,
		Ingredients:   cfg.Volumes.Ingredients,
		MenuItems:     cfg.Volumes.MenuItems,
		Orders:        cfg.Volumes.Orders,
		MinOrderItems: cfg.Volumes.MinOrderItems,
		MaxOrderItems: cfg.Volumes.MaxOrderItems,
	})
	if err != nil {
		return err
	}

	db, err := database.Connect(ctx, databaseConfig(cfg))
	if err != nil {
		return err
	}
	defer db.Close()

	color.Cyan("🌱 Seeding %s at %s (seed %d)", cfg.Database.DBName, cfg.Database.Host, gen.Seed())
	color.Cyan("📋 Stage order: %s", strings.Join(pipe.StageNames(), " → "))

	var result *seeder.Result
	err = database.NewTxRunner(db).WithinTx(ctx, func(tx pgx.Tx) error {
		var runErr error
		result, runErr = pipe.Run(ctx, seeder.NewPgxLoader(tx, cfg.BatchSize))
		return runErr
	})
	pipe.Finish(err)

	if err != nil {
		var stageErr *seeder.StageError
		if errors.As(err, &stageErr) {
			color.Red("✗ Run %s at stage %s: %v", pipe.State(), stageErr.Stage, stageErr.Err)
		} else {
			color.Red("✗ Run %s: %v", pipe.State(), err)
		}
		return err
	}

	color.Green("✅ Run committed")
	for _, name := range pipe.StageNames() {
		color.Green("   %-17s %d rows", name, result.Counts[name])
	}
	color.Cyan("🔁 Replay this run with --seed %d", result.Seed)
	return nil
}

func databaseConfig(cfg *config.Config) database.Config {
	return database.Config{
		Host:     cfg.Database.Host,
		Port:     cfg.Database.Port,
		User:     cfg.Database.User,
		Password: cfg.Database.Password,
		DBName:   cfg.Database.DBName,
		Schema:   cfg.Database.Schema,
		SSLMode:  cfg.Database.SSLMode,
	}
}

func init() {
	rootCmd.AddCommand(seedCmd)
	seedCmd.Flags().IntVar(&seedStores, "stores", 0, "Number of stores to create")
	seedCmd.Flags().IntVar(&seedCustomers, "customers", 0, "Number of customers to create")
	seedCmd.Flags().IntVar(&seedIngredients, "ingredients", 0, "Number of ingredients to create")
	seedCmd.Flags().IntVar(&seedMenuItems, "menu-items", 0, "Number of menu items to create")
	seedCmd.Flags().IntVar(&seedOrders, "orders", 0, "Number of orders to create")
	seedCmd.Flags().Int64Var(&seedSeed, "seed", 0, "Random seed for a reproducible run (0 picks one)")
	seedCmd.Flags().IntVar(&seedBatch, "batch", 0, "Rows per INSERT batch")
}
