package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/rushmore-labs/rushseed/internal/config"
)

const configFileName = "rushseed.config.yaml"

// schemaContract is the fixed table layout the seeder targets. It is a
// given contract: rushseed fills these tables, it does not design them.
const schemaContract = `CREATE SCHEMA IF NOT EXISTS pizzeria;
SET search_path TO pizzeria;

CREATE TABLE IF NOT EXISTS stores (
    store_id     BIGSERIAL PRIMARY KEY,
    address      VARCHAR(255) NOT NULL,
    city         VARCHAR(100) NOT NULL,
    phone_number VARCHAR(20) NOT NULL UNIQUE,
    opened_at    TIMESTAMP WITH TIME ZONE NOT NULL
);

CREATE TABLE IF NOT EXISTS customers (
    customer_id  BIGSERIAL PRIMARY KEY,
    first_name   VARCHAR(100) NOT NULL,
    last_name    VARCHAR(100) NOT NULL,
    email        VARCHAR(255) NOT NULL UNIQUE,
    phone_number VARCHAR(30) NOT NULL UNIQUE,
    created_at   TIMESTAMP WITH TIME ZONE NOT NULL
);

CREATE TABLE IF NOT EXISTS ingredients (
    ingredient_id  BIGSERIAL PRIMARY KEY,
    name           VARCHAR(150) NOT NULL UNIQUE,
    stock_quantity NUMERIC(10, 2) NOT NULL CHECK (stock_quantity >= 0),
    unit           VARCHAR(20) NOT NULL
);

CREATE TABLE IF NOT EXISTS menu_items (
    item_id  BIGSERIAL PRIMARY KEY,
    name     VARCHAR(150) NOT NULL,
    category VARCHAR(50) NOT NULL,
    size     VARCHAR(20),
    price    NUMERIC(10, 2) NOT NULL CHECK (price > 0)
);

CREATE TABLE IF NOT EXISTS item_ingredients (
    item_id           BIGINT NOT NULL REFERENCES menu_items (item_id),
    ingredient_id     BIGINT NOT NULL REFERENCES ingredients (ingredient_id),
    quantity_required NUMERIC(10, 2) NOT NULL CHECK (quantity_required > 0),
    PRIMARY KEY (item_id, ingredient_id)
);

CREATE TABLE IF NOT EXISTS orders (
    order_id        BIGSERIAL PRIMARY KEY,
    customer_id     BIGINT REFERENCES customers (customer_id),
    store_id        BIGINT NOT NULL REFERENCES stores (store_id),
    order_timestamp TIMESTAMP WITH TIME ZONE NOT NULL,
    total_amount    NUMERIC(10, 2) NOT NULL,
    status          VARCHAR(20) NOT NULL
);

CREATE TABLE IF NOT EXISTS order_items (
    order_item_id          BIGSERIAL PRIMARY KEY,
    order_id               BIGINT NOT NULL REFERENCES orders (order_id),
    item_id                BIGINT NOT NULL REFERENCES menu_items (item_id),
    quantity               INTEGER NOT NULL CHECK (quantity > 0),
    price_at_time_of_order NUMERIC(10, 2) NOT NULL
);
`

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a starter config and the schema contract",
	Long: `Create rushseed.config.yaml with default connection parameters and
volumes, plus db/schema/schema.sql with the pizzeria schema the seeder
targets. Fails if a config file already exists.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := os.Stat(configFileName); err == nil {
			return fmt.Errorf("%s already exists", configFileName)
		}

		data, err := yaml.Marshal(config.DefaultConfig())
		if err != nil {
			return fmt.Errorf("failed to render default config: %w", err)
		}
		if err := os.WriteFile(configFileName, data, 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", configFileName, err)
		}

		schemaPath := filepath.Join("db", "schema", "schema.sql")
		if err := os.MkdirAll(filepath.Dir(schemaPath), 0755); err != nil {
			return fmt.Errorf("failed to create schema directory: %w", err)
		}
		if _, err := os.Stat(schemaPath); os.IsNotExist(err) {
			if err := os.WriteFile(schemaPath, []byte(schemaContract), 0644); err != nil {
				return fmt.Errorf("failed to write %s: %w", schemaPath, err)
			}
		}

		color.Green("✅ Wrote %s and %s", configFileName, schemaPath)
		color.Cyan("   Edit the database section, apply the schema, then run: rushseed seed")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
