package config

import (
	"fmt"

	"github.com/spf13/viper"
)

type Config struct {
	Database  DatabaseConfig `json:"database" yaml:"database" mapstructure:"database"`
	Volumes   VolumeConfig   `json:"volumes" yaml:"volumes" mapstructure:"volumes"`
	Seed      int64          `json:"seed" yaml:"seed" mapstructure:"seed"`
	BatchSize int            `json:"batch_size" yaml:"batch_size" mapstructure:"batch_size"`
}

type DatabaseConfig struct {
	Host     string `json:"host" yaml:"host" mapstructure:"host"`
	Port     int    `json:"port" yaml:"port" mapstructure:"port"`
	User     string `json:"user" yaml:"user" mapstructure:"user"`
	Password string `json:"password" yaml:"password" mapstructure:"password"`
	DBName   string `json:"dbname" yaml:"dbname" mapstructure:"dbname"`
	Schema   string `json:"schema" yaml:"schema" mapstructure:"schema"`
	SSLMode  string `json:"sslmode" yaml:"sslmode" mapstructure:"sslmode"`
}

// VolumeConfig mirrors the per-entity record counts the run was asked
// for. Order items are derived from the per-order line item range.
type VolumeConfig struct {
	Stores        int `json:"stores" yaml:"stores" mapstructure:"stores"`
	Customers     int `json:"customers" yaml:"customers" mapstructure:"customers"`
	Ingredients   int `json:"ingredients" yaml:"ingredients" mapstructure:"ingredients"`
	MenuItems     int `json:"menu_items" yaml:"menu_items" mapstructure:"menu_items"`
	Orders        int `json:"orders" yaml:"orders" mapstructure:"orders"`
	MinOrderItems int `json:"min_order_items" yaml:"min_order_items" mapstructure:"min_order_items"`
	MaxOrderItems int `json:"max_order_items" yaml:"max_order_items" mapstructure:"max_order_items"`
}

// DefaultConfig returns a config suitable for a local development database.
func DefaultConfig() *Config {
	return &Config{
		Database: DatabaseConfig{
			Host:    "localhost",
			Port:    5432,
			User:    "postgres",
			DBName:  "rushmore_db",
			Schema:  "pizzeria",
			SSLMode: "disable",
		},
		Volumes: VolumeConfig{
			Stores:        5,
			Customers:     1000,
			Ingredients:   50,
			MenuItems:     30,
			Orders:        5000,
			MinOrderItems: 1,
			MaxOrderItems: 5,
		},
		BatchSize: 500,
	}
}

func Load() (*Config, error) {
	cfg := DefaultConfig()

	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if cfg.Database.Port == 0 {
		cfg.Database.Port = 5432
	}
	if cfg.Database.SSLMode == "" {
		cfg.Database.SSLMode = "disable"
	}
	if cfg.BatchSize == 0 {
		cfg.BatchSize = 500
	}
	if cfg.Volumes.MinOrderItems == 0 {
		cfg.Volumes.MinOrderItems = 1
	}
	if cfg.Volumes.MaxOrderItems == 0 {
		cfg.Volumes.MaxOrderItems = 5
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Database.Host == "" {
		return fmt.Errorf("database host cannot be empty")
	}
	if c.Database.Port < 1 || c.Database.Port > 65535 {
		return fmt.Errorf("invalid database port: %d", c.Database.Port)
	}
	if c.Database.User == "" {
		return fmt.Errorf("database user cannot be empty")
	}
	if c.Database.DBName == "" {
		return fmt.Errorf("database name cannot be empty")
	}
	if c.BatchSize < 1 {
		return fmt.Errorf("batch_size must be positive, got %d", c.BatchSize)
	}
	return c.Volumes.Validate()
}

func (v *VolumeConfig) Validate() error {
	counts := map[string]int{
		"stores":      v.Stores,
		"customers":   v.Customers,
		"ingredients": v.Ingredients,
		"menu_items":  v.MenuItems,
		"orders":      v.Orders,
	}
	for name, count := range counts {
		if count < 0 {
			return fmt.Errorf("volume for %s cannot be negative: %d", name, count)
		}
	}
	if v.MinOrderItems < 1 {
		return fmt.Errorf("min_order_items must be at least 1, got %d", v.MinOrderItems)
	}
	if v.MaxOrderItems < v.MinOrderItems {
		return fmt.Errorf("max_order_items (%d) is below min_order_items (%d)", v.MaxOrderItems, v.MinOrderItems)
	}
	return nil
}
