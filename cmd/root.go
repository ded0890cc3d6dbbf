package cmd

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	Version = "1.3.0"
)

var rootCmd = &cobra.Command{
	Use:   "rushseed",
	Short: "Synthetic data seeder for the RushMore pizzeria analytics database",
	Long: `rushseed fills the pizzeria schema (stores, customers, ingredients,
menu items, orders and their line items) with large volumes of
internally consistent synthetic data.

Stages run in foreign-key dependency order inside one transaction:
either the whole requested volume commits, or nothing does. Runs are
reproducible by passing an explicit random seed.`,

	Run: func(cmd *cobra.Command, args []string) {
		showVersion, _ := cmd.Flags().GetBool("version")
		if showVersion {
			fmt.Printf("rushseed version %s\n", Version)
			os.Exit(0)
		}
		cmd.Help()
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./rushseed.config.yaml)")
	rootCmd.Flags().BoolP("version", "v", false, "Show CLI version")
}

func initConfig() {
	if err := godotenv.Load(); err != nil {
		godotenv.Load(".env.local")
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName("rushseed.config")
	}

	viper.SetEnvPrefix("RUSHSEED")
	viper.AutomaticEnv()

	viper.ReadInConfig()
}
