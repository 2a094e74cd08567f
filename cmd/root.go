package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without subcommands.
var rootCmd = &cobra.Command{
	Use:   "shopfront",
	Short: "Storefront backend API server",
	Long: `shopfront is the storefront backend: a REST API for users,
orders, products, and dashboard queries over Postgres.`,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
