package cmd

import (
	"fmt"
	"os"

	"github.com/Kariqs/orders-api/initializers"
	"github.com/spf13/cobra"
)

var Version = "dev"

var rootCmd = &cobra.Command{
	Use:     "orders-api",
	Short:   "Orders API - order capture and Paystack payment reconciliation",
	Version: Version,
	// Running without a subcommand starts the server.
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(tokenCmd)
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func loadConfig() (*initializers.Config, error) {
	initializers.LoadEnv()
	return initializers.LoadConfig()
}
