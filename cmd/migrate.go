package cmd

import (
	"github.com/Kariqs/orders-api/initializers"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the customers, orders and audit_events tables",
	Long: `Apply the schema to the configured database.

With FIELD_CIPHER=pgcrypto the pgcrypto extension is enabled first.`,
	RunE: runMigrate,
}

func runMigrate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	db, err := initializers.ConnectToDB(cfg)
	if err != nil {
		return err
	}
	return initializers.SyncDatabase(db, cfg)
}
