package initializers

import (
	"fmt"
	"log"

	"github.com/Kariqs/orders-api/models"
	"gorm.io/gorm"
)

// SyncDatabase migrates the schema and, when fields are encrypted in the
// store, enables the pgcrypto extension.
func SyncDatabase(db *gorm.DB, cfg *Config) error {
	if cfg.FieldCipher == CipherPGCrypto {
		if err := db.Exec("CREATE EXTENSION IF NOT EXISTS pgcrypto").Error; err != nil {
			return fmt.Errorf("enable pgcrypto extension: %w", err)
		}
	}

	if err := db.AutoMigrate(&models.Customer{}, &models.Order{}, &models.AuditEvent{}); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	log.Println("Database synced successfully.")
	return nil
}
