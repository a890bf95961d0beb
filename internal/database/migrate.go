package database

import (
	"fmt"
	"log"

	"gorm.io/gorm"

	"github.com/pageza/cookbook/backend/internal/model"
)

// Migrate creates the recipes table if it does not exist yet and adds any
// missing columns or indexes. It never drops data.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&model.Recipe{}); err != nil {
		return fmt.Errorf("failed to migrate recipes table: %w", err)
	}
	log.Printf("Database schema is up to date (%s)", db.Dialector.Name())
	return nil
}
