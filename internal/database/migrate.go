package database

import (
	"fmt"
	"log"

	"github.com/pageza/alchemorsel-favourites/backend/internal/model"
	"gorm.io/gorm"
)

// Migrate creates or updates the favourites table and its indexes
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&model.Favourite{}); err != nil {
		return fmt.Errorf("failed to migrate favourites table: %w", err)
	}
	log.Printf("Schema ready (%s)", db.Dialector.Name())
	return nil
}
