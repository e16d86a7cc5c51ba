package database

import (
	"fmt"

	"github.com/repairhub/backend/internal/model"
	"gorm.io/gorm"
)

// Migrate runs gorm auto-migration for every persistent model.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&model.User{},
		&model.PasswordResetToken{},
		&model.Article{},
		&model.RepairRequest{},
	); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}
