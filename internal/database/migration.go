package database

import (
	"fmt"

	"smart-money/internal/models"

	"gorm.io/gorm"
)

// AutoMigrate runs database schema migrations for all models.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.Expense{},
		&models.Income{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}
