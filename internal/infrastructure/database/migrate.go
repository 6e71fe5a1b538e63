package database

import (
	"fmt"

	"gorm.io/gorm"

	"testhub/internal/infrastructure/logger"
)

// AutoMigrate creates the service schema and brings every registered
// entity table up to date.
func AutoMigrate(db *gorm.DB) error {
	log := logger.GetLogger()

	if err := db.Exec("CREATE SCHEMA IF NOT EXISTS testhub;").Error; err != nil {
		return fmt.Errorf("create schema: %w", err)
	}

	for _, model := range SchemaRegistry {
		if err := db.AutoMigrate(model); err != nil {
			log.Error().Err(err).Msgf("failed to auto migrate schema: %T", model)
			return err
		}
	}

	log.Info().Int("entities", len(SchemaRegistry)).Msg("database schema up to date")
	return nil
}
