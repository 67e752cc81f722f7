package models

import (
	"gorm.io/gorm"
)

// Migrate creates the entries and settings tables with their supporting
// indexes. AutoMigrate uses create-if-not-exists statements, so concurrent
// calls are idempotent and safe.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&Entry{},
		&Setting{},
	)
}
