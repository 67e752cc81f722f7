// Package setting provides CRUD operations for the settings overlay.
package setting

import (
	"errors"

	"gorm.io/gorm"

	"github.com/GoGuestbook/GoGuestbook/internal/db/models"
)

const (
	nameQueryPattern = "name = ?"
)

var (
	// ErrSettingNotFound is returned when a setting is not found.
	ErrSettingNotFound = errors.New("setting not found")
	// ErrSettingNameEmpty is returned when attempting to write a setting with an empty name.
	ErrSettingNameEmpty = errors.New("setting name cannot be empty")
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
)

// Get retrieves a setting by its name.
func Get(db *gorm.DB, name string) (*models.Setting, error) {
	if db == nil {
		return nil, ErrDBNil
	}
	if name == "" {
		return nil, ErrSettingNameEmpty
	}

	var setting models.Setting
	result := db.Where(nameQueryPattern, name).First(&setting)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrSettingNotFound
		}
		return nil, result.Error
	}

	return &setting, nil
}

// GetAll retrieves all settings from the database.
func GetAll(db *gorm.DB) ([]models.Setting, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var settings []models.Setting
	result := db.Find(&settings)
	if result.Error != nil {
		return nil, result.Error
	}

	return settings, nil
}

// Set creates or updates a setting by name (upsert operation).
func Set(db *gorm.DB, name, value string) (*models.Setting, error) {
	if db == nil {
		return nil, ErrDBNil
	}
	if name == "" {
		return nil, ErrSettingNameEmpty
	}

	var setting models.Setting
	result := db.Where(nameQueryPattern, name).First(&setting)

	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		// Setting doesn't exist, create it
		setting = models.Setting{
			Name:  name,
			Value: value,
		}

		if result = db.Create(&setting); result.Error != nil {
			return nil, result.Error
		}

		return &setting, nil
	}
	if result.Error != nil {
		return nil, result.Error
	}

	// Setting exists, update it
	setting.Value = value
	result = db.Save(&setting)
	if result.Error != nil {
		return nil, result.Error
	}

	return &setting, nil
}

// SaveAll upserts every provided key. Keys not present in the map keep
// whatever value was stored before; there is no delete path here. The
// settings table is created first if this is the very first save.
func SaveAll(db *gorm.DB, values map[string]string) error {
	if db == nil {
		return ErrDBNil
	}

	// lazy schema creation, idempotent by construction
	if err := db.AutoMigrate(&models.Setting{}); err != nil {
		return err
	}

	for name, value := range values {
		if _, err := Set(db, name, value); err != nil {
			return err
		}
	}

	return nil
}

// DeleteByName deletes a setting by name.
func DeleteByName(db *gorm.DB, name string) error {
	if db == nil {
		return ErrDBNil
	}
	if name == "" {
		return ErrSettingNameEmpty
	}

	result := db.Where(nameQueryPattern, name).Delete(&models.Setting{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrSettingNotFound
	}

	return nil
}
