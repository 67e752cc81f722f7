// Package entry provides the moderation store for guestbook entries.
package entry

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/GoGuestbook/GoGuestbook/internal/db/models"
)

const (
	// DefaultPublicLimit is the page size of the public listing.
	DefaultPublicLimit = 20

	// DefaultAdminLimit caps the admin view.
	DefaultAdminLimit = 100
)

var (
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
	// ErrEntryNil is returned when inserting a nil entry.
	ErrEntryNil = errors.New("entry cannot be nil")
)

// Insert appends a new entry. The store assigns the id and a UTC
// creation timestamp; the caller decides the initial Approved state.
func Insert(db *gorm.DB, e *models.Entry) error {
	if db == nil {
		return ErrDBNil
	}
	if e == nil {
		return ErrEntryNil
	}

	e.ID = 0
	e.CreatedAt = time.Now().UTC()

	return db.Create(e).Error
}

// ListPublic returns approved entries newest-id-first using keyset
// pagination: with a cursor, only entries with id < cursor are returned.
// nextCursor is the id of the last returned entry when a full page came
// back, else 0 to signal the end of the list. Stable under concurrent
// inserts, unlike offset pagination.
func ListPublic(db *gorm.DB, cursor uint64, limit int) (entries []models.Entry, nextCursor uint64, err error) {
	if db == nil {
		return nil, 0, ErrDBNil
	}

	if limit <= 0 {
		limit = DefaultPublicLimit
	}

	q := db.Where("approved = ?", true)
	if cursor > 0 {
		q = q.Where("id < ?", cursor)
	}

	result := q.Order("id DESC").Limit(limit).Find(&entries)
	if result.Error != nil {
		return nil, 0, result.Error
	}

	if len(entries) == limit {
		nextCursor = entries[len(entries)-1].ID
	}

	return entries, nextCursor, nil
}

// ListAll returns every entry, approved and pending, newest first.
// Administrator view only.
func ListAll(db *gorm.DB, limit int) ([]models.Entry, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	if limit <= 0 {
		limit = DefaultAdminLimit
	}

	var entries []models.Entry
	result := db.Order("created_at DESC").Limit(limit).Find(&entries)
	if result.Error != nil {
		return nil, result.Error
	}

	return entries, nil
}

// ListApproved returns all approved entries newest-id-first, for exports.
func ListApproved(db *gorm.DB) ([]models.Entry, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var entries []models.Entry
	result := db.Where("approved = ?", true).Order("id DESC").Find(&entries)
	if result.Error != nil {
		return nil, result.Error
	}

	return entries, nil
}

// Approve flips an entry to approved. The transition is one-way and
// idempotent: approving an already-approved or nonexistent id is a no-op.
func Approve(db *gorm.DB, id uint64) error {
	if db == nil {
		return ErrDBNil
	}

	return db.Model(&models.Entry{}).Where("id = ?", id).Update("approved", true).Error
}

// Delete removes an entry unconditionally. Idempotent; deleting a
// nonexistent id is not an error.
func Delete(db *gorm.DB, id uint64) error {
	if db == nil {
		return ErrDBNil
	}

	return db.Delete(&models.Entry{}, id).Error
}
