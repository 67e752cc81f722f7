// Package models contains database model definitions.
package models

import (
	"time"
)

// Entry represents a single guestbook submission.
// Site and Email are optional and stay nil when the visitor left them blank.
// Approved starts false while moderation is enabled and flips true exactly
// once; there is no soft delete.
type Entry struct {
	ID        uint64    `gorm:"primaryKey"`
	Name      string    `gorm:"size:100"`
	Message   string    `gorm:"size:2000"`
	Site      *string   `gorm:"size:255"`
	Email     *string   `gorm:"size:255"`
	CreatedAt time.Time `gorm:"index"`
	Approved  bool      `gorm:"index"`
}
