package models

// Setting represents a configuration override stored in the database.
// The value is kept as raw text; boolean keys are coerced by the config
// resolver ("true" and nothing else means true).
type Setting struct {
	ID    uint64 `gorm:"primaryKey"`
	Name  string `gorm:"unique"`
	Value string
}
