package config

// DB holds the database configuration settings.
type DB struct {
	// Path to the SQLite database file. ":memory:" is accepted for tests.
	Path string
}
