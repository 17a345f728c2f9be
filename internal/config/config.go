// Package config provides centralized configuration for the student
// manager. Settings come from environment variables (optionally seeded from
// a .env file by the caller) and are validated on startup so a bad value is
// reported before any data is touched.
package config

import "time"

// Config holds all application configuration.
type Config struct {
	Store    StoreConfig
	Database DatabaseConfig
	Logging  LoggingConfig
}

// StoreConfig holds file locations.
type StoreConfig struct {
	// DataFile is the persisted store, a CSV with a header row (default: sinhvien.csv)
	DataFile string `env:"STUDENTS_DATA_FILE" default:"sinhvien.csv"`

	// ImportFile is the bulk import source, one id,name,age,major per line (default: input.txt)
	ImportFile string `env:"STUDENTS_IMPORT_FILE" default:"input.txt"`
}

// DatabaseConfig holds the optional PostgreSQL mirror settings.
type DatabaseConfig struct {
	// URL enables the mirror when set. DB_URL is accepted as an alias.
	URL string `env:"DATABASE_URL" envAlt:"DB_URL"`

	// Table receives the copy of the store; may be schema qualified (default: students)
	Table string `env:"DB_TABLE" default:"students"`

	// MaxConns is the pool size (default: 4)
	MaxConns int `env:"DB_MAX_CONNS" default:"4"`

	// Timeout bounds connect, schema and save operations (default: 10s)
	Timeout time.Duration `env:"DB_TIMEOUT" default:"10s"`
}

// Enabled reports whether a database URL was configured.
func (d DatabaseConfig) Enabled() bool {
	return d.URL != ""
}

// LoggingConfig holds logging settings. Logs go to stderr.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error (default: warn)
	Level string `env:"LOG_LEVEL" default:"warn"`

	// Format is the log format: text or json (default: text)
	Format string `env:"LOG_FORMAT" default:"text"`
}
