package config

import (
	"errors"
	"io/fs"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Configuration keys.
const (
	KeyDatabasePath   = "database.path"
	KeyLogLevel       = "logging.level"
	KeyLogFormat      = "logging.format"
	KeyImportWorkers  = "import.workers"
	KeySheetsID       = "sheets.spreadsheet_id"
	KeySheetsName     = "sheets.spreadsheet_name"
	KeySheetsAccount  = "sheets.service_account_path"
	KeySheetsClientID = "sheets.client_id"
	KeySheetsSecret   = "sheets.client_secret"
	KeySheetsRefresh  = "sheets.refresh_token"
	KeySheetsAttempts = "sheets.retry_attempts"
	KeySheetsDelay    = "sheets.retry_delay"
	KeySheetsTimeZone = "sheets.time_zone"
	KeySheetsFormat   = "sheets.formatting"
)

// DefaultDatabasePath is where the tracker keeps its data unless told otherwise.
const DefaultDatabasePath = "$HOME/.local/share/spice/tracker.db"

// SetDefaults registers default values for every known key.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyDatabasePath, DefaultDatabasePath)
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogFormat, "console")
	v.SetDefault(KeyImportWorkers, 4)
	v.SetDefault(KeySheetsName, "Spice Tracker")
	v.SetDefault(KeySheetsAttempts, 3)
	v.SetDefault(KeySheetsDelay, time.Second)
}

// LoadDotEnv loads variables from the given .env files into the process
// environment. Missing files are fine; variables already set win.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, file := range files {
		if err := godotenv.Load(file); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}
	}
	return nil
}

// DatabasePath returns the configured database path with ~ and $VARS expanded.
func DatabasePath(v *viper.Viper) string {
	path := v.GetString(KeyDatabasePath)
	if path == "" {
		path = DefaultDatabasePath
	}
	return ExpandPath(path)
}
