package config

import (
	"os"

	"github.com/spf13/viper"

	"github.com/Veraticus/spice-tracker/internal/sheets"
)

// sheetsEnvFallback names the GOOGLE_SHEETS_* variable read when a key is
// not set through viper.
var sheetsEnvFallback = map[string]string{
	KeySheetsAccount:  "GOOGLE_SHEETS_SERVICE_ACCOUNT_PATH",
	KeySheetsClientID: "GOOGLE_SHEETS_CLIENT_ID",
	KeySheetsSecret:   "GOOGLE_SHEETS_CLIENT_SECRET",
	KeySheetsRefresh:  "GOOGLE_SHEETS_REFRESH_TOKEN",
	KeySheetsID:       "GOOGLE_SHEETS_SPREADSHEET_ID",
	KeySheetsName:     "GOOGLE_SHEETS_SPREADSHEET_NAME",
}

// LoadSheetsConfig builds the export configuration. Each setting comes from
// viper (config file or SPICE_ variables) first, then from its
// GOOGLE_SHEETS_* variable, then from sheets.DefaultConfig. A spreadsheet
// name left at its default also yields to the environment.
func LoadSheetsConfig(v *viper.Viper) (*sheets.Config, error) {
	cfg := sheets.DefaultConfig()

	lookup := func(key string) string {
		if s := v.GetString(key); s != "" && !(key == KeySheetsName && s == sheets.DefaultSpreadsheetName) {
			return s
		}
		return os.Getenv(sheetsEnvFallback[key])
	}

	if s := lookup(KeySheetsAccount); s != "" {
		cfg.ServiceAccountPath = ExpandPath(s)
	}
	cfg.ClientID = lookup(KeySheetsClientID)
	cfg.ClientSecret = lookup(KeySheetsSecret)
	cfg.RefreshToken = lookup(KeySheetsRefresh)
	cfg.SpreadsheetID = lookup(KeySheetsID)
	if s := lookup(KeySheetsName); s != "" {
		cfg.SpreadsheetName = s
	}

	if v.IsSet(KeySheetsAttempts) {
		cfg.RetryAttempts = v.GetInt(KeySheetsAttempts)
	}
	if v.IsSet(KeySheetsDelay) {
		cfg.RetryDelay = v.GetDuration(KeySheetsDelay)
	}
	if v.IsSet(KeySheetsTimeZone) {
		cfg.TimeZone = v.GetString(KeySheetsTimeZone)
	}
	if v.IsSet(KeySheetsFormat) {
		cfg.EnableFormatting = v.GetBool(KeySheetsFormat)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
