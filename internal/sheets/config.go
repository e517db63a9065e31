// Package sheets exports tracker reports to Google Sheets.
package sheets

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/sheets/v4"

	"github.com/Veraticus/spice-tracker/internal/common"
)

// DefaultSpreadsheetName is used when creating a new spreadsheet.
const DefaultSpreadsheetName = "Spice Tracker"

// AuthMethod is how the writer proves who it is to Google.
type AuthMethod string

// Authentication methods.
const (
	AuthNone           AuthMethod = ""
	AuthOAuth          AuthMethod = "oauth"
	AuthServiceAccount AuthMethod = "service_account"
)

// Config holds the configuration for the Google Sheets writer.
type Config struct {
	ClientID           string
	ClientSecret       string
	RefreshToken       string
	ServiceAccountPath string
	SpreadsheetID      string
	SpreadsheetName    string
	TimeZone           string
	BatchSize          int
	RetryAttempts      int
	RetryDelay         time.Duration
	EnableFormatting   bool
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		SpreadsheetName:  DefaultSpreadsheetName,
		EnableFormatting: true,
		TimeZone:         "UTC",
		BatchSize:        1000,
		RetryAttempts:    3,
		RetryDelay:       time.Second,
	}
}

// HasOAuth reports whether a complete set of OAuth2 credentials is present.
func (c *Config) HasOAuth() bool {
	return c.ClientID != "" && c.ClientSecret != "" && c.RefreshToken != ""
}

// AuthMethod reports which credentials are configured. With both present it
// returns AuthNone; Validate rejects that case.
func (c *Config) AuthMethod() AuthMethod {
	oauth, account := c.HasOAuth(), c.ServiceAccountPath != ""
	switch {
	case oauth && !account:
		return AuthOAuth
	case account && !oauth:
		return AuthServiceAccount
	default:
		return AuthNone
	}
}

// Validate reports every problem with the configuration at once.
func (c *Config) Validate() error {
	var errs []error

	switch {
	case c.HasOAuth() && c.ServiceAccountPath != "":
		errs = append(errs, fmt.Errorf("%w: multiple authentication methods configured; use either OAuth2 or service account", common.ErrInvalidConfig))
	case c.AuthMethod() == AuthNone:
		errs = append(errs, fmt.Errorf("%w: no authentication method configured", common.ErrMissingConfig))
	}
	if c.BatchSize <= 0 {
		errs = append(errs, fmt.Errorf("%w: batch size must be positive", common.ErrInvalidConfig))
	}
	if c.RetryAttempts < 0 {
		errs = append(errs, fmt.Errorf("%w: retry attempts cannot be negative", common.ErrInvalidConfig))
	}
	if c.RetryDelay < 0 {
		errs = append(errs, fmt.Errorf("%w: retry delay cannot be negative", common.ErrInvalidConfig))
	}

	return errors.Join(errs...)
}

// tokenSource builds credentials for the configured auth method.
func (c *Config) tokenSource(ctx context.Context) (oauth2.TokenSource, error) {
	switch c.AuthMethod() {
	case AuthServiceAccount:
		jsonKey, err := os.ReadFile(c.ServiceAccountPath)
		if err != nil {
			return nil, fmt.Errorf("unable to read service account key file: %w", err)
		}
		jwtConfig, err := google.JWTConfigFromJSON(jsonKey, sheets.SpreadsheetsScope)
		if err != nil {
			return nil, fmt.Errorf("unable to parse service account key: %w", err)
		}
		return jwtConfig.TokenSource(ctx), nil

	case AuthOAuth:
		oauthConfig := OAuth2Config{ClientID: c.ClientID, ClientSecret: c.ClientSecret}.endpointConfig()
		return oauthConfig.TokenSource(ctx, &oauth2.Token{
			RefreshToken: c.RefreshToken,
			TokenType:    "Bearer",
		}), nil

	default:
		return nil, c.Validate()
	}
}
