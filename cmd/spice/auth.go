package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Veraticus/spice-tracker/internal/cli"
	"github.com/Veraticus/spice-tracker/internal/common"
	"github.com/Veraticus/spice-tracker/internal/config"
	"github.com/Veraticus/spice-tracker/internal/sheets"
)

func authCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Authenticate with external services",
		Long:  `Authenticate with external services like Google Sheets.`,
	}

	cmd.AddCommand(authSheetsCmd())

	return cmd
}

func authSheetsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sheets",
		Short: "Authenticate with Google Sheets",
		Long: `Authenticate with Google Sheets using OAuth2.

This command will:
1. Open your browser to authenticate with Google
2. Save the refresh token for future use
3. Update your config file with the token

You'll need to run this once before 'spice export-sheets'.`,
		RunE: runAuthSheets,
	}

	cmd.Flags().String("client-id", "", "OAuth2 client ID (overrides config)")
	cmd.Flags().String("client-secret", "", "OAuth2 client secret (overrides config)")
	cmd.Flags().Bool("no-browser", false, "print the consent URL instead of opening a browser")

	return cmd
}

func runAuthSheets(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	clientID := firstSet(flagValue(cmd, "client-id"), viper.GetString(config.KeySheetsClientID), os.Getenv("GOOGLE_SHEETS_CLIENT_ID"))
	clientSecret := firstSet(flagValue(cmd, "client-secret"), viper.GetString(config.KeySheetsSecret), os.Getenv("GOOGLE_SHEETS_CLIENT_SECRET"))
	if clientID == "" || clientSecret == "" {
		return common.NewUserError(
			"OAuth2 credentials not found. Set sheets.client_id and sheets.client_secret in your config or pass --client-id and --client-secret",
			common.ErrMissingConfig)
	}

	tokenFile, err := config.ConfigPath("sheets-token.json")
	if err != nil {
		return err
	}

	oauthConfig := sheets.OAuth2Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		TokenFile:    tokenFile,
	}
	if noBrowser, _ := cmd.Flags().GetBool("no-browser"); noBrowser {
		oauthConfig.OpenURL = func(url string) {
			fmt.Fprintln(out, cli.FormatInfo("Open this URL to continue: "+url)) //nolint:forbidigo // User-facing output
		}
	} else {
		oauthConfig.OpenURL = openBrowser
	}

	slog.Debug("Starting Google Sheets authentication", "token_file", tokenFile)

	token, err := sheets.GetOrCreateToken(ctx, oauthConfig)
	if err != nil {
		return fmt.Errorf("authentication failed: %w", err)
	}

	viper.Set(config.KeySheetsClientID, clientID)
	viper.Set(config.KeySheetsSecret, clientSecret)
	viper.Set(config.KeySheetsRefresh, token.RefreshToken)

	if err := saveConfig(); err != nil {
		slog.Warn("Failed to update config file with refresh token", "error", err)
		fmt.Fprintln(out, cli.FormatWarning("Could not save the refresh token. Add this to your config.yaml:")) //nolint:forbidigo // User-facing output
		fmt.Fprintf(out, "sheets:\n  refresh_token: %q\n", token.RefreshToken)                             //nolint:forbidigo // User-facing output
		return nil
	}

	fmt.Fprintln(out, cli.FormatSuccess("Google Sheets is ready. Run 'spice export-sheets' to export a report.")) //nolint:forbidigo // User-facing output
	return nil
}

func flagValue(cmd *cobra.Command, name string) string {
	v, _ := cmd.Flags().GetString(name)
	return v
}

// firstSet returns the first non-empty value.
func firstSet(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// saveConfig writes the current settings back to the config file in use,
// creating one in the config directory if there is none.
func saveConfig() error {
	configFile := viper.ConfigFileUsed()
	if configFile == "" {
		path, err := config.ConfigPath("config.yaml")
		if err != nil {
			return err
		}
		configFile = path
	}

	if err := os.MkdirAll(filepath.Dir(configFile), 0750); err != nil {
		return err
	}

	return viper.WriteConfigAs(configFile)
}

// openBrowser tries to open the URL in the default browser.
func openBrowser(url string) {
	var err error
	switch runtime.GOOS {
	case "linux":
		err = exec.Command("xdg-open", url).Start() //nolint:gosec,forbidigo
	case "windows":
		err = exec.Command("rundll32", "url.dll,FileProtocolHandler", url).Start() //nolint:gosec,forbidigo
	case "darwin":
		err = exec.Command("open", url).Start() //nolint:gosec,forbidigo
	}
	if err != nil {
		slog.Debug("Failed to open browser", "error", err)
	}
}
