package config

import (
	"os"

	"github.com/Veraticus/tally/internal/sheets"
	"github.com/spf13/viper"
)

// LoadSheetsConfig loads Google Sheets configuration. Values come from viper
// (config file or TALLY_SHEETS_* variables) first, then from the GOOGLE_SHEETS_*
// environment variables, then from defaults.
func LoadSheetsConfig() (*sheets.Config, error) {
	return LoadSheetsConfigFrom(viper.GetViper())
}

// LoadSheetsConfigFrom loads Google Sheets configuration from v.
func LoadSheetsConfigFrom(v *viper.Viper) (*sheets.Config, error) {
	cfg := sheets.DefaultConfig()

	fields := []struct {
		dst    *string
		key    string
		env    string
		isPath bool
	}{
		{dst: &cfg.ServiceAccountPath, key: "sheets.service_account_path", env: "GOOGLE_SHEETS_SERVICE_ACCOUNT_PATH", isPath: true},
		{dst: &cfg.ClientID, key: "sheets.client_id", env: "GOOGLE_SHEETS_CLIENT_ID"},
		{dst: &cfg.ClientSecret, key: "sheets.client_secret", env: "GOOGLE_SHEETS_CLIENT_SECRET"},
		{dst: &cfg.RefreshToken, key: "sheets.refresh_token", env: "GOOGLE_SHEETS_REFRESH_TOKEN"},
		{dst: &cfg.SpreadsheetID, key: "sheets.spreadsheet_id", env: "GOOGLE_SHEETS_SPREADSHEET_ID"},
		{dst: &cfg.SpreadsheetName, key: "sheets.spreadsheet_name", env: "GOOGLE_SHEETS_SPREADSHEET_NAME"},
	}

	for _, f := range fields {
		value := v.GetString(f.key)
		if value == "" {
			value = os.Getenv(f.env)
		}
		if value == "" {
			continue
		}
		if f.isPath {
			value = ExpandPath(value)
		}
		*f.dst = value
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}
