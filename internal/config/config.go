package config

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Veraticus/tally/internal/common"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Configuration keys.
const (
	KeyStorageBackend = "storage.backend"
	KeyStoragePath    = "storage.path"
	KeyBudgets        = "budgets"
	KeyCurrency       = "display.currency"
	KeyLogLevel       = "logging.level"
	KeyLogFormat      = "logging.format"
)

// Default values.
const (
	DefaultBackend    = "json"
	DefaultJSONPath   = "data.json"
	DefaultSQLitePath = "tally.db"
	DefaultCurrency   = "$"
)

// Config is the resolved application configuration.
type Config struct {
	Budgets   map[string]decimal.Decimal
	Backend   string
	Path      string
	Currency  string
	LogLevel  string
	LogFormat string
}

// SetDefaults registers default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyStorageBackend, DefaultBackend)
	v.SetDefault(KeyCurrency, DefaultCurrency)
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogFormat, "console")
}

// EnvPrefix is prepended to environment variable names, so storage.backend
// is read from TALLY_STORAGE_BACKEND.
const EnvPrefix = "TALLY"

// BindEnv makes v consult TALLY_* environment variables for every key.
func BindEnv(v *viper.Viper) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
}

// Load reads the configuration from the global viper instance.
func Load() (*Config, error) {
	return LoadFrom(viper.GetViper())
}

// LoadFrom reads and validates the configuration held by v.
func LoadFrom(v *viper.Viper) (*Config, error) {
	SetDefaults(v)

	cfg := &Config{
		Backend:   strings.ToLower(strings.TrimSpace(v.GetString(KeyStorageBackend))),
		Path:      ExpandPath(strings.TrimSpace(v.GetString(KeyStoragePath))),
		Currency:  v.GetString(KeyCurrency),
		LogLevel:  v.GetString(KeyLogLevel),
		LogFormat: v.GetString(KeyLogFormat),
		Budgets:   make(map[string]decimal.Decimal),
	}

	if cfg.Path == "" {
		cfg.Path = defaultPath(cfg.Backend)
	}

	for category, raw := range v.GetStringMapString(KeyBudgets) {
		limit, err := decimal.NewFromString(strings.TrimSpace(raw))
		if err != nil {
			return nil, fmt.Errorf("%w: budget for %q is not a number: %q", common.ErrInvalidConfig, category, raw)
		}
		cfg.Budgets[category] = limit
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func defaultPath(backend string) string {
	if backend == "sqlite" {
		return DefaultSQLitePath
	}
	return DefaultJSONPath
}

// Validate checks the configuration for values the application cannot use.
func (c *Config) Validate() error {
	switch c.Backend {
	case "json", "sqlite":
	default:
		return fmt.Errorf("%w: storage backend must be json or sqlite, got %q", common.ErrInvalidConfig, c.Backend)
	}

	if strings.TrimSpace(c.Path) == "" {
		return fmt.Errorf("%w: storage path is empty", common.ErrInvalidConfig)
	}

	for category, limit := range c.Budgets {
		if !limit.IsPositive() {
			return fmt.Errorf("%w: budget for %q must be positive, got %s", common.ErrInvalidConfig, category, limit)
		}
	}

	if _, err := common.ParseLogLevel(c.LogLevel); err != nil {
		return err
	}

	switch c.LogFormat {
	case "console", "json":
	default:
		return fmt.Errorf("%w: log format must be console or json, got %q", common.ErrInvalidConfig, c.LogFormat)
	}

	return nil
}

// BudgetCategories returns the configured budget categories in sorted order.
func (c *Config) BudgetCategories() []string {
	categories := make([]string, 0, len(c.Budgets))
	for category := range c.Budgets {
		categories = append(categories, category)
	}
	sort.Strings(categories)
	return categories
}
