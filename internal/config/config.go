package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Veraticus/tally/internal/common"
	"github.com/spf13/viper"
	"golang.org/x/text/language"
)

// Configuration keys.
const (
	KeyDatabasePath      = "database.path"
	KeyStorageKey        = "storage.key"
	KeyEphemeral         = "storage.ephemeral"
	KeyDisplayLocale     = "display.locale"
	KeyDisplayCurrency   = "display.currency"
	KeyDisplayDateFormat = "display.date_format"
	KeyLogLevel          = "logging.level"
	KeyLogFormat         = "logging.format"
	KeyLogFile           = "logging.file"
)

// Defaults for display settings.
const (
	DefaultLocale     = "fr-MA"
	DefaultCurrency   = "MAD"
	DefaultDateFormat = "1/2/2006"
	DefaultStorageKey = "financeData"
)

// Config is the resolved application configuration.
type Config struct {
	Locale       language.Tag
	DatabasePath string
	StorageKey   string
	Currency     string
	DateFormat   string
	LogLevel     string
	LogFormat    string
	LogFile      string
	Ephemeral    bool
}

// DataDir returns the directory holding the database and TUI log.
func DataDir() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "tally")
	}
	return ExpandPath("~/.local/share/tally")
}

// SetDefaults registers default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyDatabasePath, filepath.Join(DataDir(), "tally.db"))
	v.SetDefault(KeyStorageKey, DefaultStorageKey)
	v.SetDefault(KeyEphemeral, false)
	v.SetDefault(KeyDisplayLocale, DefaultLocale)
	v.SetDefault(KeyDisplayCurrency, DefaultCurrency)
	v.SetDefault(KeyDisplayDateFormat, DefaultDateFormat)
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogFormat, "console")
	v.SetDefault(KeyLogFile, filepath.Join(DataDir(), "tally.log"))
}

// Load reads the configuration from v. Unset keys fall back to the defaults.
func Load(v *viper.Viper) (Config, error) {
	SetDefaults(v)

	cfg := Config{
		DatabasePath: ExpandPath(v.GetString(KeyDatabasePath)),
		StorageKey:   strings.TrimSpace(v.GetString(KeyStorageKey)),
		Currency:     strings.TrimSpace(v.GetString(KeyDisplayCurrency)),
		DateFormat:   v.GetString(KeyDisplayDateFormat),
		LogLevel:     v.GetString(KeyLogLevel),
		LogFormat:    v.GetString(KeyLogFormat),
		LogFile:      ExpandPath(v.GetString(KeyLogFile)),
		Ephemeral:    v.GetBool(KeyEphemeral),
	}

	tag, err := language.Parse(v.GetString(KeyDisplayLocale))
	if err != nil {
		return Config{}, fmt.Errorf("%w: %s %q: %w", common.ErrInvalidConfig, KeyDisplayLocale, v.GetString(KeyDisplayLocale), err)
	}
	cfg.Locale = tag

	if cfg.DatabasePath == "" {
		return Config{}, fmt.Errorf("%w: %s is empty", common.ErrInvalidConfig, KeyDatabasePath)
	}
	if cfg.StorageKey == "" {
		cfg.StorageKey = DefaultStorageKey
	}
	if cfg.DateFormat == "" {
		cfg.DateFormat = DefaultDateFormat
	}
	return cfg, nil
}
