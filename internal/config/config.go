package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
)

// DefaultFile is the TOML file consulted when no path is given.
const DefaultFile = "reckon.toml"

// EnvPrefix is the prefix for environment variable overrides.
const EnvPrefix = "RECKON_"

// Import modes for history files.
const (
	ImportReplace = "replace"
	ImportMerge   = "merge"
)

// Config holds all calculator settings.
type Config struct {
	// LogLevel is the minimum log level (debug, info, warn, error).
	LogLevel string `toml:"log_level"`

	// LogFile is where the application log is written.
	LogFile string `toml:"log_file"`

	// HistoryFile is the default path for autosave, save, and load.
	HistoryFile string `toml:"history_file"`

	// AutoSave exports the active history after every calculation.
	AutoSave bool `toml:"auto_save"`

	// MaxHistory bounds the number of retained records.
	MaxHistory int `toml:"max_history"`

	// Precision is the number of decimal places in results.
	Precision int `toml:"precision"`

	// MaxInput bounds the absolute value of operands.
	MaxInput float64 `toml:"max_input"`

	// ImportMode is how imported records combine with the current log:
	// "replace" or "merge".
	ImportMode string `toml:"import_mode"`

	// OpsFile is an optional Lua script defining custom operations.
	OpsFile string `toml:"ops_file"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		LogLevel:    "info",
		LogFile:     "logs/reckon.log",
		HistoryFile: "history/history.csv",
		AutoSave:    true,
		MaxHistory:  100,
		Precision:   2,
		MaxInput:    1_000_000,
		ImportMode:  ImportReplace,
	}
}

// Load resolves configuration from defaults, the TOML file at path
// (DefaultFile when path is empty; a missing default file is not an
// error), a .env file, and RECKON_* environment variables.
func Load(path string) (Config, error) {
	cfg := Default()

	required := path != ""
	if path == "" {
		path = DefaultFile
	}
	if err := loadTOML(path, required, &cfg); err != nil {
		return Config{}, err
	}

	// .env populates the process environment, matching the original
	// dotenv behavior; explicit environment variables still win because
	// godotenv does not overwrite existing keys.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("loading .env: %w", err)
	}

	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// loadTOML merges settings from a TOML file into cfg.
func loadTOML(path string, required bool, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !required {
			return nil
		}
		return fmt.Errorf("reading config file %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config file %s: %w", path, err)
	}
	return nil
}

// applyEnv merges RECKON_* environment variables into cfg.
func applyEnv(cfg *Config) error {
	if v, ok := lookup("LOG_LEVEL"); ok {
		cfg.LogLevel = strings.ToLower(v)
	}
	if v, ok := lookup("LOG_FILE"); ok {
		cfg.LogFile = v
	}
	if v, ok := lookup("HISTORY_FILE"); ok {
		cfg.HistoryFile = v
	}
	if v, ok := lookup("AUTO_SAVE"); ok {
		b, err := parseBool(v)
		if err != nil {
			return &ValidationError{Key: "auto_save", Value: v, Message: "must be a boolean"}
		}
		cfg.AutoSave = b
	}
	if v, ok := lookup("MAX_HISTORY"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return &ValidationError{Key: "max_history", Value: v, Message: "must be an integer"}
		}
		cfg.MaxHistory = n
	}
	if v, ok := lookup("PRECISION"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return &ValidationError{Key: "precision", Value: v, Message: "must be an integer"}
		}
		cfg.Precision = n
	}
	if v, ok := lookup("MAX_INPUT"); ok {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return &ValidationError{Key: "max_input", Value: v, Message: "must be a number"}
		}
		cfg.MaxInput = f
	}
	if v, ok := lookup("IMPORT_MODE"); ok {
		cfg.ImportMode = strings.ToLower(v)
	}
	if v, ok := lookup("OPS_FILE"); ok {
		cfg.OpsFile = v
	}
	return nil
}

func lookup(key string) (string, bool) {
	return os.LookupEnv(EnvPrefix + key)
}

// parseBool accepts the value forms the original accepted.
func parseBool(v string) (bool, error) {
	switch strings.ToLower(v) {
	case "true", "1", "yes", "on":
		return true, nil
	case "false", "0", "no", "off":
		return false, nil
	}
	return false, fmt.Errorf("invalid boolean %q", v)
}

// Validate checks all settings against their constraints.
func (c Config) Validate() error {
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return &ValidationError{Key: "log_level", Value: c.LogLevel,
			Message: "must be debug, info, warn, or error"}
	}
	if c.MaxHistory < 1 {
		return &ValidationError{Key: "max_history", Value: c.MaxHistory,
			Message: "must be at least 1"}
	}
	if c.Precision < 0 || c.Precision > 12 {
		return &ValidationError{Key: "precision", Value: c.Precision,
			Message: "must be between 0 and 12"}
	}
	if c.MaxInput <= 0 {
		return &ValidationError{Key: "max_input", Value: c.MaxInput,
			Message: "must be positive"}
	}
	switch c.ImportMode {
	case ImportReplace, ImportMerge:
	default:
		return &ValidationError{Key: "import_mode", Value: c.ImportMode,
			Message: "must be replace or merge"}
	}
	if c.HistoryFile == "" {
		return &ValidationError{Key: "history_file", Value: c.HistoryFile,
			Message: "must not be empty"}
	}
	return nil
}
