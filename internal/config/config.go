package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"

	"github.com/spf13/viper"

	"github.com/agentx-labs/qflow/internal/branding"
	"github.com/agentx-labs/qflow/internal/logging"
)

const (
	fileName = "config"
	fileType = "yaml"
)

// Configuration keys.
const (
	KeyLogLevel      = "log_level"
	KeyBackKeyword   = "back_keyword"
	KeyCancelKeyword = "cancel_keyword"
	KeyColor         = "color"
)

// Keys lists the supported configuration keys.
var Keys = []string{KeyLogLevel, KeyBackKeyword, KeyCancelKeyword, KeyColor}

// Settings is the typed view of the configuration.
type Settings struct {
	LogLevel      string `mapstructure:"log_level"`
	BackKeyword   string `mapstructure:"back_keyword"`
	CancelKeyword string `mapstructure:"cancel_keyword"`
	Color         bool   `mapstructure:"color"`
}

// Dir returns the path to the config directory (~/.qflow/ unless QFLOW_HOME
// is set).
func Dir() string {
	if dir := os.Getenv(branding.EnvVar("HOME")); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", branding.HomeDir())
	}
	return filepath.Join(home, branding.HomeDir())
}

// FilePath returns the full path to the config file (~/.qflow/config.yaml).
func FilePath() string {
	return filepath.Join(Dir(), fileName+"."+fileType)
}

// DefinitionsDir returns the directory searched for named definitions.
func DefinitionsDir() string {
	return filepath.Join(Dir(), branding.DefinitionsDir())
}

// EnsureDir creates the config directory if it does not exist.
func EnsureDir() error {
	dir := Dir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}
	return nil
}

// Load initializes Viper to read from the config file and environment.
// A missing config file is not an error; a malformed one is.
func Load() error {
	viper.SetConfigFile(FilePath())
	viper.SetConfigType(fileType)
	viper.SetEnvPrefix(branding.EnvPrefix())
	viper.AutomaticEnv()

	viper.SetDefault(KeyLogLevel, "warn")
	viper.SetDefault(KeyBackKeyword, "back")
	viper.SetDefault(KeyCancelKeyword, "cancel")
	viper.SetDefault(KeyColor, true)

	if err := viper.ReadInConfig(); err != nil {
		if _, statErr := os.Stat(FilePath()); os.IsNotExist(statErr) {
			return nil
		}
		return fmt.Errorf("reading config file %s: %w", FilePath(), err)
	}
	return nil
}

// Reset clears all loaded settings.
func Reset() {
	viper.Reset()
}

// Current returns the typed settings.
func Current() (Settings, error) {
	var s Settings
	if err := viper.Unmarshal(&s); err != nil {
		return s, fmt.Errorf("decoding config: %w", err)
	}
	return s, nil
}

// Get returns a config value by key. Returns empty string if not set.
func Get(key string) string {
	return viper.GetString(key)
}

// Set validates a config key-value pair, stores it and saves the config file.
func Set(key, value string) error {
	if err := check(key, value); err != nil {
		return err
	}
	if err := EnsureDir(); err != nil {
		return err
	}

	viper.Set(key, value)

	configFile := FilePath()
	if err := viper.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

func check(key, value string) error {
	if !slices.Contains(Keys, key) {
		return fmt.Errorf("unknown config key %q (known keys: %v)", key, Keys)
	}
	switch key {
	case KeyLogLevel:
		if _, err := logging.ParseLevel(value); err != nil {
			return err
		}
	case KeyColor:
		if _, err := strconv.ParseBool(value); err != nil {
			return fmt.Errorf("color must be true or false, got %q", value)
		}
	case KeyBackKeyword, KeyCancelKeyword:
		if value == "" {
			return fmt.Errorf("%s cannot be empty", key)
		}
	}
	return nil
}
