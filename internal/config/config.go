// Package config loads application configuration from a YAML file and
// WORKTIME_* environment variables. Only app-level concerns live here;
// settings that belong to the tracked dataset (rules, the future-checkout
// toggle, the open-record pointer) are stored alongside the records.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds the complete application configuration.
type Config struct {
	DBPath   string       `mapstructure:"db_path"`
	LogLevel string       `mapstructure:"log_level"`
	Report   ReportConfig `mapstructure:"report"`
}

// ReportConfig defines the expected-workday overlay for monthly reports.
type ReportConfig struct {
	Schedule           string `mapstructure:"schedule"`
	DailyTargetMinutes int    `mapstructure:"daily_target_minutes"`
}

// Dir returns the application data directory, ~/.worktime by default,
// overridable through WORKTIME_DIR.
func Dir() (string, error) {
	if dir := os.Getenv("WORKTIME_DIR"); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, ".worktime"), nil
}

// Load loads configuration from dir/config.yaml and environment variables.
// A missing config file is fine; defaults and WORKTIME_* env vars apply.
func Load(dir string) (*Config, error) {
	v := viper.New()
	setDefaults(v, dir)

	v.SetConfigFile(filepath.Join(dir, "config.yaml"))
	v.SetEnvPrefix("WORKTIME")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if !os.IsNotExist(err) {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, fmt.Errorf("read config file: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper, dir string) {
	v.SetDefault("db_path", filepath.Join(dir, "worktime.db"))
	v.SetDefault("log_level", "warn")
	v.SetDefault("report.schedule", "every weekday")
	v.SetDefault("report.daily_target_minutes", 480)
}

func validate(cfg *Config) error {
	if cfg.DBPath == "" {
		return fmt.Errorf("db_path is required")
	}
	if cfg.Report.DailyTargetMinutes < 0 {
		return fmt.Errorf("report.daily_target_minutes must not be negative")
	}
	if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0o755); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}
	return nil
}
