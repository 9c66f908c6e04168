// Package config handles configuration loading and management for gearbox.
// It supports XDG config paths, project-level overrides, and environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/effortwise/gearbox/internal/effort"
	"github.com/effortwise/gearbox/pkg/models"
)

// Config holds all configuration for gearbox.
type Config struct {
	Budget BudgetConfig `mapstructure:"budget"`
	Store  StoreConfig  `mapstructure:"store"`
	Log    LogConfig    `mapstructure:"log"`
}

// BudgetConfig holds the cost-model settings.
type BudgetConfig struct {
	// MaxCostPerTask is the circuit-breaker spend ceiling in dollars.
	MaxCostPerTask float64 `mapstructure:"max_cost_per_task"`
	// BaseCost prices one thousand tokens per tier.
	BaseCost BaseCostConfig `mapstructure:"base_cost"`
}

// BaseCostConfig holds per-tier prices per thousand tokens.
type BaseCostConfig struct {
	Local   float64 `mapstructure:"local"`
	Mid     float64 `mapstructure:"mid"`
	Premium float64 `mapstructure:"premium"`
}

// StoreConfig holds state-store settings.
type StoreConfig struct {
	// Path is the SQLite database path. Relative paths resolve against
	// the working directory.
	Path string `mapstructure:"path"`
}

// LogConfig holds debug-log settings.
type LogConfig struct {
	// Path is the debug log file. Empty disables debug logging.
	Path string `mapstructure:"path"`
}

// EffortParams converts the budget settings into controller parameters.
func (c *Config) EffortParams() effort.Params {
	return effort.Params{
		MaxCostPerTask: c.Budget.MaxCostPerTask,
		BaseCostPer1K: map[models.Tier]float64{
			models.TierLocal:   c.Budget.BaseCost.Local,
			models.TierMid:     c.Budget.BaseCost.Mid,
			models.TierPremium: c.Budget.BaseCost.Premium,
		},
	}
}

// Load loads configuration from XDG paths, project overrides, and environment variables.
// Precedence (highest to lowest):
// 1. Environment variables (GEARBOX_*)
// 2. Project config (.gearbox.yaml in current directory or parent)
// 3. User config (~/.config/gearbox/config.yaml)
// 4. Built-in defaults
func Load() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	userConfigDir := getUserConfigDir()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(userConfigDir)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading user config: %w", err)
		}
	}

	// Load project config if present
	projectConfig := findProjectConfig()
	if projectConfig != "" {
		projectViper := viper.New()
		projectViper.SetConfigFile(projectConfig)
		if err := projectViper.ReadInConfig(); err == nil {
			// Merge project config (takes precedence)
			if err := v.MergeConfigMap(projectViper.AllSettings()); err != nil {
				return nil, fmt.Errorf("merging project config: %w", err)
			}
		}
	}

	// Environment variable overrides
	v.SetEnvPrefix("GEARBOX")
	v.AutomaticEnv()
	v.BindEnv("budget.max_cost_per_task", "GEARBOX_MAX_COST_PER_TASK")
	v.BindEnv("store.path", "GEARBOX_STORE_PATH")
	v.BindEnv("log.path", "GEARBOX_LOG_PATH")

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	return cfg, nil
}

// LoadFromPath loads configuration from a specific path (for testing).
func LoadFromPath(path string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading config from %s: %w", path, err)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	return cfg, nil
}

// GetUserConfigPath returns the path to the user config file.
func GetUserConfigPath() string {
	return filepath.Join(getUserConfigDir(), "config.yaml")
}

// GetProjectConfigPath returns the path to the project config file if it exists.
func GetProjectConfigPath() string {
	return findProjectConfig()
}

// setDefaults configures default values. The budget defaults are the
// controller's built-in cost model.
func setDefaults(v *viper.Viper) {
	v.SetDefault("budget.max_cost_per_task", effort.DefaultMaxCostPerTask)
	v.SetDefault("budget.base_cost.local", effort.DefaultBaseCostPer1K[models.TierLocal])
	v.SetDefault("budget.base_cost.mid", effort.DefaultBaseCostPer1K[models.TierMid])
	v.SetDefault("budget.base_cost.premium", effort.DefaultBaseCostPer1K[models.TierPremium])

	v.SetDefault("store.path", filepath.Join(".gearbox", "state.db"))
	v.SetDefault("log.path", "")
}

// getUserConfigDir returns the XDG config directory for gearbox.
func getUserConfigDir() string {
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, "gearbox")
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".config", "gearbox")
	}
	return filepath.Join(home, ".config", "gearbox")
}

// findProjectConfig searches for .gearbox.yaml in the current directory and parents.
func findProjectConfig() string {
	cwd, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		configPath := filepath.Join(cwd, ".gearbox.yaml")
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}

		parent := filepath.Dir(cwd)
		if parent == cwd {
			break
		}
		cwd = parent
	}

	return ""
}

// Default returns a Config with default values.
func Default() *Config {
	return &Config{
		Budget: BudgetConfig{
			MaxCostPerTask: effort.DefaultMaxCostPerTask,
			BaseCost: BaseCostConfig{
				Local:   effort.DefaultBaseCostPer1K[models.TierLocal],
				Mid:     effort.DefaultBaseCostPer1K[models.TierMid],
				Premium: effort.DefaultBaseCostPer1K[models.TierPremium],
			},
		},
		Store: StoreConfig{
			Path: filepath.Join(".gearbox", "state.db"),
		},
		Log: LogConfig{
			Path: "",
		},
	}
}
