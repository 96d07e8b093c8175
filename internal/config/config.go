package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	API      APIConfig
	Server   ServerConfig
	Database DatabaseConfig
	UI       UIConfig
	Log      LogConfig
}

// APIConfig points the dashboard at the /foods backend.
type APIConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// ServerConfig holds settings for the development backend.
type ServerConfig struct {
	Addr string
	Seed bool
}

// DatabaseConfig holds sqlite settings.
type DatabaseConfig struct {
	Path string
}

// UIConfig holds presentation settings.
type UIConfig struct {
	CurrencySymbol string `mapstructure:"currency_symbol"`
}

// LogConfig controls slog output.
type LogConfig struct {
	File  string
	Level string
}

// Load reads configuration from file and env. Env var overrides use prefix GORESTAURANT_.
func Load() (Config, error) {
	return load(true)
}

// Defaults returns the built-in settings with env overrides applied, ignoring any config file.
func Defaults() (Config, error) {
	return load(false)
}

func load(readFile bool) (Config, error) {
	v := viper.New()

	home := os.Getenv("HOME")
	v.SetDefault("api.base_url", "http://localhost:3333")
	v.SetDefault("api.timeout", "10s")
	v.SetDefault("server.addr", ":3333")
	v.SetDefault("server.seed", true)
	v.SetDefault("database.path", filepath.Join(home, ".local", "share", "gorestaurant", "foods.db"))
	v.SetDefault("ui.currency_symbol", "R$")
	v.SetDefault("log.file", filepath.Join(home, ".local", "state", "gorestaurant", "gorestaurant.log"))
	v.SetDefault("log.level", "info")

	v.SetConfigType("toml")

	cfgPath := os.Getenv("GORESTAURANT_CONFIG")
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(home, ".config", "gorestaurant"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("GORESTAURANT")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// an explicit GORESTAURANT_CONFIG must exist and parse; the default file is optional
	if readFile {
		if err := v.ReadInConfig(); err != nil {
			if _, missing := err.(viper.ConfigFileNotFoundError); cfgPath != "" || !missing {
				return Config{}, fmt.Errorf("read config: %w", err)
			}
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if c.API.Timeout <= 0 {
		return Config{}, fmt.Errorf("api.timeout must be positive, got %s", c.API.Timeout)
	}
	return c, nil
}

// Path is the file Load reads and Save writes.
func Path() string {
	if path := os.Getenv("GORESTAURANT_CONFIG"); path != "" {
		return path
	}
	return filepath.Join(os.Getenv("HOME"), ".config", "gorestaurant", "config.toml")
}

// Save writes the provided config to disk, creating the config directory if needed.
func Save(cfg Config) error {
	path := Path()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.Set("api.base_url", cfg.API.BaseURL)
	v.Set("api.timeout", cfg.API.Timeout.String())
	v.Set("server.addr", cfg.Server.Addr)
	v.Set("server.seed", cfg.Server.Seed)
	v.Set("database.path", cfg.Database.Path)
	v.Set("ui.currency_symbol", cfg.UI.CurrencySymbol)
	v.Set("log.file", cfg.Log.File)
	v.Set("log.level", cfg.Log.Level)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
