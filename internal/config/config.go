package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config is the jacpath client configuration, read from
// $XDG_CONFIG_HOME/jacpath/config.yaml with JACPATH_* environment
// overrides. Missing files are fine; every field has a default.
type Config struct {
	Walker WalkerConfig `mapstructure:"walker"`
	Log    LogConfig    `mapstructure:"log"`

	// DBPath is the local attempt-history database. Empty means the
	// default data-dir location.
	DBPath string `mapstructure:"db_path"`
}

type WalkerConfig struct {
	BaseURL        string `mapstructure:"base_url"`
	UserID         string `mapstructure:"user_id"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
}

type LogConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// Timeout returns the walker request timeout as a duration.
func (w WalkerConfig) Timeout() time.Duration {
	return time.Duration(w.TimeoutSeconds) * time.Second
}

// Load reads the config file (if present) and applies environment
// overrides. An empty path uses the default config directory.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	if path != "" {
		v.SetConfigFile(path)
	} else {
		dir, err := defaultConfigDir()
		if err != nil {
			return nil, err
		}
		v.AddConfigPath(dir)
	}

	v.SetEnvPrefix("JACPATH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("walker.base_url", "http://localhost:8000")
	v.SetDefault("walker.user_id", "")
	v.SetDefault("walker.timeout_seconds", 15)
	v.SetDefault("log.level", "info")

	if err := v.ReadInConfig(); err != nil {
		// A missing default config file is fine; an explicit path must load.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || path != "" {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if cfg.Log.File == "" {
		dir, err := defaultDataDir()
		if err != nil {
			return nil, err
		}
		cfg.Log.File = filepath.Join(dir, "jacpath.log")
	}
	if cfg.DBPath == "" {
		dir, err := defaultDataDir()
		if err != nil {
			return nil, err
		}
		cfg.DBPath = filepath.Join(dir, "jacpath.db")
	}
	return &cfg, nil
}

func defaultConfigDir() (string, error) {
	if base := os.Getenv("XDG_CONFIG_HOME"); base != "" {
		return filepath.Join(base, "jacpath"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, ".config", "jacpath"), nil
}

func defaultDataDir() (string, error) {
	if base := os.Getenv("XDG_DATA_HOME"); base != "" {
		return filepath.Join(base, "jacpath"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, ".local", "share", "jacpath"), nil
}
