package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds start-up configuration for streakr.
type Config struct {
	DB      DBConfig  `yaml:"db"`
	Log     LogConfig `yaml:"log"`
	Subject string    `yaml:"subject"`
}

type DBConfig struct {
	Path string `yaml:"path"`
}

type LogConfig struct {
	Level string `yaml:"level"`
	Path  string `yaml:"path"`
}

// Load builds the configuration from defaults, an optional YAML file named
// by STREAKR_CONFIG_PATH, and environment overrides, in that order.
func Load() (Config, error) {
	dir, err := defaultDir()
	if err != nil {
		return Config{}, err
	}
	cfg := Config{
		DB: DBConfig{
			Path: filepath.Join(dir, "streakr.db"),
		},
		Log: LogConfig{
			Level: "info",
			Path:  filepath.Join(dir, "streakr.log"),
		},
	}

	if path := os.Getenv("STREAKR_CONFIG_PATH"); path != "" {
		if err := loadFromFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	if dbPath := os.Getenv("STREAKR_DB_PATH"); dbPath != "" {
		cfg.DB.Path = dbPath
	}
	if logPath := os.Getenv("STREAKR_LOG_PATH"); logPath != "" {
		cfg.Log.Path = logPath
	}
	if level := os.Getenv("STREAKR_LOG_LEVEL"); level != "" {
		cfg.Log.Level = level
	}
	if subject := os.Getenv("STREAKR_SUBJECT"); subject != "" {
		cfg.Subject = subject
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level %q", c.Log.Level)
	}
	if c.DB.Path == "" {
		return fmt.Errorf("db path must not be empty")
	}
	return nil
}

func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

// defaultDir returns ~/.config/streakr
func defaultDir() (string, error) {
	cfg, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locate config dir: %w", err)
	}
	return filepath.Join(cfg, "streakr"), nil
}
