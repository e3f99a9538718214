package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// Environment variables that override the config file.
const (
	EnvDataPath = "RECARGOS_DATA"
	EnvStorage  = "RECARGOS_STORAGE"
	EnvLogLevel = "RECARGOS_LOG_LEVEL"
	EnvConfig   = "RECARGOS_CONFIG"
)

type Config struct {
	DataPath        string `yaml:"DataPath"`
	Storage         string `yaml:"Storage"`
	HistoryPath     string `yaml:"HistoryPath"`
	LogLevel        string `yaml:"LogLevel"`
	PreloadHolidays bool   `yaml:"PreloadHolidays"`
	CacheSize       int    `yaml:"CacheSize"`
}

// Load reads the config file, falling back to defaults for anything it does
// not set, then applies .env and environment overrides.
func Load() (*Config, error) {
	return LoadFile(getConfigPath())
}

// LoadFile is Load with an explicit file path.
func LoadFile(configPath string) (*Config, error) {
	// A missing .env is fine.
	_ = godotenv.Load()

	cfg := getDefaultConfig()

	data, err := os.ReadFile(configPath)
	if err != nil && !os.IsNotExist(err) {
		return nil, err
	}
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", configPath, err)
		}
	}

	cfg.applyEnv()

	// Expand ~ in paths
	cfg.DataPath = expandHome(cfg.DataPath)
	cfg.HistoryPath = expandHome(cfg.HistoryPath)
	cfg.Storage = strings.ToLower(strings.TrimSpace(cfg.Storage))

	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv(EnvDataPath); v != "" {
		c.DataPath = v
	}
	if v := os.Getenv(EnvStorage); v != "" {
		c.Storage = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.LogLevel = v
	}
}

func Save(cfg *Config) error {
	return SaveFile(getConfigPath(), cfg)
}

func SaveFile(configPath string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(configPath, data, 0644)
}

// Path is where Load looks for the config file.
func Path() string {
	return getConfigPath()
}

func getConfigPath() string {
	if p := os.Getenv(EnvConfig); p != "" {
		return p
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".recargos.yaml")
}

func getDefaultConfig() *Config {
	home, _ := os.UserHomeDir()
	return &Config{
		DataPath:        filepath.Join(home, ".recargos", "data.json"),
		Storage:         "json",
		HistoryPath:     filepath.Join(home, ".recargos", "history"),
		LogLevel:        "warn",
		PreloadHolidays: true,
		CacheSize:       1024,
	}
}

func expandHome(p string) string {
	if strings.HasPrefix(p, "~/") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, p[2:])
	}
	return p
}

// Level parses LogLevel for logrus.
func (c *Config) Level() (log.Level, error) {
	return log.ParseLevel(c.LogLevel)
}

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("config validation error: %s - %s", e.Field, e.Message)
}

// Validate checks the configuration for common issues
func (c *Config) Validate() error {
	if c.DataPath == "" {
		return &ValidationError{Field: "DataPath", Message: "data path is required"}
	}

	switch c.Storage {
	case "json", "sqlite":
	default:
		return &ValidationError{Field: "Storage", Message: fmt.Sprintf("unknown backend %q (use json or sqlite)", c.Storage)}
	}

	if c.HistoryPath == "" {
		return &ValidationError{Field: "HistoryPath", Message: "history path is required"}
	}

	if _, err := c.Level(); err != nil {
		return &ValidationError{Field: "LogLevel", Message: err.Error()}
	}

	if c.CacheSize < 0 {
		return &ValidationError{Field: "CacheSize", Message: "cache size cannot be negative"}
	}

	return nil
}
