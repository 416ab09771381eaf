package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

const DefaultExportKeyTemplate = "exports/items-{timestamp}.json"

// ConsoleConfig holds itemsctl settings. Values come from an optional TOML
// file and are then overridden by environment variables.
type ConsoleConfig struct {
	APIURL   string         `toml:"api_url" validate:"required,url"`
	Token    string         `toml:"token"`
	LogFile  string         `toml:"log_file"`
	Secret   string         `toml:"-"`
	Storage  *StorageConfig `toml:"storage" validate:"-"`
	filePath string
}

// StorageConfig is the S3-compatible target for `itemsctl export`
type StorageConfig struct {
	Endpoint    string `toml:"endpoint" validate:"required"`
	AccessKey   string `toml:"access_key" validate:"required"`
	SecretKey   string `toml:"secret_key" validate:"required"`
	Bucket      string `toml:"bucket" validate:"required"`
	Region      string `toml:"region"`
	UseSSL      bool   `toml:"use_ssl"`
	KeyTemplate string `toml:"key_template" validate:"required"`
}

func defaultConsoleConfig() *ConsoleConfig {
	return &ConsoleConfig{
		APIURL:  "http://localhost:8080",
		LogFile: "itemsctl.log",
	}
}

// LoadConsole reads the TOML file at path (a missing file is not an error)
// and applies ITEMS_API_URL, ITEMS_API_TOKEN, JWT_SECRET and S3_* overrides.
func LoadConsole(path string) (*ConsoleConfig, error) {
	cfg := defaultConsoleConfig()

	if path != "" {
		content, err := os.ReadFile(filepath.Clean(path))
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("failed to read config file: %w", err)
		default:
			if err := toml.Unmarshal(content, cfg); err != nil {
				var derr *toml.DecodeError
				if errors.As(err, &derr) {
					row, col := derr.Position()
					return nil, fmt.Errorf("failed to parse config file at line %d, column %d: %s", row, col, derr.Error())
				}
				return nil, fmt.Errorf("failed to parse config file: %w", err)
			}
			cfg.filePath = path
		}
	}

	cfg.APIURL = getEnv("ITEMS_API_URL", cfg.APIURL)
	cfg.Token = getEnv("ITEMS_API_TOKEN", cfg.Token)
	cfg.Secret = getEnv("JWT_SECRET", "")
	cfg.applyStorageEnv()

	if cfg.Storage != nil && cfg.Storage.KeyTemplate == "" {
		cfg.Storage.KeyTemplate = DefaultExportKeyTemplate
	}
	if cfg.Storage != nil && cfg.Storage.Region == "" {
		cfg.Storage.Region = "garage"
	}

	return cfg, nil
}

func (c *ConsoleConfig) applyStorageEnv() {
	endpoint := os.Getenv("S3_ENDPOINT")
	if endpoint == "" && c.Storage == nil {
		return
	}
	if c.Storage == nil {
		c.Storage = &StorageConfig{Bucket: "item-exports"}
	}
	s := c.Storage
	s.Endpoint = getEnv("S3_ENDPOINT", s.Endpoint)
	s.AccessKey = getEnv("S3_ACCESS_KEY", s.AccessKey)
	s.SecretKey = getEnv("S3_SECRET_KEY", s.SecretKey)
	s.Bucket = getEnv("S3_BUCKET", s.Bucket)
	s.Region = getEnv("S3_REGION", s.Region)
	s.UseSSL = getBoolEnv("S3_USE_SSL", s.UseSSL)
}

// FilePath returns the config file that was loaded, or "" when none was found
func (c *ConsoleConfig) FilePath() string {
	return c.filePath
}
