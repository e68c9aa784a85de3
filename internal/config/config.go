package config

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
)

// Config holds application configuration
type Config struct {
	ServiceURL   string `json:"service_url"`
	LogLevel     string `json:"log_level"`
	LogFile      string `json:"log_file"`
	DownloadsDir string `json:"downloads_dir"`
}

// DefaultConfig returns a new config with default values
func DefaultConfig() *Config {
	return &Config{
		ServiceURL: "http://127.0.0.1:8000",
		LogLevel:   "info",
	}
}

// Dir returns the application config directory, creating it if needed.
// On Windows: %APPDATA%/ScreeningDesk
// On Unix: ~/.config/ScreeningDesk
func Dir() (string, error) {
	var configDir string

	if os.Getenv("APPDATA") != "" {
		// Windows
		configDir = filepath.Join(os.Getenv("APPDATA"), "ScreeningDesk")
	} else {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get user home directory: %w", err)
		}
		configDir = filepath.Join(homeDir, ".config", "ScreeningDesk")
	}

	if err := os.MkdirAll(configDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	return configDir, nil
}

// Path returns the path to the configuration file
func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// Load loads configuration from the default config path, then applies
// environment overrides.
func Load() (*Config, error) {
	configPath, err := Path()
	if err != nil {
		return nil, err
	}

	cfg, err := LoadFrom(configPath)
	if err != nil {
		return nil, err
	}
	cfg.applyEnv()
	return cfg, nil
}

// LoadFrom loads configuration from a specific path
func LoadFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// Return default config if file doesn't exist
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := json.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// Save saves the configuration to the default config path
func (c *Config) Save() error {
	configPath, err := Path()
	if err != nil {
		return err
	}
	return c.SaveTo(configPath)
}

// SaveTo saves the configuration to a specific path
func (c *Config) SaveTo(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.ServiceURL == "" {
		return fmt.Errorf("service_url is required")
	}

	u, err := url.Parse(c.ServiceURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("service_url is not a valid URL: %s", c.ServiceURL)
	}

	if c.DownloadsDir != "" {
		if _, err := os.Stat(c.DownloadsDir); err != nil {
			return fmt.Errorf("downloads directory not found: %w", err)
		}
	}

	return nil
}

// applyEnv overrides configuration values from environment variables.
func (c *Config) applyEnv() {
	if v := os.Getenv("SCREENDESK_SERVICE_URL"); v != "" {
		c.ServiceURL = v
	}
	if v := os.Getenv("SCREENDESK_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv("SCREENDESK_LOG_FILE"); v != "" {
		c.LogFile = v
	}
	if v := os.Getenv("SCREENDESK_DOWNLOADS_DIR"); v != "" {
		c.DownloadsDir = v
	}
}
