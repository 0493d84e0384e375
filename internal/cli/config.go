package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultBaseURL is used when no flag, environment variable or config file
// names a server.
const DefaultBaseURL = "http://localhost:8080"

// BaseURLEnv overrides the config file base URL.
const BaseURLEnv = "CHURNCTL_BASE_URL"

// Config represents the CLI configuration
type Config struct {
	BaseURL string `yaml:"base_url"`
	Format  string `yaml:"format,omitempty"`
}

// GetConfigPath returns the path to the config file
func GetConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".churnctl", "config.yaml"), nil
}

// LoadConfig loads the configuration from file
func LoadConfig() (*Config, error) {
	configPath, err := GetConfigPath()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			// Return empty config if file doesn't exist
			return &Config{}, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return &cfg, nil
}

// SaveConfig saves the configuration to file
func SaveConfig(cfg *Config) error {
	configPath, err := GetConfigPath()
	if err != nil {
		return err
	}

	// Create directory if it doesn't exist
	if err := os.MkdirAll(filepath.Dir(configPath), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// ResolveBaseURL picks the server address.
// Priority: command flag > environment variable > config file > default
func ResolveBaseURL(flag string) (string, error) {
	if flag != "" {
		return flag, nil
	}
	if v := os.Getenv(BaseURLEnv); v != "" {
		return v, nil
	}

	cfg, err := LoadConfig()
	if err != nil {
		return "", err
	}
	if cfg.BaseURL != "" {
		return cfg.BaseURL, nil
	}
	return DefaultBaseURL, nil
}

// InitConfig creates a default config file. An existing file is kept unless
// force is set.
func InitConfig(force bool) error {
	configPath, err := GetConfigPath()
	if err != nil {
		return err
	}
	if _, err := os.Stat(configPath); err == nil && !force {
		return fmt.Errorf("config file already exists at %s", configPath)
	}

	return SaveConfig(&Config{
		BaseURL: DefaultBaseURL,
		Format:  string(FormatTable),
	})
}
