package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config represents the CLI configuration
type Config struct {
	DescriptorPath string `json:"descriptor_path,omitempty"`
	IndexPath      string `json:"index_path,omitempty"`
	Debug          bool   `json:"debug"`
}

// DefaultConfig returns a config with default values: built-in descriptor,
// embedded package index, debug off.
func DefaultConfig() Config {
	return Config{}
}

// LoadConfig loads configuration with precedence: env vars > file > defaults
func LoadConfig() Config {
	return LoadConfigFrom("")
}

// LoadConfigFrom loads configuration like LoadConfig, but reads the config
// file from an explicit path. An empty path selects the default location.
func LoadConfigFrom(path string) Config {
	config := DefaultConfig()

	if fileConfig, err := loadConfigFile(path); err == nil {
		config = fileConfig
	}

	if path := os.Getenv("DENV_DESCRIPTOR"); path != "" {
		config.DescriptorPath = path
	}
	if path := os.Getenv("DENV_INDEX"); path != "" {
		config.IndexPath = path
	}
	if debug := os.Getenv("DENV_DEBUG"); debug == "1" || debug == "true" {
		config.Debug = true
	}

	return config
}

// SaveConfig saves configuration to file
func SaveConfig(config Config) error {
	configPath, err := getConfigPath()
	if err != nil {
		return fmt.Errorf("failed to get config path: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// loadConfigFile loads config from file
func loadConfigFile(path string) (Config, error) {
	configPath := path
	if configPath == "" {
		defaultPath, err := getConfigPath()
		if err != nil {
			return Config{}, err
		}
		configPath = defaultPath
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return Config{}, err
	}

	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		return Config{}, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// getConfigPath returns the path to the config file
func getConfigPath() (string, error) {
	if dir := os.Getenv("DENV_CONFIG_DIR"); dir != "" {
		return filepath.Join(dir, "config.json"), nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".config", "denv", "config.json"), nil
}

// GetConfigPath returns the config file path (public helper)
func GetConfigPath() (string, error) {
	return getConfigPath()
}
