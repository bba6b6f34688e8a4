package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ConfigFileName is the name of the config file
const ConfigFileName = "config.yaml"

// FileConfig represents the configuration file structure
type FileConfig struct {
	// Inference settings
	Endpoint string `yaml:"endpoint,omitempty"`
	Model    string `yaml:"model,omitempty"`

	// Web search settings
	WebSearch *WebSearchConfig `yaml:"web_search,omitempty"`

	// Default flags
	Defaults *DefaultsConfig `yaml:"defaults,omitempty"`
}

// WebSearchConfig holds Bright Data credentials
type WebSearchConfig struct {
	Token string `yaml:"token,omitempty"`
	Zone  string `yaml:"zone,omitempty"`
}

// DefaultsConfig holds default flag values
type DefaultsConfig struct {
	Render    bool `yaml:"render,omitempty"`
	WebSearch bool `yaml:"web_search,omitempty"`
}

// GetConfigPaths returns the paths to check for config files (in order of priority)
func GetConfigPaths() []string {
	var paths []string

	// 1. Current directory
	paths = append(paths, filepath.Join(".", ".llm-cli", ConfigFileName))

	// 2. User config directory
	if configDir, err := os.UserConfigDir(); err == nil {
		paths = append(paths, filepath.Join(configDir, "llm-cli", ConfigFileName))
	}

	// 3. Home directory
	if homeDir, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(homeDir, ".config", "llm-cli", ConfigFileName))
	}

	return paths
}

// LoadConfigFile attempts to load configuration from a file
func LoadConfigFile() (*FileConfig, error) {
	paths := GetConfigPaths()

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			return loadConfigFromPath(path)
		}
	}

	// No config file found, return empty config
	return &FileConfig{}, nil
}

// loadConfigFromPath loads config from a specific path
func loadConfigFromPath(path string) (*FileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg FileConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	return &cfg, nil
}

// ApplyFileConfig applies file configuration to the main Config.
// File config has lower priority than environment variables and CLI flags,
// so it only fills fields that are still empty.
func (c *Config) ApplyFileConfig(fc *FileConfig) {
	if fc == nil {
		return
	}

	if c.Endpoint == "" && fc.Endpoint != "" {
		c.Endpoint = fc.Endpoint
	}

	if c.Model == "" && fc.Model != "" {
		c.Model = fc.Model
	}

	if fc.WebSearch != nil {
		if c.SearchToken == "" && fc.WebSearch.Token != "" {
			c.SearchToken = fc.WebSearch.Token
		}
		if c.SearchZone == "" && fc.WebSearch.Zone != "" {
			c.SearchZone = fc.WebSearch.Zone
		}
	}

	// Defaults only switch flags on; a "false" in the file cannot override a
	// flag because an unset bool flag is indistinguishable from one set to false
	if fc.Defaults != nil {
		if fc.Defaults.Render && !c.Render {
			c.Render = true
		}
		if fc.Defaults.WebSearch && !c.WebSearch {
			c.WebSearch = true
		}
	}
}

// CreateDefaultConfigFile creates a default config file at the user config directory
func CreateDefaultConfigFile() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("could not determine config directory: %w", err)
		}
		configDir = filepath.Join(homeDir, ".config")
	}

	dir := filepath.Join(configDir, "llm-cli")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	path := filepath.Join(dir, ConfigFileName)
	if _, err := os.Stat(path); err == nil {
		return path, fmt.Errorf("config file already exists at %s", path)
	}

	defaultConfig := `# llm-cli configuration
# Location: ~/.config/llm-cli/config.yaml

# Base URL of the inference server. Both the server root and its /api prefix
# are accepted; trailing slashes are ignored.
# endpoint: http://localhost:11434

# Default model to use
# model: llama3.2

# Web search settings (Bright Data)
# web_search:
#   token: your-api-token
#   zone: serp_api1

# Default flags
# defaults:
#   render: true
#   web_search: false
`

	if err := os.WriteFile(path, []byte(defaultConfig), 0600); err != nil {
		return "", fmt.Errorf("failed to write config file: %w", err)
	}

	return path, nil
}
