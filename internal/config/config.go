package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config holds application configuration
type Config struct {
	// Global settings
	Format   string `mapstructure:"format" json:"format"`
	Quiet    bool   `mapstructure:"quiet" json:"quiet"`
	Verbose  bool   `mapstructure:"verbose" json:"verbose"`
	Endpoint string `mapstructure:"endpoint" json:"endpoint"`

	// Default values for commands
	Defaults DefaultsConfig `mapstructure:"defaults" json:"defaults"`
}

// DefaultsConfig holds default values for various commands
type DefaultsConfig struct {
	// Export command defaults
	Dataset      string `mapstructure:"dataset" json:"dataset"`
	Config       string `mapstructure:"config" json:"config"`
	Split        string `mapstructure:"split" json:"split"`
	Field        string `mapstructure:"field" json:"field"`
	Output       string `mapstructure:"output" json:"output"`
	CorpusFormat string `mapstructure:"corpus_format" json:"corpus_format"`
	Progress     string `mapstructure:"progress" json:"progress"`
	PageSize     int    `mapstructure:"page_size" json:"page_size"`

	// Shared defaults
	Limit int `mapstructure:"limit" json:"limit,omitempty"`
}

// Default returns a Config with default values
func Default() *Config {
	return &Config{
		Format:   "ndjson",
		Quiet:    false,
		Verbose:  false,
		Endpoint: "https://datasets-server.huggingface.co",
		Defaults: DefaultsConfig{
			Dataset:      "wikipedia",
			Config:       "20220301.simple",
			Split:        "train",
			Field:        "text",
			Output:       "wikipedia_simple.jsonl",
			CorpusFormat: "jsonl",
			Progress:     "5s",
			PageSize:     100,
		},
	}
}

// Load loads configuration from files and environment
// Config file search order (highest precedence first):
// 1. ./.hfx.yaml or ./.hfx.yml
// 2. ~/.hfx.yaml or ~/.hfx.yml
// 3. $XDG_CONFIG_HOME/hfx/config.yaml (or ~/.config/hfx/config.yaml)
// 4. /etc/hfx/config.yaml
func Load() (*Config, error) {
	cfg := Default()

	// Try to find and load config file in order of precedence
	configFile := findConfigFile()
	if configFile != "" {
		v := viper.New()
		v.SetConfigFile(configFile)

		if err := v.ReadInConfig(); err != nil {
			return nil, err
		}

		if err := v.Unmarshal(cfg); err != nil {
			return nil, err
		}
	}

	// Override with environment variables
	applyEnvOverrides(cfg)

	return cfg, nil
}

// findConfigFile searches for config file in standard locations
func findConfigFile() string {
	// Config file names to search for (in order)
	names := []string{".hfx.yaml", ".hfx.yml", "hfx.yaml", "hfx.yml"}

	// Get home directory
	home, homeErr := os.UserHomeDir()

	// Get config directory (XDG_CONFIG_HOME or ~/.config)
	configDir, configDirErr := os.UserConfigDir()

	// Search locations in order of precedence (highest first)
	var searchPaths []string

	// 1. Current directory
	cwd, err := os.Getwd()
	if err == nil {
		searchPaths = append(searchPaths, cwd)
	}

	// 2. Home directory
	if homeErr == nil {
		searchPaths = append(searchPaths, home)
	}

	// 3. Config directory (e.g., ~/.config/hfx/)
	if configDirErr == nil {
		searchPaths = append(searchPaths, filepath.Join(configDir, "hfx"))
	}

	// 4. System config
	searchPaths = append(searchPaths, "/etc/hfx")

	// Search for config file
	for _, dir := range searchPaths {
		for _, name := range names {
			path := filepath.Join(dir, name)
			if _, err := os.Stat(path); err == nil {
				return path
			}
		}
		// Also check for config.yaml in subdirs
		path := filepath.Join(dir, "config.yaml")
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("HFX_FORMAT"); v != "" {
		cfg.Format = v
	}
	if v := os.Getenv("HFX_QUIET"); v == "true" || v == "1" {
		cfg.Quiet = true
	}
	if v := os.Getenv("HFX_VERBOSE"); v == "true" || v == "1" {
		cfg.Verbose = true
	}
	if v := os.Getenv("HFX_ENDPOINT"); v != "" {
		cfg.Endpoint = v
	}
	if v := os.Getenv("HFX_DATASET"); v != "" {
		cfg.Defaults.Dataset = v
	}
	if v := os.Getenv("HFX_CONFIG"); v != "" {
		cfg.Defaults.Config = v
	}
	if v := os.Getenv("HFX_SPLIT"); v != "" {
		cfg.Defaults.Split = v
	}
	if v := os.Getenv("HFX_FIELD"); v != "" {
		cfg.Defaults.Field = v
	}
	if v := os.Getenv("HFX_OUTPUT"); v != "" {
		cfg.Defaults.Output = v
	}
}

// LoadFromFile loads configuration from a specific file
func LoadFromFile(path string) (*Config, error) {
	v := viper.New()

	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}

	cfg := Default()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// ConfigFile returns the path to the config file that would be loaded
func ConfigFile() string {
	return findConfigFile()
}
