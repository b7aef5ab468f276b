package cli

import (
	"encoding/json"
	"fmt"

	"github.com/vburojevic/hfx/internal/config"
)

// ConfigCmd shows or manages configuration
type ConfigCmd struct {
	Show     ConfigShowCmd     `cmd:"" default:"withargs" help:"Show current configuration"`
	Path     ConfigPathCmd     `cmd:"" help:"Show configuration file path"`
	Generate ConfigGenerateCmd `cmd:"" help:"Generate sample configuration file"`
}

// ConfigShowCmd shows current configuration
type ConfigShowCmd struct{}

// Run executes the config show command
func (c *ConfigShowCmd) Run(globals *Globals) error {
	cfg := globals.Config
	if cfg == nil {
		cfg = config.Default()
	}

	if globals.Format == "ndjson" {
		output := map[string]interface{}{
			"type":     "config",
			"format":   cfg.Format,
			"quiet":    cfg.Quiet,
			"verbose":  cfg.Verbose,
			"endpoint": cfg.Endpoint,
			"defaults": cfg.Defaults,
		}
		encoder := json.NewEncoder(globals.Stdout)
		return encoder.Encode(output)
	}

	// Text output
	fmt.Fprintln(globals.Stdout, "Current Configuration:")
	fmt.Fprintln(globals.Stdout, "")
	fmt.Fprintf(globals.Stdout, "  format:   %s\n", cfg.Format)
	fmt.Fprintf(globals.Stdout, "  quiet:    %v\n", cfg.Quiet)
	fmt.Fprintf(globals.Stdout, "  verbose:  %v\n", cfg.Verbose)
	fmt.Fprintf(globals.Stdout, "  endpoint: %s\n", cfg.Endpoint)
	fmt.Fprintln(globals.Stdout, "")
	fmt.Fprintln(globals.Stdout, "Defaults:")
	fmt.Fprintf(globals.Stdout, "  dataset:       %s\n", cfg.Defaults.Dataset)
	fmt.Fprintf(globals.Stdout, "  config:        %s\n", cfg.Defaults.Config)
	fmt.Fprintf(globals.Stdout, "  split:         %s\n", cfg.Defaults.Split)
	fmt.Fprintf(globals.Stdout, "  field:         %s\n", cfg.Defaults.Field)
	fmt.Fprintf(globals.Stdout, "  output:        %s\n", cfg.Defaults.Output)
	fmt.Fprintf(globals.Stdout, "  corpus_format: %s\n", cfg.Defaults.CorpusFormat)
	fmt.Fprintf(globals.Stdout, "  progress:      %s\n", cfg.Defaults.Progress)
	fmt.Fprintf(globals.Stdout, "  page_size:     %d\n", cfg.Defaults.PageSize)

	if cfg.Defaults.Limit > 0 {
		fmt.Fprintf(globals.Stdout, "  limit:         %d\n", cfg.Defaults.Limit)
	}

	if path := config.ConfigFile(); path != "" {
		fmt.Fprintln(globals.Stdout, "")
		fmt.Fprintf(globals.Stdout, "Loaded from: %s\n", path)
	}

	return nil
}

// ConfigPathCmd shows config file path
type ConfigPathCmd struct{}

// Run executes the config path command
func (c *ConfigPathCmd) Run(globals *Globals) error {
	path := config.ConfigFile()

	if globals.Format == "ndjson" {
		output := map[string]interface{}{
			"type": "config_path",
			"path": path,
		}
		encoder := json.NewEncoder(globals.Stdout)
		return encoder.Encode(output)
	}

	if path == "" {
		fmt.Fprintln(globals.Stdout, "No configuration file found")
		fmt.Fprintln(globals.Stdout, "")
		fmt.Fprintln(globals.Stdout, "Create one at:")
		fmt.Fprintln(globals.Stdout, "  ~/.hfx.yaml")
		fmt.Fprintln(globals.Stdout, "  ./.hfx.yaml")
	} else {
		fmt.Fprintf(globals.Stdout, "Config file: %s\n", path)
	}

	return nil
}

// ConfigGenerateCmd generates a sample configuration file
type ConfigGenerateCmd struct{}

// Run executes the config generate command
func (c *ConfigGenerateCmd) Run(globals *Globals) error {
	sampleConfig := `# hfx configuration file
# Place this file at ~/.hfx.yaml or ./.hfx.yaml

# Output format: "ndjson" (default) or "text"
format: ndjson

# Suppress informational output
quiet: false

# Enable verbose/debug output
verbose: false

# Dataset server endpoint
endpoint: https://datasets-server.huggingface.co

# Default values for commands
defaults:
  # Dataset to export when --dataset is omitted
  dataset: wikipedia

  # Configuration of the default dataset
  config: 20220301.simple

  # Split to export
  split: train

  # Record field to extract
  field: text

  # Output file for the default dataset
  output: wikipedia_simple.jsonl

  # Corpus file format: "jsonl" or "nullsep"
  corpus_format: jsonl

  # Progress report interval ("0" disables)
  progress: 5s

  # Rows fetched per request (server caps at 100)
  page_size: 100

  # Stop after this many records (0 = whole split)
  # limit: 1000
`

	fmt.Fprint(globals.Stdout, sampleConfig)
	return nil
}
