package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"

	"github.com/vburojevic/hfx/internal/cli"
	"github.com/vburojevic/hfx/internal/config"
)

const quickStart = `hfx - export Hugging Face dataset splits to local text corpora

START HERE (this is the command you want):
  hfx export

With no flags this downloads the wikipedia dataset (config
20220301.simple, split train) and writes wikipedia_simple.jsonl
with one {"text": ...} document per line.

Other useful commands:
  hfx splits -d wikipedia               List configs and splits
  hfx stats wikipedia_simple.jsonl      Summarize an exported corpus
  hfx check wikipedia_simple.jsonl      Validate an exported corpus
  hfx doctor                            Check endpoint and local setup
`

func main() {
	// Show quick start if no args provided
	if len(os.Args) == 1 {
		fmt.Print(quickStart)
		return
	}

	// Load configuration from files/environment
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to load config: %v\n", err)
		cfg = config.Default()
	}

	var c cli.CLI

	// Apply config defaults before parsing
	// These will be overridden by CLI flags if specified
	vars := kong.Vars{
		"config_format": cfg.Format,
	}

	ctx := kong.Parse(&c,
		kong.Name("hfx"),
		kong.Description("hfx: Export Hugging Face dataset splits to local text corpora\n\nSTART HERE: hfx export"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
			Summary: true,
		}),
		vars,
	)

	// Create globals with config fallbacks
	globals := cli.NewGlobalsWithConfig(&c, cfg)
	// Record which flags were explicitly provided so commands can distinguish
	// CLI overrides from config defaults.
	flagsSet := map[string]bool{}
	for _, p := range ctx.Path {
		if p.Flag != nil {
			flagsSet[p.Flag.Name] = true
		}
	}
	globals.FlagsSet = flagsSet
	if err := ctx.Run(globals); err != nil {
		os.Exit(1)
	}
}
