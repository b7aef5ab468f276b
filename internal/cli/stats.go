package cli

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/benbjohnson/clock"

	"github.com/vburojevic/hfx/internal/config"
	"github.com/vburojevic/hfx/internal/corpus"
	"github.com/vburojevic/hfx/internal/output"
)

// StatsCmd summarizes a previously exported corpus file
type StatsCmd struct {
	File         string `arg:"" help:"Corpus file to summarize"`
	CorpusFormat string `name:"corpus-format" help:"Corpus file format: jsonl or nullsep (default: by extension)"`
	Field        string `help:"Document field for jsonl corpora"`

	Clock clock.Clock `kong:"-"`
}

// Run executes the stats command
func (c *StatsCmd) Run(globals *Globals) error {
	maybeNoStyle(globals)

	cfg := globals.Config
	if cfg == nil {
		cfg = config.Default()
	}
	if c.Field == "" {
		c.Field = cfg.Defaults.Field
	}
	format := c.CorpusFormat
	if format == "" {
		format = detectCorpusFormat(c.File)
		globals.Debug("detected corpus format: %s", format)
	}

	clk := c.Clock
	if clk == nil {
		clk = clock.New()
	}
	start := clk.Now()

	r, err := corpus.Open(c.File, corpus.ReadOptions{Format: format, Field: c.Field})
	if err != nil {
		return c.outputError(globals, "READ_ERROR", err.Error(), hintForOutput(err))
	}
	defer func() {
		if cerr := r.Close(); cerr != nil {
			globals.Debug("failed to close corpus file: %v", cerr)
		}
	}()

	var collector corpus.StatsCollector
	for {
		doc, err := r.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return c.outputError(globals, "READ_ERROR", err.Error(), hintForCorpus(err))
		}
		collector.Add(doc)
	}

	stats := collector.Stats(clk.Since(start))
	stats.Path = c.File
	stats.Format = format
	if format == corpus.FormatJSONL {
		stats.Field = c.Field
	}

	if globals.Format == "ndjson" {
		return output.NewNDJSONWriter(globals.Stdout).WriteStats(stats)
	}

	if _, err := fmt.Fprintf(globals.Stdout, "Corpus %s (%s)\n\n", c.File, format); err != nil {
		return err
	}
	output.RenderStatsTable(globals.Stdout, stats)
	return nil
}

func (c *StatsCmd) outputError(globals *Globals, code, message string, hint ...string) error {
	return outputErrorCommon(globals, code, message, hint...)
}

// detectCorpusFormat guesses the corpus format from the file extension.
func detectCorpusFormat(path string) string {
	switch filepath.Ext(path) {
	case ".txt", ".nullsep":
		return corpus.FormatNullSep
	default:
		return corpus.FormatJSONL
	}
}
