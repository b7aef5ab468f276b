package cli

import (
	"errors"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/vburojevic/hfx/internal/config"
	"github.com/vburojevic/hfx/internal/corpus"
	"github.com/vburojevic/hfx/internal/output"
)

// CheckCmd validates the structure of an exported corpus file. Every
// document must parse, carry exactly the expected field, and be valid
// UTF-8. A failing file yields a CHECK_FAILED error and a non-zero exit.
type CheckCmd struct {
	File         string `arg:"" help:"Corpus file to validate"`
	CorpusFormat string `name:"corpus-format" help:"Corpus file format: jsonl or nullsep (default: by extension)"`
	Field        string `help:"Document field for jsonl corpora"`
}

// Run executes the check command
func (c *CheckCmd) Run(globals *Globals) error {
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

	r, err := corpus.Open(c.File, corpus.ReadOptions{Format: format, Field: c.Field, Strict: true})
	if err != nil {
		return c.outputError(globals, "READ_ERROR", err.Error(), hintForOutput(err))
	}
	defer func() {
		if cerr := r.Close(); cerr != nil {
			globals.Debug("failed to close corpus file: %v", cerr)
		}
	}()

	var records int64
	fail := func(message string, hint ...string) error {
		if globals.Format == "ndjson" {
			if werr := output.NewNDJSONWriter(globals.Stdout).WriteCheck(c.File, format, records, false); werr != nil {
				globals.Debug("failed to write check event: %v", werr)
			}
		}
		return c.outputError(globals, "CHECK_FAILED", message, hint...)
	}

	for {
		doc, err := r.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return fail(err.Error(), hintForCorpus(err))
		}
		if !utf8.ValidString(doc) {
			return fail(fmt.Sprintf("%s: document %d is not valid UTF-8", c.File, r.Line()))
		}
		records++
	}

	if globals.Format == "ndjson" {
		return output.NewNDJSONWriter(globals.Stdout).WriteCheck(c.File, format, records, true)
	}
	_, err = fmt.Fprintf(globals.Stdout, "%s %s: %s documents, %s\n",
		output.Styles.Success.Render("OK"), c.File, output.FormatCount(records), format)
	return err
}

func (c *CheckCmd) outputError(globals *Globals, code, message string, hint ...string) error {
	return outputErrorCommon(globals, code, message, hint...)
}
