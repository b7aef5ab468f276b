package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/google/uuid"
	"github.com/mattn/go-isatty"

	"github.com/vburojevic/hfx/internal/config"
	"github.com/vburojevic/hfx/internal/corpus"
	"github.com/vburojevic/hfx/internal/domain"
	"github.com/vburojevic/hfx/internal/output"
	"github.com/vburojevic/hfx/internal/provider"
)

// ExportCmd downloads a dataset split and writes it to a local corpus file
type ExportCmd struct {
	Dataset      string `short:"d" help:"Dataset name on the Hugging Face Hub"`
	Config       string `short:"c" help:"Dataset configuration name"`
	Split        string `short:"s" help:"Split to export"`
	Field        string `help:"Record field to extract (dotted path for nested fields)"`
	Output       string `short:"o" help:"Output file path (default: derived from dataset and config)"`
	CorpusFormat string `name:"corpus-format" help:"Corpus file format: jsonl or nullsep"`
	Progress     string `help:"Progress report interval (e.g. 5s, 0 to disable)"`
	Limit        int64  `short:"n" help:"Stop after this many records (0 = whole split)"`
	PageSize     int    `name:"page-size" help:"Rows fetched per request (server caps at 100)"`
	DryRunJSON   bool   `name:"dry-run-json" help:"Print the resolved export plan as JSON and exit"`

	// Injected in tests; nil means the wall clock.
	Clock clock.Clock `kong:"-"`
}

// exportPlan is the resolved invocation printed by --dry-run-json.
type exportPlan struct {
	Dataset      string `json:"dataset"`
	Config       string `json:"config"`
	Split        string `json:"split"`
	Field        string `json:"field"`
	Output       string `json:"output"`
	CorpusFormat string `json:"corpus_format"`
	PageSize     int    `json:"page_size"`
	Limit        int64  `json:"limit,omitempty"`
	Endpoint     string `json:"endpoint"`
}

// Run executes the export command
func (c *ExportCmd) Run(globals *Globals) error {
	maybeNoStyle(globals)

	cfg := globals.Config
	if cfg == nil {
		cfg = config.Default()
	}
	applyExportDefaults(cfg, c)

	if c.Dataset == "" {
		return c.outputError(globals, "INVALID_FLAGS", "no dataset given and none configured; pass --dataset")
	}
	if c.Config == "" {
		return c.outputError(globals, "INVALID_FLAGS",
			fmt.Sprintf("no config given for dataset %s; list them with: hfx splits -d %s", c.Dataset, c.Dataset))
	}
	if c.Split == "" {
		return c.outputError(globals, "INVALID_FLAGS", "no split given and none configured; pass --split")
	}
	if c.Field == "" {
		return c.outputError(globals, "INVALID_FLAGS", "no field given and none configured; pass --field")
	}
	switch c.CorpusFormat {
	case corpus.FormatJSONL, corpus.FormatNullSep:
	default:
		return c.outputError(globals, "INVALID_FLAGS",
			fmt.Sprintf("unknown corpus format %q (expected jsonl or nullsep)", c.CorpusFormat))
	}
	if c.Limit < 0 {
		return c.outputError(globals, "INVALID_FLAGS", "--limit must be zero or positive")
	}
	if c.Output == "" {
		c.Output = deriveOutput(c.Dataset, c.Config, c.CorpusFormat)
		globals.Debug("derived output path: %s", c.Output)
	}

	var interval time.Duration
	if c.Progress != "" {
		d, err := time.ParseDuration(c.Progress)
		if err != nil {
			return c.outputError(globals, "INVALID_INTERVAL", fmt.Sprintf("invalid progress interval: %s", err))
		}
		if d > 0 {
			interval = d
		}
	}

	if globals.FlagProvided("page-size") && c.PageSize > 100 {
		emitWarning(globals, fmt.Sprintf("page size %d exceeds the server limit; fetching 100 rows per request", c.PageSize))
	}

	spec := provider.Spec{Dataset: c.Dataset, Config: c.Config, Split: c.Split}
	hub := provider.NewHub(provider.HubOptions{Endpoint: cfg.Endpoint, PageSize: c.PageSize})

	if c.DryRunJSON {
		enc := json.NewEncoder(globals.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(exportPlan{
			Dataset:      c.Dataset,
			Config:       c.Config,
			Split:        c.Split,
			Field:        c.Field,
			Output:       c.Output,
			CorpusFormat: c.CorpusFormat,
			PageSize:     c.PageSize,
			Limit:        c.Limit,
			Endpoint:     hub.Endpoint(),
		})
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	clk := c.Clock
	if clk == nil {
		clk = clock.New()
	}

	// Unique ID for this export invocation (carried on all events)
	exportID := uuid.NewString()

	var ndw *output.NDJSONWriter
	if globals.Format == "ndjson" {
		ndw = output.NewNDJSONWriter(globals.Stdout)
	}

	if ndw != nil {
		if err := ndw.WriteMetadata(Version, Commit, BuildDate, exportID); err != nil {
			return err
		}
	}
	if !globals.Quiet {
		msg := fmt.Sprintf("Exporting %s/%s split %s to %s", c.Dataset, c.Config, c.Split, c.Output)
		if ndw != nil {
			if err := ndw.WriteInfo(msg, c.Dataset, c.Config, c.Split, c.CorpusFormat); err != nil {
				return err
			}
		} else {
			if _, err := fmt.Fprintln(globals.Stderr, msg); err != nil {
				globals.Debug("failed to write export info: %v", err)
			}
			if _, err := fmt.Fprintln(globals.Stderr, "Press Ctrl+C to stop with a partial file"); err != nil {
				globals.Debug("failed to write export info: %v", err)
			}
		}
	}

	w, err := corpus.Create(c.Output, c.CorpusFormat, c.Field)
	if err != nil {
		return c.outputError(globals, "FILE_CREATE_ERROR", err.Error(), hintForOutput(err))
	}
	defer func() {
		if cerr := w.Close(); cerr != nil {
			globals.Debug("failed to close output file: %v", cerr)
		}
	}()

	globals.Debug("starting row stream: %s (page size %d)", hub.Endpoint(), c.PageSize)
	stream := hub.Stream(ctx, spec)
	defer stream.Stop()

	var progressTicker *clock.Ticker
	if interval > 0 {
		progressTicker = clk.Ticker(interval)
		defer progressTicker.Stop()
	}

	start := clk.Now()
	var truncated int64
	interrupted := false
	progressDirty := false
	records := stream.Records()

loop:
	for {
		select {
		case <-ctx.Done():
			interrupted = true
			break loop

		case rec, ok := <-records:
			if !ok {
				break loop
			}
			text, found := rec.Field(c.Field)
			if !found {
				ferr := &provider.FieldError{Index: rec.Index, Field: c.Field}
				return c.outputError(globals, "MISSING_FIELD", ferr.Error(), hintForProvider(ferr))
			}
			if rec.Truncated(c.Field) {
				truncated++
			}
			if err := w.Append(text); err != nil {
				return c.outputError(globals, "WRITE_ERROR", err.Error(), hintForOutput(err))
			}
			if c.Limit > 0 && w.Records() >= c.Limit {
				globals.Debug("record limit reached: %d", c.Limit)
				break loop
			}

		case <-func() <-chan time.Time {
			if progressTicker != nil {
				return progressTicker.C
			}
			return nil
		}():
			if c.emitProgress(globals, ndw, w, exportID, clk.Since(start)) {
				progressDirty = true
			}
		}
	}

	if progressDirty {
		fmt.Fprintln(globals.Stderr)
	}

	stream.Stop()
	if err := stream.Err(); err != nil {
		return c.outputError(globals, "PROVIDER_ERROR", err.Error(), hintForProvider(err))
	}

	if err := w.Close(); err != nil {
		return c.outputError(globals, "WRITE_ERROR", err.Error(), hintForOutput(err))
	}

	if truncated > 0 {
		emitWarning(globals, fmt.Sprintf("server truncated %d cell(s); affected documents are incomplete", truncated))
	}

	elapsed := clk.Since(start)
	summary := domain.NewExportSummary()
	summary.ExportID = exportID
	summary.Dataset = c.Dataset
	summary.Config = c.Config
	summary.Split = c.Split
	summary.Field = c.Field
	summary.Output = c.Output
	summary.Format = c.CorpusFormat
	summary.Records = w.Records()
	summary.Bytes = w.Bytes()
	summary.TruncatedCells = truncated
	summary.ElapsedSeconds = elapsed.Seconds()
	summary.Interrupted = interrupted
	if secs := elapsed.Seconds(); secs > 0 {
		summary.RecordsPerSec = float64(summary.Records) / secs
		summary.BytesPerSec = float64(summary.Bytes) / secs
	}

	if ndw != nil {
		if err := ndw.WriteSummary(summary); err != nil {
			return err
		}
	} else if !globals.Quiet {
		if err := output.NewTextWriter(globals.Stdout).WriteSummary(summary); err != nil {
			return err
		}
	}

	if interrupted {
		return c.outputError(globals, "INTERRUPTED",
			fmt.Sprintf("interrupted after %d records; partial corpus kept at %s", summary.Records, c.Output))
	}
	return nil
}

// emitProgress reports export throughput mid-run. Reports whether it wrote
// a carriage-return line to stderr that still needs a trailing newline.
func (c *ExportCmd) emitProgress(globals *Globals, ndw *output.NDJSONWriter, w *corpus.Writer, exportID string, elapsed time.Duration) bool {
	if globals.Quiet {
		return false
	}
	secs := elapsed.Seconds()
	var rps, bps float64
	if secs > 0 {
		rps = float64(w.Records()) / secs
		bps = float64(w.Bytes()) / secs
	}
	if ndw != nil {
		if err := ndw.WriteProgress(&output.ProgressOutput{
			ExportID:       exportID,
			Records:        w.Records(),
			Bytes:          w.Bytes(),
			ElapsedSeconds: secs,
			RecordsPerSec:  rps,
			BytesPerSec:    bps,
		}); err != nil {
			globals.Debug("failed to write progress: %v", err)
		}
		return false
	}
	if !stderrIsTerminal(globals) {
		return false
	}
	fmt.Fprintf(globals.Stderr, "\r%s records  %s  %s",
		output.FormatCount(w.Records()), output.FormatBytes(w.Bytes()), output.FormatRate(rps))
	return true
}

func (c *ExportCmd) outputError(globals *Globals, code, message string, hint ...string) error {
	return outputErrorCommon(globals, code, message, hint...)
}

func stderrIsTerminal(globals *Globals) bool {
	f, ok := globals.Stderr.(*os.File)
	return ok && isatty.IsTerminal(f.Fd())
}

func maybeNoStyle(globals *Globals) {
	if globals == nil {
		return
	}
	if f, ok := globals.Stdout.(*os.File); ok {
		if !isatty.IsTerminal(f.Fd()) {
			output.DisableStyles()
		}
	}
}

// applyExportDefaults fills unset flags from configuration. The config and
// output defaults are tied to the default dataset; an explicitly named
// dataset gets a derived output path instead.
func applyExportDefaults(cfg *config.Config, c *ExportCmd) {
	if cfg == nil {
		return
	}
	if c.Dataset == "" {
		c.Dataset = cfg.Defaults.Dataset
		if c.Config == "" {
			c.Config = cfg.Defaults.Config
		}
		if c.Output == "" {
			c.Output = cfg.Defaults.Output
		}
	}
	if c.Split == "" {
		c.Split = cfg.Defaults.Split
	}
	if c.Field == "" {
		c.Field = cfg.Defaults.Field
	}
	if c.CorpusFormat == "" {
		c.CorpusFormat = cfg.Defaults.CorpusFormat
	}
	if c.Progress == "" {
		c.Progress = cfg.Defaults.Progress
	}
	if c.PageSize == 0 {
		c.PageSize = cfg.Defaults.PageSize
	}
	if c.Limit == 0 && cfg.Defaults.Limit > 0 {
		c.Limit = int64(cfg.Defaults.Limit)
	}
}

// deriveOutput names the corpus file after the dataset and config,
// e.g. wikipedia + 20220301.simple becomes wikipedia_simple.jsonl.
func deriveOutput(dataset, cfgName, format string) string {
	base := sanitizeName(dataset)
	if cfgName != "" {
		if i := strings.LastIndex(cfgName, "."); i >= 0 && i+1 < len(cfgName) {
			cfgName = cfgName[i+1:]
		}
		base += "_" + sanitizeName(cfgName)
	}
	ext := ".jsonl"
	if format == corpus.FormatNullSep {
		ext = ".txt"
	}
	return base + ext
}

func sanitizeName(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	return b.String()
}
