package cli

import (
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/vburojevic/hfx/internal/config"
)

// CLI is the root command structure for hfx
type CLI struct {
	// Global flags
	Format  string `short:"f" default:"${config_format}" enum:"ndjson,text" help:"Output format"`
	Quiet   bool   `short:"q" help:"Suppress informational output (only emit results and errors)"`
	Verbose bool   `short:"v" help:"Show debug output (requests, pagination, internal state)"`

	Version VersionCmd `cmd:"" help:"Show version information"`

	// Commands
	Export     ExportCmd     `cmd:"" default:"withargs" help:"Export a dataset split to a local corpus file"`
	Splits     SplitsCmd     `cmd:"" help:"List configs and splits available for a dataset"`
	Pick       PickCmd       `cmd:"" help:"Interactively pick a split to export"`
	Stats      StatsCmd      `cmd:"" help:"Summarize a previously exported corpus file"`
	Check      CheckCmd      `cmd:"" help:"Validate the structure of an exported corpus file"`
	Config     ConfigCmd     `cmd:"" help:"Show or manage configuration"`
	Doctor     DoctorCmd     `cmd:"" help:"Check endpoint reachability and local setup"`
	Completion CompletionCmd `cmd:"" help:"Generate shell completions"`
}

// Globals holds shared state for all commands
type Globals struct {
	Format  string
	Quiet   bool
	Verbose bool
	Stdout  io.Writer
	Stderr  io.Writer
	Config  *config.Config
	Log     *zap.SugaredLogger

	// FlagsSet records which flags were explicitly provided on the command
	// line, so commands can distinguish overrides from defaults.
	FlagsSet map[string]bool
}

// NewGlobals creates a new Globals instance from CLI flags
func NewGlobals(cli *CLI) *Globals {
	return NewGlobalsWithConfig(cli, config.Default())
}

// NewGlobalsWithConfig creates a new Globals instance with config fallbacks
func NewGlobalsWithConfig(cli *CLI, cfg *config.Config) *Globals {
	g := &Globals{
		Format:  cli.Format,
		Quiet:   cli.Quiet,
		Verbose: cli.Verbose,
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
		Config:  cfg,
	}

	// Apply config values if CLI flags weren't explicitly set
	if cfg != nil {
		if !cli.Quiet && cfg.Quiet {
			g.Quiet = cfg.Quiet
		}
		if !cli.Verbose && cfg.Verbose {
			g.Verbose = cfg.Verbose
		}
	}

	g.Log = newLogger(g.Verbose, g.Stderr)
	return g
}

// FlagProvided reports whether a flag was explicitly given on the command line
func (g *Globals) FlagProvided(name string) bool {
	return g.FlagsSet[name]
}

// Debug prints a debug message if verbose mode is enabled
func (g *Globals) Debug(format string, args ...interface{}) {
	if g.Verbose && g.Log != nil {
		g.Log.Debugf(format, args...)
	}
}

// VersionCmd shows version information
type VersionCmd struct{}

// Run executes the version command
func (v *VersionCmd) Run(globals *Globals) error {
	if globals.Format == "ndjson" {
		io.WriteString(globals.Stdout, `{"type":"version","version":"`+Version+`","commit":"`+Commit+`"}`+"\n")
	} else {
		io.WriteString(globals.Stdout, "hfx version "+Version+" ("+Commit+")\n")
	}
	return nil
}

// Version information (set at build time)
var (
	Version   = "dev"
	Commit    = "none"
	BuildDate = ""
)
