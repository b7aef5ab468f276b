package cli

import (
	"fmt"

	"github.com/vburojevic/hfx/internal/output"
)

// emitWarning respects format/quiet.
func emitWarning(globals *Globals, msg string) {
	if globals.Quiet {
		return
	}
	if globals.Format == "ndjson" {
		if err := output.NewNDJSONWriter(globals.Stdout).WriteWarning(msg); err != nil {
			globals.Debug("failed to write warning: %v", err)
		}
		return
	}
	fmt.Fprintf(globals.Stderr, "Warning: %s\n", msg)
}
