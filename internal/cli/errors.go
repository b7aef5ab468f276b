package cli

import (
	"fmt"

	"github.com/vburojevic/hfx/internal/output"
)

// CLIError is a structured error used for consistent NDJSON/text emission.
// Commands return it after emitting the failure so main can exit non-zero
// without printing anything twice.
type CLIError struct {
	Code    string
	Message string
	Hint    string
}

func (e *CLIError) Error() string {
	if e == nil {
		return ""
	}
	return e.Message
}

// outputErrorCommon normalizes error emission across commands, respecting
// ndjson vs text formats so AI agents always get machine-readable failures.
func outputErrorCommon(globals *Globals, code, message string, hint ...string) error {
	h := ""
	if len(hint) > 0 {
		h = hint[0]
	}
	if globals != nil && globals.Format == "ndjson" {
		output.NewNDJSONWriter(globals.Stdout).WriteError(code, message, hint...)
	} else if globals != nil {
		fmt.Fprintf(globals.Stderr, "Error [%s]: %s\n", code, message)
		if h != "" {
			fmt.Fprintf(globals.Stderr, "Hint: %s\n", h)
		}
	}
	return &CLIError{Code: code, Message: message, Hint: h}
}
