package provider

import "fmt"

// Error describes a failed dataset-server request.
type Error struct {
	Op         string // "splits", "size", "rows", "healthcheck"
	Dataset    string
	Config     string
	Split      string
	StatusCode int    // zero when the request never completed
	Message    string // server-reported error, if any
	Err        error  // underlying transport or decode error
}

func (e *Error) Error() string {
	msg := e.Op
	if e.Dataset != "" {
		msg += " " + e.Dataset
		if e.Config != "" {
			msg += "/" + e.Config
		}
		if e.Split != "" {
			msg += "/" + e.Split
		}
	}
	if e.StatusCode != 0 {
		msg += fmt.Sprintf(": status %d", e.StatusCode)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// NotFound reports whether the server said the dataset, config or split
// does not exist (as opposed to a transport or server failure).
func (e *Error) NotFound() bool {
	return e.StatusCode == 404 || e.StatusCode == 422
}

// FieldError reports a record that lacks the requested string column.
type FieldError struct {
	Index int64  // 0-based record position within the split
	Field string // column path that was requested
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("record %d has no string field %q", e.Index, e.Field)
}
