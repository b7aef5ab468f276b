package domain

// ExportSummary provides AI-friendly aggregated export statistics
type ExportSummary struct {
	Type          string `json:"type"`          // Always "summary"
	SchemaVersion int    `json:"schemaVersion"` // Schema version for compatibility

	ExportID string `json:"export_id,omitempty"` // Export invocation ID

	// What was exported
	Dataset string `json:"dataset"`
	Config  string `json:"config"`
	Split   string `json:"split"`
	Field   string `json:"field"`
	Output  string `json:"output"`
	Format  string `json:"format"`

	// Counts
	Records        int64 `json:"records"`
	Bytes          int64 `json:"bytes"` // document bytes, before framing
	TruncatedCells int64 `json:"truncatedCells,omitempty"`

	// Rate information
	ElapsedSeconds float64 `json:"elapsedSeconds"`
	RecordsPerSec  float64 `json:"recordsPerSec"`
	BytesPerSec    float64 `json:"bytesPerSec"`

	Interrupted bool `json:"interrupted,omitempty"`
}

// NewExportSummary creates a new empty summary
func NewExportSummary() *ExportSummary {
	return &ExportSummary{
		Type: "summary",
	}
}

// CorpusStats provides aggregated statistics for an existing corpus file
type CorpusStats struct {
	Type          string `json:"type"`          // Always "stats"
	SchemaVersion int    `json:"schemaVersion"` // Schema version for compatibility

	Path   string `json:"path"`
	Format string `json:"format"`
	Field  string `json:"field,omitempty"`

	Records int64 `json:"records"`
	Bytes   int64 `json:"bytes"` // document bytes, before framing

	// Document length distribution, in bytes
	MinLen  int64   `json:"minLen"`
	MaxLen  int64   `json:"maxLen"`
	MeanLen float64 `json:"meanLen"`

	ElapsedSeconds float64 `json:"elapsedSeconds"`
	RecordsPerSec  float64 `json:"recordsPerSec"`
	BytesPerSec    float64 `json:"bytesPerSec"`
}

// NewCorpusStats creates a new empty stats report
func NewCorpusStats() *CorpusStats {
	return &CorpusStats{
		Type: "stats",
	}
}

// SplitInfo identifies one split of a dataset configuration
type SplitInfo struct {
	Dataset string `json:"dataset"`
	Config  string `json:"config"`
	Split   string `json:"split"`
	NumRows int64  `json:"num_rows,omitempty"` // best-effort, zero when size info is unavailable
}

// ErrorOutput represents a structured error for NDJSON output
type ErrorOutput struct {
	Type          string `json:"type"`          // Always "error"
	SchemaVersion int    `json:"schemaVersion"` // Schema version for compatibility
	Code          string `json:"code"`          // Machine-readable error code
	Message       string `json:"message"`       // Human-readable message
	Hint          string `json:"hint,omitempty"`
}

// NewErrorOutput creates a new error output
// Note: SchemaVersion should be set by the caller (output package)
func NewErrorOutput(code, message string) *ErrorOutput {
	return &ErrorOutput{
		Type:    "error",
		Code:    code,
		Message: message,
	}
}
