package output

import (
	"encoding/json"
	"io"

	"github.com/vburojevic/hfx/internal/domain"
)

// NDJSONWriter writes control events as NDJSON
type NDJSONWriter struct {
	w       io.Writer
	encoder *json.Encoder
}

// NewNDJSONWriter creates a new NDJSON writer
func NewNDJSONWriter(w io.Writer) *NDJSONWriter {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false) // keep messages unescaped and avoid extra allocations
	return &NDJSONWriter{
		w:       w,
		encoder: enc,
	}
}

// InfoOutput represents an informational message
type InfoOutput struct {
	Type          string `json:"type"` // Always "info"
	SchemaVersion int    `json:"schemaVersion"`
	Message       string `json:"message"`
	Dataset       string `json:"dataset,omitempty"`
	Config        string `json:"config,omitempty"`
	Split         string `json:"split,omitempty"`
	Mode          string `json:"mode,omitempty"`
}

// WarningOutput represents a warning message
type WarningOutput struct {
	Type          string `json:"type"` // Always "warning"
	SchemaVersion int    `json:"schemaVersion"`
	Message       string `json:"message"`
}

// MetadataOutput describes runtime/tool metadata for agents
type MetadataOutput struct {
	Type          string `json:"type"` // Always "metadata"
	SchemaVersion int    `json:"schemaVersion"`
	Version       string `json:"version"`
	Commit        string `json:"commit"`
	BuildDate     string `json:"build_date,omitempty"`
	ExportID      string `json:"export_id,omitempty"`
}

// ProgressOutput reports how far an export has come
type ProgressOutput struct {
	Type           string  `json:"type"` // Always "progress"
	SchemaVersion  int     `json:"schemaVersion"`
	ExportID       string  `json:"export_id,omitempty"`
	Records        int64   `json:"records"`
	Bytes          int64   `json:"bytes"`
	ElapsedSeconds float64 `json:"elapsedSeconds"`
	RecordsPerSec  float64 `json:"recordsPerSec"`
	BytesPerSec    float64 `json:"bytesPerSec"`
}

// SplitOutput represents one dataset split in a listing
type SplitOutput struct {
	Type          string `json:"type"` // Always "split"
	SchemaVersion int    `json:"schemaVersion"`
	Dataset       string `json:"dataset"`
	Config        string `json:"config"`
	Split         string `json:"split"`
	NumRows       int64  `json:"num_rows,omitempty"`
}

// PickOutput reports an interactive split selection
type PickOutput struct {
	Type          string `json:"type"` // Always "pick"
	SchemaVersion int    `json:"schemaVersion"`
	Dataset       string `json:"dataset"`
	Config        string `json:"config"`
	Split         string `json:"split"`
	Command       string `json:"command,omitempty"`
}

// CheckOutput reports the outcome of a corpus validation pass
type CheckOutput struct {
	Type          string `json:"type"` // Always "check"
	SchemaVersion int    `json:"schemaVersion"`
	Path          string `json:"path"`
	Format        string `json:"format"`
	Records       int64  `json:"records"`
	OK            bool   `json:"ok"`
}

// WriteSummary outputs an export summary marker
func (w *NDJSONWriter) WriteSummary(summary *domain.ExportSummary) error {
	summary.SchemaVersion = SchemaVersion
	return w.encoder.Encode(summary)
}

// WriteStats outputs a corpus stats report
func (w *NDJSONWriter) WriteStats(stats *domain.CorpusStats) error {
	stats.SchemaVersion = SchemaVersion
	return w.encoder.Encode(stats)
}

// WriteError outputs an error
func (w *NDJSONWriter) WriteError(code, message string, hint ...string) error {
	err := domain.NewErrorOutput(code, message)
	if len(hint) > 0 {
		err.Hint = hint[0]
	}
	err.SchemaVersion = SchemaVersion
	return w.encoder.Encode(err)
}

// WriteRaw outputs raw JSON data
func (w *NDJSONWriter) WriteRaw(v interface{}) error {
	return w.encoder.Encode(v)
}

// WriteInfo outputs an informational message
func (w *NDJSONWriter) WriteInfo(message, dataset, config, split, mode string) error {
	return w.encoder.Encode(&InfoOutput{
		Type:          "info",
		SchemaVersion: SchemaVersion,
		Message:       message,
		Dataset:       dataset,
		Config:        config,
		Split:         split,
		Mode:          mode,
	})
}

// WriteWarning outputs a warning message
func (w *NDJSONWriter) WriteWarning(message string) error {
	return w.encoder.Encode(&WarningOutput{
		Type:          "warning",
		SchemaVersion: SchemaVersion,
		Message:       message,
	})
}

// WriteMetadata outputs runtime metadata
func (w *NDJSONWriter) WriteMetadata(version, commit, buildDate, exportID string) error {
	return w.encoder.Encode(&MetadataOutput{
		Type:          "metadata",
		SchemaVersion: SchemaVersion,
		Version:       version,
		Commit:        commit,
		BuildDate:     buildDate,
		ExportID:      exportID,
	})
}

// WriteProgress outputs an export progress marker
func (w *NDJSONWriter) WriteProgress(p *ProgressOutput) error {
	p.Type = "progress"
	p.SchemaVersion = SchemaVersion
	return w.encoder.Encode(p)
}

// WriteSplit outputs one split of a listing
func (w *NDJSONWriter) WriteSplit(info domain.SplitInfo) error {
	return w.encoder.Encode(&SplitOutput{
		Type:          "split",
		SchemaVersion: SchemaVersion,
		Dataset:       info.Dataset,
		Config:        info.Config,
		Split:         info.Split,
		NumRows:       info.NumRows,
	})
}

// WritePick outputs an interactive selection result
func (w *NDJSONWriter) WritePick(dataset, config, split, command string) error {
	return w.encoder.Encode(&PickOutput{
		Type:          "pick",
		SchemaVersion: SchemaVersion,
		Dataset:       dataset,
		Config:        config,
		Split:         split,
		Command:       command,
	})
}

// WriteCheck outputs a corpus validation result
func (w *NDJSONWriter) WriteCheck(path, format string, records int64, ok bool) error {
	return w.encoder.Encode(&CheckOutput{
		Type:          "check",
		SchemaVersion: SchemaVersion,
		Path:          path,
		Format:        format,
		Records:       records,
		OK:            ok,
	})
}

// TextWriter writes control events as formatted text
type TextWriter struct {
	w io.Writer
}

// NewTextWriter creates a new text writer
func NewTextWriter(w io.Writer) *TextWriter {
	return &TextWriter{w: w}
}

// WriteSummary outputs a styled export summary
func (w *TextWriter) WriteSummary(summary *domain.ExportSummary) error {
	header := Styles.Header.Render("Export complete")
	line := "\n" + header + "\n"
	line += Styles.Label.Render("Records: ") + Styles.Value.Render(FormatCount(summary.Records)) + " | "
	line += Styles.Label.Render("Size: ") + Styles.Value.Render(FormatBytes(summary.Bytes)) + " | "
	line += Styles.Label.Render("Rate: ") + Styles.Value.Render(FormatRate(summary.RecordsPerSec))
	line += "\n"
	line += Styles.Label.Render("Output: ") + Styles.Path.Render(summary.Output) + "\n"

	if summary.TruncatedCells > 0 {
		line += Styles.Warning.Render("Truncated cells: "+FormatCount(summary.TruncatedCells)) + "\n"
	}
	if summary.Interrupted {
		line += Styles.Warning.Render("Interrupted before the split was exhausted") + "\n"
	}

	_, err := io.WriteString(w.w, line)
	return err
}

// WriteError outputs a styled error
func (w *TextWriter) WriteError(code, message string) error {
	errorLabel := Styles.Danger.Render("Error")
	codeStr := Styles.Warning.Render("[" + code + "]")
	line := errorLabel + " " + codeStr + ": " + message + "\n"
	_, err := io.WriteString(w.w, line)
	return err
}
