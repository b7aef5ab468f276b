// Package corpus reads and writes exported text corpora.
package corpus

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Supported corpus framings.
const (
	FormatJSONL   = "jsonl"   // one {"<field>": <text>} object per line
	FormatNullSep = "nullsep" // raw documents separated by NUL bytes
)

// Writer appends one document per record to a corpus file. The file is
// created (truncated) on open and owned by the writer until Close.
type Writer struct {
	path    string
	format  string
	field   string
	file    *os.File
	bw      *bufio.Writer
	enc     *json.Encoder
	records int64
	bytes   int64
	closed  bool
}

// Create opens path for writing, truncating any previous corpus there.
// Parent directories are created as needed.
func Create(path, format, field string) (*Writer, error) {
	switch format {
	case FormatJSONL, FormatNullSep:
	default:
		return nil, fmt.Errorf("unknown corpus format %q", format)
	}

	dir := filepath.Dir(path)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create output dir: %w", err)
		}
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to create output file: %w", err)
	}

	w := &Writer{
		path:   path,
		format: format,
		field:  field,
		file:   f,
		bw:     bufio.NewWriterSize(f, 64*1024),
	}
	if format == FormatJSONL {
		w.enc = json.NewEncoder(w.bw)
		w.enc.SetEscapeHTML(false) // keep documents unescaped
	}
	return w, nil
}

// Append writes one document. The order of calls is the order on disk.
func (w *Writer) Append(text string) error {
	switch w.format {
	case FormatJSONL:
		if err := w.enc.Encode(map[string]string{w.field: text}); err != nil {
			return err
		}
	case FormatNullSep:
		if _, err := w.bw.WriteString(text); err != nil {
			return err
		}
		if err := w.bw.WriteByte(0); err != nil {
			return err
		}
	}
	w.records++
	w.bytes += int64(len(text))
	return nil
}

// Records returns the number of documents appended so far.
func (w *Writer) Records() int64 { return w.records }

// Bytes returns the document bytes appended so far, before framing.
func (w *Writer) Bytes() int64 { return w.bytes }

// Path returns the corpus file path.
func (w *Writer) Path() string { return w.path }

// Close flushes buffered documents and closes the file. Closing an
// already closed writer is a no-op.
func (w *Writer) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true
	if err := w.bw.Flush(); err != nil {
		_ = w.file.Close()
		return fmt.Errorf("failed to flush output: %w", err)
	}
	if err := w.file.Close(); err != nil {
		return fmt.Errorf("failed to close output: %w", err)
	}
	return nil
}
