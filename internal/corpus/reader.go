package corpus

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// FormatError reports a malformed corpus document.
type FormatError struct {
	Path string
	Line int64 // 1-based document index
	Err  error
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("%s: document %d: %v", e.Path, e.Line, e.Err)
}

func (e *FormatError) Unwrap() error { return e.Err }

// ReadOptions configures corpus reading.
type ReadOptions struct {
	Format string // FormatJSONL or FormatNullSep
	Field  string // jsonl field holding the document text
	Strict bool   // require exactly one key per jsonl object
}

// Reader iterates the documents of a corpus file in order.
type Reader struct {
	path   string
	format string
	field  string
	strict bool
	file   *os.File
	br     *bufio.Reader
	line   int64
}

// Open opens a corpus for sequential reading.
func Open(path string, opts ReadOptions) (*Reader, error) {
	switch opts.Format {
	case FormatJSONL, FormatNullSep:
	default:
		return nil, fmt.Errorf("unknown corpus format %q", opts.Format)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	return &Reader{
		path:   path,
		format: opts.Format,
		field:  opts.Field,
		strict: opts.Strict,
		file:   f,
		br:     bufio.NewReaderSize(f, 64*1024),
	}, nil
}

// Next returns the next document, or io.EOF once the corpus is exhausted.
func (r *Reader) Next() (string, error) {
	if r.format == FormatNullSep {
		return r.nextNullSep()
	}
	return r.nextLine()
}

func (r *Reader) nextLine() (string, error) {
	line, err := r.br.ReadBytes('\n')
	if len(line) == 0 {
		if err == nil || errors.Is(err, io.EOF) {
			return "", io.EOF
		}
		return "", err
	}
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	r.line++

	trimmed := bytes.TrimSuffix(line, []byte("\n"))
	var doc map[string]string
	if uerr := json.Unmarshal(trimmed, &doc); uerr != nil {
		return "", &FormatError{Path: r.path, Line: r.line, Err: uerr}
	}
	if r.strict && len(doc) != 1 {
		return "", &FormatError{
			Path: r.path,
			Line: r.line,
			Err:  fmt.Errorf("want a single %q key, got %d keys", r.field, len(doc)),
		}
	}
	text, ok := doc[r.field]
	if !ok {
		return "", &FormatError{
			Path: r.path,
			Line: r.line,
			Err:  fmt.Errorf("missing %q key", r.field),
		}
	}
	return text, nil
}

func (r *Reader) nextNullSep() (string, error) {
	doc, err := r.br.ReadString('\x00')
	if errors.Is(err, io.EOF) {
		if len(doc) > 0 {
			r.line++
			return "", &FormatError{
				Path: r.path,
				Line: r.line,
				Err:  errors.New("document not NUL-terminated"),
			}
		}
		return "", io.EOF
	}
	if err != nil {
		return "", err
	}
	r.line++
	return strings.TrimSuffix(doc, "\x00"), nil
}

// Line returns the 1-based index of the last document returned by Next.
func (r *Reader) Line() int64 { return r.line }

// Close closes the underlying file.
func (r *Reader) Close() error {
	return r.file.Close()
}
