package corpus

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCorpus(t *testing.T, path, format string, docs []string) {
	t.Helper()
	w, err := Create(path, format, "text")
	require.NoError(t, err)
	for _, doc := range docs {
		require.NoError(t, w.Append(doc))
	}
	require.NoError(t, w.Close())
}

func TestWriterJSONL(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.jsonl")
	writeCorpus(t, path, FormatJSONL, []string{"Hello", "World"})

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "{\"text\":\"Hello\"}\n{\"text\":\"World\"}\n", string(data))
}

func TestWriterOneLinePerDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.jsonl")
	docs := make([]string, 57)
	for i := range docs {
		docs[i] = strings.Repeat("x", i)
	}
	writeCorpus(t, path, FormatJSONL, docs)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")
	assert.Len(t, lines, len(docs))
}

func TestWriterKeepsNonASCIILiteral(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.jsonl")
	writeCorpus(t, path, FormatJSONL, []string{"naïve café 東京"})

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "naïve café 東京")
	assert.NotContains(t, string(data), `\u`)
}

func TestWriterEscapesControlCharacters(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.jsonl")
	writeCorpus(t, path, FormatJSONL, []string{"line one\nline two\ttabbed"})

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")
	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], `\n`)
	assert.Contains(t, lines[0], `\t`)
}

func TestWriterTruncatesExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.jsonl")
	require.NoError(t, os.WriteFile(path, []byte("stale content from a previous run\n"), 0o644))

	writeCorpus(t, path, FormatJSONL, []string{"fresh"})

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "{\"text\":\"fresh\"}\n", string(data))
}

func TestWriterEmptyCorpus(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.jsonl")
	writeCorpus(t, path, FormatJSONL, nil)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Zero(t, info.Size())
}

func TestWriterRerunIsByteIdentical(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.jsonl")
	docs := []string{"alpha", "beta", "gamma"}

	writeCorpus(t, path, FormatJSONL, docs)
	first, err := os.ReadFile(path)
	require.NoError(t, err)

	writeCorpus(t, path, FormatJSONL, docs)
	second, err := os.ReadFile(path)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestWriterNullSep(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.bin")
	writeCorpus(t, path, FormatNullSep, []string{"first\nstill first", "second"})

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "first\nstill first\x00second\x00", string(data))
}

func TestWriterCreatesParentDirs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "deeper", "out.jsonl")
	writeCorpus(t, path, FormatJSONL, []string{"doc"})

	_, err := os.Stat(path)
	assert.NoError(t, err)
}

func TestWriterUnknownFormat(t *testing.T) {
	_, err := Create(filepath.Join(t.TempDir(), "out"), "parquet", "text")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown corpus format")
}

func TestWriterCounters(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.jsonl")
	w, err := Create(path, FormatJSONL, "text")
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, w.Append("abc"))
	require.NoError(t, w.Append("de"))

	assert.Equal(t, int64(2), w.Records())
	assert.Equal(t, int64(5), w.Bytes())
	assert.Equal(t, path, w.Path())
}

func TestWriterCloseIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.jsonl")
	w, err := Create(path, FormatJSONL, "text")
	require.NoError(t, err)

	require.NoError(t, w.Close())
	require.NoError(t, w.Close())
}

func TestReaderRoundTrip(t *testing.T) {
	docs := []string{"Hello", "World", "naïve café 東京", "with\nnewline", ""}

	for _, format := range []string{FormatJSONL, FormatNullSep} {
		t.Run(format, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "corpus")
			writeCorpus(t, path, format, docs)

			r, err := Open(path, ReadOptions{Format: format, Field: "text"})
			require.NoError(t, err)
			defer r.Close()

			var got []string
			for {
				doc, err := r.Next()
				if err == io.EOF {
					break
				}
				require.NoError(t, err)
				got = append(got, doc)
			}
			assert.Equal(t, docs, got)
			assert.Equal(t, int64(len(docs)), r.Line())
		})
	}
}

func TestReaderEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.jsonl")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	r, err := Open(path, ReadOptions{Format: FormatJSONL, Field: "text"})
	require.NoError(t, err)
	defer r.Close()

	_, err = r.Next()
	assert.Equal(t, io.EOF, err)
}

func TestReaderFinalLineWithoutNewline(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trailing.jsonl")
	require.NoError(t, os.WriteFile(path, []byte("{\"text\":\"a\"}\n{\"text\":\"b\"}"), 0o644))

	r, err := Open(path, ReadOptions{Format: FormatJSONL, Field: "text"})
	require.NoError(t, err)
	defer r.Close()

	doc, err := r.Next()
	require.NoError(t, err)
	assert.Equal(t, "a", doc)

	doc, err = r.Next()
	require.NoError(t, err)
	assert.Equal(t, "b", doc)

	_, err = r.Next()
	assert.Equal(t, io.EOF, err)
}

func TestReaderMissingField(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.jsonl")
	content := "{\"text\":\"ok\"}\n{\"title\":\"no text here\"}\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	r, err := Open(path, ReadOptions{Format: FormatJSONL, Field: "text"})
	require.NoError(t, err)
	defer r.Close()

	_, err = r.Next()
	require.NoError(t, err)

	_, err = r.Next()
	var ferr *FormatError
	require.ErrorAs(t, err, &ferr)
	assert.Equal(t, int64(2), ferr.Line)
	assert.Contains(t, ferr.Error(), "missing \"text\" key")
}

func TestReaderStrictSingleKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "extra.jsonl")
	content := "{\"text\":\"ok\",\"id\":\"1\"}\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	t.Run("strict flags extra keys", func(t *testing.T) {
		r, err := Open(path, ReadOptions{Format: FormatJSONL, Field: "text", Strict: true})
		require.NoError(t, err)
		defer r.Close()

		_, err = r.Next()
		var ferr *FormatError
		require.ErrorAs(t, err, &ferr)
		assert.Equal(t, int64(1), ferr.Line)
	})

	t.Run("lenient accepts extra keys", func(t *testing.T) {
		r, err := Open(path, ReadOptions{Format: FormatJSONL, Field: "text"})
		require.NoError(t, err)
		defer r.Close()

		doc, err := r.Next()
		require.NoError(t, err)
		assert.Equal(t, "ok", doc)
	})
}

func TestReaderMalformedLine(t *testing.T) {
	path := filepath.Join(t.TempDir(), "garbage.jsonl")
	require.NoError(t, os.WriteFile(path, []byte("{\"text\":\"ok\"}\nnot json\n"), 0o644))

	r, err := Open(path, ReadOptions{Format: FormatJSONL, Field: "text"})
	require.NoError(t, err)
	defer r.Close()

	_, err = r.Next()
	require.NoError(t, err)

	_, err = r.Next()
	var ferr *FormatError
	require.ErrorAs(t, err, &ferr)
	assert.Equal(t, int64(2), ferr.Line)
}

func TestReaderNullSepUnterminated(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cut.bin")
	require.NoError(t, os.WriteFile(path, []byte("done\x00cut off"), 0o644))

	r, err := Open(path, ReadOptions{Format: FormatNullSep, Field: "text"})
	require.NoError(t, err)
	defer r.Close()

	doc, err := r.Next()
	require.NoError(t, err)
	assert.Equal(t, "done", doc)

	_, err = r.Next()
	var ferr *FormatError
	require.ErrorAs(t, err, &ferr)
	assert.Contains(t, ferr.Error(), "not NUL-terminated")
}

func TestReaderUnknownFormat(t *testing.T) {
	_, err := Open("whatever", ReadOptions{Format: "parquet", Field: "text"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown corpus format")
}

func TestStatsCollector(t *testing.T) {
	var c StatsCollector
	c.Add("ab")
	c.Add("abcd")
	c.Add("abcdef")

	stats := c.Stats(2 * time.Second)
	assert.Equal(t, int64(3), stats.Records)
	assert.Equal(t, int64(12), stats.Bytes)
	assert.Equal(t, int64(2), stats.MinLen)
	assert.Equal(t, int64(6), stats.MaxLen)
	assert.InDelta(t, 4.0, stats.MeanLen, 0.001)
	assert.InDelta(t, 1.5, stats.RecordsPerSec, 0.001)
	assert.InDelta(t, 6.0, stats.BytesPerSec, 0.001)
}

func TestStatsCollectorEmpty(t *testing.T) {
	var c StatsCollector
	stats := c.Stats(time.Second)
	assert.Zero(t, stats.Records)
	assert.Zero(t, stats.MinLen)
	assert.Zero(t, stats.MaxLen)
	assert.Zero(t, stats.MeanLen)
}
