package output

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vburojevic/hfx/internal/domain"
)

func TestNDJSONWriter_WriteInfo(t *testing.T) {
	var buf bytes.Buffer
	w := NewNDJSONWriter(&buf)

	err := w.WriteInfo("Exporting split", "wikipedia", "20220301.simple", "train", "export")
	require.NoError(t, err)

	var out InfoOutput
	err = json.Unmarshal(buf.Bytes(), &out)
	require.NoError(t, err)

	assert.Equal(t, "info", out.Type)
	assert.Equal(t, SchemaVersion, out.SchemaVersion)
	assert.Equal(t, "Exporting split", out.Message)
	assert.Equal(t, "wikipedia", out.Dataset)
	assert.Equal(t, "20220301.simple", out.Config)
	assert.Equal(t, "train", out.Split)
	assert.Equal(t, "export", out.Mode)
}

func TestNDJSONWriter_WriteWarning(t *testing.T) {
	var buf bytes.Buffer
	w := NewNDJSONWriter(&buf)

	err := w.WriteWarning("cell was truncated by the server")
	require.NoError(t, err)

	var out WarningOutput
	err = json.Unmarshal(buf.Bytes(), &out)
	require.NoError(t, err)

	assert.Equal(t, "warning", out.Type)
	assert.Equal(t, SchemaVersion, out.SchemaVersion)
	assert.Equal(t, "cell was truncated by the server", out.Message)
}

func TestNDJSONWriter_WriteError(t *testing.T) {
	t.Run("without hint", func(t *testing.T) {
		var buf bytes.Buffer
		w := NewNDJSONWriter(&buf)

		err := w.WriteError("PROVIDER_ERROR", "rows wikipedia: status 502")
		require.NoError(t, err)

		var out domain.ErrorOutput
		err = json.Unmarshal(buf.Bytes(), &out)
		require.NoError(t, err)

		assert.Equal(t, "error", out.Type)
		assert.Equal(t, SchemaVersion, out.SchemaVersion)
		assert.Equal(t, "PROVIDER_ERROR", out.Code)
		assert.Equal(t, "rows wikipedia: status 502", out.Message)
		assert.Empty(t, out.Hint)
	})

	t.Run("with hint", func(t *testing.T) {
		var buf bytes.Buffer
		w := NewNDJSONWriter(&buf)

		err := w.WriteError("MISSING_FIELD", "record 3 has no string field \"text\"", "pass --field")
		require.NoError(t, err)

		var out domain.ErrorOutput
		err = json.Unmarshal(buf.Bytes(), &out)
		require.NoError(t, err)

		assert.Equal(t, "MISSING_FIELD", out.Code)
		assert.Equal(t, "pass --field", out.Hint)
	})
}

func TestNDJSONWriter_WriteSummary(t *testing.T) {
	var buf bytes.Buffer
	w := NewNDJSONWriter(&buf)

	summary := domain.NewExportSummary()
	summary.Dataset = "wikipedia"
	summary.Config = "20220301.simple"
	summary.Split = "train"
	summary.Records = 205328
	summary.Bytes = 215000000

	err := w.WriteSummary(summary)
	require.NoError(t, err)

	var out domain.ExportSummary
	err = json.Unmarshal(buf.Bytes(), &out)
	require.NoError(t, err)

	assert.Equal(t, "summary", out.Type)
	assert.Equal(t, SchemaVersion, out.SchemaVersion)
	assert.Equal(t, int64(205328), out.Records)
}

func TestNDJSONWriter_WriteProgress(t *testing.T) {
	var buf bytes.Buffer
	w := NewNDJSONWriter(&buf)

	err := w.WriteProgress(&ProgressOutput{
		ExportID:       "export-1",
		Records:        1500,
		Bytes:          4096,
		ElapsedSeconds: 5.0,
		RecordsPerSec:  300,
	})
	require.NoError(t, err)

	var out ProgressOutput
	err = json.Unmarshal(buf.Bytes(), &out)
	require.NoError(t, err)

	assert.Equal(t, "progress", out.Type)
	assert.Equal(t, SchemaVersion, out.SchemaVersion)
	assert.Equal(t, int64(1500), out.Records)
	assert.Equal(t, "export-1", out.ExportID)
}

func TestNDJSONWriter_WriteSplit(t *testing.T) {
	var buf bytes.Buffer
	w := NewNDJSONWriter(&buf)

	err := w.WriteSplit(domain.SplitInfo{
		Dataset: "wikipedia",
		Config:  "20220301.simple",
		Split:   "train",
		NumRows: 205328,
	})
	require.NoError(t, err)

	var out SplitOutput
	err = json.Unmarshal(buf.Bytes(), &out)
	require.NoError(t, err)

	assert.Equal(t, "split", out.Type)
	assert.Equal(t, "20220301.simple", out.Config)
	assert.Equal(t, int64(205328), out.NumRows)
}

func TestNDJSONWriter_KeepsNonASCIILiteral(t *testing.T) {
	var buf bytes.Buffer
	w := NewNDJSONWriter(&buf)

	err := w.WriteWarning("naïve café 東京")
	require.NoError(t, err)

	assert.Contains(t, buf.String(), "naïve café 東京")
	assert.NotContains(t, buf.String(), `\u`)
}

func TestNDJSONWriter_EscapesSpecialCharacters(t *testing.T) {
	var buf bytes.Buffer
	w := NewNDJSONWriter(&buf)

	err := w.WriteWarning("a \"quoted\" message with\nnewline and\ttab")
	require.NoError(t, err)

	var out WarningOutput
	err = json.Unmarshal(buf.Bytes(), &out)
	require.NoError(t, err)

	assert.Contains(t, out.Message, "\"quoted\"")
	assert.Contains(t, out.Message, "\n")
	assert.Contains(t, out.Message, "\t")
}

func TestTextWriter_WriteSummary(t *testing.T) {
	var buf bytes.Buffer
	w := NewTextWriter(&buf)

	summary := domain.NewExportSummary()
	summary.Records = 2
	summary.Bytes = 10
	summary.Output = "wikipedia_simple.jsonl"

	err := w.WriteSummary(summary)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "Export complete")
	assert.Contains(t, out, "wikipedia_simple.jsonl")
	assert.NotContains(t, out, "Interrupted")
}

func TestTextWriter_WriteError(t *testing.T) {
	var buf bytes.Buffer
	w := NewTextWriter(&buf)

	err := w.WriteError("FILE_CREATE_ERROR", "permission denied")
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "FILE_CREATE_ERROR")
	assert.Contains(t, out, "permission denied")
}
