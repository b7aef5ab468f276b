package output

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vburojevic/hfx/internal/domain"
)

func decodeAll(t *testing.T, buf *bytes.Buffer) []map[string]interface{} {
	t.Helper()

	dec := json.NewDecoder(bytes.NewReader(buf.Bytes()))
	var out []map[string]interface{}
	for {
		var m map[string]interface{}
		err := dec.Decode(&m)
		if err == nil {
			out = append(out, m)
			continue
		}
		if errors.Is(err, io.EOF) {
			break
		}
		require.NoError(t, err)
	}
	return out
}

func getByType(t *testing.T, items []map[string]interface{}, typ string) map[string]interface{} {
	t.Helper()
	for _, m := range items {
		if m["type"] == typ {
			return m
		}
	}
	require.FailNowf(t, "missing NDJSON type", "type=%s", typ)
	return nil
}

func TestNDJSONWriterContract_AllTypesHaveSchemaVersion(t *testing.T) {
	buf := &bytes.Buffer{}
	w := NewNDJSONWriter(buf)

	summary := domain.NewExportSummary()
	summary.Dataset = "wikipedia"
	summary.Records = 2
	require.NoError(t, w.WriteSummary(summary))

	stats := domain.NewCorpusStats()
	stats.Path = "wikipedia_simple.jsonl"
	stats.Records = 2
	require.NoError(t, w.WriteStats(stats))

	require.NoError(t, w.WriteError("E_CODE", "something went wrong", "try --help"))
	require.NoError(t, w.WriteInfo("info", "wikipedia", "20220301.simple", "train", "export"))
	require.NoError(t, w.WriteWarning("warn"))
	require.NoError(t, w.WriteMetadata("0.0.0", "deadbeef", "2026-01-01", "export-1"))
	require.NoError(t, w.WriteProgress(&ProgressOutput{ExportID: "export-1", Records: 10}))
	require.NoError(t, w.WriteSplit(domain.SplitInfo{Dataset: "wikipedia", Config: "20220301.simple", Split: "train"}))
	require.NoError(t, w.WritePick("wikipedia", "20220301.simple", "train", "hfx export"))
	require.NoError(t, w.WriteCheck("wikipedia_simple.jsonl", "jsonl", 2, true))

	items := decodeAll(t, buf)
	require.GreaterOrEqual(t, len(items), 10)

	for _, it := range items {
		require.Contains(t, it, "type")
		require.Contains(t, it, "schemaVersion")
		require.EqualValues(t, SchemaVersion, it["schemaVersion"])
	}

	errEvent := getByType(t, items, "error")
	require.EqualValues(t, "E_CODE", errEvent["code"])
	require.EqualValues(t, "try --help", errEvent["hint"])

	check := getByType(t, items, "check")
	require.EqualValues(t, true, check["ok"])

	pick := getByType(t, items, "pick")
	require.EqualValues(t, "train", pick["split"])
}
