package output

import (
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"

	"github.com/vburojevic/hfx/internal/domain"
)

// RenderSplitsTable writes a split listing as an aligned table.
func RenderSplitsTable(w io.Writer, infos []domain.SplitInfo) {
	table := tablewriter.NewTable(w)
	table.Header([]string{"CONFIG", "SPLIT", "ROWS"})
	for _, info := range infos {
		rows := "-"
		if info.NumRows > 0 {
			rows = FormatCount(info.NumRows)
		}
		table.Append([]string{info.Config, info.Split, rows})
	}
	table.Render()
}

// RenderStatsTable writes a corpus stats report as an aligned table.
func RenderStatsTable(w io.Writer, stats *domain.CorpusStats) {
	table := tablewriter.NewTable(w)
	table.Header([]string{"METRIC", "VALUE"})
	table.Append([]string{"Documents", FormatCount(stats.Records)})
	table.Append([]string{"Bytes", FormatBytes(stats.Bytes)})
	table.Append([]string{"Min length", FormatCount(stats.MinLen) + " B"})
	table.Append([]string{"Max length", FormatCount(stats.MaxLen) + " B"})
	table.Append([]string{"Mean length", strconv.FormatFloat(stats.MeanLen, 'f', 1, 64) + " B"})
	table.Append([]string{"Scan rate", FormatRate(stats.RecordsPerSec)})
	table.Append([]string{"Throughput", FormatBytes(int64(stats.BytesPerSec)) + "/s"})
	table.Render()
}
