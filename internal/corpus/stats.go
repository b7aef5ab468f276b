package corpus

import (
	"time"

	"github.com/vburojevic/hfx/internal/domain"
)

// StatsCollector accumulates per-document statistics during a corpus scan.
type StatsCollector struct {
	records int64
	bytes   int64
	minLen  int64
	maxLen  int64
}

// Add records one document.
func (c *StatsCollector) Add(doc string) {
	n := int64(len(doc))
	if c.records == 0 || n < c.minLen {
		c.minLen = n
	}
	if n > c.maxLen {
		c.maxLen = n
	}
	c.records++
	c.bytes += n
}

// Records returns the number of documents added so far.
func (c *StatsCollector) Records() int64 { return c.records }

// Bytes returns the document bytes added so far.
func (c *StatsCollector) Bytes() int64 { return c.bytes }

// Stats builds the final report, with rates derived from elapsed.
func (c *StatsCollector) Stats(elapsed time.Duration) *domain.CorpusStats {
	stats := domain.NewCorpusStats()
	stats.Records = c.records
	stats.Bytes = c.bytes
	stats.MinLen = c.minLen
	stats.MaxLen = c.maxLen
	if c.records > 0 {
		stats.MeanLen = float64(c.bytes) / float64(c.records)
	}
	stats.ElapsedSeconds = elapsed.Seconds()
	if elapsed > 0 {
		stats.RecordsPerSec = float64(c.records) / elapsed.Seconds()
		stats.BytesPerSec = float64(c.bytes) / elapsed.Seconds()
	}
	return stats
}
