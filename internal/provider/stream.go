package provider

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strconv"

	"golang.org/x/sync/errgroup"

	"github.com/vburojevic/hfx/internal/domain"
)

// Stream is a lazy, ordered iteration over the rows of one split. Rows are
// fetched page by page as the consumer drains the channel. A stream is not
// restartable; open a new one to read the split again.
type Stream struct {
	records chan domain.Record
	cancel  context.CancelFunc
	group   *errgroup.Group
}

// Stream starts fetching rows for spec. Records arrive in row order on the
// Records channel, which closes when the split is exhausted, the stream
// fails, or Stop is called. Check Err once the channel is closed.
func (h *Hub) Stream(ctx context.Context, spec Spec) *Stream {
	ctx, cancel := context.WithCancel(ctx)
	group, ctx := errgroup.WithContext(ctx)

	s := &Stream{
		records: make(chan domain.Record, h.pageSize),
		cancel:  cancel,
		group:   group,
	}
	group.Go(func() error {
		defer close(s.records)
		return h.pump(ctx, spec, s.records)
	})
	return s
}

// Records returns the ordered record channel.
func (s *Stream) Records() <-chan domain.Record {
	return s.records
}

// Err reports what ended the stream. It blocks until the fetch goroutine
// has exited, so call it only after Records closed or Stop returned.
// Cancellation is not reported as an error.
func (s *Stream) Err() error {
	err := s.group.Wait()
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// Stop cancels the stream and waits for the fetch goroutine to exit.
// It is safe to call more than once.
func (s *Stream) Stop() {
	s.cancel()
	_ = s.group.Wait()
}

type rowsResponse struct {
	Rows []struct {
		RowIdx         int64           `json:"row_idx"`
		Row            json.RawMessage `json:"row"`
		TruncatedCells []string        `json:"truncated_cells"`
	} `json:"rows"`
	NumRowsTotal int64 `json:"num_rows_total"`
}

func (h *Hub) pump(ctx context.Context, spec Spec, out chan<- domain.Record) error {
	var offset int64
	for {
		query := url.Values{
			"dataset": {spec.Dataset},
			"config":  {spec.Config},
			"split":   {spec.Split},
			"offset":  {strconv.FormatInt(offset, 10)},
			"length":  {strconv.Itoa(h.pageSize)},
		}
		var rr rowsResponse
		if err := h.getJSON(ctx, "rows", spec, "/rows", query, &rr); err != nil {
			return err
		}

		if len(rr.Rows) == 0 {
			if offset < rr.NumRowsTotal {
				return &Error{
					Op:      "rows",
					Dataset: spec.Dataset,
					Config:  spec.Config,
					Split:   spec.Split,
					Message: fmt.Sprintf("no rows at offset %d of %d", offset, rr.NumRowsTotal),
				}
			}
			return nil
		}

		for _, row := range rr.Rows {
			rec := domain.Record{
				Index:          row.RowIdx,
				Raw:            row.Row,
				TruncatedCells: row.TruncatedCells,
			}
			select {
			case out <- rec:
			case <-ctx.Done():
				return ctx.Err()
			}
		}

		offset += int64(len(rr.Rows))
		if offset >= rr.NumRowsTotal {
			return nil
		}
	}
}
