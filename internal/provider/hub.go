// Package provider fetches dataset rows from a Hugging Face
// datasets-server over its REST API.
package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"github.com/vburojevic/hfx/internal/domain"
)

const (
	// DefaultEndpoint is the public Hugging Face datasets-server.
	DefaultEndpoint = "https://datasets-server.huggingface.co"

	// maxPageSize is the server-side cap on /rows page length.
	maxPageSize = 100
)

// Spec names one split of one dataset configuration.
type Spec struct {
	Dataset string // e.g. "wikipedia"
	Config  string // e.g. "20220301.simple"
	Split   string // e.g. "train"
}

// HubOptions configures a Hub.
type HubOptions struct {
	Endpoint string        // datasets-server base URL (empty = DefaultEndpoint)
	PageSize int           // rows fetched per request, capped at the server limit
	Timeout  time.Duration // per-request timeout (zero = 30s)
}

// Hub talks to a datasets-server instance.
type Hub struct {
	endpoint string
	client   *http.Client
	pageSize int
}

// NewHub creates a hub for the given endpoint.
func NewHub(opts HubOptions) *Hub {
	endpoint := strings.TrimRight(opts.Endpoint, "/")
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	pageSize := opts.PageSize
	if pageSize <= 0 || pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Hub{
		endpoint: endpoint,
		client:   &http.Client{Timeout: timeout},
		pageSize: pageSize,
	}
}

// Endpoint returns the base URL the hub was created with.
func (h *Hub) Endpoint() string {
	return h.endpoint
}

type splitsResponse struct {
	Splits []struct {
		Dataset string `json:"dataset"`
		Config  string `json:"config"`
		Split   string `json:"split"`
	} `json:"splits"`
}

type sizeResponse struct {
	Size struct {
		Splits []struct {
			Dataset string `json:"dataset"`
			Config  string `json:"config"`
			Split   string `json:"split"`
			NumRows int64  `json:"num_rows"`
		} `json:"splits"`
	} `json:"size"`
}

// Splits lists every config/split pair of a dataset, in server order.
// Row counts are merged in from the size endpoint when it answers.
func (h *Hub) Splits(ctx context.Context, dataset string) ([]domain.SplitInfo, error) {
	spec := Spec{Dataset: dataset}
	query := url.Values{"dataset": {dataset}}

	var sr splitsResponse
	if err := h.getJSON(ctx, "splits", spec, "/splits", query, &sr); err != nil {
		return nil, err
	}

	infos := make([]domain.SplitInfo, 0, len(sr.Splits))
	for _, s := range sr.Splits {
		infos = append(infos, domain.SplitInfo{
			Dataset: s.Dataset,
			Config:  s.Config,
			Split:   s.Split,
		})
	}

	// Row counts are best-effort; the size endpoint lags behind /splits
	// for freshly processed datasets.
	var zr sizeResponse
	if err := h.getJSON(ctx, "size", spec, "/size", query, &zr); err == nil {
		counts := make(map[string]int64, len(zr.Size.Splits))
		for _, s := range zr.Size.Splits {
			counts[s.Config+"/"+s.Split] = s.NumRows
		}
		for i := range infos {
			infos[i].NumRows = counts[infos[i].Config+"/"+infos[i].Split]
		}
	}

	return infos, nil
}

// Ping checks that the datasets-server answers at all.
func (h *Hub) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.endpoint+"/healthcheck", nil)
	if err != nil {
		return &Error{Op: "healthcheck", Err: err}
	}
	resp, err := h.client.Do(req)
	if err != nil {
		return &Error{Op: "healthcheck", Err: err}
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 500 {
		return &Error{Op: "healthcheck", StatusCode: resp.StatusCode}
	}
	return nil
}

func (h *Hub) getJSON(ctx context.Context, op string, spec Spec, path string, query url.Values, v interface{}) error {
	u := h.endpoint + path + "?" + query.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return &Error{Op: op, Dataset: spec.Dataset, Config: spec.Config, Split: spec.Split, Err: err}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := h.client.Do(req)
	if err != nil {
		return &Error{Op: op, Dataset: spec.Dataset, Config: spec.Config, Split: spec.Split, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &Error{
			Op:         op,
			Dataset:    spec.Dataset,
			Config:     spec.Config,
			Split:      spec.Split,
			StatusCode: resp.StatusCode,
			Message:    serverMessage(resp.Body),
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return &Error{
			Op:      op,
			Dataset: spec.Dataset,
			Config:  spec.Config,
			Split:   spec.Split,
			Err:     fmt.Errorf("decode response: %w", err),
		}
	}
	return nil
}

// serverMessage pulls the "error" field out of a failure response body.
func serverMessage(r io.Reader) string {
	body, err := io.ReadAll(io.LimitReader(r, 4096))
	if err != nil {
		return ""
	}
	if msg := gjson.GetBytes(body, "error"); msg.Type == gjson.String {
		return msg.String()
	}
	return strings.TrimSpace(string(body))
}
