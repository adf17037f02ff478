package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/rentalops/rentcore/pkg/domain/entities"
	"github.com/rentalops/rentcore/pkg/infrastructure/normalize"
)

// Client consumes the back office's external HTTP collaborators: the
// revision store, the month event listing and the stock computation. It
// returns normalized engine inputs; transport failures are the caller's
// concern and surface as errors, never as partial data.
type Client struct {
	baseURL string
	httpc   *http.Client
	log     *zap.Logger
}

// NewClient creates a client for the given API base URL.
func NewClient(baseURL string, timeout time.Duration, log *zap.Logger) *Client {
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   &http.Client{Timeout: timeout},
		log:     log,
	}
}

// getJSON fetches one endpoint and decodes the body into a loosely-typed
// value for the normalizer.
func (c *Client) getJSON(ctx context.Context, path string, query url.Values) (any, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request for %s: %w", path, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request to %s failed: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("request to %s returned status %d", path, resp.StatusCode)
	}

	var data any
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("failed to decode response from %s: %w", path, err)
	}
	return data, nil
}

// revisionEndpoints lists the endpoint variants that historical deployments
// expose for an event's revision history, probed in order.
func revisionEndpoints(eventID int64) []string {
	return []string{
		fmt.Sprintf("/eventi/%d/revisions", eventID),
		fmt.Sprintf("/eventi/%d/history", eventID),
		fmt.Sprintf("/eventi/%d/audit", eventID),
	}
}

// ListRevisions fetches and normalizes the revision history of an event,
// sorted oldest first. Endpoint variants are probed until one yields
// records, mirroring the endpoint drift across deployments.
func (c *Client) ListRevisions(ctx context.Context, eventID int64) ([]entities.Snapshot, error) {
	var lastErr error
	for _, ep := range revisionEndpoints(eventID) {
		data, err := c.getJSON(ctx, ep, nil)
		if err != nil {
			lastErr = err
			c.log.Debug("revision endpoint probe failed", zap.String("endpoint", ep), zap.Error(err))
			continue
		}
		snaps := normalize.Revisions(data)
		if len(snaps) > 0 {
			return snaps, nil
		}
	}
	if lastErr != nil {
		return nil, fmt.Errorf("no revision endpoint answered for event %d: %w", eventID, lastErr)
	}
	return nil, nil
}

// MonthEvents fetches the events of a month, normalized for the coverage
// indexer.
func (c *Client) MonthEvents(ctx context.Context, year, month int) ([]entities.CalendarEvent, error) {
	q := url.Values{}
	q.Set("year", fmt.Sprintf("%d", year))
	q.Set("month", fmt.Sprintf("%d", month))

	data, err := c.getJSON(ctx, "/eventi/mese", q)
	if err != nil {
		return nil, err
	}
	return normalize.MonthEvents(data), nil
}

// Availability is the stock computation's scalar result for one material
// on one day.
type Availability struct {
	Scorta      int64 `json:"scorta"`
	Prenotato   int64 `json:"prenotato"`
	Disponibile int64 `json:"disponibile"`
}

// Stock fetches the availability of a material on a date. The level
// classification from these numbers is entities.ClassifyStock; the
// computation itself is entirely the external service's.
func (c *Client) Stock(ctx context.Context, materialID int64, date string) (Availability, error) {
	q := url.Values{}
	if date != "" {
		q.Set("date", date)
	}

	data, err := c.getJSON(ctx, fmt.Sprintf("/magazzino/%d/stock", materialID), q)
	if err != nil {
		return Availability{}, err
	}

	m, _ := data.(map[string]any)
	av := Availability{
		Scorta:      normalize.ToInt64(m["scorta"]),
		Prenotato:   normalize.ToInt64(m["prenotato"]),
		Disponibile: normalize.ToInt64(m["disponibile"]),
	}
	if _, ok := m["disponibile"]; !ok {
		av.Disponibile = av.Scorta - av.Prenotato
	}
	return av, nil
}
