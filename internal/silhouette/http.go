package silhouette

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const callTimeout = 15 * time.Second

// HTTPClient is the real Silhouette client. The embedded http.Client
// pools connections, so one HTTPClient is shared across all in-flight
// chat requests.
type HTTPClient struct {
	BaseURL string
	Client  *http.Client
}

func NewHTTPClient(baseURL string) *HTTPClient {
	return &HTTPClient{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Client:  &http.Client{Timeout: callTimeout},
	}
}

func (c *HTTPClient) Enqueue(ctx context.Context, payload EnqueueRequest) (EnqueueResult, error) {
	b, _ := json.Marshal(payload)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/v1/silhouette/enqueue", bytes.NewBuffer(b))
	if err != nil {
		return EnqueueResult{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.Client.Do(req)
	if err != nil {
		return EnqueueResult{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return EnqueueResult{}, fmt.Errorf("silhouette enqueue: %s", resp.Status)
	}

	var res EnqueueResult
	if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
		return EnqueueResult{}, err
	}
	return res, nil
}

func (c *HTTPClient) Metrics(ctx context.Context, rng string) (MetricsReport, error) {
	var report MetricsReport
	q := url.Values{"range": {rng}}
	if err := c.getJSON(ctx, "/v1/silhouette/metrics", q, &report); err != nil {
		return MetricsReport{}, err
	}
	return report, nil
}

func (c *HTTPClient) Events(ctx context.Context, since, limit int) (EventsPage, error) {
	var page EventsPage
	q := url.Values{
		"since": {strconv.Itoa(since)},
		"limit": {strconv.Itoa(limit)},
	}
	if err := c.getJSON(ctx, "/v1/silhouette/events/stream", q, &page); err != nil {
		return EventsPage{}, err
	}
	return page, nil
}

func (c *HTTPClient) getJSON(ctx context.Context, path string, query url.Values, out any) error {
	endpoint := c.BaseURL + path + "?" + query.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}

	resp, err := c.Client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("silhouette %s: %s", path, resp.Status)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
