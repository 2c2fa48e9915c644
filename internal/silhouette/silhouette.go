// Package silhouette talks to the external Silhouette scheduling and
// metrics service. Everything durable (the job queue, publish history)
// lives on the Silhouette side; this package only shapes requests and
// decodes responses.
package silhouette

import "context"

// EventPublished is the event type Silhouette emits for a completed
// post.
const EventPublished = "post.published"

// EnqueueRequest is the payload for scheduling a post.
type EnqueueRequest struct {
	Channel string  `json:"channel"`
	When    string  `json:"when"` // RFC 3339
	Body    Body    `json:"body"`
	Options Options `json:"options"`
}

type Body struct {
	Text     string   `json:"text"`
	MediaIDs []string `json:"media_ids"`
	Tags     []string `json:"tags"`
}

type Options struct {
	DryRun         bool   `json:"dry_run"`
	Priority       int    `json:"priority"`
	IdempotencyKey string `json:"idempotency_key"`
}

type EnqueueResult struct {
	JobID string `json:"job_id"`
}

// MetricsReport is the aggregate publish outcome over a range.
type MetricsReport struct {
	Total Totals `json:"total"`
}

type Totals struct {
	Published int `json:"published"`
	Failed    int `json:"failed"`
}

// Event is one entry from the Silhouette event stream. The service
// sends more fields than these; only what the callers read is decoded.
type Event struct {
	ID   string `json:"id,omitempty"`
	Type string `json:"type"`
}

type EventsPage struct {
	Events []Event `json:"events"`
}

// Client is the Silhouette API surface the rest of the process depends
// on. Implementations must be safe for concurrent use.
type Client interface {
	Enqueue(ctx context.Context, req EnqueueRequest) (EnqueueResult, error)
	Metrics(ctx context.Context, rng string) (MetricsReport, error)
	Events(ctx context.Context, since, limit int) (EventsPage, error)
}
