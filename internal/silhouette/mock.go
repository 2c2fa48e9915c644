package silhouette

import (
	"context"

	"github.com/google/uuid"

	"github.com/shroudhq/shroud/internal/utils"
)

// Mock stands in for Silhouette when no SIL_BASE is configured. It
// never fails, hands out throwaway job ids, and varies the canned
// numbers by input so different ranges look alive in local dev.
type Mock struct{}

func (Mock) Enqueue(ctx context.Context, payload EnqueueRequest) (EnqueueResult, error) {
	return EnqueueResult{JobID: uuid.NewString()}, nil
}

func (Mock) Metrics(ctx context.Context, rng string) (MetricsReport, error) {
	h := utils.Hash64(rng)
	return MetricsReport{Total: Totals{
		Published: int(h%40) + 3,
		Failed:    int(h % 3),
	}}, nil
}

func (Mock) Events(ctx context.Context, since, limit int) (EventsPage, error) {
	events := make([]Event, 0, 6)
	for i := 0; i < 6; i++ {
		typ := EventPublished
		if i%3 == 2 {
			typ = "post.failed"
		}
		events = append(events, Event{ID: uuid.NewString(), Type: typ})
	}
	if limit >= 0 && limit < len(events) {
		events = events[:limit]
	}
	return EventsPage{Events: events}, nil
}
