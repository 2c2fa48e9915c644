// Package service turns classified chat messages into Silhouette calls
// or local replies.
package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shroudhq/shroud/internal/models"
	"github.com/shroudhq/shroud/internal/nlu"
	"github.com/shroudhq/shroud/internal/persona"
	"github.com/shroudhq/shroud/internal/silhouette"
)

const defaultRange = "24h"

// Orchestrator handles one chat message end to end: classify, resolve
// time if the intent carries one, then make at most one Silhouette
// call. Remote errors on the METRICS, LIST_QUEUE and SCHEDULE_POST
// paths propagate to the caller untouched; the ingress layer owns the
// generic failure reply.
type Orchestrator struct {
	Silhouette silhouette.Client
	Persona    *persona.Persona

	// Now overrides the clock in tests; nil means time.Now in UTC.
	Now func() time.Time
}

// IdempotencyKey derives the dedup key Silhouette uses to collapse
// retried submissions. It must stay a pure function of its inputs.
func IdempotencyKey(userID string, when time.Time) string {
	return userID + "|" + when.Format(time.RFC3339)
}

func (o *Orchestrator) clock() time.Time {
	if o.Now != nil {
		return o.Now()
	}
	return time.Now().UTC()
}

// Handle classifies msg and produces the reply. A non-nil error always
// means the remote call failed; every local outcome (unknown intent,
// unresolvable time, handoff) is a normal reply.
func (o *Orchestrator) Handle(ctx context.Context, msg models.ChatMessage) (models.ChatReply, error) {
	cls := nlu.Classify(msg.Text, o.clock())

	switch cls.Intent {
	case models.IntentMetrics:
		return o.handleMetrics(ctx, cls)
	case models.IntentSchedulePost:
		return o.handleSchedule(ctx, cls, msg)
	case models.IntentListQueue:
		return o.handleListQueue(ctx, cls)
	case models.IntentHandoff:
		return models.ChatReply{
			Reply:        "That's a rough spill. I'll pull this into the pit - drop a number and I'll line up a crew call.",
			Intent:       cls,
			NeedsContact: true,
		}, nil
	default:
		return models.ChatReply{
			Reply:  "Copy - do you want metrics, schedule a post, or check the queue?",
			Intent: cls,
		}, nil
	}
}

func (o *Orchestrator) handleMetrics(ctx context.Context, cls models.Classification) (models.ChatReply, error) {
	rng := cls.Slots.Range
	if rng == "" {
		rng = defaultRange
	}
	report, err := o.Silhouette.Metrics(ctx, rng)
	if err != nil {
		return models.ChatReply{Intent: cls}, err
	}
	reply := fmt.Sprintf("%s - %d clean laps, %d bum laps in the last %s",
		o.Persona.Say("metrics", "Metrics"), report.Total.Published, report.Total.Failed, rng)
	return models.ChatReply{Reply: reply, Intent: cls}, nil
}

func (o *Orchestrator) handleSchedule(ctx context.Context, cls models.Classification, msg models.ChatMessage) (models.ChatReply, error) {
	if cls.Slots.When == nil {
		// Unresolvable time is a normal outcome, not an error, and it
		// must not reach Silhouette.
		return models.ChatReply{
			Reply:  "Clock me a time (e.g., 7:15pm) and I'll line it up.",
			Intent: cls,
		}, nil
	}

	when := *cls.Slots.When
	channel := cls.Slots.Channel
	if channel == "" {
		channel = nlu.DefaultChannel
	}

	payload := silhouette.EnqueueRequest{
		Channel: channel,
		When:    when.Format(time.RFC3339),
		Body: silhouette.Body{
			Text:     msg.Text,
			MediaIDs: []string{},
			Tags:     []string{"webchat"},
		},
		Options: silhouette.Options{
			DryRun:         true,
			Priority:       5,
			IdempotencyKey: IdempotencyKey(msg.UserID, when),
		},
	}

	res, err := o.Silhouette.Enqueue(ctx, payload)
	if err != nil {
		return models.ChatReply{Intent: cls}, err
	}

	short := res.JobID
	if len(short) > 4 {
		short = short[:4]
	}
	reply := fmt.Sprintf("%s - %s on %s. Job #%s.",
		o.Persona.Say("queued", "Queued"), payload.When, channel, strings.ToUpper(short))
	return models.ChatReply{Reply: reply, Intent: cls, JobID: res.JobID}, nil
}

func (o *Orchestrator) handleListQueue(ctx context.Context, cls models.Classification) (models.ChatReply, error) {
	page, err := o.Silhouette.Events(ctx, 0, 50)
	if err != nil {
		return models.ChatReply{Intent: cls}, err
	}

	// Published-event count over a recent window, not true queue
	// depth. Silhouette has no pending-jobs endpoint yet, so this
	// stand-in is the agreed approximation.
	count := 0
	for _, ev := range page.Events {
		if ev.Type == silhouette.EventPublished {
			count++
		}
	}
	reply := fmt.Sprintf("Track's hot - %d clean laps logged in the stream. (Detailed queue endpoint TBD)", count)
	return models.ChatReply{Reply: reply, Intent: cls}, nil
}
