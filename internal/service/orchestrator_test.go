package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/shroudhq/shroud/internal/models"
	"github.com/shroudhq/shroud/internal/persona"
	"github.com/shroudhq/shroud/internal/silhouette"
)

type stubClient struct {
	enqueueCalls int
	metricsCalls int
	eventsCalls  int

	lastEnqueue silhouette.EnqueueRequest

	enqueueRes silhouette.EnqueueResult
	metricsRes silhouette.MetricsReport
	eventsRes  silhouette.EventsPage
	err        error
}

func (s *stubClient) Enqueue(ctx context.Context, payload silhouette.EnqueueRequest) (silhouette.EnqueueResult, error) {
	s.enqueueCalls++
	s.lastEnqueue = payload
	return s.enqueueRes, s.err
}

func (s *stubClient) Metrics(ctx context.Context, rng string) (silhouette.MetricsReport, error) {
	s.metricsCalls++
	return s.metricsRes, s.err
}

func (s *stubClient) Events(ctx context.Context, since, limit int) (silhouette.EventsPage, error) {
	s.eventsCalls++
	return s.eventsRes, s.err
}

func (s *stubClient) totalCalls() int {
	return s.enqueueCalls + s.metricsCalls + s.eventsCalls
}

func newOrchestrator(client silhouette.Client, now time.Time) *Orchestrator {
	return &Orchestrator{
		Silhouette: client,
		Persona:    persona.Empty(),
		Now:        func() time.Time { return now },
	}
}

var testNow = time.Date(2025, 3, 10, 18, 0, 0, 0, time.UTC)

func TestHandleMetrics(t *testing.T) {
	client := &stubClient{metricsRes: silhouette.MetricsReport{Total: silhouette.Totals{Published: 7, Failed: 2}}}
	o := newOrchestrator(client, testNow)

	reply, err := o.Handle(context.Background(), models.ChatMessage{UserID: "u1", Text: "what are my metrics"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reply.Intent.Intent != models.IntentMetrics {
		t.Fatalf("expected METRICS, got %s", reply.Intent.Intent)
	}
	if !strings.Contains(reply.Reply, "7 clean laps") || !strings.Contains(reply.Reply, "2 bum laps") {
		t.Fatalf("unexpected reply: %q", reply.Reply)
	}
	if !strings.Contains(reply.Reply, "24h") {
		t.Fatalf("expected default range in reply: %q", reply.Reply)
	}
	if client.metricsCalls != 1 || client.totalCalls() != 1 {
		t.Fatalf("expected exactly one remote call, got %d", client.totalCalls())
	}
}

func TestHandleMetricsPropagatesError(t *testing.T) {
	client := &stubClient{err: errors.New("silhouette metrics: 503 Service Unavailable")}
	o := newOrchestrator(client, testNow)

	_, err := o.Handle(context.Background(), models.ChatMessage{UserID: "u1", Text: "show me stats"})
	if err == nil {
		t.Fatalf("expected the remote error to propagate")
	}
}

func TestHandleScheduleWithTime(t *testing.T) {
	client := &stubClient{enqueueRes: silhouette.EnqueueResult{JobID: "ab12cd34"}}
	o := newOrchestrator(client, testNow)

	msg := models.ChatMessage{UserID: "creator-9", Text: "schedule a post for 7:15pm"}
	reply, err := o.Handle(context.Background(), msg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if client.enqueueCalls != 1 || client.totalCalls() != 1 {
		t.Fatalf("expected exactly one enqueue call, got %d", client.totalCalls())
	}

	got := client.lastEnqueue
	if got.Channel != "tiktok" {
		t.Fatalf("expected tiktok channel, got %q", got.Channel)
	}
	if got.When != "2025-03-10T19:15:00Z" {
		t.Fatalf("unexpected when: %q", got.When)
	}
	if !got.Options.DryRun {
		t.Fatalf("expected dry_run to be set")
	}
	if got.Options.Priority != 5 {
		t.Fatalf("expected priority 5, got %d", got.Options.Priority)
	}
	if got.Options.IdempotencyKey != "creator-9|2025-03-10T19:15:00Z" {
		t.Fatalf("unexpected idempotency key: %q", got.Options.IdempotencyKey)
	}
	if got.Body.Text != msg.Text {
		t.Fatalf("expected original text in body, got %q", got.Body.Text)
	}
	if len(got.Body.MediaIDs) != 0 {
		t.Fatalf("expected empty media ids")
	}
	if len(got.Body.Tags) != 1 || got.Body.Tags[0] != "webchat" {
		t.Fatalf("unexpected tags: %v", got.Body.Tags)
	}

	if reply.JobID != "ab12cd34" {
		t.Fatalf("expected job id in reply, got %q", reply.JobID)
	}
	if !strings.Contains(reply.Reply, "Job #AB12") {
		t.Fatalf("expected short upper-cased job fragment, got %q", reply.Reply)
	}
}

func TestHandleScheduleWithoutTimeMakesNoCalls(t *testing.T) {
	client := &stubClient{}
	o := newOrchestrator(client, testNow)

	reply, err := o.Handle(context.Background(), models.ChatMessage{UserID: "u1", Text: "schedule something for me"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if client.totalCalls() != 0 {
		t.Fatalf("expected zero remote calls, got %d", client.totalCalls())
	}
	if !strings.Contains(reply.Reply, "7:15pm") {
		t.Fatalf("expected the time prompt, got %q", reply.Reply)
	}
}

func TestHandleListQueueCountsPublishedOnly(t *testing.T) {
	client := &stubClient{eventsRes: silhouette.EventsPage{Events: []silhouette.Event{
		{Type: "post.published"},
		{Type: "post.failed"},
		{Type: "post.published"},
		{Type: "post.scheduled"},
	}}}
	o := newOrchestrator(client, testNow)

	reply, err := o.Handle(context.Background(), models.ChatMessage{UserID: "u1", Text: "what's lined up tonight"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if client.eventsCalls != 1 {
		t.Fatalf("expected one events call, got %d", client.eventsCalls)
	}
	if !strings.Contains(reply.Reply, "2 clean laps") {
		t.Fatalf("expected a count of 2, got %q", reply.Reply)
	}
}

func TestHandleHandoffMakesNoCalls(t *testing.T) {
	client := &stubClient{}
	o := newOrchestrator(client, testNow)

	reply, err := o.Handle(context.Background(), models.ChatMessage{UserID: "u1", Text: "this is broken, refund me"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reply.NeedsContact {
		t.Fatalf("expected needs_contact")
	}
	if client.totalCalls() != 0 {
		t.Fatalf("expected zero remote calls, got %d", client.totalCalls())
	}
}

func TestHandleUnknownMakesNoCalls(t *testing.T) {
	client := &stubClient{}
	o := newOrchestrator(client, testNow)

	reply, err := o.Handle(context.Background(), models.ChatMessage{UserID: "u1", Text: "hello there"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reply.Intent.Intent != models.IntentUnknown {
		t.Fatalf("expected UNKNOWN, got %s", reply.Intent.Intent)
	}
	if client.totalCalls() != 0 {
		t.Fatalf("expected zero remote calls, got %d", client.totalCalls())
	}
}

func TestHandlePersonaOverridesPhrasing(t *testing.T) {
	client := &stubClient{metricsRes: silhouette.MetricsReport{Total: silhouette.Totals{Published: 1}}}
	o := newOrchestrator(client, testNow)
	o.Persona = &persona.Persona{Lexicon: map[string][]string{"metrics": {"Scoreboard's up"}}}

	reply, err := o.Handle(context.Background(), models.ChatMessage{UserID: "u1", Text: "ctr please"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(reply.Reply, "Scoreboard's up") {
		t.Fatalf("expected persona phrasing, got %q", reply.Reply)
	}
}

func TestIdempotencyKeyIsDeterministic(t *testing.T) {
	when := time.Date(2025, 3, 10, 19, 15, 0, 0, time.UTC)
	first := IdempotencyKey("creator-9", when)
	second := IdempotencyKey("creator-9", when)
	if first != second {
		t.Fatalf("expected identical keys, got %q and %q", first, second)
	}
	if first != "creator-9|2025-03-10T19:15:00Z" {
		t.Fatalf("unexpected key: %q", first)
	}
}
