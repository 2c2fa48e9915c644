package models

import "time"

// Intent is the caller's classified purpose for a message.
type Intent string

const (
	IntentMetrics      Intent = "METRICS"
	IntentSchedulePost Intent = "SCHEDULE_POST"
	IntentListQueue    Intent = "LIST_QUEUE"
	IntentHandoff      Intent = "HANDOFF_REQUEST"
	IntentUnknown      Intent = "UNKNOWN"
)

// ChatMessage is one inbound webchat message. Immutable once received.
type ChatMessage struct {
	UserID   string         `json:"user_id" validate:"required"`
	Text     string         `json:"text" validate:"required"`
	Metadata map[string]any `json:"metadata"`
}

// Slots holds the parameters extracted during classification. Which
// fields are set depends on the intent; everything else stays empty
// and is omitted on the wire.
type Slots struct {
	Range   string     `json:"range,omitempty"`
	When    *time.Time `json:"when,omitempty"`
	Channel string     `json:"channel,omitempty"`
	Window  string     `json:"window,omitempty"`
	Reason  string     `json:"reason,omitempty"`
}

// Classification pairs exactly one intent tag with its slots.
type Classification struct {
	Intent Intent `json:"intent"`
	Slots  Slots  `json:"slots"`
}

// ChatReply is what the orchestrator hands back to the ingress layer.
type ChatReply struct {
	Reply        string         `json:"reply"`
	Intent       Classification `json:"intent"`
	JobID        string         `json:"job_id,omitempty"`
	NeedsContact bool           `json:"needs_contact,omitempty"`
}
