package nlu

import (
	"strings"
	"time"

	"github.com/shroudhq/shroud/internal/models"
)

// DefaultChannel is where scheduled posts land unless the caller names
// another platform.
const DefaultChannel = "tiktok"

type rule struct {
	intent   models.Intent
	keywords []string
}

// rules are evaluated top to bottom; the first set with any substring
// hit wins and nothing below it runs. The keyword sets are not
// disjoint ("queue this" vs "queue", "tonight" in two roles), so this
// ordering IS the disambiguation policy.
var rules = []rule{
	{models.IntentMetrics, []string{"metrics", "stats", "ctr", "views"}},
	{models.IntentSchedulePost, []string{"schedule", "post", "line up", "queue this", "publish"}},
	{models.IntentListQueue, []string{"queue", "what's lined up", "whats lined up", "tonight"}},
	{models.IntentHandoff, []string{"refund", "defective", "broken", "angry"}},
}

// Classify maps free text to exactly one intent plus its slots. It
// never fails: text that matches no rule is UNKNOWN with empty slots.
// now anchors time resolution for SCHEDULE_POST.
func Classify(text string, now time.Time) models.Classification {
	low := strings.ToLower(text)

	for _, r := range rules {
		if !containsAny(low, r.keywords) {
			continue
		}
		switch r.intent {
		case models.IntentMetrics:
			return models.Classification{Intent: r.intent, Slots: models.Slots{Range: "24h"}}
		case models.IntentSchedulePost:
			slots := models.Slots{Channel: DefaultChannel}
			if when, ok := Resolve(low, now); ok {
				slots.When = &when
			}
			return models.Classification{Intent: r.intent, Slots: slots}
		case models.IntentListQueue:
			return models.Classification{Intent: r.intent, Slots: models.Slots{Window: "tonight"}}
		case models.IntentHandoff:
			return models.Classification{Intent: r.intent, Slots: models.Slots{Reason: "support_issue"}}
		}
	}
	return models.Classification{Intent: models.IntentUnknown}
}

func containsAny(text string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(text, k) {
			return true
		}
	}
	return false
}
