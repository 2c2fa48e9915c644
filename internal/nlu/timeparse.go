package nlu

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var clockRE = regexp.MustCompile(`(?i)(\b\d{1,2}(:\d{2})?\s*(am|pm)\b|\b\d{1,2}:\d{2}\b)`)

// Resolve turns a natural-language fragment into an absolute timestamp
// relative to now. The second return is false when no usable time
// expression is found; malformed components never panic, they just
// resolve to nothing.
//
// "tonight" means 19:00 today while it is still before 19:00.
// Afterwards it means now plus one hour, not the next evening. That
// rollover is inherited behavior kept for compatibility; see DESIGN.md
// before changing it.
func Resolve(text string, now time.Time) (time.Time, bool) {
	low := strings.ToLower(strings.TrimSpace(text))

	if strings.Contains(low, "tonight") {
		if now.Hour() < 19 {
			return time.Date(now.Year(), now.Month(), now.Day(), 19, 0, 0, 0, now.Location()), true
		}
		return now.Add(time.Hour), true
	}

	raw := clockRE.FindString(low)
	if raw == "" {
		return time.Time{}, false
	}

	hour, minute, ok := splitClock(strings.ReplaceAll(raw, " ", ""))
	if !ok {
		return time.Time{}, false
	}

	candidate := time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, now.Location())
	if candidate.Before(now) {
		// The speaker means the next occurrence of that clock time.
		candidate = candidate.AddDate(0, 0, 1)
	}
	return candidate, true
}

// splitClock parses a compact fragment like "7:15pm", "7pm" or "18:30".
func splitClock(raw string) (hour, minute int, ok bool) {
	meridiem := ""
	if strings.HasSuffix(raw, "am") || strings.HasSuffix(raw, "pm") {
		meridiem = raw[len(raw)-2:]
		raw = raw[:len(raw)-2]
	}

	hh, mm, _ := strings.Cut(raw, ":")
	hour, err := strconv.Atoi(hh)
	if err != nil {
		return 0, 0, false
	}
	if mm != "" {
		minute, err = strconv.Atoi(mm)
		if err != nil {
			return 0, 0, false
		}
	}

	if meridiem != "" {
		hour %= 12
		if meridiem == "pm" {
			hour += 12
		}
	}
	if hour > 23 || minute > 59 {
		return 0, 0, false
	}
	return hour, minute, true
}
