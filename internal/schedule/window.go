package schedule

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DayWindow is the calling window for a single day of the week.
// Start and End are local times in "HH:MM" 24h format.
type DayWindow struct {
	Start   string `json:"start"`
	End     string `json:"end"`
	Enabled bool   `json:"enabled"`
}

// DefaultWindow is substituted whenever a day's configuration is absent
// or cannot be decoded.
func DefaultWindow() DayWindow {
	return DayWindow{Start: "09:00", End: "17:00", Enabled: true}
}

// ResolveWindow decodes the raw per-day configuration blob for the given
// day of week (0=Sunday..6=Saturday). The blob may be a structured JSON
// object, a JSON string that itself encodes the object, null/absent, or
// garbage. It never fails: anything undecodable degrades to DefaultWindow.
// The second return value is a diagnostic note, non-empty only when the
// fallback was applied.
func ResolveWindow(day int, raw json.RawMessage) (DayWindow, string) {
	w, err := decodeWindow(raw)
	if err != nil {
		return DefaultWindow(), fmt.Sprintf("no usable window for %s (%v), using default 09:00-17:00", DayName(day), err)
	}
	return w, ""
}

func decodeWindow(raw json.RawMessage) (DayWindow, error) {
	s := strings.TrimSpace(string(raw))
	if s == "" || s == "null" {
		return DayWindow{}, fmt.Errorf("not configured")
	}
	// String-encoded form: unwrap once, then decode the inner document.
	if s[0] == '"' {
		var inner string
		if err := json.Unmarshal(raw, &inner); err != nil {
			return DayWindow{}, fmt.Errorf("bad encoded window: %w", err)
		}
		raw = json.RawMessage(inner)
		if strings.TrimSpace(inner) == "" {
			return DayWindow{}, fmt.Errorf("empty encoded window")
		}
	}
	var w DayWindow
	if err := json.Unmarshal(raw, &w); err != nil {
		return DayWindow{}, fmt.Errorf("bad window: %w", err)
	}
	if w.Start == "" || w.End == "" {
		return DayWindow{}, fmt.Errorf("window missing start or end")
	}
	return w, nil
}

// DayName returns the English day name for a 0=Sunday..6=Saturday index.
func DayName(day int) string {
	return time.Weekday(day).String()
}

// ParseClock parses "HH:MM" (or "H:MM") into hour and minute.
func ParseClock(s string) (hour, minute int, err error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid time format: %s", s)
	}
	hour, err = strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, err
	}
	minute, err = strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, err
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("invalid time: %s", s)
	}
	return hour, minute, nil
}
