package schedule

import (
	"fmt"
	"time"
)

// SentinelDeferral is returned by NextAllowedTime when no enabled window
// opens within the 7-day search horizon. Callers can compare against it to
// detect tenant misconfiguration (all days disabled, or similar).
const SentinelDeferral = 30 * 24 * time.Hour

// NextAllowedTime walks forward day by day (starting with the candidate's
// own day) and returns the first window start strictly after the candidate
// instant. The returned value is always strictly in the future relative to
// at; when the horizon is exhausted it is exactly at + SentinelDeferral.
// Diagnostic notes accumulated during the scan are returned alongside.
func NextAllowedTime(at time.Time, cfg *BusinessHoursConfig, loc *time.Location) (time.Time, []string) {
	var notes []string
	local := at.In(loc)
	for i := 0; i <= 6; i++ {
		day := local.AddDate(0, 0, i)
		idx := int(day.Weekday())
		window, note := ResolveWindow(idx, cfg.Days[idx])
		if note != "" {
			notes = append(notes, note)
		}
		if !window.Enabled {
			continue
		}
		hour, minute, err := ParseClock(window.Start)
		if err != nil {
			notes = append(notes, fmt.Sprintf("unparseable window start %q on %s, skipping day", window.Start, day.Weekday()))
			continue
		}
		slot := time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, loc)
		if slot.After(at) {
			return slot, notes
		}
	}
	notes = append(notes, fmt.Sprintf("no enabled business window within 7 days of %s, deferring 30 days", at.Format(time.RFC3339)))
	return at.Add(SentinelDeferral), notes
}
