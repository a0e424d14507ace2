package schedule

import (
	"encoding/json"
	"fmt"
	"time"
)

// DefaultTimezone is used when neither the business-hours config nor the
// tenant record carries a timezone.
const DefaultTimezone = "Europe/London"

// BusinessHoursConfig aggregates the seven per-day windows for a tenant.
// Days is indexed 0=Sunday..6=Saturday; each entry is kept raw because the
// stored form varies (structured object or string-encoded blob) and is only
// interpreted by ResolveWindow.
type BusinessHoursConfig struct {
	Timezone string             `json:"timezone,omitempty"`
	Days     [7]json.RawMessage `json:"days"`
}

// EvaluationResult reports whether a call may go out now, and if not, why
// and when it next can. Trace carries diagnostic notes (fallbacks applied,
// misconfiguration warnings) so the engine itself never logs.
type EvaluationResult struct {
	Allowed         bool       `json:"allowed"`
	Reason          string     `json:"reason,omitempty"`
	NextAllowedTime *time.Time `json:"next_allowed_time,omitempty"`
	Window          DayWindow  `json:"window"`
	Day             string     `json:"day"`
	LocalTime       string     `json:"local_time"`
	Trace           []string   `json:"trace,omitempty"`
}

// Evaluate decides whether an outbound call at the given instant is within
// the tenant's business hours. A nil config falls through to the default
// weekday policy. The effective timezone is the config's, then the
// tenant's, then DefaultTimezone.
func Evaluate(at time.Time, tenantTimezone string, cfg *BusinessHoursConfig) EvaluationResult {
	if cfg == nil {
		return evaluateDefault(at)
	}

	var trace []string
	tz := cfg.Timezone
	if tz == "" {
		tz = tenantTimezone
	}
	if tz == "" {
		tz = DefaultTimezone
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		trace = append(trace, fmt.Sprintf("unknown timezone %q, using %s", tz, DefaultTimezone))
		loc, err = time.LoadLocation(DefaultTimezone)
		if err != nil {
			loc = time.UTC
		}
	}

	local := at.In(loc)
	day := int(local.Weekday())
	window, note := ResolveWindow(day, cfg.Days[day])
	if note != "" {
		trace = append(trace, note)
	}

	res := EvaluationResult{
		Window:    window,
		Day:       local.Weekday().String(),
		LocalTime: local.Format("15:04"),
		Trace:     trace,
	}

	if !window.Enabled {
		res.Reason = fmt.Sprintf("%s is not a business day", res.Day)
		res.deferTo(at, cfg, loc)
		return res
	}

	// Zero-padded HH:MM strings order lexicographically the same as
	// chronologically, so a plain string compare is enough. Both bounds
	// inclusive. Windows with End < Start (spanning midnight) are not
	// supported and will simply never match.
	if res.LocalTime >= window.Start && res.LocalTime <= window.End {
		res.Allowed = true
		return res
	}

	res.Reason = fmt.Sprintf("Outside business hours (%s - %s) on %s", window.Start, window.End, res.Day)
	res.deferTo(at, cfg, loc)
	return res
}

func (r *EvaluationResult) deferTo(at time.Time, cfg *BusinessHoursConfig, loc *time.Location) {
	next, notes := NextAllowedTime(at, cfg, loc)
	r.Trace = append(r.Trace, notes...)
	r.NextAllowedTime = &next
}

// evaluateDefault is the tenant-independent policy used when no
// business-hours configuration exists at all: weekdays 08:00 (inclusive)
// to 20:00 (exclusive), no weekend calling. The instant is taken in its
// own frame, without timezone conversion, and no reschedule time is
// computed on this path.
func evaluateDefault(at time.Time) EvaluationResult {
	day := at.Weekday()
	res := EvaluationResult{
		Day:       day.String(),
		LocalTime: at.Format("15:04"),
		Window:    DayWindow{Start: "08:00", End: "20:00", Enabled: true},
	}
	if day == time.Sunday || day == time.Saturday {
		res.Window.Enabled = false
		res.Reason = fmt.Sprintf("Default policy: Weekend calling not allowed on %s", day)
		return res
	}
	if h := at.Hour(); h >= 8 && h < 20 {
		res.Allowed = true
		return res
	}
	res.Reason = fmt.Sprintf("Default policy: Outside default calling hours (08:00 - 20:00) on %s", day)
	return res
}
