package utils

import (
	"strings"
	"time"
)

var dayIndexes = map[string]int{
	"sunday":    0,
	"monday":    1,
	"tuesday":   2,
	"wednesday": 3,
	"thursday":  4,
	"friday":    5,
	"saturday":  6,
}

// DayIndex maps a day name to its 0=Sunday..6=Saturday index,
// case-insensitively. The second return is false for unknown names.
func DayIndex(name string) (int, bool) {
	idx, ok := dayIndexes[strings.ToLower(strings.TrimSpace(name))]
	return idx, ok
}

// DayKey returns the lowercase day name used as JSON payload key for a
// 0=Sunday..6=Saturday index.
func DayKey(idx int) string {
	return strings.ToLower(time.Weekday(idx).String())
}
