package xapi

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// TimeFormat is the start_time/end_time layout the API accepts.
const TimeFormat = "2006-01-02T15:04:05Z"

var timeframeRe = regexp.MustCompile(`^(\d+)\s*([a-z]+)$`)

var timeframeUnits = map[string]time.Duration{
	"min":   time.Minute,
	"mins":  time.Minute,
	"hr":    time.Hour,
	"hrs":   time.Hour,
	"h":     time.Hour,
	"d":     24 * time.Hour,
	"day":   24 * time.Hour,
	"days":  24 * time.Hour,
	"w":     7 * 24 * time.Hour,
	"week":  7 * 24 * time.Hour,
	"weeks": 7 * 24 * time.Hour,
}

// ParseTimeframe turns "2hrs", "30min", "1d" or "1w" into the instant that far
// before now. ok is false when s is not a recognised timeframe.
func ParseTimeframe(s string, now time.Time) (start time.Time, ok bool) {
	m := timeframeRe.FindStringSubmatch(strings.ToLower(strings.TrimSpace(s)))
	if m == nil {
		return time.Time{}, false
	}
	unit, ok := timeframeUnits[m[2]]
	if !ok {
		return time.Time{}, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return time.Time{}, false
	}
	return now.UTC().Add(-time.Duration(n) * unit), true
}
