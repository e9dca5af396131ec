package planner

import (
	"fmt"
	"strings"
	"time"

	iso8601 "github.com/senseyeio/duration"
	"github.com/travigo/journeyresolver/pkg/util"
)

// ParseRequestTime reads a requested departure or arrival time. Accepted forms are RFC3339, a "15:04" clock time
// in location (the next occurrence within an hour's slack), an ISO8601 duration from now, or "now".
// An empty value gives nil.
func ParseRequestTime(value string, now time.Time, location *time.Location) (*time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}

	if location == nil {
		location = time.UTC
	}
	now = now.In(location)

	if strings.EqualFold(value, "now") {
		return &now, nil
	}

	if parsed, err := time.Parse(time.RFC3339, value); err == nil {
		return &parsed, nil
	}

	if parsed, err := util.TimeOnDate(now, value, time.Hour); err == nil {
		return &parsed, nil
	}

	if strings.HasPrefix(strings.ToUpper(value), "P") {
		duration, err := iso8601.ParseISO8601(strings.ToUpper(value))
		if err == nil {
			shifted := duration.Shift(now)
			return &shifted, nil
		}
	}

	return nil, fmt.Errorf("unrecognised time %q", value)
}
