package util

import (
	"time"
)

// TimeOnDate places a wall clock "15:04" time onto the date of reference, rolling into the next day when the time
// has already passed by more than the allowed slack (eg. a 00:05 departure seen at 23:55).
func TimeOnDate(reference time.Time, clock string, slack time.Duration) (time.Time, error) {
	timeOnly, err := time.Parse("15:04", clock)
	if err != nil {
		return time.Time{}, err
	}

	dateTime := time.Date(
		reference.Year(), reference.Month(), reference.Day(), timeOnly.Hour(), timeOnly.Minute(), 0, 0, reference.Location(),
	)

	if dateTime.Before(reference.Add(-slack)) {
		dateTime = dateTime.AddDate(0, 0, 1)
	}

	return dateTime, nil
}
