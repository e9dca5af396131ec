package enricher

import (
	"regexp"
	"strings"

	"github.com/travigo/journeyresolver/pkg/ctdf"
)

var railCodeRegex = regexp.MustCompile("^[A-Z]{3}$")
var railStationIDRegex = regexp.MustCompile("^910G([A-Z]{3})$")

// RailCode derives the three letter national rail code for a stop, or "" when none can be found.
// The explicit rail code wins, then a crs/crscode property, then a 910G<CODE> stop identifier, then the same
// pattern on the parent station identifier.
func RailCode(stopPoint ctdf.StopPoint) string {
	if railCodeRegex.MatchString(stopPoint.RailCode) {
		return stopPoint.RailCode
	}

	for _, propertyName := range []string{"crs", "crscode"} {
		for key, value := range stopPoint.Properties {
			if !strings.EqualFold(strings.TrimSpace(key), propertyName) {
				continue
			}

			value = strings.ToUpper(strings.TrimSpace(value))
			if railCodeRegex.MatchString(value) {
				return value
			}
		}
	}

	for _, identifier := range []string{stopPoint.NaptanID, stopPoint.ParentID} {
		if matches := railStationIDRegex.FindStringSubmatch(identifier); matches != nil {
			return matches[1]
		}
	}

	return ""
}

// StationReference is the key used to correlate a stop with the live arrival providers
func StationReference(stopPoint ctdf.StopPoint) ctdf.StationReference {
	return ctdf.StationReference{
		StopID:            stopPoint.NaptanID,
		ParentStationID:   stopPoint.ParentID,
		CanonicalRailCode: RailCode(stopPoint),
	}
}
