package enricher

import (
	"fmt"
	"math"
	"net/url"

	"github.com/travigo/journeyresolver/pkg/ctdf"
)

func walkingDirectionsURL(leg ctdf.Leg) string {
	return "https://www.google.com/maps/dir/?" + url.Values{
		"api":         {"1"},
		"origin":      {leg.DeparturePoint.Coordinates().String()},
		"destination": {leg.ArrivalPoint.Coordinates().String()},
		"travelmode":  {"walking"},
	}.Encode()
}

func walkingSummary(leg ctdf.Leg) string {
	minutes := int(math.Round(leg.ScheduledArrival.Sub(leg.ScheduledDeparture).Minutes()))

	if leg.DistanceMeters == nil {
		if minutes <= 0 {
			return "Walk"
		}
		return fmt.Sprintf("Walk %d min", minutes)
	}

	var distance string
	if *leg.DistanceMeters >= 1000 {
		distance = fmt.Sprintf("%.1f km", *leg.DistanceMeters/1000)
	} else {
		distance = fmt.Sprintf("%d m", int(math.Round(*leg.DistanceMeters)))
	}

	if minutes <= 0 {
		return fmt.Sprintf("Walk %s", distance)
	}

	return fmt.Sprintf("Walk %s (%d min)", distance, minutes)
}
