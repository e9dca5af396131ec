package planner

import (
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/travigo/journeyresolver/pkg/ctdf"
)

var accessibilityPreferences = map[ctdf.AccessibilityConstraint]string{
	ctdf.AccessibilityConstraintStepFreePlatform: "StepFreeToPlatform",
	ctdf.AccessibilityConstraintStepFreeVehicle:  "StepFreeToVehicle",
}

// FormatCoordinates renders a position the way the journey planner expects it in the request path
func FormatCoordinates(coordinates ctdf.Coordinates) string {
	return coordinates.String()
}

// BuildParameters serialises everything but the endpoints of a PlanRequest into journey planner query parameters.
// Dates and times are rendered in location.
func BuildParameters(request ctdf.PlanRequest, location *time.Location) url.Values {
	parameters := url.Values{}

	if request.Via != nil {
		parameters.Set("via", FormatCoordinates(request.Via.Coordinates))
	}

	if len(request.Modes) > 0 {
		parameters.Set("mode", strings.Join(request.Modes.Strings(), ","))
	}

	if preference, ok := accessibilityPreferences[request.Accessibility]; ok {
		parameters.Set("accessibilityPreference", preference)
	}

	if request.WalkingSpeed != "" {
		parameters.Set("walkingSpeed", string(request.WalkingSpeed))
	}

	if request.JourneyPreference != "" {
		parameters.Set("journeyPreference", string(request.JourneyPreference))
	}

	if request.MaxWalkingMinutes > 0 {
		parameters.Set("maxWalkingMinutes", strconv.Itoa(request.MaxWalkingMinutes))
	}

	if request.MaxTransferMinutes > 0 {
		parameters.Set("maxTransferMinutes", strconv.Itoa(request.MaxTransferMinutes))
	}

	if request.DateTime != nil {
		if location == nil {
			location = time.UTC
		}
		localTime := request.DateTime.In(location)

		parameters.Set("date", localTime.Format("20060102"))
		parameters.Set("time", localTime.Format("1504"))

		if request.TimeIs == ctdf.TimeIsArriveBy {
			parameters.Set("timeIs", "Arriving")
		} else {
			parameters.Set("timeIs", "Departing")
		}
	}

	return parameters
}
