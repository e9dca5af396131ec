package orchestrator

import (
	"strings"

	"github.com/travigo/journeyresolver/pkg/ctdf"
	"github.com/travigo/journeyresolver/pkg/intent"
	"github.com/travigo/journeyresolver/pkg/modes"
)

// journeyRequest is the common shape of a natural language intent and a manual request once normalised
type journeyRequest struct {
	From ctdf.LocationQuery
	To   ctdf.LocationQuery
	Via  *ctdf.LocationQuery

	Modes     ctdf.ModeSet
	Exclusive bool

	Accessibility []ctdf.AccessibilityFlag

	WalkingSpeed       ctdf.WalkingSpeed
	JourneyPreference  ctdf.JourneyPreference
	MaxWalkingMinutes  int
	MaxTransferMinutes int

	Time   string
	TimeIs ctdf.TimeIs
}

func locationQuery(location *ctdf.IntentLocation, currentLocation *ctdf.Coordinates) ctdf.LocationQuery {
	if location == nil {
		return ctdf.LocationQuery{UseCurrentLocation: true, CurrentLocation: currentLocation}
	}

	name := strings.TrimSpace(location.Name)

	return ctdf.LocationQuery{
		Name:               name,
		UseCurrentLocation: location.UseCurrentLocation || name == "",
		CurrentLocation:    currentLocation,
	}
}

// requestTime picks the caller's own time fields, an arrival time taking priority
func requestTime(request ctdf.ResolveRequest) (string, ctdf.TimeIs) {
	if arrival := strings.TrimSpace(request.ArrivalTime); arrival != "" {
		return arrival, ctdf.TimeIsArriveBy
	}

	return strings.TrimSpace(request.DepartureTime), ctdf.TimeIsDepartBy
}

func applyRequestPreferences(journey *journeyRequest, preferences *ctdf.RequestPreferences) {
	if preferences == nil {
		return
	}

	var accessibility []string
	for _, flag := range journey.Accessibility {
		accessibility = append(accessibility, string(flag))
	}
	journey.Accessibility = modes.NormalizeAccessibility(append(accessibility, preferences.Accessibility...))

	if preferences.WalkingSpeed != "" {
		journey.WalkingSpeed = preferences.WalkingSpeed
	}
	if preferences.JourneyPreference != "" {
		journey.JourneyPreference = preferences.JourneyPreference
	}
	if preferences.MaxWalkingMinutes > 0 {
		journey.MaxWalkingMinutes = preferences.MaxWalkingMinutes
	}
	if preferences.MaxTransferMinutes > 0 {
		journey.MaxTransferMinutes = preferences.MaxTransferMinutes
	}
}

// journeyFromIntent normalises an extracted intent. A missing origin means the traveller's current location.
// Modes come from the intent, falling back to modes named in the query text, and the list is exclusive when either
// the intent says so or the query carries an exclusivity marker.
func journeyFromIntent(travelIntent *ctdf.TravelIntent, request ctdf.ResolveRequest) *journeyRequest {
	journey := &journeyRequest{
		From:   locationQuery(travelIntent.From, request.CurrentLocation),
		To:     locationQuery(travelIntent.To, request.CurrentLocation),
		TimeIs: ctdf.TimeIsDepartBy,
	}

	if via := intent.FirstVia(travelIntent); via != nil {
		viaQuery := ctdf.LocationQuery{Name: strings.TrimSpace(via.Name)}
		journey.Via = &viaQuery
	}

	preferences := travelIntent.Preferences
	if preferences == nil {
		preferences = &ctdf.IntentPreferences{}
	}

	journey.Modes = modes.NormalizeModes(preferences.Modes)
	if len(journey.Modes) == 0 {
		journey.Modes = modes.ExtractModesFromFreeText(request.NaturalLanguageQuery)
	}
	journey.Exclusive = preferences.ModePolicy == ctdf.ModePolicyOnly || modes.HasExclusivityMarker(request.NaturalLanguageQuery)

	journey.Accessibility = modes.NormalizeAccessibility(preferences.Accessibility)
	journey.WalkingSpeed = preferences.WalkingSpeed
	journey.JourneyPreference = preferences.JourneyPreference
	journey.MaxWalkingMinutes = preferences.MaxWalkingMinutes
	journey.MaxTransferMinutes = preferences.MaxTransferMinutes

	if strings.TrimSpace(preferences.Time) != "" {
		journey.Time = preferences.Time
		if preferences.TimeIs != "" {
			journey.TimeIs = preferences.TimeIs
		}
	} else {
		journey.Time, journey.TimeIs = requestTime(request)
	}

	applyRequestPreferences(journey, request.Preferences)

	return journey
}

// journeyFromManual normalises a from/to request. Listed modes are preferred on top of the default set.
func journeyFromManual(request ctdf.ResolveRequest) *journeyRequest {
	journey := &journeyRequest{
		To: ctdf.LocationQuery{Name: strings.TrimSpace(request.To)},
	}

	if from := strings.TrimSpace(request.From); from != "" {
		journey.From = ctdf.LocationQuery{Name: from}
	} else {
		journey.From = ctdf.LocationQuery{UseCurrentLocation: true, CurrentLocation: request.CurrentLocation}
	}

	for _, via := range request.Via {
		if via = strings.TrimSpace(via); via != "" {
			journey.Via = &ctdf.LocationQuery{Name: via}
			break
		}
	}

	if request.Preferences != nil {
		journey.Modes = modes.NormalizeModes(request.Preferences.Modes)
	}

	journey.Time, journey.TimeIs = requestTime(request)

	applyRequestPreferences(journey, request.Preferences)

	return journey
}
