package intent

import (
	"strings"

	"github.com/travigo/journeyresolver/pkg/ctdf"
)

// Gate checks an intent is usable for planning. The checks run in order: confidence, then kind and destination,
// then ambiguities.
func Gate(intent *ctdf.TravelIntent, minConfidence float64) error {
	if intent == nil || intent.OverallConfidence < minConfidence {
		return ctdf.LowConfidenceIntentError
	}

	if intent.Kind != ctdf.IntentKindJourney || !hasPlace(intent.To) {
		return ctdf.NotJourneyQueryError
	}

	if len(intent.Ambiguities) > 0 {
		return ctdf.AmbiguousIntentError
	}

	return nil
}

func hasPlace(location *ctdf.IntentLocation) bool {
	return location != nil && (strings.TrimSpace(location.Name) != "" || location.UseCurrentLocation)
}

// FirstVia returns the only waypoint that is planned through, later ones are ignored
func FirstVia(intent *ctdf.TravelIntent) *ctdf.IntentLocation {
	if len(intent.Via) == 0 || strings.TrimSpace(intent.Via[0].Name) == "" {
		return nil
	}

	return &intent.Via[0]
}
