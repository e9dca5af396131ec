package orchestrator

import (
	"context"
	"errors"

	"github.com/travigo/journeyresolver/pkg/ctdf"
)

// retryable reports whether a failed attempt should go back to intent extraction. Failures caused by what the
// traveller asked for, rather than how it was read, end the request straight away.
func retryable(err error) bool {
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return false
	case errors.Is(err, ctdf.LocationRequiredError),
		errors.Is(err, ctdf.LowConfidenceIntentError),
		errors.Is(err, ctdf.NotJourneyQueryError),
		errors.Is(err, ctdf.AmbiguousIntentError):
		return false
	default:
		return true
	}
}

func guidance(err error) string {
	var providerError *ctdf.ProviderError

	switch {
	case errors.Is(err, ctdf.LocationNotFoundError):
		return "A place could not be found. Use the full official name of the station or a well known landmark near it, and keep to places in London."
	case errors.Is(err, ctdf.NoJourneysFoundError):
		return "No journeys were found. Check the origin and destination are correct, drop the via point, or only use modes from allowedModes that serve both places."
	case errors.Is(err, ctdf.InvalidRequestError):
		return "The request could not be built. Give times as RFC3339, HH:MM or an ISO8601 duration and only use the documented values."
	case errors.As(err, &providerError):
		return "A journey service failed. Keep the same places and simplify the request."
	default:
		return "Revise the intent so that a journey can be planned."
	}
}

func (o *Orchestrator) composeFeedback(err error) ctdf.PlannerFeedback {
	allowedModes := make([]string, 0, len(ctdf.TransportModes))
	for _, mode := range ctdf.TransportModes {
		allowedModes = append(allowedModes, string(mode))
	}

	return ctdf.PlannerFeedback{
		LastError:    err.Error(),
		Guidance:     guidance(err),
		AllowedModes: allowedModes,
		DefaultModes: o.defaultModes().Strings(),
	}
}
