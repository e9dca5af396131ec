package ctdf

import (
	"errors"
	"fmt"
)

var (
	LowConfidenceIntentError = errors.New("could not understand the journey request")
	AmbiguousIntentError     = errors.New("journey request is ambiguous")
	NotJourneyQueryError     = errors.New("request is not a journey query")
	LocationNotFoundError    = errors.New("location not found")
	LocationRequiredError    = errors.New("location_required")
	NoJourneysFoundError     = errors.New("no journeys found")
	InvalidRequestError      = errors.New("invalid request")
	InvalidTimeError         = errors.New("invalid time")
)

// ProviderError is a transport or protocol failure from an external collaborator
type ProviderError struct {
	Provider string
	Err      error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s: %s", e.Provider, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

func NewProviderError(provider string, err error) *ProviderError {
	return &ProviderError{Provider: provider, Err: err}
}

// UserMessage maps an error onto the plain text shown to the user, never exposing provider payloads
func UserMessage(err error) string {
	var providerError *ProviderError

	switch {
	case err == nil:
		return ""
	case errors.Is(err, LocationRequiredError):
		return LocationRequiredError.Error()
	case errors.Is(err, LowConfidenceIntentError):
		return "Sorry, I could not understand that journey. Try naming where you are travelling from and to."
	case errors.Is(err, NotJourneyQueryError):
		return "That does not look like a journey request. Try asking for directions between two places."
	case errors.Is(err, AmbiguousIntentError):
		return "Your request could mean more than one thing. Please clarify."
	case errors.Is(err, LocationNotFoundError):
		return "Sorry, we could not find one of the places in your journey."
	case errors.Is(err, NoJourneysFoundError):
		return "No journeys could be found for that request."
	case errors.Is(err, InvalidTimeError):
		return "That time could not be understood. Use a time like 09:30 or a full date and time."
	case errors.Is(err, InvalidRequestError):
		return "Provide either a journey question or a destination."
	case errors.As(err, &providerError):
		return "A journey information service is currently unavailable. Please try again shortly."
	default:
		return "Something went wrong while planning your journey."
	}
}
