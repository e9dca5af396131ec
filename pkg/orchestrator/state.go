package orchestrator

import (
	"github.com/travigo/journeyresolver/pkg/ctdf"
)

type State int

const (
	StateExtractingIntent State = iota
	StateResolvingEndpoints
	StatePlanning
	StateEnriching
	StateDone
)

func (s State) String() string {
	switch s {
	case StateExtractingIntent:
		return "ExtractingIntent"
	case StateResolvingEndpoints:
		return "ResolvingEndpoints"
	case StatePlanning:
		return "Planning"
	case StateEnriching:
		return "Enriching"
	case StateDone:
		return "Done"
	default:
		return "Unknown"
	}
}

// resolution carries one request through the state machine. attempt counts trips through ExtractingIntent and
// feedback accumulates one entry per failed attempt.
type resolution struct {
	State State

	Attempt  int
	Feedback []ctdf.PlannerFeedback

	Request ctdf.ResolveRequest
	Manual  bool

	Intent  *ctdf.TravelIntent
	Journey *journeyRequest

	From *ctdf.ResolvedEndpoint
	To   *ctdf.ResolvedEndpoint
	Via  *ctdf.ResolvedEndpoint

	Itineraries []ctdf.Itinerary

	Result *ctdf.ResultData
}

// reset drops everything derived from the previous attempt's intent
func (r *resolution) reset() {
	r.Intent = nil
	r.Journey = nil
	r.From = nil
	r.To = nil
	r.Via = nil
	r.Itineraries = nil
	r.Result = nil
}
