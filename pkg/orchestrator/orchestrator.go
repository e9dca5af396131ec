package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/sourcegraph/conc"
	"github.com/sourcegraph/conc/pool"
	"github.com/travigo/journeyresolver/pkg/config"
	"github.com/travigo/journeyresolver/pkg/ctdf"
	"github.com/travigo/journeyresolver/pkg/intent"
	"github.com/travigo/journeyresolver/pkg/modes"
	"github.com/travigo/journeyresolver/pkg/planner"
	"github.com/travigo/journeyresolver/pkg/transforms"
)

type IntentExtractor interface {
	ParseIntent(ctx context.Context, rawQuery string, feedback []ctdf.PlannerFeedback) (*ctdf.TravelIntent, error)
	ClarifyingQuestions(ctx context.Context, rawQuery string, ambiguities []string) ([]string, error)
}

type ItineraryDescriber interface {
	DescribeItinerary(ctx context.Context, itinerary ctdf.Itinerary) (string, error)
}

type LocationResolver interface {
	Resolve(ctx context.Context, q ctdf.LocationQuery) (*ctdf.ResolvedEndpoint, error)
}

type JourneyPlanner interface {
	PlanJourney(ctx context.Context, request ctdf.PlanRequest) ([]ctdf.Itinerary, error)
}

type LegEnricher interface {
	Enrich(ctx context.Context, itinerary ctdf.Itinerary) []ctdf.EnrichedLeg
}

// Orchestrator drives a resolve request from the raw query through to enriched itineraries
type Orchestrator struct {
	Extractor IntentExtractor
	Describer ItineraryDescriber
	Locations LocationResolver
	Planner   JourneyPlanner
	Enricher  LegEnricher

	MinConfidence float64
	MaxAttempts   int
	DefaultModes  ctdf.ModeSet

	Location *time.Location
	Now      func() time.Time
}

func (o *Orchestrator) now() time.Time {
	if o.Now != nil {
		return o.Now()
	}

	return time.Now()
}

func (o *Orchestrator) maxAttempts() int {
	if o.MaxAttempts < 1 {
		return config.DefaultMaxAttempts
	}

	return o.MaxAttempts
}

func (o *Orchestrator) minConfidence() float64 {
	if o.MinConfidence <= 0 {
		return config.DefaultMinConfidence
	}

	return o.MinConfidence
}

func (o *Orchestrator) defaultModes() ctdf.ModeSet {
	if len(o.DefaultModes) == 0 {
		return modes.DefaultModes
	}

	return o.DefaultModes
}

// Resolve runs the request and wraps the outcome in the caller facing result envelope
func (o *Orchestrator) Resolve(ctx context.Context, request ctdf.ResolveRequest) ctdf.Result {
	data, err := o.Run(ctx, request)
	if err != nil {
		return ctdf.ErrorResult(err)
	}

	return ctdf.SuccessResult(data)
}

// Run resolves a request. Natural language requests retry through intent extraction with feedback about the failure
// until MaxAttempts is reached, after which the last failure is returned. Manual requests get a single attempt.
func (o *Orchestrator) Run(ctx context.Context, request ctdf.ResolveRequest) (*ctdf.ResultData, error) {
	r := &resolution{Request: request}

	switch {
	case request.IsNaturalLanguage() && strings.TrimSpace(request.To) != "":
		return nil, fmt.Errorf("%w: both a query and a destination were given", ctdf.InvalidRequestError)
	case request.IsNaturalLanguage():
		r.State = StateExtractingIntent
	case request.IsManual():
		r.Manual = true
		r.Journey = journeyFromManual(request)
		r.State = StateResolvingEndpoints
	default:
		return nil, ctdf.InvalidRequestError
	}

	for r.State != StateDone {
		state := r.State

		if err := o.step(ctx, r); err != nil {
			log.Debug().
				Err(err).
				Str("state", state.String()).
				Int("attempt", r.Attempt).
				Bool("manual", r.Manual).
				Msg("Resolution attempt failed")

			if r.Manual || !retryable(err) || r.Attempt >= o.maxAttempts() {
				return nil, err
			}

			r.Feedback = append(r.Feedback, o.composeFeedback(err))
			r.reset()
			r.State = StateExtractingIntent
		}
	}

	return r.Result, nil
}

func (o *Orchestrator) step(ctx context.Context, r *resolution) error {
	switch r.State {
	case StateExtractingIntent:
		return o.extractIntent(ctx, r)
	case StateResolvingEndpoints:
		return o.resolveEndpoints(ctx, r)
	case StatePlanning:
		return o.plan(ctx, r)
	case StateEnriching:
		o.enrich(ctx, r)
		return nil
	default:
		return fmt.Errorf("unexpected state %s", r.State)
	}
}

func (o *Orchestrator) extractIntent(ctx context.Context, r *resolution) error {
	r.Attempt++

	log.Debug().Int("attempt", r.Attempt).Int("feedback", len(r.Feedback)).Msg("Extracting intent")

	travelIntent, err := o.Extractor.ParseIntent(ctx, r.Request.NaturalLanguageQuery, r.Feedback)
	if err != nil {
		return err
	}

	err = intent.Gate(travelIntent, o.minConfidence())
	if errors.Is(err, ctdf.AmbiguousIntentError) {
		r.Result = o.clarify(ctx, r.Request.NaturalLanguageQuery, travelIntent)
		r.State = StateDone
		return nil
	}
	if err != nil {
		return err
	}

	r.Intent = travelIntent
	r.Journey = journeyFromIntent(travelIntent, r.Request)
	r.State = StateResolvingEndpoints

	return nil
}

// clarify answers an ambiguous request with follow-up questions instead of a plan.
// Failing to generate the questions still returns the ambiguities.
func (o *Orchestrator) clarify(ctx context.Context, rawQuery string, travelIntent *ctdf.TravelIntent) *ctdf.ResultData {
	suggestions, err := o.Extractor.ClarifyingQuestions(ctx, rawQuery, travelIntent.Ambiguities)
	if err != nil {
		log.Warn().Err(err).Msg("Failed to generate clarifying questions")
	}

	return &ctdf.ResultData{
		Ambiguities: travelIntent.Ambiguities,
		Suggestions: suggestions,
	}
}

// resolveEndpoints resolves from, to and via concurrently. When several fail the first of from, to, via is reported.
func (o *Orchestrator) resolveEndpoints(ctx context.Context, r *resolution) error {
	journey := r.Journey

	var fromErr, toErr, viaErr error

	p := pool.New().WithContext(ctx)
	p.Go(func(ctx context.Context) error {
		r.From, fromErr = o.Locations.Resolve(ctx, journey.From)
		return fromErr
	})
	p.Go(func(ctx context.Context) error {
		r.To, toErr = o.Locations.Resolve(ctx, journey.To)
		return toErr
	})
	if journey.Via != nil {
		p.Go(func(ctx context.Context) error {
			r.Via, viaErr = o.Locations.Resolve(ctx, *journey.Via)
			return viaErr
		})
	}

	if err := p.Wait(); err != nil {
		return firstError(fromErr, toErr, viaErr)
	}

	log.Debug().
		Str("from", r.From.DisplayName).
		Str("to", r.To.DisplayName).
		Msg("Resolved journey endpoints")

	r.State = StatePlanning

	return nil
}

func firstError(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}

	return nil
}

func (o *Orchestrator) planRequest(r *resolution) (ctdf.PlanRequest, error) {
	journey := r.Journey

	dateTime, err := planner.ParseRequestTime(journey.Time, o.now(), o.Location)
	if err != nil {
		return ctdf.PlanRequest{}, fmt.Errorf("%w: %w: %w", ctdf.InvalidRequestError, ctdf.InvalidTimeError, err)
	}

	policy := ctdf.ModePolicyPrefer
	if journey.Exclusive && len(journey.Modes) > 0 {
		policy = ctdf.ModePolicyOnly
	}

	return ctdf.PlanRequest{
		From: *r.From,
		To:   *r.To,
		Via:  r.Via,

		Modes:          modes.MergeModes(journey.Modes, journey.Exclusive, o.defaultModes()),
		PreferredModes: journey.Modes,
		ModePolicy:     policy,

		Accessibility: modes.AccessibilityConstraint(journey.Accessibility),

		WalkingSpeed:       journey.WalkingSpeed,
		JourneyPreference:  journey.JourneyPreference,
		MaxWalkingMinutes:  journey.MaxWalkingMinutes,
		MaxTransferMinutes: journey.MaxTransferMinutes,

		DateTime: dateTime,
		TimeIs:   journey.TimeIs,
	}, nil
}

func (o *Orchestrator) plan(ctx context.Context, r *resolution) error {
	request, err := o.planRequest(r)
	if err != nil {
		return err
	}

	log.Debug().
		Strs("modes", request.Modes.Strings()).
		Str("policy", string(request.ModePolicy)).
		Msg("Planning journey")

	itineraries, err := o.Planner.PlanJourney(ctx, request)
	if err != nil {
		return err
	}
	if len(itineraries) == 0 {
		return ctdf.NoJourneysFoundError
	}

	r.Itineraries = itineraries
	r.State = StateEnriching

	return nil
}

// enrich describes and enriches every itinerary concurrently. Neither can fail the request, a failed description
// is left empty.
func (o *Orchestrator) enrich(ctx context.Context, r *resolution) {
	journeys := make([]ctdf.EnrichedItinerary, len(r.Itineraries))

	var itineraries conc.WaitGroup
	for i, itinerary := range r.Itineraries {
		i, itinerary := i, itinerary
		itineraries.Go(func() {
			journeys[i] = o.enrichItinerary(ctx, itinerary)
		})
	}
	itineraries.Wait()

	r.Result = &ctdf.ResultData{
		Journeys: journeys,
		FromName: r.From.DisplayName,
		ToName:   r.To.DisplayName,
	}
	r.State = StateDone
}

func (o *Orchestrator) enrichItinerary(ctx context.Context, itinerary ctdf.Itinerary) ctdf.EnrichedItinerary {
	enriched := ctdf.EnrichedItinerary{
		StartDateTime:   itinerary.StartDateTime,
		ArrivalDateTime: itinerary.ArrivalDateTime,
		Duration:        itinerary.Duration,
	}

	var wg conc.WaitGroup
	if o.Describer != nil {
		wg.Go(func() {
			description, err := o.Describer.DescribeItinerary(ctx, itinerary)
			if err != nil {
				log.Warn().Err(err).Msg("Failed to describe itinerary")
				return
			}
			enriched.Description = description
		})
	}
	wg.Go(func() {
		enriched.Legs = o.Enricher.Enrich(ctx, itinerary)
	})
	wg.Wait()

	transforms.Transform(&enriched)

	return enriched
}
