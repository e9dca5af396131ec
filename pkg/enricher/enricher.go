package enricher

import (
	"context"
	"strings"

	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"
	"github.com/sourcegraph/conc"
	"github.com/sourcegraph/conc/pool"
	"github.com/travigo/journeyresolver/pkg/config"
	"github.com/travigo/journeyresolver/pkg/ctdf"
	"golang.org/x/exp/slices"
)

// ArrivalsProvider serves live predictions for the urban network
type ArrivalsProvider interface {
	StopArrivals(ctx context.Context, stopIDs []string) ([]ctdf.ArrivalPrediction, error)
	LineArrivals(ctx context.Context, lineID string, stopID string) ([]ctdf.ArrivalPrediction, error)
}

// DeparturesProvider serves national rail departure boards keyed by rail code
type DeparturesProvider interface {
	Departures(ctx context.Context, crs string, count int) ([]ctdf.Arrival, error)
}

// StopMetadata fills in stop properties the journey planner did not send, such as the rail code
type StopMetadata interface {
	StopProperties(ctx context.Context, naptanID string) (map[string]string, error)
}

type Enricher struct {
	Arrivals     ArrivalsProvider
	Departures   DeparturesProvider
	StopMetadata StopMetadata

	MaxArrivals int
}

func New(arrivals ArrivalsProvider, departures DeparturesProvider, maxArrivals int) *Enricher {
	if maxArrivals < 1 {
		maxArrivals = config.DefaultMaxArrivals
	}

	return &Enricher{
		Arrivals:    arrivals,
		Departures:  departures,
		MaxArrivals: maxArrivals,
	}
}

func isWalking(leg ctdf.Leg) bool {
	return leg.Mode == ctdf.TransportModeWalking
}

// Enrich attaches live departures to every vehicle leg and directions to every walking leg.
// Provider failures only leave the affected legs without arrivals.
func (e *Enricher) Enrich(ctx context.Context, itinerary ctdf.Itinerary) []ctdf.EnrichedLeg {
	enrichedLegs := make([]ctdf.EnrichedLeg, len(itinerary.Legs))
	for i := range itinerary.Legs {
		if err := copier.Copy(&enrichedLegs[i], &itinerary.Legs[i]); err != nil {
			log.Error().Err(err).Msg("Failed to copy leg")
		}

		if isWalking(itinerary.Legs[i]) {
			enrichedLegs[i].WalkingDirectionsURL = walkingDirectionsURL(itinerary.Legs[i])
			enrichedLegs[i].WalkingSummary = walkingSummary(itinerary.Legs[i])
		}
	}

	railCodes := e.railCodes(ctx, itinerary.Legs)

	var batch []ctdf.ArrivalPrediction
	var railBoards map[string][]ctdf.Arrival

	var wg conc.WaitGroup
	wg.Go(func() {
		batch = e.batchedArrivals(ctx, itinerary.Legs)
	})
	wg.Go(func() {
		railBoards = e.railDepartures(ctx, railCodes)
	})
	wg.Wait()

	for i, leg := range itinerary.Legs {
		if isWalking(leg) {
			continue
		}

		arrivals := e.selectArrivals(ctx, legSelection{
			Leg:        leg,
			RailCode:   railCodes[i],
			RailBoards: railBoards,
			Batch:      batch,
		})

		if len(arrivals) > 0 {
			enrichedLegs[i].NextArrivals = arrivals
			enrichedLegs[i].Platform = arrivals[0].Platform
		}
	}

	return enrichedLegs
}

// batchedArrivals issues the single arrivals request covering every boarding stop of the itinerary
func (e *Enricher) batchedArrivals(ctx context.Context, legs []ctdf.Leg) []ctdf.ArrivalPrediction {
	if e.Arrivals == nil {
		return nil
	}

	var stopIDs []string
	for _, leg := range legs {
		if isWalking(leg) {
			continue
		}

		for _, stopID := range []string{leg.DeparturePoint.NaptanID, leg.DeparturePoint.ParentID} {
			if stopID != "" && !slices.Contains(stopIDs, stopID) {
				stopIDs = append(stopIDs, stopID)
			}
		}
	}

	if len(stopIDs) == 0 {
		return nil
	}

	arrivals, err := e.Arrivals.StopArrivals(ctx, stopIDs)
	if err != nil {
		log.Warn().Err(err).Strs("stops", stopIDs).Msg("Batched arrivals request failed")
		return nil
	}

	return arrivals
}

// railCodes derives the rail code of every national rail leg, indexed like legs
func (e *Enricher) railCodes(ctx context.Context, legs []ctdf.Leg) []string {
	codes := make([]string, len(legs))

	var wg conc.WaitGroup
	for i, leg := range legs {
		if leg.Mode != ctdf.TransportModeNationalRail {
			continue
		}

		i, leg := i, leg
		wg.Go(func() {
			codes[i] = e.railCode(ctx, leg.DeparturePoint)
		})
	}
	wg.Wait()

	return codes
}

func (e *Enricher) railCode(ctx context.Context, stopPoint ctdf.StopPoint) string {
	if code := RailCode(stopPoint); code != "" || e.StopMetadata == nil || stopPoint.NaptanID == "" {
		return code
	}

	properties, err := e.StopMetadata.StopProperties(ctx, stopPoint.NaptanID)
	if err != nil {
		log.Debug().Err(err).Str("stop", stopPoint.NaptanID).Msg("No stop metadata for rail code")
		return ""
	}

	hydrated := stopPoint
	hydrated.Properties = map[string]string{}
	for key, value := range stopPoint.Properties {
		hydrated.Properties[key] = value
	}
	for key, value := range properties {
		hydrated.Properties[key] = value
	}

	return RailCode(hydrated)
}

type railBoard struct {
	Code     string
	Arrivals []ctdf.Arrival
}

// railDepartures fetches one board per distinct rail code concurrently. A failing board is left out and does
// not affect the others.
func (e *Enricher) railDepartures(ctx context.Context, codes []string) map[string][]ctdf.Arrival {
	boards := map[string][]ctdf.Arrival{}
	if e.Departures == nil {
		return boards
	}

	var distinctCodes []string
	for _, code := range codes {
		if code != "" && !slices.Contains(distinctCodes, code) {
			distinctCodes = append(distinctCodes, code)
		}
	}

	p := pool.NewWithResults[*railBoard]()
	for _, code := range distinctCodes {
		code := code
		p.Go(func() *railBoard {
			arrivals, err := e.Departures.Departures(ctx, code, e.MaxArrivals)
			if err != nil {
				log.Warn().Err(err).Str("crs", code).Msg("National Rail departures request failed")
				return nil
			}

			return &railBoard{Code: code, Arrivals: arrivals}
		})
	}

	for _, board := range p.Wait() {
		if board != nil {
			boards[board.Code] = board.Arrivals
		}
	}

	return boards
}

func matchesStop(prediction ctdf.ArrivalPrediction, stopPoint ctdf.StopPoint) bool {
	if prediction.StopID == "" {
		return false
	}

	return prediction.StopID == stopPoint.NaptanID || prediction.StopID == stopPoint.ParentID
}

func matchesLine(prediction ctdf.ArrivalPrediction, lineID string) bool {
	return lineID != "" && strings.EqualFold(prediction.LineID, lineID)
}

func toArrivals(predictions []ctdf.ArrivalPrediction) []ctdf.Arrival {
	arrivals := make([]ctdf.Arrival, 0, len(predictions))
	for _, prediction := range predictions {
		arrivals = append(arrivals, prediction.Arrival)
	}

	return arrivals
}

// limit sorts soonest first and caps the list
func (e *Enricher) limit(arrivals []ctdf.Arrival) []ctdf.Arrival {
	sorted := append([]ctdf.Arrival{}, arrivals...)

	slices.SortStableFunc(sorted, func(a, b ctdf.Arrival) int {
		return a.SecondsToArrival - b.SecondsToArrival
	})

	if len(sorted) > e.MaxArrivals {
		sorted = sorted[:e.MaxArrivals]
	}

	return sorted
}
