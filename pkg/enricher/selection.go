package enricher

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"
	"github.com/travigo/journeyresolver/pkg/ctdf"
	"github.com/travigo/journeyresolver/pkg/dataaggregator"
	"github.com/travigo/journeyresolver/pkg/dataaggregator/source"
	"github.com/travigo/journeyresolver/pkg/util"
)

type legSelection struct {
	Leg      ctdf.Leg
	RailCode string

	RailBoards map[string][]ctdf.Arrival
	Batch      []ctdf.ArrivalPrediction
}

type selectionSource = dataaggregator.SourceFunc[legSelection, []ctdf.Arrival]

// selectArrivals picks the arrivals for one leg, first non empty answer wins:
// the rail board for the leg's code, the batch filtered by stop and line, the batch filtered by stop,
// and finally a targeted request for the leg's line
func (e *Enricher) selectArrivals(ctx context.Context, selection legSelection) []ctdf.Arrival {
	aggregator := dataaggregator.New[legSelection, []ctdf.Arrival]("leg arrivals",
		selectionSource{Name: "rail board", Func: fromRailBoard},
		selectionSource{Name: "stop and line", Func: fromBatchByStopAndLine},
		selectionSource{Name: "stop", Func: fromBatchByStop},
		selectionSource{Name: "line request", Func: e.fromLineRequest},
	)
	aggregator.Accept = func(arrivals []ctdf.Arrival) bool {
		return len(arrivals) > 0
	}

	arrivals, err := aggregator.Lookup(ctx, selection)
	if err != nil {
		if !errors.Is(err, dataaggregator.NoMatchingSourceError) {
			log.Debug().Err(err).Str("stop", selection.Leg.DeparturePoint.NaptanID).Msg("No arrivals for leg")
		}
		return nil
	}

	return e.limit(arrivals)
}

func fromRailBoard(ctx context.Context, selection legSelection) ([]ctdf.Arrival, error) {
	if selection.RailCode == "" {
		return nil, source.UnsupportedSourceError
	}

	return selection.RailBoards[selection.RailCode], nil
}

func fromBatchByStopAndLine(ctx context.Context, selection legSelection) ([]ctdf.Arrival, error) {
	if selection.Leg.LineID == "" {
		return nil, source.UnsupportedSourceError
	}

	return toArrivals(util.Filter(selection.Batch, func(prediction ctdf.ArrivalPrediction) bool {
		return matchesStop(prediction, selection.Leg.DeparturePoint) && matchesLine(prediction, selection.Leg.LineID)
	})), nil
}

func fromBatchByStop(ctx context.Context, selection legSelection) ([]ctdf.Arrival, error) {
	return toArrivals(util.Filter(selection.Batch, func(prediction ctdf.ArrivalPrediction) bool {
		return matchesStop(prediction, selection.Leg.DeparturePoint)
	})), nil
}

func (e *Enricher) fromLineRequest(ctx context.Context, selection legSelection) ([]ctdf.Arrival, error) {
	stopID := selection.Leg.DeparturePoint.NaptanID
	if e.Arrivals == nil || selection.Leg.LineID == "" || stopID == "" {
		return nil, source.UnsupportedSourceError
	}

	predictions, err := e.Arrivals.LineArrivals(ctx, selection.Leg.LineID, stopID)
	if err != nil {
		log.Warn().Err(err).Str("line", selection.Leg.LineID).Str("stop", stopID).Msg("Line arrivals request failed")
		return nil, err
	}

	return toArrivals(predictions), nil
}
