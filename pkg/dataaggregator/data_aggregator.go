package dataaggregator

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/travigo/journeyresolver/pkg/dataaggregator/source"
)

var NoMatchingSourceError = errors.New("failed to find a matching data source")

// Aggregator walks its registered sources in order and returns the first successful answer
type Aggregator[Q any, T any] struct {
	Name    string
	Sources []DataSource[Q, T]

	// Accept optionally rejects a successful but unusable answer (eg. an empty list) so the next source is tried
	Accept func(T) bool
}

func New[Q any, T any](name string, sources ...DataSource[Q, T]) *Aggregator[Q, T] {
	return &Aggregator[Q, T]{
		Name:    name,
		Sources: sources,
	}
}

func (a *Aggregator[Q, T]) RegisterSource(dataSource DataSource[Q, T]) {
	a.Sources = append(a.Sources, dataSource)

	log.Debug().Str("aggregator", a.Name).Str("name", dataSource.GetName()).Msg("Registering new Data Source")
}

// Lookup returns the answer of the first source to succeed. If every source fails the last real failure is
// returned wrapped in NoMatchingSourceError.
func (a *Aggregator[Q, T]) Lookup(ctx context.Context, query Q) (T, error) {
	var empty T
	var lastErr error

	for _, dataSource := range a.Sources {
		if err := ctx.Err(); err != nil {
			return empty, err
		}

		value, err := dataSource.Lookup(ctx, query)

		if err == nil && (a.Accept == nil || a.Accept(value)) {
			return value, nil
		}

		if err != nil && !errors.Is(err, source.UnsupportedSourceError) {
			lastErr = err
			log.Debug().Err(err).Str("aggregator", a.Name).Str("source", dataSource.GetName()).Msg("Data Source failed, falling through")
		}
	}

	if lastErr != nil {
		return empty, fmt.Errorf("%w: %w", NoMatchingSourceError, lastErr)
	}

	return empty, NoMatchingSourceError
}

// FirstSuccess runs a one-off cascade over the given sources
func FirstSuccess[Q any, T any](ctx context.Context, query Q, sources ...DataSource[Q, T]) (T, error) {
	return New("first-success", sources...).Lookup(ctx, query)
}
