package locations

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/travigo/journeyresolver/pkg/ctdf"
	"github.com/travigo/journeyresolver/pkg/dataaggregator"
	"github.com/travigo/journeyresolver/pkg/dataaggregator/source/cachedresults"
	"github.com/travigo/journeyresolver/pkg/dataaggregator/source/coordinates"
	"github.com/travigo/journeyresolver/pkg/dataaggregator/source/currentlocation"
)

type Strategy = dataaggregator.DataSource[ctdf.LocationQuery, *ctdf.ResolvedEndpoint]

// Expander rewrites abbreviated or misspelt place names before they are searched for
type Expander interface {
	ExpandPlaceName(ctx context.Context, name string) (string, error)
}

// Resolver turns a place name or current location hint into coordinates. Positions given directly are used as is,
// everything else goes through the search strategies in order with the first success winning.
type Resolver struct {
	Direct []Strategy
	Search []Strategy

	Expander Expander

	Cache           *cachedresults.Cache
	CacheExpiration time.Duration
}

func New(search ...Strategy) *Resolver {
	return &Resolver{
		Direct: []Strategy{
			coordinates.Source{},
			currentlocation.Source{},
		},
		Search:          search,
		CacheExpiration: 24 * time.Hour,
	}
}

func (r *Resolver) Resolve(ctx context.Context, q ctdf.LocationQuery) (*ctdf.ResolvedEndpoint, error) {
	q.Name = strings.TrimSpace(q.Name)

	if q.Name == "" && !q.UseCurrentLocation {
		return nil, fmt.Errorf("%w: no place given", ctdf.LocationNotFoundError)
	}

	endpoint, err := dataaggregator.FirstSuccess(ctx, q, r.Direct...)
	if err == nil {
		return endpoint, nil
	}
	if errors.Is(err, ctdf.LocationRequiredError) || ctx.Err() != nil {
		return nil, err
	}
	if q.Name == "" {
		return nil, fmt.Errorf("%w: no place given", ctdf.LocationNotFoundError)
	}

	cacheKey := strings.ToLower(q.Name)

	var cached ctdf.ResolvedEndpoint
	if r.Cache.Get(ctx, cacheKey, &cached) {
		log.Debug().Str("name", q.Name).Msg("Location served from cache")
		return &cached, nil
	}

	searchQuery := ctdf.LocationQuery{Name: r.expand(ctx, q.Name)}

	endpoint, err = dataaggregator.FirstSuccess(ctx, searchQuery, r.Search...)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		log.Debug().Err(err).Str("name", q.Name).Msg("Every location strategy failed")
		return nil, fmt.Errorf("%w: %s", ctdf.LocationNotFoundError, q.Name)
	}

	r.Cache.Set(ctx, cacheKey, endpoint, r.CacheExpiration)

	return endpoint, nil
}

// expand is best effort, any failure leaves the name untouched
func (r *Resolver) expand(ctx context.Context, name string) string {
	if r.Expander == nil {
		return name
	}

	expanded, err := r.Expander.ExpandPlaceName(ctx, name)
	if err != nil {
		log.Debug().Err(err).Str("name", name).Msg("Place name expansion failed")
		return name
	}

	expanded = strings.TrimSpace(expanded)
	if expanded == "" {
		return name
	}

	if expanded != name {
		log.Debug().Str("name", name).Str("expanded", expanded).Msg("Expanded place name")
	}

	return expanded
}
