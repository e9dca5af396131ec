package orchestrator

import (
	"github.com/rs/zerolog/log"
	"github.com/travigo/journeyresolver/pkg/config"
	"github.com/travigo/journeyresolver/pkg/dataaggregator/source/cachedresults"
	"github.com/travigo/journeyresolver/pkg/dataaggregator/source/databaselookup"
	"github.com/travigo/journeyresolver/pkg/dataaggregator/source/nationalrail"
	"github.com/travigo/journeyresolver/pkg/dataaggregator/source/nominatim"
	"github.com/travigo/journeyresolver/pkg/dataaggregator/source/stopindex"
	"github.com/travigo/journeyresolver/pkg/dataaggregator/source/tfl"
	"github.com/travigo/journeyresolver/pkg/database"
	"github.com/travigo/journeyresolver/pkg/elastic_client"
	"github.com/travigo/journeyresolver/pkg/enricher"
	"github.com/travigo/journeyresolver/pkg/intent"
	"github.com/travigo/journeyresolver/pkg/locations"
	"github.com/travigo/journeyresolver/pkg/modes"
	"github.com/travigo/journeyresolver/pkg/planner"
	"github.com/travigo/journeyresolver/pkg/redis_client"
)

const cachePrefix = "journeyresolver:"

// Setup builds an Orchestrator talking to the real providers. Redis, Elasticsearch and MongoDB are optional and are
// only used when their clients have been connected beforehand.
func Setup(cfg config.Config) (*Orchestrator, error) {
	location := cfg.Location()
	timeout := cfg.ProviderTimeoutDuration()

	ranker, err := planner.NewRanker(cfg.RankingExpression)
	if err != nil {
		return nil, err
	}

	tflSource := tfl.New(cfg.TfL.AppKey, cfg.TfL.Endpoint, timeout, location)
	intentClient := intent.New(cfg.LLM, timeout)

	search := []locations.Strategy{tflSource}
	if elastic_client.Client != nil {
		search = append(search, stopindex.New(elastic_client.Client, cfg.StopIndex))
	}
	search = append(search, nominatim.New(cfg.Nominatim.Endpoint, cfg.Nominatim.UserAgent, cfg.RegionViewbox, timeout))

	resolver := locations.New(search...)
	resolver.Expander = intentClient

	var nationalRail *nationalrail.Source
	if cfg.NationalRail.GatewayEndpoint != "" {
		nationalRail = nationalrail.New(cfg.NationalRail.GatewayEndpoint, timeout, location)
	} else {
		log.Info().Msg("No National Rail gateway configured, rail legs will use TfL arrivals")
	}

	if redis_client.Client != nil {
		resolver.Cache = cachedresults.New(redis_client.Client, cachePrefix+"location:", resolver.CacheExpiration)

		if nationalRail != nil {
			nationalRail.Cache = cachedresults.New(redis_client.Client, cachePrefix+"departures:", nationalRail.CacheExpiration)
		}
	}

	arrivalsEnricher := enricher.New(tflSource, nil, cfg.MaxArrivals)
	if nationalRail != nil {
		arrivalsEnricher.Departures = nationalRail
	}
	if database.Connected() {
		arrivalsEnricher.StopMetadata = databaselookup.New()
	}

	defaultModes := modes.DefaultModes
	if len(cfg.DefaultModes) > 0 {
		defaultModes = modes.NormalizeModes(cfg.DefaultModes)
	}

	log.Debug().
		Int("strategies", len(search)).
		Strs("defaultModes", defaultModes.Strings()).
		Msg("Journey resolver setup")

	return &Orchestrator{
		Extractor: intentClient,
		Describer: intentClient,
		Locations: resolver,
		Planner:   planner.New(tflSource, ranker, location, cfg.MaxItineraries),
		Enricher:  arrivalsEnricher,

		MinConfidence: cfg.MinConfidence,
		MaxAttempts:   cfg.MaxAttempts,
		DefaultModes:  defaultModes,

		Location: location,
	}, nil
}
