package planner

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/travigo/journeyresolver/pkg/config"
	"github.com/travigo/journeyresolver/pkg/ctdf"
)

// Provider is the journey planning service, taking already formatted endpoints and query parameters
type Provider interface {
	GetName() string
	PlanJourney(ctx context.Context, from string, to string, parameters url.Values) ([]ctdf.Itinerary, error)
}

type Client struct {
	Provider Provider
	Ranker   *Ranker
	Location *time.Location

	MaxItineraries int
}

func New(provider Provider, ranker *Ranker, location *time.Location, maxItineraries int) *Client {
	if maxItineraries < 1 {
		maxItineraries = config.DefaultMaxItineraries
	}

	return &Client{
		Provider:       provider,
		Ranker:         ranker,
		Location:       location,
		MaxItineraries: maxItineraries,
	}
}

// PlanJourney fetches itineraries for request, keeps the provider's best few and, when the modes are only
// preferred, moves itineraries using more preferred legs to the front
func (c *Client) PlanJourney(ctx context.Context, request ctdf.PlanRequest) ([]ctdf.Itinerary, error) {
	from := FormatCoordinates(request.From.Coordinates)
	to := FormatCoordinates(request.To.Coordinates)

	itineraries, err := c.Provider.PlanJourney(ctx, from, to, BuildParameters(request, c.Location))
	if err != nil {
		return nil, err
	}

	if len(itineraries) == 0 {
		return nil, fmt.Errorf("%w from %s to %s", ctdf.NoJourneysFoundError, request.From.DisplayName, request.To.DisplayName)
	}

	log.Debug().
		Str("provider", c.Provider.GetName()).
		Int("itineraries", len(itineraries)).
		Msg("Journey planner returned itineraries")

	return c.PostProcess(itineraries, request), nil
}

func (c *Client) PostProcess(itineraries []ctdf.Itinerary, request ctdf.PlanRequest) []ctdf.Itinerary {
	if len(itineraries) > c.MaxItineraries {
		itineraries = itineraries[:c.MaxItineraries]
	}

	if request.ModePolicy == ctdf.ModePolicyPrefer && len(request.PreferredModes) > 0 && c.Ranker != nil {
		itineraries = c.Ranker.Rerank(itineraries, request.PreferredModes)
	}

	return itineraries
}
