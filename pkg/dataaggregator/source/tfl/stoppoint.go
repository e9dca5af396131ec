package tfl

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/travigo/journeyresolver/pkg/ctdf"
	"github.com/travigo/journeyresolver/pkg/dataaggregator/source"
)

var NoStopPointMatchError = errors.New("no TfL stop point matches")

type stopPointSearchResponse struct {
	Query   string `json:"query"`
	Total   int    `json:"total"`
	Matches []struct {
		ID        string   `json:"id"`
		Name      string   `json:"name"`
		Latitude  float64  `json:"lat"`
		Longitude float64  `json:"lon"`
		Modes     []string `json:"modes"`
	} `json:"matches"`
}

// Lookup resolves a place name through the TfL stop point search, which is scoped to the London network
func (s Source) Lookup(ctx context.Context, q ctdf.LocationQuery) (*ctdf.ResolvedEndpoint, error) {
	name := strings.TrimSpace(q.Name)
	if name == "" {
		return nil, source.UnsupportedSourceError
	}

	var response stopPointSearchResponse
	_, err := s.get(ctx, fmt.Sprintf("/StopPoint/Search/%s", url.PathEscape(name)), url.Values{
		"maxResults": {"5"},
	}, &response)
	if err != nil {
		return nil, err
	}

	if len(response.Matches) == 0 {
		return nil, fmt.Errorf("%w: %s", NoStopPointMatchError, name)
	}

	match := response.Matches[0]

	return &ctdf.ResolvedEndpoint{
		Coordinates: ctdf.Coordinates{
			Latitude:  match.Latitude,
			Longitude: match.Longitude,
		},
		DisplayName:     match.Name,
		SourceStationID: match.ID,
	}, nil
}
