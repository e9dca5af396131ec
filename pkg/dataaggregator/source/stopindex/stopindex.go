package stopindex

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/rs/zerolog/log"
	"github.com/travigo/journeyresolver/pkg/ctdf"
	"github.com/travigo/journeyresolver/pkg/dataaggregator/source"
)

const DefaultIndex = "travigo-stops-*"

var NoIndexedStopError = errors.New("no indexed stop matches")

// Source searches the stop index built by the Travigo indexer
type Source struct {
	Client *elasticsearch.Client
	Index  string
}

func New(client *elasticsearch.Client, index string) Source {
	if index == "" {
		index = DefaultIndex
	}

	return Source{
		Client: client,
		Index:  index,
	}
}

func (s Source) GetName() string {
	return "Travigo Stop Index"
}

type searchResponse struct {
	Hits struct {
		Hits []struct {
			Score  float64 `json:"_score"`
			Source struct {
				PrimaryIdentifier string
				PrimaryName       string
				Location          struct {
					Coordinates []float64 `json:"coordinates"`
				}
			} `json:"_source"`
		} `json:"hits"`
	} `json:"hits"`
}

func (s Source) Lookup(ctx context.Context, q ctdf.LocationQuery) (*ctdf.ResolvedEndpoint, error) {
	name := strings.TrimSpace(q.Name)
	if s.Client == nil || name == "" {
		return nil, source.UnsupportedSourceError
	}

	var queryBytes bytes.Buffer
	query := map[string]interface{}{
		"query": map[string]interface{}{
			"multi_match": map[string]interface{}{
				"query":  name,
				"type":   "bool_prefix",
				"fields": []string{"PrimaryName.search_as_you_type", "PrimaryName.search_as_you_type._2gram", "OtherNames"},
			},
		},
	}
	json.NewEncoder(&queryBytes).Encode(query)

	res, err := s.Client.Search(
		s.Client.Search.WithContext(ctx),
		s.Client.Search.WithIndex(s.Index),
		s.Client.Search.WithBody(&queryBytes),
		s.Client.Search.WithSize(1),
	)
	if err != nil {
		return nil, ctdf.NewProviderError(s.GetName(), err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, ctdf.NewProviderError(s.GetName(), fmt.Errorf("search failed: %s", res.Status()))
	}

	var response searchResponse
	if err := json.NewDecoder(res.Body).Decode(&response); err != nil {
		return nil, ctdf.NewProviderError(s.GetName(), fmt.Errorf("decode: %w", err))
	}

	for _, hit := range response.Hits.Hits {
		// GeoJSON order
		coordinates := hit.Source.Location.Coordinates
		if len(coordinates) != 2 {
			continue
		}

		log.Debug().Str("name", name).Str("stop", hit.Source.PrimaryIdentifier).Float64("score", hit.Score).Msg("Stop index match")

		return &ctdf.ResolvedEndpoint{
			Coordinates: ctdf.Coordinates{
				Latitude:  coordinates[1],
				Longitude: coordinates[0],
			},
			DisplayName:     hit.Source.PrimaryName,
			SourceStationID: strings.TrimPrefix(hit.Source.PrimaryIdentifier, "GB:ATCO:"),
		}, nil
	}

	return nil, fmt.Errorf("%w: %s", NoIndexedStopError, name)
}
