package locations

import (
	"context"
	"errors"
	"testing"

	"github.com/travigo/journeyresolver/pkg/ctdf"
	"github.com/travigo/journeyresolver/pkg/dataaggregator"
)

type recordingStrategy struct {
	name     string
	endpoint *ctdf.ResolvedEndpoint
	err      error

	queries []string
}

func (s *recordingStrategy) GetName() string {
	return s.name
}

func (s *recordingStrategy) Lookup(ctx context.Context, q ctdf.LocationQuery) (*ctdf.ResolvedEndpoint, error) {
	s.queries = append(s.queries, q.Name)
	return s.endpoint, s.err
}

type fakeExpander struct {
	expanded string
	err      error
}

func (e fakeExpander) ExpandPlaceName(ctx context.Context, name string) (string, error) {
	return e.expanded, e.err
}

func TestResolveCoordinatesSkipSearch(t *testing.T) {
	search := &recordingStrategy{name: "search"}
	resolver := New(search)

	endpoint, err := resolver.Resolve(context.Background(), ctdf.LocationQuery{Name: "51.5033,-0.1195"})
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if endpoint.Coordinates.Latitude != 51.5033 || endpoint.Coordinates.Longitude != -0.1195 {
		t.Errorf("coordinates = %v", endpoint.Coordinates)
	}
	if len(search.queries) != 0 {
		t.Errorf("search called with %v", search.queries)
	}
}

func TestResolveCurrentLocation(t *testing.T) {
	resolver := New(&recordingStrategy{name: "search", err: errors.New("unused")})
	position := &ctdf.Coordinates{Latitude: 51.5, Longitude: -0.1}

	tests := []struct {
		name        string
		query       ctdf.LocationQuery
		displayName string
	}{
		{"generic label", ctdf.LocationQuery{UseCurrentLocation: true, CurrentLocation: position}, "Current location"},
		{"intent label", ctdf.LocationQuery{Name: "my office", UseCurrentLocation: true, CurrentLocation: position}, "my office"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			endpoint, err := resolver.Resolve(context.Background(), tc.query)
			if err != nil {
				t.Fatalf("Resolve() error = %v", err)
			}
			if endpoint.DisplayName != tc.displayName || endpoint.Coordinates != *position {
				t.Errorf("endpoint = %+v", endpoint)
			}
		})
	}
}

func TestResolveCurrentLocationRequired(t *testing.T) {
	search := &recordingStrategy{name: "search"}
	resolver := New(search)

	_, err := resolver.Resolve(context.Background(), ctdf.LocationQuery{UseCurrentLocation: true})
	if !errors.Is(err, ctdf.LocationRequiredError) {
		t.Errorf("error = %v, want LocationRequiredError", err)
	}
	if len(search.queries) != 0 {
		t.Errorf("search called with %v", search.queries)
	}
}

func TestResolveFallsThroughToGeocoder(t *testing.T) {
	stations := &recordingStrategy{name: "stations", err: errors.New("connection reset")}
	geocoder := &recordingStrategy{name: "geocoder", endpoint: &ctdf.ResolvedEndpoint{DisplayName: "Tate Modern"}}

	resolver := New(stations, geocoder)

	endpoint, err := resolver.Resolve(context.Background(), ctdf.LocationQuery{Name: "Tate Modern"})
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if endpoint.DisplayName != "Tate Modern" {
		t.Errorf("display name = %q", endpoint.DisplayName)
	}
	if len(stations.queries) != 1 || len(geocoder.queries) != 1 {
		t.Errorf("stations %v geocoder %v", stations.queries, geocoder.queries)
	}
}

func TestResolveExhausted(t *testing.T) {
	resolver := New(
		&recordingStrategy{name: "stations", err: errors.New("empty")},
		&recordingStrategy{name: "geocoder", err: errors.New("empty")},
	)

	_, err := resolver.Resolve(context.Background(), ctdf.LocationQuery{Name: "Atlantis"})
	if !errors.Is(err, ctdf.LocationNotFoundError) {
		t.Errorf("error = %v, want LocationNotFoundError", err)
	}
	if errors.Is(err, dataaggregator.NoMatchingSourceError) {
		t.Errorf("error = %v should not leak the aggregator error", err)
	}
}

func TestResolveExpansion(t *testing.T) {
	tests := []struct {
		name     string
		expander Expander
		expected string
	}{
		{"expanded", fakeExpander{expanded: "King's Cross St. Pancras"}, "King's Cross St. Pancras"},
		{"failure ignored", fakeExpander{err: errors.New("model unavailable")}, "KX"},
		{"empty ignored", fakeExpander{expanded: "  "}, "KX"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			stations := &recordingStrategy{name: "stations", endpoint: &ctdf.ResolvedEndpoint{DisplayName: "found"}}
			resolver := New(stations)
			resolver.Expander = tc.expander

			if _, err := resolver.Resolve(context.Background(), ctdf.LocationQuery{Name: "KX"}); err != nil {
				t.Fatalf("Resolve() error = %v", err)
			}
			if len(stations.queries) != 1 || stations.queries[0] != tc.expected {
				t.Errorf("searched for %v, want %q", stations.queries, tc.expected)
			}
		})
	}
}
