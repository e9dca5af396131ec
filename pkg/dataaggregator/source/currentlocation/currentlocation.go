package currentlocation

import (
	"context"
	"strings"

	"github.com/travigo/journeyresolver/pkg/ctdf"
	"github.com/travigo/journeyresolver/pkg/dataaggregator/source"
)

const DefaultDisplayName = "Current location"

// Source answers queries that refer to the caller's own position
type Source struct{}

func (s Source) GetName() string {
	return "Current Location"
}

func (s Source) Lookup(ctx context.Context, q ctdf.LocationQuery) (*ctdf.ResolvedEndpoint, error) {
	if !q.UseCurrentLocation {
		return nil, source.UnsupportedSourceError
	}

	if q.CurrentLocation == nil || !q.CurrentLocation.Valid() {
		return nil, ctdf.LocationRequiredError
	}

	displayName := strings.TrimSpace(q.Name)
	if displayName == "" {
		displayName = DefaultDisplayName
	}

	return &ctdf.ResolvedEndpoint{
		Coordinates: *q.CurrentLocation,
		DisplayName: displayName,
	}, nil
}
