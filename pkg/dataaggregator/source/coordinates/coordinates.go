package coordinates

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/paulcager/osgridref"
	"github.com/travigo/journeyresolver/pkg/ctdf"
	"github.com/travigo/journeyresolver/pkg/dataaggregator/source"
)

var latLonRegex = regexp.MustCompile(`^\s*(-?\d{1,2}(?:\.\d+)?)\s*,\s*(-?\d{1,3}(?:\.\d+)?)\s*$`)
var eastingNorthingRegex = regexp.MustCompile(`^\s*\d{6}(?:\.\d+)?\s*,\s*\d{6,7}(?:\.\d+)?\s*$`)
var gridLetterRegex = regexp.MustCompile(`(?i)^\s*[A-Z]{2}\s*(\d{4,10}|\d{2,5}\s+\d{2,5})\s*$`)

// Source accepts names that are already a position, either "lat,lon" or an OS grid reference
type Source struct{}

func (s Source) GetName() string {
	return "Coordinates"
}

func (s Source) Lookup(ctx context.Context, q ctdf.LocationQuery) (*ctdf.ResolvedEndpoint, error) {
	name := strings.TrimSpace(q.Name)

	if coordinates, ok := ParseLatLon(name); ok {
		return &ctdf.ResolvedEndpoint{
			Coordinates: coordinates,
			DisplayName: name,
		}, nil
	}

	if eastingNorthingRegex.MatchString(name) || gridLetterRegex.MatchString(name) {
		gridRef, err := osgridref.ParseOsGridRef(name)
		if err != nil {
			return nil, fmt.Errorf("grid reference %q: %w", name, err)
		}

		lat, lon := gridRef.ToLatLon()

		return &ctdf.ResolvedEndpoint{
			Coordinates: ctdf.Coordinates{Latitude: lat, Longitude: lon},
			DisplayName: name,
		}, nil
	}

	return nil, source.UnsupportedSourceError
}

// ParseLatLon reads a "lat,lon" pair, rejecting values outside the valid ranges
func ParseLatLon(value string) (ctdf.Coordinates, bool) {
	matches := latLonRegex.FindStringSubmatch(value)
	if matches == nil {
		return ctdf.Coordinates{}, false
	}

	lat, err := strconv.ParseFloat(matches[1], 64)
	if err != nil {
		return ctdf.Coordinates{}, false
	}
	lon, err := strconv.ParseFloat(matches[2], 64)
	if err != nil {
		return ctdf.Coordinates{}, false
	}

	coordinates := ctdf.Coordinates{Latitude: lat, Longitude: lon}

	return coordinates, coordinates.Valid()
}
