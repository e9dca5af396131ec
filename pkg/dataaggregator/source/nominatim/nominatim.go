package nominatim

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/travigo/journeyresolver/pkg/ctdf"
	"github.com/travigo/journeyresolver/pkg/dataaggregator/source"
)

const ProviderName = "Nominatim"

var NoGeocodeResultError = errors.New("geocoder returned no results")

// Source geocodes free-form place names, bounded to a region viewbox
type Source struct {
	Endpoint  string
	UserAgent string
	Viewbox   string

	HTTPClient *http.Client
}

func New(endpoint string, userAgent string, viewbox string, timeout time.Duration) Source {
	return Source{
		Endpoint:   strings.TrimRight(endpoint, "/"),
		UserAgent:  userAgent,
		Viewbox:    viewbox,
		HTTPClient: &http.Client{Timeout: timeout},
	}
}

func (s Source) GetName() string {
	return ProviderName
}

func (s Source) Lookup(ctx context.Context, q ctdf.LocationQuery) (*ctdf.ResolvedEndpoint, error) {
	name := strings.TrimSpace(q.Name)
	if name == "" {
		return nil, source.UnsupportedSourceError
	}

	parameters := url.Values{
		"q":              {name},
		"format":         {"jsonv2"},
		"limit":          {"1"},
		"countrycodes":   {"gb"},
		"addressdetails": {"0"},
	}
	if s.Viewbox != "" {
		parameters.Set("viewbox", s.Viewbox)
		parameters.Set("bounded", "1")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.Endpoint+"/search?"+parameters.Encode(), nil)
	if err != nil {
		return nil, ctdf.NewProviderError(ProviderName, err)
	}
	req.Header.Set("User-Agent", s.UserAgent)

	client := s.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, ctdf.NewProviderError(ProviderName, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, ctdf.NewProviderError(ProviderName, fmt.Errorf("status %d", resp.StatusCode))
	}

	var results []struct {
		Lat         string `json:"lat"`
		Lon         string `json:"lon"`
		Name        string `json:"name"`
		DisplayName string `json:"display_name"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return nil, ctdf.NewProviderError(ProviderName, fmt.Errorf("decode: %w", err))
	}
	if len(results) == 0 {
		return nil, fmt.Errorf("%w: %s", NoGeocodeResultError, name)
	}

	lat, err := strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return nil, ctdf.NewProviderError(ProviderName, fmt.Errorf("parse lat: %w", err))
	}
	lon, err := strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return nil, ctdf.NewProviderError(ProviderName, fmt.Errorf("parse lon: %w", err))
	}

	displayName := results[0].Name
	if displayName == "" {
		displayName = results[0].DisplayName
		if i := strings.Index(displayName, ","); i > 0 {
			displayName = displayName[:i]
		}
	}

	return &ctdf.ResolvedEndpoint{
		Coordinates: ctdf.Coordinates{Latitude: lat, Longitude: lon},
		DisplayName: displayName,
	}, nil
}
