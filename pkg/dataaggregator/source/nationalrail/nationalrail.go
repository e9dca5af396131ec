package nationalrail

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/travigo/journeyresolver/pkg/ctdf"
	"github.com/travigo/journeyresolver/pkg/dataaggregator/source/cachedresults"
)

const ProviderName = "GB National Rail"

// Source reads live departure boards from an LDBWS SOAP gateway
type Source struct {
	GatewayEndpoint string

	HTTPClient *http.Client
	Location   *time.Location

	Cache           *cachedresults.Cache
	CacheExpiration time.Duration

	Now func() time.Time
}

func New(gatewayEndpoint string, timeout time.Duration, location *time.Location) *Source {
	return &Source{
		GatewayEndpoint: strings.TrimRight(gatewayEndpoint, "/"),
		HTTPClient:      &http.Client{Timeout: timeout},
		Location:        location,
		CacheExpiration: 30 * time.Second,
	}
}

func (s *Source) GetName() string {
	return ProviderName
}

func (s *Source) now() time.Time {
	now := time.Now()
	if s.Now != nil {
		now = s.Now()
	}

	if s.Location != nil {
		now = now.In(s.Location)
	}

	return now
}

func (s *Source) nationalRailGatewayLookup(ctx context.Context, path string) ([]byte, error) {
	url := fmt.Sprintf("%s/%s", s.GatewayEndpoint, path)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, ctdf.NewProviderError(ProviderName, err)
	}
	req.Header["user-agent"] = []string{"curl/7.54.1"}

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
		io.Copy(io.Discard, resp.Body)
		return nil, ctdf.NewProviderError(ProviderName, fmt.Errorf("unexpected status %d", resp.StatusCode))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, ctdf.NewProviderError(ProviderName, err)
	}

	return body, nil
}
