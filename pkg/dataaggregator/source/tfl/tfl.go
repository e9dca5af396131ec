package tfl

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/travigo/journeyresolver/pkg/ctdf"
)

const ProviderName = "Transport for London API"

// Source talks to the TfL unified API for stop search, journey planning and live arrivals
type Source struct {
	AppKey   string
	Endpoint string

	HTTPClient *http.Client
	Location   *time.Location
}

func New(appKey string, endpoint string, timeout time.Duration, location *time.Location) Source {
	return Source{
		AppKey:     appKey,
		Endpoint:   strings.TrimRight(endpoint, "/"),
		HTTPClient: &http.Client{Timeout: timeout},
		Location:   location,
	}
}

func (s Source) GetName() string {
	return ProviderName
}

func (s Source) location() *time.Location {
	if s.Location == nil {
		return time.UTC
	}

	return s.Location
}

// get performs the request and decodes the JSON body into v. It returns the status code so callers can handle
// the non error statuses TfL uses (eg. 300 for journey disambiguation).
func (s Source) get(ctx context.Context, path string, query url.Values, v any) (int, error) {
	if query == nil {
		query = url.Values{}
	}
	if s.AppKey != "" {
		query.Set("app_key", s.AppKey)
	}

	requestURL := fmt.Sprintf("%s%s", s.Endpoint, path)
	if encoded := query.Encode(); encoded != "" {
		requestURL = fmt.Sprintf("%s?%s", requestURL, encoded)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return 0, ctdf.NewProviderError(ProviderName, err)
	}
	req.Header["user-agent"] = []string{"curl/7.54.1"} // TfL is protected by cloudflare and it gets angry when no user agent is set

	client := s.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}

	startTime := time.Now()
	resp, err := client.Do(req)
	if err != nil {
		return 0, ctdf.NewProviderError(ProviderName, err)
	}
	defer resp.Body.Close()

	log.Debug().
		Str("path", path).
		Int("status", resp.StatusCode).
		Str("length", time.Since(startTime).String()).
		Msg("TfL API request")

	if resp.StatusCode >= http.StatusBadRequest {
		io.Copy(io.Discard, resp.Body)
		return resp.StatusCode, ctdf.NewProviderError(ProviderName, fmt.Errorf("unexpected status %d", resp.StatusCode))
	}
	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return resp.StatusCode, nil
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return resp.StatusCode, ctdf.NewProviderError(ProviderName, fmt.Errorf("decode: %w", err))
	}

	return resp.StatusCode, nil
}
