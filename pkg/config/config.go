package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/travigo/journeyresolver/pkg/util"
	"gopkg.in/yaml.v3"
)

const (
	DefaultMinConfidence     = 0.3
	DefaultMaxAttempts       = 5
	DefaultMaxItineraries    = 3
	DefaultMaxArrivals       = 3
	DefaultRankingExpression = "2 * preferredLegs"
	DefaultTimezone          = "Europe/London"

	// min lon, min lat, max lon, max lat around Greater London
	DefaultRegionViewbox = "-0.5103,51.2868,0.3340,51.6919"
)

type TfLConfig struct {
	AppKey   string
	Endpoint string
}

type NationalRailConfig struct {
	GatewayEndpoint string
}

type NominatimConfig struct {
	Endpoint  string
	UserAgent string
}

type LLMConfig struct {
	Endpoint string
	APIKey   string
	Model    string
}

// Config holds the resolver tunables plus the provider endpoints. Tunables can be overridden by a YAML file
// named in TRAVIGO_RESOLVER_CONFIG, provider settings only come from the environment.
type Config struct {
	MinConfidence     float64  `yaml:"minConfidence"`
	MaxAttempts       int      `yaml:"maxAttempts"`
	MaxItineraries    int      `yaml:"maxItineraries"`
	MaxArrivals       int      `yaml:"maxArrivals"`
	DefaultModes      []string `yaml:"defaultModes"`
	RankingExpression string   `yaml:"rankingExpression"`
	Timezone          string   `yaml:"timezone"`
	RegionViewbox     string   `yaml:"regionViewbox"`
	ProviderTimeout   int      `yaml:"providerTimeoutSeconds"`

	TfL          TfLConfig          `yaml:"-"`
	NationalRail NationalRailConfig `yaml:"-"`
	Nominatim    NominatimConfig    `yaml:"-"`
	LLM          LLMConfig          `yaml:"-"`

	StopIndex string `yaml:"-"`
}

func Default() Config {
	return Config{
		MinConfidence:     DefaultMinConfidence,
		MaxAttempts:       DefaultMaxAttempts,
		MaxItineraries:    DefaultMaxItineraries,
		MaxArrivals:       DefaultMaxArrivals,
		RankingExpression: DefaultRankingExpression,
		Timezone:          DefaultTimezone,
		RegionViewbox:     DefaultRegionViewbox,
		ProviderTimeout:   10,

		TfL: TfLConfig{
			Endpoint: "https://api.tfl.gov.uk",
		},
		Nominatim: NominatimConfig{
			Endpoint:  "https://nominatim.openstreetmap.org",
			UserAgent: "travigo-journeyresolver/1.0",
		},
		LLM: LLMConfig{
			Endpoint: "https://api.openai.com/v1",
			Model:    "gpt-4o-mini",
		},
	}
}

// Load builds the configuration from defaults, then environment variables, then the optional YAML overlay
func Load() (Config, error) {
	config := Default()
	env := util.GetEnvironmentVariables()

	config.MinConfidence = util.GetEnvironmentFloat(env, "TRAVIGO_RESOLVER_MIN_CONFIDENCE", config.MinConfidence)
	config.MaxAttempts = util.GetEnvironmentInt(env, "TRAVIGO_RESOLVER_MAX_ATTEMPTS", config.MaxAttempts)
	config.Timezone = util.GetEnvironmentString(env, "TRAVIGO_RESOLVER_TIMEZONE", config.Timezone)

	config.TfL.AppKey = env["TRAVIGO_TFL_API_KEY"]
	config.TfL.Endpoint = util.GetEnvironmentString(env, "TRAVIGO_TFL_ENDPOINT", config.TfL.Endpoint)
	config.NationalRail.GatewayEndpoint = env["TRAVIGO_LDBWS_GATEWAY_ENDPOINT"]
	config.Nominatim.Endpoint = util.GetEnvironmentString(env, "TRAVIGO_NOMINATIM_ENDPOINT", config.Nominatim.Endpoint)
	config.Nominatim.UserAgent = util.GetEnvironmentString(env, "TRAVIGO_NOMINATIM_USER_AGENT", config.Nominatim.UserAgent)
	config.LLM.Endpoint = util.GetEnvironmentString(env, "TRAVIGO_LLM_ENDPOINT", config.LLM.Endpoint)
	config.LLM.APIKey = env["TRAVIGO_LLM_API_KEY"]
	config.LLM.Model = util.GetEnvironmentString(env, "TRAVIGO_LLM_MODEL", config.LLM.Model)
	config.StopIndex = env["TRAVIGO_ELASTICSEARCH_STOPS_INDEX"]

	if path := env["TRAVIGO_RESOLVER_CONFIG"]; path != "" {
		log.Debug().Str("path", path).Msg("Loading resolver config file")

		contents, err := os.ReadFile(path)
		if err != nil {
			return config, err
		}

		if err := Overlay(&config, contents); err != nil {
			return config, fmt.Errorf("config file %s: %w", path, err)
		}
	}

	return config, config.Validate()
}

// Overlay applies a YAML document on top of config, keeping any value the document does not mention
func Overlay(config *Config, contents []byte) error {
	decoder := yaml.NewDecoder(bytes.NewReader(contents))
	decoder.KnownFields(true)

	if err := decoder.Decode(config); err != nil && !errors.Is(err, io.EOF) {
		return err
	}

	return nil
}

func (c Config) Validate() error {
	if c.MinConfidence < 0 || c.MinConfidence > 1 {
		return fmt.Errorf("minConfidence must be between 0 and 1, got %v", c.MinConfidence)
	}
	if c.MaxAttempts < 1 {
		return fmt.Errorf("maxAttempts must be at least 1, got %d", c.MaxAttempts)
	}
	if c.MaxItineraries < 1 {
		return fmt.Errorf("maxItineraries must be at least 1, got %d", c.MaxItineraries)
	}
	if c.MaxArrivals < 1 {
		return fmt.Errorf("maxArrivals must be at least 1, got %d", c.MaxArrivals)
	}
	if _, err := time.LoadLocation(c.Timezone); err != nil {
		return fmt.Errorf("timezone: %w", err)
	}

	return nil
}

func (c Config) Location() *time.Location {
	location, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}

	return location
}

func (c Config) ProviderTimeoutDuration() time.Duration {
	if c.ProviderTimeout <= 0 {
		return 10 * time.Second
	}

	return time.Duration(c.ProviderTimeout) * time.Second
}
