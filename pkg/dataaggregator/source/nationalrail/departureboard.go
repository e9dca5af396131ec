package nationalrail

import (
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/travigo/journeyresolver/pkg/ctdf"
	"github.com/travigo/journeyresolver/pkg/util"
	"golang.org/x/exp/slices"
	"golang.org/x/net/html/charset"
)

var railCodeRegex = regexp.MustCompile("^[A-Z]{3}$")

// Departures returns up to count upcoming departures from the station with the given CRS code, soonest first
func (s *Source) Departures(ctx context.Context, crs string, count int) ([]ctdf.Arrival, error) {
	crs = strings.ToUpper(strings.TrimSpace(crs))
	if !railCodeRegex.MatchString(crs) {
		return nil, fmt.Errorf("invalid rail code %q", crs)
	}

	var departures []ctdf.Arrival
	if s.Cache.Get(ctx, crs, &departures) {
		log.Debug().Str("crs", crs).Msg("National Rail departure board served from cache")
		return s.refresh(departures, count), nil
	}

	// Make the request to the gateway for the departures
	body, err := s.nationalRailGatewayLookup(ctx, fmt.Sprintf("departures/%s", crs))
	if err != nil {
		return nil, err
	}

	var nationalRailDepartures nationalRailwayDepBoardWithDetailsResponse
	decoder := xml.NewDecoder(bytes.NewReader(body))
	decoder.CharsetReader = charset.NewReaderLabel
	if err := decoder.Decode(&nationalRailDepartures); err != nil {
		return nil, ctdf.NewProviderError(ProviderName, fmt.Errorf("decode: %w", err))
	}

	now := s.now()
	for _, departure := range nationalRailDepartures.DepartureBoardDetails.TrainServices {
		if departure.IsCancelled || strings.EqualFold(departure.Estimated, "Cancelled") {
			continue
		}

		expectedTime, err := departure.expectedTime(now)
		if err != nil {
			log.Debug().Err(err).Str("crs", crs).Str("service", departure.ServiceID).Msg("Skipping departure with unreadable time")
			continue
		}

		departures = append(departures, ctdf.Arrival{
			DestinationName: departure.Destination.Name,
			ExpectedArrival: expectedTime,
			Platform:        departure.Platform,
		})
	}

	s.Cache.Set(ctx, crs, departures, s.CacheExpiration)

	return s.refresh(departures, count), nil
}

// refresh recomputes the countdowns against the current time, drops departed trains and caps the list
func (s *Source) refresh(departures []ctdf.Arrival, count int) []ctdf.Arrival {
	now := s.now()

	var upcoming []ctdf.Arrival
	for _, departure := range departures {
		seconds := int(departure.ExpectedArrival.Sub(now).Seconds())
		if seconds < 0 {
			continue
		}

		departure.SecondsToArrival = seconds
		upcoming = append(upcoming, departure)
	}

	slices.SortStableFunc(upcoming, func(a, b ctdf.Arrival) int {
		return a.SecondsToArrival - b.SecondsToArrival
	})

	if count > 0 && len(upcoming) > count {
		upcoming = upcoming[:count]
	}

	return upcoming
}

type nationalRailwayDepBoardWithDetailsResponse struct {
	XMLName               xml.Name
	DepartureBoardDetails nationalRailwayGetStationBoardResult `xml:"Body>GetDepBoardWithDetailsResponse>GetStationBoardResult"`
}
type nationalRailwayGetStationBoardResult struct {
	GeneratedAt       string `xml:"generatedAt"`
	LocationName      string `xml:"locationName"`
	Crs               string `xml:"crs"`
	PlatformAvailable bool   `xml:"platformAvailable"`

	TrainServices []nationalRailwayService `xml:"trainServices>service"`
}
type nationalRailwayService struct {
	ServiceID string `xml:"serviceID"`

	IsCancelled bool `xml:"isCancelled"`

	Operator     string `xml:"operator"`
	OperatorCode string `xml:"operatorCode"`

	Scheduled string `xml:"std"`
	Estimated string `xml:"etd"`
	Platform  string `xml:"platform"`

	Origin      nationalRailwayLocation `xml:"origin>location"`
	Destination nationalRailwayLocation `xml:"destination>location"`
}

type nationalRailwayLocation struct {
	Name string `xml:"locationName"`
	Crs  string `xml:"crs"`
}

// expectedTime uses the estimate when it is a clock time and falls back to the scheduled time for "On time",
// "Delayed" and friends
func (s nationalRailwayService) expectedTime(now time.Time) (time.Time, error) {
	clock := s.Scheduled
	if _, err := time.Parse("15:04", s.Estimated); err == nil {
		clock = s.Estimated
	}

	return util.TimeOnDate(now, clock, 2*time.Hour)
}
