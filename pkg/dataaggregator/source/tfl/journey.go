package tfl

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/travigo/journeyresolver/pkg/ctdf"
)

const tflDateTimeFormat = "2006-01-02T15:04:05"

type journeyResultsResponse struct {
	Journeys []tflJourney `json:"journeys"`
}

type tflJourney struct {
	StartDateTime   string   `json:"startDateTime"`
	ArrivalDateTime string   `json:"arrivalDateTime"`
	Duration        int      `json:"duration"`
	Legs            []tflLeg `json:"legs"`
}

type tflLeg struct {
	Duration    int `json:"duration"`
	Instruction struct {
		Summary string `json:"summary"`
	} `json:"instruction"`

	DepartureTime string `json:"departureTime"`
	ArrivalTime   string `json:"arrivalTime"`

	DeparturePoint tflStopPoint `json:"departurePoint"`
	ArrivalPoint   tflStopPoint `json:"arrivalPoint"`

	Mode struct {
		ID string `json:"id"`
	} `json:"mode"`

	Distance *float64 `json:"distance"`

	RouteOptions []struct {
		Name           string `json:"name"`
		LineIdentifier *struct {
			ID string `json:"id"`
		} `json:"lineIdentifier"`
	} `json:"routeOptions"`
}

type tflStopPoint struct {
	NaptanID      string  `json:"naptanId"`
	StationNaptan string  `json:"stationNaptan"`
	HubNaptanCode string  `json:"hubNaptanCode"`
	CommonName    string  `json:"commonName"`
	Latitude      float64 `json:"lat"`
	Longitude     float64 `json:"lon"`
	CrsCode       string  `json:"crsCode"`

	AdditionalProperties []struct {
		Category string `json:"category"`
		Key      string `json:"key"`
		Value    string `json:"value"`
	} `json:"additionalProperties"`
}

func (p tflStopPoint) toCTDF() ctdf.StopPoint {
	stopPoint := ctdf.StopPoint{
		NaptanID:   p.NaptanID,
		ParentID:   p.StationNaptan,
		CommonName: p.CommonName,
		Latitude:   p.Latitude,
		Longitude:  p.Longitude,
		RailCode:   p.CrsCode,
	}

	if stopPoint.ParentID == "" {
		stopPoint.ParentID = p.HubNaptanCode
	}

	if len(p.AdditionalProperties) > 0 {
		stopPoint.Properties = map[string]string{}
		for _, property := range p.AdditionalProperties {
			stopPoint.Properties[property.Key] = property.Value
		}
	}

	return stopPoint
}

// PlanJourney queries the TfL journey planner. from/to are already formatted locations (eg. "51.5,-0.1") and
// parameters are the fully built query string. A disambiguation answer (300) is reported as no journeys.
func (s Source) PlanJourney(ctx context.Context, from string, to string, parameters url.Values) ([]ctdf.Itinerary, error) {
	var response journeyResultsResponse

	path := fmt.Sprintf("/Journey/JourneyResults/%s/to/%s", url.PathEscape(from), url.PathEscape(to))
	status, err := s.get(ctx, path, parameters, &response)
	if err != nil {
		return nil, err
	}

	if status == http.StatusMultipleChoices {
		log.Debug().Str("from", from).Str("to", to).Msg("TfL journey planner asked for disambiguation")
		return nil, nil
	}

	var itineraries []ctdf.Itinerary
	for _, journey := range response.Journeys {
		itinerary, err := s.convertJourney(journey)
		if err != nil {
			log.Warn().Err(err).Msg("Skipping TfL journey with unreadable times")
			continue
		}

		itineraries = append(itineraries, itinerary)
	}

	return itineraries, nil
}

func (s Source) parseTime(value string) (time.Time, error) {
	return time.ParseInLocation(tflDateTimeFormat, value, s.location())
}

func (s Source) convertJourney(journey tflJourney) (ctdf.Itinerary, error) {
	startTime, err := s.parseTime(journey.StartDateTime)
	if err != nil {
		return ctdf.Itinerary{}, err
	}
	arrivalTime, err := s.parseTime(journey.ArrivalDateTime)
	if err != nil {
		return ctdf.Itinerary{}, err
	}

	itinerary := ctdf.Itinerary{
		StartDateTime:   startTime,
		ArrivalDateTime: arrivalTime,
		Duration:        time.Duration(journey.Duration) * time.Minute,
	}

	for _, tflLeg := range journey.Legs {
		departureTime, err := s.parseTime(tflLeg.DepartureTime)
		if err != nil {
			return ctdf.Itinerary{}, err
		}
		legArrivalTime, err := s.parseTime(tflLeg.ArrivalTime)
		if err != nil {
			return ctdf.Itinerary{}, err
		}

		leg := ctdf.Leg{
			Mode:               ctdf.TransportMode(strings.ToLower(tflLeg.Mode.ID)),
			DeparturePoint:     tflLeg.DeparturePoint.toCTDF(),
			ArrivalPoint:       tflLeg.ArrivalPoint.toCTDF(),
			ScheduledDeparture: departureTime,
			ScheduledArrival:   legArrivalTime,
			DistanceMeters:     tflLeg.Distance,
			Summary:            tflLeg.Instruction.Summary,
		}

		for _, routeOption := range tflLeg.RouteOptions {
			if routeOption.LineIdentifier != nil && routeOption.LineIdentifier.ID != "" {
				leg.LineID = routeOption.LineIdentifier.ID
				break
			}
		}

		itinerary.Legs = append(itinerary.Legs, leg)
	}

	return itinerary, nil
}
