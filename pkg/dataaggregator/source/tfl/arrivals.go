package tfl

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/travigo/journeyresolver/pkg/ctdf"
)

var destinationNameRegex = regexp.MustCompile("(.+) (Underground|DLR|Rail) Station$")

type tflArrivalPrediction struct {
	ID        string `json:"id"`
	VehicleID string `json:"vehicleId"`

	NaptanID    string `json:"naptanId"`
	StationName string `json:"stationName"`

	LineID   string `json:"lineId"`
	LineName string `json:"lineName"`

	PlatformName string `json:"platformName"`
	Direction    string `json:"direction"`

	DestinationNaptanID string `json:"destinationNaptanId"`
	DestinationName     string `json:"destinationName"`
	Towards             string `json:"towards"`

	TimeToStation   int    `json:"timeToStation"`
	ExpectedArrival string `json:"expectedArrival"`

	ModeName string `json:"modeName"`
}

func (prediction *tflArrivalPrediction) GetDestinationDisplay() string {
	destinationName := prediction.DestinationName
	if destinationName == "" && prediction.Towards != "" && prediction.Towards != "Check Front of Train" {
		destinationName = prediction.Towards
	} else if destinationName == "" {
		destinationName = prediction.LineName
	}

	nameMatches := destinationNameRegex.FindStringSubmatch(destinationName)

	if len(nameMatches) == 3 {
		destinationName = nameMatches[1]
	}

	return destinationName
}

func (prediction *tflArrivalPrediction) toCTDF(location *time.Location) ctdf.ArrivalPrediction {
	expectedArrival, err := time.Parse(time.RFC3339, prediction.ExpectedArrival)
	if err == nil {
		expectedArrival = expectedArrival.In(location)
	}

	return ctdf.ArrivalPrediction{
		Arrival: ctdf.Arrival{
			DestinationName:  prediction.GetDestinationDisplay(),
			ExpectedArrival:  expectedArrival,
			SecondsToArrival: prediction.TimeToStation,
			Platform:         prediction.PlatformName,
		},
		StopID: prediction.NaptanID,
		LineID: prediction.LineID,
	}
}

func (s Source) convertPredictions(predictions []tflArrivalPrediction) []ctdf.ArrivalPrediction {
	converted := make([]ctdf.ArrivalPrediction, 0, len(predictions))

	for i := range predictions {
		converted = append(converted, predictions[i].toCTDF(s.location()))
	}

	return converted
}

// StopArrivals fetches the live predictions for every given stop in one request
func (s Source) StopArrivals(ctx context.Context, stopIDs []string) ([]ctdf.ArrivalPrediction, error) {
	if len(stopIDs) == 0 {
		return nil, nil
	}

	escaped := make([]string, 0, len(stopIDs))
	for _, stopID := range stopIDs {
		escaped = append(escaped, url.PathEscape(stopID))
	}

	var predictions []tflArrivalPrediction
	if _, err := s.get(ctx, fmt.Sprintf("/StopPoint/%s/Arrivals", strings.Join(escaped, ",")), nil, &predictions); err != nil {
		return nil, err
	}

	return s.convertPredictions(predictions), nil
}

// LineArrivals fetches the live predictions for a single line at a single stop
func (s Source) LineArrivals(ctx context.Context, lineID string, stopID string) ([]ctdf.ArrivalPrediction, error) {
	var predictions []tflArrivalPrediction

	path := fmt.Sprintf("/Line/%s/Arrivals/%s", url.PathEscape(lineID), url.PathEscape(stopID))
	if _, err := s.get(ctx, path, nil, &predictions); err != nil {
		return nil, err
	}

	return s.convertPredictions(predictions), nil
}
