package ctdf

import "time"

// Arrival is a single upcoming live departure attached to a leg
type Arrival struct {
	DestinationName  string    `json:"destinationName" groups:"basic"`
	ExpectedArrival  time.Time `json:"expectedArrival" groups:"basic"`
	SecondsToArrival int       `json:"secondsToArrival" groups:"basic"`
	Platform         string    `json:"platform,omitempty" groups:"basic"`
}

// ArrivalPrediction is an Arrival as returned by a provider, still carrying the identifiers used to match it to a leg
type ArrivalPrediction struct {
	Arrival

	StopID string
	LineID string
}

type EnrichedLeg struct {
	Mode TransportMode `json:"mode" groups:"basic"`

	DeparturePoint StopPoint `json:"departurePoint" groups:"basic"`
	ArrivalPoint   StopPoint `json:"arrivalPoint" groups:"basic"`

	ScheduledDeparture time.Time `json:"scheduledDeparture" groups:"basic"`
	ScheduledArrival   time.Time `json:"scheduledArrival" groups:"basic"`

	DistanceMeters *float64 `json:"distanceMeters,omitempty" groups:"detailed"`
	LineID         string   `json:"lineId,omitempty" groups:"basic"`
	LineColour     string   `json:"lineColour,omitempty" groups:"basic"`

	Summary string `json:"summary,omitempty" groups:"detailed"`

	NextArrivals []Arrival `json:"nextArrivals,omitempty" groups:"basic"`
	Platform     string    `json:"platform,omitempty" groups:"basic"`

	WalkingDirectionsURL string `json:"walkingDirectionsUrl,omitempty" groups:"detailed"`
	WalkingSummary       string `json:"walkingSummary,omitempty" groups:"basic"`
}

type EnrichedItinerary struct {
	Legs []EnrichedLeg `json:"legs" groups:"basic"`

	Description string `json:"description,omitempty" groups:"basic"`

	StartDateTime   time.Time     `json:"startDateTime" groups:"basic"`
	ArrivalDateTime time.Time     `json:"arrivalDateTime" groups:"basic"`
	Duration        time.Duration `json:"duration" groups:"detailed"`
}
