package ctdf

import "fmt"

type Coordinates struct {
	Latitude  float64 `json:"lat" groups:"basic"`
	Longitude float64 `json:"lon" groups:"basic"`
}

func (c Coordinates) String() string {
	return fmt.Sprintf("%.6f,%.6f", c.Latitude, c.Longitude)
}

func (c Coordinates) Valid() bool {
	return c.Latitude >= -90 && c.Latitude <= 90 && c.Longitude >= -180 && c.Longitude <= 180
}

// LocationQuery is the input to the location resolution cascade
type LocationQuery struct {
	Name string

	UseCurrentLocation bool
	CurrentLocation    *Coordinates
}

type ResolvedEndpoint struct {
	Coordinates     Coordinates `json:"coordinates"`
	DisplayName     string      `json:"displayName"`
	SourceStationID string      `json:"sourceStationId,omitempty"`
}

// StationReference correlates a leg end to the live arrival providers
type StationReference struct {
	StopID            string
	ParentStationID   string
	CanonicalRailCode string
}
