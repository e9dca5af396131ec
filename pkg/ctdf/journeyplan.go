package ctdf

import "time"

type WalkingSpeed string

const (
	WalkingSpeedSlow    WalkingSpeed = "slow"
	WalkingSpeedAverage WalkingSpeed = "average"
	WalkingSpeedFast    WalkingSpeed = "fast"
)

type JourneyPreference string

const (
	JourneyPreferenceLeastTime        JourneyPreference = "leasttime"
	JourneyPreferenceLeastInterchange JourneyPreference = "leastinterchange"
	JourneyPreferenceLeastWalking     JourneyPreference = "leastwalking"
)

type TimeIs string

const (
	TimeIsDepartBy TimeIs = "depart-by"
	TimeIsArriveBy TimeIs = "arrive-by"
)

type ModePolicy string

const (
	ModePolicyOnly   ModePolicy = "only"
	ModePolicyPrefer ModePolicy = "prefer"
)

// PlanRequest is the fully normalised parameter bundle handed to the journey planner
type PlanRequest struct {
	From ResolvedEndpoint
	To   ResolvedEndpoint
	Via  *ResolvedEndpoint

	Modes          ModeSet
	PreferredModes ModeSet
	ModePolicy     ModePolicy

	Accessibility AccessibilityConstraint

	WalkingSpeed      WalkingSpeed
	JourneyPreference JourneyPreference

	MaxWalkingMinutes  int
	MaxTransferMinutes int

	DateTime *time.Time
	TimeIs   TimeIs
}

// StopPoint is one end of a Leg as described by the journey planning provider
type StopPoint struct {
	NaptanID   string  `json:"naptanId,omitempty" groups:"detailed"`
	ParentID   string  `json:"parentId,omitempty" groups:"detailed"`
	CommonName string  `json:"commonName" groups:"basic"`
	Latitude   float64 `json:"lat" groups:"basic"`
	Longitude  float64 `json:"lon" groups:"basic"`

	RailCode   string            `json:"railCode,omitempty" groups:"detailed"`
	Properties map[string]string `json:"-"`
}

func (s StopPoint) Coordinates() Coordinates {
	return Coordinates{Latitude: s.Latitude, Longitude: s.Longitude}
}

type Leg struct {
	Mode TransportMode

	DeparturePoint StopPoint
	ArrivalPoint   StopPoint

	ScheduledDeparture time.Time
	ScheduledArrival   time.Time

	DistanceMeters *float64
	LineID         string

	Summary string
}

type Itinerary struct {
	Legs []Leg

	StartDateTime   time.Time
	ArrivalDateTime time.Time
	Duration        time.Duration
}
