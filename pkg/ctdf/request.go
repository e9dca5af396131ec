package ctdf

import "strings"

type RequestPreferences struct {
	Modes              []string          `json:"modes,omitempty"`
	Accessibility      []string          `json:"accessibility,omitempty"`
	WalkingSpeed       WalkingSpeed      `json:"walkingSpeed,omitempty"`
	JourneyPreference  JourneyPreference `json:"journeyPreference,omitempty"`
	MaxWalkingMinutes  int               `json:"maxWalkingMinutes,omitempty"`
	MaxTransferMinutes int               `json:"maxTransferMinutes,omitempty"`
}

// ResolveRequest is the payload handed to the resolver by a caller, either a natural language query or a manual from/to
type ResolveRequest struct {
	NaturalLanguageQuery string `json:"naturalLanguageQuery,omitempty"`

	From string   `json:"from,omitempty"`
	To   string   `json:"to,omitempty"`
	Via  []string `json:"via,omitempty"`

	DepartureTime string `json:"departureTime,omitempty"`
	ArrivalTime   string `json:"arrivalTime,omitempty"`

	Preferences *RequestPreferences `json:"preferences,omitempty"`

	CurrentLocation *Coordinates `json:"currentLocation,omitempty"`
}

func (r ResolveRequest) IsNaturalLanguage() bool {
	return strings.TrimSpace(r.NaturalLanguageQuery) != ""
}

func (r ResolveRequest) IsManual() bool {
	return !r.IsNaturalLanguage() && strings.TrimSpace(r.To) != ""
}

type ResultStatus string

const (
	ResultStatusSuccess ResultStatus = "success"
	ResultStatusError   ResultStatus = "error"
)

type ResultData struct {
	Journeys []EnrichedItinerary `json:"journeys,omitempty" groups:"basic"`
	FromName string              `json:"fromName,omitempty" groups:"basic"`
	ToName   string              `json:"toName,omitempty" groups:"basic"`

	Ambiguities []string `json:"ambiguities,omitempty" groups:"basic"`
	Suggestions []string `json:"suggestions,omitempty" groups:"basic"`
}

type Result struct {
	Status ResultStatus `json:"status" groups:"basic"`
	Data   *ResultData  `json:"data,omitempty" groups:"basic"`
	Error  string       `json:"error,omitempty" groups:"basic"`
}

func SuccessResult(data *ResultData) Result {
	return Result{Status: ResultStatusSuccess, Data: data}
}

func ErrorResult(err error) Result {
	return Result{Status: ResultStatusError, Error: UserMessage(err)}
}
