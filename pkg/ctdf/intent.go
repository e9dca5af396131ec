package ctdf

type IntentKind string

const (
	IntentKindJourney           IntentKind = "journey"
	IntentKindStatus            IntentKind = "status"
	IntentKindStationInfo       IntentKind = "station-info"
	IntentKindAccessibilityInfo IntentKind = "accessibility-info"
)

type IntentLocation struct {
	Name               string  `json:"name,omitempty"`
	UseCurrentLocation bool    `json:"useCurrentLocation,omitempty"`
	Confidence         float64 `json:"confidence"`
}

type IntentPreferences struct {
	Modes         []string   `json:"modes,omitempty"`
	Accessibility []string   `json:"accessibility,omitempty"`
	ModePolicy    ModePolicy `json:"modePolicy,omitempty"`

	Time   string `json:"time,omitempty"`
	TimeIs TimeIs `json:"timeIs,omitempty"`

	WalkingSpeed       WalkingSpeed      `json:"walkingSpeed,omitempty"`
	JourneyPreference  JourneyPreference `json:"journeyPreference,omitempty"`
	MaxWalkingMinutes  int               `json:"maxWalkingMinutes,omitempty"`
	MaxTransferMinutes int               `json:"maxTransferMinutes,omitempty"`
}

// TravelIntent is the structured reading of one user query
type TravelIntent struct {
	Kind IntentKind `json:"kind"`

	From *IntentLocation  `json:"from,omitempty"`
	To   *IntentLocation  `json:"to,omitempty"`
	Via  []IntentLocation `json:"via,omitempty"`

	Preferences *IntentPreferences `json:"preferences,omitempty"`

	RawQuery          string   `json:"rawQuery"`
	OverallConfidence float64  `json:"overallConfidence"`
	Ambiguities       []string `json:"ambiguities,omitempty"`
}

// PlannerFeedback describes why the previous attempt failed so the intent can be revised
type PlannerFeedback struct {
	LastError    string   `json:"lastError"`
	Guidance     string   `json:"guidance"`
	AllowedModes []string `json:"allowedModes"`
	DefaultModes []string `json:"defaultModes"`
}
