package ctdf

type TransportMode string

//goland:noinspection GoUnusedConst
const (
	TransportModeTube         TransportMode = "tube"
	TransportModeBus          TransportMode = "bus"
	TransportModeDLR          TransportMode = "dlr"
	TransportModeOverground   TransportMode = "overground"
	TransportModeTram         TransportMode = "tram"
	TransportModeRiverBus     TransportMode = "river-bus"
	TransportModeCableCar     TransportMode = "cable-car"
	TransportModeCoach        TransportMode = "coach"
	TransportModeCycle        TransportMode = "cycle"
	TransportModeWalking      TransportMode = "walking"
	TransportModeNationalRail TransportMode = "national-rail"
)

// TransportModes is the closed vocabulary of modes the planner understands, in canonical order
var TransportModes = []TransportMode{
	TransportModeTube,
	TransportModeBus,
	TransportModeDLR,
	TransportModeOverground,
	TransportModeTram,
	TransportModeRiverBus,
	TransportModeCableCar,
	TransportModeCoach,
	TransportModeCycle,
	TransportModeWalking,
	TransportModeNationalRail,
}

func (m TransportMode) Valid() bool {
	for _, mode := range TransportModes {
		if mode == m {
			return true
		}
	}

	return false
}

// ModeSet is an ordered, duplicate free list of canonical transport modes
type ModeSet []TransportMode

func (s ModeSet) Contains(mode TransportMode) bool {
	for _, m := range s {
		if m == mode {
			return true
		}
	}

	return false
}

func (s ModeSet) Strings() []string {
	values := make([]string, 0, len(s))
	for _, m := range s {
		values = append(values, string(m))
	}

	return values
}

// Union returns the modes of s followed by any modes of other not already present
func (s ModeSet) Union(other ModeSet) ModeSet {
	union := make(ModeSet, 0, len(s)+len(other))

	for _, m := range append(append(ModeSet{}, s...), other...) {
		if !union.Contains(m) {
			union = append(union, m)
		}
	}

	return union
}
