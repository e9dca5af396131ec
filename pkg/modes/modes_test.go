package modes

import (
	"reflect"
	"testing"

	"github.com/travigo/journeyresolver/pkg/ctdf"
)

func TestNormalizeModes(t *testing.T) {
	tests := []struct {
		name     string
		raw      []string
		expected ctdf.ModeSet
	}{
		{"canonical", []string{"tube", "bus"}, ctdf.ModeSet{ctdf.TransportModeTube, ctdf.TransportModeBus}},
		{"synonyms", []string{"Underground", " subway ", "METRO"}, ctdf.ModeSet{ctdf.TransportModeTube}},
		{"river bus", []string{"river bus", "Thames Clippers"}, ctdf.ModeSet{ctdf.TransportModeRiverBus}},
		{"rail", []string{"national rail", "train"}, ctdf.ModeSet{ctdf.TransportModeNationalRail}},
		{"on foot", []string{"on foot"}, ctdf.ModeSet{ctdf.TransportModeWalking}},
		{"unknown dropped", []string{"hovercraft", "bus", "teleport"}, ctdf.ModeSet{ctdf.TransportModeBus}},
		{"keeps first seen order", []string{"dlr", "tube", "dlr"}, ctdf.ModeSet{ctdf.TransportModeDLR, ctdf.TransportModeTube}},
		{"empty", nil, ctdf.ModeSet{}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := NormalizeModes(tc.raw)
			if !reflect.DeepEqual(result, tc.expected) {
				t.Errorf("NormalizeModes(%q) = %v, expected %v", tc.raw, result, tc.expected)
			}
		})
	}
}

func TestNormalizeModesIdempotent(t *testing.T) {
	inputs := [][]string{
		{"tube", "Underground", "bus", "buses", "walk", "cable car"},
		{"national rail", "trains", "river bus", "ferry", "cycling", "coach"},
		{"nonsense", "", "  "},
		{"dlr", "tram", "overground", "national-rail", "walking", "cycle", "river-bus", "cable-car"},
	}

	for _, input := range inputs {
		once := NormalizeModes(input)
		twice := NormalizeModes(once.Strings())

		if !reflect.DeepEqual(once, twice) {
			t.Errorf("NormalizeModes not idempotent for %q: %v then %v", input, once, twice)
		}

		seen := map[ctdf.TransportMode]bool{}
		for _, mode := range once {
			if !mode.Valid() {
				t.Errorf("NormalizeModes(%q) produced non canonical mode %q", input, mode)
			}
			if seen[mode] {
				t.Errorf("NormalizeModes(%q) produced duplicate mode %q", input, mode)
			}
			seen[mode] = true
		}
	}
}

func TestExtractModesFromFreeText(t *testing.T) {
	tests := []struct {
		text     string
		expected ctdf.ModeSet
	}{
		{"Tube only from Canary Wharf to Oxford Circus", ctdf.ModeSet{ctdf.TransportModeTube}},
		{"Take the river bus to Greenwich", ctdf.ModeSet{ctdf.TransportModeRiverBus}},
		{"by BUS or by train please", ctdf.ModeSet{ctdf.TransportModeBus, ctdf.TransportModeNationalRail}},
		{"use the Underground then walk", ctdf.ModeSet{ctdf.TransportModeTube, ctdf.TransportModeWalking}},
		{"I am training at the gym in Busby", ctdf.ModeSet{}},
		{"From Victoria to Bank", ctdf.ModeSet{}},
	}

	for _, tc := range tests {
		t.Run(tc.text, func(t *testing.T) {
			result := ExtractModesFromFreeText(tc.text)
			if !reflect.DeepEqual(result, tc.expected) {
				t.Errorf("ExtractModesFromFreeText(%q) = %v, expected %v", tc.text, result, tc.expected)
			}
		})
	}
}

func TestHasExclusivityMarker(t *testing.T) {
	tests := []struct {
		text     string
		expected bool
	}{
		{"Tube only from Victoria to Bank", true},
		{"Prefer bus from Victoria to Bank", false},
		{"just the DLR to Lewisham", true},
		{"Strictly trains to Brighton", true},
		{"nothing but buses", true},
		{"Bus to Camden, no other modes", true},
		{"Bus to Justice Walk", false},
		{"Take the overground to Stratford", false},
	}

	for _, tc := range tests {
		t.Run(tc.text, func(t *testing.T) {
			if result := HasExclusivityMarker(tc.text); result != tc.expected {
				t.Errorf("HasExclusivityMarker(%q) = %v, expected %v", tc.text, result, tc.expected)
			}
		})
	}
}

func TestMergeModes(t *testing.T) {
	only := MergeModes(ctdf.ModeSet{ctdf.TransportModeTube}, true, DefaultModes)
	if !reflect.DeepEqual(only, ctdf.ModeSet{ctdf.TransportModeTube}) {
		t.Errorf("MergeModes(only tube) = %v, expected [tube]", only)
	}

	prefer := MergeModes(ctdf.ModeSet{ctdf.TransportModeBus}, false, DefaultModes)
	if !reflect.DeepEqual(prefer, DefaultModes) {
		t.Errorf("MergeModes(prefer bus) = %v, expected defaults %v", prefer, DefaultModes)
	}

	preferTram := MergeModes(ctdf.ModeSet{ctdf.TransportModeTram}, false, DefaultModes)
	expected := append(append(ctdf.ModeSet{}, DefaultModes...), ctdf.TransportModeTram)
	if !reflect.DeepEqual(preferTram, expected) {
		t.Errorf("MergeModes(prefer tram) = %v, expected %v", preferTram, expected)
	}

	none := MergeModes(nil, true, DefaultModes)
	if !reflect.DeepEqual(none, DefaultModes) {
		t.Errorf("MergeModes(nothing requested) = %v, expected defaults", none)
	}

	none[0] = ctdf.TransportModeCoach
	if DefaultModes[0] != ctdf.TransportModeTube {
		t.Error("MergeModes must not alias the default mode set")
	}
}

func TestNormalizeAccessibility(t *testing.T) {
	tests := []struct {
		name     string
		raw      []string
		expected []ctdf.AccessibilityFlag
	}{
		{"platform", []string{"step-free to platform"}, []ctdf.AccessibilityFlag{ctdf.AccessibilityStepFreePlatform}},
		{"wheelchair", []string{"I use a wheelchair"}, []ctdf.AccessibilityFlag{ctdf.AccessibilityStepFreeVehicle}},
		{"bare step free", []string{"step free"}, []ctdf.AccessibilityFlag{ctdf.AccessibilityStepFreeVehicle}},
		{"audio and visual", []string{"audio", "visual"}, []ctdf.AccessibilityFlag{ctdf.AccessibilityAudioAnnouncements, ctdf.AccessibilityVisualDisplays}},
		{"canonical", []string{"step-free-vehicle", "step-free-vehicle"}, []ctdf.AccessibilityFlag{ctdf.AccessibilityStepFreeVehicle}},
		{"unknown", []string{"comfy seats"}, nil},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := NormalizeAccessibility(tc.raw)
			if !reflect.DeepEqual(result, tc.expected) {
				t.Errorf("NormalizeAccessibility(%q) = %v, expected %v", tc.raw, result, tc.expected)
			}
		})
	}
}

func TestAccessibilityConstraint(t *testing.T) {
	tests := []struct {
		name     string
		flags    []ctdf.AccessibilityFlag
		expected ctdf.AccessibilityConstraint
	}{
		{"none", nil, ctdf.AccessibilityConstraintNone},
		{"audio only", []ctdf.AccessibilityFlag{ctdf.AccessibilityAudioAnnouncements}, ctdf.AccessibilityConstraintNone},
		{"platform", []ctdf.AccessibilityFlag{ctdf.AccessibilityStepFreePlatform}, ctdf.AccessibilityConstraintStepFreePlatform},
		{"vehicle wins", []ctdf.AccessibilityFlag{ctdf.AccessibilityStepFreePlatform, ctdf.AccessibilityStepFreeVehicle}, ctdf.AccessibilityConstraintStepFreeVehicle},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if result := AccessibilityConstraint(tc.flags); result != tc.expected {
				t.Errorf("AccessibilityConstraint(%v) = %q, expected %q", tc.flags, result, tc.expected)
			}
		})
	}
}
