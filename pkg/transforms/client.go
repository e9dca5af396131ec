package transforms

var transforms = lineColours()

func modeColour(mode string, colour string) *TransformDefinition {
	return &TransformDefinition{
		Type: "ctdf.EnrichedLeg",
		Match: map[string]string{
			"Mode": mode,
		},
		Data: map[string]any{
			"LineColour": colour,
		},
	}
}

func lineColour(lineID string, colour string) *TransformDefinition {
	return &TransformDefinition{
		Type: "ctdf.EnrichedLeg",
		Match: map[string]string{
			"LineID": lineID,
		},
		Data: map[string]any{
			"LineColour": colour,
		},
	}
}

// Mode colours come first so a known line overrides them
func lineColours() []*TransformDefinition {
	return []*TransformDefinition{
		modeColour("bus", "#DC241F"),
		modeColour("dlr", "#00A4A7"),
		modeColour("overground", "#EE7C0E"),
		modeColour("tram", "#84B817"),
		modeColour("river-bus", "#00A0E2"),
		modeColour("cable-car", "#E21836"),

		lineColour("bakerloo", "#B36305"),
		lineColour("central", "#E32017"),
		lineColour("circle", "#FFD300"),
		lineColour("district", "#00782A"),
		lineColour("elizabeth", "#6950A1"),
		lineColour("hammersmith-city", "#F3A9BB"),
		lineColour("jubilee", "#A0A5A9"),
		lineColour("metropolitan", "#9B0056"),
		lineColour("northern", "#000000"),
		lineColour("piccadilly", "#003688"),
		lineColour("victoria", "#0098D4"),
		lineColour("waterloo-city", "#95CDBA"),
	}
}
