package modes

import (
	"regexp"
	"strings"

	"github.com/travigo/journeyresolver/pkg/ctdf"
	"golang.org/x/exp/slices"
)

// DefaultModes is used whenever the user expressed no mode preference
var DefaultModes = ctdf.ModeSet{
	ctdf.TransportModeTube,
	ctdf.TransportModeBus,
	ctdf.TransportModeDLR,
	ctdf.TransportModeOverground,
	ctdf.TransportModeWalking,
	ctdf.TransportModeNationalRail,
}

var synonyms = map[string]ctdf.TransportMode{
	"underground":             ctdf.TransportModeTube,
	"subway":                  ctdf.TransportModeTube,
	"metro":                   ctdf.TransportModeTube,
	"the tube":                ctdf.TransportModeTube,
	"buses":                   ctdf.TransportModeBus,
	"night bus":               ctdf.TransportModeBus,
	"docklands light railway": ctdf.TransportModeDLR,
	"docklands light rail":    ctdf.TransportModeDLR,
	"london overground":       ctdf.TransportModeOverground,
	"trams":                   ctdf.TransportModeTram,
	"tramlink":                ctdf.TransportModeTram,
	"river bus":               ctdf.TransportModeRiverBus,
	"riverbus":                ctdf.TransportModeRiverBus,
	"thames clippers":         ctdf.TransportModeRiverBus,
	"thames clipper":          ctdf.TransportModeRiverBus,
	"uber boat":               ctdf.TransportModeRiverBus,
	"boat":                    ctdf.TransportModeRiverBus,
	"ferry":                   ctdf.TransportModeRiverBus,
	"cable car":               ctdf.TransportModeCableCar,
	"cablecar":                ctdf.TransportModeCableCar,
	"emirates air line":       ctdf.TransportModeCableCar,
	"coaches":                 ctdf.TransportModeCoach,
	"bike":                    ctdf.TransportModeCycle,
	"bicycle":                 ctdf.TransportModeCycle,
	"cycling":                 ctdf.TransportModeCycle,
	"santander cycles":        ctdf.TransportModeCycle,
	"walk":                    ctdf.TransportModeWalking,
	"on foot":                 ctdf.TransportModeWalking,
	"national rail":           ctdf.TransportModeNationalRail,
	"nationalrail":            ctdf.TransportModeNationalRail,
	"national_rail":           ctdf.TransportModeNationalRail,
	"train":                   ctdf.TransportModeNationalRail,
	"trains":                  ctdf.TransportModeNationalRail,
	"rail":                    ctdf.TransportModeNationalRail,
	"overground train":        ctdf.TransportModeOverground,
	"light rail":              ctdf.TransportModeDLR,
}

type modePattern struct {
	key     string
	mode    ctdf.TransportMode
	pattern *regexp.Regexp
}

// Longest keys first so "river bus" is consumed before "bus" can match inside it
var freeTextPatterns = buildFreeTextPatterns()

func buildFreeTextPatterns() []modePattern {
	var patterns []modePattern

	for key, mode := range synonyms {
		patterns = append(patterns, modePattern{key: key, mode: mode})
	}
	for _, mode := range ctdf.TransportModes {
		patterns = append(patterns, modePattern{key: string(mode), mode: mode})
	}

	slices.SortFunc(patterns, func(a, b modePattern) int {
		if len(a.key) != len(b.key) {
			return len(b.key) - len(a.key)
		}
		return strings.Compare(a.key, b.key)
	})

	for i := range patterns {
		patterns[i].pattern = regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(patterns[i].key) + `\b`)
	}

	return patterns
}

// NormalizeMode maps one free text token onto a canonical mode
func NormalizeMode(raw string) (ctdf.TransportMode, bool) {
	token := strings.Join(strings.Fields(strings.ToLower(strings.TrimSpace(raw))), " ")

	if mode := ctdf.TransportMode(token); mode.Valid() {
		return mode, true
	}

	mode, ok := synonyms[token]
	return mode, ok
}

// NormalizeModes maps a raw list onto the canonical vocabulary, silently dropping anything unknown
func NormalizeModes(raw []string) ctdf.ModeSet {
	modeSet := ctdf.ModeSet{}

	for _, item := range raw {
		mode, ok := NormalizeMode(item)
		if ok && !modeSet.Contains(mode) {
			modeSet = append(modeSet, mode)
		}
	}

	return modeSet
}

// ExtractModesFromFreeText finds whole word mentions of modes or their synonyms, in order of appearance
func ExtractModesFromFreeText(text string) ctdf.ModeSet {
	type match struct {
		start int
		end   int
		mode  ctdf.TransportMode
	}
	var matches []match

	overlaps := func(start int, end int) bool {
		for _, m := range matches {
			if start < m.end && end > m.start {
				return true
			}
		}
		return false
	}

	for _, p := range freeTextPatterns {
		for _, location := range p.pattern.FindAllStringIndex(text, -1) {
			if !overlaps(location[0], location[1]) {
				matches = append(matches, match{start: location[0], end: location[1], mode: p.mode})
			}
		}
	}

	slices.SortFunc(matches, func(a, b match) int {
		return a.start - b.start
	})

	modeSet := ctdf.ModeSet{}
	for _, m := range matches {
		if !modeSet.Contains(m.mode) {
			modeSet = append(modeSet, m.mode)
		}
	}

	return modeSet
}

// MergeModes builds the allowed mode list sent to the planner. Exclusive requests get exactly what was asked for,
// otherwise the requested modes are added to the defaults.
func MergeModes(requested ctdf.ModeSet, exclusive bool, defaults ctdf.ModeSet) ctdf.ModeSet {
	if len(requested) == 0 {
		return append(ctdf.ModeSet{}, defaults...)
	}

	if exclusive {
		return append(ctdf.ModeSet{}, requested...)
	}

	return defaults.Union(requested)
}
