package modes

import (
	"strings"

	"github.com/travigo/journeyresolver/pkg/ctdf"
)

func normalizeAccessibilityFlag(raw string) (ctdf.AccessibilityFlag, bool) {
	text := strings.ToLower(strings.TrimSpace(raw))
	text = strings.NewReplacer("_", "-", "stepfree", "step-free", "step free", "step-free").Replace(text)

	switch ctdf.AccessibilityFlag(text) {
	case ctdf.AccessibilityStepFreePlatform,
		ctdf.AccessibilityStepFreeVehicle,
		ctdf.AccessibilityAudioAnnouncements,
		ctdf.AccessibilityVisualDisplays:
		return ctdf.AccessibilityFlag(text), true
	}

	switch {
	case strings.Contains(text, "step-free") && strings.Contains(text, "platform"):
		return ctdf.AccessibilityStepFreePlatform, true
	case strings.Contains(text, "wheelchair"), strings.Contains(text, "step-free"), strings.Contains(text, "no stairs"):
		// the stricter guarantee wins when the user is not specific
		return ctdf.AccessibilityStepFreeVehicle, true
	case strings.Contains(text, "audio"), strings.Contains(text, "announcement"):
		return ctdf.AccessibilityAudioAnnouncements, true
	case strings.Contains(text, "visual"), strings.Contains(text, "display"):
		return ctdf.AccessibilityVisualDisplays, true
	}

	return "", false
}

// NormalizeAccessibility maps free text requirements onto the closed accessibility vocabulary
func NormalizeAccessibility(raw []string) []ctdf.AccessibilityFlag {
	var flags []ctdf.AccessibilityFlag

	for _, item := range raw {
		flag, ok := normalizeAccessibilityFlag(item)
		if !ok {
			continue
		}

		seen := false
		for _, existing := range flags {
			if existing == flag {
				seen = true
				break
			}
		}
		if !seen {
			flags = append(flags, flag)
		}
	}

	return flags
}

// AccessibilityConstraint picks the single step-free constraint the journey planner accepts
func AccessibilityConstraint(flags []ctdf.AccessibilityFlag) ctdf.AccessibilityConstraint {
	constraint := ctdf.AccessibilityConstraintNone

	for _, flag := range flags {
		switch flag {
		case ctdf.AccessibilityStepFreeVehicle:
			return ctdf.AccessibilityConstraintStepFreeVehicle
		case ctdf.AccessibilityStepFreePlatform:
			constraint = ctdf.AccessibilityConstraintStepFreePlatform
		}
	}

	return constraint
}
