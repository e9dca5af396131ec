package ctdf

type AccessibilityFlag string

const (
	AccessibilityStepFreePlatform   AccessibilityFlag = "step-free-platform"
	AccessibilityStepFreeVehicle    AccessibilityFlag = "step-free-vehicle"
	AccessibilityAudioAnnouncements AccessibilityFlag = "audio-announcements"
	AccessibilityVisualDisplays     AccessibilityFlag = "visual-displays"
)

// AccessibilityConstraint is the single step-free requirement passed to the journey planner
type AccessibilityConstraint string

const (
	AccessibilityConstraintNone             AccessibilityConstraint = "none"
	AccessibilityConstraintStepFreePlatform AccessibilityConstraint = "step-free-platform"
	AccessibilityConstraintStepFreeVehicle  AccessibilityConstraint = "step-free-vehicle"
)
