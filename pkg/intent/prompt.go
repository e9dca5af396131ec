package intent

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/travigo/journeyresolver/pkg/ctdf"
)

const feedbackMarker = "PLANNER_FEEDBACK:"

const intentSystemPrompt = `You turn travel questions about London into structured JSON. Reply with a single JSON object and nothing else.

Schema:
{
  "kind": "journey" | "status" | "station-info" | "accessibility-info",
  "from": {"name": string, "useCurrentLocation": boolean, "confidence": number} | null,
  "to": {"name": string, "useCurrentLocation": boolean, "confidence": number} | null,
  "via": [{"name": string, "confidence": number}],
  "preferences": {
    "modes": [string],
    "modePolicy": "only" | "prefer",
    "accessibility": [string],
    "time": string,
    "timeIs": "depart-by" | "arrive-by",
    "walkingSpeed": "slow" | "average" | "fast",
    "journeyPreference": "leasttime" | "leastinterchange" | "leastwalking",
    "maxWalkingMinutes": number,
    "maxTransferMinutes": number
  },
  "overallConfidence": number between 0 and 1,
  "ambiguities": [string]
}

Rules:
- Allowed mode ids: %s. Only use these ids in "modes".
- Use "modePolicy": "only" when the user restricts themselves to the named modes, otherwise "prefer".
- When no origin is given, or the user says "here", "my location" or similar, set "from.useCurrentLocation" to true.
- "time" is either an RFC3339 timestamp, a 24 hour "HH:MM" clock time, or an ISO8601 duration from now such as "PT20M".
- The current time in London is %s.
- List in "ambiguities" anything you would need to ask the user before planning, leave it empty otherwise.
- If the message ends with a %s line, the previous plan failed. Read the JSON after it and revise the intent so that the next plan can succeed, for example by choosing better known place names or by only using allowed modes.`

const expandSystemPrompt = `You expand abbreviated, informal or misspelt London place names into the full official name of the station or place, for example "KX" becomes "King's Cross St. Pancras" and "Tottenham Ct Rd" becomes "Tottenham Court Road". Reply with the name only. If the name is already complete reply with it unchanged.`

const clarifySystemPrompt = `A traveller asked a journey question that is ambiguous. Write one short follow-up question per ambiguity that would resolve it. Reply with a JSON object of the form {"questions": [string]}.`

const describeSystemPrompt = `Describe the journey given as JSON in one friendly sentence for a traveller in London. Mention the main lines or modes used and the total duration. Reply with the sentence only.`

// AugmentQuery appends the accumulated planner feedback to the original query as a machine readable suffix
func AugmentQuery(rawQuery string, feedback []ctdf.PlannerFeedback) string {
	if len(feedback) == 0 {
		return rawQuery
	}

	encoded, err := json.Marshal(feedback)
	if err != nil {
		return rawQuery
	}

	return fmt.Sprintf("%s\n\n%s %s", strings.TrimSpace(rawQuery), feedbackMarker, encoded)
}

func intentMessages(augmentedQuery string, now time.Time) []chatMessage {
	return []chatMessage{
		{
			Role:    "system",
			Content: fmt.Sprintf(intentSystemPrompt, strings.Join(ctdf.ModeSet(ctdf.TransportModes).Strings(), ", "), now.Format(time.RFC3339), feedbackMarker),
		},
		{
			Role:    "user",
			Content: augmentedQuery,
		},
	}
}

