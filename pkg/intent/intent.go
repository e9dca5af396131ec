package intent

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/travigo/journeyresolver/pkg/ctdf"
)

// ParseIntent asks the model for the structured reading of rawQuery, revised in light of any planner feedback
func (c *Client) ParseIntent(ctx context.Context, rawQuery string, feedback []ctdf.PlannerFeedback) (*ctdf.TravelIntent, error) {
	augmentedQuery := AugmentQuery(rawQuery, feedback)

	var intent ctdf.TravelIntent
	if err := c.completeJSON(ctx, intentMessages(augmentedQuery, c.now()), &intent); err != nil {
		return nil, err
	}

	intent.RawQuery = rawQuery

	log.Debug().
		Str("kind", string(intent.Kind)).
		Float64("confidence", intent.OverallConfidence).
		Int("feedback", len(feedback)).
		Msg("Parsed travel intent")

	return &intent, nil
}

// ExpandPlaceName gives the full name for an abbreviated or misspelt place
func (c *Client) ExpandPlaceName(ctx context.Context, name string) (string, error) {
	text, err := c.complete(ctx, []chatMessage{
		{Role: "system", Content: expandSystemPrompt},
		{Role: "user", Content: name},
	}, false)
	if err != nil {
		return "", err
	}

	text = strings.Trim(strings.TrimSpace(text), `"`)

	// Anything longer than a place name is the model chatting rather than answering
	if text == "" || strings.Contains(text, "\n") || len(text) > 100 {
		return name, nil
	}

	return text, nil
}

// ClarifyingQuestions turns the intent's ambiguities into follow-up questions for the traveller
func (c *Client) ClarifyingQuestions(ctx context.Context, rawQuery string, ambiguities []string) ([]string, error) {
	request, err := json.Marshal(map[string]any{
		"query":       rawQuery,
		"ambiguities": ambiguities,
	})
	if err != nil {
		return nil, err
	}

	var response struct {
		Questions []string `json:"questions"`
	}
	if err := c.completeJSON(ctx, []chatMessage{
		{Role: "system", Content: clarifySystemPrompt},
		{Role: "user", Content: string(request)},
	}, &response); err != nil {
		return nil, err
	}

	var questions []string
	for _, question := range response.Questions {
		if question = strings.TrimSpace(question); question != "" {
			questions = append(questions, question)
		}
	}

	return questions, nil
}

type itinerarySummary struct {
	DurationMinutes int          `json:"durationMinutes"`
	Legs            []legSummary `json:"legs"`
}

type legSummary struct {
	Mode    string `json:"mode"`
	Line    string `json:"line,omitempty"`
	From    string `json:"from"`
	To      string `json:"to"`
	Summary string `json:"summary,omitempty"`
}

// DescribeItinerary writes a one sentence description of an itinerary
func (c *Client) DescribeItinerary(ctx context.Context, itinerary ctdf.Itinerary) (string, error) {
	summary := itinerarySummary{
		DurationMinutes: int(itinerary.Duration.Minutes()),
	}
	for _, leg := range itinerary.Legs {
		summary.Legs = append(summary.Legs, legSummary{
			Mode:    string(leg.Mode),
			Line:    leg.LineID,
			From:    leg.DeparturePoint.CommonName,
			To:      leg.ArrivalPoint.CommonName,
			Summary: leg.Summary,
		})
	}

	request, err := json.Marshal(summary)
	if err != nil {
		return "", err
	}

	text, err := c.complete(ctx, []chatMessage{
		{Role: "system", Content: describeSystemPrompt},
		{Role: "user", Content: string(request)},
	}, false)
	if err != nil {
		return "", fmt.Errorf("describe itinerary: %w", err)
	}

	return text, nil
}
