package intent

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/travigo/journeyresolver/pkg/config"
	"github.com/travigo/journeyresolver/pkg/ctdf"
)

func newTestClient(t *testing.T, answer func(request chatCompletionRequest) (int, string)) *Client {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("requested path = %q", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer test-key" {
			t.Errorf("authorization = %q", r.Header.Get("Authorization"))
		}

		var request chatCompletionRequest
		if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
			t.Errorf("decoding request: %v", err)
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		status, content := answer(request)
		w.WriteHeader(status)
		if status >= http.StatusBadRequest {
			w.Write([]byte(content))
			return
		}

		json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]string{"role": "assistant", "content": content}},
			},
		})
	}))
	t.Cleanup(server.Close)

	client := New(config.LLMConfig{Endpoint: server.URL, APIKey: "test-key", Model: "test-model"}, 5*time.Second)
	client.Now = func() time.Time {
		return time.Date(2026, 10, 17, 9, 0, 0, 0, time.UTC)
	}

	return client
}

func TestParseIntent(t *testing.T) {
	var userMessage string
	client := newTestClient(t, func(request chatCompletionRequest) (int, string) {
		if request.Model != "test-model" || request.ResponseFormat["type"] != "json_object" {
			t.Errorf("request = %+v", request)
		}
		userMessage = request.Messages[len(request.Messages)-1].Content

		return http.StatusOK, "```json\n" + `{
			"kind": "journey",
			"from": {"name": "Canary Wharf", "confidence": 0.9},
			"to": {"name": "Oxford Circus", "confidence": 0.95},
			"preferences": {"modes": ["tube"], "modePolicy": "only"},
			"overallConfidence": 0.9
		}` + "\n```"
	})

	feedback := []ctdf.PlannerFeedback{{LastError: "no journeys found", Guidance: "use tube only", AllowedModes: []string{"tube"}}}

	intent, err := client.ParseIntent(context.Background(), "Tube only from Canary Wharf to Oxford Circus", feedback)
	if err != nil {
		t.Fatalf("ParseIntent() error = %v", err)
	}

	if intent.RawQuery != "Tube only from Canary Wharf to Oxford Circus" {
		t.Errorf("raw query = %q, want the original query", intent.RawQuery)
	}
	if intent.Kind != ctdf.IntentKindJourney || intent.To.Name != "Oxford Circus" {
		t.Errorf("intent = %+v", intent)
	}
	if intent.Preferences.ModePolicy != ctdf.ModePolicyOnly {
		t.Errorf("mode policy = %q", intent.Preferences.ModePolicy)
	}
	if !strings.Contains(userMessage, feedbackMarker) || !strings.Contains(userMessage, `"lastError":"no journeys found"`) {
		t.Errorf("user message does not carry feedback: %q", userMessage)
	}
}

func TestParseIntentProviderError(t *testing.T) {
	client := newTestClient(t, func(request chatCompletionRequest) (int, string) {
		return http.StatusTooManyRequests, `{"error": {"message": "rate limited"}}`
	})

	_, err := client.ParseIntent(context.Background(), "Bank to Victoria", nil)

	var providerError *ctdf.ProviderError
	if !errors.As(err, &providerError) {
		t.Fatalf("error = %v, want ProviderError", err)
	}
	if providerError.Err.Error() != "rate limited" {
		t.Errorf("provider error = %q", providerError.Err)
	}
}

func TestParseIntentUnreadableAnswer(t *testing.T) {
	client := newTestClient(t, func(request chatCompletionRequest) (int, string) {
		return http.StatusOK, "I think you want to go to Victoria"
	})

	if _, err := client.ParseIntent(context.Background(), "Bank to Victoria", nil); err == nil {
		t.Error("expected an error for a non JSON answer")
	}
}

func TestExpandPlaceName(t *testing.T) {
	tests := []struct {
		answer   string
		expected string
	}{
		{`"King's Cross St. Pancras"`, "King's Cross St. Pancras"},
		{"Sure! Here are some options:\n1. King's Cross\n2. Kings Cross Thameslink", "KX"},
	}

	for _, tc := range tests {
		t.Run(tc.expected, func(t *testing.T) {
			client := newTestClient(t, func(request chatCompletionRequest) (int, string) {
				if request.ResponseFormat != nil {
					t.Errorf("expansion should not ask for JSON")
				}
				return http.StatusOK, tc.answer
			})

			expanded, err := client.ExpandPlaceName(context.Background(), "KX")
			if err != nil {
				t.Fatalf("ExpandPlaceName() error = %v", err)
			}
			if expanded != tc.expected {
				t.Errorf("ExpandPlaceName() = %q, want %q", expanded, tc.expected)
			}
		})
	}
}

func TestClarifyingQuestions(t *testing.T) {
	client := newTestClient(t, func(request chatCompletionRequest) (int, string) {
		return http.StatusOK, `{"questions": ["Which Richmond do you mean?", " "]}`
	})

	questions, err := client.ClarifyingQuestions(context.Background(), "to Richmond", []string{"Richmond is ambiguous"})
	if err != nil {
		t.Fatalf("ClarifyingQuestions() error = %v", err)
	}
	if len(questions) != 1 || questions[0] != "Which Richmond do you mean?" {
		t.Errorf("questions = %q", questions)
	}
}

func TestDescribeItinerary(t *testing.T) {
	var userMessage string
	client := newTestClient(t, func(request chatCompletionRequest) (int, string) {
		userMessage = request.Messages[1].Content
		return http.StatusOK, "Take the Jubilee line to Bond Street, about 20 minutes."
	})

	description, err := client.DescribeItinerary(context.Background(), ctdf.Itinerary{
		Duration: 20 * time.Minute,
		Legs: []ctdf.Leg{
			{Mode: ctdf.TransportModeTube, LineID: "jubilee", DeparturePoint: ctdf.StopPoint{CommonName: "Canary Wharf"}, ArrivalPoint: ctdf.StopPoint{CommonName: "Bond Street"}},
		},
	})
	if err != nil {
		t.Fatalf("DescribeItinerary() error = %v", err)
	}
	if description != "Take the Jubilee line to Bond Street, about 20 minutes." {
		t.Errorf("description = %q", description)
	}
	if !strings.Contains(userMessage, `"durationMinutes":20`) || !strings.Contains(userMessage, `"line":"jubilee"`) {
		t.Errorf("user message = %s", userMessage)
	}
}

func TestAugmentQuery(t *testing.T) {
	if AugmentQuery("Bank to Victoria", nil) != "Bank to Victoria" {
		t.Error("AugmentQuery without feedback must return the query unchanged")
	}

	augmented := AugmentQuery("Bank to Victoria", []ctdf.PlannerFeedback{
		{LastError: "first", AllowedModes: []string{"tube"}, DefaultModes: []string{"bus"}},
		{LastError: "second"},
	})

	prefix := "Bank to Victoria\n\n" + feedbackMarker + " "
	if !strings.HasPrefix(augmented, prefix) {
		t.Fatalf("augmented = %q", augmented)
	}

	var feedback []ctdf.PlannerFeedback
	if err := json.Unmarshal([]byte(strings.TrimPrefix(augmented, prefix)), &feedback); err != nil {
		t.Fatalf("feedback suffix is not JSON: %v", err)
	}
	if len(feedback) != 2 || feedback[1].LastError != "second" {
		t.Errorf("feedback = %+v", feedback)
	}
}

func TestGate(t *testing.T) {
	journey := func(modify func(intent *ctdf.TravelIntent)) *ctdf.TravelIntent {
		intent := &ctdf.TravelIntent{
			Kind:              ctdf.IntentKindJourney,
			To:                &ctdf.IntentLocation{Name: "Bank"},
			OverallConfidence: 0.8,
		}
		if modify != nil {
			modify(intent)
		}
		return intent
	}

	tests := []struct {
		name     string
		intent   *ctdf.TravelIntent
		expected error
	}{
		{"valid", journey(nil), nil},
		{"low confidence", journey(func(i *ctdf.TravelIntent) { i.OverallConfidence = 0.29 }), ctdf.LowConfidenceIntentError},
		{"threshold is inclusive", journey(func(i *ctdf.TravelIntent) { i.OverallConfidence = 0.3 }), nil},
		{"low confidence beats kind", journey(func(i *ctdf.TravelIntent) { i.OverallConfidence = 0.1; i.Kind = ctdf.IntentKindStatus }), ctdf.LowConfidenceIntentError},
		{"status query", journey(func(i *ctdf.TravelIntent) { i.Kind = ctdf.IntentKindStatus }), ctdf.NotJourneyQueryError},
		{"no destination", journey(func(i *ctdf.TravelIntent) { i.To = nil }), ctdf.NotJourneyQueryError},
		{"ambiguous", journey(func(i *ctdf.TravelIntent) { i.Ambiguities = []string{"which Richmond"} }), ctdf.AmbiguousIntentError},
		{"nil", nil, ctdf.LowConfidenceIntentError},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if err := Gate(tc.intent, 0.3); !errors.Is(err, tc.expected) {
				t.Errorf("Gate() = %v, want %v", err, tc.expected)
			}
		})
	}
}

func TestFirstVia(t *testing.T) {
	intent := &ctdf.TravelIntent{Via: []ctdf.IntentLocation{{Name: "Bank"}, {Name: "Angel"}}}
	if via := FirstVia(intent); via == nil || via.Name != "Bank" {
		t.Errorf("FirstVia() = %+v, want Bank", via)
	}

	if via := FirstVia(&ctdf.TravelIntent{}); via != nil {
		t.Errorf("FirstVia() = %+v, want nil", via)
	}
}
