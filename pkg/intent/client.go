package intent

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/travigo/journeyresolver/pkg/config"
	"github.com/travigo/journeyresolver/pkg/ctdf"
)

const ProviderName = "Language model"

var EmptyCompletionError = errors.New("language model returned an empty message")

// Client talks to an OpenAI compatible chat completions API
type Client struct {
	Endpoint string
	APIKey   string
	Model    string

	HTTPClient *http.Client

	Now func() time.Time
}

func New(llmConfig config.LLMConfig, timeout time.Duration) *Client {
	return &Client{
		Endpoint:   strings.TrimRight(llmConfig.Endpoint, "/"),
		APIKey:     llmConfig.APIKey,
		Model:      llmConfig.Model,
		HTTPClient: &http.Client{Timeout: timeout},
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionRequest struct {
	Model          string            `json:"model"`
	Messages       []chatMessage     `json:"messages"`
	ResponseFormat map[string]string `json:"response_format,omitempty"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

func (c *Client) now() time.Time {
	if c.Now != nil {
		return c.Now()
	}

	return time.Now()
}

func (c *Client) complete(ctx context.Context, messages []chatMessage, jsonOutput bool) (string, error) {
	payload := chatCompletionRequest{
		Model:    c.Model,
		Messages: messages,
	}
	if jsonOutput {
		payload.ResponseFormat = map[string]string{"type": "json_object"}
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Endpoint+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", ctdf.NewProviderError(ProviderName, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.APIKey)
	}

	client := c.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}

	startTime := time.Now()
	resp, err := client.Do(req)
	if err != nil {
		return "", ctdf.NewProviderError(ProviderName, err)
	}
	defer resp.Body.Close()

	log.Debug().
		Int("status", resp.StatusCode).
		Str("length", time.Since(startTime).String()).
		Msg("Language model request")

	var response chatCompletionResponse
	if resp.StatusCode >= http.StatusBadRequest {
		data, _ := io.ReadAll(resp.Body)
		if json.Unmarshal(data, &response) == nil && response.Error != nil && response.Error.Message != "" {
			return "", ctdf.NewProviderError(ProviderName, errors.New(response.Error.Message))
		}

		return "", ctdf.NewProviderError(ProviderName, fmt.Errorf("api error: %s", resp.Status))
	}

	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return "", ctdf.NewProviderError(ProviderName, fmt.Errorf("decode: %w", err))
	}

	for _, choice := range response.Choices {
		if text := strings.TrimSpace(choice.Message.Content); text != "" {
			return text, nil
		}
	}

	return "", ctdf.NewProviderError(ProviderName, EmptyCompletionError)
}

// completeJSON runs a completion and decodes the answer into v, tolerating markdown code fences around it
func (c *Client) completeJSON(ctx context.Context, messages []chatMessage, v any) error {
	text, err := c.complete(ctx, messages, true)
	if err != nil {
		return err
	}

	text = stripCodeFence(text)

	if err := json.Unmarshal([]byte(text), v); err != nil {
		return ctdf.NewProviderError(ProviderName, fmt.Errorf("unreadable JSON answer: %w", err))
	}

	return nil
}

func stripCodeFence(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "```") {
		return text
	}

	text = strings.TrimPrefix(text, "```")
	text = strings.TrimPrefix(text, "json")
	text = strings.TrimSuffix(strings.TrimSpace(text), "```")

	return strings.TrimSpace(text)
}
