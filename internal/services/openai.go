package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"alfredoptarigan/job-tracker/internal/models"
)

const providerOpenAI = "openai"

type openAIClient struct {
	baseURL    string
	apiKey     string
	model      string
	httpClient *http.Client
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model     string        `json:"model"`
	Messages  []chatMessage `json:"messages"`
	MaxTokens int           `json:"max_tokens"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// NewOpenAIClient talks to any OpenAI compatible chat-completions endpoint.
func NewOpenAIClient(baseURL, apiKey, model string, timeout time.Duration) CompletionClient {
	return &openAIClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		model:   model,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

func (c *openAIClient) Complete(ctx context.Context, system, prompt string) (string, error) {
	payload, err := json.Marshal(chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: prompt},
		},
		MaxTokens: MaxCompletionTokens,
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode completion request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to build completion request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", &models.CompletionTransportError{Provider: providerOpenAI, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &models.CompletionTransportError{Provider: providerOpenAI, StatusCode: resp.StatusCode, Err: err}
	}

	var parsed chatResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", &models.CompletionTransportError{
			Provider:   providerOpenAI,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("unparseable response body: %w", err),
		}
	}

	if len(parsed.Choices) == 0 {
		return "", &models.NoCompletionChoiceError{Provider: providerOpenAI, Body: string(body)}
	}

	return parsed.Choices[0].Message.Content, nil
}
