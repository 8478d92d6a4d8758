package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// AzureGateway implements chat completion via the Azure OpenAI REST API
type AzureGateway struct {
	endpoint   string
	apiKey     string
	deployment string
	apiVersion string
	client     *http.Client
}

// AzureConfig holds configuration for the Azure OpenAI gateway
type AzureConfig struct {
	Endpoint   string // resource endpoint, e.g. https://myresource.openai.azure.com
	APIKey     string
	Deployment string
	APIVersion string
}

// NewAzureGateway creates a new Azure OpenAI gateway client
func NewAzureGateway(config AzureConfig) *AzureGateway {
	return &AzureGateway{
		endpoint:   strings.TrimRight(config.Endpoint, "/"),
		apiKey:     config.APIKey,
		deployment: config.Deployment,
		apiVersion: config.APIVersion,
		client: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

// ChatMessage represents a single message in the completion request
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatRequest represents the completion request structure.
// Temperature is always sent, since zero is the value this system wants.
type ChatRequest struct {
	Messages    []ChatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

// ChatChoice represents a single completion choice
type ChatChoice struct {
	Message      ChatMessage `json:"message"`
	FinishReason string      `json:"finish_reason"`
}

// ChatResponse represents the completion response structure
type ChatResponse struct {
	ID      string       `json:"id"`
	Choices []ChatChoice `json:"choices"`
}

// Complete sends one deterministic (temperature 0) chat completion
// request and returns the first choice's content
func (g *AzureGateway) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	reqBody := ChatRequest{
		Messages: []ChatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userPrompt},
		},
		Temperature: 0,
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal completion request: %w", err)
	}

	url := fmt.Sprintf(
		"%s/openai/deployments/%s/chat/completions?api-version=%s",
		g.endpoint, g.deployment, g.apiVersion,
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build completion request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("api-key", g.apiKey)

	resp, err := g.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("completion request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("completion API returned status %d: %s", resp.StatusCode, string(respBody))
	}

	var chatResp ChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chatResp); err != nil {
		return "", fmt.Errorf("failed to decode completion response: %w", err)
	}

	if len(chatResp.Choices) == 0 {
		return "", fmt.Errorf("completion response contained no choices")
	}

	return chatResp.Choices[0].Message.Content, nil
}

// GetName returns the name of this gateway implementation
func (g *AzureGateway) GetName() string {
	return "Azure OpenAI"
}
