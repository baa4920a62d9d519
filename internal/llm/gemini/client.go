// Package gemini implements port.TextGenerator against Google's Gemini API.
package gemini

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/Rahul-1611/AEROCARBON/internal/config"
	"github.com/Rahul-1611/AEROCARBON/internal/port"
)

const apiBaseURL = "https://generativelanguage.googleapis.com/v1beta/models"

// Client calls the Gemini generateContent endpoint. Configuration is
// immutable after construction.
type Client struct {
	apiKey   string
	model    string
	endpoint string
	client   *http.Client
}

// NewClient creates a Gemini generation client from config.
func NewClient(cfg *config.GeminiConfig) *Client {
	return newClient(cfg, "")
}

// NewClientWithEndpoint creates a client pointing at a custom API endpoint (for testing).
func NewClientWithEndpoint(cfg *config.GeminiConfig, endpoint string) *Client {
	return newClient(cfg, endpoint)
}

func newClient(cfg *config.GeminiConfig, endpoint string) *Client {
	model := cfg.Model
	if model == "" {
		model = "gemini-2.5-flash"
	}
	timeout := time.Duration(cfg.TimeoutSecs) * time.Second
	if timeout == 0 {
		timeout = 120 * time.Second
	}
	if endpoint == "" {
		endpoint = fmt.Sprintf("%s/%s:generateContent", apiBaseURL, model)
	}
	return &Client{
		apiKey:   cfg.APIKey,
		model:    model,
		endpoint: endpoint,
		client:   &http.Client{Timeout: timeout},
	}
}

// Model returns the configured model name.
func (c *Client) Model() string {
	return c.model
}

// Generate sends one generation request and returns the raw response text.
func (c *Client) Generate(ctx context.Context, input port.GenerateInput) (string, error) {
	var parts []map[string]interface{}
	if len(input.FileBytes) > 0 {
		parts = append(parts, map[string]interface{}{
			"inline_data": map[string]interface{}{
				"mime_type": input.MimeType,
				"data":      base64.StdEncoding.EncodeToString(input.FileBytes),
			},
		})
	}
	parts = append(parts, map[string]interface{}{"text": input.Prompt})

	reqBody := map[string]interface{}{
		"contents": []map[string]interface{}{
			{
				"role":  "user",
				"parts": parts,
			},
		},
		"generationConfig": map[string]interface{}{
			"temperature":      0.1,
			"responseMimeType": "application/json",
			"maxOutputTokens":  8192,
		},
	}
	if input.SystemPrompt != "" {
		reqBody["system_instruction"] = map[string]interface{}{
			"parts": []map[string]interface{}{
				{"text": input.SystemPrompt},
			},
		}
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(bodyBytes))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("calling gemini API: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("gemini API error (status %d): %s", resp.StatusCode, truncate(string(respBody), 500))
	}

	return extractText(respBody)
}

// geminiResponse models the Gemini API response.
type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
		FinishReason string `json:"finishReason"`
	} `json:"candidates"`
}

func extractText(body []byte) (string, error) {
	var resp geminiResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("unmarshaling response: %w", err)
	}
	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("empty response from API")
	}
	cand := resp.Candidates[0]
	if cand.FinishReason == "MAX_TOKENS" {
		return "", fmt.Errorf("output truncated (finishReason: MAX_TOKENS): response exceeded output token limit")
	}
	return cand.Content.Parts[0].Text, nil
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
