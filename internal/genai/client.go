package genai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"researchbot/internal/service"
)

// Client is a client for a Gemini-style generateContent API.
type Client struct {
	BaseURL string
	APIKey  string
	Model   string
	client  *http.Client
}

// NewClient creates a new generative-answer client.
func NewClient(baseURL, apiKey, model string) *Client {
	return &Client{
		BaseURL: baseURL,
		APIKey:  apiKey,
		Model:   model,
		client:  http.DefaultClient,
	}
}

// Part is one text fragment of a content block.
type Part struct {
	Text string `json:"text"`
}

// Content is a block of parts in a request or candidate.
type Content struct {
	Parts []Part `json:"parts"`
}

// GenerateRequest is the request payload for generateContent.
type GenerateRequest struct {
	Contents []Content `json:"contents"`
}

// Candidate is one generated answer candidate.
type Candidate struct {
	Content Content `json:"content"`
}

// GenerateResponse is the response payload from generateContent.
type GenerateResponse struct {
	Candidates []Candidate `json:"candidates"`
}

// GenerateContent submits a single combined prompt and returns the generated
// text. Every non-success path (transport error, bad status, malformed or
// empty response) is returned as an error; callers must never use a partial
// result from a failed call.
func (c *Client) GenerateContent(ctx context.Context, prompt string) (string, error) {
	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent", c.BaseURL, c.Model)

	payload := GenerateRequest{
		Contents: []Content{
			{Parts: []Part{{Text: prompt}}},
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("x-goog-api-key", c.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("%w: bad status %d: %s", service.ErrExternalService, resp.StatusCode, string(raw))
	}

	var genResp GenerateResponse
	if err := json.NewDecoder(resp.Body).Decode(&genResp); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	if len(genResp.Candidates) == 0 || len(genResp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no candidates returned")
	}

	text := strings.TrimSpace(genResp.Candidates[0].Content.Parts[0].Text)
	if text == "" {
		return "", fmt.Errorf("empty candidate text")
	}
	return text, nil
}
