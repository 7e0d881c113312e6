// Package llm talks to the optional external text-generation provider.
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

// Request kinds.
const (
	TypeChat   = "chat"
	TypeReport = "report"
)

type Client struct {
	endpoint    string
	minReplyLen int
	httpClient  *http.Client
}

// GenerateRequest is the provider wire format. Context carries aggregates
// only; raw records never leave the engine.
type GenerateRequest struct {
	Message       string    `json:"message"`
	Prompt        string    `json:"prompt,omitempty"`
	Context       AIContext `json:"context"`
	Type          string    `json:"type"`
	RecentHistory []string  `json:"recent_history,omitempty"`
}

type GenerateResponse struct {
	Response string `json:"response"`
}

func NewClient(endpoint string, timeout time.Duration, minReplyLen int) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		endpoint:    endpoint,
		minReplyLen: minReplyLen,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Generate asks the provider for a response. Any transport, status or parse
// failure is an error; the caller falls back to the local path.
func (c *Client) Generate(ctx context.Context, req GenerateRequest) (string, error) {
	if c.endpoint == "" {
		return "", fmt.Errorf("no provider endpoint configured")
	}

	jsonBody, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+"/api/generate", bytes.NewBuffer(jsonBody))
	if err != nil {
		return "", fmt.Errorf("failed to build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("failed to call provider: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("provider error (status %d): %s", resp.StatusCode, string(body))
	}

	var genResp GenerateResponse
	if err := json.NewDecoder(resp.Body).Decode(&genResp); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	reply := strings.TrimSpace(genResp.Response)
	if reply == "" {
		return "", fmt.Errorf("empty provider response")
	}
	if len(reply) < c.minReplyLen {
		return "", fmt.Errorf("provider response too short (%d chars)", len(reply))
	}
	return reply, nil
}
