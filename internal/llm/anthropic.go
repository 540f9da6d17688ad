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

	"github.com/ppiankov/biaslab/internal/model"
)

// AnthropicBackend implements Backend against the Anthropic Messages API.
type AnthropicBackend struct {
	apiKey     string
	baseURL    string
	model      string
	httpClient *http.Client
}

type anthropicRequest struct {
	Model       string             `json:"model"`
	MaxTokens   int                `json:"max_tokens"`
	Messages    []anthropicMessage `json:"messages"`
	System      string             `json:"system,omitempty"`
	Temperature float64            `json:"temperature,omitempty"`
}

type anthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type anthropicResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	Model      string `json:"model"`
	StopReason string `json:"stop_reason"`
}

type anthropicError struct {
	Error struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

// NewAnthropicBackend creates a new Anthropic backend.
func NewAnthropicBackend(apiKey, model string) (*AnthropicBackend, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("Anthropic API key is required")
	}
	if model == "" {
		model = "claude-3-5-haiku-latest"
	}
	return &AnthropicBackend{
		apiKey:  apiKey,
		baseURL: "https://api.anthropic.com",
		model:   model,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}, nil
}

// Name returns the backend name.
func (b *AnthropicBackend) Name() string {
	return "anthropic"
}

func (b *AnthropicBackend) complete(ctx context.Context, system, user string) (string, error) {
	reqBody := anthropicRequest{
		Model:       b.model,
		MaxTokens:   1200,
		System:      system,
		Temperature: 0.2,
		Messages: []anthropicMessage{
			{Role: "user", Content: user},
		},
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, b.baseURL+"/v1/messages", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", b.apiKey)
	req.Header.Set("anthropic-version", "2023-06-01")

	resp, err := b.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("anthropic request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var apiErr anthropicError
		if json.Unmarshal(body, &apiErr) == nil && apiErr.Error.Message != "" {
			return "", fmt.Errorf("anthropic API error (%d): %s", resp.StatusCode, apiErr.Error.Message)
		}
		return "", fmt.Errorf("anthropic API error: status %d", resp.StatusCode)
	}

	var apiResp anthropicResponse
	if err := json.Unmarshal(body, &apiResp); err != nil {
		return "", fmt.Errorf("parse response: %w", err)
	}

	// Anthropic returns content as typed blocks.
	var out strings.Builder
	for _, block := range apiResp.Content {
		if block.Type == "text" {
			out.WriteString(block.Text)
		}
	}
	return strings.TrimSpace(out.String()), nil
}

// Score rates the text on the five bias dimensions.
func (b *AnthropicBackend) Score(ctx context.Context, text string) (*ScoreResult, error) {
	out, err := b.complete(ctx, scoreSystemPrompt, fmt.Sprintf(scoreUserTemplate, truncate(text, scoreBudget)))
	if err != nil {
		return nil, backendErr(b.Name(), "score", err)
	}
	res, err := parseScorePayload(out)
	if err != nil {
		return nil, backendErr(b.Name(), "score", err)
	}
	return res, nil
}

// Summarize writes a neutral single-paragraph summary.
func (b *AnthropicBackend) Summarize(ctx context.Context, text string) (string, error) {
	out, err := b.complete(ctx, summarySystemPrompt, truncate(text, summaryBudget))
	if err != nil {
		return "", backendErr(b.Name(), "summarize", err)
	}
	if out == "" {
		return "", backendErr(b.Name(), "summarize", fmt.Errorf("empty summary"))
	}
	return out, nil
}

// ExtractClaims pulls out atomic, checkable claims.
func (b *AnthropicBackend) ExtractClaims(ctx context.Context, text string) ([]model.Claim, error) {
	out, err := b.complete(ctx, claimsSystemPrompt, truncate(text, claimsBudget))
	if err != nil {
		return nil, backendErr(b.Name(), "claims", err)
	}
	claims, err := parseClaimsPayload(out)
	if err != nil {
		return nil, backendErr(b.Name(), "claims", err)
	}
	return claims, nil
}
