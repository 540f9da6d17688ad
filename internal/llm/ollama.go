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

// OllamaBackend implements Backend against a local Ollama server. Useful
// as a ranked candidate when no hosted API is reachable.
type OllamaBackend struct {
	baseURL    string
	model      string
	httpClient *http.Client
}

type ollamaRequest struct {
	Model   string        `json:"model"`
	Prompt  string        `json:"prompt"`
	System  string        `json:"system,omitempty"`
	Stream  bool          `json:"stream"`
	Options ollamaOptions `json:"options,omitempty"`
}

type ollamaOptions struct {
	Temperature float64 `json:"temperature,omitempty"`
	NumPredict  int     `json:"num_predict,omitempty"`
}

type ollamaResponse struct {
	Model    string `json:"model"`
	Response string `json:"response"`
	Done     bool   `json:"done"`
}

// NewOllamaBackend creates a new Ollama backend.
func NewOllamaBackend(baseURL, model string) (*OllamaBackend, error) {
	if baseURL == "" {
		baseURL = "http://localhost:11434"
	}
	if model == "" {
		model = "llama3.1"
	}
	return &OllamaBackend{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		model:   model,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}, nil
}

// Name returns the backend name.
func (b *OllamaBackend) Name() string {
	return "ollama"
}

func (b *OllamaBackend) complete(ctx context.Context, system, user string) (string, error) {
	reqBody := ollamaRequest{
		Model:  b.model,
		Prompt: user,
		System: system,
		Stream: false,
		Options: ollamaOptions{
			Temperature: 0.2,
			NumPredict:  1200,
		},
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, b.baseURL+"/api/generate", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := b.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("ollama request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("ollama API error: status %d", resp.StatusCode)
	}

	var apiResp ollamaResponse
	if err := json.Unmarshal(body, &apiResp); err != nil {
		return "", fmt.Errorf("parse response: %w", err)
	}
	return strings.TrimSpace(apiResp.Response), nil
}

// Score rates the text on the five bias dimensions.
func (b *OllamaBackend) Score(ctx context.Context, text string) (*ScoreResult, error) {
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
func (b *OllamaBackend) Summarize(ctx context.Context, text string) (string, error) {
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
func (b *OllamaBackend) ExtractClaims(ctx context.Context, text string) ([]model.Claim, error) {
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
