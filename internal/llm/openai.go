package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/ppiankov/biaslab/internal/model"
	"github.com/sashabaranov/go-openai"
)

// OpenAIBackend implements Backend using OpenAI's Chat Completions API.
type OpenAIBackend struct {
	client *openai.Client
	model  string
}

// NewOpenAIBackend creates a new OpenAI backend.
func NewOpenAIBackend(apiKey, model string) (*OpenAIBackend, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required")
	}
	if model == "" {
		model = openai.GPT4oMini
	}
	return &OpenAIBackend{
		client: openai.NewClient(apiKey),
		model:  model,
	}, nil
}

// Name returns the backend name.
func (b *OpenAIBackend) Name() string {
	return "openai"
}

func (b *OpenAIBackend) complete(ctx context.Context, system, user string) (string, error) {
	resp, err := b.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: b.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
		Temperature: 0.2,
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response choices")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

// Score rates the text on the five bias dimensions.
func (b *OpenAIBackend) Score(ctx context.Context, text string) (*ScoreResult, error) {
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
func (b *OpenAIBackend) Summarize(ctx context.Context, text string) (string, error) {
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
func (b *OpenAIBackend) ExtractClaims(ctx context.Context, text string) ([]model.Claim, error) {
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
