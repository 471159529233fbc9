package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"

	openai "github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

// ErrNoAPIKey is returned when a reply is requested without an OpenAI key.
var ErrNoAPIKey = errors.New("openai api key not configured")

// Responder produces a free-form assistant reply for one user message.
type Responder interface {
	Reply(ctx context.Context, userMsg string) (string, error)
}

// OpenAIClient answers free-form messages through the OpenAI chat API with
// the configured specialization prompt.
type OpenAIClient struct {
	client        openai.Client
	apiKey        string
	model         string
	specialPrompt string
}

func NewOpenAIClient(apiKey, model, specialPrompt string) *OpenAIClient {
	return &OpenAIClient{
		client:        openai.NewClient(option.WithAPIKey(apiKey)),
		apiKey:        apiKey,
		model:         model,
		specialPrompt: specialPrompt,
	}
}

func (c *OpenAIClient) Reply(ctx context.Context, userMsg string) (string, error) {
	if c.apiKey == "" {
		return "", ErrNoAPIKey
	}

	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(c.specialPrompt),
			openai.UserMessage(userMsg),
		},
		Model:       openai.ChatModel(c.model),
		Temperature: openai.Float(0.3),
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("chat completion: no choices in response")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
