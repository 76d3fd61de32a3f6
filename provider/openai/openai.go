// Package openai adapts the OpenAI Chat Completions API to the generic
// provider.Provider interface. The toolkit's tool protocol is textual
// ([UseTool:...] spans parsed downstream), so the adapter requests plain
// completions and returns the assistant text verbatim.
package openai

import (
	"context"
	"fmt"
	"strings"

	"github.com/openai/openai-go"

	"github.com/cortexai/cortexai/provider"
)

// Options configure the OpenAI provider adapter. Fields mirror a minimal
// subset of Chat Completion parameters; extend via functional options
// without breaking callers.
type Options struct {
	Model               string
	Temperature         float64
	MaxCompletionTokens int64
}

// Provider wraps the OpenAI Chat Completions API behind provider.Provider.
type Provider struct {
	client *openai.Client
	opts   Options
}

// New creates a new OpenAI provider using the official client, which reads
// OPENAI_API_KEY from the environment.
func New(optFns ...func(o *Options)) *Provider {
	client := openai.NewClient()
	return NewFromClient(&client, optFns...)
}

// NewFromClient creates a new OpenAI provider from an existing client.
func NewFromClient(client *openai.Client, optFns ...func(o *Options)) *Provider {
	opts := Options{
		Model:               openai.ChatModelGPT4oMini,
		Temperature:         0.7,
		MaxCompletionTokens: 4096,
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Provider{client: client, opts: opts}
}

// Generate implements provider.Provider with a non-streaming completion.
func (p *Provider) Generate(ctx context.Context, input provider.Input) (string, error) {
	params := openai.ChatCompletionNewParams{
		Messages:            buildMessages(input),
		Model:               p.opts.Model,
		Temperature:         openai.Float(p.opts.Temperature),
		MaxCompletionTokens: openai.Int(p.opts.MaxCompletionTokens),
	}

	resp, err := p.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("openai api error: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("openai api error: no choices returned")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

// Info implements provider.Provider.
func (p *Provider) Info() provider.Info {
	return provider.Info{Name: p.opts.Model, Vendor: "openai", ChatModel: true}
}

// buildMessages converts the normalized input into OpenAI chat messages.
// Text-form input becomes a single user message.
func buildMessages(input provider.Input) []openai.ChatCompletionMessageParamUnion {
	if len(input.Messages) == 0 {
		return []openai.ChatCompletionMessageParamUnion{openai.UserMessage(input.Text)}
	}

	messages := make([]openai.ChatCompletionMessageParamUnion, 0, len(input.Messages))
	for _, msg := range input.Messages {
		switch msg.Role {
		case "system":
			messages = append(messages, openai.SystemMessage(msg.Content))
		case "assistant":
			messages = append(messages, openai.AssistantMessage(msg.Content))
		default:
			messages = append(messages, openai.UserMessage(msg.Content))
		}
	}
	return messages
}
