// Package provider abstracts text-generation backends behind a minimal
// vendor-neutral contract. Agents treat a Provider as an opaque asynchronous
// text function: prompt in, text out. Vendor adapters live in subpackages
// (openai, anthropic); MockProvider supports tests and examples.
package provider

import (
	"context"
	"errors"

	"github.com/cortexai/cortexai/prompt"
)

// ErrNotSupported signals that a provider does not implement an optional
// capability (embeddings, tokenization).
var ErrNotSupported = errors.New("provider: capability not supported")

// Info contains metadata about a provider implementation.
type Info struct {
	Name      string `json:"name"`       // Model or deployment name
	Vendor    string `json:"vendor"`     // "openai", "anthropic", "mock", ...
	ChatModel bool   `json:"chat_model"` // Selects chat-form vs text-form input
}

// Input carries the prompt in both representations. Callers populate
// Messages for chat models and Text for completion models, driven by
// Info.ChatModel; adapters read whichever field their API expects.
type Input struct {
	Text     string
	Messages []prompt.Message
}

// NewInput builds an Input from a Prompt using the representation the
// provider declares via its Info.
func NewInput(p *prompt.Prompt, info Info) Input {
	if info.ChatModel {
		return Input{Messages: p.Messages()}
	}
	return Input{Text: p.Text()}
}

// Provider is the minimal interface agents require to drive generation.
type Provider interface {
	// Generate produces one completion for the given input.
	Generate(ctx context.Context, input Input) (string, error)

	// Info returns metadata about the provider implementation.
	Info() Info
}

// Embedder is an optional capability for providers that produce embeddings.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float64, error)
}

// Tokenizer is an optional capability for providers with a local tokenizer.
type Tokenizer interface {
	Tokenize(text string) ([]int, error)
	NumTokens(text string) (int, error)
}

// Embed resolves the optional Embedder capability, returning ErrNotSupported
// for providers without one.
func Embed(ctx context.Context, p Provider, text string) ([]float64, error) {
	if e, ok := p.(Embedder); ok {
		return e.Embed(ctx, text)
	}
	return nil, ErrNotSupported
}

// NumTokens resolves the optional Tokenizer capability, returning
// ErrNotSupported for providers without one.
func NumTokens(p Provider, text string) (int, error) {
	if t, ok := p.(Tokenizer); ok {
		return t.NumTokens(text)
	}
	return 0, ErrNotSupported
}
