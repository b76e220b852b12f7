package ai

import (
	"context"
	"net/http"
)

// Provider is the core interface that every LLM provider implementation must
// satisfy. It covers the full lifecycle of a single request: endpoint
// configuration, message dispatch, and response interpretation.
type Provider interface {
	// SendMessage sends a chat request to the provider and returns the
	// completed response. Returns an error if the provider call fails,
	// the context is cancelled, or the response cannot be decoded.
	SendMessage(ctx context.Context, request ChatRequest) (*ChatResponse, error)

	// WithBaseURL overrides the default base URL for API requests.
	WithBaseURL(baseURL string) Provider

	// WithModel sets the default model used when a request does not name one.
	WithModel(model string) Provider

	// WithHttpClient sets the HTTP client used for outbound requests.
	WithHttpClient(httpClient *http.Client) Provider
}

// Generate sends a single-turn plain-text prompt through the provider and
// returns the response text. It is the minimal capability the pipeline stages
// need: prompt in, text out. Generation settings from config apply when
// non-nil.
func Generate(ctx context.Context, provider Provider, prompt string, config *GenerationConfig) (string, error) {
	response, err := provider.SendMessage(ctx, ChatRequest{
		Messages:         []Message{{Role: RoleUser, Content: prompt}},
		GenerationConfig: config,
	})
	if err != nil {
		return "", err
	}
	return response.Content, nil
}
