package ollama

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/leofalp/searchflow/internal/utils"
	"github.com/leofalp/searchflow/providers/ai"
)

const (
	defaultBaseURL = "http://localhost:11434"
	defaultModel   = "llama3"
	chatEndpoint   = "/api/chat"
)

// OllamaProvider implements the ai.Provider interface against a local or
// remote Ollama server. No API key is required; the server address and model
// are taken from OLLAMA_BASE_URL and OLLAMA_MODEL when set.
type OllamaProvider struct {
	baseURL string
	model   string
	client  *http.Client
}

// NewOllamaProvider creates a new Ollama provider instance with default values
func NewOllamaProvider() *OllamaProvider {
	baseURL := os.Getenv("OLLAMA_BASE_URL")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	model := os.Getenv("OLLAMA_MODEL")
	if model == "" {
		model = defaultModel
	}

	return &OllamaProvider{
		baseURL: baseURL,
		model:   model,
		client:  &http.Client{},
	}
}

// WithBaseURL sets the base URL for the Ollama server
func (p *OllamaProvider) WithBaseURL(baseURL string) ai.Provider {
	p.baseURL = baseURL
	return p
}

// WithModel sets the default model used for requests
func (p *OllamaProvider) WithModel(model string) ai.Provider {
	p.model = model
	return p
}

// WithHttpClient sets a custom HTTP client
func (p *OllamaProvider) WithHttpClient(httpClient *http.Client) ai.Provider {
	p.client = httpClient
	return p
}

// SendMessage implements the Provider interface
func (p *OllamaProvider) SendMessage(ctx context.Context, request ai.ChatRequest) (*ai.ChatResponse, error) {
	httpResponse, resp, err := utils.DoPostSync[chatResponse](ctx, p.client, p.baseURL+chatEndpoint, p.requestFromGeneric(request))
	if err != nil {
		return nil, err
	}

	if resp == nil {
		return nil, fmt.Errorf("empty response from Ollama API: %s", httpResponse.Status)
	}

	return responseToGeneric(*resp), nil
}
