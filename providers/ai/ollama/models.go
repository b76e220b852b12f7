package ollama

import (
	"time"

	"github.com/leofalp/searchflow/providers/ai"
)

// chatRequest is the wire format for POST /api/chat.
type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
	Stream   bool          `json:"stream"`
	Options  *chatOptions  `json:"options,omitempty"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// chatOptions maps the generic generation config onto Ollama model options.
type chatOptions struct {
	Temperature *float32 `json:"temperature,omitempty"`
	NumPredict  int      `json:"num_predict,omitempty"`
}

// chatResponse is the wire format of a non-streaming /api/chat response.
type chatResponse struct {
	Model           string      `json:"model"`
	CreatedAt       time.Time   `json:"created_at"`
	Message         chatMessage `json:"message"`
	Done            bool        `json:"done"`
	DoneReason      string      `json:"done_reason"`
	PromptEvalCount int         `json:"prompt_eval_count"`
	EvalCount       int         `json:"eval_count"`
}

// requestFromGeneric converts the provider-agnostic request into the Ollama
// wire format. The system prompt becomes a leading system-role message, and
// streaming is always disabled since the provider is synchronous.
func (p *OllamaProvider) requestFromGeneric(request ai.ChatRequest) chatRequest {
	model := request.Model
	if model == "" {
		model = p.model
	}

	messages := make([]chatMessage, 0, len(request.Messages)+1)
	if request.SystemPrompt != "" {
		messages = append(messages, chatMessage{Role: string(ai.RoleSystem), Content: request.SystemPrompt})
	}
	for _, message := range request.Messages {
		messages = append(messages, chatMessage{Role: string(message.Role), Content: message.Content})
	}

	req := chatRequest{
		Model:    model,
		Messages: messages,
		Stream:   false,
	}

	if config := request.GenerationConfig; config != nil {
		options := &chatOptions{}
		if config.TemperatureSet || config.Temperature != 0 {
			temperature := config.Temperature
			options.Temperature = &temperature
		}
		if config.MaxTokens > 0 {
			options.NumPredict = config.MaxTokens
		}
		if options.Temperature != nil || options.NumPredict > 0 {
			req.Options = options
		}
	}

	return req
}

// responseToGeneric converts the Ollama wire response into the
// provider-agnostic ChatResponse.
func responseToGeneric(resp chatResponse) *ai.ChatResponse {
	return &ai.ChatResponse{
		Model:        resp.Model,
		Created:      resp.CreatedAt.Unix(),
		Content:      resp.Message.Content,
		FinishReason: resp.DoneReason,
		Usage: &ai.Usage{
			PromptTokens:     resp.PromptEvalCount,
			CompletionTokens: resp.EvalCount,
			TotalTokens:      resp.PromptEvalCount + resp.EvalCount,
		},
	}
}
