// Package llm wraps the language-model service behind a small provider
// interface. The model's output is untrusted input; callers validate shape
// before use.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"

	"mediagent/config"
)

// Message is one role-tagged entry of a model conversation.
type Message struct {
	Role    string `json:"role"` // system or user
	Content string `json:"content"`
}

// Provider is the contract for language-model backends.
type Provider interface {
	// Chat sends role-tagged messages and returns the reply text.
	Chat(ctx context.Context, messages []Message, model string, options map[string]interface{}) (string, error)

	// ChatWithTokens additionally returns prompt/completion token counts.
	ChatWithTokens(ctx context.Context, messages []Message, model string, options map[string]interface{}) (string, int64, int64, error)

	// CalculateCost converts token usage into dollars for a model.
	CalculateCost(inputTokens, outputTokens int64, model string) float64
}

// NewProvider creates a provider based on configuration.
func NewProvider(cfg config.LLMConfig) (Provider, error) {
	if len(cfg.Providers) == 0 {
		return nil, fmt.Errorf("no LLM providers configured")
	}
	for _, provider := range cfg.Providers {
		switch provider.Type {
		case "openai":
			return NewOpenAIProvider(provider), nil
		default:
			return nil, fmt.Errorf("unsupported LLM provider type: %s", provider.Type)
		}
	}
	return nil, fmt.Errorf("no valid LLM providers found")
}

// OpenAIProvider implements Provider over the OpenAI chat completions API.
type OpenAIProvider struct {
	config config.LLMProvider
	models map[string]config.LLMModel
	client *http.Client
}

func NewOpenAIProvider(cfg config.LLMProvider) *OpenAIProvider {
	return &OpenAIProvider{
		config: cfg,
		models: cfg.Models,
		client: &http.Client{Timeout: cfg.Timeout},
	}
}

func (p *OpenAIProvider) Chat(ctx context.Context, messages []Message, model string, options map[string]interface{}) (string, error) {
	resp, _, _, err := p.ChatWithTokens(ctx, messages, model, options)
	return resp, err
}

func (p *OpenAIProvider) ChatWithTokens(ctx context.Context, messages []Message, model string, options map[string]interface{}) (string, int64, int64, error) {
	apiKey := p.config.APIKey
	if apiKey == "" {
		apiKey = os.Getenv("OPENAI_API_KEY")
	}
	if apiKey == "" {
		return "", 0, 0, fmt.Errorf("OpenAI API key not configured")
	}

	m, ok := p.models[model]
	if !ok {
		return "", 0, 0, fmt.Errorf("model %s not configured", model)
	}
	apiModel := m.APIName
	if apiModel == "" {
		apiModel = m.Name
	}

	temperature := m.Temperature
	if t, ok := options["temperature"].(float64); ok {
		temperature = t
	}
	maxTokens := m.MaxTokens
	if mt, ok := options["max_tokens"].(int); ok {
		maxTokens = mt
	}

	type chatReq struct {
		Model          string                 `json:"model"`
		Messages       []Message              `json:"messages"`
		Temperature    float64                `json:"temperature,omitempty"`
		MaxTokens      int                    `json:"max_tokens,omitempty"`
		ResponseFormat map[string]interface{} `json:"response_format,omitempty"`
	}
	cr := chatReq{
		Model:       apiModel,
		Messages:    messages,
		Temperature: temperature,
		MaxTokens:   maxTokens,
	}
	// Planning stages ask for a strict JSON object reply.
	if jm, ok := options["json"].(bool); ok && jm {
		cr.ResponseFormat = map[string]interface{}{"type": "json_object"}
	}

	body, err := json.Marshal(cr)
	if err != nil {
		return "", 0, 0, fmt.Errorf("marshal: %w", err)
	}

	baseURL := p.config.BaseURL
	if baseURL == "" {
		baseURL = "https://api.openai.com/v1"
	}
	req, err := http.NewRequestWithContext(ctx, "POST", baseURL+"/chat/completions", bytes.NewBuffer(body))
	if err != nil {
		return "", 0, 0, fmt.Errorf("request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+apiKey)

	resp, err := p.client.Do(req)
	if err != nil {
		return "", 0, 0, fmt.Errorf("do: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", 0, 0, fmt.Errorf("OpenAI status %d", resp.StatusCode)
	}

	var out struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
		Usage struct {
			PromptTokens     int `json:"prompt_tokens"`
			CompletionTokens int `json:"completion_tokens"`
		} `json:"usage"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", 0, 0, fmt.Errorf("decode: %w", err)
	}
	if len(out.Choices) == 0 {
		return "", 0, 0, fmt.Errorf("no choices")
	}
	return out.Choices[0].Message.Content, int64(out.Usage.PromptTokens), int64(out.Usage.CompletionTokens), nil
}

// CalculateCost converts token usage into dollars for a model.
func (p *OpenAIProvider) CalculateCost(inputTokens, outputTokens int64, model string) float64 {
	m, ok := p.models[model]
	if !ok {
		return 0.0
	}
	inputCost := float64(inputTokens) / 1000.0 * m.CostPer1K
	outputCost := float64(outputTokens) / 1000.0 * m.CostPer1KOutput
	return inputCost + outputCost
}
