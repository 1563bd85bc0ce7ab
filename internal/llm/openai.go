// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package llm

import (
	"context"
	"fmt"
	"net/http"

	openai "github.com/sashabaranov/go-openai"

	"github.com/pdiddy/topic-wizard/pkg/types"
)

// systemPrompt frames every completion request.
const systemPrompt = "You are a helpful AI assistant specialized in academic research."

// OpenAIBackend generates completions through the OpenAI chat API.
type OpenAIBackend struct {
	client      *openai.Client
	model       string
	temperature float32
}

// NewOpenAIBackend builds an OpenAI backend from a credential and the
// LLM config. BaseURL overrides (for tests) go through the config's
// client construction.
func NewOpenAIBackend(apiKey string, cfg types.LLMConfig) *OpenAIBackend {
	clientCfg := openai.DefaultConfig(apiKey)
	clientCfg.HTTPClient = &http.Client{Timeout: cfg.Timeout}

	model := cfg.Model
	if model == "" {
		model = openai.GPT3Dot5Turbo
	}
	return &OpenAIBackend{
		client:      openai.NewClientWithConfig(clientCfg),
		model:       model,
		temperature: cfg.Temperature,
	}
}

// NewOpenAIBackendWithBaseURL is NewOpenAIBackend pointed at an
// alternative endpoint, used by tests with an httptest server.
func NewOpenAIBackendWithBaseURL(apiKey, baseURL string, cfg types.LLMConfig) *OpenAIBackend {
	clientCfg := openai.DefaultConfig(apiKey)
	clientCfg.BaseURL = baseURL
	clientCfg.HTTPClient = &http.Client{Timeout: cfg.Timeout}

	model := cfg.Model
	if model == "" {
		model = openai.GPT3Dot5Turbo
	}
	return &OpenAIBackend{
		client:      openai.NewClientWithConfig(clientCfg),
		model:       model,
		temperature: cfg.Temperature,
	}
}

// Name returns the provider identifier.
func (b *OpenAIBackend) Name() string { return string(types.ProviderOpenAI) }

// Complete sends the prompt as a chat completion request and returns the
// first choice.
func (b *OpenAIBackend) Complete(ctx context.Context, prompt string, maxTokens int) (string, error) {
	resp, err := b.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: b.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		MaxTokens:   maxTokens,
		Temperature: b.temperature,
	})
	if err != nil {
		return "", fmt.Errorf("OpenAI completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("OpenAI completion: empty choices")
	}
	return resp.Choices[0].Message.Content, nil
}
