package llm

import (
	"context"
	"errors"
	"os"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAIClient calls an OpenAI-compatible chat completion API for the
// supervisor and narrowing prompts. Credentials come from the environment.
type OpenAIClient struct {
	client      *openai.Client
	model       string
	temperature float32
	timeout     time.Duration
}

// Config configures the generation client. APIKeyEnv names the environment
// variable holding the key; BaseURL may point at any OpenAI-compatible
// endpoint.
type Config struct {
	BaseURL     string
	APIKeyEnv   string
	Model       string
	Temperature float32
	Timeout     time.Duration
}

// NewOpenAIClient constructs an OpenAI-backed generation client with defaults
// for anything left unset.
func NewOpenAIClient(cfg Config) *OpenAIClient {
	env := cfg.APIKeyEnv
	if env == "" {
		env = "OPENAI_API_KEY"
	}
	clientCfg := openai.DefaultConfig(os.Getenv(env))
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	model := cfg.Model
	if model == "" {
		model = "gpt-4o-mini"
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 60 * time.Second
	}
	return &OpenAIClient{
		client:      openai.NewClientWithConfig(clientCfg),
		model:       model,
		temperature: cfg.Temperature,
		timeout:     timeout,
	}
}

// Generate sends the prompts to the chat completion API and returns the raw
// assistant text.
func (c *OpenAIClient) Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	return c.complete(ctx, systemPrompt, userPrompt, nil)
}

// GenerateJSON is Generate with a JSON-object response format, used by the
// supervisor flow to force a machine-parseable reply.
func (c *OpenAIClient) GenerateJSON(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	format := &openai.ChatCompletionResponseFormat{
		Type: openai.ChatCompletionResponseFormatTypeJSONObject,
	}
	return c.complete(ctx, systemPrompt, userPrompt, format)
}

func (c *OpenAIClient) complete(ctx context.Context, systemPrompt, userPrompt string, format *openai.ChatCompletionResponseFormat) (string, error) {
	if c.client == nil {
		return "", errors.New("openai client not initialized")
	}
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userPrompt},
		},
		Temperature:    c.temperature,
		ResponseFormat: format,
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("no completion returned")
	}
	return resp.Choices[0].Message.Content, nil
}
