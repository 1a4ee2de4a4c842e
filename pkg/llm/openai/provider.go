// Package openai adapts the official OpenAI client to llm.LLMProvider.
package openai

import (
	"context"
	"fmt"

	"ai-ragchat-be/pkg/llm"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

const DefaultModel = "gpt-3.5-turbo"

type OpenAIProvider struct {
	client *openai.Client
	model  string
}

var _ llm.LLMProvider = (*OpenAIProvider)(nil)

func NewOpenAIProvider(apiKey, baseURL, model string) *OpenAIProvider {
	if model == "" {
		model = DefaultModel
	}
	var client *openai.Client
	if baseURL != "" {
		client = openai.NewClient(option.WithBaseURL(baseURL), option.WithAPIKey(apiKey))
	} else {
		client = openai.NewClient(option.WithAPIKey(apiKey))
	}
	return &OpenAIProvider{
		client: client,
		model:  model,
	}
}

// injectIdentifiers forwards the session id so gateway proxies can attribute usage.
func injectIdentifiers(ctx context.Context, opts []option.RequestOption) []option.RequestOption {
	if sessionID := llm.SessionID(ctx); sessionID != "" {
		opts = append(opts, option.WithJSONSet("user", sessionID))
	}
	return opts
}

func toParams(history []llm.Message) []openai.ChatCompletionMessageParamUnion {
	messages := make([]openai.ChatCompletionMessageParamUnion, 0, len(history))
	for _, msg := range history {
		switch msg.Role {
		case llm.RoleSystem:
			messages = append(messages, openai.SystemMessage(msg.Content))
		case llm.RoleAssistant:
			messages = append(messages, openai.AssistantMessage(msg.Content))
		default:
			messages = append(messages, openai.UserMessage(msg.Content))
		}
	}
	return messages
}

func (p *OpenAIProvider) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	opts := llm.Apply(options...)
	model := p.model
	if opts.Model != "" {
		model = opts.Model
	}

	params := openai.ChatCompletionNewParams{
		Messages: openai.F(toParams(history)),
		Model:    openai.F(openai.ChatModel(model)),
	}
	if opts.Temperature != nil {
		params.Temperature = openai.F(*opts.Temperature)
	}
	if opts.MaxTokens > 0 {
		params.MaxTokens = openai.F(int64(opts.MaxTokens))
	}

	completion, err := p.client.Chat.Completions.New(ctx, params, injectIdentifiers(ctx, nil)...)
	if err != nil {
		return "", fmt.Errorf("openai chat completion: %w", err)
	}
	if len(completion.Choices) == 0 {
		return "", fmt.Errorf("openai chat completion: empty choices")
	}
	return completion.Choices[0].Message.Content, nil
}

func (p *OpenAIProvider) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	return p.Chat(ctx, []llm.Message{llm.UserMessage(prompt)}, options...)
}
