package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/sashabaranov/go-openai"

	"resume-builder/pkg/ai/agents"
	"resume-builder/pkg/logger"
)

// OpenAIClient forces the agent's function through tool_choice, so the
// reply arguments are always the agent's output object.
type OpenAIClient struct {
	api   *openai.Client
	model string
}

func NewOpenAIClient(apiKey, model string) *OpenAIClient {
	return NewOpenAIClientWithConfig(openai.DefaultConfig(apiKey), model)
}

func NewOpenAIClientWithConfig(cfg openai.ClientConfig, model string) *OpenAIClient {
	return &OpenAIClient{api: openai.NewClientWithConfig(cfg), model: model}
}

func (o *OpenAIClient) Extract(ctx context.Context, a agents.Agent, input string) (json.RawMessage, error) {
	req := openai.ChatCompletionRequest{
		Model: o.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: a.SystemPrompt()},
			{Role: openai.ChatMessageRoleUser, Content: a.UserPrompt(input)},
		},
		Tools: []openai.Tool{{
			Type: openai.ToolTypeFunction,
			Function: &openai.FunctionDefinition{
				Name:        a.Function,
				Description: a.Description,
				Parameters:  a.Parameters,
			},
		}},
		ToolChoice: openai.ToolChoice{
			Type:     openai.ToolTypeFunction,
			Function: openai.ToolFunction{Name: a.Function},
		},
		MaxTokens:   8192,
		Temperature: 0.1,
	}

	log := logger.FromContext(ctx).With("agent", a.Name, "model", o.model)
	start := time.Now()
	resp, err := o.api.CreateChatCompletion(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("openai %s: %w", a.Name, err)
	}

	u := NewUsage(o.model, resp.Usage, time.Since(start))
	log.Info("token usage",
		"prompt_tokens", u.PromptTokens,
		"completion_tokens", u.CompletionTokens,
		"total_tokens", u.TotalTokens,
		"duration", u.Duration,
		"cost_usd", u.Cost,
	)

	if len(resp.Choices) == 0 || len(resp.Choices[0].Message.ToolCalls) == 0 {
		return nil, fmt.Errorf("openai %s: %w", a.Name, ErrNoToolCall)
	}
	out, err := DecodeObject(resp.Choices[0].Message.ToolCalls[0].Function.Arguments)
	if err != nil {
		return nil, fmt.Errorf("openai %s: %w", a.Name, err)
	}
	return out, nil
}
