package openai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	goopenai "github.com/sashabaranov/go-openai"

	"triage-backend/internal/llm"
	"triage-backend/internal/shared/telemetry"
)

const defaultTimeout = 60 * time.Second

// Client implements llm.Client on any OpenAI-compatible Chat Completions API.
type Client struct {
	api         *goopenai.Client
	model       string
	temperature float32
}

// Options configures a Client.
type Options struct {
	APIKey string
	Model  string
	// BaseURL points at an OpenAI-compatible endpoint. Empty means api.openai.com.
	BaseURL string
	Timeout time.Duration
	// HTTPClient overrides the transport; Timeout is ignored when set.
	HTTPClient *http.Client
}

// NewClient constructs a new OpenAI client.
func NewClient(opts Options) (*Client, error) {
	if strings.TrimSpace(opts.Model) == "" {
		return nil, fmt.Errorf("LLM_MODEL is required for OpenAI")
	}
	if strings.TrimSpace(opts.APIKey) == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY is required")
	}
	cfg := goopenai.DefaultConfig(opts.APIKey)
	if base := strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/"); base != "" {
		cfg.BaseURL = base
	}
	if opts.HTTPClient != nil {
		cfg.HTTPClient = opts.HTTPClient
	} else {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		cfg.HTTPClient = &http.Client{Timeout: timeout}
	}
	return &Client{
		api:         goopenai.NewClientWithConfig(cfg),
		model:       strings.TrimSpace(opts.Model),
		temperature: 0.2,
	}, nil
}

// CompleteJSON sends prompt and returns the model's JSON object. Output that
// is not valid JSON gets one repair request before failing.
func (c *Client) CompleteJSON(ctx context.Context, prompt llm.Prompt) (json.RawMessage, error) {
	model := c.model
	if strings.TrimSpace(prompt.Model) != "" {
		model = strings.TrimSpace(prompt.Model)
	}

	if fix, ok := llm.FixJSONFromContext(ctx); ok {
		return c.fixJSON(ctx, prompt, model, fix)
	}

	raw, err := c.completeOnce(ctx, prompt.Name, model, buildMessages(prompt))
	if err != nil {
		return nil, err
	}
	if json.Valid(raw) {
		return raw, nil
	}
	return c.fixJSON(ctx, prompt, model, llm.FixJSON{Raw: string(raw)})
}

// fixJSON resends the original instructions, which carry the schema, with
// the rejected output and the reason it was rejected. Images are not resent.
func (c *Client) fixJSON(ctx context.Context, prompt llm.Prompt, model string, fix llm.FixJSON) (json.RawMessage, error) {
	messages := []goopenai.ChatCompletionMessage{
		{Role: goopenai.ChatMessageRoleSystem, Content: llm.SystemPromptFixJSON},
	}
	if strings.TrimSpace(prompt.User) != "" {
		messages = append(messages, goopenai.ChatCompletionMessage{
			Role:    goopenai.ChatMessageRoleUser,
			Content: prompt.User,
		})
	}
	messages = append(messages, goopenai.ChatCompletionMessage{
		Role:    goopenai.ChatMessageRoleUser,
		Content: llm.FixJSONUserPrompt(fix),
	})
	fixed, err := c.completeOnce(ctx, prompt.Name+".fix_json", model, messages)
	if err != nil {
		return nil, err
	}
	if !json.Valid(fixed) {
		return nil, fmt.Errorf("invalid JSON from OpenAI")
	}
	return fixed, nil
}

func (c *Client) completeOnce(ctx context.Context, name, model string, messages []goopenai.ChatCompletionMessage) (json.RawMessage, error) {
	start := time.Now()
	resp, err := c.api.CreateChatCompletion(ctx, goopenai.ChatCompletionRequest{
		Model:       model,
		Messages:    messages,
		Temperature: c.temperature,
		ResponseFormat: &goopenai.ChatCompletionResponseFormat{
			Type: goopenai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		return nil, classifyError(err)
	}
	logUsage(name, model, resp.Usage, time.Since(start))

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("openai response missing choices")
	}
	content := stripCodeFence(resp.Choices[0].Message.Content)
	if content == "" {
		return nil, fmt.Errorf("openai response empty content")
	}
	return json.RawMessage(content), nil
}

func buildMessages(prompt llm.Prompt) []goopenai.ChatCompletionMessage {
	system := prompt.System
	if strings.TrimSpace(system) == "" {
		system = llm.SystemPromptJSON
	}
	messages := []goopenai.ChatCompletionMessage{
		{Role: goopenai.ChatMessageRoleSystem, Content: system},
	}
	if prompt.ImageDataURI == "" {
		return append(messages, goopenai.ChatCompletionMessage{
			Role:    goopenai.ChatMessageRoleUser,
			Content: prompt.User,
		})
	}
	return append(messages, goopenai.ChatCompletionMessage{
		Role: goopenai.ChatMessageRoleUser,
		MultiContent: []goopenai.ChatMessagePart{
			{Type: goopenai.ChatMessagePartTypeText, Text: prompt.User},
			{
				Type: goopenai.ChatMessagePartTypeImageURL,
				ImageURL: &goopenai.ChatMessageImageURL{
					URL:    prompt.ImageDataURI,
					Detail: goopenai.ImageURLDetailLow,
				},
			},
		},
	})
}

// classifyError keeps the HTTP status visible in the message so retry logic
// can match on it.
func classifyError(err error) error {
	var apiErr *goopenai.APIError
	if errors.As(err, &apiErr) {
		return fmt.Errorf("openai error: http status %d: %w", apiErr.HTTPStatusCode, err)
	}
	var reqErr *goopenai.RequestError
	if errors.As(err, &reqErr) {
		return fmt.Errorf("openai error: http status %d: %w", reqErr.HTTPStatusCode, err)
	}
	if errors.Is(err, context.DeadlineExceeded) || strings.Contains(err.Error(), "Client.Timeout") {
		return fmt.Errorf("openai request timeout: %w", err)
	}
	return err
}

func stripCodeFence(content string) string {
	s := strings.TrimSpace(content)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimPrefix(s, "json")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

func logUsage(name, model string, usage goopenai.Usage, elapsed time.Duration) {
	telemetry.Info("llm.response", map[string]any{
		"prompt":            name,
		"model":             model,
		"prompt_tokens":     usage.PromptTokens,
		"completion_tokens": usage.CompletionTokens,
		"total_tokens":      usage.TotalTokens,
		"duration_ms":       elapsed.Milliseconds(),
	})
}
