// Package claude wraps the Anthropic SDK behind the three calls the
// chat pipeline needs: a cheap single-word classification, a tool
// selection round, and a streamed text response.
package claude

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	anthropic "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/klappy/unfoldingtheword/internal/config"
	"github.com/klappy/unfoldingtheword/internal/domain"
)

// ToolSpec declares one tool offered to the model. Properties is the
// JSON-schema properties object; Required lists mandatory ones.
type ToolSpec struct {
	Name        string
	Description string
	Properties  map[string]any
	Required    []string
}

// Turn is one prior message in the conversation history.
type Turn struct {
	Role    domain.MessageRole
	Content string
}

// llmRecorder receives the duration of each model API call. Satisfied
// by *metrics.Metrics; nil disables instrumentation.
type llmRecorder interface {
	ObserveLLMCall(operation string, duration time.Duration)
}

// Client is the Anthropic API adapter.
type Client struct {
	api           anthropic.Client
	log           *slog.Logger
	metrics       llmRecorder
	model         anthropic.Model
	classifyModel anthropic.Model
	maxTokens     int64
}

// NewClient creates a Client from LLMConfig.
func NewClient(cfg config.LLMConfig, logger *slog.Logger, m llmRecorder) *Client {
	return &Client{
		api:           anthropic.NewClient(option.WithAPIKey(cfg.APIKey)),
		log:           logger.With("adapter", "claude"),
		metrics:       m,
		model:         anthropic.Model(cfg.Model),
		classifyModel: anthropic.Model(cfg.ClassifyModel),
		maxTokens:     int64(cfg.MaxTokens),
	}
}

func (c *Client) observe(operation string, start time.Time) {
	if c.metrics != nil {
		c.metrics.ObserveLLMCall(operation, time.Since(start))
	}
}

// Classify asks the cheap model for a one-word answer. The caller's
// system prompt constrains the vocabulary; whatever comes back is
// lowercased and trimmed to its first token.
func (c *Client) Classify(ctx context.Context, system, message string) (string, error) {
	defer c.observe("classify", time.Now())

	msg, err := c.api.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     c.classifyModel,
		MaxTokens: 8,
		System:    []anthropic.TextBlockParam{{Text: system}},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(message)),
		},
	})
	if err != nil {
		return "", fmt.Errorf("claude: classify: %w", err)
	}

	text := firstText(msg)
	if text == "" {
		return "", fmt.Errorf("claude: classify: empty response")
	}

	word := strings.ToLower(strings.TrimSpace(text))
	if i := strings.IndexAny(word, " \t\n"); i >= 0 {
		word = word[:i]
	}
	return word, nil
}

// SelectTools runs one non-streaming round with the given tools and
// returns every tool_use block as a domain ToolCall, plus any text the
// model produced alongside them. Tool-use blocks with unparseable input
// are skipped, not fatal.
func (c *Client) SelectTools(ctx context.Context, system string, history []Turn, message string, tools []ToolSpec) ([]domain.ToolCall, string, error) {
	defer c.observe("select_tools", time.Now())

	params := anthropic.MessageNewParams{
		Model:     c.model,
		MaxTokens: c.maxTokens,
		System:    []anthropic.TextBlockParam{{Text: system}},
		Messages:  buildMessages(history, message),
		Tools:     convertTools(tools),
	}

	msg, err := c.api.Messages.New(ctx, params)
	if err != nil {
		return nil, "", fmt.Errorf("claude: select tools: %w", err)
	}

	var calls []domain.ToolCall
	var text strings.Builder
	for _, block := range msg.Content {
		switch b := block.AsAny().(type) {
		case anthropic.TextBlock:
			text.WriteString(b.Text)
		case anthropic.ToolUseBlock:
			var args map[string]any
			if err := json.Unmarshal(b.Input, &args); err != nil {
				c.log.WarnContext(ctx, "unparseable tool input",
					slog.String("tool", b.Name), slog.String("error", err.Error()))
				continue
			}
			calls = append(calls, domain.ToolCall{Tool: b.Name, Args: args})
		}
	}

	return calls, text.String(), nil
}

// StreamText streams one response, invoking onDelta for every text
// fragment as it arrives, and returns the accumulated full text. A
// non-nil error from onDelta aborts the stream.
func (c *Client) StreamText(ctx context.Context, system string, history []Turn, message string, onDelta func(string) error) (string, error) {
	defer c.observe("stream_text", time.Now())

	stream := c.api.Messages.NewStreaming(ctx, anthropic.MessageNewParams{
		Model:     c.model,
		MaxTokens: c.maxTokens,
		System:    []anthropic.TextBlockParam{{Text: system}},
		Messages:  buildMessages(history, message),
	})

	msg := anthropic.Message{}
	for stream.Next() {
		event := stream.Current()
		if err := msg.Accumulate(event); err != nil {
			return "", fmt.Errorf("claude: accumulate stream: %w", err)
		}

		if deltaEvent, ok := event.AsAny().(anthropic.ContentBlockDeltaEvent); ok {
			if delta, ok := deltaEvent.Delta.AsAny().(anthropic.TextDelta); ok && delta.Text != "" {
				if err := onDelta(delta.Text); err != nil {
					return firstText(&msg), err
				}
			}
		}
	}
	if err := stream.Err(); err != nil {
		return "", fmt.Errorf("claude: stream: %w", err)
	}

	return firstText(&msg), nil
}

func buildMessages(history []Turn, message string) []anthropic.MessageParam {
	messages := make([]anthropic.MessageParam, 0, len(history)+1)
	for _, turn := range history {
		block := anthropic.NewTextBlock(turn.Content)
		if turn.Role == domain.RoleAssistant {
			messages = append(messages, anthropic.NewAssistantMessage(block))
		} else {
			messages = append(messages, anthropic.NewUserMessage(block))
		}
	}
	return append(messages, anthropic.NewUserMessage(anthropic.NewTextBlock(message)))
}

func convertTools(tools []ToolSpec) []anthropic.ToolUnionParam {
	if len(tools) == 0 {
		return nil
	}
	result := make([]anthropic.ToolUnionParam, len(tools))
	for i, tool := range tools {
		schema := anthropic.ToolInputSchemaParam{Properties: tool.Properties}
		if len(tool.Required) > 0 {
			schema.Required = tool.Required
		}
		result[i] = anthropic.ToolUnionParamOfTool(schema, tool.Name)
		if tool.Description != "" {
			result[i].OfTool.Description = anthropic.String(tool.Description)
		}
	}
	return result
}

func firstText(msg *anthropic.Message) string {
	var text strings.Builder
	for _, block := range msg.Content {
		if b, ok := block.AsAny().(anthropic.TextBlock); ok {
			text.WriteString(b.Text)
		}
	}
	return text.String()
}
