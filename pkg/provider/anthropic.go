package provider

import (
	"context"
	"errors"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/cberlack/himmybot/pkg/chat"
	"github.com/cberlack/himmybot/pkg/config"
)

const defaultAnthropicModel = anthropic.ModelClaude3_7SonnetLatest

// replyMaxTokens caps one assistant turn; persona replies are short.
const replyMaxTokens = 1024

// anthropicCompleter calls the Anthropic messages API.
type anthropicCompleter struct {
	client *anthropic.Client
	model  anthropic.Model
}

func newAnthropic(cfg config.Config) (*anthropicCompleter, error) {
	if cfg.AnthropicAPIKey == "" {
		return nil, errors.New("ANTHROPIC_API_KEY is not set")
	}

	model := defaultAnthropicModel
	if cfg.Model != "" {
		model = anthropic.Model(cfg.Model)
	}

	client := anthropic.NewClient(option.WithAPIKey(cfg.AnthropicAPIKey))
	return &anthropicCompleter{client: &client, model: model}, nil
}

// Complete sends the conversation and returns the assistant reply. The
// system entry travels in the request's system field, not as a message.
func (c *anthropicCompleter) Complete(ctx context.Context, messages []chat.Message) (string, error) {
	params := anthropic.MessageNewParams{
		Model:     c.model,
		MaxTokens: int64(replyMaxTokens),
	}

	for _, msg := range messages {
		switch msg.Role {
		case chat.RoleSystem:
			params.System = append(params.System, anthropic.TextBlockParam{Text: msg.Content})
		case chat.RoleUser:
			params.Messages = append(params.Messages, anthropic.NewUserMessage(anthropic.NewTextBlock(msg.Content)))
		case chat.RoleAssistant:
			params.Messages = append(params.Messages, anthropic.NewAssistantMessage(anthropic.NewTextBlock(msg.Content)))
		}
	}

	msg, err := c.client.Messages.New(ctx, params)
	if err != nil {
		return "", err
	}

	var reply strings.Builder
	for _, block := range msg.Content {
		if text, ok := block.AsAny().(anthropic.TextBlock); ok {
			reply.WriteString(text.Text)
		}
	}
	if reply.Len() == 0 {
		return "", errors.New("empty message content")
	}
	return reply.String(), nil
}
