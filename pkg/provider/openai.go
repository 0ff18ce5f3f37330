package provider

import (
	"context"
	"errors"
	"io"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/cberlack/himmybot/pkg/chat"
	"github.com/cberlack/himmybot/pkg/config"
)

// openAICompleter calls the OpenAI chat completions API.
type openAICompleter struct {
	client       openai.Client
	model        string
	stream       bool
	streamWriter io.Writer
}

func newOpenAI(cfg config.Config, streamWriter io.Writer) (*openAICompleter, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("OPENAI_API_KEY is not set")
	}
	if cfg.Model == "" {
		return nil, errors.New("OPENAI_MODEL is not set")
	}

	opts := []option.RequestOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	return &openAICompleter{
		client:       openai.NewClient(opts...),
		model:        cfg.Model,
		stream:       cfg.Stream,
		streamWriter: streamWriter,
	}, nil
}

// Complete sends the conversation and returns the assistant reply. In
// streaming mode deltas are written to the stream writer as they arrive and
// the accumulated content is returned.
func (c *openAICompleter) Complete(ctx context.Context, messages []chat.Message) (string, error) {
	params := openai.ChatCompletionNewParams{
		Model:    openai.ChatModel(c.model),
		Messages: toOpenAIMessages(messages),
	}

	if !c.stream {
		completion, err := c.client.Chat.Completions.New(ctx, params)
		if err != nil {
			return "", err
		}
		if len(completion.Choices) == 0 {
			return "", errors.New("empty completion choices")
		}
		return completion.Choices[0].Message.Content, nil
	}

	out := c.streamWriter
	if out == nil {
		out = io.Discard
	}

	streamResp := c.client.Chat.Completions.NewStreaming(ctx, params)
	defer streamResp.Close()

	acc := openai.ChatCompletionAccumulator{}
	for streamResp.Next() {
		chunk := streamResp.Current()
		if !acc.AddChunk(chunk) {
			return "", errors.New("failed to accumulate stream")
		}
		if len(chunk.Choices) > 0 {
			if delta := chunk.Choices[0].Delta; delta.Content != "" {
				_, _ = io.WriteString(out, delta.Content)
			}
		}
	}
	if err := streamResp.Err(); err != nil {
		return "", err
	}
	if len(acc.Choices) == 0 {
		return "", errors.New("empty streamed completion choices")
	}
	return acc.Choices[0].Message.Content, nil
}

func toOpenAIMessages(messages []chat.Message) []openai.ChatCompletionMessageParamUnion {
	out := make([]openai.ChatCompletionMessageParamUnion, 0, len(messages))
	for _, msg := range messages {
		switch msg.Role {
		case chat.RoleSystem:
			out = append(out, openai.SystemMessage(msg.Content))
		case chat.RoleUser:
			out = append(out, openai.UserMessage(msg.Content))
		case chat.RoleAssistant:
			out = append(out, openai.AssistantMessage(msg.Content))
		}
	}
	return out
}
