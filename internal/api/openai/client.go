package openai

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/sashabaranov/go-openai"
)

const maxNarrativeTokens = 600

// Client wraps the OpenAI API client as a recommendation narrator. Two
// variants exist: the standard endpoint and the Azure endpoint; which one
// runs is fixed at startup by configuration, and callers only see the
// Narrator capability.
type Client struct {
	client *openai.Client
	model  string
	logger zerolog.Logger
}

// NewClient creates a narrator against the standard OpenAI endpoint.
func NewClient(apiKey, model string) *Client {
	return &Client{
		client: openai.NewClient(apiKey),
		model:  model,
		logger: log.With().Str("component", "openai_client").Str("endpoint", "standard").Logger(),
	}
}

// NewAzureClient creates a narrator against an Azure OpenAI endpoint.
func NewAzureClient(apiKey, endpoint, model string) *Client {
	cfg := openai.DefaultAzureConfig(apiKey, endpoint)
	return &Client{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
		logger: log.With().Str("component", "openai_client").Str("endpoint", "azure").Logger(),
	}
}

// Narrate sends the prompt pair and returns the completion text.
func (c *Client) Narrate(ctx context.Context, system, user string) (string, error) {
	c.logger.Debug().Str("model", c.model).Msg("Requesting completion")

	resp, err := c.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: c.model,
			Messages: []openai.ChatCompletionMessage{
				{Role: openai.ChatMessageRoleSystem, Content: system},
				{Role: openai.ChatMessageRoleUser, Content: user},
			},
			MaxTokens:   maxNarrativeTokens,
			Temperature: 0,
		},
	)
	if err != nil {
		c.logger.Error().Err(err).Msg("OpenAI API error")
		return "", err
	}
	if len(resp.Choices) == 0 {
		c.logger.Warn().Msg("OpenAI returned empty choices")
		return "", fmt.Errorf("empty completion")
	}

	return resp.Choices[0].Message.Content, nil
}
