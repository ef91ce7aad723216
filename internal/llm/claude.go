package llm

import (
	"context"
	"errors"
	"fmt"

	"github.com/liushuangls/go-anthropic/v2"
)

type ClaudeClient struct {
	client *anthropic.Client
	model  string
}

func NewClaudeClient(apiKey string, model string, baseURL string) *ClaudeClient {
	var opts []anthropic.ClientOption
	if baseURL != "" {
		opts = append(opts, anthropic.WithBaseURL(baseURL))
	}

	client := anthropic.NewClient(apiKey, opts...)

	return &ClaudeClient{
		client: client,
		model:  model,
	}
}

func (c *ClaudeClient) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := c.client.CreateMessages(ctx, anthropic.MessagesRequest{
		Model: anthropic.Model(c.model),
		Messages: []anthropic.Message{
			{
				Role: anthropic.RoleUser,
				Content: []anthropic.MessageContent{
					anthropic.NewTextMessageContent(prompt),
				},
			},
		},
		MaxTokens: 8192,
	})
	if err != nil {
		return "", classifyClaudeErr(err)
	}

	if len(resp.Content) > 0 && resp.Content[0].Text != nil {
		return *resp.Content[0].Text, nil
	}
	return "", fmt.Errorf("no response content")
}

func classifyClaudeErr(err error) error {
	var apiErr *anthropic.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.Type {
		case anthropic.ErrTypeRateLimit, anthropic.ErrTypeOverloaded:
			return &Error{Kind: KindRateLimit, Err: err}
		case anthropic.ErrTypeAuthentication, anthropic.ErrTypePermission:
			return &Error{Kind: KindAuth, Err: err}
		}
		return err
	}

	var reqErr *anthropic.RequestError
	if errors.As(err, &reqErr) {
		switch reqErr.StatusCode {
		case 429, 529:
			return &Error{Kind: KindRateLimit, Err: err}
		case 401, 403:
			return &Error{Kind: KindAuth, Err: err}
		}
	}
	return err
}
