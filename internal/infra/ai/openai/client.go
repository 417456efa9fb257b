package openai

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/sashabaranov/go-openai"

	"github.com/danielss-dev/critica/internal/config"
	"github.com/danielss-dev/critica/internal/domain/analysis"
)

// Client sends prompts to an OpenAI-compatible chat completion endpoint.
// Every request is streamed; chunks accumulate in arrival order and are
// optionally mirrored to EchoTo as they come in.
type Client struct {
	*openai.Client
	Model     string
	MaxTokens int
	EchoTo    io.Writer
}

var _ analysis.Client = (*Client)(nil)

func NewClient(cfg config.Config) *Client {
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}
	return &Client{
		Client:    openai.NewClientWithConfig(clientConfig),
		Model:     cfg.Model,
		MaxTokens: cfg.MaxCompletionTokens,
		EchoTo:    os.Stdout,
	}
}

// Complete issues one streamed request and returns the full concatenated
// text. No JSON interpretation happens here and there is no retry.
func (c *Client) Complete(ctx context.Context, prompt string, echo bool) (string, error) {
	req := openai.ChatCompletionRequest{
		Model: c.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	}
	// Reasoning models (o1/o3/o4/gpt-5*) take MaxCompletionTokens instead of MaxTokens
	if strings.HasPrefix(c.Model, "o1") || strings.HasPrefix(c.Model, "o3") || strings.HasPrefix(c.Model, "o4") || strings.HasPrefix(c.Model, "gpt-5") {
		req.MaxCompletionTokens = c.MaxTokens
	} else {
		req.MaxTokens = c.MaxTokens
	}

	stream, err := c.CreateChatCompletionStream(ctx, req)
	if err != nil {
		return "", wrapAPIError(err)
	}
	defer stream.Close()

	var full strings.Builder
	for {
		chunk, err := stream.Recv()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", wrapAPIError(err)
		}
		if len(chunk.Choices) == 0 {
			continue
		}
		delta := chunk.Choices[0].Delta.Content
		if delta == "" {
			continue
		}
		full.WriteString(delta)
		if echo {
			fmt.Fprint(c.EchoTo, delta)
		}
	}
	if echo {
		fmt.Fprintln(c.EchoTo)
	}

	return full.String(), nil
}

// wrapAPIError maps quota errors onto the domain sentinel and annotates the rest.
func wrapAPIError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) && apiErr.HTTPStatusCode == http.StatusTooManyRequests {
		return fmt.Errorf("%w: %v", analysis.ErrQuotaExceeded, err)
	}
	return fmt.Errorf("chat completion stream failed: %w", err)
}
