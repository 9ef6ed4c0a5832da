// Package llm wraps the Gemini API behind a small text-in/text-out client
// and provides the defensive JSON extraction the pipelines rely on.
package llm

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/time/rate"
	"google.golang.org/genai"
)

var (
	// ErrNoCredential means GEMINI_API_KEY was not configured. Fatal per
	// request; never retried.
	ErrNoCredential = errors.New("gemini API key not configured")
	// ErrEmptyResponse means the model call succeeded but returned no text.
	ErrEmptyResponse = errors.New("empty response from model")
)

type Client struct {
	client  *genai.Client
	model   string
	timeout time.Duration
	limiter *rate.Limiter
}

// NewClient builds a Gemini client. An empty apiKey is allowed: the client is
// created but every Generate call fails with ErrNoCredential, so the rest of
// the system wires up normally on machines without a key.
func NewClient(ctx context.Context, apiKey, model string, timeout time.Duration) (*Client, error) {
	c := &Client{
		model:   model,
		timeout: timeout,
		// A burst of job creations must not become a burst of API calls.
		limiter: rate.NewLimiter(rate.Limit(2), 4),
	}
	if apiKey == "" {
		return c, nil
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	c.client = client
	return c, nil
}

// Generate sends a prompt and returns the model's text completion. Each call
// carries its own deadline so a hung provider request cannot occupy a worker
// indefinitely.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	if c.client == nil {
		return "", ErrNoCredential
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	if err := c.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("gemini call: %w", err)
	}

	resp, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("gemini call: %w", err)
	}

	text := resp.Text()
	if text == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}
