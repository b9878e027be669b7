package slack

import (
	"net/http"
	"time"
)

// defaultRequestTimeout is the default timeout for Slack webhook requests
const defaultRequestTimeout = 10 * time.Second

// Client posts bulk scan summaries to a Slack incoming webhook
type Client struct {
	webhookURL string
	httpClient *http.Client
}

// Option configures the Client
type Option func(*Client)

// WithRequestTimeout sets the timeout of the default HTTP client
func WithRequestTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.httpClient.Timeout = timeout
		}
	}
}

// WithHTTPClient sets a custom HTTP client for the Slack client
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// New creates a new Slack webhook client
func New(webhookURL string, opts ...Option) (*Client, error) {
	if webhookURL == "" {
		return nil, ErrMissingWebhookURL
	}

	client := &Client{
		webhookURL: webhookURL,
		httpClient: &http.Client{Timeout: defaultRequestTimeout},
	}

	for _, opt := range opts {
		opt(client)
	}

	return client, nil
}
