package slack

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/theopenlane/httpsling"
)

// Block Kit block and text object types used by scan summaries
const (
	blockHeader  = "header"
	blockSection = "section"
	blockDivider = "divider"
	textPlain    = "plain_text"
	textMarkdown = "mrkdwn"
)

// Message is the webhook payload; Text is shown where blocks are not rendered
type Message struct {
	Text   string  `json:"text"`
	Blocks []Block `json:"blocks,omitempty"`
}

// Block is one Block Kit block of a summary: a header, a divider, or a
// section carrying either Text or a grid of Fields
type Block struct {
	Type   string       `json:"type"`
	Text   *TextObject  `json:"text,omitempty"`
	Fields []TextObject `json:"fields,omitempty"`
}

// TextObject is a plain_text or mrkdwn string
type TextObject struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// Send posts msg to the webhook. Only a 200 response counts as delivered.
func (c *Client) Send(ctx context.Context, msg Message) error {
	if strings.TrimSpace(msg.Text) == "" {
		return ErrEmptyMessage
	}

	requester := httpsling.MustNew(
		httpsling.URL(c.webhookURL),
		httpsling.Post(),
		httpsling.JSONBody(msg),
		httpsling.WithHTTPClient(c.httpClient),
	)

	resp, err := requester.SendWithContext(ctx)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNotificationFailed, err)
	}
	defer resp.Body.Close() //nolint:errcheck // response body close error is non-critical

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: status %d", ErrUnexpectedStatus, resp.StatusCode)
	}

	log.Debug().Int("blocks", len(msg.Blocks)).Msg("slack summary delivered")

	return nil
}
