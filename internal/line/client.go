// internal/line/client.go
package line

import (
	"context"
	"fmt"

	"github.com/go-resty/resty/v2"
)

// DefaultAPIBase is the messaging API endpoint used when the configuration
// does not override it (tests point it at a local server).
const DefaultAPIBase = "https://api.line.me"

// Message is one outbound text payload, optionally carrying a quick-reply
// menu. Field names follow the messaging API wire format.
type Message struct {
	Type       string      `json:"type"`
	Text       string      `json:"text"`
	QuickReply *QuickReply `json:"quickReply,omitempty"`
}

// QuickReply is a row of tappable choice buttons attached to a message.
type QuickReply struct {
	Items []QuickReplyItem `json:"items"`
}

// QuickReplyItem is a single quick-reply button.
type QuickReplyItem struct {
	Type   string      `json:"type"`
	Action QuickAction `json:"action"`
}

// QuickAction sends its Text back as an ordinary user message when tapped.
type QuickAction struct {
	Type  string `json:"type"`
	Label string `json:"label"`
	Text  string `json:"text"`
}

// TextMessage builds a plain text message.
func TextMessage(text string) Message {
	return Message{Type: "text", Text: text}
}

// Client delivers replies through the messaging platform's reply endpoint.
type Client struct {
	http *resty.Client
}

// NewClient creates a reply client authenticated with the channel access
// token. baseURL is normally DefaultAPIBase.
func NewClient(baseURL, channelToken string) *Client {
	return &Client{
		http: resty.New().
			SetBaseURL(baseURL).
			SetAuthToken(channelToken).
			SetHeader("Content-Type", "application/json"),
	}
}

// Reply answers one webhook event. The platform accepts at most five
// messages per reply token, and a token is single-use.
func (c *Client) Reply(ctx context.Context, replyToken string, messages []Message) error {
	body := struct {
		ReplyToken string    `json:"replyToken"`
		Messages   []Message `json:"messages"`
	}{ReplyToken: replyToken, Messages: messages}

	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(body).
		Post("/v2/bot/message/reply")
	if err != nil {
		return fmt.Errorf("failed to deliver reply: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("reply rejected: %s: %s", resp.Status(), resp.String())
	}
	return nil
}
