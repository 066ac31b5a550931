// Package telegram posts operator alerts to chats through the Bot API.
package telegram

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// DefaultBaseURL is the Telegram Bot API root.
const DefaultBaseURL = "https://api.telegram.org"

// Client is bound to one bot.
type Client struct {
	token   string
	baseURL string
	client  *http.Client
}

// NewClient talks to the public Bot API.
func NewClient(token string) *Client {
	return NewClientWithURL(token, DefaultBaseURL)
}

// NewClientWithURL points the client at another API root, such as a local test server.
func NewClientWithURL(token, baseURL string) *Client {
	return &Client{
		token:   token,
		baseURL: baseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

type sendMessageRequest struct {
	ChatID string `json:"chat_id"`
	Text   string `json:"text"`
}

// Send posts msg to the chat with id to. Any status other than 200 is an error.
func (c *Client) Send(to string, msg string) error {
	url := fmt.Sprintf("%s/bot%s/sendMessage", c.baseURL, c.token)

	reqBody := sendMessageRequest{ChatID: to, Text: msg}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	resp, err := c.client.Post(url, "application/json", bytes.NewBuffer(body))
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("telegram API error: %s", resp.Status)
	}

	return nil
}
