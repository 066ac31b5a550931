// Package push sends notifications to an Expo-compatible push gateway.
//
// The client makes a single attempt per call. Retrying is left to the caller.
package push

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sony/gobreaker/v2"
)

var (
	ErrInvalidToken   = errors.New("invalid push token")
	ErrDeliveryFailed = errors.New("push delivery failed")
)

const (
	DefaultEndpoint = "https://exp.host/--/api/v2/push/send"
	DefaultTimeout  = 10 * time.Second

	defaultSound    = "default"
	defaultPriority = "high"

	ticketOK    = "ok"
	ticketError = "error"
)

var tokenPrefixes = []string{"ExponentPushToken[", "ExpoPushToken["}

// Message is a single push notification.
type Message struct {
	To       string         `json:"to"`
	Title    string         `json:"title"`
	Body     string         `json:"body"`
	Data     map[string]any `json:"data,omitempty"`
	Sound    string         `json:"sound,omitempty"`
	Priority string         `json:"priority,omitempty"`
	Badge    *int           `json:"badge,omitempty"`
}

// Ticket is the gateway's answer for one message.
type Ticket struct {
	Status  string         `json:"status"`
	ID      string         `json:"id,omitempty"`
	Message string         `json:"message,omitempty"`
	Details map[string]any `json:"details,omitempty"`
}

type sendResponse struct {
	Data   []Ticket `json:"data"`
	Errors []struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"errors"`
}

// Config holds the gateway settings.
type Config struct {
	Endpoint    string
	AccessToken string        // sent as a bearer token when set
	Timeout     time.Duration // per request, DefaultTimeout when zero
}

// Client talks to the push gateway.
type Client struct {
	endpoint    string
	accessToken string
	http        *http.Client
	breaker     *gobreaker.CircuitBreaker[[]Ticket]
}

// NewClient creates a push client with its own circuit breaker.
func NewClient(cfg Config) *Client {
	if cfg.Endpoint == "" {
		cfg.Endpoint = DefaultEndpoint
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}

	cb := gobreaker.NewCircuitBreaker[[]Ticket](gobreaker.Settings{
		Name:        "push-gateway",
		MaxRequests: 1,
		Interval:    60 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures > 5
		},
	})

	return &Client{
		endpoint:    cfg.Endpoint,
		accessToken: cfg.AccessToken,
		http:        &http.Client{Timeout: cfg.Timeout},
		breaker:     cb,
	}
}

// ValidToken reports whether token looks like a gateway push token.
func ValidToken(token string) bool {
	if !strings.HasSuffix(token, "]") {
		return false
	}

	for _, p := range tokenPrefixes {
		if strings.HasPrefix(token, p) && len(token) > len(p)+1 {
			return true
		}
	}

	return false
}

// Send delivers one message.
//
// A malformed token fails with ErrInvalidToken without touching the network.
// Transport failures and gateway-reported errors both wrap ErrDeliveryFailed.
func (c *Client) Send(ctx context.Context, msg Message) (Ticket, error) {
	tickets, err := c.SendBulk(ctx, []Message{msg})
	if err != nil {
		if len(tickets) > 0 {
			return tickets[0], err
		}
		return Ticket{}, err
	}

	return tickets[0], nil
}

// SendBulk delivers several messages in one request.
//
// Tickets are returned in message order. If any ticket reports an error, the
// returned error wraps ErrDeliveryFailed and the tickets are still returned.
func (c *Client) SendBulk(ctx context.Context, msgs []Message) ([]Ticket, error) {
	if len(msgs) == 0 {
		return nil, nil
	}

	payload := make([]Message, len(msgs))
	for i, m := range msgs {
		if !ValidToken(m.To) {
			return nil, fmt.Errorf("%w: %q", ErrInvalidToken, m.To)
		}

		if m.Sound == "" {
			m.Sound = defaultSound
		}
		if m.Priority == "" {
			m.Priority = defaultPriority
		}
		if m.Data == nil {
			m.Data = map[string]any{}
		}
		payload[i] = m
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal push request: %w", err)
	}

	tickets, err := c.breaker.Execute(func() ([]Ticket, error) {
		return c.post(ctx, body)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, fmt.Errorf("%w: gateway unavailable: %v", ErrDeliveryFailed, err)
		}
		return nil, err
	}

	if len(tickets) != len(msgs) {
		return tickets, fmt.Errorf("%w: expected %d tickets, got %d", ErrDeliveryFailed, len(msgs), len(tickets))
	}

	var errs []error
	for i, t := range tickets {
		if t.Status != ticketOK {
			errs = append(errs, fmt.Errorf("%w: message %d: %s", ErrDeliveryFailed, i, ticketReason(t)))
		}
	}

	return tickets, errors.Join(errs...)
}

func (c *Client) post(ctx context.Context, body []byte) ([]Ticket, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build push request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.accessToken)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDeliveryFailed, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("%w: read response: %v", ErrDeliveryFailed, err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: gateway responded %s", ErrDeliveryFailed, resp.Status)
	}

	var out sendResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("%w: decode response: %v", ErrDeliveryFailed, err)
	}

	if len(out.Errors) > 0 {
		return nil, fmt.Errorf("%w: %s: %s", ErrDeliveryFailed, out.Errors[0].Code, out.Errors[0].Message)
	}

	return out.Data, nil
}

func ticketReason(t Ticket) string {
	if t.Status == ticketError && t.Message != "" {
		return t.Message
	}

	return fmt.Sprintf("status %q", t.Status)
}
