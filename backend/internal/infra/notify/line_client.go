package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"packsite/backend/internal/config"
)

const (
	envNotifyEndpoint  = "NOTIFY_PUSH_ENDPOINT"
	envNotifyToken     = "NOTIFY_CHANNEL_TOKEN"
	envNotifyRecipient = "NOTIFY_RECIPIENT_ID"
)

const (
	defaultEndpoint    = "https://api.line.me/v2/bot/message/push"
	defaultPushTimeout = 10 * time.Second
)

// Pusher delivers a pre-formatted text message to a chat recipient.
// Implementations are fire-and-forget from the caller's point of view:
// callers log a returned error and move on, they never retry or fail
// the surrounding operation over it.
type Pusher interface {
	PushMessage(ctx context.Context, recipientID, text string) error
}

// Options holds the webhook connection settings.
type Options struct {
	Endpoint    string
	Token       string
	RecipientID string
	Timeout     time.Duration
}

// LoadOptionsFromEnv reads the chat-webhook settings. The boolean
// return reports whether the integration is configured; leaving it off
// is a supported deployment mode.
func LoadOptionsFromEnv() (Options, bool) {
	config.LoadEnvFiles()

	token := strings.TrimSpace(os.Getenv(envNotifyToken))
	recipient := strings.TrimSpace(os.Getenv(envNotifyRecipient))
	if token == "" || recipient == "" {
		return Options{}, false
	}

	opts := Options{
		Endpoint:    defaultEndpoint,
		Token:       token,
		RecipientID: recipient,
		Timeout:     defaultPushTimeout,
	}
	if endpoint := strings.TrimSpace(os.Getenv(envNotifyEndpoint)); endpoint != "" {
		opts.Endpoint = endpoint
	}
	return opts, true
}

// LineClient pushes text messages through the LINE Messaging API (or
// any endpoint speaking the same push contract).
type LineClient struct {
	endpoint   string
	token      string
	httpClient *http.Client
}

// NewLineClient constructs the webhook client.
func NewLineClient(opts Options) *LineClient {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultPushTimeout
	}
	endpoint := opts.Endpoint
	if endpoint == "" {
		endpoint = defaultEndpoint
	}
	return &LineClient{
		endpoint:   endpoint,
		token:      opts.Token,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type pushRequest struct {
	To       string        `json:"to"`
	Messages []pushMessage `json:"messages"`
}

type pushMessage struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// PushMessage sends one text message. No retry: the caller treats a
// failure as a logged, non-fatal event.
func (c *LineClient) PushMessage(ctx context.Context, recipientID, text string) error {
	if c == nil {
		return fmt.Errorf("notify client not configured")
	}
	if strings.TrimSpace(recipientID) == "" {
		return fmt.Errorf("recipient id required")
	}
	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("message text required")
	}

	payload, err := json.Marshal(pushRequest{
		To:       recipientID,
		Messages: []pushMessage{{Type: "text", Text: text}},
	})
	if err != nil {
		return fmt.Errorf("encode push payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build push request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("push message: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("push message: status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	return nil
}
