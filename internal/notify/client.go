// Package notify delivers short operator alerts through the notification
// gateway.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

type Client struct {
	gatewayURL string
	apiKey     string
	httpClient *http.Client
	log        zerolog.Logger
}

func NewClient(gatewayURL, apiKey string, timeout time.Duration, log zerolog.Logger) *Client {
	return &Client{
		gatewayURL: gatewayURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
		log:        log.With().Str("component", "notify").Logger(),
	}
}

type message struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// Send posts an alert to the operator channel. No retries: a failed alert
// is reported to the caller and otherwise lost.
func (c *Client) Send(ctx context.Context, title, content string) error {
	if c.gatewayURL == "" {
		c.log.Warn().Msg("notification gateway not configured, skipping alert")
		return nil
	}

	body, err := json.Marshal(message{Title: title, Content: content})
	if err != nil {
		return fmt.Errorf("encode notification: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.gatewayURL+"/notify", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build notification request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send notification: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("notification gateway returned %d: %s", resp.StatusCode, detail)
	}

	c.log.Info().Str("title", title).Msg("operator alert sent")
	return nil
}
