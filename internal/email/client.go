// Package email renders and sends the quote confirmation messages through
// the internal email gateway.
package email

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

// Message is the gateway's send payload.
type Message struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Text    string `json:"text"`
	HTML    string `json:"html"`
}

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
		log:        log.With().Str("component", "email").Logger(),
	}
}

// Send delivers a single message. Best effort: the caller decides what a
// failure means, no retries happen here.
func (c *Client) Send(ctx context.Context, msg Message) error {
	if c.gatewayURL == "" {
		c.log.Warn().Msg("email gateway not configured, skipping send")
		return nil
	}

	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("encode email: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.gatewayURL+"/email/send", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build email request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send email: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("email gateway returned %d: %s", resp.StatusCode, detail)
	}

	c.log.Info().Str("to", msg.To).Str("subject", msg.Subject).Msg("email sent")
	return nil
}
