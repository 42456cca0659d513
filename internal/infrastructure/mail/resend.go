package mail

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

	"wow-campus/internal/config"
)

const (
	DefaultEndpoint = "https://api.resend.com/emails"
	requestTimeout  = 10 * time.Second
	maxErrorBody    = 1 << 10
)

var ErrNotConfigured = errors.New("mail sender not configured")

type Message struct {
	From    string
	To      []string
	ReplyTo string
	Subject string
	HTML    string
}

// Resend posts messages to the Resend HTTP API.
type Resend struct {
	apiKey   string
	endpoint string
	client   *http.Client
}

// NewResend returns nil when no API key is configured, so callers can treat
// mail as optional.
func NewResend(cfg config.MailConfig, client *http.Client) *Resend {
	if strings.TrimSpace(cfg.ResendAPIKey) == "" {
		return nil
	}
	endpoint := strings.TrimSpace(cfg.Endpoint)
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	if client == nil {
		client = &http.Client{Timeout: requestTimeout}
	}
	return &Resend{apiKey: cfg.ResendAPIKey, endpoint: endpoint, client: client}
}

type resendPayload struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	ReplyTo string   `json:"reply_to,omitempty"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}

type resendResult struct {
	ID string `json:"id"`
}

// Send delivers m and returns the provider's message id.
func (r *Resend) Send(ctx context.Context, m Message) (string, error) {
	if r == nil {
		return "", ErrNotConfigured
	}
	if len(m.To) == 0 {
		return "", errors.New("mail: no recipients")
	}

	body, err := json.Marshal(resendPayload{
		From:    m.From,
		To:      m.To,
		ReplyTo: m.ReplyTo,
		Subject: m.Subject,
		HTML:    m.HTML,
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+r.apiKey)
	req.Header.Set("Content-Type", "application/json")

	res, err := r.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("mail: send: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(res.Body, maxErrorBody))
		return "", fmt.Errorf("mail: resend returned %d: %s", res.StatusCode, strings.TrimSpace(string(msg)))
	}

	var out resendResult
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("mail: decode response: %w", err)
	}
	return out.ID, nil
}
