package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog/log"
)

// WebhookNotifier posts alerts as JSON to an HTTP endpoint.
type WebhookNotifier struct {
	URL        string
	MaxRetries int
	Client     *http.Client
	// Backoff returns the wait before retry i; defaults to 1s<<i.
	Backoff func(i int) time.Duration
}

// NewWebhookNotifier creates a notifier with optional proxy support.
func NewWebhookNotifier(endpoint, proxyURL string, maxRetries int) *WebhookNotifier {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &WebhookNotifier{
		URL:        endpoint,
		MaxRetries: maxRetries,
		Client: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
	}
}

// Send posts a single alert.
func (w *WebhookNotifier) Send(ctx context.Context, text string) error {
	body, err := json.Marshal(map[string]string{
		"text":   text,
		"source": "marketlens",
	})
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.URL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := w.Client.Do(req)
	if err != nil {
		return fmt.Errorf("send alert: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("webhook error: status %d, body: %s", resp.StatusCode, string(respBody))
	}
	return nil
}

// Notify sends an alert with exponential backoff retry.
func (w *WebhookNotifier) Notify(ctx context.Context, text string) error {
	backoff := w.Backoff
	if backoff == nil {
		backoff = func(i int) time.Duration { return time.Duration(1<<uint(i)) * time.Second }
	}

	var lastErr error
	for i := 0; i <= w.MaxRetries; i++ {
		if err := w.Send(ctx, text); err != nil {
			lastErr = err
			if i == w.MaxRetries {
				break
			}
			wait := backoff(i)
			log.Warn().Err(err).Int("attempt", i+1).Dur("retry_in", wait).Msg("webhook send failed")
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(wait):
				continue
			}
		}
		return nil
	}
	return fmt.Errorf("all %d retries exhausted: %w", w.MaxRetries+1, lastErr)
}
