package push

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/kwonth211/podcastify/internal/config"
	"github.com/kwonth211/podcastify/internal/ports"
)

// OneSignalSender delivers push notifications to all subscribers via the
// OneSignal REST API.
type OneSignalSender struct {
	endpoint  string
	appID     string
	apiKey    string
	targetURL string
	client    *http.Client
}

var _ ports.PushSender = (*OneSignalSender)(nil)

// NewOneSignalSender registers the application id and REST key.
func NewOneSignalSender(cfg config.PushConfig) *OneSignalSender {
	return &OneSignalSender{
		endpoint:  cfg.Endpoint,
		appID:     cfg.AppID,
		apiKey:    cfg.APIKey,
		targetURL: cfg.TargetURL,
		client:    &http.Client{Timeout: 10 * time.Second},
	}
}

// Send posts the heading/body pair to every subscriber segment.
func (s *OneSignalSender) Send(ctx context.Context, heading, body string) error {
	if s.appID == "" || s.apiKey == "" {
		return fmt.Errorf("push sender misconfigured")
	}

	payload, err := json.Marshal(map[string]any{
		"app_id":            s.appID,
		"included_segments": []string{"All"},
		"headings":          map[string]string{"ko": heading, "en": heading},
		"contents":          map[string]string{"ko": body, "en": body},
		"url":               s.targetURL,
	})
	if err != nil {
		return fmt.Errorf("marshal notification: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Authorization", "Basic "+s.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("send notification: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("push api error %s: %s", resp.Status, strings.TrimSpace(string(detail)))
	}

	return nil
}
