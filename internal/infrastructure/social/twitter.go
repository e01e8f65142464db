package social

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/dghubble/oauth1"

	"github.com/kwonth211/podcastify/internal/config"
	"github.com/kwonth211/podcastify/internal/ports"
)

// TwitterPublisher posts promotional messages through the X API v2 tweet
// endpoint with OAuth1 user-context signing.
type TwitterPublisher struct {
	endpoint string
	client   *http.Client
}

var _ ports.SocialPublisher = (*TwitterPublisher)(nil)

// NewTwitterPublisher wires the four OAuth1 credentials into a signing
// HTTP client.
func NewTwitterPublisher(cfg config.SocialConfig) *TwitterPublisher {
	oauthConfig := oauth1.NewConfig(cfg.APIKey, cfg.APISecret)
	token := oauth1.NewToken(cfg.AccessToken, cfg.AccessTokenSecret)

	client := oauthConfig.Client(oauth1.NoContext, token)
	client.Timeout = 10 * time.Second

	return &TwitterPublisher{endpoint: cfg.Endpoint, client: client}
}

// Publish posts the message and returns the created post id.
func (p *TwitterPublisher) Publish(ctx context.Context, message string) (string, error) {
	if p.endpoint == "" {
		return "", fmt.Errorf("social publisher misconfigured")
	}

	body, err := json.Marshal(map[string]string{"text": message})
	if err != nil {
		return "", fmt.Errorf("marshal post: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("post message: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return "", fmt.Errorf("social api error %s: %s", resp.Status, strings.TrimSpace(string(detail)))
	}

	var result struct {
		Data struct {
			ID string `json:"id"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("decode post response: %w", err)
	}

	return result.Data.ID, nil
}
