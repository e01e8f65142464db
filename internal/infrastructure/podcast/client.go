package podcast

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

// Client talks to the external podcast generation service. Generation is a
// straight-through call: URLs in, audio artifact path out.
type Client struct {
	endpoint string
	ttsModel string
	longform bool
	http     *http.Client
}

var _ ports.PodcastGenerator = (*Client)(nil)

// NewClient creates a reusable HTTP client. Generation runs TTS over every
// article, so the timeout is generous.
func NewClient(cfg config.GeneratorConfig) *Client {
	return &Client{
		endpoint: strings.TrimSuffix(cfg.Endpoint, "/"),
		ttsModel: cfg.TTSModel,
		longform: cfg.Longform,
		http:     &http.Client{Timeout: 15 * time.Minute},
	}
}

// Generate submits the ordered URL list and returns the path of the
// produced audio file.
func (c *Client) Generate(ctx context.Context, urls []string) (string, error) {
	if c.endpoint == "" {
		return "", fmt.Errorf("generator endpoint not configured")
	}

	body, err := json.Marshal(map[string]any{
		"urls":      urls,
		"tts_model": c.ttsModel,
		"longform":  c.longform,
	})
	if err != nil {
		return "", fmt.Errorf("marshal generation request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+"/generate", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("generate podcast: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return "", fmt.Errorf("generator error %s: %s", resp.Status, strings.TrimSpace(string(detail)))
	}

	var result struct {
		AudioPath string `json:"audio_path"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("decode generation response: %w", err)
	}
	if result.AudioPath == "" {
		return "", fmt.Errorf("generator returned no output file")
	}

	return result.AudioPath, nil
}
