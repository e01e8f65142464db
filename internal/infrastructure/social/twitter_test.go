package social

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/kwonth211/podcastify/internal/config"
)

func TestPublishPostsSignedMessage(t *testing.T) {
	t.Parallel()

	var got struct {
		Text string `json:"text"`
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if auth := r.Header.Get("Authorization"); !strings.HasPrefix(auth, "OAuth ") {
			t.Errorf("expected OAuth1 signature, got: %s", auth)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode payload: %v", err)
		}
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(map[string]any{"data": map[string]string{"id": "1790000000000000001"}})
	}))
	defer server.Close()

	publisher := NewTwitterPublisher(config.SocialConfig{
		Endpoint:          server.URL,
		APIKey:            "ck",
		APISecret:         "cs",
		AccessToken:       "at",
		AccessTokenSecret: "as",
	})

	id, err := publisher.Publish(context.Background(), "🎙️ 8월 27일(목) 뉴스 팟캐스트")
	if err != nil {
		t.Fatalf("publish: %v", err)
	}
	if id != "1790000000000000001" {
		t.Fatalf("unexpected post id: %s", id)
	}
	if got.Text != "🎙️ 8월 27일(목) 뉴스 팟캐스트" {
		t.Fatalf("unexpected payload text: %q", got.Text)
	}
}

func TestPublishFailsOnAPIError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"errors":[{"message":"duplicate content"}]}`, http.StatusForbidden)
	}))
	defer server.Close()

	publisher := NewTwitterPublisher(config.SocialConfig{
		Endpoint:          server.URL,
		APIKey:            "ck",
		APISecret:         "cs",
		AccessToken:       "at",
		AccessTokenSecret: "as",
	})

	if _, err := publisher.Publish(context.Background(), "중복 게시물"); err == nil {
		t.Fatalf("expected error on API failure")
	}
}

func TestPublishRejectsMissingEndpoint(t *testing.T) {
	t.Parallel()

	publisher := NewTwitterPublisher(config.SocialConfig{})
	if _, err := publisher.Publish(context.Background(), "메시지"); err == nil {
		t.Fatalf("expected misconfiguration error")
	}
}
