package podcast

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/kwonth211/podcastify/internal/config"
)

func TestGenerateSendsRequestAndReturnsPath(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/generate" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}

		var payload struct {
			URLs     []string `json:"urls"`
			TTSModel string   `json:"tts_model"`
			Longform bool     `json:"longform"`
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if len(payload.URLs) != 2 || payload.TTSModel != "edge" || !payload.Longform {
			t.Errorf("unexpected payload: %+v", payload)
		}

		_ = json.NewEncoder(w).Encode(map[string]string{"audio_path": "data/audio/podcast.mp3"})
	}))
	defer server.Close()

	client := NewClient(config.GeneratorConfig{Endpoint: server.URL, TTSModel: "edge", Longform: true})

	path, err := client.Generate(context.Background(), []string{"https://a.example/1", "https://a.example/2"})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if path != "data/audio/podcast.mp3" {
		t.Fatalf("unexpected audio path: %s", path)
	}
}

func TestGenerateFailsOnServerError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "tts backend unavailable", http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewClient(config.GeneratorConfig{Endpoint: server.URL, TTSModel: "edge"})

	if _, err := client.Generate(context.Background(), []string{"https://a.example/1"}); err == nil {
		t.Fatalf("expected error on server failure")
	}
}

func TestGenerateFailsOnEmptyOutput(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]string{"audio_path": ""})
	}))
	defer server.Close()

	client := NewClient(config.GeneratorConfig{Endpoint: server.URL})

	if _, err := client.Generate(context.Background(), []string{"https://a.example/1"}); err == nil {
		t.Fatalf("expected error when generator returns no file")
	}
}
