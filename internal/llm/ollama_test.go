package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestOllamaBackend_Summarize_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/generate" {
			t.Errorf("Expected path /api/generate, got %s", r.URL.Path)
		}

		var req ollamaRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("Failed to decode request: %v", err)
		}
		if req.Stream {
			t.Error("Expected stream=false")
		}
		if req.System == "" {
			t.Error("Expected a system prompt")
		}

		_ = json.NewEncoder(w).Encode(ollamaResponse{
			Model:    "llama3.1",
			Response: "A neutral summary.",
			Done:     true,
		})
	}))
	defer server.Close()

	backend, err := NewOllamaBackend(server.URL, "")
	if err != nil {
		t.Fatalf("Failed to create backend: %v", err)
	}

	summary, err := backend.Summarize(context.Background(), "Some article text.")
	if err != nil {
		t.Fatalf("Summarize failed: %v", err)
	}
	if summary != "A neutral summary." {
		t.Errorf("Unexpected summary: %s", summary)
	}
}

func TestOllamaBackend_Score_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(ollamaResponse{Response: validScoreJSON, Done: true})
	}))
	defer server.Close()

	backend, err := NewOllamaBackend(server.URL, "llama3.1")
	if err != nil {
		t.Fatalf("Failed to create backend: %v", err)
	}

	res, err := backend.Score(context.Background(), "Some article text.")
	if err != nil {
		t.Fatalf("Score failed: %v", err)
	}
	if !res.Scores.Valid() {
		t.Errorf("Invalid scores: %+v", res.Scores)
	}
}

func TestOllamaBackend_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	backend, err := NewOllamaBackend(server.URL, "")
	if err != nil {
		t.Fatalf("Failed to create backend: %v", err)
	}

	if _, err := backend.Summarize(context.Background(), "text"); err == nil {
		t.Fatal("Expected error, got nil")
	}
}

func TestOllamaBackend_Defaults(t *testing.T) {
	backend, err := NewOllamaBackend("", "")
	if err != nil {
		t.Fatalf("Failed to create backend: %v", err)
	}
	if backend.baseURL != "http://localhost:11434" {
		t.Errorf("Unexpected default base URL: %s", backend.baseURL)
	}
	if backend.model != "llama3.1" {
		t.Errorf("Unexpected default model: %s", backend.model)
	}
}
