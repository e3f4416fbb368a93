package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/foyer-app/foyer-voice/pkg/config"
)

func TestExtractSignals_Success(t *testing.T) {
	content := `{"action":{"verb":"emmener","object":"chez le médecin"},` +
		`"category":{"primary":"health","secondary":null,"confidence":0.9,"reason":"medical visit"},` +
		`"urgency":{"level":"high","confidence":0.8,"reason":"urgent prefix"},` +
		`"date":{"type":"relative","raw":"demain","date":"2025-06-11","confidence":0.9,"reason":"tomorrow"},` +
		`"child":{"name":"Marie","confidence":0.9,"reason":"named in note"}}`

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Fatalf("expected POST got %s", r.Method)
		}
		if auth := r.Header.Get("Authorization"); !strings.HasPrefix(auth, "Bearer ") {
			t.Fatalf("missing bearer auth header, got %q", auth)
		}
		var payload struct {
			Messages []struct {
				Content string `json:"content"`
			} `json:"messages"`
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Fatalf("invalid payload: %v", err)
		}
		if len(payload.Messages) == 0 {
			t.Fatalf("prompt message missing")
		}
		// The prompt must request the nested per-signal shape the
		// extraction parser consumes.
		prompt := payload.Messages[0].Content
		for _, marker := range []string{`"category":{"primary"`, `"urgency":{"level"`, `"confidence"`, `"reason"`} {
			if !strings.Contains(prompt, marker) {
				t.Fatalf("prompt lost contract marker %s", marker)
			}
		}
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"content": content}},
			},
		})
	}))
	defer ts.Close()

	client := NewGroqClient(&config.GroqConfig{APIKey: "test-key", Timeout: 5 * time.Second}).WithBaseURL(ts.URL)

	got, err := client.ExtractSignals(context.Background(), "Urgent: emmener Marie chez le médecin demain", "fr", []string{"Marie", "Thomas"})
	if err != nil {
		t.Fatalf("ExtractSignals failed: %v", err)
	}
	if got != content {
		t.Fatalf("unexpected content %q", got)
	}
}

func TestExtractSignals_ServerError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer ts.Close()

	client := NewGroqClient(&config.GroqConfig{APIKey: "test-key"}).WithBaseURL(ts.URL)
	if _, err := client.ExtractSignals(context.Background(), "ranger la chambre", "fr", nil); err == nil {
		t.Fatalf("expected error on 429")
	}
}

func TestExtractSignals_MissingKey(t *testing.T) {
	t.Setenv("GROQ_API_KEY", "")
	client := NewGroqClient(&config.GroqConfig{})
	if _, err := client.ExtractSignals(context.Background(), "test", "fr", nil); err == nil {
		t.Fatalf("expected error without api key")
	}
}

func TestVerifyWebhookAuth(t *testing.T) {
	if !VerifyWebhookAuth("", "anything") {
		t.Fatalf("empty secret must disable verification")
	}
	if !VerifyWebhookAuth("s3cret", "s3cret") {
		t.Fatalf("matching secret must pass")
	}
	if VerifyWebhookAuth("s3cret", "wrong") {
		t.Fatalf("mismatched secret must fail")
	}
}
