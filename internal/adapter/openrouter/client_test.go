package openrouter

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/englearn/backend/internal/config"
	"github.com/englearn/backend/internal/domain"
)

func testClient(baseURL string) *Client {
	return NewClient(config.ChatConfig{
		APIKey:  "sk-test",
		BaseURL: baseURL,
		Referer: "http://localhost:8080",
		Title:   "English Learning App",
		Timeout: 5 * time.Second,
	}, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestClient_Complete_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("path = %q, want /chat/completions", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer sk-test" {
			t.Errorf("Authorization = %q", got)
		}
		if got := r.Header.Get("HTTP-Referer"); got != "http://localhost:8080" {
			t.Errorf("HTTP-Referer = %q", got)
		}
		if got := r.Header.Get("X-Title"); got != "English Learning App" {
			t.Errorf("X-Title = %q", got)
		}

		var req chatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if req.Model != "test/model" {
			t.Errorf("model = %q", req.Model)
		}
		if len(req.Messages) != 2 || req.Messages[0].Role != "system" || req.Messages[1].Role != "user" {
			t.Errorf("unexpected messages: %+v", req.Messages)
		}

		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]string{"role": "assistant", "content": "Hello! Ready to practice?"}},
			},
		})
	}))
	defer srv.Close()

	got, err := testClient(srv.URL).Complete(context.Background(),
		"test/model", "You are a tutor.", "Hi")
	if err != nil {
		t.Fatalf("Complete returned error: %v", err)
	}
	if got != "Hello! Ready to practice?" {
		t.Errorf("Complete = %q", got)
	}
}

func TestClient_Complete_PaymentRequired(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusPaymentRequired)
		_, _ = w.Write([]byte(`{"error":{"message":"Insufficient credits","code":402}}`))
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).Complete(context.Background(), "test/model", "sys", "msg")
	if err == nil {
		t.Fatal("expected error for 402 response")
	}

	var upstream *domain.UpstreamError
	if !errors.As(err, &upstream) {
		t.Fatalf("error is not *domain.UpstreamError: %v", err)
	}
	// The upstream status code must survive intact for pass-through.
	if upstream.StatusCode != http.StatusPaymentRequired {
		t.Errorf("StatusCode = %d, want 402", upstream.StatusCode)
	}
	if upstream.Message != "Insufficient credits" {
		t.Errorf("Message = %q", upstream.Message)
	}
	if !errors.Is(err, domain.ErrUpstream) {
		t.Error("error does not wrap domain.ErrUpstream")
	}
}

func TestClient_Complete_NonJSONErrorBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("bad gateway"))
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).Complete(context.Background(), "test/model", "sys", "msg")

	var upstream *domain.UpstreamError
	if !errors.As(err, &upstream) {
		t.Fatalf("error is not *domain.UpstreamError: %v", err)
	}
	if upstream.StatusCode != http.StatusBadGateway {
		t.Errorf("StatusCode = %d, want 502", upstream.StatusCode)
	}
	if upstream.Message != "bad gateway" {
		t.Errorf("Message = %q", upstream.Message)
	}
}

func TestClient_Complete_EmptyChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[]}`))
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).Complete(context.Background(), "test/model", "sys", "msg")
	if err == nil {
		t.Fatal("expected error for empty choices")
	}
}

func TestClient_Complete_ContextCanceled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := testClient(srv.URL).Complete(ctx, "test/model", "sys", "msg")
	if err == nil {
		t.Fatal("expected error for canceled context")
	}
}
