package main

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"pidginpal-hq/relay/pkg/config"
	"pidginpal-hq/relay/pkg/proxy"
)

// newAskConfig points a default configuration at baseURL.
func newAskConfig(baseURL, apiKey string) *config.Config {
	cfg := config.Default()
	cfg.Provider.BaseURL = baseURL
	cfg.Provider.APIKey = apiKey
	cfg.Telemetry.Logging.Level = "error"
	return cfg
}

// keepDefaultLogger puts back the process-wide slog default when t ends.
// newRelayStack replaces it, which is right for main but must not leak
// between tests.
func keepDefaultLogger(t *testing.T) {
	t.Helper()
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })
}

func TestNewRelayStack_InstallsDefaultLogger(t *testing.T) {
	keepDefaultLogger(t)
	prev := slog.Default()

	stack, err := newRelayStack(newAskConfig("http://127.0.0.1:1", "test-credential"), stackOptions{logWriter: io.Discard})
	if err != nil {
		t.Fatalf("newRelayStack() error = %v", err)
	}
	defer stack.Close(context.Background())

	if slog.Default() == prev {
		t.Error("slog default was not replaced by the stack logger")
	}
}

func TestAsk(t *testing.T) {
	keepDefaultLogger(t)
	tests := []struct {
		name        string
		status      int
		body        string
		wantErr     bool
		wantReply   string
		wantOutcome string
	}{
		{
			name:        "success",
			status:      http.StatusOK,
			body:        `{"choices":[{"message":{"role":"assistant","content":"I dey o"}}]}`,
			wantReply:   "I dey o",
			wantOutcome: proxy.OutcomePassthrough,
		},
		{
			name:        "rate limited",
			status:      http.StatusTooManyRequests,
			body:        `{"error":{"message":"slow down"}}`,
			wantReply:   config.DefaultFallbackMessage,
			wantOutcome: proxy.OutcomeFallback,
		},
		{
			name:        "out of quota",
			status:      http.StatusPaymentRequired,
			body:        `{}`,
			wantReply:   config.DefaultFallbackMessage,
			wantOutcome: proxy.OutcomeFallback,
		},
		{
			name:    "provider error",
			status:  http.StatusUnauthorized,
			body:    `{"error":{"message":"Incorrect API key"}}`,
			wantErr: true,
		},
		{
			name:    "not a completion",
			status:  http.StatusOK,
			body:    `<html>`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var (
				calls   atomic.Int32
				mu      sync.Mutex
				gotBody []byte
				gotAuth string
			)
			upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				calls.Add(1)
				body, _ := io.ReadAll(r.Body)
				mu.Lock()
				gotAuth = r.Header.Get("Authorization")
				gotBody = body
				mu.Unlock()
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer upstream.Close()

			result, err := ask(context.Background(), newAskConfig(upstream.URL, "test-credential"), "How far?")
			if (err != nil) != tt.wantErr {
				t.Fatalf("ask() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got := calls.Load(); got != 1 {
				t.Errorf("provider calls = %d, want 1", got)
			}
			mu.Lock()
			defer mu.Unlock()
			if gotAuth != "Bearer test-credential" {
				t.Error("Authorization header does not carry the credential")
			}

			var sent struct {
				Model    string `json:"model"`
				Stream   bool   `json:"stream"`
				Messages []struct {
					Role    string `json:"role"`
					Content string `json:"content"`
				} `json:"messages"`
			}
			if err := json.Unmarshal(gotBody, &sent); err != nil {
				t.Fatalf("request body is not JSON: %v", err)
			}
			if len(sent.Messages) != 2 || sent.Messages[1].Content != "How far?" {
				t.Errorf("messages = %+v, want persona and user message", sent.Messages)
			}
			if sent.Model != config.DefaultProviderModel {
				t.Errorf("model = %q, want %q", sent.Model, config.DefaultProviderModel)
			}

			if tt.wantErr {
				return
			}
			if result.Reply != tt.wantReply {
				t.Errorf("reply = %q, want %q", result.Reply, tt.wantReply)
			}
			if result.Outcome != tt.wantOutcome {
				t.Errorf("outcome = %q, want %q", result.Outcome, tt.wantOutcome)
			}
			if result.Status != http.StatusOK {
				t.Errorf("status = %d, want 200", result.Status)
			}
		})
	}
}

func TestAsk_MissingCredential(t *testing.T) {
	keepDefaultLogger(t)
	var calls atomic.Int32
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}))
	defer upstream.Close()

	_, err := ask(context.Background(), newAskConfig(upstream.URL, ""), "How far?")
	if err == nil {
		t.Fatal("ask() error = nil, want error")
	}
	if !strings.Contains(err.Error(), proxy.MissingCredentialDetails) {
		t.Errorf("error = %v, want missing credential details", err)
	}
	if got := calls.Load(); got != 0 {
		t.Errorf("provider calls = %d, want 0", got)
	}
}

func TestAskResult_Lines(t *testing.T) {
	r := askResult{Status: 200, Outcome: proxy.OutcomePassthrough, Reply: "Oya"}
	if lines := r.Lines(); len(lines) != 1 || lines[0] != "Oya" {
		t.Errorf("Lines() = %v, want [Oya]", lines)
	}
}
