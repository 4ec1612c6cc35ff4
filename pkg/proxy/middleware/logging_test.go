package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestLoggingMiddleware(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		body      string
		wantLevel string
	}{
		{"ok", http.StatusOK, `{"choices":[]}`, "INFO"},
		{"client error", http.StatusBadRequest, `{"error":"x"}`, "WARN"},
		{"server error", http.StatusInternalServerError, `{"error":"y"}`, "ERROR"},
		{"implicit 200", 0, "hello", "INFO"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logs := captureLogs(t)
			wrapped := LoggingMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if tt.status != 0 {
					w.WriteHeader(tt.status)
				}
				_, _ = w.Write([]byte(tt.body))
			}))

			rec := httptest.NewRecorder()
			wrapped.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/chat/completions", nil))

			record := lastRecord(t, logs.String())
			if record["msg"] != "request completed" {
				t.Fatalf("msg = %v, want request completed", record["msg"])
			}
			if record["level"] != tt.wantLevel {
				t.Errorf("level = %v, want %v", record["level"], tt.wantLevel)
			}
			wantStatus := tt.status
			if wantStatus == 0 {
				wantStatus = http.StatusOK
			}
			if record["status"] != float64(wantStatus) {
				t.Errorf("status = %v, want %d", record["status"], wantStatus)
			}
			if record["bytes"] != float64(len(tt.body)) {
				t.Errorf("bytes = %v, want %d", record["bytes"], len(tt.body))
			}
			if record["path"] != "/v1/chat/completions" {
				t.Errorf("path = %v, want /v1/chat/completions", record["path"])
			}
		})
	}
}

func TestResponseWriter_FirstStatusWins(t *testing.T) {
	rec := httptest.NewRecorder()
	rw := newResponseWriter(rec)

	rw.WriteHeader(http.StatusTooManyRequests)
	rw.WriteHeader(http.StatusOK)

	if rw.statusCode != http.StatusTooManyRequests {
		t.Errorf("statusCode = %d, want %d", rw.statusCode, http.StatusTooManyRequests)
	}
	if rec.Code != http.StatusTooManyRequests {
		t.Errorf("recorded = %d, want %d", rec.Code, http.StatusTooManyRequests)
	}
	if rw.Unwrap() != rec {
		t.Error("Unwrap() did not return the underlying writer")
	}
}

func lastRecord(t *testing.T, out string) map[string]any {
	t.Helper()
	lines := strings.Split(strings.TrimSpace(out), "\n")
	var record map[string]any
	if err := json.Unmarshal([]byte(lines[len(lines)-1]), &record); err != nil {
		t.Fatalf("log line is not JSON: %v", err)
	}
	return record
}
