package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"pidginpal-hq/relay/pkg/config"
)

func testCORSConfig() config.CORSConfig {
	return config.CORSConfig{
		Enabled:        config.BoolPtr(true),
		AllowedOrigins: []string{"http://localhost:5173", "https://pidginpal.vercel.app"},
		AllowedMethods: []string{"POST", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
	}
}

func TestCORSMiddleware(t *testing.T) {
	okHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	tests := []struct {
		name       string
		cfg        func() config.CORSConfig
		method     string
		origin     string
		wantOrigin string
		wantBody   string
	}{
		{
			name:       "allowed origin is echoed",
			cfg:        testCORSConfig,
			method:     http.MethodPost,
			origin:     "https://pidginpal.vercel.app",
			wantOrigin: "https://pidginpal.vercel.app",
			wantBody:   "OK",
		},
		{
			name:       "second allowed origin is echoed",
			cfg:        testCORSConfig,
			method:     http.MethodPost,
			origin:     "http://localhost:5173",
			wantOrigin: "http://localhost:5173",
			wantBody:   "OK",
		},
		{
			name:       "unknown origin gets no allow header",
			cfg:        testCORSConfig,
			method:     http.MethodPost,
			origin:     "https://evil.example",
			wantOrigin: "",
			wantBody:   "OK",
		},
		{
			name:       "no origin gets no allow header",
			cfg:        testCORSConfig,
			method:     http.MethodPost,
			wantOrigin: "",
			wantBody:   "OK",
		},
		{
			name: "wildcard allows any origin",
			cfg: func() config.CORSConfig {
				cfg := testCORSConfig()
				cfg.AllowedOrigins = []string{"*"}
				return cfg
			},
			method:     http.MethodPost,
			origin:     "https://any.example",
			wantOrigin: "*",
			wantBody:   "OK",
		},
		{
			name:       "preflight answered without calling handler",
			cfg:        testCORSConfig,
			method:     http.MethodOptions,
			origin:     "http://localhost:5173",
			wantOrigin: "http://localhost:5173",
			wantBody:   "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrapped := CORSMiddleware(tt.cfg())(okHandler)

			req := httptest.NewRequest(tt.method, "/v1/chat/completions", nil)
			if tt.origin != "" {
				req.Header.Set("Origin", tt.origin)
			}
			rec := httptest.NewRecorder()
			wrapped.ServeHTTP(rec, req)

			if rec.Code != http.StatusOK {
				t.Errorf("status = %d, want 200", rec.Code)
			}
			if got := rec.Header().Get("Access-Control-Allow-Origin"); got != tt.wantOrigin {
				t.Errorf("Access-Control-Allow-Origin = %q, want %q", got, tt.wantOrigin)
			}
			if got := rec.Header().Get("Access-Control-Allow-Methods"); got != "POST, OPTIONS" {
				t.Errorf("Access-Control-Allow-Methods = %q, want %q", got, "POST, OPTIONS")
			}
			if got := rec.Header().Get("Access-Control-Allow-Headers"); got != "Content-Type, Authorization" {
				t.Errorf("Access-Control-Allow-Headers = %q, want %q", got, "Content-Type, Authorization")
			}
			if got := rec.Header().Get("Vary"); got != "Origin" {
				t.Errorf("Vary = %q, want Origin", got)
			}
			if got := rec.Body.String(); got != tt.wantBody {
				t.Errorf("body = %q, want %q", got, tt.wantBody)
			}
		})
	}
}

func TestCORSMiddleware_MaxAge(t *testing.T) {
	cfg := testCORSConfig()
	cfg.MaxAge = 600
	wrapped := CORSMiddleware(cfg)(http.NotFoundHandler())

	rec := httptest.NewRecorder()
	wrapped.ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, "/", nil))
	if got := rec.Header().Get("Access-Control-Max-Age"); got != "600" {
		t.Errorf("Access-Control-Max-Age = %q, want 600", got)
	}

	rec = httptest.NewRecorder()
	wrapped.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", nil))
	if got := rec.Header().Get("Access-Control-Max-Age"); got != "" {
		t.Errorf("Access-Control-Max-Age on POST = %q, want empty", got)
	}
}

func TestCORSMiddleware_Disabled(t *testing.T) {
	cfg := testCORSConfig()
	cfg.Enabled = config.BoolPtr(false)

	called := false
	wrapped := CORSMiddleware(cfg)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusTeapot)
	}))

	req := httptest.NewRequest(http.MethodOptions, "/", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	rec := httptest.NewRecorder()
	wrapped.ServeHTTP(rec, req)

	if !called {
		t.Error("handler was not called with CORS disabled")
	}
	if rec.Code != http.StatusTeapot {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusTeapot)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Errorf("Access-Control-Allow-Origin = %q, want empty", got)
	}
}
