package logging

import (
	"testing"

	"pidginpal-hq/relay/pkg/config"
)

func TestRedactor_RedactString(t *testing.T) {
	r, err := NewRedactor([]config.RedactPattern{
		{Name: "nigerian_phone", Pattern: `\+234\d{10}`, Replacement: "+234**********"},
		{Name: "ticket", Pattern: `TICKET-\d+`},
	})
	if err != nil {
		t.Fatalf("NewRedactor() error = %v", err)
	}

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"openai key", "key=sk-abcdefgh12345678", "key=sk-***"},
		{"project key", "sk-proj-AbC_dEf-12345678 used", "sk-*** used"},
		{"short sk is not a key", "sk-abc", "sk-abc"},
		{"word containing sk-", "task-force meeting", "task-force meeting"},
		{"bearer", "Authorization: Bearer abc123==", "Authorization: Bearer ***"},
		{"password", "password=hunter2", "password: ***"},
		{"email", "mail me at ada@example.com", "mail me at ***@***"},
		{"custom with replacement", "call +2348012345678 now", "call +234********** now"},
		{"custom default replacement", "see TICKET-991", "see ***"},
		{"pidgin stays", "How far? Wetin dey happen?", "How far? Wetin dey happen?"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.RedactString(tt.input); got != tt.want {
				t.Errorf("RedactString(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNewRedactor_InvalidPattern(t *testing.T) {
	_, err := NewRedactor([]config.RedactPattern{{Name: "bad", Pattern: "[z-a]"}})
	if err == nil {
		t.Fatal("expected error for invalid pattern")
	}
}

func TestIsSensitiveKey(t *testing.T) {
	tests := []struct {
		key  string
		want bool
	}{
		{"api_key", true},
		{"API_KEY", true},
		{"authorization", true},
		{"session_token", true},
		{"client_secret", true},
		{"password", true},
		{"max_tokens", false},
		{"author", false},
		{"content", false},
		{"status_code", false},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			if got := isSensitiveKey(tt.key); got != tt.want {
				t.Errorf("isSensitiveKey(%q) = %v, want %v", tt.key, got, tt.want)
			}
		})
	}
}

func TestRedactAPIKey(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"", ""},
		{"short", "***"},
		{"sk-abcdef1234567890", "sk-***"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := RedactAPIKey(tt.input); got != tt.want {
				t.Errorf("RedactAPIKey(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
