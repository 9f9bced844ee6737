package logging

import (
	"strings"
	"testing"
)

func TestAnonymizeEmail(t *testing.T) {
	hash := AnonymizeEmail("alice@example.com")
	if !strings.HasPrefix(hash, "user:") {
		t.Errorf("AnonymizeEmail() = %q, want user: prefix", hash)
	}
	if strings.Contains(hash, "alice") {
		t.Error("anonymized email must not contain the original address")
	}

	// Deterministic so log entries can be correlated.
	if AnonymizeEmail("alice@example.com") != hash {
		t.Error("AnonymizeEmail() is not deterministic")
	}

	if AnonymizeEmail("") != "" {
		t.Error("AnonymizeEmail(\"\") should be empty")
	}
}

func TestSanitizeToken(t *testing.T) {
	if got := SanitizeToken(""); got != "<empty>" {
		t.Errorf("SanitizeToken(\"\") = %q", got)
	}

	got := SanitizeToken("ya29.secret-token")
	if strings.Contains(got, "secret") {
		t.Errorf("SanitizeToken() leaked token content: %q", got)
	}
	if got != "[token:17 chars]" {
		t.Errorf("SanitizeToken() = %q", got)
	}
}

func TestExtractDomain(t *testing.T) {
	tests := []struct {
		email string
		want  string
	}{
		{"alice@example.com", "example.com"},
		{"", ""},
		{"not-an-email", ""},
		{"a@b@c", ""},
	}

	for _, tt := range tests {
		if got := ExtractDomain(tt.email); got != tt.want {
			t.Errorf("ExtractDomain(%q) = %q, want %q", tt.email, got, tt.want)
		}
	}
}

func TestErrNil(t *testing.T) {
	attr := Err(nil)
	if attr.Key != "" {
		t.Errorf("Err(nil) should produce an omittable group, got key %q", attr.Key)
	}
}
