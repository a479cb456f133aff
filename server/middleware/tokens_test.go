package middleware

import (
	"testing"
	"time"
)

func TestTokensRoundTrip(t *testing.T) {
	tokens := NewTokens("secret", time.Hour)
	tok, err := tokens.Issue(42)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	id, err := tokens.Parse(tok)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if id != 42 {
		t.Fatalf("id = %d, want 42", id)
	}
}

func TestTokensRejectWrongSecretAndExpired(t *testing.T) {
	tok, _ := NewTokens("secret", time.Hour).Issue(1)
	if _, err := NewTokens("other", time.Hour).Parse(tok); err == nil {
		t.Fatalf("expected error with wrong secret")
	}

	past := NewTokens("secret", time.Minute)
	past.now = func() time.Time { return time.Now().Add(-time.Hour) }
	old, _ := past.Issue(1)
	if _, err := NewTokens("secret", time.Minute).Parse(old); err == nil {
		t.Fatalf("expected error for expired token")
	}
}

func TestBearer(t *testing.T) {
	if tok, err := bearer("Bearer abc"); err != nil || tok != "abc" {
		t.Fatalf("bearer = %q, %v", tok, err)
	}
	if tok, err := bearer("bearer  abc "); err != nil || tok != "abc" {
		t.Fatalf("lowercase bearer = %q, %v", tok, err)
	}
	for _, h := range []string{"", "abc", "Basic abc", "Bearer "} {
		if _, err := bearer(h); err == nil {
			t.Fatalf("bearer(%q): expected error", h)
		}
	}
}
