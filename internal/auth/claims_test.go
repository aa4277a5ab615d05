package auth

import (
	"errors"
	"testing"
	"time"
)

const testSecret = "test-signing-secret"

func TestGenerateAndParseSessionToken(t *testing.T) {
	token, err := GenerateSessionToken("alice@example.com", "Alice", testSecret, time.Hour)
	if err != nil {
		t.Fatalf("GenerateSessionToken() error = %v", err)
	}

	claims, err := ParseSessionToken(token, testSecret)
	if err != nil {
		t.Fatalf("ParseSessionToken() error = %v", err)
	}

	if claims.Email != "alice@example.com" {
		t.Errorf("Email = %q, want alice@example.com", claims.Email)
	}
	if claims.Name != "Alice" {
		t.Errorf("Name = %q, want Alice", claims.Name)
	}
	if claims.Subject != "alice@example.com" {
		t.Errorf("Subject = %q, want email", claims.Subject)
	}
	if claims.ID == "" {
		t.Error("token should carry a unique ID")
	}

	wantExpiry := time.Now().Add(time.Hour)
	if got := claims.ExpiresAt.Time; got.Before(wantExpiry.Add(-time.Minute)) || got.After(wantExpiry.Add(time.Minute)) {
		t.Errorf("ExpiresAt = %v, want roughly %v", got, wantExpiry)
	}
}

func TestParseSessionToken_Expired(t *testing.T) {
	token, err := GenerateSessionToken("bob@example.com", "Bob", testSecret, -time.Minute)
	if err != nil {
		t.Fatalf("GenerateSessionToken() error = %v", err)
	}

	_, err = ParseSessionToken(token, testSecret)
	if !errors.Is(err, ErrTokenExpired) {
		t.Errorf("ParseSessionToken(expired) error = %v, want ErrTokenExpired", err)
	}
}

func TestParseSessionToken_Malformed(t *testing.T) {
	tests := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"garbage", "not-a-jwt"},
		{"truncated", "eyJhbGciOiJIUzI1NiJ9"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseSessionToken(tt.token, testSecret)
			if !errors.Is(err, ErrTokenInvalid) {
				t.Errorf("ParseSessionToken(%q) error = %v, want ErrTokenInvalid", tt.token, err)
			}
		})
	}
}

func TestParseSessionToken_WrongSecret(t *testing.T) {
	token, err := GenerateSessionToken("carol@example.com", "Carol", testSecret, time.Hour)
	if err != nil {
		t.Fatalf("GenerateSessionToken() error = %v", err)
	}

	_, err = ParseSessionToken(token, "a-different-secret")
	if !errors.Is(err, ErrTokenInvalid) {
		t.Errorf("ParseSessionToken(wrong secret) error = %v, want ErrTokenInvalid", err)
	}
}
