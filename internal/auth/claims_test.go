package auth

import (
	"errors"
	"testing"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestAccessToken_RoundTrip(t *testing.T) {
	token, err := GenerateAccessToken(42, "jsmith", "manager", testSecret, 15)
	if err != nil {
		t.Fatalf("GenerateAccessToken() error = %v", err)
	}

	claims, err := ParseToken(token, testSecret)
	if err != nil {
		t.Fatalf("ParseToken() error = %v", err)
	}

	if claims.Username != "jsmith" {
		t.Errorf("Username = %q, want %q", claims.Username, "jsmith")
	}
	if claims.Role != "manager" {
		t.Errorf("Role = %q, want %q", claims.Role, "manager")
	}

	id, err := claims.UserID()
	if err != nil {
		t.Fatalf("UserID() error = %v", err)
	}
	if id != 42 {
		t.Errorf("UserID() = %d, want 42", id)
	}
}

func TestParseToken_WrongSecret(t *testing.T) {
	token, err := GenerateAccessToken(1, "admin", "admin", testSecret, 15)
	if err != nil {
		t.Fatalf("GenerateAccessToken() error = %v", err)
	}

	_, err = ParseToken(token, "another-secret-another-secret-32")
	if !errors.Is(err, ErrTokenInvalid) {
		t.Errorf("error = %v, want ErrTokenInvalid", err)
	}
}

func TestParseToken_Garbage(t *testing.T) {
	_, err := ParseToken("not.a.token", testSecret)
	if !errors.Is(err, ErrTokenInvalid) {
		t.Errorf("error = %v, want ErrTokenInvalid", err)
	}
}

func TestGenerateSessionToken_Unique(t *testing.T) {
	t1, err := GenerateSessionToken()
	if err != nil {
		t.Fatalf("GenerateSessionToken() error = %v", err)
	}
	t2, err := GenerateSessionToken()
	if err != nil {
		t.Fatalf("GenerateSessionToken() error = %v", err)
	}

	if t1 == t2 {
		t.Error("session tokens should be unique")
	}
	if len(t1) != sessionTokenBytes*2 {
		t.Errorf("token length = %d, want %d hex chars", len(t1), sessionTokenBytes*2)
	}
}

func TestHashToken_Deterministic(t *testing.T) {
	if HashToken("abc") != HashToken("abc") {
		t.Error("HashToken should be deterministic")
	}
	if HashToken("abc") == HashToken("abd") {
		t.Error("different tokens should hash differently")
	}
	if HashToken("abc") == "abc" {
		t.Error("hash must differ from the raw token")
	}
}
