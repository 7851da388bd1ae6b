package jwt

import (
	"testing"
	"time"
)

func TestSignAndParse(t *testing.T) {
	token, err := Sign("user-1", "session-1", time.Hour)
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}

	claims, err := Parse(token)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if claims.UserID != "user-1" {
		t.Errorf("UserID = %q", claims.UserID)
	}
	if claims.SessionID != "session-1" {
		t.Errorf("SessionID = %q", claims.SessionID)
	}
}

func TestParseExpired(t *testing.T) {
	token, err := Sign("user-1", "session-1", -time.Minute)
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}
	if _, err := Parse(token); err == nil {
		t.Error("expected error for expired token")
	}
}

func TestParseTampered(t *testing.T) {
	token, err := Sign("user-1", "session-1", time.Hour)
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}
	if _, err := Parse(token + "x"); err == nil {
		t.Error("expected error for tampered token")
	}
}

func TestParseGarbage(t *testing.T) {
	if _, err := Parse("not-a-token"); err == nil {
		t.Error("expected error for garbage input")
	}
}
