package jwt

import (
	"testing"
	"time"
)

func TestSignParseRoundtrip(t *testing.T) {
	token, err := Sign("user-1", "sess-1", time.Hour)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	claims, err := Parse(token)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.UserID != "user-1" || claims.SessionID != "sess-1" {
		t.Fatalf("claims = %+v", claims)
	}
}

func TestParseRejectsExpiredToken(t *testing.T) {
	token, err := Sign("user-1", "sess-1", -time.Minute)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := Parse(token); err == nil {
		t.Fatal("expired token accepted")
	}
}

func TestParseRejectsTamperedToken(t *testing.T) {
	token, err := Sign("user-1", "sess-1", time.Hour)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := Parse(token + "x"); err == nil {
		t.Fatal("tampered token accepted")
	}
}
