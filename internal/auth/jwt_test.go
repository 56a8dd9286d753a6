package auth

import (
	"testing"
	"time"
)

func TestIssueAndParse(t *testing.T) {
	token, exp, err := Issue("admin-1", "dana@example.edu", "eventtrack", "secret", time.Hour)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if token == "" {
		t.Fatal("empty token")
	}
	if time.Until(exp) <= 0 {
		t.Fatal("expiry should be in the future")
	}

	claims, err := Parse(token, "secret", "eventtrack")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.Subject != "admin-1" || claims.Email != "dana@example.edu" {
		t.Fatalf("claims wrong: %+v", claims)
	}
}

func TestParseRejectsWrongKey(t *testing.T) {
	token, _, err := Issue("admin-1", "dana@example.edu", "eventtrack", "secret", time.Hour)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := Parse(token, "other-secret", "eventtrack"); err == nil {
		t.Fatal("expected error for wrong signing key")
	}
}

func TestParseRejectsIssuerMismatch(t *testing.T) {
	token, _, err := Issue("admin-1", "dana@example.edu", "someone-else", "secret", time.Hour)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := Parse(token, "secret", "eventtrack"); err == nil {
		t.Fatal("expected error for issuer mismatch")
	}
}

func TestParseRejectsExpired(t *testing.T) {
	token, _, err := Issue("admin-1", "dana@example.edu", "eventtrack", "secret", -time.Minute)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := Parse(token, "secret", "eventtrack"); err == nil {
		t.Fatal("expected error for expired token")
	}
}
