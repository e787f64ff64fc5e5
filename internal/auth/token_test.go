package auth

import (
	"testing"
	"time"
)

func testIdentity() *Identity {
	return &Identity{
		ID:    "01HZX3V5TQJ0F4N8S6W2B7K9RD",
		Email: "artist@example.com",
		Roles: []string{"user"},
	}
}

func TestIssueAndVerify(t *testing.T) {
	issuer := NewTokenIssuer("secret", "npuplatform-auth", "npuplatform", 30*time.Minute)
	verifier := NewTokenVerifier("secret", "npuplatform-auth", "npuplatform")

	identity := testIdentity()
	result, err := issuer.Issue(identity)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	if result.Token == "" {
		t.Fatal("empty token issued")
	}

	claims, err := verifier.Verify(result.Token)
	if err != nil {
		t.Fatalf("verify token: %v", err)
	}
	if claims.Subject != identity.ID {
		t.Errorf("subject = %q, want %q", claims.Subject, identity.ID)
	}
	if claims.Email != identity.Email {
		t.Errorf("email = %q, want %q", claims.Email, identity.Email)
	}
	if claims.ID == "" {
		t.Error("missing token id")
	}
	if got := claims.ExpiresAt.Time.Sub(claims.IssuedAt.Time); got != 30*time.Minute {
		t.Errorf("lifetime = %s, want 30m", got)
	}
}

func TestIssueProducesDistinctTokenIDs(t *testing.T) {
	issuer := NewTokenIssuer("secret", "iss", "aud", time.Minute)
	verifier := NewTokenVerifier("secret", "iss", "aud")

	seen := make(map[string]bool)
	for i := 0; i < 5; i++ {
		result, err := issuer.Issue(testIdentity())
		if err != nil {
			t.Fatalf("issue token: %v", err)
		}
		claims, err := verifier.Verify(result.Token)
		if err != nil {
			t.Fatalf("verify token: %v", err)
		}
		if seen[claims.ID] {
			t.Fatalf("token id %q reissued", claims.ID)
		}
		seen[claims.ID] = true
	}
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	issuer := NewTokenIssuer("secret-a", "iss", "aud", time.Minute)
	verifier := NewTokenVerifier("secret-b", "iss", "aud")

	result, err := issuer.Issue(testIdentity())
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	if _, err := verifier.Verify(result.Token); err == nil {
		t.Fatal("expected verification failure for wrong secret")
	}
}

func TestVerifyRejectsExpired(t *testing.T) {
	issuer := NewTokenIssuer("secret", "iss", "aud", time.Minute)
	issuer.now = func() time.Time { return time.Now().Add(-2 * time.Minute) }
	verifier := NewTokenVerifier("secret", "iss", "aud")

	result, err := issuer.Issue(testIdentity())
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	if _, err := verifier.Verify(result.Token); err == nil {
		t.Fatal("expected verification failure for expired token")
	}
}

func TestVerifyRejectsWrongAudience(t *testing.T) {
	issuer := NewTokenIssuer("secret", "iss", "other-audience", time.Minute)
	verifier := NewTokenVerifier("secret", "iss", "aud")

	result, err := issuer.Issue(testIdentity())
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	if _, err := verifier.Verify(result.Token); err == nil {
		t.Fatal("expected verification failure for wrong audience")
	}
}

func TestVerifyConsultsRevocationList(t *testing.T) {
	rl := NewRevocationList()
	issuer := NewTokenIssuer("secret", "iss", "aud", time.Minute)
	verifier := NewTokenVerifier("secret", "iss", "aud", WithRevocations(rl))

	result, err := issuer.Issue(testIdentity())
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	claims, err := verifier.Verify(result.Token)
	if err != nil {
		t.Fatalf("verify token: %v", err)
	}

	rl.Revoke(claims.ID, claims.ExpiresAt.Time)
	if _, err := verifier.Verify(result.Token); err == nil {
		t.Fatal("expected revoked token to be rejected")
	}
}

func TestRevocationListExpiry(t *testing.T) {
	rl := NewRevocationList()
	base := time.Now()
	rl.now = func() time.Time { return base }

	rl.Revoke("jti-1", base.Add(time.Minute))
	if !rl.IsRevoked("jti-1") {
		t.Fatal("expected jti-1 revoked")
	}

	rl.now = func() time.Time { return base.Add(2 * time.Minute) }
	if rl.IsRevoked("jti-1") {
		t.Fatal("expected jti-1 entry to lapse at token expiry")
	}
	if rl.Len() != 0 {
		t.Fatalf("expected empty list, have %d entries", rl.Len())
	}
}
