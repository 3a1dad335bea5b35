package token

import (
	"testing"
	"time"
)

func newTestManager() *Manager {
	return NewManager("access-secret-for-tests", "refresh-secret-for-tests", time.Hour, 24*time.Hour)
}

func TestAccessTokenRoundTrip(t *testing.T) {
	m := newTestManager()

	signed, err := m.GenerateAccessToken(42, "session-abc")
	if err != nil {
		t.Fatalf("GenerateAccessToken failed: %v", err)
	}

	claims, err := m.VerifyAccessToken(signed)
	if err != nil {
		t.Fatalf("VerifyAccessToken failed: %v", err)
	}
	if claims.UID != 42 {
		t.Errorf("expected uid 42, got %d", claims.UID)
	}
	if claims.SID != "session-abc" {
		t.Errorf("expected sid session-abc, got %s", claims.SID)
	}
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	m := newTestManager()

	signed, err := m.GenerateRefreshToken(7, "sid-1")
	if err != nil {
		t.Fatalf("GenerateRefreshToken failed: %v", err)
	}

	claims, err := m.VerifyRefreshToken(signed)
	if err != nil {
		t.Fatalf("VerifyRefreshToken failed: %v", err)
	}
	if claims.UID != 7 || claims.SID != "sid-1" {
		t.Errorf("unexpected claims: uid=%d sid=%s", claims.UID, claims.SID)
	}
}

func TestTokenTypeMismatchRejected(t *testing.T) {
	m := newTestManager()

	access, err := m.GenerateAccessToken(1, "sid")
	if err != nil {
		t.Fatalf("GenerateAccessToken failed: %v", err)
	}
	refresh, err := m.GenerateRefreshToken(1, "sid")
	if err != nil {
		t.Fatalf("GenerateRefreshToken failed: %v", err)
	}

	if _, err := m.VerifyRefreshToken(access); err == nil {
		t.Error("expected access token to be rejected as refresh token")
	}
	if _, err := m.VerifyAccessToken(refresh); err == nil {
		t.Error("expected refresh token to be rejected as access token")
	}
}

func TestWrongSecretRejected(t *testing.T) {
	m := newTestManager()
	other := NewManager("another-access-secret", "another-refresh-secret", time.Hour, 24*time.Hour)

	signed, err := m.GenerateAccessToken(1, "sid")
	if err != nil {
		t.Fatalf("GenerateAccessToken failed: %v", err)
	}

	if _, err := other.VerifyAccessToken(signed); err == nil {
		t.Error("expected token signed with different secret to be rejected")
	}
}

func TestExpiredTokenRejected(t *testing.T) {
	m := NewManager("access-secret-for-tests", "refresh-secret-for-tests", -time.Minute, -time.Minute)

	signed, err := m.GenerateAccessToken(1, "sid")
	if err != nil {
		t.Fatalf("GenerateAccessToken failed: %v", err)
	}

	if _, err := m.VerifyAccessToken(signed); err == nil {
		t.Error("expected expired token to be rejected")
	}
}

func TestGarbageTokenRejected(t *testing.T) {
	m := newTestManager()

	if _, err := m.VerifyAccessToken("not.a.token"); err == nil {
		t.Error("expected malformed token to be rejected")
	}
}
