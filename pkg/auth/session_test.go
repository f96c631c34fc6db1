package auth

import "testing"

func TestSessionToken_RoundTrip(t *testing.T) {
	secret := SessionSecretBytes("dev-secret-change-in-production-32bytes")
	token := CreateSessionToken("user-abc", secret)

	userID, err := VerifySessionToken(token, secret)
	if err != nil {
		t.Fatalf("VerifySessionToken() error: %v", err)
	}
	if userID != "user-abc" {
		t.Errorf("expected user-abc, got %q", userID)
	}
}

func TestVerifySessionToken_TamperedPayload_Fails(t *testing.T) {
	secret := SessionSecretBytes("dev-secret-change-in-production-32bytes")
	token := CreateSessionToken("user-abc", secret)
	other := CreateSessionToken("user-xyz", secret)

	// Payload of one token with the signature of another.
	sig := token[len(token)-64:]
	payload := other[:len(other)-64]
	if _, err := VerifySessionToken(payload+sig, secret); err == nil {
		t.Error("expected tampered token rejected")
	}
}

func TestSessionSecretBytes_PadsShortSecret(t *testing.T) {
	b := SessionSecretBytes("short")
	if len(b) < 32 {
		t.Errorf("expected at least 32 bytes, got %d", len(b))
	}
}
