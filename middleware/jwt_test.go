package middleware

import "testing"

func TestTokenRoundTrip(t *testing.T) {
	token, refresh, err := GenerateTokens("u1", "alice", "chef")
	if err != nil {
		t.Fatal(err)
	}
	if token == "" || refresh == "" {
		t.Fatal("expected non-empty tokens")
	}

	claims, err := ValidateToken(token)
	if err != nil {
		t.Fatal(err)
	}
	if claims.UserID != "u1" || claims.Username != "alice" || claims.Role != "chef" {
		t.Errorf("claims = %+v, want u1/alice/chef", claims)
	}

	// Refresh tokens carry only the user id.
	refreshClaims, err := ValidateToken(refresh)
	if err != nil {
		t.Fatal(err)
	}
	if refreshClaims.UserID != "u1" || refreshClaims.Username != "" {
		t.Errorf("refresh claims = %+v, want uid only", refreshClaims)
	}
}

func TestValidateToken_Garbage(t *testing.T) {
	if _, err := ValidateToken("not.a.token"); err == nil {
		t.Error("expected error for malformed token")
	}
	if _, err := ValidateToken(""); err == nil {
		t.Error("expected error for empty token")
	}
}
