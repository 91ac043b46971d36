package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
)

func testManager() *JWTManager {
	secret := "test-secret-at-least-32-chars-long-for-security"
	return NewJWTManager(secret, "englearn-test", 15*time.Minute, time.Hour)
}

func TestJWTManager_GenerateAndValidate_Success(t *testing.T) {
	manager := testManager()
	userID := uuid.New()

	token, err := manager.GenerateAccessToken(userID, RoleUser)
	if err != nil {
		t.Fatalf("GenerateAccessToken failed: %v", err)
	}
	if token == "" {
		t.Fatal("expected non-empty token")
	}

	validatedID, role, err := manager.ValidateAccessToken(token)
	if err != nil {
		t.Fatalf("ValidateAccessToken failed: %v", err)
	}
	if validatedID != userID {
		t.Errorf("expected userID %s, got %s", userID, validatedID)
	}
	if role != RoleUser {
		t.Errorf("expected role 'user', got %q", role)
	}
}

func TestJWTManager_GenerateAndValidate_AdminRole(t *testing.T) {
	manager := testManager()
	userID := uuid.New()

	token, err := manager.GenerateAccessToken(userID, RoleAdmin)
	if err != nil {
		t.Fatalf("GenerateAccessToken failed: %v", err)
	}

	_, role, err := manager.ValidateAccessToken(token)
	if err != nil {
		t.Fatalf("ValidateAccessToken failed: %v", err)
	}
	if role != RoleAdmin {
		t.Errorf("expected role 'admin', got %q", role)
	}
}

func TestJWTManager_ValidateAccessToken_Expired(t *testing.T) {
	secret := "test-secret-at-least-32-chars-long-for-security"
	// Both TTLs already expired.
	manager := NewJWTManager(secret, "englearn-test", -time.Hour, -time.Hour)
	userID := uuid.New()

	token, err := manager.GenerateAccessToken(userID, RoleUser)
	if err != nil {
		t.Fatalf("GenerateAccessToken failed: %v", err)
	}

	_, _, err = manager.ValidateAccessToken(token)
	if err == nil {
		t.Fatal("expected error for expired token, got nil")
	}
	if !strings.Contains(err.Error(), "expired") && !strings.Contains(err.Error(), "parse token") {
		t.Errorf("expected expiry-related error, got: %v", err)
	}
}

func TestJWTManager_ValidateAccessToken_InvalidSignature(t *testing.T) {
	secret2 := "different-secret-32-chars-long-for-security!!"
	manager1 := testManager()
	manager2 := NewJWTManager(secret2, "englearn-test", 15*time.Minute, time.Hour)
	userID := uuid.New()

	token, err := manager1.GenerateAccessToken(userID, RoleUser)
	if err != nil {
		t.Fatalf("GenerateAccessToken failed: %v", err)
	}

	_, _, err = manager2.ValidateAccessToken(token)
	if err == nil {
		t.Fatal("expected error for invalid signature, got nil")
	}
}

func TestJWTManager_ValidateAccessToken_Malformed(t *testing.T) {
	manager := testManager()

	malformedTokens := []string{
		"not.a.jwt",
		"invalid-token",
		"header.payload", // Missing signature
	}

	for _, token := range malformedTokens {
		_, _, err := manager.ValidateAccessToken(token)
		if err == nil {
			t.Errorf("expected error for malformed token %q, got nil", token)
		}
	}
}

func TestJWTManager_ValidateAccessToken_WrongIssuer(t *testing.T) {
	secret := "test-secret-at-least-32-chars-long-for-security"
	manager1 := NewJWTManager(secret, "englearn-test", 15*time.Minute, time.Hour)
	manager2 := NewJWTManager(secret, "wrong-issuer", 15*time.Minute, time.Hour)
	userID := uuid.New()

	token, err := manager1.GenerateAccessToken(userID, RoleUser)
	if err != nil {
		t.Fatalf("GenerateAccessToken failed: %v", err)
	}

	_, _, err = manager2.ValidateAccessToken(token)
	if err == nil {
		t.Fatal("expected error for wrong issuer, got nil")
	}
	if !strings.Contains(err.Error(), "invalid issuer") {
		t.Errorf("expected 'invalid issuer' error, got: %v", err)
	}
}

func TestJWTManager_ValidateAccessToken_EmptyString(t *testing.T) {
	manager := testManager()

	_, _, err := manager.ValidateAccessToken("")
	if err == nil {
		t.Fatal("expected error for empty token, got nil")
	}
	if !strings.Contains(err.Error(), "empty") {
		t.Errorf("expected 'empty' error, got: %v", err)
	}
}

func TestJWTManager_AdminTTLLongerThanUser(t *testing.T) {
	secret := "test-secret-at-least-32-chars-long-for-security"
	// User tokens expired, admin tokens still valid: admin TTL is applied per role.
	manager := NewJWTManager(secret, "englearn-test", -time.Hour, time.Hour)
	userID := uuid.New()

	userToken, err := manager.GenerateAccessToken(userID, RoleUser)
	if err != nil {
		t.Fatalf("GenerateAccessToken(user) failed: %v", err)
	}
	adminToken, err := manager.GenerateAccessToken(userID, RoleAdmin)
	if err != nil {
		t.Fatalf("GenerateAccessToken(admin) failed: %v", err)
	}

	if _, _, err := manager.ValidateAccessToken(userToken); err == nil {
		t.Error("expected user token to be expired")
	}
	if _, _, err := manager.ValidateAccessToken(adminToken); err != nil {
		t.Errorf("expected admin token to be valid, got: %v", err)
	}
}

func TestJWTManager_GenerateResetToken_Uniqueness(t *testing.T) {
	manager := testManager()

	tokens := make(map[string]bool)
	hashes := make(map[string]bool)

	for i := 0; i < 100; i++ {
		raw, hash, err := manager.GenerateResetToken()
		if err != nil {
			t.Fatalf("GenerateResetToken failed: %v", err)
		}
		if raw == "" || hash == "" {
			t.Fatal("expected non-empty raw and hash")
		}

		if tokens[raw] {
			t.Errorf("duplicate raw token: %s", raw)
		}
		if hashes[hash] {
			t.Errorf("duplicate hash: %s", hash)
		}

		tokens[raw] = true
		hashes[hash] = true
	}
}

func TestJWTManager_GenerateResetToken_HashMatches(t *testing.T) {
	manager := testManager()

	raw, hash, err := manager.GenerateResetToken()
	if err != nil {
		t.Fatalf("GenerateResetToken failed: %v", err)
	}

	recomputedHash := HashToken(raw)
	if recomputedHash != hash {
		t.Errorf("hash mismatch: expected %s, got %s", hash, recomputedHash)
	}
}

func TestHashToken_Deterministic(t *testing.T) {
	raw := "test-token-12345"

	hash1 := HashToken(raw)
	hash2 := HashToken(raw)

	if hash1 != hash2 {
		t.Errorf("hash is not deterministic: %s != %s", hash1, hash2)
	}

	differentRaw := "different-token-67890"
	hash3 := HashToken(differentRaw)
	if hash1 == hash3 {
		t.Error("different inputs produced same hash")
	}
}
