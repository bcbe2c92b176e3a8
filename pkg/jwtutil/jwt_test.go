package jwtutil

import (
	"testing"

	"github.com/faturaime/admin-api/pkg/config"
)

func TestGenerateAndValidateToken(t *testing.T) {
	Initialize(&config.JWTConfig{SigningKey: "test-signing-key", ExpirationHours: 1})

	tenantID := uint(3)
	token, err := GenerateToken("user@example.com", 42, &tenantID, "Acme", true, []string{"ROLE_ADMIN", "ROLE_USER"})
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	claims, err := ValidateToken(token)
	if err != nil {
		t.Fatalf("failed to validate token: %v", err)
	}

	if claims.Email != "user@example.com" {
		t.Errorf("unexpected email %q", claims.Email)
	}
	if claims.UserID != 42 {
		t.Errorf("unexpected user id %d", claims.UserID)
	}
	if claims.TenantID == nil || *claims.TenantID != 3 {
		t.Errorf("unexpected tenant id %v", claims.TenantID)
	}
	if !claims.TenantAdmin {
		t.Error("expected tenant admin scope")
	}
	if len(claims.Roles) != 2 {
		t.Errorf("unexpected roles %v", claims.Roles)
	}
}

func TestValidateTokenRejectsTampering(t *testing.T) {
	Initialize(&config.JWTConfig{SigningKey: "test-signing-key", ExpirationHours: 1})

	token, err := GenerateToken("user@example.com", 42, nil, "", false, nil)
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	if _, err := ValidateToken(token + "x"); err == nil {
		t.Error("expected tampered token to be rejected")
	}

	// A token signed with a different key must not validate
	Initialize(&config.JWTConfig{SigningKey: "other-key", ExpirationHours: 1})
	if _, err := ValidateToken(token); err == nil {
		t.Error("expected token signed with another key to be rejected")
	}
}
