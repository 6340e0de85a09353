package utils

import "testing"

func TestGenerateAndValidateJWT(t *testing.T) {
	token, err := GenerateJWT("test-secret", "abc123", "user")
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}

	claims, err := ValidateJWT("test-secret", token)
	if err != nil {
		t.Fatalf("ValidateJWT: %v", err)
	}
	if claims.UserID != "abc123" {
		t.Errorf("UserID = %q, want %q", claims.UserID, "abc123")
	}
	if claims.Role != "user" {
		t.Errorf("Role = %q, want %q", claims.Role, "user")
	}
}

func TestValidateJWT_WrongSecret(t *testing.T) {
	token, err := GenerateJWT("first-secret", "abc123", "user")
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}

	if _, err := ValidateJWT("other-secret", token); err == nil {
		t.Error("token signed with a different secret validated")
	}
}

func TestGenerateJWT_EmptySecret(t *testing.T) {
	if _, err := GenerateJWT("", "abc123", "user"); err == nil {
		t.Error("expected error with an empty secret")
	}
}

func TestValidateJWT_Garbage(t *testing.T) {
	if _, err := ValidateJWT("test-secret", "not.a.token"); err == nil {
		t.Error("garbage token validated")
	}
}
