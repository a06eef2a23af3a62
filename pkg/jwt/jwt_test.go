package jwt

import (
	"errors"
	"testing"
	"time"
)

var secret = []byte("test-secret")

func TestAccessToken(t *testing.T) {
	token, err := GenerateToken(secret, 9, TokenAccess, time.Hour)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	claims, err := ParseToken(secret, TokenAccess, token)
	if err != nil || claims.UserID != 9 {
		t.Fatalf("claims=%+v err=%v", claims, err)
	}

	if _, err := ParseToken([]byte("other"), TokenAccess, token); err == nil {
		t.Fatalf("expected signature error")
	}
	if _, err := ParseToken(secret, "refresh", token); !errors.Is(err, ErrTokenType) {
		t.Fatalf("expected ErrTokenType, got %v", err)
	}

	expired, _ := GenerateToken(secret, 9, TokenAccess, -time.Minute)
	if _, err := ParseToken(secret, TokenAccess, expired); err == nil {
		t.Fatalf("expected expired token to fail")
	}
}

func TestOperationToken(t *testing.T) {
	token, err := GenerateOperationToken(secret, 5, OperationConfirm, "", time.Hour)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if _, ok := ParseOperationToken(secret, 5, OperationConfirm, token); !ok {
		t.Fatalf("owner should validate")
	}
	if _, ok := ParseOperationToken(secret, 0, OperationConfirm, token); !ok {
		t.Fatalf("anonymous validation should pass")
	}
	if _, ok := ParseOperationToken(secret, 6, OperationConfirm, token); ok {
		t.Fatalf("token of another user accepted")
	}
	if _, ok := ParseOperationToken(secret, 5, OperationResetPassword, token); ok {
		t.Fatalf("token accepted for another operation")
	}

	noEmail, _ := GenerateOperationToken(secret, 5, OperationChangeEmail, "", time.Hour)
	if _, ok := ParseOperationToken(secret, 5, OperationChangeEmail, noEmail); ok {
		t.Fatalf("change-email token without new email accepted")
	}
	withEmail, _ := GenerateOperationToken(secret, 5, OperationChangeEmail, "new@example.com", time.Hour)
	claims, ok := ParseOperationToken(secret, 5, OperationChangeEmail, withEmail)
	if !ok || claims.NewEmail != "new@example.com" {
		t.Fatalf("claims=%+v ok=%v", claims, ok)
	}
}
