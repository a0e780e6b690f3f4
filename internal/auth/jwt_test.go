package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestGenerateAndParseJWT(t *testing.T) {
	token, err := GenerateJWT("secret", "ava@example.com", "sess-1", time.Hour)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	claims, err := ParseJWT("secret", token)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if claims.Email != "ava@example.com" {
		t.Errorf("expected email ava@example.com, got %s", claims.Email)
	}
	if claims.SessionID != "sess-1" {
		t.Errorf("expected session sess-1, got %s", claims.SessionID)
	}
}

func TestParseJWT_WrongSecret(t *testing.T) {
	token, _ := GenerateJWT("secret", "ava@example.com", "sess-1", time.Hour)

	if _, err := ParseJWT("other", token); err == nil {
		t.Fatal("expected error for wrong secret")
	}
}

func TestParseJWT_Expired(t *testing.T) {
	claims := Claims{
		Email:     "ava@example.com",
		SessionID: "sess-1",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
			Issuer:    issuer,
		},
	}
	token, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))

	if _, err := ParseJWT("secret", token); err == nil {
		t.Fatal("expected error for expired token")
	}
}

func TestParseJWT_MissingSession(t *testing.T) {
	token, _ := GenerateJWT("secret", "ava@example.com", "", time.Hour)

	if _, err := ParseJWT("secret", token); err == nil {
		t.Fatal("expected error for token without session id")
	}
}

func TestParseJWT_WrongAlgorithm(t *testing.T) {
	claims := Claims{Email: "ava@example.com", SessionID: "s", RegisteredClaims: jwt.RegisteredClaims{Issuer: issuer}}
	token, _ := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)

	if _, err := ParseJWT("secret", token); err == nil {
		t.Fatal("expected error for unsigned token")
	}
}
