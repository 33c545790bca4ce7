package service

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"chargerelay/internal/models"
)

func TestTokenRoundTrip(t *testing.T) {
	svc := NewTokenService("secret", time.Hour)

	token, err := svc.GenerateToken(7, models.RoleUser)
	if err != nil {
		t.Fatalf("GenerateToken returned error: %v", err)
	}

	claims, err := svc.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken returned error: %v", err)
	}
	if claims.UserID != 7 || claims.Role != models.RoleUser {
		t.Fatalf("claims = %+v", claims)
	}
	if claims.Issuer != tokenIssuer {
		t.Fatalf("issuer = %q, want %q", claims.Issuer, tokenIssuer)
	}
}

func TestValidateTokenRejectsForeignIssuer(t *testing.T) {
	svc := NewTokenService("secret", time.Hour)

	foreign := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		UserID: 7,
		Role:   models.RoleUser,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "someone-else",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	signed, err := foreign.SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("SignedString returned error: %v", err)
	}

	if _, err := svc.ValidateToken(signed); err == nil {
		t.Fatal("token with foreign issuer was accepted")
	}
}

func TestGenerateTokenRequiresUser(t *testing.T) {
	svc := NewTokenService("secret", time.Hour)
	if _, err := svc.GenerateToken(0, models.RoleUser); err == nil {
		t.Fatal("expected error for zero user id")
	}
}
