package service

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

func TestIssueToken(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}
	svc := NewAuthService(string(hash), "signing-key")
	fixed := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }

	tok, exp, err := svc.IssueToken("s3cret")
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if !exp.Equal(fixed.Add(tokenTTL)) {
		t.Errorf("unexpected expiry %v", exp)
	}

	parsed, err := jwt.Parse(tok, func(*jwt.Token) (interface{}, error) { return []byte("signing-key"), nil })
	if err != nil || !parsed.Valid {
		t.Fatalf("token did not verify: %v", err)
	}
	claims := parsed.Claims.(jwt.MapClaims)
	if claims["sub"] != "api" {
		t.Errorf("unexpected subject %v", claims["sub"])
	}

	if _, _, err := svc.IssueToken("wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestIssueTokenDisabled(t *testing.T) {
	tests := []struct {
		name, hash, secret string
	}{
		{name: "no secret", hash: "$2a$04$abc"},
		{name: "no hash", secret: "k"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewAuthService(tt.hash, tt.secret)
			if _, _, err := svc.IssueToken("anything"); !errors.Is(err, ErrAuthDisabled) {
				t.Errorf("expected ErrAuthDisabled, got %v", err)
			}
		})
	}
}

func TestHashAPIKey(t *testing.T) {
	hash, err := HashAPIKey("key")
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(hash), []byte("key")) != nil {
		t.Error("hash does not match key")
	}
	if _, err := HashAPIKey(""); err == nil {
		t.Error("expected error for empty key")
	}
}
