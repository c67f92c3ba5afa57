package service

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/claytonnetvision/banco-infantil-backend-sub001/internal/config"
	"github.com/claytonnetvision/banco-infantil-backend-sub001/internal/model"
)

func testAuth() *AuthService {
	return NewAuthService(&config.Config{
		JWTSecret:  "test-secret",
		JWTExpiry:  24 * time.Hour,
		BcryptCost: 4,
	})
}

func TestTokenRoundTrip(t *testing.T) {
	auth := testAuth()
	token, err := auth.GenerateToken(42, "escola@example.com")
	if err != nil {
		t.Fatal(err)
	}

	claims, err := auth.ValidateToken(token)
	if err != nil {
		t.Fatal(err)
	}
	if claims.ID != 42 || claims.Email != "escola@example.com" || claims.Role != model.RoleSchool {
		t.Fatalf("unexpected claims %+v", claims)
	}
	if got := claims.ExpiresAt.Sub(claims.IssuedAt.Time); got != 24*time.Hour {
		t.Fatalf("expiry window = %v, want 24h", got)
	}
	if claims.Subject != "42" || claims.RegisteredClaims.ID == "" {
		t.Fatalf("registered claims not set: %+v", claims.RegisteredClaims)
	}
}

func TestExpiredTokenRejected(t *testing.T) {
	auth := testAuth()
	issued := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	auth.now = func() time.Time { return issued }
	token, err := auth.GenerateToken(1, "a@b.com")
	if err != nil {
		t.Fatal(err)
	}

	auth.now = func() time.Time { return issued.Add(25 * time.Hour) }
	if _, err := auth.ValidateToken(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestTokenWithOtherSecretRejected(t *testing.T) {
	token, err := testAuth().GenerateToken(1, "a@b.com")
	if err != nil {
		t.Fatal(err)
	}
	other := NewAuthService(&config.Config{JWTSecret: "other", JWTExpiry: time.Hour})
	if _, err := other.ValidateToken(token); err == nil {
		t.Fatal("expected signature failure")
	}
}

func TestTokenWithUnknownRoleRejected(t *testing.T) {
	auth := testAuth()
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    TokenIssuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		},
		ID:   1,
		Role: model.Role("admin"),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := auth.ValidateToken(signed); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestTokenSigningConstraints(t *testing.T) {
	auth := testAuth()
	now := time.Now()
	valid := func() Claims {
		return Claims{
			RegisteredClaims: jwt.RegisteredClaims{
				Issuer:    TokenIssuer,
				IssuedAt:  jwt.NewNumericDate(now),
				ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
			},
			ID:   7,
			Role: model.RoleSchool,
		}
	}

	cases := map[string]struct {
		method jwt.SigningMethod
		mutate func(*Claims)
	}{
		"other algorithm": {method: jwt.SigningMethodHS512},
		"foreign issuer":  {method: jwt.SigningMethodHS256, mutate: func(c *Claims) { c.Issuer = "outro" }},
		"no expiry":       {method: jwt.SigningMethodHS256, mutate: func(c *Claims) { c.ExpiresAt = nil }},
		"missing school":  {method: jwt.SigningMethodHS256, mutate: func(c *Claims) { c.ID = 0 }},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			claims := valid()
			if tc.mutate != nil {
				tc.mutate(&claims)
			}
			signed, err := jwt.NewWithClaims(tc.method, claims).SignedString([]byte("test-secret"))
			if err != nil {
				t.Fatal(err)
			}
			if _, err := auth.ValidateToken(signed); !errors.Is(err, ErrInvalidToken) {
				t.Fatalf("expected ErrInvalidToken, got %v", err)
			}
		})
	}
}

func TestPasswordHashing(t *testing.T) {
	auth := testAuth()
	hash, err := auth.HashPassword("segredo123")
	if err != nil {
		t.Fatal(err)
	}
	if hash == "segredo123" {
		t.Fatal("password stored in clear")
	}
	if err := auth.CheckPassword(hash, "segredo123"); err != nil {
		t.Fatalf("valid password rejected: %v", err)
	}
	if err := auth.CheckPassword(hash, "errada"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}
