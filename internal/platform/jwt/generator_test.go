package jwtmw

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TestNewGenerator は各種設定でGeneratorが正しく生成されることを検証します。
func TestNewGenerator(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		secret         string
		expiration     time.Duration
		wantExpiration time.Duration
		wantErr        error
	}{
		{"standard config", "my-secret-key", time.Hour, time.Hour, nil},
		{"long expiration", "secret", 24 * time.Hour * 30, 24 * time.Hour * 30, nil},
		{"zero expiration falls back", "s", 0, DefaultExpiration, nil},
		{"empty secret", "", time.Hour, 0, ErrEmptySecret},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			gen, err := NewGenerator(tt.secret, tt.expiration)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected error %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if string(gen.secret) != tt.secret {
				t.Errorf("expected secret %q, got %q", tt.secret, string(gen.secret))
			}
			if gen.expiration != tt.wantExpiration {
				t.Errorf("expected expiration %v, got %v", tt.wantExpiration, gen.expiration)
			}
		})
	}
}

// TestGenerator_GenerateToken は生成されたJWTトークンが有効で正しいクレームを含むことを検証します。
func TestGenerator_GenerateToken(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		email string
		role  string
	}{
		{"basic user", "user@example.com", "user"},
		{"admin", "admin@example.com", "admin"},
		{"user with special email", "user+tag@example.com", "user"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			gen, _ := NewGenerator("test-secret", time.Hour)
			tokenStr, err := gen.GenerateToken(tt.email, tt.role)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			token, err := jwt.Parse(tokenStr, func(tok *jwt.Token) (interface{}, error) {
				if _, ok := tok.Method.(*jwt.SigningMethodHMAC); !ok {
					t.Errorf("unexpected signing method: %v", tok.Header["alg"])
				}
				return []byte("test-secret"), nil
			})
			if err != nil {
				t.Fatalf("failed to parse token: %v", err)
			}

			claims := token.Claims.(jwt.MapClaims)
			if email, ok := claims["email"].(string); !ok || email != tt.email {
				t.Errorf("expected email %q, got %v", tt.email, claims["email"])
			}
			if role, ok := claims["role"].(string); !ok || role != tt.role {
				t.Errorf("expected role %q, got %v", tt.role, claims["role"])
			}
		})
	}
}

// TestGenerator_GenerateToken_Expiration はexpがiatから有効期間後に設定されることを検証します。
func TestGenerator_GenerateToken_Expiration(t *testing.T) {
	t.Parallel()

	fixed := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	gen, _ := NewGenerator("test-secret", time.Hour)
	gen.now = func() time.Time { return fixed }

	tokenStr, err := gen.GenerateToken("test@example.com", "user")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// 固定時刻のため期限切れトークンとして検証をスキップする
	token, _, err := jwt.NewParser().ParseUnverified(tokenStr, jwt.MapClaims{})
	if err != nil {
		t.Fatalf("failed to parse token: %v", err)
	}
	claims := token.Claims.(jwt.MapClaims)

	if iat := int64(claims["iat"].(float64)); iat != fixed.Unix() {
		t.Errorf("expected iat %d, got %d", fixed.Unix(), iat)
	}
	if exp := int64(claims["exp"].(float64)); exp != fixed.Add(time.Hour).Unix() {
		t.Errorf("expected exp %d, got %d", fixed.Add(time.Hour).Unix(), exp)
	}
}
