package jwt

import (
	"errors"
	"testing"
	"time"

	"github.com/bmizerany/assert"
	"github.com/google/uuid"
)

func TestGenerateAndParseToken(t *testing.T) {
	id := uuid.New()
	token, err := GenerateToken("secret", id, "luffy@example.com", "Luffy", "authenticated", time.Hour)
	if err != nil {
		t.Fatal(err)
	}

	claims, err := ParseToken("secret", token)
	if err != nil {
		t.Fatal(err)
	}

	got, err := claims.UserID()
	if err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, id, got)
	assert.Equal(t, "Luffy", claims.DisplayName())
	assert.Equal(t, "authenticated", claims.Role)
}

func TestParseTokenRejectsWrongSecret(t *testing.T) {
	token, err := GenerateToken("secret", uuid.New(), "", "", "", time.Hour)
	if err != nil {
		t.Fatal(err)
	}

	_, err = ParseToken("other", token)
	assert.T(t, errors.Is(err, ErrInvalidToken))
}

func TestParseTokenRejectsExpired(t *testing.T) {
	token, err := GenerateToken("secret", uuid.New(), "", "", "", -time.Minute)
	if err != nil {
		t.Fatal(err)
	}

	_, err = ParseToken("secret", token)
	assert.T(t, errors.Is(err, ErrInvalidToken))
}

func TestDisplayNameFallbacks(t *testing.T) {
	tests := []struct {
		name   string
		claims Claims
		want   string
	}{
		{"metadata", Claims{Email: "a@b.c", UserMetadata: map[string]any{"display_name": " Zoro "}}, "Zoro"},
		{"email", Claims{Email: "nami@example.com"}, "nami"},
		{"blank metadata", Claims{Email: "sanji@example.com", UserMetadata: map[string]any{"display_name": "  "}}, "sanji"},
		{"nothing", Claims{}, "Player"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.claims.DisplayName())
		})
	}
}
