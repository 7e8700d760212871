package auth

import (
	"chat-live/domain/chat"
	"chat-live/errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestHashAndCompare(t *testing.T) {
	req := require.New(t)
	password := "MyVeryStr0ngPassword!"

	hash, err := HashPassword(password)
	req.NoError(err)
	req.True(strings.HasPrefix(hash, "$argon2id$"))

	match, err := ComparePassword(password, hash)
	req.NoError(err)
	req.True(match)

	match, err = ComparePassword("WrongPassword", hash)
	req.NoError(err)
	req.False(match)

	_, err = ComparePassword(password, "plain-text")
	req.Error(err)
}

func TestSignupValidation(t *testing.T) {
	valid := chat.SignupCommand{FullName: "Alice", Email: "alice@example.com", Password: "ComplexPass123!", Bio: "hello"}
	tests := []struct {
		name    string
		mutate  func(c *chat.SignupCommand)
		wantErr error
	}{
		{"valid request", func(c *chat.SignupCommand) {}, nil},
		{"missing bio", func(c *chat.SignupCommand) { c.Bio = "" }, errors.ErrInvalidPayload},
		{"missing full name", func(c *chat.SignupCommand) { c.FullName = "" }, errors.ErrInvalidPayload},
		{"invalid email", func(c *chat.SignupCommand) { c.Email = "notanemail" }, errors.ErrInvalidPayload},
		{"password too short", func(c *chat.SignupCommand) { c.Password = "Short1!" }, errors.ErrInvalidPayload},
		{"password too long", func(c *chat.SignupCommand) { c.Password = strings.Repeat("a", 73) }, errors.ErrInvalidPayload},
		{"missing digit", func(c *chat.SignupCommand) { c.Password = "NoDigitPassword!" }, errors.ErrInvalidPassword},
		{"missing special char", func(c *chat.SignupCommand) { c.Password = "NoSpecialChar123" }, errors.ErrInvalidPassword},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := valid
			tt.mutate(&cmd)
			err := ValidateSignup(cmd)
			if tt.wantErr == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestTokenIssuer(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", time.Hour)

	t.Run("should round trip the user id", func(t *testing.T) {
		req := require.New(t)
		token, err := issuer.GenerateToken("user-123", []string{"user"})
		req.NoError(err)

		claims, err := issuer.ValidateToken(token)
		req.NoError(err)
		req.Equal("user-123", claims.UserID)
		req.Equal([]string{"user"}, claims.Roles)
	})

	t.Run("should reject a token signed with another secret", func(t *testing.T) {
		req := require.New(t)
		token, err := NewTokenIssuer("other-secret", time.Hour).GenerateToken("user-123", nil)
		req.NoError(err)

		_, err = issuer.ValidateToken(token)
		req.ErrorIs(err, errors.ErrUnauthenticated)
	})

	t.Run("should reject an expired token", func(t *testing.T) {
		req := require.New(t)
		token, err := NewTokenIssuer("test-secret", -time.Minute).GenerateToken("user-123", nil)
		req.NoError(err)

		_, err = issuer.ValidateToken(token)
		req.ErrorIs(err, errors.ErrUnauthenticated)
	})

	t.Run("should reject garbage", func(t *testing.T) {
		_, err := issuer.ValidateToken("invalid-token-string")
		require.ErrorIs(t, err, errors.ErrUnauthenticated)
	})
}

func BenchmarkHashPassword(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_, _ = HashPassword("A-very-long-and-complex-password-for-bench-123!")
	}
}
