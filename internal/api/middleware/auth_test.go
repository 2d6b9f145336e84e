package middleware

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixedClock returns a preset time, so issued tokens have deterministic expiry
type fixedClock struct {
	now time.Time
}

func (c *fixedClock) Now() time.Time                  { return c.now }
func (c *fixedClock) Since(t time.Time) time.Duration { return c.now.Sub(t) }

func testAuthConfig() AuthConfig {
	return AuthConfig{
		JWTSecret: "test-secret",
		TokenTTL:  time.Hour,
		APIKeys:   []string{"service-key-1", "service-key-2"},
	}
}

func TestTokenIssuer_Issue(t *testing.T) {
	cfg := testAuthConfig()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	issuer := NewTokenIssuer(cfg, &fixedClock{now: now})

	t.Run("issues a verifiable token", func(t *testing.T) {
		signed, expiresAt, err := issuer.Issue(42)
		require.NoError(t, err)
		assert.NotEmpty(t, signed)
		assert.Equal(t, now.Add(time.Hour), expiresAt)

		result := Authenticate("Bearer "+signed, cfg)
		require.True(t, result.Success, "auth error: %v", result.Error)
		assert.Equal(t, "jwt", result.AuthType)
		assert.Equal(t, int64(42), result.UserID)
		require.NotNil(t, result.Claims)
		assert.Equal(t, "xlo-server", result.Claims.Issuer)
		assert.Equal(t, "42", result.Claims.Subject)
	})

	t.Run("fails without a secret", func(t *testing.T) {
		bare := NewTokenIssuer(AuthConfig{TokenTTL: time.Hour}, &fixedClock{now: now})
		_, _, err := bare.Issue(42)
		assert.Error(t, err)
	})
}

func TestAuthenticate_JWT(t *testing.T) {
	cfg := testAuthConfig()

	t.Run("missing header", func(t *testing.T) {
		result := Authenticate("", cfg)
		assert.False(t, result.Success)
		assert.Error(t, result.Error)
	})

	t.Run("malformed header", func(t *testing.T) {
		result := Authenticate("Bearer", cfg)
		assert.False(t, result.Success)
	})

	t.Run("unsupported scheme", func(t *testing.T) {
		result := Authenticate("Basic dXNlcjpwYXNz", cfg)
		assert.False(t, result.Success)
		assert.Contains(t, result.Error.Error(), "unsupported authorization type")
	})

	t.Run("garbage token", func(t *testing.T) {
		result := Authenticate("Bearer not-a-jwt", cfg)
		assert.False(t, result.Success)
	})

	t.Run("wrong secret", func(t *testing.T) {
		otherIssuer := NewTokenIssuer(AuthConfig{JWTSecret: "other-secret", TokenTTL: time.Hour}, &fixedClock{now: time.Now()})
		signed, _, err := otherIssuer.Issue(7)
		require.NoError(t, err)

		result := Authenticate("Bearer "+signed, cfg)
		assert.False(t, result.Success)
	})

	t.Run("expired token", func(t *testing.T) {
		past := &fixedClock{now: time.Now().Add(-2 * time.Hour)}
		issuer := NewTokenIssuer(cfg, past)
		signed, _, err := issuer.Issue(7)
		require.NoError(t, err)

		result := Authenticate("Bearer "+signed, cfg)
		assert.False(t, result.Success)
		assert.Error(t, result.Error)
	})

	t.Run("non-numeric subject", func(t *testing.T) {
		claims := jwt.RegisteredClaims{
			Issuer:    "xlo-server",
			Subject:   "not-a-number",
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		}
		signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(cfg.JWTSecret))
		require.NoError(t, err)

		result := Authenticate("Bearer "+signed, cfg)
		assert.False(t, result.Success)
		assert.Contains(t, result.Error.Error(), "invalid token subject")
	})

	t.Run("rejects a non-HMAC algorithm", func(t *testing.T) {
		// alg=none tokens must never validate
		claims := jwt.RegisteredClaims{Subject: "42"}
		token := jwt.NewWithClaims(jwt.SigningMethodNone, claims)
		signed, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)

		result := Authenticate("Bearer "+signed, cfg)
		assert.False(t, result.Success)
	})
}

func TestAuthenticate_APIKey(t *testing.T) {
	cfg := testAuthConfig()

	t.Run("valid key", func(t *testing.T) {
		result := Authenticate("ApiKey service-key-1", cfg)
		require.True(t, result.Success)
		assert.Equal(t, "apikey", result.AuthType)
		assert.Zero(t, result.UserID)
	})

	t.Run("scheme is case insensitive", func(t *testing.T) {
		result := Authenticate("apikey service-key-2", cfg)
		assert.True(t, result.Success)
	})

	t.Run("unknown key", func(t *testing.T) {
		result := Authenticate("ApiKey wrong-key", cfg)
		assert.False(t, result.Success)
	})

	t.Run("no keys configured", func(t *testing.T) {
		result := Authenticate("ApiKey service-key-1", AuthConfig{JWTSecret: "s"})
		assert.False(t, result.Success)
		assert.Contains(t, result.Error.Error(), "no API keys configured")
	})
}
