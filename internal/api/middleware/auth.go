package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/IN4XI4/xlo-server/internal/adapter"
	apierrors "github.com/IN4XI4/xlo-server/internal/api/shared/errors"
	"github.com/IN4XI4/xlo-server/internal/logger"
)

const (
	AUTH_TYPE_KEY    = "auth_type"
	AUTH_USER_ID_KEY = "auth_user_id"
	JWT_CLAIMS_KEY   = "jwt_claims"

	tokenIssuer = "xlo-server"
)

// AuthConfig holds authentication configuration
type AuthConfig struct {
	JWTSecret string // HMAC secret for HS256 session tokens
	TokenTTL  time.Duration
	APIKeys   []string
}

// AuthResult holds the result of authentication
type AuthResult struct {
	Success  bool
	AuthType string // "jwt" or "apikey"
	Claims   *jwt.RegisteredClaims
	UserID   int64
	Error    error
}

// TokenIssuer signs session tokens for authenticated users
type TokenIssuer struct {
	cfg   AuthConfig
	clock adapter.Clock
}

// NewTokenIssuer creates a token issuer backed by the given clock
func NewTokenIssuer(cfg AuthConfig, clock adapter.Clock) *TokenIssuer {
	return &TokenIssuer{cfg: cfg, clock: clock}
}

// Issue signs an HS256 session token carrying the user id as subject
func (i *TokenIssuer) Issue(userID int64) (string, time.Time, error) {
	if i.cfg.JWTSecret == "" {
		return "", time.Time{}, errors.New("JWT secret not configured")
	}

	now := i.clock.Now()
	expiresAt := now.Add(i.cfg.TokenTTL)
	claims := jwt.RegisteredClaims{
		Issuer:    tokenIssuer,
		Subject:   strconv.FormatInt(userID, 10),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(i.cfg.JWTSecret))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, expiresAt, nil
}

// Authenticate validates the Authorization header and returns the authentication result.
// This is a reusable function that can be called from middleware or tests.
func Authenticate(authHeader string, cfg AuthConfig) AuthResult {
	// Create a map for faster API key lookup
	apiKeyMap := make(map[string]bool)
	for _, key := range cfg.APIKeys {
		if key != "" {
			apiKeyMap[key] = true
		}
	}

	result := AuthResult{
		Success: false,
	}

	if authHeader == "" {
		result.Error = errors.New("missing Authorization header")
		return result
	}

	// Parse the authorization header
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 {
		result.Error = errors.New("invalid Authorization header format")
		return result
	}

	authType := strings.ToLower(parts[0])
	credentials := parts[1]

	switch authType {
	case "bearer":
		// JWT authentication
		claims, err := validateJWT(credentials, cfg.JWTSecret)
		if err != nil {
			result.Error = err
			return result
		}
		userID, err := strconv.ParseInt(claims.Subject, 10, 64)
		if err != nil {
			result.Error = fmt.Errorf("invalid token subject: %w", err)
			return result
		}
		result.Success = true
		result.AuthType = "jwt"
		result.Claims = claims
		result.UserID = userID

	case "apikey":
		// API Key authentication
		err := validateAPIKey(credentials, apiKeyMap)
		if err != nil {
			result.Error = err
			return result
		}
		result.Success = true
		result.AuthType = "apikey"

	default:
		result.Error = fmt.Errorf("unsupported authorization type: %s", authType)
		return result
	}

	return result
}

// Auth returns a gin middleware that requires a valid session token
func Auth(cfg AuthConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		result := Authenticate(authHeader, cfg)

		if !result.Success || result.AuthType != "jwt" {
			if result.Error == nil {
				result.Error = errors.New("session token required")
			}
			logger.Warn("Authentication failed",
				zap.Error(result.Error),
				zap.String("path", c.Request.URL.Path),
				zap.String("client_ip", c.ClientIP()),
			)
			apiErr := apierrors.NewUnauthorizedError("Authentication failed", result.Error.Error())
			c.AbortWithStatusJSON(http.StatusUnauthorized, apiErr)
			return
		}

		// Store authentication info in context
		c.Set(AUTH_TYPE_KEY, result.AuthType)
		c.Set(JWT_CLAIMS_KEY, result.Claims)
		c.Set(AUTH_USER_ID_KEY, result.UserID)

		c.Next()
	}
}

// APIKeyAuth returns a gin middleware that requires a valid API key.
// Used for service-to-service endpoints such as wallet credits.
func APIKeyAuth(cfg AuthConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		result := Authenticate(authHeader, cfg)

		if !result.Success || result.AuthType != "apikey" {
			if result.Error == nil {
				result.Error = errors.New("API key required")
			}
			logger.Warn("API key authentication failed",
				zap.Error(result.Error),
				zap.String("path", c.Request.URL.Path),
				zap.String("client_ip", c.ClientIP()),
			)
			apiErr := apierrors.NewUnauthorizedError("Authentication failed", result.Error.Error())
			c.AbortWithStatusJSON(http.StatusUnauthorized, apiErr)
			return
		}

		c.Set(AUTH_TYPE_KEY, result.AuthType)
		c.Next()
	}
}

// UserID extracts the authenticated user id set by the Auth middleware
func UserID(c *gin.Context) (int64, bool) {
	value, exists := c.Get(AUTH_USER_ID_KEY)
	if !exists {
		return 0, false
	}
	userID, ok := value.(int64)
	return userID, ok
}

// validateJWT validates an HS256 session token and returns its claims
func validateJWT(tokenString string, secret string) (*jwt.RegisteredClaims, error) {
	if secret == "" {
		return nil, errors.New("JWT secret not configured")
	}

	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		// Validate the signing method is HMAC
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})

	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	if !token.Valid {
		return nil, errors.New("invalid token")
	}

	// Validate standard claims
	now := time.Now()

	// Check expiration
	if claims.ExpiresAt != nil && claims.ExpiresAt.Before(now) {
		return nil, errors.New("token has expired")
	}

	// Check not before
	if claims.NotBefore != nil && claims.NotBefore.After(now) {
		return nil, errors.New("token not yet valid")
	}

	return claims, nil
}

// validateAPIKey validates an API key
func validateAPIKey(apiKey string, validKeys map[string]bool) error {
	if len(validKeys) == 0 {
		return errors.New("no API keys configured")
	}

	if !validKeys[apiKey] {
		return errors.New("invalid API key")
	}

	return nil
}
