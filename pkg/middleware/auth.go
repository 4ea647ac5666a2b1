package middleware

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Context keys set by the auth middleware.
const (
	ClaimsKey = "claims"
	UserIDKey = "userID"
)

// Token is minimal interface for a verified token that can expose claims
type Token interface {
	Claims(v interface{}) error
}

// Verifier is the minimal interface the middleware depends on
type Verifier interface {
	Verify(ctx context.Context, raw string) (Token, error)
}

func bearer(c *gin.Context) (string, bool) {
	var token string
	if n, _ := fmt.Sscanf(c.GetHeader("Authorization"), "Bearer %s", &token); n != 1 {
		return "", false
	}
	return token, true
}

func authenticate(c *gin.Context, ver Verifier, raw string) error {
	tok, err := ver.Verify(c.Request.Context(), raw)
	if err != nil {
		return err
	}
	var claims map[string]interface{}
	if err := tok.Claims(&claims); err != nil {
		return fmt.Errorf("failed to parse claims: %w", err)
	}
	c.Set(ClaimsKey, claims)
	if sub, ok := claims["sub"].(string); ok {
		c.Set(UserIDKey, sub)
	}
	return nil
}

// AuthMiddleware returns a Gin middleware that verifies Bearer tokens using the provided verifier
func AuthMiddleware(ver Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing Authorization header"})
			return
		}
		token, ok := bearer(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid Authorization header"})
			return
		}
		if err := authenticate(c, ver, token); err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token", "details": err.Error()})
			return
		}
		c.Next()
	}
}

// OptionalAuth sets claims when a valid bearer token is present and lets
// every request through.
func OptionalAuth(ver Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token, ok := bearer(c); ok && ver != nil {
			_ = authenticate(c, ver, token)
		}
		c.Next()
	}
}

// UserID returns the authenticated subject, or "".
func UserID(c *gin.Context) string {
	return c.GetString(UserIDKey)
}
