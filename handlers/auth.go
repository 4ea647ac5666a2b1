package handlers

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Sriramnat100/resumeoptimizer-sub000/pkg/logger"
	"github.com/Sriramnat100/resumeoptimizer-sub000/pkg/middleware"
)

// Revoker invalidates an access token before it expires.
type Revoker interface {
	middleware.Verifier
	Revoke(ctx context.Context, raw string) error
}

// AuthHandler serves the token lifecycle endpoints of the gateway.
type AuthHandler struct {
	rev Revoker
}

// RegisterAuthRoutes mounts /api/auth. Nothing is mounted without a revoker.
func RegisterAuthRoutes(r gin.IRouter, rev Revoker) {
	if rev == nil {
		return
	}
	h := &AuthHandler{rev: rev}
	a := r.Group("/api/auth")
	a.POST("/logout", middleware.AuthMiddleware(rev), h.Logout)
}

// Logout revokes the bearer token on the request until it expires.
func (h *AuthHandler) Logout(c *gin.Context) {
	var raw string
	if n, _ := fmt.Sscanf(c.GetHeader("Authorization"), "Bearer %s", &raw); n != 1 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid Authorization header"})
		return
	}
	if err := h.rev.Revoke(c.Request.Context(), raw); err != nil {
		logger.Warnf("logout user=%s: %v", middleware.UserID(c), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to revoke access token"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}
