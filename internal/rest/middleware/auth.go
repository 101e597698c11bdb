package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/finbooks/finbooks/internal/auth"
	"github.com/finbooks/finbooks/internal/config"
	"github.com/finbooks/finbooks/internal/logger"
	"github.com/finbooks/finbooks/internal/types"
	"github.com/gin-gonic/gin"
)

// GuestAuthenticateMiddleware attributes unauthenticated requests to the
// default tenant and user. Used when no auth secret is configured, for
// local development and single-tenant installs.
func GuestAuthenticateMiddleware(c *gin.Context) {
	ctx := c.Request.Context()
	ctx = context.WithValue(ctx, types.CtxTenantID, types.DefaultTenantID)
	ctx = context.WithValue(ctx, types.CtxUserID, types.DefaultUserID)
	c.Request = c.Request.WithContext(ctx)
	c.Next()
}

// AuthenticateMiddleware validates the Bearer token in the Authorization
// header and sets the user and tenant IDs in the request context for
// downstream handlers. Every repository read and write scopes by the
// tenant it finds there.
func AuthenticateMiddleware(cfg *config.Configuration, logger *logger.Logger) gin.HandlerFunc {
	authProvider := auth.NewProvider(cfg)

	return func(c *gin.Context) {
		authHeader := c.GetHeader(types.HeaderAuthorization)
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			c.Abort()
			return
		}

		if !strings.HasPrefix(authHeader, "Bearer ") {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid authorization header format"})
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		claims, err := authProvider.ValidateToken(c.Request.Context(), tokenString)
		if err != nil {
			logger.Errorw("failed to validate token", "error", err)
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			c.Abort()
			return
		}

		if claims == nil || claims.UserID == "" || claims.TenantID == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token claims"})
			c.Abort()
			return
		}

		ctx := c.Request.Context()
		ctx = context.WithValue(ctx, types.CtxUserID, claims.UserID)
		ctx = context.WithValue(ctx, types.CtxTenantID, claims.TenantID)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
