package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-faster/sdk/zctx"
	"go.uber.org/zap"

	"github.com/01moynul/storefront-api/internal/auth"
	"github.com/01moynul/storefront-api/internal/models"
	"github.com/01moynul/storefront-api/internal/response"
)

// Context keys set by AuthMiddleware.
const (
	UserIDKey = "userID"
	RoleKey   = "role"
)

// TokenValidator checks an access token.
type TokenValidator interface {
	Validate(token string) (*auth.Claims, error)
}

// AuthMiddleware requires a valid "Authorization: Bearer <token>" header and
// stores the user id and role in the gin context.
func AuthMiddleware(tokens TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		// 1. Read the header.
		header := c.GetHeader("Authorization")
		scheme, token, ok := strings.Cut(header, " ")
		if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
			response.Fail(c, http.StatusUnauthorized, "Authorization header is required", nil)
			return
		}

		// 2. Validate the token.
		claims, err := tokens.Validate(strings.TrimSpace(token))
		if err != nil {
			response.Fail(c, http.StatusUnauthorized, "Invalid or expired token", err)
			return
		}

		// 3. Attach identity to the request.
		c.Set(UserIDKey, claims.UserID)
		c.Set(RoleKey, claims.Role)
		ctx := c.Request.Context()
		lg := zctx.From(ctx).With(zap.Int64("user_id", claims.UserID))
		c.Request = c.Request.WithContext(zctx.Base(ctx, lg))
		c.Next()
	}
}

// AdminOnly rejects callers whose token does not carry the admin role.
// It must run after AuthMiddleware.
func AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !IsAdmin(c) {
			response.Fail(c, http.StatusForbidden, "Admin access required", nil)
			return
		}
		c.Next()
	}
}

// UserID returns the authenticated user id, or 0 when there is none.
func UserID(c *gin.Context) int64 {
	id, _ := c.Get(UserIDKey)
	v, _ := id.(int64)
	return v
}

// IsAdmin reports whether the authenticated user is an admin.
func IsAdmin(c *gin.Context) bool {
	return c.GetString(RoleKey) == models.RoleAdmin
}
