package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"storefront-core/internal/pkg/cookie"
	"storefront-core/internal/usecase"
	"storefront-core/internal/usecase/cartstore"
	"storefront-core/internal/usecase/shared"

	"github.com/gin-gonic/gin"
)

type AuthMiddleware struct {
	tokenValidator usecase.TokenValidator
}

const (
	ctxUserEmailKey = "user_email"
	ctxUserRoleKey  = "user_role"
	ctxAdminKey     = "user_admin"
	ctxOwnerKey     = "owner_key"

	// ViewingUserQuery lets an admin act on another owner's cart.
	ViewingUserQuery = "viewingUserEmail"
)

func NewAuthMiddleware(tokenValidator usecase.TokenValidator) *AuthMiddleware {
	return &AuthMiddleware{
		tokenValidator: tokenValidator,
	}
}

func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := cookie.GetBearerToken(c)
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Access token required",
			})
			c.Abort()
			return
		}

		identity, err := m.tokenValidator.ValidateToken(token)
		if err != nil {
			slog.Warn("Token validation failed in auth middleware", "error", err.Error())
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid or expired token",
			})
			c.Abort()
			return
		}

		owner := identity.Email
		if viewing := strings.TrimSpace(c.Query(ViewingUserQuery)); viewing != "" {
			if !identity.Admin {
				c.JSON(http.StatusForbidden, gin.H{
					"error": "Insufficient permissions",
				})
				c.Abort()
				return
			}
			owner = cartstore.NormalizeKey(viewing)
		}

		c.Set(ctxUserEmailKey, identity.Email)
		c.Set(ctxUserRoleKey, identity.Role)
		c.Set(ctxAdminKey, identity.Admin)
		c.Set(ctxOwnerKey, owner)
		c.Set("jwt_claims", map[string]any{
			"email": identity.Email,
			"role":  identity.Role,
			"owner": owner,
		})

		// backend calls are made on behalf of the caller
		c.Request = c.Request.WithContext(shared.WithAccessToken(c.Request.Context(), token))
		c.Next()
	}
}

// RequireAdmin must be used after RequireAuth.
func (m *AuthMiddleware) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := GetUserEmail(c); !ok {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
			c.Abort()
			return
		}

		if !IsAdmin(c) {
			c.JSON(http.StatusForbidden, gin.H{
				"error": "Insufficient permissions",
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

func GetUserEmail(c *gin.Context) (string, bool) {
	email, exists := c.Get(ctxUserEmailKey)
	if !exists {
		return "", false
	}

	s, ok := email.(string)
	return s, ok && s != ""
}

// GetOwnerKey returns the cart owner the request acts on: the caller, or the owner an admin is viewing.
func GetOwnerKey(c *gin.Context) (string, bool) {
	owner, exists := c.Get(ctxOwnerKey)
	if !exists {
		return "", false
	}

	s, ok := owner.(string)
	return s, ok && s != ""
}

func GetUserRole(c *gin.Context) (string, bool) {
	role, exists := c.Get(ctxUserRoleKey)
	if !exists {
		return "", false
	}

	s, ok := role.(string)
	return s, ok
}

func IsAdmin(c *gin.Context) bool {
	return c.GetBool(ctxAdminKey)
}
