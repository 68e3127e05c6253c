package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"store-pickup/internal/domain/user"
	"store-pickup/internal/pkg/logctx"
	"store-pickup/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AuthMiddleware struct {
	tokenValidator usecase.TokenValidator
}

const (
	ctxUserIDKey   = "user_id"
	ctxUserRoleKey = "user_role"
	ctxStoreIDKey  = "store_id"

	// EventSource cannot set headers, so stream clients fall back to the cookie.
	accessTokenCookie = "access_token"
)

func NewAuthMiddleware(tokenValidator usecase.TokenValidator) *AuthMiddleware {
	return &AuthMiddleware{
		tokenValidator: tokenValidator,
	}
}

func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Access token required",
			})
			c.Abort()
			return
		}

		actor, err := m.tokenValidator.ValidateToken(token)
		if err != nil {
			slog.WarnContext(c.Request.Context(), "Token validation failed in auth middleware", "error", err.Error())
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid or expired token",
			})
			c.Abort()
			return
		}

		SetActor(c, actor)
		c.Next()
	}
}

// RequireStaff admits operators and admins. Must run after RequireAuth.
func (m *AuthMiddleware) RequireStaff() gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := GetActor(c)
		if !ok {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
			c.Abort()
			return
		}

		if !actor.IsStaff() {
			c.JSON(http.StatusForbidden, gin.H{
				"error": "Insufficient permissions",
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

func extractToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader != "" && strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimSpace(authHeader[len("Bearer "):])
	}
	if token, err := c.Cookie(accessTokenCookie); err == nil {
		return token
	}
	return ""
}

func SetActor(c *gin.Context, actor user.Actor) {
	c.Set(ctxUserIDKey, actor.UserID)
	c.Set(ctxUserRoleKey, actor.Role)

	attrs := []slog.Attr{
		slog.String("user_id", actor.UserID.String()),
		slog.String("role", string(actor.Role)),
	}
	if actor.StoreID != nil {
		c.Set(ctxStoreIDKey, *actor.StoreID)
		attrs = append(attrs, slog.String("actor_store_id", actor.StoreID.String()))
	}
	if c.Request != nil {
		c.Request = c.Request.WithContext(logctx.With(c.Request.Context(), attrs...))
	}
}

func GetUserID(c *gin.Context) (uuid.UUID, bool) {
	userID, exists := c.Get(ctxUserIDKey)
	if !exists {
		return uuid.Nil, false
	}

	id, ok := userID.(uuid.UUID)
	return id, ok
}

func GetUserRole(c *gin.Context) (user.Role, bool) {
	userRole, exists := c.Get(ctxUserRoleKey)
	if !exists {
		return "", false
	}

	role, ok := userRole.(user.Role)
	return role, ok
}

// GetActor rebuilds the caller from the values RequireAuth stored.
func GetActor(c *gin.Context) (user.Actor, bool) {
	userID, ok := GetUserID(c)
	if !ok {
		return user.Actor{}, false
	}
	role, ok := GetUserRole(c)
	if !ok {
		return user.Actor{}, false
	}

	var storeID *uuid.UUID
	if v, exists := c.Get(ctxStoreIDKey); exists {
		if id, ok := v.(uuid.UUID); ok {
			storeID = &id
		}
	}

	actor, err := user.NewActor(userID, role, storeID)
	if err != nil {
		return user.Actor{}, false
	}
	return actor, true
}
