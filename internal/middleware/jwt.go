package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/repairhub/backend/internal/constants"
	apperrors "github.com/repairhub/backend/internal/errors"
	"github.com/repairhub/backend/internal/model"
	"github.com/repairhub/backend/internal/service"
	ctxutil "github.com/repairhub/backend/pkg/context"
	"github.com/repairhub/backend/pkg/logger"
	"go.uber.org/zap"
)

type AuthMiddleware struct {
	tokens *service.TokenService
	users  service.UserStore
}

func NewAuthMiddleware(tokens *service.TokenService, users service.UserStore) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens, users: users}
}

func unauthorized(c *gin.Context) {
	c.JSON(http.StatusUnauthorized, constants.BuildErrorResponse(
		http.StatusUnauthorized,
		apperrors.ErrUnauthenticated.Message,
		nil,
	))
	c.Abort()
}

// RequireAuth validates the bearer token and checks the embedded token
// version against the user record, so tokens issued before the last logout
// are rejected even though their signature and expiry are still good.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader(constants.HeaderAuthorization)
		if authHeader == "" {
			logger.GetLogger().Warn("Missing Authorization header",
				zap.String("path", c.Request.URL.Path),
				zap.String("method", c.Request.Method))
			unauthorized(c)
			return
		}

		tokenParts := strings.Split(authHeader, " ")
		if len(tokenParts) != 2 || tokenParts[0] != constants.BearerPrefix {
			logger.GetLogger().Warn("Invalid Authorization header format",
				zap.String("path", c.Request.URL.Path),
				zap.String("method", c.Request.Method))
			unauthorized(c)
			return
		}

		claims, err := m.tokens.Validate(tokenParts[1])
		if err != nil {
			logger.GetLogger().Warn("Invalid or expired token",
				zap.String("path", c.Request.URL.Path),
				zap.String("method", c.Request.Method),
				zap.Error(err))
			unauthorized(c)
			return
		}

		ctx := c.Request.Context()
		user, err := m.users.GetByID(ctx, claims.UserID)
		if err != nil {
			logger.GetLogger().Warn("Token subject not found",
				zap.String("path", c.Request.URL.Path),
				zap.Uint("user_id", claims.UserID),
				zap.Error(err))
			unauthorized(c)
			return
		}

		if claims.TokenVersion != user.TokenVersion {
			logger.GetLogger().Warn("Token version mismatch, token invalidated",
				zap.String("path", c.Request.URL.Path),
				zap.Uint("user_id", claims.UserID),
				zap.Int("token_version", claims.TokenVersion),
				zap.Int("db_version", user.TokenVersion))
			unauthorized(c)
			return
		}

		c.Set(constants.GinKeyUserID, user.ID)
		c.Set(constants.GinKeyUserEmail, user.Email)
		c.Set(constants.GinKeyUserRole, user.Role)
		c.Request = c.Request.WithContext(ctxutil.WithUserID(ctx, user.ID))

		c.Next()
	}
}

// RequireRole gates a route to the listed roles. It must run after
// RequireAuth; a missing role in the gin context means the chain is
// miswired and the request is rejected.
func (m *AuthMiddleware) RequireRole(roles ...model.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		value, exists := c.Get(constants.GinKeyUserRole)
		if !exists {
			unauthorized(c)
			return
		}
		role, ok := value.(model.Role)
		if !ok {
			unauthorized(c)
			return
		}

		for _, allowed := range roles {
			if role == allowed {
				c.Next()
				return
			}
		}

		logger.GetLogger().Warn("Role not permitted for route",
			zap.String("path", c.Request.URL.Path),
			zap.String("role", role.String()))
		c.JSON(http.StatusForbidden, constants.BuildErrorResponse(
			http.StatusForbidden,
			apperrors.ErrForbidden.Message,
			nil,
		))
		c.Abort()
	}
}
