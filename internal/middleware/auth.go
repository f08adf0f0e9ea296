package middleware

import (
	"firstaid_backend/internal/config"
	"firstaid_backend/internal/model"
	"firstaid_backend/internal/util"
	"firstaid_backend/pkg/logger"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/sessions"
	"go.uber.org/zap"
)

// AuthMiddleware accepts a bearer token first and falls back to the session cookie.
func AuthMiddleware(cfg *config.Config, store sessions.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		if authHeader := c.GetHeader("Authorization"); strings.HasPrefix(authHeader, "Bearer ") {
			claims, err := util.ParseJWT(strings.TrimPrefix(authHeader, "Bearer "), cfg.JWT.Secret)
			if err != nil {
				logger.Log.Debug("Rejected bearer token", zap.Error(err))
				util.Unauthorized(c)
				c.Abort()
				return
			}
			util.SetUserInContext(c, claims)
			c.Next()
			return
		}

		claims := util.ClaimsFromSession(c.Request, store)
		if claims == nil {
			util.Unauthorized(c)
			c.Abort()
			return
		}

		util.SetUserInContext(c, claims)
		c.Next()
	}
}

// RoleMiddleware admits users holding one of roles. Admins always pass.
func RoleMiddleware(roles ...model.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := util.GetUserFromContext(c)
		if user == nil {
			util.Unauthorized(c)
			c.Abort()
			return
		}

		hasRole := user.Role == model.Admin
		for _, role := range roles {
			if user.Role == role {
				hasRole = true
				break
			}
		}

		if !hasRole {
			util.Forbidden(c)
			c.Abort()
			return
		}
		c.Next()
	}
}
