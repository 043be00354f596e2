package middleware

import (
	"learning_center_backend/internal/model"
	"learning_center_backend/internal/util"
	"learning_center_backend/pkg/hashid"
	"strings"

	"github.com/gin-gonic/gin"
)

// tokenFrom reads the session token from the cookie, falling back to a
// bearer header for API clients.
func tokenFrom(c *gin.Context) string {
	if token, err := c.Cookie(util.TokenCookie); err == nil && token != "" {
		return token
	}
	authHeader := c.GetHeader("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
	}
	return ""
}

// Auth rejects requests without a valid session. On success the claims, the
// decoded user id and the codec are stored on the context.
func Auth(secret string, codec *hashid.Codec) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := tokenFrom(c)
		if tokenString == "" {
			util.Unauthenticated(c)
			c.Abort()
			return
		}

		claims, err := util.ParseJWT(tokenString, secret)
		if err != nil {
			util.Unauthenticated(c)
			c.Abort()
			return
		}
		userID, err := codec.DecodeUint(claims.UserID)
		if err != nil {
			util.Unauthenticated(c)
			c.Abort()
			return
		}

		c.Set(util.ContextUserKey, claims)
		c.Set(util.ContextUserIDKey, userID)
		c.Set(util.ContextCodecKey, codec)
		c.Next()
	}
}

// RequireRoles lets through only sessions whose role is listed. Admin is
// not implied; list it explicitly.
func RequireRoles(roles ...model.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := util.GetUserFromContext(c)
		if user == nil {
			util.Unauthenticated(c)
			c.Abort()
			return
		}

		for _, role := range roles {
			if user.Role == role {
				c.Next()
				return
			}
		}

		util.Forbidden(c)
		c.Abort()
	}
}

// AdminOnly is RequireRoles(model.RoleAdmin).
func AdminOnly() gin.HandlerFunc {
	return RequireRoles(model.RoleAdmin)
}
