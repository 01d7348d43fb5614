package middleware

import (
	"errors"
	"strings"

	"github.com/foodreco/foodreco-backend/internal/app/model"
	apperrors "github.com/foodreco/foodreco-backend/internal/errors"
	"github.com/foodreco/foodreco-backend/pkg/util"
	"github.com/gin-gonic/gin"
)

const (
	UserIDKey       = "user_id"
	ProfileIDHeader = "X-Profile-ID"
)

type IdentityMiddleware struct {
	jwtSecret string
}

func NewIdentityMiddleware(jwtSecret string) *IdentityMiddleware {
	return &IdentityMiddleware{
		jwtSecret: jwtSecret,
	}
}

// Identify resolves the acting user for every request. A bearer profile
// token wins, then the X-Profile-ID header, then the shared default user.
// Only a token that is present but invalid is rejected.
func (m *IdentityMiddleware) Identify() gin.HandlerFunc {
	return func(c *gin.Context) {
		log := GetLoggerFromContext(c)

		authHeader := c.GetHeader("Authorization")
		if authHeader != "" {
			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				log.Warn("Invalid authorization header format", map[string]interface{}{
					"path": c.Request.URL.Path,
				})
				apperrors.Unauthorized(c, apperrors.AuthTokenInvalid, "Authorization header must be 'Bearer <token>'")
				c.Abort()
				return
			}

			claims, err := util.ValidateToken(parts[1], m.jwtSecret)
			if err != nil {
				log.Warn("Profile token validation failed", map[string]interface{}{
					"path":  c.Request.URL.Path,
					"error": err.Error(),
				})
				if errors.Is(err, util.ErrExpiredToken) {
					apperrors.Unauthorized(c, apperrors.AuthTokenExpired, "Profile token expired")
				} else {
					apperrors.Unauthorized(c, apperrors.AuthTokenInvalid, "Invalid profile token")
				}
				c.Abort()
				return
			}

			c.Set(UserIDKey, claims.ProfileID)
			log.Debug("Profile identified from token", map[string]interface{}{
				"user_id": claims.ProfileID,
			})
			c.Next()
			return
		}

		if profileID := strings.TrimSpace(c.GetHeader(ProfileIDHeader)); profileID != "" {
			c.Set(UserIDKey, profileID)
			c.Next()
			return
		}

		c.Set(UserIDKey, model.DefaultUserID)
		c.Next()
	}
}

// GetUserID returns the user resolved by Identify, or the default user.
func GetUserID(c *gin.Context) string {
	if userID := c.GetString(UserIDKey); userID != "" {
		return userID
	}
	return model.DefaultUserID
}
