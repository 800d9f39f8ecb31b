package middleware

import (
	"net/http"
	"strings"

	"smart-money/internal/models"
	"smart-money/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Auth validates the bearer token and puts the current user into the context.
// Sessions are carried in the Authorization header only; the token is never
// stored server-side, so expiry is enforced purely by the signature check.
func Auth(jwtSecret, issuer string, db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var tokenStr string

		authHeader := c.GetHeader("Authorization")
		if authHeader != "" {
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
				tokenStr = parts[1]
			}
		}

		if tokenStr == "" {
			util.Error(c, http.StatusUnauthorized, "Authorization header missing or malformed")
			c.Abort()
			return
		}

		email := util.VerifySubject(jwtSecret, issuer, tokenStr)
		if email == "" {
			util.Error(c, http.StatusUnauthorized, "Invalid or expired token")
			c.Abort()
			return
		}

		var user models.User
		if err := db.Where("email = ?", email).First(&user).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				util.Error(c, http.StatusUnauthorized, "User not found")
			} else {
				util.Error(c, http.StatusInternalServerError, "Failed to load user")
			}
			c.Abort()
			return
		}

		c.Set("currentUser", &user)
		c.Next()
	}
}
