package handler

import (
	"net/http"

	"smart-money/internal/models"
	"smart-money/internal/util"

	"github.com/gin-gonic/gin"
)

// currentUser pulls the authenticated user set by the auth middleware. When
// no session is present it writes the 401 envelope and returns nil; callers
// just return.
func currentUser(c *gin.Context) *models.User {
	v, ok := c.Get("currentUser")
	if !ok {
		util.Error(c, http.StatusUnauthorized, "Not authenticated")
		return nil
	}
	user, ok := v.(*models.User)
	if !ok || user == nil {
		util.Error(c, http.StatusUnauthorized, "Not authenticated")
		return nil
	}
	return user
}
