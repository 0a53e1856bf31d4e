package middleware

import (
	"net/http"

	"tablebook/internal/pkg/errs"

	"tablebook/internal/handler/httperr"

	"github.com/gin-gonic/gin"
)

// IdentityHeader is set by the upstream gateway after it has authenticated
// the caller. This service consumes the identity; it never verifies
// credentials itself.
const IdentityHeader = "X-User-ID"

const userIDKey = "user_id"

func RequireIdentity() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetHeader(IdentityHeader)
		if userID == "" {
			httperr.AbortWithError(c, http.StatusUnauthorized, errs.New("missing identity header"), "Unauthorized", nil)
			return
		}
		c.Set(userIDKey, userID)
		c.Next()
	}
}

func GetUserID(c *gin.Context) (string, bool) {
	v, exists := c.Get(userIDKey)
	if !exists {
		return "", false
	}
	userID, ok := v.(string)
	return userID, ok && userID != ""
}
