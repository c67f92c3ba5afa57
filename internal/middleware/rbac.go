package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/claytonnetvision/banco-infantil-backend-sub001/internal/model"
	"github.com/claytonnetvision/banco-infantil-backend-sub001/internal/response"
)

// RequireCapability checks that the caller's role grants capability.
// Must run after RequireRole.
func RequireCapability(capability model.Capability) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := GetClaims(c)
		if claims == nil {
			response.AbortFail(c, http.StatusUnauthorized, response.ErrTokenRequired)
			return
		}

		if !claims.Role.Can(capability) {
			response.AbortFail(c, http.StatusForbidden, response.ErrPermissionDenied)
			return
		}

		c.Next()
	}
}
