package middleware

import (
	"net/http"

	"docassist/models"

	"github.com/gin-gonic/gin"
)

// AdminMiddleware allows only callers whose token carries the admin role.
// Must run after JWTAuthMiddleware.
func AdminMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString(CtxUserRole)
		if role != models.RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
			return
		}
		c.Next()
	}
}
