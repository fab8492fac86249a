// role.go
package middleware

import (
	"net/http"

	"tsena-be/internal/model"

	"github.com/gin-gonic/gin"
)

// RequireRole borne une route aux rôles listés. L'admin passe toujours.
func RequireRole(roles ...model.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := model.Role(c.GetString(CtxRole))
		if role == model.RoleAdmin {
			c.Next()
			return
		}
		for _, r := range roles {
			if role == r {
				c.Next()
				return
			}
		}
		c.JSON(http.StatusForbidden, gin.H{"error": "rôle insuffisant"})
		c.Abort()
	}
}

func AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		if model.Role(c.GetString(CtxRole)) != model.RoleAdmin {
			c.JSON(http.StatusForbidden, gin.H{"error": "admin privileges required"})
			c.Abort()
			return
		}
		c.Next()
	}
}
