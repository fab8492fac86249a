// auth_middleware.go
package middleware

import (
	"net/http"
	"strings"

	"tsena-be/internal/model"
	"tsena-be/internal/service"

	"github.com/gin-gonic/gin"
)

// Clés posées dans le contexte gin par le middleware d'authentification.
const (
	CtxUserID = "userID"
	CtxEmail  = "userEmail"
	CtxRole   = "userRole"
)

// AuthMiddleware valide le token et pose l'identité dans le contexte.
// Le token vient de l'en-tête Authorization, ou du paramètre ?token= pour la
// poignée de main websocket (les navigateurs n'envoient pas d'en-têtes là).
func AuthMiddleware(authService *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extraireToken(c)
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing authorization header"})
			c.Abort()
			return
		}

		claims, err := authService.ValiderToken(token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			c.Abort()
			return
		}

		c.Set(CtxUserID, claims.UserID)
		c.Set(CtxEmail, claims.Email)
		c.Set(CtxRole, claims.Role)
		c.Next()
	}
}

func extraireToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader != "" {
		return strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
	}
	return c.Query("token")
}

// ActeurDepuis reconstruit l'acteur métier depuis le contexte gin.
func ActeurDepuis(c *gin.Context) service.Acteur {
	return service.Acteur{
		ID:   c.GetString(CtxUserID),
		Role: model.Role(c.GetString(CtxRole)),
	}
}
