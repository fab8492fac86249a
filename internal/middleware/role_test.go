package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"tsena-be/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func routeurAvecRole(role model.Role, handler gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/x", func(c *gin.Context) {
		c.Set(CtxRole, string(role))
		c.Set(CtxUserID, "user-1")
	}, handler, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return r
}

func TestRequireRole(t *testing.T) {
	tests := []struct {
		name     string
		role     model.Role
		requis   []model.Role
		wantCode int
	}{
		{"role_exact", model.RolePaysan, []model.Role{model.RolePaysan}, http.StatusOK},
		{"admin_passe_partout", model.RoleAdmin, []model.Role{model.RoleCollecteur}, http.StatusOK},
		{"role_insuffisant", model.RolePaysan, []model.Role{model.RoleCollecteur}, http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := routeurAvecRole(tt.role, RequireRole(tt.requis...))

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/x", nil)
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.wantCode, w.Code)
		})
	}
}

func TestAdminOnly(t *testing.T) {
	r := routeurAvecRole(model.RoleCollecteur, AdminOnly())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestActeurDepuis(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Set(CtxUserID, "pay-1")
	c.Set(CtxRole, string(model.RolePaysan))

	acteur := ActeurDepuis(c)
	assert.Equal(t, "pay-1", acteur.ID)
	assert.Equal(t, model.RolePaysan, acteur.Role)
	assert.False(t, acteur.EstAdmin())
}
