package controller

import (
	"net/http"
	"strconv"

	"tsena-be/internal/middleware"
	"tsena-be/internal/service"
	"tsena-be/internal/ws"

	"github.com/gin-gonic/gin"
)

type NotificationController struct {
	Service *service.NotificationService
	Hub     *ws.Hub
}

func NewNotificationController(s *service.NotificationService, hub *ws.Hub) *NotificationController {
	return &NotificationController{Service: s, Hub: hub}
}

// GET /notifications — historique du destinataire connecté
func (ctl *NotificationController) Lister(c *gin.Context) {
	limit, _ := strconv.ParseInt(c.DefaultQuery("limit", "50"), 10, 64)

	notifications, err := ctl.Service.GetPourUtilisateur(c.Request.Context(), c.GetString(middleware.CtxUserID), limit)
	if err != nil {
		repondreErreur(c, err)
		return
	}
	c.JSON(http.StatusOK, notifications)
}

// POST /notifications/:notificationId/lue
func (ctl *NotificationController) MarquerLue(c *gin.Context) {
	err := ctl.Service.MarquerLue(c.Request.Context(), c.Param("notificationId"), c.GetString(middleware.CtxUserID))
	if err != nil {
		repondreErreur(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "notification lue"})
}

// GET /ws/notifications — abonnement temps réel de la session authentifiée.
// La session est détachée du hub dès que le socket se ferme.
func (ctl *NotificationController) Socket(c *gin.Context) {
	ws.ServeWS(ctl.Hub, c.Writer, c.Request, c.GetString(middleware.CtxUserID))
}
