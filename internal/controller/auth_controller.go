package controller

import (
	"net/http"

	"tsena-be/internal/dto"
	"tsena-be/internal/middleware"
	"tsena-be/internal/model"
	"tsena-be/internal/service"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	Service *service.AuthService
}

func NewAuthController(s *service.AuthService) *AuthController {
	return &AuthController{Service: s}
}

// POST /auth/register
func (ctl *AuthController) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	u := &model.Utilisateur{
		Nom:        req.Nom,
		Email:      req.Email,
		Role:       model.Role(req.Role),
		Territoire: req.Territoire,
		Telephone:  req.Telephone,
	}

	token, utilisateur, err := ctl.Service.Register(c.Request.Context(), u, req.MotDePasse)
	if err != nil {
		repondreErreur(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.AuthResponse{Token: token, Utilisateur: utilisateur})
}

// POST /auth/login
func (ctl *AuthController) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	token, utilisateur, err := ctl.Service.Login(c.Request.Context(), req.Email, req.MotDePasse)
	if err != nil {
		repondreErreur(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.AuthResponse{Token: token, Utilisateur: utilisateur})
}

// GET /moi — profil de la session courante
func (ctl *AuthController) Moi(c *gin.Context) {
	u, err := ctl.Service.GetUtilisateur(c.Request.Context(), c.GetString(middleware.CtxUserID))
	if err != nil {
		repondreErreur(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}
