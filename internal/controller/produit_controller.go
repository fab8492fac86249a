package controller

import (
	"net/http"

	"tsena-be/internal/dto"
	"tsena-be/internal/middleware"
	"tsena-be/internal/model"
	"tsena-be/internal/service"

	"github.com/gin-gonic/gin"
)

type ProduitController struct {
	Service *service.ProduitService
}

func NewProduitController(s *service.ProduitService) *ProduitController {
	return &ProduitController{Service: s}
}

// POST /produits — paysan
func (ctl *ProduitController) Creer(c *gin.Context) {
	var req dto.CreerProduitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	acteur := middleware.ActeurDepuis(c)
	produit := &model.Produit{
		Nom:         req.Nom,
		Description: req.Description,
		Prix:        req.Prix,
		Unite:       req.Unite,
		Stock:       req.Stock,
		Territoire:  req.Territoire,
	}

	res, err := ctl.Service.Creer(c.Request.Context(), acteur, produit)
	if err != nil {
		repondreErreur(c, err)
		return
	}
	c.JSON(http.StatusCreated, res)
}

// GET /produits?territoire=&nom= — catalogue
func (ctl *ProduitController) Lister(c *gin.Context) {
	produits, err := ctl.Service.GetCatalogue(c.Request.Context(), c.Query("territoire"), c.Query("nom"))
	if err != nil {
		repondreErreur(c, err)
		return
	}
	c.JSON(http.StatusOK, produits)
}

// GET /produits/:produitId
func (ctl *ProduitController) Get(c *gin.Context) {
	produit, err := ctl.Service.GetByID(c.Request.Context(), c.Param("produitId"))
	if err != nil {
		repondreErreur(c, err)
		return
	}
	c.JSON(http.StatusOK, produit)
}

// GET /moi/produits — les produits du paysan connecté
func (ctl *ProduitController) Miens(c *gin.Context) {
	produits, err := ctl.Service.GetParPaysan(c.Request.Context(), c.GetString(middleware.CtxUserID))
	if err != nil {
		repondreErreur(c, err)
		return
	}
	c.JSON(http.StatusOK, produits)
}
