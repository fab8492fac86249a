package controller

import (
	"net/http"
	"strconv"

	"tsena-be/internal/dto"
	"tsena-be/internal/middleware"
	"tsena-be/internal/model"
	"tsena-be/internal/negotiation"
	"tsena-be/internal/service"

	"github.com/gin-gonic/gin"
)

type CommandeController struct {
	Service *service.CommandeService
}

func NewCommandeController(s *service.CommandeService) *CommandeController {
	return &CommandeController{Service: s}
}

// POST /commandes — collecteur
func (ctl *CommandeController) Creer(c *gin.Context) {
	var req dto.CreerCommandeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	acteur := middleware.ActeurDepuis(c)
	commande := &model.Commande{
		ProduitID:           req.ProduitID,
		ProduitRecherche:    req.ProduitRecherche,
		Territoire:          req.Territoire,
		Rayon:               req.Rayon,
		Latitude:            req.Latitude,
		Longitude:           req.Longitude,
		QuantiteTotal:       req.QuantiteTotal,
		PrixUnitaire:        req.PrixUnitaire,
		Unite:               req.Unite,
		AdresseLivraison:    req.AdresseLivraison,
		DateLivraisonPrevue: req.DateLivraisonPrevue,
		MessageCollecteur:   req.MessageCollecteur,
		Collecteur:          c.GetString(middleware.CtxEmail),
	}

	var (
		res *model.Commande
		err error
	)
	if req.Type == string(model.CommandeOuverte) {
		res, err = ctl.Service.CreerDemandeOuverte(c.Request.Context(), acteur, commande)
	} else {
		res, err = ctl.Service.CreerCommandeDirecte(c.Request.Context(), acteur, commande)
	}
	if err != nil {
		repondreErreur(c, err)
		return
	}

	c.JSON(http.StatusCreated, res)
}

// GET /commandes?page=&limit=&type= — liste selon le rôle de l'appelant.
// Le paramètre type sépare commandes directes et demandes ouvertes.
func (ctl *CommandeController) Lister(c *gin.Context) {
	acteur := middleware.ActeurDepuis(c)
	page, limit := pagination(c)

	commandes, err := ctl.Service.GetPourActeur(c.Request.Context(), acteur, page, limit)
	if err != nil {
		repondreErreur(c, err)
		return
	}

	switch c.Query("type") {
	case "directes", "DIRECTE":
		c.JSON(http.StatusOK, partitionDe(commandes).Directes)
	case "ouvertes", "OUVERTE":
		c.JSON(http.StatusOK, partitionDe(commandes).Ouvertes)
	default:
		c.JSON(http.StatusOK, commandes)
	}
}

func partitionDe(commandes []*model.Commande) negotiation.Partition {
	valeurs := make([]model.Commande, 0, len(commandes))
	for _, c := range commandes {
		valeurs = append(valeurs, *c)
	}
	return negotiation.Classifier(valeurs)
}

func pagination(c *gin.Context) (page, limit int64) {
	page, _ = strconv.ParseInt(c.DefaultQuery("page", "1"), 10, 64)
	limit, _ = strconv.ParseInt(c.DefaultQuery("limit", "20"), 10, 64)
	return page, limit
}

// GET /commandes/:commandeId
func (ctl *CommandeController) Get(c *gin.Context) {
	acteur := middleware.ActeurDepuis(c)

	commande, err := ctl.Service.GetByID(c.Request.Context(), acteur, c.Param("commandeId"))
	if err != nil {
		repondreErreur(c, err)
		return
	}
	c.JSON(http.StatusOK, commande)
}

// PUT /commandes/:commandeId — champs descriptifs uniquement
func (ctl *CommandeController) MettreAJour(c *gin.Context) {
	var req dto.MettreAJourCommandeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	acteur := middleware.ActeurDepuis(c)
	commande, err := ctl.Service.MettreAJour(
		c.Request.Context(),
		acteur,
		c.Param("commandeId"),
		req.AdresseLivraison,
		req.MessageCollecteur,
		req.DateLivraisonPrevue,
	)
	if err != nil {
		repondreErreur(c, err)
		return
	}
	c.JSON(http.StatusOK, commande)
}

// DELETE /commandes/:commandeId
func (ctl *CommandeController) Supprimer(c *gin.Context) {
	acteur := middleware.ActeurDepuis(c)

	if err := ctl.Service.Supprimer(c.Request.Context(), acteur, c.Param("commandeId")); err != nil {
		repondreErreur(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// POST /commandes/:commandeId/accepter
func (ctl *CommandeController) Accepter(c *gin.Context) {
	acteur := middleware.ActeurDepuis(c)

	commande, err := ctl.Service.AccepterCommande(c.Request.Context(), acteur, c.Param("commandeId"))
	if err != nil {
		repondreErreur(c, err)
		return
	}
	c.JSON(http.StatusOK, commande)
}

// POST /commandes/:commandeId/rejeter
func (ctl *CommandeController) Rejeter(c *gin.Context) {
	acteur := middleware.ActeurDepuis(c)

	commande, err := ctl.Service.RejeterCommande(c.Request.Context(), acteur, c.Param("commandeId"))
	if err != nil {
		repondreErreur(c, err)
		return
	}
	c.JSON(http.StatusOK, commande)
}

// PATCH /commandes/:commandeId/statut — transitions aval (PAYE, LIVREE)
func (ctl *CommandeController) ChangerStatut(c *gin.Context) {
	var req dto.ChangerStatutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	acteur := middleware.ActeurDepuis(c)
	commande, err := ctl.Service.ChangerStatut(
		c.Request.Context(),
		acteur,
		c.Param("commandeId"),
		model.StatutCommande(req.Statut),
		req.Motif,
	)
	if err != nil {
		repondreErreur(c, err)
		return
	}
	c.JSON(http.StatusOK, commande)
}

// POST /commandes/:commandeId/lignes — paysan
func (ctl *CommandeController) ProposerLigne(c *gin.Context) {
	var req dto.ProposerLigneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	acteur := middleware.ActeurDepuis(c)
	ligne, err := ctl.Service.ProposerLigne(
		c.Request.Context(),
		acteur,
		c.Param("commandeId"),
		req.ProduitID,
		req.QuantiteFournie,
		req.PrixUnitaire,
	)
	if err != nil {
		repondreErreur(c, err)
		return
	}
	c.JSON(http.StatusCreated, ligne)
}

// POST /commandes/:commandeId/lignes/:ligneId/accepter — collecteur
func (ctl *CommandeController) AccepterLigne(c *gin.Context) {
	acteur := middleware.ActeurDepuis(c)

	commande, err := ctl.Service.AccepterLigne(c.Request.Context(), acteur, c.Param("commandeId"), c.Param("ligneId"))
	if err != nil {
		repondreErreur(c, err)
		return
	}
	c.JSON(http.StatusOK, commande)
}

// POST /commandes/:commandeId/lignes/:ligneId/rejeter — collecteur
func (ctl *CommandeController) RejeterLigne(c *gin.Context) {
	acteur := middleware.ActeurDepuis(c)

	commande, err := ctl.Service.RejeterLigne(c.Request.Context(), acteur, c.Param("commandeId"), c.Param("ligneId"))
	if err != nil {
		repondreErreur(c, err)
		return
	}
	c.JSON(http.StatusOK, commande)
}

// GET /commandes/:commandeId/progression
func (ctl *CommandeController) Progression(c *gin.Context) {
	acteur := middleware.ActeurDepuis(c)

	p, err := ctl.Service.GetProgression(c.Request.Context(), acteur, c.Param("commandeId"))
	if err != nil {
		repondreErreur(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// GET /admin/commandes — admin only
func (ctl *CommandeController) ListerToutes(c *gin.Context) {
	page, limit := pagination(c)

	commandes, err := ctl.Service.GetAll(c.Request.Context(), page, limit)
	if err != nil {
		repondreErreur(c, err)
		return
	}
	c.JSON(http.StatusOK, commandes)
}

// GET /admin/commandes/statut/:statut — admin only
func (ctl *CommandeController) ListerParStatut(c *gin.Context) {
	commandes, err := ctl.Service.GetByStatut(c.Request.Context(), model.StatutCommande(c.Param("statut")))
	if err != nil {
		repondreErreur(c, err)
		return
	}
	c.JSON(http.StatusOK, commandes)
}
