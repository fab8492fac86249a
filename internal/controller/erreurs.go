package controller

import (
	"errors"
	"net/http"

	"tsena-be/internal/negotiation"
	"tsena-be/internal/repository"
	"tsena-be/internal/service"

	"github.com/gin-gonic/gin"
)

// repondreErreur traduit les erreurs métier en codes HTTP. Introuvable et
// interdit ne se confondent jamais avec une panne réseau (cf. la taxonomie
// d'erreurs du workflow de négociation).
func repondreErreur(c *gin.Context, err error) {
	switch {
	case errors.Is(err, repository.ErrNotFound),
		errors.Is(err, negotiation.ErrCommandeIntrouvable),
		errors.Is(err, negotiation.ErrLigneIntrouvable):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})

	case errors.Is(err, service.ErrInterdit):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})

	case errors.Is(err, service.ErrIdentifiantsInvalides):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})

	case errors.Is(err, negotiation.ErrDecisionTerminale),
		errors.Is(err, service.ErrEtatFinal),
		errors.Is(err, repository.ErrEmailDejaPris):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})

	case errors.Is(err, service.ErrTransitionInvalide),
		errors.Is(err, service.ErrTypeIncoherent),
		errors.Is(err, service.ErrPasDemandeOuverte),
		errors.Is(err, service.ErrRoleInconnu):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})

	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
