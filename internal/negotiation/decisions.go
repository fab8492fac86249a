// Package negotiation contient les fonctions pures de négociation : décisions
// d'acceptation/rejet sur une commande ou une ligne, classification
// directe/ouverte et calculs dérivés (progression, compteurs).
//
// Aucune I/O ici. Les fonctions prennent la liste de commandes en mémoire et
// rendent une nouvelle liste où seule l'entité visée a changé ; tout le reste
// est partagé structurellement.
package negotiation

import (
	"errors"

	"tsena-be/internal/model"
)

var (
	ErrCommandeIntrouvable = errors.New("commande introuvable")
	ErrLigneIntrouvable    = errors.New("ligne introuvable")

	// La cible a déjà reçu la décision inverse : ACCEPTEE et REJETEE sont
	// des états terminaux pour une ligne.
	ErrDecisionTerminale = errors.New("décision déjà prise sur cette ligne")
)

// AccepterCommande passe la commande visée à ACCEPTEE. Les autres commandes
// et toutes les lignes restent inchangées.
func AccepterCommande(commandes []model.Commande, id string) ([]model.Commande, error) {
	return appliquerStatut(commandes, id, model.StatutAcceptee)
}

// RejeterCommande passe la commande visée à ANNULEE.
func RejeterCommande(commandes []model.Commande, id string) ([]model.Commande, error) {
	return appliquerStatut(commandes, id, model.StatutAnnulee)
}

// AccepterLigne passe la ligne visée à ACCEPTEE.
func AccepterLigne(commandes []model.Commande, commandeID, ligneID string) ([]model.Commande, error) {
	return appliquerStatutLigne(commandes, commandeID, ligneID, model.LigneAcceptee)
}

// RejeterLigne passe la ligne visée à REJETEE.
func RejeterLigne(commandes []model.Commande, commandeID, ligneID string) ([]model.Commande, error) {
	return appliquerStatutLigne(commandes, commandeID, ligneID, model.LigneRejetee)
}

func appliquerStatut(commandes []model.Commande, id string, statut model.StatutCommande) ([]model.Commande, error) {
	for i := range commandes {
		if commandes[i].ID != id {
			continue
		}
		// Réécrire la même valeur terminale est un no-op, pas une erreur.
		if commandes[i].Statut == statut {
			return commandes, nil
		}
		out := make([]model.Commande, len(commandes))
		copy(out, commandes)
		out[i].Statut = statut
		return out, nil
	}
	// Cible absente : on rend l'entrée telle quelle, mais l'appelant sait
	// pourquoi (pas d'absorption silencieuse).
	return commandes, ErrCommandeIntrouvable
}

func appliquerStatutLigne(commandes []model.Commande, commandeID, ligneID string, statut model.StatutLigne) ([]model.Commande, error) {
	for i := range commandes {
		if commandes[i].ID != commandeID {
			continue
		}
		for j := range commandes[i].Lignes {
			ligne := &commandes[i].Lignes[j]
			if ligne.ID != ligneID {
				continue
			}
			if ligne.StatutLigne == statut {
				return commandes, nil
			}
			if ligne.StatutLigne != model.LigneEnAttente {
				return commandes, ErrDecisionTerminale
			}

			out := make([]model.Commande, len(commandes))
			copy(out, commandes)

			// Copier aussi les lignes de la commande visée pour ne pas
			// muter la liste d'origine.
			lignes := make([]model.LigneCommande, len(commandes[i].Lignes))
			copy(lignes, commandes[i].Lignes)
			lignes[j].StatutLigne = statut
			out[i].Lignes = lignes
			return out, nil
		}
		return commandes, ErrLigneIntrouvable
	}
	return commandes, ErrCommandeIntrouvable
}
