package negotiation

import "tsena-be/internal/model"

// QuantiteAcceptee additionne les quantités des lignes acceptées.
func QuantiteAcceptee(c model.Commande) float64 {
	var total float64
	for _, l := range c.Lignes {
		if l.StatutLigne == model.LigneAcceptee {
			total += l.QuantiteFournie
		}
	}
	return total
}

// Progression rend le pourcentage de couverture d'une demande ouverte :
// quantité acceptée / quantité totale × 100.
//
// Pas de plafond à 100 : une demande sur-couverte affiche son vrai
// pourcentage. Quand quantiteTotal vaut 0 (ou est négative), ok est false et
// l'appelant affiche un état neutre — jamais de NaN dans une réponse.
func Progression(c model.Commande) (pct float64, ok bool) {
	if c.QuantiteTotal <= 0 {
		return 0, false
	}
	return QuantiteAcceptee(c) / c.QuantiteTotal * 100, true
}

// Compteurs de lignes par statut pour une commande.
type Compteurs struct {
	Acceptees int `json:"acceptees"`
	EnAttente int `json:"enAttente"`
	Rejetees  int `json:"rejetees"`
	Total     int `json:"total"`
}

// CompterLignes agrège en une passe, sans effet de bord.
func CompterLignes(c model.Commande) Compteurs {
	var n Compteurs
	for _, l := range c.Lignes {
		switch l.StatutLigne {
		case model.LigneAcceptee:
			n.Acceptees++
		case model.LigneRejetee:
			n.Rejetees++
		default:
			n.EnAttente++
		}
	}
	n.Total = len(c.Lignes)
	return n
}
