package negotiation

import "tsena-be/internal/model"

// Partition d'une liste plate de commandes en commandes directes et demandes
// ouvertes. Les deux tranches conservent l'ordre relatif de l'entrée.
type Partition struct {
	Directes []model.Commande
	Ouvertes []model.Commande
}

// EstDemandeOuverte s'appuie sur le discriminant explicite quand il est posé.
// Les documents hérités sans champ type retombent sur l'ancienne convention :
// produitRecherche ET territoire non nuls.
func EstDemandeOuverte(c model.Commande) bool {
	switch c.Type {
	case model.CommandeOuverte:
		return true
	case model.CommandeDirecte:
		return false
	}
	return c.ProduitRecherche != nil && c.Territoire != nil
}

// Classifier partitionne en une seule passe. Toute commande finit dans
// exactement une des deux tranches.
func Classifier(commandes []model.Commande) Partition {
	var p Partition
	for _, c := range commandes {
		if EstDemandeOuverte(c) {
			p.Ouvertes = append(p.Ouvertes, c)
		} else {
			p.Directes = append(p.Directes, c)
		}
	}
	return p
}
