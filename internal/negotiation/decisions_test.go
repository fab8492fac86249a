package negotiation

import (
	"testing"

	"tsena-be/internal/model"

	"github.com/stretchr/testify/assert"
)

func ptr(s string) *string { return &s }

// Jeu de données repris des scénarios de recette : une commande directe et
// une demande ouverte avec deux lignes.
func commandesTest() []model.Commande {
	return []model.Commande{
		{
			ID:            "1",
			Type:          model.CommandeDirecte,
			Statut:        model.StatutEnAttente,
			QuantiteTotal: 100,
			PrixUnitaire:  2500,
			CollecteurID:  "col-1",
		},
		{
			ID:               "2",
			Type:             model.CommandeOuverte,
			Statut:           model.StatutOuverte,
			ProduitRecherche: ptr("Riz Premium Bio"),
			Territoire:       ptr("Analamanga"),
			QuantiteTotal:    500,
			CollecteurID:     "col-1",
			Lignes: []model.LigneCommande{
				{ID: "1", QuantiteFournie: 200, PrixUnitaire: 2400, StatutLigne: model.LigneEnAttente},
				{ID: "2", QuantiteFournie: 150, PrixUnitaire: 2350, StatutLigne: model.LigneAcceptee},
			},
		},
	}
}

func TestAccepterCommande(t *testing.T) {
	commandes := commandesTest()

	out, err := AccepterCommande(commandes, "1")
	assert.NoError(t, err)

	// Seule la commande visée change, et uniquement son statut.
	assert.Equal(t, model.StatutAcceptee, out[0].Statut)
	attendu := commandes[0]
	attendu.Statut = model.StatutAcceptee
	assert.Equal(t, attendu, out[0])
	assert.Equal(t, commandes[1], out[1])

	// L'entrée n'est pas mutée.
	assert.Equal(t, model.StatutEnAttente, commandes[0].Statut)
}

func TestAccepterCommande_Introuvable(t *testing.T) {
	commandes := commandesTest()

	out, err := AccepterCommande(commandes, "absente")
	assert.ErrorIs(t, err, ErrCommandeIntrouvable)
	assert.Equal(t, commandes, out)
}

func TestRejeterCommande_Directe(t *testing.T) {
	commandes := commandesTest()

	out, err := RejeterCommande(commandes, "1")
	assert.NoError(t, err)
	assert.Equal(t, model.StatutAnnulee, out[0].Statut)

	// Une commande directe rejetée reste une commande directe.
	p := Classifier(out)
	assert.Len(t, p.Directes, 1)
	assert.Equal(t, "1", p.Directes[0].ID)
	assert.Len(t, p.Ouvertes, 1)
}

func TestAccepterLigne(t *testing.T) {
	commandes := commandesTest()

	out, err := AccepterLigne(commandes, "2", "1")
	assert.NoError(t, err)
	assert.Equal(t, model.LigneAcceptee, out[1].Lignes[0].StatutLigne)

	// La ligne voisine et la commande directe ne bougent pas.
	assert.Equal(t, commandes[1].Lignes[1], out[1].Lignes[1])
	assert.Equal(t, commandes[0], out[0])

	// L'entrée n'est pas mutée.
	assert.Equal(t, model.LigneEnAttente, commandes[1].Lignes[0].StatutLigne)

	// La progression passe de 30 % à 70 % (spécification de recette).
	pct, ok := Progression(out[1])
	assert.True(t, ok)
	assert.InDelta(t, 70.0, pct, 1e-9)
}

func TestAccepterLigne_Idempotente(t *testing.T) {
	commandes := commandesTest()

	une, err := AccepterLigne(commandes, "2", "1")
	assert.NoError(t, err)
	deux, err := AccepterLigne(une, "2", "1")
	assert.NoError(t, err)
	assert.Equal(t, une, deux)
}

func TestRejeterLigne_DecisionTerminale(t *testing.T) {
	commandes := commandesTest()

	// La ligne "2" est déjà ACCEPTEE : la rejeter est un conflit, pas un no-op.
	out, err := RejeterLigne(commandes, "2", "2")
	assert.ErrorIs(t, err, ErrDecisionTerminale)
	assert.Equal(t, commandes, out)
}

func TestAccepterLigne_Introuvable(t *testing.T) {
	commandes := commandesTest()

	_, err := AccepterLigne(commandes, "2", "99")
	assert.ErrorIs(t, err, ErrLigneIntrouvable)

	_, err = AccepterLigne(commandes, "99", "1")
	assert.ErrorIs(t, err, ErrCommandeIntrouvable)
}

func TestAccepterLigne_ProgressionMonotone(t *testing.T) {
	commandes := commandesTest()

	avant, _ := Progression(commandes[1])

	out, err := AccepterLigne(commandes, "2", "1")
	assert.NoError(t, err)

	apres, ok := Progression(out[1])
	assert.True(t, ok)
	assert.GreaterOrEqual(t, apres, avant)
}
