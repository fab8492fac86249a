package negotiation

import (
	"testing"

	"tsena-be/internal/model"

	"github.com/stretchr/testify/assert"
)

func TestClassifier_Partition(t *testing.T) {
	commandes := []model.Commande{
		{ID: "1", Type: model.CommandeDirecte},
		{ID: "2", Type: model.CommandeOuverte, ProduitRecherche: ptr("Riz"), Territoire: ptr("Analamanga")},
		{ID: "3", Type: model.CommandeDirecte},
		// Document hérité sans discriminant : les deux champs posés → ouverte.
		{ID: "4", ProduitRecherche: ptr("Maïs"), Territoire: ptr("Itasy")},
		// Un seul des deux champs posé → directe.
		{ID: "5", ProduitRecherche: ptr("Café")},
	}

	p := Classifier(commandes)

	// Partition exacte : union = entrée, intersection vide, ordre stable.
	assert.Equal(t, []string{"1", "3", "5"}, ids(p.Directes))
	assert.Equal(t, []string{"2", "4"}, ids(p.Ouvertes))
	assert.Equal(t, len(commandes), len(p.Directes)+len(p.Ouvertes))
}

func TestClassifier_Vide(t *testing.T) {
	p := Classifier(nil)
	assert.Empty(t, p.Directes)
	assert.Empty(t, p.Ouvertes)
}

func ids(commandes []model.Commande) []string {
	out := make([]string, 0, len(commandes))
	for _, c := range commandes {
		out = append(out, c.ID)
	}
	return out
}

func TestProgression(t *testing.T) {
	tests := []struct {
		name          string
		quantiteTotal float64
		lignes        []model.LigneCommande
		wantPct       float64
		wantOK        bool
	}{
		{
			name:          "scenario_recette_30_pourcent",
			quantiteTotal: 500,
			lignes: []model.LigneCommande{
				{QuantiteFournie: 200, StatutLigne: model.LigneEnAttente},
				{QuantiteFournie: 150, StatutLigne: model.LigneAcceptee},
			},
			wantPct: 30,
			wantOK:  true,
		},
		{
			name:          "sur_couverture_non_plafonnee",
			quantiteTotal: 100,
			lignes: []model.LigneCommande{
				{QuantiteFournie: 80, StatutLigne: model.LigneAcceptee},
				{QuantiteFournie: 70, StatutLigne: model.LigneAcceptee},
			},
			wantPct: 150,
			wantOK:  true,
		},
		{
			name:          "les_rejetees_ne_comptent_pas",
			quantiteTotal: 200,
			lignes: []model.LigneCommande{
				{QuantiteFournie: 100, StatutLigne: model.LigneRejetee},
				{QuantiteFournie: 50, StatutLigne: model.LigneAcceptee},
			},
			wantPct: 25,
			wantOK:  true,
		},
		{
			name:          "quantite_totale_nulle",
			quantiteTotal: 0,
			lignes: []model.LigneCommande{
				{QuantiteFournie: 50, StatutLigne: model.LigneAcceptee},
			},
			wantPct: 0,
			wantOK:  false,
		},
		{
			name:          "aucune_ligne",
			quantiteTotal: 300,
			wantPct:       0,
			wantOK:        true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := model.Commande{QuantiteTotal: tt.quantiteTotal, Lignes: tt.lignes}
			pct, ok := Progression(c)
			assert.Equal(t, tt.wantOK, ok)
			assert.InDelta(t, tt.wantPct, pct, 1e-9)
		})
	}
}

func TestCompterLignes(t *testing.T) {
	c := model.Commande{Lignes: []model.LigneCommande{
		{StatutLigne: model.LigneAcceptee},
		{StatutLigne: model.LigneAcceptee},
		{StatutLigne: model.LigneEnAttente},
		{StatutLigne: model.LigneRejetee},
	}}

	n := CompterLignes(c)
	assert.Equal(t, Compteurs{Acceptees: 2, EnAttente: 1, Rejetees: 1, Total: 4}, n)
}

func TestCompterLignes_SansLigne(t *testing.T) {
	n := CompterLignes(model.Commande{})
	assert.Equal(t, Compteurs{}, n)
}
