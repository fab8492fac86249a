// dto.go
package dto

import "time"

type RegisterRequest struct {
	Nom        string `json:"nom" binding:"required"`
	Email      string `json:"email" binding:"required,email"`
	MotDePasse string `json:"motDePasse" binding:"required,min=8"`
	Role       string `json:"role" binding:"required"`
	Territoire string `json:"territoire"`
	Telephone  string `json:"telephone"`
}

type LoginRequest struct {
	Email      string `json:"email" binding:"required,email"`
	MotDePasse string `json:"motDePasse" binding:"required"`
}

type AuthResponse struct {
	Token       string      `json:"token"`
	Utilisateur interface{} `json:"utilisateur"`
}

// CreerCommandeRequest couvre les deux variantes ; le champ type discrimine.
// DIRECTE : produitId requis. OUVERTE : produitRecherche + territoire requis.
type CreerCommandeRequest struct {
	Type string `json:"type" binding:"required,oneof=DIRECTE OUVERTE"`

	ProduitID string `json:"produitId"`

	ProduitRecherche *string  `json:"produitRecherche"`
	Territoire       *string  `json:"territoire"`
	Rayon            *float64 `json:"rayon"`
	Latitude         *float64 `json:"latitude"`
	Longitude        *float64 `json:"longitude"`

	QuantiteTotal float64 `json:"quantiteTotal" binding:"required,gt=0"`
	PrixUnitaire  float64 `json:"prixUnitaire"`
	Unite         string  `json:"unite"`

	AdresseLivraison    string     `json:"adresseLivraison"`
	DateLivraisonPrevue *time.Time `json:"dateLivraisonPrevue"`
	MessageCollecteur   string     `json:"messageCollecteur"`
}

// Seuls les champs descriptifs/contact sont modifiables après création.
type MettreAJourCommandeRequest struct {
	AdresseLivraison    string     `json:"adresseLivraison"`
	MessageCollecteur   string     `json:"messageCollecteur"`
	DateLivraisonPrevue *time.Time `json:"dateLivraisonPrevue"`
}

type ProposerLigneRequest struct {
	ProduitID       string  `json:"produitId" binding:"required"`
	QuantiteFournie float64 `json:"quantiteFournie" binding:"required,gt=0"`
	PrixUnitaire    float64 `json:"prixUnitaire" binding:"required,gt=0"`
}

type ChangerStatutRequest struct {
	Statut string `json:"statut" binding:"required"`
	Motif  string `json:"motif"`
}

type CreerProduitRequest struct {
	Nom         string  `json:"nom" binding:"required"`
	Description string  `json:"description"`
	Prix        float64 `json:"prix" binding:"required,gt=0"`
	Unite       string  `json:"unite" binding:"required"`
	Stock       float64 `json:"stock"`
	Territoire  string  `json:"territoire"`
}
