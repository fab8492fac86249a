// models.go
package model

import "time"

// Statut au niveau commande.
type StatutCommande string

const (
	StatutEnAttente            StatutCommande = "EN_ATTENTE"
	StatutOuverte              StatutCommande = "OUVERTE"
	StatutAcceptee             StatutCommande = "ACCEPTEE"
	StatutPartiellementFournie StatutCommande = "PARTIELLEMENT_FOURNIE"
	StatutComplete             StatutCommande = "COMPLETE"
	StatutPaye                 StatutCommande = "PAYE"
	StatutLivree               StatutCommande = "LIVREE"
	StatutAnnulee              StatutCommande = "ANNULEE"
)

// EstValide dit si la valeur correspond à un statut connu ; les statuts
// arrivent de l'API en chaîne libre.
func (s StatutCommande) EstValide() bool {
	switch s {
	case StatutEnAttente, StatutOuverte, StatutAcceptee, StatutPartiellementFournie,
		StatutComplete, StatutPaye, StatutLivree, StatutAnnulee:
		return true
	}
	return false
}

// Statut au niveau ligne. Terminal une fois ACCEPTEE ou REJETEE.
type StatutLigne string

const (
	LigneEnAttente StatutLigne = "EN_ATTENTE"
	LigneAcceptee  StatutLigne = "ACCEPTEE"
	LigneRejetee   StatutLigne = "REJETEE"
)

// Discriminant explicite : on ne déduit plus le type d'une commande de la
// simple présence des champs optionnels produitRecherche + territoire.
type TypeCommande string

const (
	CommandeDirecte TypeCommande = "DIRECTE"
	CommandeOuverte TypeCommande = "OUVERTE"
)

type Role string

const (
	RolePaysan     Role = "PAYSAN"
	RoleCollecteur Role = "COLLECTEUR"
	RoleAdmin      Role = "ADMIN"
)

type Commande struct {
	ID   string       `bson:"_id" json:"id"`
	Type TypeCommande `bson:"type" json:"type"`

	Statut StatutCommande `bson:"statut" json:"statut"`

	// Champs présents uniquement pour les demandes ouvertes.
	ProduitRecherche *string  `bson:"produit_recherche,omitempty" json:"produitRecherche,omitempty"`
	Territoire       *string  `bson:"territoire,omitempty" json:"territoire,omitempty"`
	Rayon            *float64 `bson:"rayon,omitempty" json:"rayon,omitempty"`
	Latitude         *float64 `bson:"latitude,omitempty" json:"latitude,omitempty"`
	Longitude        *float64 `bson:"longitude,omitempty" json:"longitude,omitempty"`

	// Commande directe : la transaction unique.
	// Demande ouverte : le volume total recherché.
	QuantiteTotal float64 `bson:"quantite_total" json:"quantiteTotal"`
	PrixUnitaire  float64 `bson:"prix_unitaire" json:"prixUnitaire"`
	Unite         string  `bson:"unite" json:"unite"`

	// Commande directe : le produit et le paysan visés.
	ProduitID string `bson:"produit_id,omitempty" json:"produitId,omitempty"`
	PaysanID  string `bson:"paysan_id,omitempty" json:"paysanId,omitempty"`

	Lignes []LigneCommande `bson:"lignes" json:"lignes"`

	CollecteurID        string     `bson:"collecteur_id" json:"collecteurId"`
	Collecteur          string     `bson:"collecteur" json:"collecteur"`
	AdresseLivraison    string     `bson:"adresse_livraison" json:"adresseLivraison"`
	DateLivraisonPrevue *time.Time `bson:"date_livraison_prevue,omitempty" json:"dateLivraisonPrevue,omitempty"`
	MessageCollecteur   string     `bson:"message_collecteur" json:"messageCollecteur"`

	Historique []EnregistrementStatut `bson:"historique" json:"historique"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}

// Une ligne = la proposition d'un paysan contre une commande, acceptable ou
// rejetable indépendamment des autres lignes.
type LigneCommande struct {
	ID        string          `bson:"id" json:"id"`
	ProduitID string          `bson:"produit_id" json:"produitId"`
	Produit   ProduitSnapshot `bson:"produit" json:"produit"`

	QuantiteFournie float64 `bson:"quantite_fournie" json:"quantiteFournie"`
	PrixUnitaire    float64 `bson:"prix_unitaire" json:"prixUnitaire"`

	// Recalculé par le service à chaque écriture (quantiteFournie × prixUnitaire),
	// stocké uniquement pour l'API.
	SousTotal float64 `bson:"sous_total" json:"sousTotal"`

	StatutLigne StatutLigne `bson:"statut_ligne" json:"statutLigne"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
}

// SousTotalCalcule est la valeur de référence ; le champ stocké ne fait foi
// nulle part dans le code.
func (l LigneCommande) SousTotalCalcule() float64 {
	return l.QuantiteFournie * l.PrixUnitaire
}

// Copie dénormalisée du produit au moment de la proposition.
type ProduitSnapshot struct {
	ID       string  `bson:"id" json:"id"`
	Nom      string  `bson:"nom" json:"nom"`
	Prix     float64 `bson:"prix" json:"prix"`
	PaysanID string  `bson:"paysan_id" json:"paysanId"`
}

type EnregistrementStatut struct {
	Statut    StatutCommande `bson:"statut" json:"statut"`
	Motif     string         `bson:"motif" json:"motif"`
	ActeurID  string         `bson:"acteur_id" json:"acteurId"`
	Timestamp time.Time      `bson:"timestamp" json:"timestamp"`

	// Pour marquer lequel est le dernier
	Courant bool `bson:"courant" json:"courant"`
}

type Produit struct {
	ID          string    `bson:"_id" json:"id"`
	Nom         string    `bson:"nom" json:"nom"`
	Description string    `bson:"description" json:"description"`
	Prix        float64   `bson:"prix" json:"prix"`
	Unite       string    `bson:"unite" json:"unite"`
	Stock       float64   `bson:"stock" json:"stock"`
	Territoire  string    `bson:"territoire" json:"territoire"`
	PaysanID    string    `bson:"paysan_id" json:"paysanId"`
	CreatedAt   time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt   time.Time `bson:"updated_at" json:"updatedAt"`
}

type Utilisateur struct {
	ID         string    `bson:"_id" json:"id"`
	Nom        string    `bson:"nom" json:"nom"`
	Email      string    `bson:"email" json:"email"`
	MotDePasse string    `bson:"mot_de_passe" json:"-"`
	Role       Role      `bson:"role" json:"role"`
	Territoire string    `bson:"territoire" json:"territoire"`
	Telephone  string    `bson:"telephone" json:"telephone"`
	CreatedAt  time.Time `bson:"created_at" json:"createdAt"`
}

// Notification poussée sur le socket temps réel, format {titre, message, lien}.
type Notification struct {
	ID             string    `bson:"_id" json:"id"`
	DestinataireID string    `bson:"destinataire_id" json:"destinataireId"`
	Titre          string    `bson:"titre" json:"titre"`
	Message        string    `bson:"message" json:"message"`
	Lien           string    `bson:"lien,omitempty" json:"lien,omitempty"`
	Lue            bool      `bson:"lue" json:"lue"`
	CreatedAt      time.Time `bson:"created_at" json:"createdAt"`
}
