package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"tsena-be/internal/logger"
	"tsena-be/internal/model"
	"tsena-be/internal/negotiation"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Interfaces que doivent implémenter les repositories
type CommandeRepository interface {
	Save(ctx context.Context, c *model.Commande) error
	FindByID(ctx context.Context, id string) (*model.Commande, error)
	FindAll(ctx context.Context, page, limit int64) ([]*model.Commande, error)
	FindByStatut(ctx context.Context, statut model.StatutCommande) ([]*model.Commande, error)
	FindByCollecteurID(ctx context.Context, collecteurID string, page, limit int64) ([]*model.Commande, error)
	FindByPaysanID(ctx context.Context, paysanID string, page, limit int64) ([]*model.Commande, error)
	UpdateStatut(ctx context.Context, id string, statut model.StatutCommande, record model.EnregistrementStatut) error
	UpdateLigneStatut(ctx context.Context, commandeID, ligneID string, statut model.StatutLigne) error
	AjouterLigne(ctx context.Context, commandeID string, ligne model.LigneCommande) error
	Delete(ctx context.Context, id string) error
}

type ProduitRepository interface {
	Save(ctx context.Context, p *model.Produit) error
	FindByID(ctx context.Context, id string) (*model.Produit, error)
	FindAll(ctx context.Context, territoire, nom string) ([]*model.Produit, error)
	FindByPaysanID(ctx context.Context, paysanID string) ([]*model.Produit, error)
}

// Évènement de négociation publié sur le bus après chaque mutation réussie.
// Le consommateur le transforme en notification {titre, message, lien}.
type Evenement struct {
	Type           string `json:"type"`
	CommandeID     string `json:"commandeId"`
	LigneID        string `json:"ligneId,omitempty"`
	DestinataireID string `json:"destinataireId"`
	Titre          string `json:"titre"`
	Message        string `json:"message"`
	Lien           string `json:"lien,omitempty"`
}

type EventPublisher interface {
	Publish(ctx context.Context, evt Evenement) error
}

// Erreurs métier exportées (utilisées par le controller)
var (
	ErrInterdit           = errors.New("action interdite pour cet utilisateur")
	ErrTransitionInvalide = errors.New("transition de statut invalide")
	ErrEtatFinal          = errors.New("la commande est dans un état final")
	ErrTypeIncoherent     = errors.New("champs incohérents avec le type de commande")
	ErrPasDemandeOuverte  = errors.New("la commande n'est pas une demande ouverte")
)

// Acteur = l'utilisateur authentifié derrière l'appel, extrait du token.
type Acteur struct {
	ID   string
	Role model.Role
}

func (a Acteur) EstAdmin() bool { return a.Role == model.RoleAdmin }

type CommandeService struct {
	repo     CommandeRepository
	produits ProduitRepository
	events   EventPublisher
}

func NewCommandeService(repo CommandeRepository, produits ProduitRepository, events EventPublisher) *CommandeService {
	return &CommandeService{repo: repo, produits: produits, events: events}
}

// Transitions autorisées par rôle. Les décisions ligne ont leurs propres
// règles plus bas ; ici c'est le statut global de la commande.
var transitionsPaysan = map[model.StatutCommande][]model.StatutCommande{
	model.StatutEnAttente: {model.StatutAcceptee, model.StatutAnnulee},
	model.StatutPaye:      {model.StatutLivree},
}

var transitionsCollecteur = map[model.StatutCommande][]model.StatutCommande{
	model.StatutEnAttente: {model.StatutAnnulee},
	model.StatutOuverte:   {model.StatutAnnulee},
	model.StatutAcceptee:  {model.StatutPaye},
	model.StatutComplete:  {model.StatutPaye},
}

// États finaux
var etatsFinals = map[model.StatutCommande]bool{
	model.StatutAnnulee: true,
	model.StatutLivree:  true,
}

// CreerCommandeDirecte crée une proposition d'achat visant un produit précis.
// Le paysan destinataire est déduit du produit.
func (s *CommandeService) CreerCommandeDirecte(ctx context.Context, acteur Acteur, in *model.Commande) (*model.Commande, error) {
	if acteur.Role != model.RoleCollecteur {
		return nil, ErrInterdit
	}
	// Une commande directe ne porte jamais les champs de demande ouverte.
	if in.ProduitRecherche != nil || in.Territoire != nil {
		return nil, ErrTypeIncoherent
	}
	if in.ProduitID == "" || in.QuantiteTotal <= 0 {
		return nil, fmt.Errorf("%w: produit et quantité requis", ErrTypeIncoherent)
	}

	produit, err := s.produits.FindByID(ctx, in.ProduitID)
	if err != nil {
		return nil, err
	}

	in.ID = uuid.NewString()
	in.Type = model.CommandeDirecte
	in.Statut = model.StatutEnAttente
	in.PaysanID = produit.PaysanID
	in.CollecteurID = acteur.ID
	if in.PrixUnitaire <= 0 {
		in.PrixUnitaire = produit.Prix
	}
	if in.Unite == "" {
		in.Unite = produit.Unite
	}
	in.Lignes = nil

	if err := s.repo.Save(ctx, in); err != nil {
		return nil, err
	}

	s.publier(ctx, Evenement{
		Type:           "COMMANDE_CREEE",
		CommandeID:     in.ID,
		DestinataireID: in.PaysanID,
		Titre:          "Nouvelle commande",
		Message:        fmt.Sprintf("Un collecteur propose d'acheter %s (%.0f %s)", produit.Nom, in.QuantiteTotal, in.Unite),
		Lien:           "/commandes/" + in.ID,
	})

	return in, nil
}

// CreerDemandeOuverte publie une demande qu'un ou plusieurs paysans du
// territoire pourront couvrir via des lignes concurrentes.
func (s *CommandeService) CreerDemandeOuverte(ctx context.Context, acteur Acteur, in *model.Commande) (*model.Commande, error) {
	if acteur.Role != model.RoleCollecteur {
		return nil, ErrInterdit
	}
	// L'invariant du discriminant : produitRecherche ET territoire posés.
	if in.ProduitRecherche == nil || *in.ProduitRecherche == "" ||
		in.Territoire == nil || *in.Territoire == "" {
		return nil, fmt.Errorf("%w: produitRecherche et territoire requis", ErrTypeIncoherent)
	}
	if in.QuantiteTotal <= 0 {
		return nil, fmt.Errorf("%w: quantité totale requise", ErrTypeIncoherent)
	}

	in.ID = uuid.NewString()
	in.Type = model.CommandeOuverte
	in.Statut = model.StatutOuverte
	in.CollecteurID = acteur.ID
	in.ProduitID = ""
	in.PaysanID = ""
	in.Lignes = nil

	if err := s.repo.Save(ctx, in); err != nil {
		return nil, err
	}

	logger.FromCtx(ctx).Info("demande ouverte publiée",
		zap.String("commande_id", in.ID),
		zap.String("territoire", *in.Territoire),
	)

	return in, nil
}

// GetByID applique la règle de visibilité : admin voit tout, le collecteur
// voit ses commandes, le paysan voit celles qui le concernent.
func (s *CommandeService) GetByID(ctx context.Context, acteur Acteur, id string) (*model.Commande, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !s.peutVoir(acteur, c) {
		return nil, ErrInterdit
	}
	return c, nil
}

func (s *CommandeService) peutVoir(acteur Acteur, c *model.Commande) bool {
	if acteur.EstAdmin() || c.CollecteurID == acteur.ID || c.PaysanID == acteur.ID {
		return true
	}
	// Les demandes ouvertes sont visibles de tous les paysans : c'est un
	// appel d'offres. Un paysan ayant déjà une ligne la voit aussi.
	if negotiation.EstDemandeOuverte(*c) && acteur.Role == model.RolePaysan {
		return true
	}
	return false
}

// GetPourActeur liste paginé selon le rôle.
func (s *CommandeService) GetPourActeur(ctx context.Context, acteur Acteur, page, limit int64) ([]*model.Commande, error) {
	switch acteur.Role {
	case model.RoleAdmin:
		return s.repo.FindAll(ctx, page, limit)
	case model.RoleCollecteur:
		return s.repo.FindByCollecteurID(ctx, acteur.ID, page, limit)
	default:
		return s.repo.FindByPaysanID(ctx, acteur.ID, page, limit)
	}
}

func (s *CommandeService) GetAll(ctx context.Context, page, limit int64) ([]*model.Commande, error) {
	return s.repo.FindAll(ctx, page, limit)
}

func (s *CommandeService) GetByStatut(ctx context.Context, statut model.StatutCommande) ([]*model.Commande, error) {
	return s.repo.FindByStatut(ctx, statut)
}

// AccepterCommande / RejeterCommande : décision globale sur une commande
// directe, prise par le paysan visé (ou annulation par le collecteur).
func (s *CommandeService) AccepterCommande(ctx context.Context, acteur Acteur, id string) (*model.Commande, error) {
	return s.changerStatut(ctx, acteur, id, model.StatutAcceptee, "Commande acceptée")
}

func (s *CommandeService) RejeterCommande(ctx context.Context, acteur Acteur, id string) (*model.Commande, error) {
	return s.changerStatut(ctx, acteur, id, model.StatutAnnulee, "Commande rejetée")
}

// ChangerStatut couvre aussi les transitions aval (PAYE, LIVREE).
func (s *CommandeService) ChangerStatut(ctx context.Context, acteur Acteur, id string, statut model.StatutCommande, motif string) (*model.Commande, error) {
	return s.changerStatut(ctx, acteur, id, statut, motif)
}

func (s *CommandeService) changerStatut(ctx context.Context, acteur Acteur, id string, nouveau model.StatutCommande, motif string) (*model.Commande, error) {
	// Même un admin ne persiste jamais un statut hors de l'énumération.
	if !nouveau.EstValide() {
		return nil, fmt.Errorf("%w: statut inconnu %q", ErrTransitionInvalide, nouveau)
	}

	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	courant := c.Statut

	estPaysanVise := c.PaysanID != "" && c.PaysanID == acteur.ID
	estCollecteur := c.CollecteurID == acteur.ID

	if !acteur.EstAdmin() && !estPaysanVise && !estCollecteur {
		return nil, ErrInterdit // ni admin, ni partie prenante
	}

	// Réécrire le même statut est un no-op : rejouer une décision déjà
	// confirmée ne doit pas échouer (garde anti double-soumission).
	if courant == nouveau {
		return c, nil
	}
	if etatsFinals[courant] {
		return nil, ErrEtatFinal
	}

	autorisePaysan := estPaysanVise && contient(transitionsPaysan[courant], nouveau)
	autoriseCollecteur := estCollecteur && contient(transitionsCollecteur[courant], nouveau)

	if !autorisePaysan && !autoriseCollecteur && !acteur.EstAdmin() {
		return nil, ErrTransitionInvalide
	}

	record := model.EnregistrementStatut{
		Statut:    nouveau,
		Motif:     motif,
		ActeurID:  acteur.ID,
		Timestamp: time.Now().UTC(),
		Courant:   true,
	}

	if err := s.repo.UpdateStatut(ctx, id, nouveau, record); err != nil {
		return nil, err
	}
	c.Statut = nouveau
	c.Historique = append(c.Historique, record)

	// Prévenir l'autre partie.
	destinataire := c.CollecteurID
	if acteur.ID == c.CollecteurID {
		destinataire = c.PaysanID
	}
	if destinataire != "" {
		s.publier(ctx, Evenement{
			Type:           "STATUT_CHANGE",
			CommandeID:     c.ID,
			DestinataireID: destinataire,
			Titre:          "Commande " + string(nouveau),
			Message:        motif,
			Lien:           "/commandes/" + c.ID,
		})
	}

	return c, nil
}

// ProposerLigne dépose la proposition d'un paysan contre une demande ouverte.
func (s *CommandeService) ProposerLigne(ctx context.Context, acteur Acteur, commandeID, produitID string, quantite, prix float64) (*model.LigneCommande, error) {
	if acteur.Role != model.RolePaysan {
		return nil, ErrInterdit
	}

	c, err := s.repo.FindByID(ctx, commandeID)
	if err != nil {
		return nil, err
	}
	if !negotiation.EstDemandeOuverte(*c) {
		return nil, ErrPasDemandeOuverte
	}
	if c.Statut != model.StatutOuverte && c.Statut != model.StatutPartiellementFournie {
		return nil, ErrEtatFinal
	}
	if quantite <= 0 || prix <= 0 {
		return nil, fmt.Errorf("%w: quantité et prix requis", ErrTypeIncoherent)
	}

	produit, err := s.produits.FindByID(ctx, produitID)
	if err != nil {
		return nil, err
	}
	if produit.PaysanID != acteur.ID {
		return nil, ErrInterdit // on ne propose que ses propres produits
	}

	ligne := model.LigneCommande{
		ID:        uuid.NewString(),
		ProduitID: produit.ID,
		Produit: model.ProduitSnapshot{
			ID:       produit.ID,
			Nom:      produit.Nom,
			Prix:     produit.Prix,
			PaysanID: produit.PaysanID,
		},
		QuantiteFournie: quantite,
		PrixUnitaire:    prix,
		StatutLigne:     model.LigneEnAttente,
		CreatedAt:       time.Now().UTC(),
	}
	// sousTotal dérivé, jamais fourni par le client.
	ligne.SousTotal = ligne.SousTotalCalcule()

	if err := s.repo.AjouterLigne(ctx, commandeID, ligne); err != nil {
		return nil, err
	}

	s.publier(ctx, Evenement{
		Type:           "LIGNE_PROPOSEE",
		CommandeID:     c.ID,
		LigneID:        ligne.ID,
		DestinataireID: c.CollecteurID,
		Titre:          "Nouvelle proposition",
		Message:        fmt.Sprintf("%s propose %.0f %s", produit.Nom, quantite, c.Unite),
		Lien:           "/commandes/" + c.ID,
	})

	return &ligne, nil
}

// AccepterLigne / RejeterLigne : décision du collecteur propriétaire sur une
// proposition. La décision passe par le cœur pur de négociation puis est
// persistée ; le statut global dérivé est recalculé dans la foulée.
func (s *CommandeService) AccepterLigne(ctx context.Context, acteur Acteur, commandeID, ligneID string) (*model.Commande, error) {
	return s.deciderLigne(ctx, acteur, commandeID, ligneID, model.LigneAcceptee)
}

func (s *CommandeService) RejeterLigne(ctx context.Context, acteur Acteur, commandeID, ligneID string) (*model.Commande, error) {
	return s.deciderLigne(ctx, acteur, commandeID, ligneID, model.LigneRejetee)
}

func (s *CommandeService) deciderLigne(ctx context.Context, acteur Acteur, commandeID, ligneID string, statut model.StatutLigne) (*model.Commande, error) {
	c, err := s.repo.FindByID(ctx, commandeID)
	if err != nil {
		return nil, err
	}
	if !acteur.EstAdmin() && c.CollecteurID != acteur.ID {
		return nil, ErrInterdit
	}
	if etatsFinals[c.Statut] {
		return nil, ErrEtatFinal
	}

	var apres []model.Commande
	switch statut {
	case model.LigneAcceptee:
		apres, err = negotiation.AccepterLigne([]model.Commande{*c}, commandeID, ligneID)
	default:
		apres, err = negotiation.RejeterLigne([]model.Commande{*c}, commandeID, ligneID)
	}
	if err != nil {
		return nil, err
	}
	decide := apres[0]

	// No-op idempotent : rien à persister ni à notifier.
	if ligneStatut(c, ligneID) == statut {
		return c, nil
	}

	if err := s.repo.UpdateLigneStatut(ctx, commandeID, ligneID, statut); err != nil {
		return nil, err
	}

	// Statut global dérivé pour les demandes ouvertes : la couverture
	// acceptée fait progresser OUVERTE → PARTIELLEMENT_FOURNIE → COMPLETE.
	if derive, change := statutDerive(decide); change {
		record := model.EnregistrementStatut{
			Statut:    derive,
			Motif:     "Couverture mise à jour",
			ActeurID:  acteur.ID,
			Timestamp: time.Now().UTC(),
			Courant:   true,
		}
		if err := s.repo.UpdateStatut(ctx, commandeID, derive, record); err != nil {
			return nil, err
		}
		decide.Statut = derive
		decide.Historique = append(decide.Historique, record)
	}

	var ligne *model.LigneCommande
	for i := range decide.Lignes {
		if decide.Lignes[i].ID == ligneID {
			ligne = &decide.Lignes[i]
			break
		}
	}
	if ligne != nil {
		verbe := "acceptée"
		if statut == model.LigneRejetee {
			verbe = "rejetée"
		}
		s.publier(ctx, Evenement{
			Type:           "LIGNE_" + string(statut),
			CommandeID:     decide.ID,
			LigneID:        ligneID,
			DestinataireID: ligne.Produit.PaysanID,
			Titre:          "Proposition " + verbe,
			Message:        fmt.Sprintf("Votre proposition de %.0f %s a été %s", ligne.QuantiteFournie, decide.Unite, verbe),
			Lien:           "/commandes/" + decide.ID,
		})
	}

	return &decide, nil
}

func ligneStatut(c *model.Commande, ligneID string) model.StatutLigne {
	for _, l := range c.Lignes {
		if l.ID == ligneID {
			return l.StatutLigne
		}
	}
	return ""
}

// statutDerive recalcule le statut d'une demande ouverte après une décision
// ligne. Ne touche jamais aux états aval (PAYE, LIVREE) ni aux finaux.
func statutDerive(c model.Commande) (model.StatutCommande, bool) {
	if !negotiation.EstDemandeOuverte(c) {
		return c.Statut, false
	}
	if c.Statut != model.StatutOuverte && c.Statut != model.StatutPartiellementFournie {
		return c.Statut, false
	}

	acceptee := negotiation.QuantiteAcceptee(c)
	switch {
	case c.QuantiteTotal > 0 && acceptee >= c.QuantiteTotal:
		return model.StatutComplete, c.Statut != model.StatutComplete
	case acceptee > 0:
		return model.StatutPartiellementFournie, c.Statut != model.StatutPartiellementFournie
	default:
		return model.StatutOuverte, c.Statut != model.StatutOuverte
	}
}

// Progression expose le pourcentage de couverture et les compteurs de lignes.
type Progression struct {
	Pourcentage      *float64              `json:"pourcentage"` // null quand quantiteTotal vaut 0
	QuantiteAcceptee float64               `json:"quantiteAcceptee"`
	QuantiteTotal    float64               `json:"quantiteTotal"`
	Compteurs        negotiation.Compteurs `json:"compteurs"`
}

func (s *CommandeService) GetProgression(ctx context.Context, acteur Acteur, id string) (*Progression, error) {
	c, err := s.GetByID(ctx, acteur, id)
	if err != nil {
		return nil, err
	}

	p := &Progression{
		QuantiteAcceptee: negotiation.QuantiteAcceptee(*c),
		QuantiteTotal:    c.QuantiteTotal,
		Compteurs:        negotiation.CompterLignes(*c),
	}
	if pct, ok := negotiation.Progression(*c); ok {
		p.Pourcentage = &pct
	}
	return p, nil
}

// MettreAJour ne touche qu'aux champs descriptifs/contact ; tout le reste est
// immuable après création.
func (s *CommandeService) MettreAJour(ctx context.Context, acteur Acteur, id string, adresse, message string, dateLivraison *time.Time) (*model.Commande, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !acteur.EstAdmin() && c.CollecteurID != acteur.ID {
		return nil, ErrInterdit
	}
	if etatsFinals[c.Statut] {
		return nil, ErrEtatFinal
	}

	if adresse != "" {
		c.AdresseLivraison = adresse
	}
	if message != "" {
		c.MessageCollecteur = message
	}
	if dateLivraison != nil {
		c.DateLivraisonPrevue = dateLivraison
	}

	if err := s.repo.Save(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// Supprimer : seulement tant que rien n'est engagé (aucune ligne acceptée,
// pas de décision globale prise).
func (s *CommandeService) Supprimer(ctx context.Context, acteur Acteur, id string) error {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !acteur.EstAdmin() && c.CollecteurID != acteur.ID {
		return ErrInterdit
	}
	if c.Statut != model.StatutEnAttente && c.Statut != model.StatutOuverte {
		return ErrEtatFinal
	}
	if negotiation.CompterLignes(*c).Acceptees > 0 {
		return ErrEtatFinal
	}
	return s.repo.Delete(ctx, id)
}

func (s *CommandeService) publier(ctx context.Context, evt Evenement) {
	if s.events == nil {
		return
	}
	if err := s.events.Publish(ctx, evt); err != nil {
		// La notification est du best-effort : la mutation est déjà
		// persistée, on trace et on continue.
		logger.FromCtx(ctx).Warn("publication évènement impossible",
			zap.String("type", evt.Type),
			zap.String("commande_id", evt.CommandeID),
			zap.Error(err),
		)
	}
}

func contient(arr []model.StatutCommande, s model.StatutCommande) bool {
	for _, v := range arr {
		if v == s {
			return true
		}
	}
	return false
}
