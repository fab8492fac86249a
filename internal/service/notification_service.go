package service

import (
	"context"

	"tsena-be/internal/model"

	"github.com/google/uuid"
)

type NotificationRepository interface {
	Save(ctx context.Context, n *model.Notification) error
	FindByDestinataire(ctx context.Context, destinataireID string, limit int64) ([]*model.Notification, error)
	MarquerLue(ctx context.Context, id, destinataireID string) error
}

// Diffuseur pousse une notification vers les sessions temps réel d'un
// utilisateur. Implémenté par le hub websocket.
type Diffuseur interface {
	Diffuser(destinataireID string, n *model.Notification)
}

type NotificationService struct {
	repo NotificationRepository
	hub  Diffuseur
}

func NewNotificationService(repo NotificationRepository, hub Diffuseur) *NotificationService {
	return &NotificationService{repo: repo, hub: hub}
}

// Notifier persiste puis diffuse. La persistance d'abord : un socket absent
// n'est pas une erreur, l'utilisateur retrouvera la notification à la
// prochaine connexion.
func (s *NotificationService) Notifier(ctx context.Context, evt Evenement) error {
	n := &model.Notification{
		ID:             uuid.NewString(),
		DestinataireID: evt.DestinataireID,
		Titre:          evt.Titre,
		Message:        evt.Message,
		Lien:           evt.Lien,
	}

	if err := s.repo.Save(ctx, n); err != nil {
		return err
	}

	if s.hub != nil {
		s.hub.Diffuser(n.DestinataireID, n)
	}
	return nil
}

func (s *NotificationService) GetPourUtilisateur(ctx context.Context, destinataireID string, limit int64) ([]*model.Notification, error) {
	return s.repo.FindByDestinataire(ctx, destinataireID, limit)
}

func (s *NotificationService) MarquerLue(ctx context.Context, id, destinataireID string) error {
	return s.repo.MarquerLue(ctx, id, destinataireID)
}
