package rabbit

import (
	"context"
	"encoding/json"

	"tsena-be/internal/logger"
	"tsena-be/internal/service"

	"go.uber.org/zap"
)

// Transforme les évènements de négociation en notifications : persistance
// puis diffusion sur le socket du destinataire.
type NotificationConsumer struct {
	Service *service.NotificationService
}

func NewNotificationConsumer(s *service.NotificationService) *NotificationConsumer {
	return &NotificationConsumer{Service: s}
}

func (c *NotificationConsumer) Handle(msg []byte) error {
	var evt service.Evenement
	if err := json.Unmarshal(msg, &evt); err != nil {
		logger.L().Error("message évènement illisible", zap.Error(err))
		return err
	}

	// Certains évènements (création de demande ouverte) n'ont pas de
	// destinataire unique : rien à notifier.
	if evt.DestinataireID == "" {
		return nil
	}

	if err := c.Service.Notifier(context.Background(), evt); err != nil {
		logger.L().Error("notification impossible",
			zap.String("type", evt.Type),
			zap.String("destinataire", evt.DestinataireID),
			zap.Error(err),
		)
		return err
	}

	logger.L().Debug("notification poussée",
		zap.String("type", evt.Type),
		zap.String("destinataire", evt.DestinataireID),
	)
	return nil
}
