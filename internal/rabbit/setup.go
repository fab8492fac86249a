// setup.go
package rabbit

import (
	"tsena-be/internal/logger"
	"tsena-be/internal/service"

	"github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

func SetupConsumers(ch *amqp091.Channel, svc *service.NotificationService) {
	consumer := NewNotificationConsumer(svc)

	// 1. Déclarer la queue
	q, err := ch.QueueDeclare(
		"tsena_notifications", // queue propre à ce service
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		logger.L().Error("déclaration queue impossible", zap.Error(err))
		return
	}

	// 2. Binder sur l'exchange fanout
	err = ch.QueueBind(
		q.Name,
		"", // fanout ignore la routing key
		ExchangeCommandes,
		false,
		nil,
	)
	if err != nil {
		logger.L().Error("binding exchange impossible", zap.Error(err))
		return
	}

	// 3. Consommer
	msgs, err := ch.Consume(
		q.Name,
		"",
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		logger.L().Error("consommation queue impossible", zap.Error(err))
		return
	}

	go func() {
		for m := range msgs {
			_ = consumer.Handle(m.Body)
		}
	}()

	logger.L().Info("abonné à l'exchange commande_events (fanout)")
}
