package rabbit

import (
	"context"
	"encoding/json"

	"tsena-be/internal/service"

	"github.com/rabbitmq/amqp091-go"
)

const ExchangeCommandes = "commande_events"

// Publisher pousse les évènements de négociation sur l'exchange fanout.
type Publisher struct {
	ch *amqp091.Channel
}

func NewPublisher(ch *amqp091.Channel) (*Publisher, error) {
	err := ch.ExchangeDeclare(
		ExchangeCommandes,
		"fanout",
		true,  // durable
		false, // auto-delete
		false,
		false,
		nil,
	)
	if err != nil {
		return nil, err
	}
	return &Publisher{ch: ch}, nil
}

func (p *Publisher) Publish(ctx context.Context, evt service.Evenement) error {
	body, err := json.Marshal(evt)
	if err != nil {
		return err
	}

	return p.ch.PublishWithContext(ctx,
		ExchangeCommandes,
		"", // fanout ignore la routing key
		false,
		false,
		amqp091.Publishing{
			ContentType: "application/json",
			Body:        body,
		},
	)
}
