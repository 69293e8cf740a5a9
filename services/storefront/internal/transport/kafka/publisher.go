package kafka

import (
	"context"

	generalDomain "github.com/vinabike/storefront/pkg/domain"
	"github.com/vinabike/storefront/pkg/kafka"
)

// Publisher sends payment events keyed by order id, so events of one order
// land on the same partition.
type Publisher struct {
	producer kafka.Producer
	topic    string
}

func NewPublisher(producer kafka.Producer, topic string) *Publisher {
	return &Publisher{producer: producer, topic: topic}
}

func (p *Publisher) PublishPaymentStatusChanged(ctx context.Context, event *generalDomain.PaymentStatusChangedEvent) error {
	return p.producer.ProduceMessage(ctx, p.topic, event.OrderID, generalDomain.EventWrapper{
		Event:   generalDomain.EventPaymentStatusChanged,
		Payload: event,
	})
}
