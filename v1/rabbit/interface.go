package rabbit

import (
	"context"

	amqp "github.com/rabbitmq/amqp091-go"
)

// confirmation is the broker's answer to one published message.
// *amqp.DeferredConfirmation implements it.
type confirmation interface {
	WaitContext(ctx context.Context) (bool, error)
}

// publisher publishes messages in confirm mode.
type publisher interface {
	Publish(ctx context.Context, exchange, key string, msg amqp.Publishing) (confirmation, error)
	Close() error
}

// channelPublisher publishes on an AMQP channel that has confirms enabled.
type channelPublisher struct {
	ch *amqp.Channel
}

func (p channelPublisher) Publish(ctx context.Context, exchange, key string, msg amqp.Publishing) (confirmation, error) {
	dc, err := p.ch.PublishWithDeferredConfirmWithContext(ctx, exchange, key, false, false, msg)
	if err != nil {
		return nil, err
	}
	if dc == nil {
		return ackedConfirmation{}, nil
	}
	return dc, nil
}

func (p channelPublisher) Close() error {
	return p.ch.Close()
}

// ackedConfirmation is used when the channel is not in confirm mode.
type ackedConfirmation struct{}

func (ackedConfirmation) WaitContext(context.Context) (bool, error) { return true, nil }
