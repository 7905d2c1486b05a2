package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	amqp "github.com/rabbitmq/amqp091-go"
)

var errMalformedPayload = errors.New("malformed order payload")

// OrderNotifier tells the customer their order was received.
type OrderNotifier interface {
	SendOrderConfirmation(ctx context.Context, payload OrderPlacedPayload) error
}

type Worker struct {
	Channel  *amqp.Channel
	Notifier OrderNotifier
	Logger   *slog.Logger
	// OnFailure is called with the failing service name; used for metrics.
	OnFailure func(service string)
}

func NewWorker(ch *amqp.Channel, notifier OrderNotifier, logger *slog.Logger) *Worker {
	return &Worker{
		Channel:   ch,
		Notifier:  notifier,
		Logger:    logger,
		OnFailure: func(string) {},
	}
}

// Start consumes queueName until ctx is done or the channel closes.
func (w *Worker) Start(ctx context.Context, queueName string) error {
	msgs, err := w.Channel.ConsumeWithContext(ctx,
		queueName,
		"",
		false,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return fmt.Errorf("failed to register RabbitMQ consumer: %w", err)
	}

	w.Logger.Info("order worker consuming", slog.String("queue", queueName))

	for {
		select {
		case <-ctx.Done():
			w.Logger.Info("order worker stopped")
			return nil
		case d, ok := <-msgs:
			if !ok {
				return errors.New("delivery channel closed")
			}
			w.handle(ctx, d)
		}
	}
}

// handle acks processed messages and rejects the rest without requeue, so
// they land in the dead letter queue instead of blocking the consumer.
func (w *Worker) handle(ctx context.Context, d amqp.Delivery) {
	err := w.process(ctx, d.Body)
	if err == nil {
		if ackErr := d.Ack(false); ackErr != nil {
			w.Logger.Error("ack failed", slog.Any("error", ackErr))
		}
		return
	}

	w.Logger.Error("order message rejected",
		slog.String("message_id", d.MessageId),
		slog.Any("error", err),
	)
	if !errors.Is(err, errMalformedPayload) {
		w.OnFailure("smtp")
	}
	if nackErr := d.Nack(false, false); nackErr != nil {
		w.Logger.Error("nack failed", slog.Any("error", nackErr))
	}
}

func (w *Worker) process(ctx context.Context, body []byte) error {
	var payload OrderPlacedPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return fmt.Errorf("%w: %w", errMalformedPayload, err)
	}
	if payload.OrderID == "" || payload.CustomerEmail == "" {
		return fmt.Errorf("%w: order_id and customer_email are required", errMalformedPayload)
	}

	if err := w.Notifier.SendOrderConfirmation(ctx, payload); err != nil {
		return fmt.Errorf("confirmation for order %s: %w", payload.OrderID, err)
	}

	w.Logger.Info("order confirmation sent", slog.String("order_id", payload.OrderID))
	return nil
}
