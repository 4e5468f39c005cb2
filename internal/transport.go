package internal

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/bytedance/sonic"
	amqp "github.com/rabbitmq/amqp091-go"
)

// MessageTransport delivers one confirmation message to one destination.
// The mail and SMS gateways behind it are opaque external collaborators.
type MessageTransport interface {
	Send(ctx context.Context, message, destination string) error
}

// WriterTransport writes dispatched messages to an io.Writer. It backs the
// demonstration entry point and test fakes.
type WriterTransport struct {
	w       io.Writer
	channel string
}

func NewWriterTransport(w io.Writer, channel string) *WriterTransport {
	return &WriterTransport{
		w:       w,
		channel: channel,
	}
}

func (t *WriterTransport) Send(_ context.Context, message, destination string) error {
	_, err := fmt.Fprintf(t.w, "[%s] to %s: %s\n", t.channel, destination, message)
	return err
}

type notificationMessage struct {
	Channel     string `json:"channel"`
	Destination string `json:"destination"`
	Body        string `json:"body"`
}

// AMQPTransport publishes confirmation messages to a queue the mail or SMS
// gateway consumes from.
type AMQPTransport struct {
	ch      *amqp.Channel
	queue   string
	channel string
}

func NewAMQPTransport(ch *amqp.Channel, queue, channel string) *AMQPTransport {
	return &AMQPTransport{
		ch:      ch,
		queue:   queue,
		channel: channel,
	}
}

func (t *AMQPTransport) Send(ctx context.Context, message, destination string) error {
	body, err := sonic.ConfigFastest.Marshal(notificationMessage{
		Channel:     t.channel,
		Destination: destination,
		Body:        message,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal the notification: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	err = t.ch.PublishWithContext(ctx,
		"",      // exchange
		t.queue, // routing key
		false,   // mandatory
		false,   // immediate
		amqp.Publishing{
			DeliveryMode: amqp.Persistent,
			ContentType:  "application/json",
			Body:         body,
		})
	if err != nil {
		return fmt.Errorf("failed to publish the notification: %w", err)
	}

	return nil
}

// DeclareNotificationQueue makes sure the queue exists before the first
// publish. Idempotent to repeat.
func DeclareNotificationQueue(ch *amqp.Channel, queue string) error {
	_, err := ch.QueueDeclare(queue, true, false, false, false, nil)
	return err
}
