package amqp

import (
	"context"
	"errors"
	"strings"

	jsoniter "github.com/json-iterator/go"
	amqp091 "github.com/rabbitmq/amqp091-go"

	"github.com/AntonStoeckl/borrowdesk/library/notify"
)

const routingKeyPrefix = "notification."

var (
	ErrDialingBrokerFailed     = errors.New("dialing rabbitmq failed")
	ErrOpeningChannelFailed    = errors.New("opening channel failed")
	ErrDeclaringExchangeFailed = errors.New("declaring exchange failed")
	ErrMarshalingMessageFailed = errors.New("marshaling notification failed")
	ErrPublishingMessageFailed = errors.New("publishing notification failed")
	ErrEmptyExchangeName       = errors.New("exchange name must not be empty")
)

// Channel is the part of *amqp091.Channel the publisher needs.
type Channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp091.Publishing) error
	Close() error
}

// Publisher implements notify.Publisher.
type Publisher struct {
	conn     *amqp091.Connection
	ch       Channel
	exchange string
}

// NewPublisher dials the broker and declares a durable topic exchange.
func NewPublisher(url, exchange string) (*Publisher, error) {
	if exchange == "" {
		return nil, ErrEmptyExchangeName
	}

	conn, err := amqp091.Dial(url)
	if err != nil {
		return nil, errors.Join(ErrDialingBrokerFailed, err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()

		return nil, errors.Join(ErrOpeningChannelFailed, err)
	}

	if err = ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()

		return nil, errors.Join(ErrDeclaringExchangeFailed, err)
	}

	return &Publisher{conn: conn, ch: ch, exchange: exchange}, nil
}

// NewPublisherWithChannel publishes on an already opened channel, the caller owns the connection.
func NewPublisherWithChannel(ch Channel, exchange string) (*Publisher, error) {
	if exchange == "" {
		return nil, ErrEmptyExchangeName
	}

	return &Publisher{ch: ch, exchange: exchange}, nil
}

func (p *Publisher) Publish(ctx context.Context, notification notify.Notification) error {
	body, err := jsoniter.ConfigCompatibleWithStandardLibrary.Marshal(notification)
	if err != nil {
		return errors.Join(ErrMarshalingMessageFailed, err)
	}

	err = p.ch.PublishWithContext(ctx, p.exchange, RoutingKey(notification), false, false, amqp091.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp091.Persistent,
		MessageId:    notification.NotificationID,
		Timestamp:    notification.CreatedAt,
		Body:         body,
	})
	if err != nil {
		return errors.Join(ErrPublishingMessageFailed, err)
	}

	return nil
}

// RoutingKey is "notification." followed by the lower-cased kind.
func RoutingKey(notification notify.Notification) string {
	return routingKeyPrefix + strings.ToLower(string(notification.Kind))
}

func (p *Publisher) Close() error {
	if p.ch != nil {
		_ = p.ch.Close()
	}

	if p.conn != nil {
		return p.conn.Close()
	}

	return nil
}

var _ notify.Publisher = (*Publisher)(nil)
