// Package messaging forwards audit events to RabbitMQ.
package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/SscSPs/eft_batch_service/internal/core/domain"
	"github.com/SscSPs/eft_batch_service/internal/core/ports"
	amqp "github.com/rabbitmq/amqp091-go"
)

// AuditMessage is the JSON body published for every audit event.
type AuditMessage struct {
	AuditID        string    `json:"auditID"`
	BatchID        string    `json:"batchID"`
	BatchReference string    `json:"batchReference"`
	Action         string    `json:"action"`
	ActorID        string    `json:"actorID"`
	Timestamp      time.Time `json:"timestamp"`
	Remarks        *string   `json:"remarks,omitempty"`
	OriginAddress  *string   `json:"originAddress,omitempty"`
}

// NewAuditMessage converts a domain event to its wire form.
func NewAuditMessage(e domain.AuditEvent) AuditMessage {
	return AuditMessage{
		AuditID:        e.AuditID,
		BatchID:        e.BatchID,
		BatchReference: e.BatchReference,
		Action:         string(e.Action),
		ActorID:        e.ActorID,
		Timestamp:      e.Timestamp.UTC(),
		Remarks:        e.Remarks,
		OriginAddress:  e.OriginAddress,
	}
}

// AuditPublisher publishes audit events to a durable queue through the
// default exchange. The channel is reopened when the broker closes it.
type AuditPublisher struct {
	conn      *amqp.Connection
	queueName string
	log       *slog.Logger

	mu sync.Mutex
	ch *amqp.Channel
}

// Dial connects to url and declares queueName.
func Dial(url, queueName string, connectTimeout time.Duration) (*AuditPublisher, error) {
	conn, err := amqp.DialConfig(url, amqp.Config{
		Dial: amqp.DefaultDial(connectTimeout),
	})
	if err != nil {
		return nil, fmt.Errorf("connect to RabbitMQ: %w", err)
	}
	p := &AuditPublisher{
		conn:      conn,
		queueName: queueName,
		log:       slog.With("component", "audit_publisher"),
	}
	if _, err := p.channel(); err != nil {
		_ = conn.Close()
		return nil, err
	}
	return p, nil
}

var _ ports.AuditPublisher = (*AuditPublisher)(nil)

func (p *AuditPublisher) channel() (*amqp.Channel, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.ch != nil && !p.ch.IsClosed() {
		return p.ch, nil
	}
	ch, err := p.conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("open channel: %w", err)
	}
	if _, err := ch.QueueDeclare(
		p.queueName,
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,
	); err != nil {
		_ = ch.Close()
		return nil, fmt.Errorf("declare queue %s: %w", p.queueName, err)
	}
	p.ch = ch
	return ch, nil
}

// PublishAuditEvent sends one persistent JSON message.
func (p *AuditPublisher) PublishAuditEvent(ctx context.Context, event domain.AuditEvent) error {
	body, err := json.Marshal(NewAuditMessage(event))
	if err != nil {
		return fmt.Errorf("encode audit event: %w", err)
	}
	ch, err := p.channel()
	if err != nil {
		return err
	}
	err = ch.PublishWithContext(ctx,
		"",          // exchange, empty means default (direct to queue)
		p.queueName, // routing key = queue name
		false,       // mandatory
		false,       // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			MessageId:    event.AuditID,
			Timestamp:    event.Timestamp,
			Type:         string(event.Action),
			Body:         body,
		},
	)
	if err != nil {
		p.log.Error("Failed to publish audit event", "audit_id", event.AuditID, "error", err)
		return fmt.Errorf("publish audit event: %w", err)
	}
	return nil
}

// Close releases the channel and the connection.
func (p *AuditPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.ch != nil {
		_ = p.ch.Close()
	}
	return p.conn.Close()
}
