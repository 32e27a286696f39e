package outbox

import (
	"time"
)

// Message is an event awaiting publication to RabbitMQ. Rows are written in
// the same database transaction as the state change they describe and
// published by the outbox worker.
type Message struct {
	ID           int64
	QueueName    string
	ExchangeName string
	RoutingKey   string
	Payload      []byte
	ContentType  string
	RetryCount   int
	MaxRetries   int
	LastError    string
	CreatedAt    time.Time
	UpdatedAt    time.Time
	NextRetryAt  time.Time
}

// NewJSON builds a queue-routed JSON message with default retry bookkeeping.
func NewJSON(queueName string, payload []byte) Message {
	now := time.Now()

	return Message{
		QueueName:   queueName,
		RoutingKey:  queueName,
		Payload:     payload,
		ContentType: "application/json",
		MaxRetries:  10,
		CreatedAt:   now,
		UpdatedAt:   now,
		NextRetryAt: now,
	}
}
