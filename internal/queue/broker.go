package queue

import (
	"context"
	"time"
)

type Broker interface {
	Publish(ctx context.Context, queueName string, message []byte) error
	Subscribe(ctx context.Context, queueName string, handler MessageHandler) error
	Close() error
}

type MessageHandler func(ctx context.Context, message []byte) error

const (
	QueueItemFlags    = "item-flags"
	QueueItemFlagsDLQ = QueueItemFlags + dlqSuffix

	dlqSuffix = "-dlq"
)

// Queues lists every queue the service declares.
var Queues = []string{QueueItemFlags, QueueItemFlagsDLQ}

func DeadLetterQueue(queueName string) string {
	return queueName + dlqSuffix
}

// backoff is the wait before retry number attempt+1: base, 2*base, 4*base...
func backoff(base time.Duration, attempt int) time.Duration {
	if base <= 0 {
		base = time.Second
	}
	return base << attempt
}
