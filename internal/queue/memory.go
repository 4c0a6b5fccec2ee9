package queue

import (
	"context"
	"fmt"
	"sync"
)

// MemoryBroker delivers messages in-process, synchronously, to the handler
// subscribed to the queue. A failing handler fails Publish; there is no retry
// and no dead letter queue. Used when no external broker is configured.
type MemoryBroker struct {
	mu       sync.RWMutex
	handlers map[string]MessageHandler
}

func NewMemoryBroker() *MemoryBroker {
	return &MemoryBroker{handlers: make(map[string]MessageHandler)}
}

func (b *MemoryBroker) Publish(ctx context.Context, queueName string, message []byte) error {
	b.mu.RLock()
	handler, ok := b.handlers[queueName]
	b.mu.RUnlock()

	if !ok {
		return fmt.Errorf("no consumer for queue %s", queueName)
	}

	if err := handler(ctx, message); err != nil {
		return fmt.Errorf("failed to handle message: %w", err)
	}
	return nil
}

func (b *MemoryBroker) Subscribe(ctx context.Context, queueName string, handler MessageHandler) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[queueName] = handler
	return nil
}

func (b *MemoryBroker) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers = make(map[string]MessageHandler)
	return nil
}
