package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/samia-cardapio/cardapio-api/internal/domain"
	"github.com/samia-cardapio/cardapio-api/internal/queue"
	"go.uber.org/zap"
)

var ErrUnknownEvent = errors.New("unknown event type")

// FlagProcessor reads and applies item flags.
type FlagProcessor interface {
	CurrentFlag(ctx context.Context, itemID string, flag domain.ItemFlag) (*bool, error)
	ProcessFlagEvent(ctx context.Context, event domain.ItemFlagEvent) error
}

// ItemFlagWorker consumes flag change events. Events that would not change
// the stored value are dropped; events whose old value no longer matches the
// store are applied with the old value rewritten, so the audit shows the
// transition that actually happened.
type ItemFlagWorker struct {
	processor FlagProcessor
	broker    queue.Broker
	logger    *zap.SugaredLogger
	ctx       context.Context
	cancel    context.CancelFunc
}

func NewItemFlagWorker(processor FlagProcessor, broker queue.Broker, logger *zap.SugaredLogger) *ItemFlagWorker {
	ctx, cancel := context.WithCancel(context.Background())

	return &ItemFlagWorker{
		processor: processor,
		broker:    broker,
		logger:    logger,
		ctx:       ctx,
		cancel:    cancel,
	}
}

func (w *ItemFlagWorker) Start() error {
	w.logger.Infow("starting item flag worker", "queue", queue.QueueItemFlags)

	return w.broker.Subscribe(w.ctx, queue.QueueItemFlags, w.handleMessage)
}

func (w *ItemFlagWorker) Stop() {
	w.logger.Info("stopping item flag worker")
	w.cancel()
}

func (w *ItemFlagWorker) handleMessage(ctx context.Context, message []byte) error {
	event, err := decodeFlagEvent(message)
	if err != nil {
		w.logger.Errorw("dropping undecodable item flag message", "error", err)
		return err
	}

	current, err := w.processor.CurrentFlag(ctx, event.ItemID, event.Flag)
	if err != nil {
		return fmt.Errorf("failed to read current flag: %w", err)
	}

	if current != nil && *current == event.NewValue {
		w.logger.Infow("item flag already set, skipping", "item_id", event.ItemID, "flag", event.Flag, "value", event.NewValue)
		return nil
	}

	if !sameValue(current, event.OldValue) {
		w.logger.Warnw("stale item flag event",
			"item_id", event.ItemID,
			"flag", event.Flag,
			"queued_old_value", event.OldValue,
			"stored_value", current,
		)
		event.OldValue = current
	}

	if err := w.processor.ProcessFlagEvent(ctx, event); err != nil {
		w.logger.Errorw("failed to process item flag event", "item_id", event.ItemID, "error", err)
		return err
	}

	return nil
}

func decodeFlagEvent(message []byte) (domain.ItemFlagEvent, error) {
	var event domain.ItemFlagEvent
	if err := json.Unmarshal(message, &event); err != nil {
		return event, fmt.Errorf("failed to unmarshal event: %w", err)
	}

	switch event.EventType {
	case "":
		event.EventType = domain.EventItemFlagChanged
	case domain.EventItemFlagChanged:
	default:
		return event, fmt.Errorf("%w: %q", ErrUnknownEvent, event.EventType)
	}

	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	return event, nil
}

func sameValue(a, b *bool) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
