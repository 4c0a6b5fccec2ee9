package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/samia-cardapio/cardapio-api/internal/domain"
	"github.com/samia-cardapio/cardapio-api/internal/metrics"
	"github.com/samia-cardapio/cardapio-api/internal/queue"
	"github.com/samia-cardapio/cardapio-api/internal/repo"
	"go.uber.org/zap"
)

var (
	ErrInvalidItemID  = errors.New("invalid item id")
	ErrUnknownFlag    = errors.New("unknown item flag")
	ErrUnknownOverlay = errors.New("unknown overlay")
)

const (
	DefaultAuditLimit = 50
	MaxAuditLimit     = 500
)

type ItemService struct {
	overlays  repo.OverlayRepository
	auditRepo repo.ItemFlagAuditRepository
	tx        repo.Transactor
	broker    queue.Broker
	metrics   *metrics.Registry
	logger    *zap.SugaredLogger
}

func NewItemService(
	overlays repo.OverlayRepository,
	auditRepo repo.ItemFlagAuditRepository,
	tx repo.Transactor,
	broker queue.Broker,
	metrics *metrics.Registry,
	logger *zap.SugaredLogger,
) *ItemService {
	return &ItemService{
		overlays:  overlays,
		auditRepo: auditRepo,
		tx:        tx,
		broker:    broker,
		metrics:   metrics,
		logger:    logger,
	}
}

// ValidItemID reports whether id can be stored as an overlay entry.
func ValidItemID(id string) bool {
	return id != "" && !strings.ContainsAny(id, ".$")
}

// UpdateFlag queues a flag change; the worker applies it.
func (s *ItemService) UpdateFlag(ctx context.Context, itemID string, flag domain.ItemFlag, value bool, reason, userID string) error {
	if !ValidItemID(itemID) {
		return fmt.Errorf("%w: %q", ErrInvalidItemID, itemID)
	}

	key, err := flag.Overlay()
	if err != nil {
		return fmt.Errorf("%w: %q", ErrUnknownFlag, flag)
	}

	// current value, if the item has one stored
	current, err := s.overlays.Get(ctx, key)
	if err != nil {
		return fmt.Errorf("failed to read overlay %s: %w", key, err)
	}

	event := domain.ItemFlagEvent{
		EventType: domain.EventItemFlagChanged,
		ItemID:    itemID,
		Flag:      flag,
		NewValue:  value,
		Reason:    reason,
		Timestamp: time.Now(),
		UserID:    userID,
	}
	if old, ok := current[itemID]; ok {
		event.OldValue = &old
	}

	eventBytes, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	if err := s.broker.Publish(ctx, queue.QueueItemFlags, eventBytes); err != nil {
		s.logger.Errorw("failed to publish flag change event", "item_id", itemID, "flag", flag, "error", err)
		return fmt.Errorf("failed to publish event: %w", err)
	}

	s.metrics.FlagEvents.WithLabelValues("queued").Inc()
	s.logger.Infow("item flag change queued", "item_id", itemID, "flag", flag, "new_value", value)

	return nil
}

// ProcessFlagEvent writes the flag and its audit record in one transaction.
func (s *ItemService) ProcessFlagEvent(ctx context.Context, event domain.ItemFlagEvent) error {
	key, err := event.Flag.Overlay()
	if err != nil {
		return fmt.Errorf("%w: %q", ErrUnknownFlag, event.Flag)
	}
	if !ValidItemID(event.ItemID) {
		return fmt.Errorf("%w: %q", ErrInvalidItemID, event.ItemID)
	}

	err = s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		if err := s.overlays.SetFlag(ctx, key, event.ItemID, event.NewValue); err != nil {
			return fmt.Errorf("failed to update item flag: %w", err)
		}

		audit := &domain.ItemFlagAudit{
			ItemID:    event.ItemID,
			EventType: event.EventType,
			Flag:      event.Flag,
			OldValue:  event.OldValue,
			NewValue:  event.NewValue,
			Reason:    event.Reason,
			UserID:    event.UserID,
			Timestamp: event.Timestamp,
		}
		if err := s.auditRepo.Create(ctx, audit); err != nil {
			return fmt.Errorf("failed to create audit record: %w", err)
		}

		return nil
	})
	if err != nil {
		s.metrics.FlagEvents.WithLabelValues("failed").Inc()
		s.logger.Errorw("failed to apply item flag event", "item_id", event.ItemID, "flag", event.Flag, "error", err)
		return err
	}

	s.metrics.FlagEvents.WithLabelValues("applied").Inc()
	s.logger.Infow("item flag updated", "item_id", event.ItemID, "overlay", key, "new_value", event.NewValue)

	return nil
}

// CurrentFlag returns the stored value of one flag, or nil when the item has
// none and the default applies.
func (s *ItemService) CurrentFlag(ctx context.Context, itemID string, flag domain.ItemFlag) (*bool, error) {
	key, err := flag.Overlay()
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFlag, flag)
	}

	flags, err := s.overlays.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("failed to read overlay %s: %w", key, err)
	}

	v, ok := flags[itemID]
	if !ok {
		return nil, nil
	}
	return &v, nil
}

func (s *ItemService) GetAudit(ctx context.Context, itemID string, limit int) ([]domain.ItemFlagAudit, error) {
	if limit <= 0 {
		limit = DefaultAuditLimit
	}
	if limit > MaxAuditLimit {
		limit = MaxAuditLimit
	}

	audits, err := s.auditRepo.GetByItemID(ctx, itemID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get item audit: %w", err)
	}

	return audits, nil
}

func (s *ItemService) GetOverlay(ctx context.Context, key domain.OverlayKey) (map[string]bool, error) {
	if !key.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownOverlay, key)
	}

	flags, err := s.overlays.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("failed to get overlay: %w", err)
	}

	return flags, nil
}
