package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/samia-cardapio/cardapio-api/internal/domain"
	"github.com/samia-cardapio/cardapio-api/internal/message"
	"github.com/samia-cardapio/cardapio-api/internal/metrics"
	"github.com/samia-cardapio/cardapio-api/internal/repo"
	"go.uber.org/zap"
)

var (
	ErrInvalidOrder       = errors.New("invalid order")
	ErrPhoneNotConfigured = errors.New("whatsapp number is not configured")
)

type OrderConfig struct {
	WhatsAppNumber string
	CountryCode    string
}

type OrderService struct {
	orders  repo.OrderRepository
	config  OrderConfig
	metrics *metrics.Registry
	logger  *zap.SugaredLogger
	now     func() time.Time
}

func NewOrderService(orders repo.OrderRepository, cfg OrderConfig, metrics *metrics.Registry, logger *zap.SugaredLogger) *OrderService {
	if cfg.CountryCode == "" {
		cfg.CountryCode = message.DefaultCountryCode
	}
	return &OrderService{
		orders:  orders,
		config:  cfg,
		metrics: metrics,
		logger:  logger,
		now:     time.Now,
	}
}

// Submit stores the order and builds its WhatsApp link. The write is best
// effort: its outcome is reported in the result and never fails the call.
func (s *OrderService) Submit(ctx context.Context, req domain.OrderRequest) (*domain.OrderResult, error) {
	if err := validateOrder(req); err != nil {
		return nil, err
	}

	phone := strings.TrimSpace(req.WhatsAppNumber)
	if phone == "" {
		phone = s.config.WhatsAppNumber
	}
	if phone == "" {
		return nil, ErrPhoneNotConfigured
	}

	order := &domain.Order{
		Items:       req.Items,
		Address:     *req.Address,
		Total:       *req.Total,
		Payment:     req.Payment,
		Status:      domain.OrderStatusNew,
		Observation: req.Observation,
		CreatedAt:   s.now(),
	}

	// the repository assigns the id, so format from a copy
	snapshot := *order

	persisted := make(chan domain.PersistOutcome, 1)
	go func() {
		persisted <- s.persist(context.WithoutCancel(ctx), order)
	}()

	text := message.Format(snapshot)
	url := message.WhatsAppURL(s.config.CountryCode, phone, text)

	outcome := <-persisted

	s.metrics.OrdersSubmitted.Inc()
	s.logger.Infow("order submitted", "order_id", order.ID.Hex(), "items", len(order.Items), "saved", outcome.Saved)

	return &domain.OrderResult{
		Order:       order,
		Message:     text,
		WhatsAppURL: url,
		Persist:     outcome,
	}, nil
}

func (s *OrderService) persist(ctx context.Context, order *domain.Order) domain.PersistOutcome {
	if err := s.orders.Create(ctx, order); err != nil {
		s.metrics.OrdersPersistFailed.Inc()
		s.logger.Errorw("failed to save order", "error", err)
		return domain.PersistOutcome{Saved: false, Err: err}
	}
	return domain.PersistOutcome{Saved: true}
}

func validateOrder(req domain.OrderRequest) error {
	switch {
	case len(req.Items) == 0:
		return fmt.Errorf("%w: order has no items", ErrInvalidOrder)
	case req.Address == nil:
		return fmt.Errorf("%w: no address selected", ErrInvalidOrder)
	case req.Total == nil:
		return fmt.Errorf("%w: order total is missing", ErrInvalidOrder)
	}
	return nil
}
