package repo

import (
	"context"

	"github.com/samia-cardapio/cardapio-api/internal/domain"
)

type OrderRepository interface {
	Create(ctx context.Context, order *domain.Order) error
}
