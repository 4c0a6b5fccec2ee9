package repo

import (
	"context"

	"github.com/samia-cardapio/cardapio-api/internal/domain"
)

type ItemFlagAuditRepository interface {
	Create(ctx context.Context, audit *domain.ItemFlagAudit) error
	GetByItemID(ctx context.Context, itemID string, limit int) ([]domain.ItemFlagAudit, error)
}
