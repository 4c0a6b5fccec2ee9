package repo

import (
	"context"

	"github.com/samia-cardapio/cardapio-api/internal/domain"
)

type OverlayRepository interface {
	// Get returns the item id to flag mapping of one overlay document. A
	// missing document is an empty mapping, not an error.
	Get(ctx context.Context, key domain.OverlayKey) (map[string]bool, error)
	SetFlag(ctx context.Context, key domain.OverlayKey, itemID string, value bool) error
}
