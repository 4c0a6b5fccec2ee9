package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/samia-cardapio/cardapio-api/internal/domain"
)

type OverlayRepository struct {
	db *sql.DB
}

func (r *OverlayRepository) Get(ctx context.Context, key domain.OverlayKey) (map[string]bool, error) {
	rows, err := conn(ctx, r.db).QueryContext(ctx,
		`SELECT item_id, value FROM overlay_flags WHERE doc = ?`, string(key))
	if err != nil {
		return nil, fmt.Errorf("failed to get overlay %s: %w", key, err)
	}
	defer rows.Close()

	flags := map[string]bool{}
	for rows.Next() {
		var (
			itemID string
			value  bool
		)
		if err := rows.Scan(&itemID, &value); err != nil {
			return nil, fmt.Errorf("failed to scan overlay %s: %w", key, err)
		}
		flags[itemID] = value
	}

	return flags, rows.Err()
}

func (r *OverlayRepository) SetFlag(ctx context.Context, key domain.OverlayKey, itemID string, value bool) error {
	_, err := conn(ctx, r.db).ExecContext(ctx, `
INSERT INTO overlay_flags (doc, item_id, value, updated_at) VALUES (?, ?, ?, ?)
ON CONFLICT(doc, item_id) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		string(key), itemID, value, time.Now().UTC().Format(timeLayout))
	if err != nil {
		return fmt.Errorf("failed to set %s flag for item %s: %w", key, itemID, err)
	}

	return nil
}
