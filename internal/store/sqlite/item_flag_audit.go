package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/samia-cardapio/cardapio-api/internal/domain"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ItemFlagAuditRepository struct {
	db *sql.DB
}

func (r *ItemFlagAuditRepository) Create(ctx context.Context, audit *domain.ItemFlagAudit) error {
	if audit.ID.IsZero() {
		audit.ID = primitive.NewObjectID()
	}
	if audit.Timestamp.IsZero() {
		audit.Timestamp = time.Now()
	}

	var oldValue sql.NullBool
	if audit.OldValue != nil {
		oldValue = sql.NullBool{Bool: *audit.OldValue, Valid: true}
	}

	_, err := conn(ctx, r.db).ExecContext(ctx, `
INSERT INTO item_flag_audit (id, item_id, event_type, flag, old_value, new_value, reason, user_id, timestamp)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		audit.ID.Hex(), audit.ItemID, audit.EventType, string(audit.Flag), oldValue, audit.NewValue,
		audit.Reason, audit.UserID, audit.Timestamp.UTC().Format(timeLayout))
	if err != nil {
		return fmt.Errorf("failed to create item flag audit: %w", err)
	}

	return nil
}

// GetByItemID returns the newest records first.
func (r *ItemFlagAuditRepository) GetByItemID(ctx context.Context, itemID string, limit int) ([]domain.ItemFlagAudit, error) {
	rows, err := conn(ctx, r.db).QueryContext(ctx, `
SELECT id, item_id, event_type, flag, old_value, new_value, reason, user_id, timestamp
FROM item_flag_audit WHERE item_id = ?
ORDER BY timestamp DESC, rowid DESC LIMIT ?`, itemID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get item flag audits: %w", err)
	}
	defer rows.Close()

	audits := []domain.ItemFlagAudit{}
	for rows.Next() {
		var (
			a        domain.ItemFlagAudit
			id, ts   string
			flag     string
			oldValue sql.NullBool
		)
		if err := rows.Scan(&id, &a.ItemID, &a.EventType, &flag, &oldValue, &a.NewValue, &a.Reason, &a.UserID, &ts); err != nil {
			return nil, fmt.Errorf("failed to scan item flag audit: %w", err)
		}

		if a.ID, err = primitive.ObjectIDFromHex(id); err != nil {
			return nil, fmt.Errorf("invalid audit id %q: %w", id, err)
		}
		if a.Timestamp, err = time.Parse(timeLayout, ts); err != nil {
			return nil, fmt.Errorf("invalid audit timestamp %q: %w", ts, err)
		}
		a.Flag = domain.ItemFlag(flag)
		if oldValue.Valid {
			v := oldValue.Bool
			a.OldValue = &v
		}

		audits = append(audits, a)
	}

	return audits, rows.Err()
}
