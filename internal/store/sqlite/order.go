package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/samia-cardapio/cardapio-api/internal/domain"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type OrderRepository struct {
	db *sql.DB
}

func (r *OrderRepository) Create(ctx context.Context, order *domain.Order) error {
	if order.ID.IsZero() {
		order.ID = primitive.NewObjectID()
	}
	if order.CreatedAt.IsZero() {
		order.CreatedAt = time.Now()
	}

	columns := make([]string, 0, 4)
	for _, v := range []any{order.Items, order.Address, order.Total, order.Payment} {
		b, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("failed to encode order: %w", err)
		}
		columns = append(columns, string(b))
	}

	_, err := conn(ctx, r.db).ExecContext(ctx, `
INSERT INTO orders (id, items_json, address_json, total_json, payment_json, status, observation, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		order.ID.Hex(), columns[0], columns[1], columns[2], columns[3],
		order.Status, order.Observation, order.CreatedAt.UTC().Format(timeLayout))
	if err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}

	return nil
}
