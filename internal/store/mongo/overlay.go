package mongo

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/samia-cardapio/cardapio-api/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// overlayDocument is one config document, e.g. {_id: "item_status", flags: {"p1": false}}.
// Flags stay untyped: the documents are also edited by hand.
type overlayDocument struct {
	Key       domain.OverlayKey `bson:"_id"`
	Flags     bson.M            `bson:"flags"`
	UpdatedAt time.Time         `bson:"updated_at"`
}

type OverlayRepository struct {
	collection *mongo.Collection
}

func NewOverlayRepository(db *mongo.Database) *OverlayRepository {
	return &OverlayRepository{
		collection: db.Collection(collOverlays),
	}
}

func (r *OverlayRepository) Get(ctx context.Context, key domain.OverlayKey) (map[string]bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var doc overlayDocument
	err := r.collection.FindOne(ctx, bson.M{"_id": key}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return map[string]bool{}, nil
		}
		return nil, fmt.Errorf("failed to get overlay %s: %w", key, err)
	}

	return decodeFlags(key, doc.Flags), nil
}

func decodeFlags(key domain.OverlayKey, raw bson.M) map[string]bool {
	flags := make(map[string]bool, len(raw))
	for id, v := range raw {
		flags[id] = domain.OverlayFlag(key, v)
	}
	return flags
}

func (r *OverlayRepository) SetFlag(ctx context.Context, key domain.OverlayKey, itemID string, value bool) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	// item ids become field names
	if itemID == "" || strings.ContainsAny(itemID, ".$") {
		return fmt.Errorf("invalid item id %q", itemID)
	}

	update := bson.M{
		"$set": bson.M{
			"flags." + itemID: value,
			"updated_at":      time.Now(),
		},
	}

	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": key}, update, options.Update().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("failed to set %s flag for item %s: %w", key, itemID, err)
	}

	return nil
}
