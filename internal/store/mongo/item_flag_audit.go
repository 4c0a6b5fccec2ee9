package mongo

import (
	"context"
	"fmt"
	"time"

	"github.com/samia-cardapio/cardapio-api/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// newest first; the id breaks ties between records of the same instant,
// matching insertion order like the SQLite rowid does
var auditOrder = bson.D{
	{Key: "timestamp", Value: -1},
	{Key: "_id", Value: -1},
}

type ItemFlagAuditRepository struct {
	collection *mongo.Collection
}

func NewItemFlagAuditRepository(db *mongo.Database) *ItemFlagAuditRepository {
	return &ItemFlagAuditRepository{collection: db.Collection(collAudit)}
}

// Create stamps the record, when needed, and inserts it. Ids derive from
// the record time so they sort with it.
func (r *ItemFlagAuditRepository) Create(ctx context.Context, audit *domain.ItemFlagAudit) error {
	if audit.Timestamp.IsZero() {
		audit.Timestamp = time.Now()
	}
	if audit.ID.IsZero() {
		audit.ID = primitive.NewObjectIDFromTimestamp(audit.Timestamp)
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if _, err := r.collection.InsertOne(ctx, audit); err != nil {
		return fmt.Errorf("failed to insert audit for item %s flag %s: %w", audit.ItemID, audit.Flag, err)
	}
	return nil
}

func (r *ItemFlagAuditRepository) GetByItemID(ctx context.Context, itemID string, limit int) ([]domain.ItemFlagAudit, error) {
	return r.find(ctx, bson.M{"item_id": itemID}, limit)
}

func (r *ItemFlagAuditRepository) find(ctx context.Context, filter bson.M, limit int) ([]domain.ItemFlagAudit, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(auditOrder)
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query item flag audit: %w", err)
	}

	audits := make([]domain.ItemFlagAudit, 0, max(limit, 0))
	if err := cursor.All(ctx, &audits); err != nil {
		return nil, fmt.Errorf("failed to decode item flag audit: %w", err)
	}
	return audits, nil
}
