package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ItemFlagAudit struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ItemID    string             `bson:"item_id" json:"item_id"`
	EventType string             `bson:"event_type" json:"event_type"`
	Flag      ItemFlag           `bson:"flag" json:"flag"`
	OldValue  *bool              `bson:"old_value,omitempty" json:"old_value,omitempty"`
	NewValue  bool               `bson:"new_value" json:"new_value"`
	Reason    string             `bson:"reason" json:"reason"`
	UserID    string             `bson:"user_id" json:"user_id"`
	Timestamp time.Time          `bson:"timestamp" json:"timestamp"`
}
