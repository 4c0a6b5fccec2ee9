package domain

import "time"

// ItemFlagEvent asks the worker to change one overlay flag of one item.
type ItemFlagEvent struct {
	EventType string    `json:"event_type"`
	ItemID    string    `json:"item_id"`
	Flag      ItemFlag  `json:"flag"`
	OldValue  *bool     `json:"old_value,omitempty"`
	NewValue  bool      `json:"new_value"`
	Reason    string    `json:"reason"`
	Timestamp time.Time `json:"timestamp"`
	UserID    string    `json:"user_id"`
}

const EventItemFlagChanged = "item.flag_changed"
