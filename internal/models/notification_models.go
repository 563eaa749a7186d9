package models

import "time"

// Notification types.
const (
	NotificationGeneral     = "general"
	NotificationReleaseItem = "release-item"
	NotificationReturnItem  = "return-item"
	NotificationLowStock    = "low_stock"
	NotificationRestock     = "restock"
)

// Notification is an in-app message created alongside a mutation.
type Notification struct {
	ID        int64     `json:"id" db:"id"`
	Type      string    `json:"type" db:"type"`
	ItemID    *int64    `json:"item_id,omitempty" db:"item_id"`
	Message   string    `json:"message" db:"message"`
	Recipient *int64    `json:"recipient,omitempty" db:"recipient"`
	Read      bool      `json:"read" db:"read"`
	SentAt    time.Time `json:"sent_at" db:"sent_at"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// ActionLog is an append-only audit entry. Details is free-form JSON holding
// the relevant ids and quantities; the core never reads it back.
type ActionLog struct {
	ID        int64                  `json:"id" db:"id"`
	UserID    int64                  `json:"user_id" db:"user_id"`
	Action    string                 `json:"action" db:"action"`
	Details   map[string]interface{} `json:"details,omitempty" db:"details"`
	CreatedAt time.Time              `json:"created_at" db:"created_at"`
}
