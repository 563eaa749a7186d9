package models

import "time"

// Return conditions.
const (
	ConditionGood    = "good"
	ConditionDamaged = "damaged"
	ConditionExpired = "expired"
	ConditionLost    = "lost"
	ConditionOther   = "other"
)

// Return record statuses.
const (
	ReturnRecordProcessed     = "processed"
	ReturnRecordPendingReview = "pending_review"
	ReturnRecordArchived      = "archived"
)

// Return records a transfer of quantity back into inventory, optionally tied
// to a specific release. Immutable after creation except for status corrections.
type Return struct {
	ID               int64      `json:"id" db:"id"`
	ItemID           int64      `json:"item_id" db:"item_id"`
	ReleaseID        *int64     `json:"release_id,omitempty" db:"release_id"`
	ReturnedBy       string     `json:"returned_by" db:"returned_by"`
	ReturnedByEmail  *string    `json:"returned_by_email,omitempty" db:"returned_by_email"`
	QuantityReturned int        `json:"quantity_returned" db:"quantity_returned"`
	DateReturned     time.Time  `json:"date_returned" db:"date_returned"`
	ExpectedReturnBy *time.Time `json:"expected_return_by,omitempty" db:"expected_return_by"`
	Condition        string     `json:"condition" db:"condition"`
	Remarks          string     `json:"remarks" db:"remarks"`
	ProcessedBy      *int64     `json:"processed_by,omitempty" db:"processed_by"`
	Status           string     `json:"status" db:"status"`
	IsOverdue        bool       `json:"is_overdue" db:"is_overdue"`
	CreatedAt        time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at" db:"updated_at"`
	Item             *Item      `json:"item,omitempty"`              // For joining with Item
	ProcessedByUser  *User      `json:"processed_by_user,omitempty"` // For joining with User
}

// IsValidReturnCondition reports whether condition is a known value.
func IsValidReturnCondition(condition string) bool {
	switch condition {
	case ConditionGood, ConditionDamaged, ConditionExpired, ConditionLost, ConditionOther:
		return true
	default:
		return false
	}
}
