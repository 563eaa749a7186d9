package models

import "time"

// Schedule categories and statuses.
const (
	ScheduleCategoryRepair     = "repair"
	ScheduleCategoryRefill     = "refill"
	ScheduleCategoryReplace    = "replace"
	ScheduleCategoryChangePart = "change-part"

	ScheduleStatusPending    = "pending"
	ScheduleStatusApproved   = "approved"
	ScheduleStatusInProgress = "in-progress"
	ScheduleStatusCompleted  = "completed"
	ScheduleStatusCancelled  = "cancelled"
)

// Schedule is a planned maintenance action against an item.
type Schedule struct {
	ID                     int64      `json:"id" db:"id"`
	ItemID                 int64      `json:"item_id" db:"item_id"`
	RequestedBy            int64      `json:"requested_by" db:"requested_by"`
	Category               string     `json:"category" db:"category"`
	Quantity               int        `json:"quantity" db:"quantity"`
	ScheduledDate          time.Time  `json:"scheduled_date" db:"scheduled_date"`
	ExpectedCompletionDate *time.Time `json:"expected_completion_date,omitempty" db:"expected_completion_date"`
	Status                 string     `json:"status" db:"status"`
	WillRelease            bool       `json:"will_release" db:"will_release"`
	IsReturnable           bool       `json:"is_returnable" db:"is_returnable"`
	Remarks                string     `json:"remarks" db:"remarks"`
	CreatedAt              time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt              time.Time  `json:"updated_at" db:"updated_at"`
	Item                   *Item      `json:"item,omitempty"` // For joining with Item
}

// IsValidScheduleCategory reports whether category is a known value.
func IsValidScheduleCategory(category string) bool {
	switch category {
	case ScheduleCategoryRepair, ScheduleCategoryRefill, ScheduleCategoryReplace, ScheduleCategoryChangePart:
		return true
	default:
		return false
	}
}

// IsValidScheduleStatus reports whether status is a known value.
func IsValidScheduleStatus(status string) bool {
	switch status {
	case ScheduleStatusPending, ScheduleStatusApproved, ScheduleStatusInProgress,
		ScheduleStatusCompleted, ScheduleStatusCancelled:
		return true
	default:
		return false
	}
}
