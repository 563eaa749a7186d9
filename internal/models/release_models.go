package models

import "time"

// Release categories.
const (
	ReleaseCategoryRepair   = "repair"
	ReleaseCategoryRefill   = "refill"
	ReleaseCategoryReplace  = "replace"
	ReleaseCategoryBorrow   = "borrow"
	ReleaseCategoryConsumed = "consumed"
)

// Approval statuses for a release.
const (
	ApprovalPending   = "pending"
	ApprovalApproved  = "approved"
	ApprovalCancelled = "cancelled"
)

// Return statuses for a release. Progress is monotonic: pending may move to
// partially returned or straight to fully returned, never backwards.
const (
	ReturnStatusPending   = "pending"
	ReturnStatusPartial   = "partially returned"
	ReturnStatusFull      = "fully returned"
)

// Release records a transfer of item quantity out of inventory to an
// external party. QtyReturned only grows; QtyRemaining and ReturnStatus are
// derived from it and QtyReleased.
type Release struct {
	ID               int64      `json:"id" db:"id"`
	ItemID           int64      `json:"item_id" db:"item_id"`
	Category         string     `json:"category" db:"category"`
	QtyReleased      int        `json:"qty_released" db:"qty_released"`
	QtyReturned      int        `json:"qty_returned" db:"qty_returned"`
	QtyRemaining     int        `json:"qty_remaining" db:"qty_remaining"`
	ReleasedTo       string     `json:"released_to" db:"released_to"`
	ReleasedBy       int64      `json:"released_by" db:"released_by"`
	Reason           string     `json:"reason" db:"reason"`
	DateReleased     time.Time  `json:"date_released" db:"date_released"`
	ExpectedReturnBy *time.Time `json:"expected_return_by,omitempty" db:"expected_return_by"`
	ApprovalStatus   string     `json:"approval_status" db:"approval_status"`
	ReturnStatus     string     `json:"return_status" db:"return_status"`
	Archived         bool       `json:"archived" db:"archived"`
	IsReturnable     bool       `json:"is_returnable" db:"is_returnable"`
	Remarks          string     `json:"remarks" db:"remarks"`
	CreatedAt        time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at" db:"updated_at"`
	Item             *Item      `json:"item,omitempty"`             // For joining with Item
	ReleasedByUser   *User      `json:"released_by_user,omitempty"` // For joining with User
}

// IsValidReleaseCategory reports whether category is one of the five known values.
func IsValidReleaseCategory(category string) bool {
	switch category {
	case ReleaseCategoryRepair, ReleaseCategoryRefill, ReleaseCategoryReplace,
		ReleaseCategoryBorrow, ReleaseCategoryConsumed:
		return true
	default:
		return false
	}
}

// IsValidApprovalStatus reports whether status is a known approval value.
func IsValidApprovalStatus(status string) bool {
	switch status {
	case ApprovalPending, ApprovalApproved, ApprovalCancelled:
		return true
	default:
		return false
	}
}
