package models

import "time"

// Item statuses.
const (
	ItemStatusIn      = "in"
	ItemStatusOut     = "out"
	ItemStatusDeleted = "deleted"
)

// MeasuringUnits lists the accepted units for item quantities.
var MeasuringUnits = []string{
	"piece", "box", "carton", "pack", "set",
	"litre", "kilogram", "gram", "metre", "roll",
}

// Item represents a tracked inventory item. Quantity never goes negative;
// deletion is soft and removes the item from all normal reads.
type Item struct {
	ID            int64      `json:"id" db:"id"`
	Name          string     `json:"name" db:"name" binding:"required"`
	Category      string     `json:"category" db:"category"`
	Description   string     `json:"description" db:"description"`
	Quantity      int        `json:"quantity" db:"quantity"`
	MeasuringUnit string     `json:"measuring_unit" db:"measuring_unit" binding:"required"`
	CurrentStatus string     `json:"current_status" db:"current_status"` // in, out, deleted
	AddedBy       *int64     `json:"added_by,omitempty" db:"added_by"`
	DeletedBy     *int64     `json:"deleted_by,omitempty" db:"deleted_by"`
	DeletedAt     *time.Time `json:"deleted_at,omitempty" db:"deleted_at"`
	IsDeleted     bool       `json:"is_deleted" db:"is_deleted"`
	CreatedAt     time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at" db:"updated_at"`
	AddedByUser   *User      `json:"added_by_user,omitempty"` // For joining with User
}

// IsValidMeasuringUnit reports whether unit is one of the accepted units.
func IsValidMeasuringUnit(unit string) bool {
	for _, u := range MeasuringUnits {
		if u == unit {
			return true
		}
	}
	return false
}
