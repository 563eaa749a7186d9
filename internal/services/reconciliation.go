package services

import (
	"time"

	"github.com/Ayomidekayo/OgwInventorybackend/internal/models"
)

// Reconciliation rules for the release/return lifecycle. These are the only
// place derived release fields are computed; repositories persist whatever
// these functions produce. Kept as pure functions so the rules are testable
// without a database.

// IsReturnable reports whether a release category implies the quantity comes
// back. Consumed releases never do.
func IsReturnable(category string) bool {
	switch category {
	case models.ReleaseCategoryRepair, models.ReleaseCategoryRefill,
		models.ReleaseCategoryReplace, models.ReleaseCategoryBorrow:
		return true
	default:
		return false
	}
}

// RemainingQuantity is released minus returned, floored at zero.
func RemainingQuantity(released, returned int) int {
	remaining := released - returned
	if remaining < 0 {
		return 0
	}
	return remaining
}

// DeriveReturnState computes a release's return status and archived flag from
// its released/returned totals. Evaluated in order: a positive remainder with
// something returned is a partial return; nothing remaining means fully
// returned and archives the release; otherwise nothing has come back yet.
func DeriveReturnState(released, returned int) (status string, archived bool) {
	remaining := released - returned
	switch {
	case remaining > 0 && returned > 0:
		return models.ReturnStatusPartial, false
	case remaining <= 0:
		return models.ReturnStatusFull, true
	default:
		return models.ReturnStatusPending, false
	}
}

// IsOverdue reports whether an expected-return date exists and has passed.
func IsOverdue(expectedReturnBy *time.Time, now time.Time) bool {
	return expectedReturnBy != nil && now.After(*expectedReturnBy)
}
