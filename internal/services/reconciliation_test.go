package services

import (
	"testing"
	"time"

	"github.com/Ayomidekayo/OgwInventorybackend/internal/models"
)

func TestIsReturnable(t *testing.T) {
	tests := []struct {
		category string
		want     bool
	}{
		{models.ReleaseCategoryRepair, true},
		{models.ReleaseCategoryRefill, true},
		{models.ReleaseCategoryReplace, true},
		{models.ReleaseCategoryBorrow, true},
		{models.ReleaseCategoryConsumed, false},
		{"unknown", false},
	}
	for _, tt := range tests {
		if got := IsReturnable(tt.category); got != tt.want {
			t.Errorf("IsReturnable(%q) = %v, want %v", tt.category, got, tt.want)
		}
	}
}

func TestRemainingQuantity(t *testing.T) {
	tests := []struct {
		released, returned, want int
	}{
		{10, 0, 10},
		{10, 4, 6},
		{10, 10, 0},
		// Floored at zero even with inconsistent inputs.
		{10, 12, 0},
		{0, 0, 0},
	}
	for _, tt := range tests {
		if got := RemainingQuantity(tt.released, tt.returned); got != tt.want {
			t.Errorf("RemainingQuantity(%d, %d) = %d, want %d", tt.released, tt.returned, got, tt.want)
		}
	}
}

func TestDeriveReturnState(t *testing.T) {
	tests := []struct {
		name         string
		released     int
		returned     int
		wantStatus   string
		wantArchived bool
	}{
		{"nothing returned yet", 10, 0, models.ReturnStatusPending, false},
		{"partial return", 10, 4, models.ReturnStatusPartial, false},
		{"another partial", 10, 9, models.ReturnStatusPartial, false},
		{"full return", 10, 10, models.ReturnStatusFull, true},
		{"single unit out and back", 1, 1, models.ReturnStatusFull, true},
		{"single unit still out", 1, 0, models.ReturnStatusPending, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, archived := DeriveReturnState(tt.released, tt.returned)
			if status != tt.wantStatus {
				t.Errorf("status = %q, want %q", status, tt.wantStatus)
			}
			if archived != tt.wantArchived {
				t.Errorf("archived = %v, want %v", archived, tt.wantArchived)
			}
		})
	}
}

// A release reconciled after a sequence of partial returns must pass through
// partial states and land on fully returned exactly when the counters meet.
func TestDeriveReturnStateSequence(t *testing.T) {
	released := 10
	returned := 0
	for _, step := range []int{3, 3, 4} {
		returned += step
		status, archived := DeriveReturnState(released, returned)
		if returned < released {
			if status != models.ReturnStatusPartial || archived {
				t.Fatalf("after %d of %d returned: status %q archived %v", returned, released, status, archived)
			}
		} else {
			if status != models.ReturnStatusFull || !archived {
				t.Fatalf("after %d of %d returned: status %q archived %v", returned, released, status, archived)
			}
		}
	}
}

func TestIsOverdue(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	past := now.Add(-24 * time.Hour)
	future := now.Add(24 * time.Hour)

	if IsOverdue(nil, now) {
		t.Error("release without a deadline can never be overdue")
	}
	if !IsOverdue(&past, now) {
		t.Error("deadline in the past should be overdue")
	}
	if IsOverdue(&future, now) {
		t.Error("deadline in the future should not be overdue")
	}
	if IsOverdue(&now, now) {
		t.Error("deadline exactly now should not be overdue")
	}
}
