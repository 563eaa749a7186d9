package services

import (
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/Ayomidekayo/OgwInventorybackend/internal/repositories"
)

// Validation runs before any transaction is opened, so a service with no
// database behind it must reject bad input without panicking.
func TestCreateReleaseValidation(t *testing.T) {
	svc := NewReleaseService(nil, nil, nil, nil, nil, nil, nil, "")
	actor := Actor{ID: 1, Username: "tester", Role: "staff"}

	tests := []struct {
		name string
		req  CreateReleaseRequest
	}{
		{"zero quantity", CreateReleaseRequest{ItemID: 1, QtyReleased: 0, ReleasedTo: "ward A", Category: "borrow"}},
		{"negative quantity", CreateReleaseRequest{ItemID: 1, QtyReleased: -3, ReleasedTo: "ward A", Category: "borrow"}},
		{"missing recipient", CreateReleaseRequest{ItemID: 1, QtyReleased: 2, ReleasedTo: "  ", Category: "borrow"}},
		{"unknown category", CreateReleaseRequest{ItemID: 1, QtyReleased: 2, ReleasedTo: "ward A", Category: "loan"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateRelease(actor, tt.req)
			if !errors.Is(err, ErrValidation) {
				t.Fatalf("expected ErrValidation, got %v", err)
			}
		})
	}
}

// A release for more than the item holds is rejected while the item row is
// still locked, and nothing is written.
func TestCreateReleaseInsufficientStock(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	svc := NewReleaseService(repositories.NewItemRepository(db), nil, nil, nil, nil, nil, db, "")

	mock.ExpectBegin()
	mock.ExpectQuery(`FROM items WHERE id = \$1 AND is_deleted = FALSE FOR UPDATE`).
		WithArgs(int64(1)).WillReturnRows(itemRow(1, 3))
	mock.ExpectRollback()

	_, err = svc.CreateRelease(Actor{ID: 2, Username: "keeper", Role: "staff"}, CreateReleaseRequest{
		ItemID: 1, QtyReleased: 5, ReleasedTo: "ward A", Category: "borrow",
	})
	if !errors.Is(err, ErrInsufficientStock) {
		t.Fatalf("expected ErrInsufficientStock, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestUpdateApprovalStatusValidation(t *testing.T) {
	svc := NewReleaseService(nil, nil, nil, nil, nil, nil, nil, "")

	_, err := svc.UpdateApprovalStatus(1, UpdateApprovalStatusRequest{ApprovalStatus: "rejected"})
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation for unknown approval status, got %v", err)
	}
}

func TestParseDate(t *testing.T) {
	if _, err := parseDate("2026-04-01"); err != nil {
		t.Errorf("date-only value should parse: %v", err)
	}
	if _, err := parseDate("2026-04-01T10:30:00Z"); err != nil {
		t.Errorf("RFC 3339 value should parse: %v", err)
	}
	if _, err := parseDate("next tuesday"); err == nil {
		t.Error("expected error for unparseable value")
	}
}
