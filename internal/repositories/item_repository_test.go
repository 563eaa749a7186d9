package repositories

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/Ayomidekayo/OgwInventorybackend/internal/models"
)

// UpdateItem must write every editable column, quantity and current_status
// included; a quantity edit that only lives in memory is a lost write.
func TestUpdateItemPersistsQuantityAndStatus(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()
	repo := NewItemRepository(db)

	mock.ExpectExec(`UPDATE items SET name = \$1, category = \$2, description = \$3, measuring_unit = \$4, quantity = \$5, current_status = \$6, updated_at = \$7 WHERE id = \$8`).
		WithArgs("Gauze", "stored", "", "pack", 42, models.ItemStatusIn, sqlmock.AnyArg(), int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	item := &models.Item{
		ID:            7,
		Name:          "Gauze",
		Category:      "stored",
		MeasuringUnit: "pack",
		Quantity:      42,
		CurrentStatus: models.ItemStatusIn,
	}
	if err := repo.UpdateItem(db, item); err != nil {
		t.Fatalf("UpdateItem: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestUpdateItemMissingRow(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()
	repo := NewItemRepository(db)

	mock.ExpectExec(`UPDATE items SET`).WillReturnResult(sqlmock.NewResult(0, 0))

	item := &models.Item{ID: 404, Name: "Gone", MeasuringUnit: "pack", CurrentStatus: models.ItemStatusIn}
	if err := repo.UpdateItem(db, item); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
