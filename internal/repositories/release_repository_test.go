package repositories

import (
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/Ayomidekayo/OgwInventorybackend/internal/models"
)

// When the qty_returned <= qty_released guard rejects the write, the caller
// must see a stock conflict, not a missing release.
func TestUpdateReconciliationGuardRejection(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()
	repo := NewReleaseRepository(db)

	mock.ExpectExec(`UPDATE releases SET qty_returned = \$1`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(`SELECT qty_released FROM releases WHERE id = \$1`).
		WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"qty_released"}).AddRow(5))

	release := &models.Release{ID: 3, QtyReturned: 6, QtyRemaining: 0, ReturnStatus: models.ReturnStatusFull, Archived: true}
	if err := repo.UpdateReconciliation(db, release); !errors.Is(err, ErrInsufficientStock) {
		t.Fatalf("expected ErrInsufficientStock, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestUpdateReconciliationMissingRelease(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()
	repo := NewReleaseRepository(db)

	mock.ExpectExec(`UPDATE releases SET qty_returned = \$1`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(`SELECT qty_released FROM releases WHERE id = \$1`).
		WithArgs(int64(404)).
		WillReturnError(sql.ErrNoRows)

	release := &models.Release{ID: 404, QtyReturned: 1, QtyRemaining: 4, ReturnStatus: models.ReturnStatusPartial}
	if err := repo.UpdateReconciliation(db, release); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
