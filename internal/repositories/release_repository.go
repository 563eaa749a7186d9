package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Ayomidekayo/OgwInventorybackend/internal/models"
)

// ReleaseRepository defines the interface for release-related database operations.
type ReleaseRepository interface {
	CreateRelease(executor SQLExecutor, release *models.Release) (int64, error)
	GetReleases(executor SQLExecutor) ([]models.Release, error)
	GetReleaseByID(executor SQLExecutor, releaseID int64) (*models.Release, error)
	GetReleaseByIDForUpdate(tx *sql.Tx, releaseID int64) (*models.Release, error)
	GetReleasesByItemID(executor SQLExecutor, itemID int64) ([]models.Release, error)
	UpdateReconciliation(executor SQLExecutor, release *models.Release) error
	UpdateApprovalStatus(executor SQLExecutor, releaseID int64, status string) error
}

type releaseRepository struct {
	db *sql.DB
}

// NewReleaseRepository creates a new instance of ReleaseRepository.
func NewReleaseRepository(db *sql.DB) ReleaseRepository {
	return &releaseRepository{db: db}
}

const releaseColumns = `id, item_id, category, qty_released, qty_returned, qty_remaining,
	released_to, released_by, reason, date_released, expected_return_by,
	approval_status, return_status, archived, is_returnable, remarks, created_at, updated_at`

func scanRelease(row interface{ Scan(...interface{}) error }) (*models.Release, error) {
	var rel models.Release
	var expectedReturnBy sql.NullTime

	err := row.Scan(
		&rel.ID, &rel.ItemID, &rel.Category, &rel.QtyReleased, &rel.QtyReturned, &rel.QtyRemaining,
		&rel.ReleasedTo, &rel.ReleasedBy, &rel.Reason, &rel.DateReleased, &expectedReturnBy,
		&rel.ApprovalStatus, &rel.ReturnStatus, &rel.Archived, &rel.IsReturnable, &rel.Remarks,
		&rel.CreatedAt, &rel.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if expectedReturnBy.Valid {
		t := expectedReturnBy.Time
		rel.ExpectedReturnBy = &t
	}
	return &rel, nil
}

func (r *releaseRepository) CreateRelease(executor SQLExecutor, release *models.Release) (int64, error) {
	query := `INSERT INTO releases
	          (item_id, category, qty_released, qty_returned, qty_remaining, released_to, released_by,
	           reason, date_released, expected_return_by, approval_status, return_status, archived,
	           is_returnable, remarks, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
	          RETURNING id, created_at, updated_at`
	currentTime := time.Now()
	if release.DateReleased.IsZero() {
		release.DateReleased = currentTime
	}

	var expectedReturnBy sql.NullTime
	if release.ExpectedReturnBy != nil {
		expectedReturnBy = sql.NullTime{Time: *release.ExpectedReturnBy, Valid: true}
	}

	err := executor.QueryRow(query,
		release.ItemID, release.Category, release.QtyReleased, release.QtyReturned, release.QtyRemaining,
		release.ReleasedTo, release.ReleasedBy, release.Reason, release.DateReleased, expectedReturnBy,
		release.ApprovalStatus, release.ReturnStatus, release.Archived,
		release.IsReturnable, release.Remarks, currentTime, currentTime,
	).Scan(&release.ID, &release.CreatedAt, &release.UpdatedAt)
	if err != nil {
		return 0, fmt.Errorf("%w: creating release: %v", ErrDatabaseError, err)
	}
	return release.ID, nil
}

func (r *releaseRepository) GetReleases(executor SQLExecutor) ([]models.Release, error) {
	query := `SELECT r.id, r.item_id, r.category, r.qty_released, r.qty_returned, r.qty_remaining,
	            r.released_to, r.released_by, r.reason, r.date_released, r.expected_return_by,
	            r.approval_status, r.return_status, r.archived, r.is_returnable, r.remarks,
	            r.created_at, r.updated_at,
	            i.name, i.measuring_unit, i.category, i.quantity,
	            u.username, u.full_name, u.email
	          FROM releases r
	          JOIN items i ON r.item_id = i.id
	          JOIN users u ON r.released_by = u.id
	          ORDER BY r.created_at DESC`
	rows, err := executor.Query(query)
	if err != nil {
		return nil, fmt.Errorf("%w: getting releases: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	releases := []models.Release{}
	for rows.Next() {
		var rel models.Release
		var expectedReturnBy sql.NullTime
		var item models.Item
		var user models.User
		var fullName, email sql.NullString

		err := rows.Scan(
			&rel.ID, &rel.ItemID, &rel.Category, &rel.QtyReleased, &rel.QtyReturned, &rel.QtyRemaining,
			&rel.ReleasedTo, &rel.ReleasedBy, &rel.Reason, &rel.DateReleased, &expectedReturnBy,
			&rel.ApprovalStatus, &rel.ReturnStatus, &rel.Archived, &rel.IsReturnable, &rel.Remarks,
			&rel.CreatedAt, &rel.UpdatedAt,
			&item.Name, &item.MeasuringUnit, &item.Category, &item.Quantity,
			&user.Username, &fullName, &email,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: scanning release: %v", ErrDatabaseError, err)
		}
		if expectedReturnBy.Valid {
			t := expectedReturnBy.Time
			rel.ExpectedReturnBy = &t
		}
		item.ID = rel.ItemID
		rel.Item = &item
		user.ID = rel.ReleasedBy
		if fullName.Valid {
			user.FullName = &fullName.String
		}
		if email.Valid {
			user.Email = &email.String
		}
		rel.ReleasedByUser = &user
		releases = append(releases, rel)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating releases: %v", ErrDatabaseError, err)
	}
	return releases, nil
}

func (r *releaseRepository) GetReleaseByID(executor SQLExecutor, releaseID int64) (*models.Release, error) {
	query := `SELECT ` + releaseColumns + ` FROM releases WHERE id = $1`
	rel, err := scanRelease(executor.QueryRow(query, releaseID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting release %d: %v", ErrDatabaseError, releaseID, err)
	}
	return rel, nil
}

// GetReleaseByIDForUpdate locks the release row so two concurrent returns
// against the same release cannot both read a stale remaining quantity.
func (r *releaseRepository) GetReleaseByIDForUpdate(tx *sql.Tx, releaseID int64) (*models.Release, error) {
	query := `SELECT ` + releaseColumns + ` FROM releases WHERE id = $1 FOR UPDATE`
	rel, err := scanRelease(tx.QueryRow(query, releaseID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: locking release %d: %v", ErrDatabaseError, releaseID, err)
	}
	return rel, nil
}

func (r *releaseRepository) GetReleasesByItemID(executor SQLExecutor, itemID int64) ([]models.Release, error) {
	query := `SELECT ` + releaseColumns + ` FROM releases WHERE item_id = $1 ORDER BY created_at DESC`
	rows, err := executor.Query(query, itemID)
	if err != nil {
		return nil, fmt.Errorf("%w: getting releases for item %d: %v", ErrDatabaseError, itemID, err)
	}
	defer rows.Close()

	releases := []models.Release{}
	for rows.Next() {
		rel, err := scanRelease(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanning release: %v", ErrDatabaseError, err)
		}
		releases = append(releases, *rel)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating releases: %v", ErrDatabaseError, err)
	}
	return releases, nil
}

// UpdateReconciliation persists the derived reconciliation fields. The guard
// repeats the qty_returned <= qty_released invariant at the SQL level; callers
// compute the values with the reconciliation rules before writing.
func (r *releaseRepository) UpdateReconciliation(executor SQLExecutor, release *models.Release) error {
	query := `UPDATE releases
	          SET qty_returned = $1, qty_remaining = $2, return_status = $3, archived = $4, updated_at = $5
	          WHERE id = $6 AND $1 <= qty_released`
	result, err := executor.Exec(query,
		release.QtyReturned, release.QtyRemaining, release.ReturnStatus, release.Archived,
		time.Now(), release.ID,
	)
	if err != nil {
		return fmt.Errorf("%w: updating reconciliation of release %d: %v", ErrDatabaseError, release.ID, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: checking reconciliation update of release %d: %v", ErrDatabaseError, release.ID, err)
	}
	if rowsAffected == 0 {
		// Distinguish a missing release from a rejected reconciliation.
		var qtyReleased int
		checkErr := r.db.QueryRow("SELECT qty_released FROM releases WHERE id = $1", release.ID).Scan(&qtyReleased)
		if errors.Is(checkErr, sql.ErrNoRows) {
			return ErrNotFound
		}
		return ErrInsufficientStock
	}
	return nil
}

func (r *releaseRepository) UpdateApprovalStatus(executor SQLExecutor, releaseID int64, status string) error {
	query := `UPDATE releases SET approval_status = $1, updated_at = $2 WHERE id = $3`
	result, err := executor.Exec(query, status, time.Now(), releaseID)
	if err != nil {
		return fmt.Errorf("%w: updating approval status of release %d: %v", ErrDatabaseError, releaseID, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: checking approval update of release %d: %v", ErrDatabaseError, releaseID, err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
