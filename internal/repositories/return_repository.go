package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Ayomidekayo/OgwInventorybackend/internal/models"
)

// ReturnRepository defines the interface for return-record database operations.
type ReturnRepository interface {
	CreateReturn(executor SQLExecutor, ret *models.Return) (int64, error)
	GetReturns(executor SQLExecutor) ([]models.Return, error)
	GetReturnByID(executor SQLExecutor, returnID int64) (*models.Return, error)
	GetReturnsByReleaseID(executor SQLExecutor, releaseID int64) ([]models.Return, error)
	GetReturnsByItemID(executor SQLExecutor, itemID int64) ([]models.Return, error)
	GetOverdueReturns(executor SQLExecutor, asOf time.Time) ([]models.Return, error)
}

type returnRepository struct {
	db *sql.DB
}

// NewReturnRepository creates a new instance of ReturnRepository.
func NewReturnRepository(db *sql.DB) ReturnRepository {
	return &returnRepository{db: db}
}

const returnColumns = `id, item_id, release_id, returned_by, returned_by_email, quantity_returned,
	date_returned, expected_return_by, condition, remarks, processed_by, status, is_overdue,
	created_at, updated_at`

func scanReturn(row interface{ Scan(...interface{}) error }) (*models.Return, error) {
	var ret models.Return
	var releaseID, processedBy sql.NullInt64
	var returnedByEmail sql.NullString
	var expectedReturnBy sql.NullTime

	err := row.Scan(
		&ret.ID, &ret.ItemID, &releaseID, &ret.ReturnedBy, &returnedByEmail, &ret.QuantityReturned,
		&ret.DateReturned, &expectedReturnBy, &ret.Condition, &ret.Remarks, &processedBy,
		&ret.Status, &ret.IsOverdue, &ret.CreatedAt, &ret.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if releaseID.Valid {
		ret.ReleaseID = &releaseID.Int64
	}
	if processedBy.Valid {
		ret.ProcessedBy = &processedBy.Int64
	}
	if returnedByEmail.Valid {
		ret.ReturnedByEmail = &returnedByEmail.String
	}
	if expectedReturnBy.Valid {
		t := expectedReturnBy.Time
		ret.ExpectedReturnBy = &t
	}
	return &ret, nil
}

func (r *returnRepository) CreateReturn(executor SQLExecutor, ret *models.Return) (int64, error) {
	query := `INSERT INTO returns
	          (item_id, release_id, returned_by, returned_by_email, quantity_returned, date_returned,
	           expected_return_by, condition, remarks, processed_by, status, is_overdue, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	          RETURNING id, created_at, updated_at`
	currentTime := time.Now()
	if ret.DateReturned.IsZero() {
		ret.DateReturned = currentTime
	}

	var releaseID, processedBy sql.NullInt64
	if ret.ReleaseID != nil {
		releaseID = sql.NullInt64{Int64: *ret.ReleaseID, Valid: true}
	}
	if ret.ProcessedBy != nil {
		processedBy = sql.NullInt64{Int64: *ret.ProcessedBy, Valid: true}
	}
	var returnedByEmail sql.NullString
	if ret.ReturnedByEmail != nil {
		returnedByEmail = sql.NullString{String: *ret.ReturnedByEmail, Valid: true}
	}
	var expectedReturnBy sql.NullTime
	if ret.ExpectedReturnBy != nil {
		expectedReturnBy = sql.NullTime{Time: *ret.ExpectedReturnBy, Valid: true}
	}

	err := executor.QueryRow(query,
		ret.ItemID, releaseID, ret.ReturnedBy, returnedByEmail, ret.QuantityReturned, ret.DateReturned,
		expectedReturnBy, ret.Condition, ret.Remarks, processedBy, ret.Status, ret.IsOverdue,
		currentTime, currentTime,
	).Scan(&ret.ID, &ret.CreatedAt, &ret.UpdatedAt)
	if err != nil {
		return 0, fmt.Errorf("%w: creating return: %v", ErrDatabaseError, err)
	}
	return ret.ID, nil
}

func (r *returnRepository) GetReturns(executor SQLExecutor) ([]models.Return, error) {
	return r.queryReturns(executor, `SELECT `+returnColumns+` FROM returns ORDER BY created_at DESC`)
}

func (r *returnRepository) GetReturnByID(executor SQLExecutor, returnID int64) (*models.Return, error) {
	query := `SELECT ` + returnColumns + ` FROM returns WHERE id = $1`
	ret, err := scanReturn(executor.QueryRow(query, returnID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting return %d: %v", ErrDatabaseError, returnID, err)
	}
	return ret, nil
}

func (r *returnRepository) GetReturnsByReleaseID(executor SQLExecutor, releaseID int64) ([]models.Return, error) {
	return r.queryReturns(executor,
		`SELECT `+returnColumns+` FROM returns WHERE release_id = $1 ORDER BY created_at DESC`, releaseID)
}

func (r *returnRepository) GetReturnsByItemID(executor SQLExecutor, itemID int64) ([]models.Return, error) {
	return r.queryReturns(executor,
		`SELECT `+returnColumns+` FROM returns WHERE item_id = $1 ORDER BY created_at DESC`, itemID)
}

func (r *returnRepository) GetOverdueReturns(executor SQLExecutor, asOf time.Time) ([]models.Return, error) {
	return r.queryReturns(executor,
		`SELECT `+returnColumns+` FROM returns
		 WHERE expected_return_by IS NOT NULL AND expected_return_by < $1 AND status <> $2
		 ORDER BY expected_return_by ASC`, asOf, models.ReturnRecordArchived)
}

func (r *returnRepository) queryReturns(executor SQLExecutor, query string, args ...interface{}) ([]models.Return, error) {
	rows, err := executor.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: getting returns: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	returns := []models.Return{}
	for rows.Next() {
		ret, err := scanReturn(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanning return: %v", ErrDatabaseError, err)
		}
		returns = append(returns, *ret)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating returns: %v", ErrDatabaseError, err)
	}
	return returns, nil
}
