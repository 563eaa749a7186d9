package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Ayomidekayo/OgwInventorybackend/internal/models"
)

// ItemRepository defines the interface for item-related database operations.
// AdjustQuantity is the stock ledger: every quantity change goes through it,
// inside the transaction of the mutation that caused it.
type ItemRepository interface {
	CreateItem(executor SQLExecutor, item *models.Item) (int64, error)
	GetItems(executor SQLExecutor) ([]models.Item, error)
	GetItemByID(executor SQLExecutor, itemID int64) (*models.Item, error)
	GetItemByIDForUpdate(tx *sql.Tx, itemID int64) (*models.Item, error)
	UpdateItem(executor SQLExecutor, item *models.Item) error
	SoftDeleteItem(executor SQLExecutor, itemID, deletedBy int64) error
	AdjustQuantity(executor SQLExecutor, itemID int64, delta int) (int, error)
}

type itemRepository struct {
	db *sql.DB
}

// NewItemRepository creates a new instance of ItemRepository.
func NewItemRepository(db *sql.DB) ItemRepository {
	return &itemRepository{db: db}
}

const itemColumns = `id, name, category, description, quantity, measuring_unit,
	current_status, added_by, deleted_by, deleted_at, is_deleted, created_at, updated_at`

func scanItem(row interface{ Scan(...interface{}) error }) (*models.Item, error) {
	var item models.Item
	var addedBy, deletedBy sql.NullInt64
	var deletedAt sql.NullTime

	err := row.Scan(
		&item.ID, &item.Name, &item.Category, &item.Description, &item.Quantity,
		&item.MeasuringUnit, &item.CurrentStatus, &addedBy, &deletedBy, &deletedAt,
		&item.IsDeleted, &item.CreatedAt, &item.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if addedBy.Valid {
		item.AddedBy = &addedBy.Int64
	}
	if deletedBy.Valid {
		item.DeletedBy = &deletedBy.Int64
	}
	if deletedAt.Valid {
		t := deletedAt.Time
		item.DeletedAt = &t
	}
	return &item, nil
}

func (r *itemRepository) CreateItem(executor SQLExecutor, item *models.Item) (int64, error) {
	query := `INSERT INTO items (name, category, description, quantity, measuring_unit, current_status, added_by, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	          RETURNING id, created_at, updated_at`
	currentTime := time.Now()

	var addedBy sql.NullInt64
	if item.AddedBy != nil {
		addedBy = sql.NullInt64{Int64: *item.AddedBy, Valid: true}
	}
	if item.CurrentStatus == "" {
		item.CurrentStatus = models.ItemStatusIn
	}

	err := executor.QueryRow(query,
		item.Name, item.Category, item.Description, item.Quantity,
		item.MeasuringUnit, item.CurrentStatus, addedBy, currentTime, currentTime,
	).Scan(&item.ID, &item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		return 0, fmt.Errorf("%w: creating item: %v", ErrDatabaseError, err)
	}
	return item.ID, nil
}

func (r *itemRepository) GetItems(executor SQLExecutor) ([]models.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE is_deleted = FALSE ORDER BY created_at DESC`
	rows, err := executor.Query(query)
	if err != nil {
		return nil, fmt.Errorf("%w: getting items: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	items := []models.Item{}
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanning item: %v", ErrDatabaseError, err)
		}
		items = append(items, *item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating items: %v", ErrDatabaseError, err)
	}
	return items, nil
}

// GetItemByID excludes soft-deleted items, matching normal reads everywhere.
func (r *itemRepository) GetItemByID(executor SQLExecutor, itemID int64) (*models.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE id = $1 AND is_deleted = FALSE`
	item, err := scanItem(executor.QueryRow(query, itemID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting item %d: %v", ErrDatabaseError, itemID, err)
	}
	return item, nil
}

// GetItemByIDForUpdate locks the item row for the duration of the transaction
// so concurrent releases/returns against the same item serialize.
func (r *itemRepository) GetItemByIDForUpdate(tx *sql.Tx, itemID int64) (*models.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE id = $1 AND is_deleted = FALSE FOR UPDATE`
	item, err := scanItem(tx.QueryRow(query, itemID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: locking item %d: %v", ErrDatabaseError, itemID, err)
	}
	return item, nil
}

func (r *itemRepository) UpdateItem(executor SQLExecutor, item *models.Item) error {
	query := `UPDATE items
	          SET name = $1, category = $2, description = $3, measuring_unit = $4,
	              quantity = $5, current_status = $6, updated_at = $7
	          WHERE id = $8 AND is_deleted = FALSE`
	result, err := executor.Exec(query,
		item.Name, item.Category, item.Description, item.MeasuringUnit,
		item.Quantity, item.CurrentStatus, time.Now(), item.ID)
	if err != nil {
		return fmt.Errorf("%w: updating item %d: %v", ErrDatabaseError, item.ID, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: checking update of item %d: %v", ErrDatabaseError, item.ID, err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *itemRepository) SoftDeleteItem(executor SQLExecutor, itemID, deletedBy int64) error {
	query := `UPDATE items
	          SET is_deleted = TRUE, deleted_at = $1, deleted_by = $2, current_status = $3, updated_at = $1
	          WHERE id = $4 AND is_deleted = FALSE`
	result, err := executor.Exec(query, time.Now(), deletedBy, models.ItemStatusDeleted, itemID)
	if err != nil {
		return fmt.Errorf("%w: soft deleting item %d: %v", ErrDatabaseError, itemID, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: checking delete of item %d: %v", ErrDatabaseError, itemID, err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// AdjustQuantity applies delta (negative for release, positive for return) in
// a single guarded statement. The WHERE clause rejects any adjustment that
// would drive quantity below zero, and current_status is recomputed in the
// same statement so quantity and status can never disagree.
func (r *itemRepository) AdjustQuantity(executor SQLExecutor, itemID int64, delta int) (int, error) {
	query := `UPDATE items
	          SET quantity = quantity + $1,
	              current_status = CASE WHEN quantity + $1 = 0 THEN 'out' ELSE 'in' END,
	              updated_at = $2
	          WHERE id = $3 AND is_deleted = FALSE AND quantity + $1 >= 0
	          RETURNING quantity`
	var newQuantity int
	err := executor.QueryRow(query, delta, time.Now(), itemID).Scan(&newQuantity)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			// Distinguish a missing item from a rejected adjustment.
			var exists bool
			checkErr := r.db.QueryRow("SELECT TRUE FROM items WHERE id = $1 AND is_deleted = FALSE", itemID).Scan(&exists)
			if errors.Is(checkErr, sql.ErrNoRows) {
				return 0, ErrNotFound
			}
			return 0, ErrInsufficientStock
		}
		return 0, fmt.Errorf("%w: adjusting quantity of item %d: %v", ErrDatabaseError, itemID, err)
	}
	return newQuantity, nil
}
