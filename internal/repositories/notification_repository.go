package repositories

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Ayomidekayo/OgwInventorybackend/internal/models"
)

// NotificationRepository covers in-app notifications and the append-only
// action log. Both are written inside the transaction of the mutation that
// caused them.
type NotificationRepository interface {
	CreateNotification(executor SQLExecutor, n *models.Notification) (int64, error)
	GetNotifications(executor SQLExecutor) ([]models.Notification, error)
	GetLatestByItemAndType(executor SQLExecutor, itemID int64, notifType string) (*models.Notification, error)
	MarkRead(executor SQLExecutor, notificationID int64, read bool) error
	CreateActionLog(executor SQLExecutor, entry *models.ActionLog) (int64, error)
}

type notificationRepository struct {
	db *sql.DB
}

// NewNotificationRepository creates a new instance of NotificationRepository.
func NewNotificationRepository(db *sql.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) CreateNotification(executor SQLExecutor, n *models.Notification) (int64, error) {
	query := `INSERT INTO notifications (type, item_id, message, recipient, read, sent_at, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	          RETURNING id, created_at, updated_at`
	currentTime := time.Now()
	if n.SentAt.IsZero() {
		n.SentAt = currentTime
	}
	if n.Type == "" {
		n.Type = models.NotificationGeneral
	}

	var itemID, recipient sql.NullInt64
	if n.ItemID != nil {
		itemID = sql.NullInt64{Int64: *n.ItemID, Valid: true}
	}
	if n.Recipient != nil {
		recipient = sql.NullInt64{Int64: *n.Recipient, Valid: true}
	}

	err := executor.QueryRow(query,
		n.Type, itemID, n.Message, recipient, n.Read, n.SentAt, currentTime, currentTime,
	).Scan(&n.ID, &n.CreatedAt, &n.UpdatedAt)
	if err != nil {
		return 0, fmt.Errorf("%w: creating notification: %v", ErrDatabaseError, err)
	}
	return n.ID, nil
}

func (r *notificationRepository) GetNotifications(executor SQLExecutor) ([]models.Notification, error) {
	query := `SELECT id, type, item_id, message, recipient, read, sent_at, created_at, updated_at
	          FROM notifications ORDER BY sent_at DESC`
	rows, err := executor.Query(query)
	if err != nil {
		return nil, fmt.Errorf("%w: getting notifications: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	notifications := []models.Notification{}
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanning notification: %v", ErrDatabaseError, err)
		}
		notifications = append(notifications, *n)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating notifications: %v", ErrDatabaseError, err)
	}
	return notifications, nil
}

// GetLatestByItemAndType returns the newest notification of a type for an
// item, used to dedupe low-stock and restock alerts.
func (r *notificationRepository) GetLatestByItemAndType(executor SQLExecutor, itemID int64, notifType string) (*models.Notification, error) {
	query := `SELECT id, type, item_id, message, recipient, read, sent_at, created_at, updated_at
	          FROM notifications WHERE item_id = $1 AND type = $2
	          ORDER BY created_at DESC LIMIT 1`
	n, err := scanNotification(executor.QueryRow(query, itemID, notifType))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting latest %s notification for item %d: %v", ErrDatabaseError, notifType, itemID, err)
	}
	return n, nil
}

func (r *notificationRepository) MarkRead(executor SQLExecutor, notificationID int64, read bool) error {
	result, err := executor.Exec(`UPDATE notifications SET read = $1, updated_at = $2 WHERE id = $3`,
		read, time.Now(), notificationID)
	if err != nil {
		return fmt.Errorf("%w: updating notification %d: %v", ErrDatabaseError, notificationID, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: checking update of notification %d: %v", ErrDatabaseError, notificationID, err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *notificationRepository) CreateActionLog(executor SQLExecutor, entry *models.ActionLog) (int64, error) {
	details, err := json.Marshal(entry.Details)
	if err != nil {
		return 0, fmt.Errorf("%w: marshalling action log details: %v", ErrDatabaseError, err)
	}

	query := `INSERT INTO action_logs (user_id, action, details, created_at)
	          VALUES ($1, $2, $3, $4)
	          RETURNING id, created_at`
	err = executor.QueryRow(query, entry.UserID, entry.Action, details, time.Now()).
		Scan(&entry.ID, &entry.CreatedAt)
	if err != nil {
		return 0, fmt.Errorf("%w: creating action log: %v", ErrDatabaseError, err)
	}
	return entry.ID, nil
}

func scanNotification(row interface{ Scan(...interface{}) error }) (*models.Notification, error) {
	var n models.Notification
	var itemID, recipient sql.NullInt64

	err := row.Scan(&n.ID, &n.Type, &itemID, &n.Message, &recipient, &n.Read,
		&n.SentAt, &n.CreatedAt, &n.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if itemID.Valid {
		n.ItemID = &itemID.Int64
	}
	if recipient.Valid {
		n.Recipient = &recipient.Int64
	}
	return &n, nil
}
