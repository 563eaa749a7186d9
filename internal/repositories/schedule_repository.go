package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Ayomidekayo/OgwInventorybackend/internal/models"
)

// ScheduleRepository defines the interface for maintenance-schedule operations.
type ScheduleRepository interface {
	CreateSchedule(executor SQLExecutor, schedule *models.Schedule) (int64, error)
	GetSchedules(executor SQLExecutor, status *string) ([]models.Schedule, error)
	GetScheduleByID(executor SQLExecutor, scheduleID int64) (*models.Schedule, error)
	UpdateScheduleStatus(executor SQLExecutor, scheduleID int64, status string) error
}

type scheduleRepository struct {
	db *sql.DB
}

// NewScheduleRepository creates a new instance of ScheduleRepository.
func NewScheduleRepository(db *sql.DB) ScheduleRepository {
	return &scheduleRepository{db: db}
}

const scheduleColumns = `id, item_id, requested_by, category, quantity, scheduled_date,
	expected_completion_date, status, will_release, is_returnable, remarks, created_at, updated_at`

func scanSchedule(row interface{ Scan(...interface{}) error }) (*models.Schedule, error) {
	var s models.Schedule
	var expectedCompletion sql.NullTime

	err := row.Scan(
		&s.ID, &s.ItemID, &s.RequestedBy, &s.Category, &s.Quantity, &s.ScheduledDate,
		&expectedCompletion, &s.Status, &s.WillRelease, &s.IsReturnable, &s.Remarks,
		&s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if expectedCompletion.Valid {
		t := expectedCompletion.Time
		s.ExpectedCompletionDate = &t
	}
	return &s, nil
}

func (r *scheduleRepository) CreateSchedule(executor SQLExecutor, schedule *models.Schedule) (int64, error) {
	query := `INSERT INTO schedules
	          (item_id, requested_by, category, quantity, scheduled_date, expected_completion_date,
	           status, will_release, is_returnable, remarks, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	          RETURNING id, created_at, updated_at`
	currentTime := time.Now()

	var expectedCompletion sql.NullTime
	if schedule.ExpectedCompletionDate != nil {
		expectedCompletion = sql.NullTime{Time: *schedule.ExpectedCompletionDate, Valid: true}
	}

	err := executor.QueryRow(query,
		schedule.ItemID, schedule.RequestedBy, schedule.Category, schedule.Quantity,
		schedule.ScheduledDate, expectedCompletion, schedule.Status, schedule.WillRelease,
		schedule.IsReturnable, schedule.Remarks, currentTime, currentTime,
	).Scan(&schedule.ID, &schedule.CreatedAt, &schedule.UpdatedAt)
	if err != nil {
		return 0, fmt.Errorf("%w: creating schedule: %v", ErrDatabaseError, err)
	}
	return schedule.ID, nil
}

func (r *scheduleRepository) GetSchedules(executor SQLExecutor, status *string) ([]models.Schedule, error) {
	query := `SELECT ` + scheduleColumns + ` FROM schedules`
	var args []interface{}
	if status != nil && *status != "" {
		query += ` WHERE status = $1`
		args = append(args, *status)
	}
	query += ` ORDER BY scheduled_date ASC`

	rows, err := executor.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: getting schedules: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	schedules := []models.Schedule{}
	for rows.Next() {
		s, err := scanSchedule(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanning schedule: %v", ErrDatabaseError, err)
		}
		schedules = append(schedules, *s)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating schedules: %v", ErrDatabaseError, err)
	}
	return schedules, nil
}

func (r *scheduleRepository) GetScheduleByID(executor SQLExecutor, scheduleID int64) (*models.Schedule, error) {
	query := `SELECT ` + scheduleColumns + ` FROM schedules WHERE id = $1`
	s, err := scanSchedule(executor.QueryRow(query, scheduleID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting schedule %d: %v", ErrDatabaseError, scheduleID, err)
	}
	return s, nil
}

func (r *scheduleRepository) UpdateScheduleStatus(executor SQLExecutor, scheduleID int64, status string) error {
	result, err := executor.Exec(`UPDATE schedules SET status = $1, updated_at = $2 WHERE id = $3`,
		status, time.Now(), scheduleID)
	if err != nil {
		return fmt.Errorf("%w: updating schedule %d: %v", ErrDatabaseError, scheduleID, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: checking update of schedule %d: %v", ErrDatabaseError, scheduleID, err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
