package services

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Ayomidekayo/OgwInventorybackend/internal/models"
	"github.com/Ayomidekayo/OgwInventorybackend/internal/repositories"
)

// --- Data Transfer Objects (DTOs) ---

type CreateScheduleRequest struct {
	ItemID                 int64  `json:"item_id" binding:"required"`
	Category               string `json:"category" binding:"required"`
	Quantity               int    `json:"quantity" binding:"required"`
	ScheduledDate          string `json:"scheduled_date" binding:"required"`
	ExpectedCompletionDate string `json:"expected_completion_date"`
	WillRelease            bool   `json:"will_release"`
	Remarks                string `json:"remarks"`
}

type UpdateScheduleStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// --- ScheduleService Interface ---
type ScheduleService interface {
	CreateSchedule(actor Actor, req CreateScheduleRequest) (*models.Schedule, error)
	GetSchedules(status string) ([]models.Schedule, error)
	GetScheduleByID(scheduleID int64) (*models.Schedule, error)
	UpdateScheduleStatus(actor Actor, scheduleID int64, req UpdateScheduleStatusRequest) (*models.Schedule, error)
}

// --- scheduleService Implementation ---
type scheduleService struct {
	scheduleRepo repositories.ScheduleRepository
	itemRepo     repositories.ItemRepository
	notifRepo    repositories.NotificationRepository
	db           *sql.DB
}

// NewScheduleService creates a new instance of ScheduleService.
func NewScheduleService(
	sr repositories.ScheduleRepository,
	ir repositories.ItemRepository,
	nr repositories.NotificationRepository,
	db *sql.DB,
) ScheduleService {
	return &scheduleService{scheduleRepo: sr, itemRepo: ir, notifRepo: nr, db: db}
}

// CreateSchedule records a planned maintenance action. Stock is untouched
// here; the actual release happens when the schedule is executed.
func (s *scheduleService) CreateSchedule(actor Actor, req CreateScheduleRequest) (*models.Schedule, error) {
	if req.Quantity < 1 {
		return nil, fmt.Errorf("%w: quantity must be at least 1", ErrValidation)
	}
	if !models.IsValidScheduleCategory(req.Category) {
		return nil, fmt.Errorf("%w: unknown schedule category '%s'", ErrValidation, req.Category)
	}
	scheduledDate, err := parseDate(req.ScheduledDate)
	if err != nil {
		return nil, fmt.Errorf("%w: scheduled_date must be an RFC 3339 timestamp or YYYY-MM-DD", ErrValidation)
	}
	var expectedCompletion *time.Time
	if req.ExpectedCompletionDate != "" {
		t, err := parseDate(req.ExpectedCompletionDate)
		if err != nil {
			return nil, fmt.Errorf("%w: expected_completion_date must be an RFC 3339 timestamp or YYYY-MM-DD", ErrValidation)
		}
		expectedCompletion = &t
	}

	if _, err := s.itemRepo.GetItemByID(s.db, req.ItemID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("%w: item %d", ErrItemNotFound, req.ItemID)
		}
		return nil, fmt.Errorf("failed to fetch item %d: %w", req.ItemID, err)
	}

	schedule := models.Schedule{
		ItemID:                 req.ItemID,
		RequestedBy:            actor.ID,
		Category:               req.Category,
		Quantity:               req.Quantity,
		ScheduledDate:          scheduledDate,
		ExpectedCompletionDate: expectedCompletion,
		Status:                 models.ScheduleStatusPending,
		WillRelease:            req.WillRelease,
		IsReturnable:           IsReturnable(req.Category),
		Remarks:                req.Remarks,
	}

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to start database transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := s.scheduleRepo.CreateSchedule(tx, &schedule); err != nil {
		return nil, fmt.Errorf("failed to create schedule: %w", err)
	}

	logEntry := models.ActionLog{
		UserID: actor.ID,
		Action: "create_schedule",
		Details: map[string]interface{}{
			"schedule_id": schedule.ID,
			"item_id":     req.ItemID,
			"category":    req.Category,
			"quantity":    req.Quantity,
		},
	}
	if _, err := s.notifRepo.CreateActionLog(tx, &logEntry); err != nil {
		return nil, fmt.Errorf("failed to create schedule action log: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCommitConflict, err)
	}
	return &schedule, nil
}

func (s *scheduleService) GetSchedules(status string) ([]models.Schedule, error) {
	var filter *string
	if status != "" {
		if !models.IsValidScheduleStatus(status) {
			return nil, fmt.Errorf("%w: unknown schedule status '%s'", ErrValidation, status)
		}
		filter = &status
	}
	schedules, err := s.scheduleRepo.GetSchedules(s.db, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to get schedules: %w", err)
	}
	return schedules, nil
}

func (s *scheduleService) GetScheduleByID(scheduleID int64) (*models.Schedule, error) {
	schedule, err := s.scheduleRepo.GetScheduleByID(s.db, scheduleID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrScheduleNotFound
		}
		return nil, fmt.Errorf("failed to get schedule %d: %w", scheduleID, err)
	}
	return schedule, nil
}

func (s *scheduleService) UpdateScheduleStatus(actor Actor, scheduleID int64, req UpdateScheduleStatusRequest) (*models.Schedule, error) {
	if !models.IsValidScheduleStatus(req.Status) {
		return nil, fmt.Errorf("%w: unknown schedule status '%s'", ErrValidation, req.Status)
	}
	if err := s.scheduleRepo.UpdateScheduleStatus(s.db, scheduleID, req.Status); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrScheduleNotFound
		}
		return nil, fmt.Errorf("failed to update schedule %d: %w", scheduleID, err)
	}
	return s.GetScheduleByID(scheduleID)
}
