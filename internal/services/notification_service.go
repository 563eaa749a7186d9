package services

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/Ayomidekayo/OgwInventorybackend/internal/models"
	"github.com/Ayomidekayo/OgwInventorybackend/internal/repositories"
)

var ErrNotificationNotFound = errors.New("notification not found")

// --- NotificationService Interface ---
type NotificationService interface {
	GetNotifications() ([]models.Notification, error)
	MarkRead(notificationID int64, read bool) error
}

type notificationService struct {
	notifRepo repositories.NotificationRepository
	db        *sql.DB
}

// NewNotificationService creates a new instance of NotificationService.
func NewNotificationService(nr repositories.NotificationRepository, db *sql.DB) NotificationService {
	return &notificationService{notifRepo: nr, db: db}
}

func (s *notificationService) GetNotifications() ([]models.Notification, error) {
	notifications, err := s.notifRepo.GetNotifications(s.db)
	if err != nil {
		return nil, fmt.Errorf("failed to get notifications: %w", err)
	}
	return notifications, nil
}

func (s *notificationService) MarkRead(notificationID int64, read bool) error {
	if err := s.notifRepo.MarkRead(s.db, notificationID, read); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrNotificationNotFound
		}
		return fmt.Errorf("failed to mark notification %d: %w", notificationID, err)
	}
	return nil
}
