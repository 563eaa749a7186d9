package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Ayomidekayo/OgwInventorybackend/internal/services"
	"github.com/Ayomidekayo/OgwInventorybackend/pkg/utils"
)

// NotificationHandler holds the notification service.
type NotificationHandler struct {
	notificationService services.NotificationService
}

// NewNotificationHandler creates a new NotificationHandler.
func NewNotificationHandler(ns services.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationService: ns}
}

// GetNotifications handles listing in-app notifications, newest first.
func (h *NotificationHandler) GetNotifications(c *gin.Context) {
	notifications, err := h.notificationService.GetNotifications()
	if err != nil {
		respondServiceError(c, err, "GetNotifications: Error from notificationService.GetNotifications")
		return
	}
	c.JSON(http.StatusOK, notifications)
}

// MarkRead handles toggling a notification's read flag.
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	notificationID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req struct {
		Read *bool `json:"read" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	if err := h.notificationService.MarkRead(notificationID, *req.Read); err != nil {
		respondServiceError(c, err, "MarkRead: Error from notificationService.MarkRead")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Notification updated successfully"})
}
