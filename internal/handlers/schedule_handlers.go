package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Ayomidekayo/OgwInventorybackend/internal/models"
	"github.com/Ayomidekayo/OgwInventorybackend/internal/services"
	"github.com/Ayomidekayo/OgwInventorybackend/pkg/utils"
)

// ScheduleHandler holds the schedule service.
type ScheduleHandler struct {
	scheduleService services.ScheduleService
}

// NewScheduleHandler creates a new ScheduleHandler.
func NewScheduleHandler(ss services.ScheduleService) *ScheduleHandler {
	return &ScheduleHandler{scheduleService: ss}
}

// CreateSchedule handles planning a maintenance action for an item.
func (h *ScheduleHandler) CreateSchedule(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}
	var req services.CreateScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	schedule, err := h.scheduleService.CreateSchedule(actor, req)
	if err != nil {
		respondServiceError(c, err, "CreateSchedule: Error from scheduleService.CreateSchedule")
		return
	}
	c.JSON(http.StatusCreated, schedule)
}

// GetSchedules handles listing schedules, optionally filtered by status.
func (h *ScheduleHandler) GetSchedules(c *gin.Context) {
	schedules, err := h.scheduleService.GetSchedules(c.Query("status"))
	if err != nil {
		respondServiceError(c, err, "GetSchedules: Error from scheduleService.GetSchedules")
		return
	}
	c.JSON(http.StatusOK, schedules)
}

// GetScheduleByID handles fetching a single schedule.
func (h *ScheduleHandler) GetScheduleByID(c *gin.Context) {
	scheduleID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	schedule, err := h.scheduleService.GetScheduleByID(scheduleID)
	if err != nil {
		respondServiceError(c, err, "GetScheduleByID: Error from scheduleService.GetScheduleByID")
		return
	}
	c.JSON(http.StatusOK, schedule)
}

// ApproveSchedule handles moving a pending schedule to approved.
func (h *ScheduleHandler) ApproveSchedule(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}
	scheduleID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	schedule, err := h.scheduleService.UpdateScheduleStatus(actor, scheduleID, services.UpdateScheduleStatusRequest{Status: models.ScheduleStatusApproved})
	if err != nil {
		respondServiceError(c, err, "ApproveSchedule: Error from scheduleService.UpdateScheduleStatus")
		return
	}
	c.JSON(http.StatusOK, schedule)
}

// UpdateScheduleStatus handles moving a schedule through its lifecycle.
func (h *ScheduleHandler) UpdateScheduleStatus(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}
	scheduleID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req services.UpdateScheduleStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	schedule, err := h.scheduleService.UpdateScheduleStatus(actor, scheduleID, req)
	if err != nil {
		respondServiceError(c, err, "UpdateScheduleStatus: Error from scheduleService.UpdateScheduleStatus")
		return
	}
	c.JSON(http.StatusOK, schedule)
}
