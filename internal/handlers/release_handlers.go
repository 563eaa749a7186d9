package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Ayomidekayo/OgwInventorybackend/internal/services"
	"github.com/Ayomidekayo/OgwInventorybackend/pkg/utils"
)

// ReleaseHandler holds the release service.
type ReleaseHandler struct {
	releaseService services.ReleaseService
}

// NewReleaseHandler creates a new ReleaseHandler.
func NewReleaseHandler(rs services.ReleaseService) *ReleaseHandler {
	return &ReleaseHandler{releaseService: rs}
}

// CreateRelease handles releasing item quantity out of inventory.
func (h *ReleaseHandler) CreateRelease(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}
	var req services.CreateReleaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	resp, err := h.releaseService.CreateRelease(actor, req)
	if err != nil {
		respondServiceError(c, err, "CreateRelease: Error from releaseService.CreateRelease")
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// GetReleases handles fetching all releases.
func (h *ReleaseHandler) GetReleases(c *gin.Context) {
	releases, err := h.releaseService.GetReleases()
	if err != nil {
		respondServiceError(c, err, "GetReleases: Error from releaseService.GetReleases")
		return
	}
	c.JSON(http.StatusOK, releases)
}

// GetReleaseByID handles fetching a single release.
func (h *ReleaseHandler) GetReleaseByID(c *gin.Context) {
	releaseID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	release, err := h.releaseService.GetReleaseByID(releaseID)
	if err != nil {
		respondServiceError(c, err, "GetReleaseByID: Error from releaseService.GetReleaseByID")
		return
	}
	c.JSON(http.StatusOK, release)
}

// UpdateApprovalStatus handles approving or cancelling a release.
func (h *ReleaseHandler) UpdateApprovalStatus(c *gin.Context) {
	releaseID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req services.UpdateApprovalStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	release, err := h.releaseService.UpdateApprovalStatus(releaseID, req)
	if err != nil {
		respondServiceError(c, err, "UpdateApprovalStatus: Error from releaseService.UpdateApprovalStatus")
		return
	}
	c.JSON(http.StatusOK, release)
}
