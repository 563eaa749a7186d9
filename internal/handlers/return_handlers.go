package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Ayomidekayo/OgwInventorybackend/internal/services"
	"github.com/Ayomidekayo/OgwInventorybackend/pkg/utils"
)

// ReturnHandler holds the return service.
type ReturnHandler struct {
	returnService services.ReturnService
}

// NewReturnHandler creates a new ReturnHandler.
func NewReturnHandler(rs services.ReturnService) *ReturnHandler {
	return &ReturnHandler{returnService: rs}
}

// RecordReturn handles recording a return. When the body carries a
// release_id the release is reconciled; otherwise the return is standalone.
func (h *ReturnHandler) RecordReturn(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}
	var req services.RecordReturnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	resp, err := h.returnService.RecordReturn(actor, req)
	if err != nil {
		respondServiceError(c, err, "RecordReturn: Error from returnService.RecordReturn")
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// RecordReturnForRelease handles recording a return against a specific
// release. The release id in the path wins over anything in the body.
func (h *ReturnHandler) RecordReturnForRelease(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}
	releaseID, ok := parseIDParam(c, "releaseId")
	if !ok {
		return
	}
	var req services.RecordReturnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	resp, err := h.returnService.RecordReturnForRelease(actor, releaseID, req)
	if err != nil {
		respondServiceError(c, err, "RecordReturnForRelease: Error from returnService.RecordReturnForRelease")
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// GetReturnsForRelease handles fetching all returns recorded against a release.
func (h *ReturnHandler) GetReturnsForRelease(c *gin.Context) {
	releaseID, ok := parseIDParam(c, "releaseId")
	if !ok {
		return
	}
	returns, err := h.returnService.GetReturnsByReleaseID(releaseID)
	if err != nil {
		respondServiceError(c, err, "GetReturnsForRelease: Error from returnService.GetReturnsByReleaseID")
		return
	}
	c.JSON(http.StatusOK, returns)
}

// GetReturns handles fetching all return records.
func (h *ReturnHandler) GetReturns(c *gin.Context) {
	returns, err := h.returnService.GetReturns()
	if err != nil {
		respondServiceError(c, err, "GetReturns: Error from returnService.GetReturns")
		return
	}
	c.JSON(http.StatusOK, returns)
}

// GetReturnByID handles fetching a single return record.
func (h *ReturnHandler) GetReturnByID(c *gin.Context) {
	returnID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	ret, err := h.returnService.GetReturnByID(returnID)
	if err != nil {
		respondServiceError(c, err, "GetReturnByID: Error from returnService.GetReturnByID")
		return
	}
	c.JSON(http.StatusOK, ret)
}

// GetOverdueReturns handles fetching open releases past their expected
// return date.
func (h *ReturnHandler) GetOverdueReturns(c *gin.Context) {
	returns, err := h.returnService.GetOverdueReturns()
	if err != nil {
		respondServiceError(c, err, "GetOverdueReturns: Error from returnService.GetOverdueReturns")
		return
	}
	c.JSON(http.StatusOK, returns)
}
